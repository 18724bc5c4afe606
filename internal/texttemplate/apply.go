package texttemplate

import "github.com/opencode-ai/textplate/internal/text"

// Apply renders the template, replacing each Arg with the parameter of the
// same name. A nil map is treated as empty. Missing parameters for required
// args yield *MissingArgumentError; missing optional args render nothing.
func (t *Template) Apply(params map[string]text.Element) (text.Node, error) {
	// The result builder stays nil until the first element so a template
	// holding a single element renders without an extra wrapping node.
	var result *text.Builder
	for _, element := range t.elements {
		switch element.kind {
		case KindArg:
			arg := element.arg
			param, ok := params[arg.name]
			if !ok || param == nil {
				if !arg.optional {
					return text.Node{}, &MissingArgumentError{Name: arg.name}
				}
				continue
			}
			wrapper := text.NewBuilder("").Format(arg.format)
			param.ApplyTo(wrapper)
			if result == nil {
				result = wrapper
			} else {
				result.Append(wrapper.Build())
			}
		case KindNode:
			result = applyNode(result, element.node)
		default:
			result = appendLiteral(result, element.literal)
		}
	}
	return build(result), nil
}

// ToText renders the template with every Arg shown as its placeholder.
func (t *Template) ToText() text.Node {
	var result *text.Builder
	for _, element := range t.elements {
		switch element.kind {
		case KindArg:
			result = applyNode(result, element.arg.placeholder(t.openArg, t.closeArg))
		case KindNode:
			result = applyNode(result, element.node)
		default:
			result = appendLiteral(result, element.literal)
		}
	}
	return build(result)
}

func applyNode(result *text.Builder, node text.Element) *text.Builder {
	if result == nil {
		result = text.NewBuilder("")
	}
	node.ApplyTo(result)
	return result
}

func appendLiteral(result *text.Builder, literal string) *text.Builder {
	if result == nil {
		return text.NewBuilder(literal)
	}
	return result.Append(text.Of(literal))
}

func build(result *text.Builder) text.Node {
	if result == nil {
		return text.Empty
	}
	return result.Build()
}
