// Package cli provides template commands.
package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opencode-ai/textplate/internal/cfgtree"
	"github.com/opencode-ai/textplate/internal/templates"
	"github.com/opencode-ai/textplate/internal/text"
)

var (
	listTags   []string
	renderVars []string
)

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(exportCmd)

	listCmd.Flags().StringSliceVar(&listTags, "tag", nil, "only list templates with any of these tags")
	renderCmd.Flags().StringArrayVarP(&renderVars, "var", "v", nil, "template variable key=value, one per flag (repeatable)")
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available templates",
	Long:  "List templates from the project, user and system search paths plus builtins.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := loadTemplates()
		if err != nil {
			return err
		}
		loaded = templates.FilterTemplates(loaded, listTags)

		if IsJSONOutput() {
			summaries := make([]TemplateSummary, 0, len(loaded))
			for _, tmpl := range loaded {
				summaries = append(summaries, summarize(tmpl))
			}
			return WriteOutput(cmd.OutOrStdout(), summaries)
		}

		if len(loaded) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No templates found.")
			return nil
		}

		rows := make([][]string, 0, len(loaded))
		for _, tmpl := range loaded {
			rows = append(rows, []string{
				tmpl.Name,
				formatList(argumentNames(tmpl)),
				formatList(tmpl.Tags),
				valueOrDash(tmpl.Scope),
			})
		}
		return writeTable(cmd.OutOrStdout(), []string{"NAME", "ARGS", "TAGS", "SCOPE"}, rows)
	},
}

var showCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a template and its arguments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tmpl, err := findTemplate(args[0])
		if err != nil {
			return err
		}

		if IsJSONOutput() {
			return WriteOutput(cmd.OutOrStdout(), summarize(tmpl))
		}

		renderer := newRenderer()
		ui := renderer.Styles()
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, ui.Title.Render(tmpl.Name))
		if tmpl.Description != "" {
			fmt.Fprintln(out, ui.Muted.Render(tmpl.Description))
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, renderer.Render(tmpl.Body.ToText()))
		fmt.Fprintln(out)

		// The first column is styled in every row, header included, so the
		// escape sequences add the same width to each cell.
		rows := make([][]string, 0)
		for _, arg := range argumentSummaries(tmpl) {
			rows = append(rows, []string{ui.Accent.Render(arg.Name), formatYesNo(arg.Required), valueOrDash(arg.Default), valueOrDash(arg.Description)})
		}
		if len(rows) == 0 {
			fmt.Fprintln(out, "No arguments.")
			return nil
		}
		return writeTable(out, []string{ui.Accent.Render("ARG"), "REQUIRED", "DEFAULT", "DESCRIPTION"}, rows)
	},
}

var renderCmd = &cobra.Command{
	Use:   "render <name>",
	Short: "Render a template with variables",
	Example: `  # Render the builtin greeting
  textplate render greeting --var name=World

  # One --var per variable; values may contain commas
  textplate render status -v key=cpu -v value=42 -v unit=%
  textplate render greeting --var "name=Smith, John"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tmpl, err := findTemplate(args[0])
		if err != nil {
			return err
		}
		vars, err := parseTemplateVars(renderVars)
		if err != nil {
			return err
		}

		rendered, err := templates.RenderTemplate(tmpl, vars)
		if err != nil {
			return err
		}
		logger.Debug().Str("template", tmpl.Name).Int("vars", len(vars)).Msg("rendered template")

		if IsJSONOutput() {
			tree := cfgtree.New()
			if err := (text.NodeSerializer{}).Serialize(rendered, tree); err != nil {
				return err
			}
			return WriteOutput(cmd.OutOrStdout(), RenderResult{
				Template: tmpl.Name,
				Plain:    rendered.Plain(),
				Text:     tree,
			})
		}

		fmt.Fprintln(cmd.OutOrStdout(), newRenderer().Render(rendered))
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <name>",
	Short: "Export a template definition",
	Long:  "Export a template definition as YAML, or as JSON with --json.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tmpl, err := findTemplate(args[0])
		if err != nil {
			return err
		}

		loader := newLoader()
		if IsJSONOutput() {
			tree, err := loader.Encode(tmpl)
			if err != nil {
				return err
			}
			return WriteOutput(cmd.OutOrStdout(), tree)
		}

		data, err := loader.Marshal(tmpl)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

// TemplateSummary is the JSON form of a template in list and show output.
type TemplateSummary struct {
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Tags        []string          `json:"tags,omitempty"`
	Source      string            `json:"source"`
	Scope       string            `json:"scope,omitempty"`
	Placeholder string            `json:"placeholder"`
	Arguments   []ArgumentSummary `json:"arguments"`
}

// ArgumentSummary describes one template argument.
type ArgumentSummary struct {
	Name        string `json:"name"`
	Required    bool   `json:"required"`
	Default     string `json:"default,omitempty"`
	Description string `json:"description,omitempty"`
}

// RenderResult is the JSON payload returned by `textplate render --json`.
type RenderResult struct {
	Template string        `json:"template"`
	Plain    string        `json:"plain"`
	Text     *cfgtree.Node `json:"text"`
}

func summarize(tmpl *templates.Template) TemplateSummary {
	return TemplateSummary{
		Name:        tmpl.Name,
		Description: tmpl.Description,
		Tags:        tmpl.Tags,
		Source:      tmpl.Source,
		Scope:       tmpl.Scope,
		Placeholder: tmpl.Body.ToText().Plain(),
		Arguments:   argumentSummaries(tmpl),
	}
}

func argumentSummaries(tmpl *templates.Template) []ArgumentSummary {
	docs := make(map[string]templates.TemplateVar, len(tmpl.Variables))
	for _, variable := range tmpl.Variables {
		docs[variable.Name] = variable
	}

	out := make([]ArgumentSummary, 0)
	for _, name := range argumentNames(tmpl) {
		doc := docs[name]
		out = append(out, ArgumentSummary{
			Name:        name,
			Required:    tmpl.Required(name),
			Default:     doc.Default,
			Description: doc.Description,
		})
	}
	return out
}

func argumentNames(tmpl *templates.Template) []string {
	names := make([]string, 0)
	for name := range tmpl.Body.Arguments() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func valueOrDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}
