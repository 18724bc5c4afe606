package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opencode-ai/textplate/internal/cfgtree"
	"github.com/opencode-ai/textplate/internal/styles"
	"github.com/opencode-ai/textplate/internal/texttemplate"
)

func resetFlags() {
	cfgFile = ""
	logLevel = ""
	jsonOutput = false
	projectDir = ""
	colorMode = ""
	templateDirs = nil
	listTags = nil
	renderVars = nil
	appConfig = nil
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	resetFlags()
	t.Cleanup(resetFlags)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeProjectTemplate(t *testing.T, name, data string) string {
	t.Helper()
	project := t.TempDir()
	dir := filepath.Join(project, ".textplate", "templates")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(data), 0o644))
	return project
}

func TestParseTemplateVars(t *testing.T) {
	tests := []struct {
		name    string
		input   []string
		want    map[string]string
		wantErr bool
	}{
		{"empty", nil, map[string]string{}, false},
		{"single", []string{"name=World"}, map[string]string{"name": "World"}, false},
		{"several flags", []string{"a=1", " b =2"}, map[string]string{"a": "1", "b": "2"}, false},
		{"value with comma", []string{"name=Smith, John"}, map[string]string{"name": "Smith, John"}, false},
		{"value with equals", []string{"expr=a=b"}, map[string]string{"expr": "a=b"}, false},
		{"empty value", []string{"a="}, map[string]string{"a": ""}, false},
		{"later wins", []string{"a=1", "a=2"}, map[string]string{"a": "2"}, false},
		{"missing equals", []string{"oops"}, nil, true},
		{"empty key", []string{"=x"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseTemplateVars(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestRenderCommand(t *testing.T) {
	out, err := runCLI(t, "render", "greeting", "--var", "name=World", "--project", t.TempDir())
	require.NoError(t, err)
	require.Equal(t, "Hello, World!\n", out)
}

func TestRenderCommandValueWithComma(t *testing.T) {
	out, err := runCLI(t, "render", "greeting", "--var", "name=Smith, John", "--project", t.TempDir())
	require.NoError(t, err)
	require.Equal(t, "Hello, Smith, John!\n", out)
}

func TestFormatError(t *testing.T) {
	err := errors.New("template \"nope\" not found")

	plain := formatError(styles.NewRenderer(styles.DefaultTheme, false), err)
	require.Equal(t, `Error: template "nope" not found`, plain)

	colored := formatError(styles.NewRenderer(styles.DefaultTheme, true), err)
	require.Contains(t, colored, "\x1b[")
	require.Contains(t, colored, `Error: template "nope" not found`)
}

func TestRenderCommandMissingArgument(t *testing.T) {
	_, err := runCLI(t, "render", "greeting", "--project", t.TempDir())
	var missing *texttemplate.MissingArgumentError
	require.True(t, errors.As(err, &missing))
	require.Equal(t, "name", missing.Name)
}

func TestRenderCommandJSON(t *testing.T) {
	out, err := runCLI(t, "render", "status", "-v", "key=cpu", "-v", "value=42", "-v", "unit=%", "--json", "--project", t.TempDir())
	require.NoError(t, err)

	var result struct {
		Template string          `json:"template"`
		Plain    string          `json:"plain"`
		Text     json.RawMessage `json:"text"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Equal(t, "status", result.Template)
	require.Equal(t, "cpu: 42%", result.Plain)

	tree, err := cfgtree.Parse(result.Text)
	require.NoError(t, err)
	require.False(t, tree.IsVirtual())
}

func TestRenderCommandUnknownTemplate(t *testing.T) {
	_, err := runCLI(t, "render", "nope", "--project", t.TempDir())
	require.Error(t, err)
	require.Contains(t, err.Error(), `"nope"`)
}

func TestListCommandIncludesProjectTemplates(t *testing.T) {
	project := writeProjectTemplate(t, "motd.yaml", `name: motd
tags: [server]
template:
  arguments:
    server:
      optional: true
  content: "Welcome to {server}"
`)

	out, err := runCLI(t, "list", "--project", project)
	require.NoError(t, err)
	require.Contains(t, out, "NAME")
	require.Contains(t, out, "motd")
	require.Contains(t, out, "greeting")
	require.Contains(t, out, "project")

	out, err = runCLI(t, "list", "--project", project, "--tag", "server")
	require.NoError(t, err)
	require.Contains(t, out, "motd")
	require.NotContains(t, out, "greeting")
}

func TestListCommandJSON(t *testing.T) {
	out, err := runCLI(t, "list", "--json", "--tag", "chat", "--project", t.TempDir())
	require.NoError(t, err)

	var summaries []TemplateSummary
	require.NoError(t, json.Unmarshal([]byte(out), &summaries))
	require.NotEmpty(t, summaries)
	for _, summary := range summaries {
		require.Equal(t, "builtin", summary.Source)
	}
}

func TestShowCommand(t *testing.T) {
	out, err := runCLI(t, "show", "join", "--project", t.TempDir())
	require.NoError(t, err)
	require.Contains(t, out, "join")
	require.Contains(t, out, "{who} joined the server{note}")
	require.Contains(t, out, "ARG")

	out, err = runCLI(t, "show", "join", "--json", "--project", t.TempDir())
	require.NoError(t, err)
	var summary TemplateSummary
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	require.Equal(t, []ArgumentSummary{
		{Name: "note", Required: false, Description: "Extra text shown after the announcement"},
		{Name: "who", Required: true, Description: "Member that joined"},
	}, summary.Arguments)
}

func TestExportCommand(t *testing.T) {
	out, err := runCLI(t, "export", "greeting", "--project", t.TempDir())
	require.NoError(t, err)

	tree, err := cfgtree.Parse([]byte(out))
	require.NoError(t, err)
	require.Equal(t, "greeting", tree.Node("name").String(""))
	require.False(t, tree.Node("template", "arguments", "name", "optional").Bool(true))

	out, err = runCLI(t, "export", "greeting", "--json", "--project", t.TempDir())
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(strings.TrimSpace(out), `{`))
	jsonTree, err := cfgtree.Parse([]byte(out))
	require.NoError(t, err)
	require.Equal(t, tree.Keys(), jsonTree.Keys())
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, "version", "--json")
	require.NoError(t, err)

	var info VersionInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	require.Equal(t, Version, info.Version)
	require.NotEmpty(t, info.GoVersion)
}

func TestInvalidColorMode(t *testing.T) {
	_, err := runCLI(t, "version", "--color", "sometimes")
	require.Error(t, err)
}

