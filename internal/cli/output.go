// Package cli provides output helpers shared by commands.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"golang.org/x/term"

	"github.com/opencode-ai/textplate/internal/styles"
)

// WriteOutput writes value as indented JSON.
func WriteOutput(out io.Writer, value any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

func hasTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// FormatError renders err for stderr using the theme's error style.
func FormatError(err error) string {
	cfg := GetConfig()
	color := cfg.UseColor(term.IsTerminal(int(os.Stderr.Fd())))
	return formatError(styles.NewRenderer(cfg.Theme(), color), err)
}

func formatError(renderer *styles.Renderer, err error) string {
	return renderer.Styles().Error.Render("Error: " + err.Error())
}

// writeTable aligns rows under headers, two spaces between columns.
func writeTable(out io.Writer, headers []string, rows [][]string) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, line := range append([][]string{headers}, rows...) {
		if len(line) == 0 {
			continue
		}
		if _, err := fmt.Fprintln(tw, strings.Join(line, "\t")); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func formatYesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

func formatList(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ",")
}
