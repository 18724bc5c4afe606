// Package cli provides the textplate command line interface.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/opencode-ai/textplate/internal/config"
	"github.com/opencode-ai/textplate/internal/logging"
	"github.com/opencode-ai/textplate/internal/styles"
	"github.com/opencode-ai/textplate/internal/templates"
	"github.com/opencode-ai/textplate/internal/texttemplate"
)

// Version is set at build time.
var Version = "dev"

var (
	cfgFile      string
	logLevel     string
	jsonOutput   bool
	projectDir   string
	colorMode    string
	templateDirs []string

	appConfig *config.Config
	logger    = zerolog.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "textplate",
	Short: "Render formatted text templates",
	Long: `textplate loads named text templates with placeholders, renders them with
values supplied on the command line and exports their definitions.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.config/textplate/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output JSON")
	rootCmd.PersistentFlags().StringVar(&projectDir, "project", "", "project directory searched for .textplate/templates (default current directory)")
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "", "color mode: auto, always, never")
	rootCmd.PersistentFlags().StringSliceVar(&templateDirs, "templates", nil, "extra template directories searched first")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func initConfig() error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if colorMode != "" {
		cfg.Output.Color = strings.ToLower(colorMode)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format}); err != nil {
		return err
	}

	appConfig = cfg
	logger = logging.Component("cli")
	return nil
}

// GetConfig returns the loaded configuration, or defaults before loading.
func GetConfig() *config.Config {
	if appConfig == nil {
		return config.DefaultConfig()
	}
	return appConfig
}

// IsJSONOutput reports whether --json was given.
func IsJSONOutput() bool {
	return jsonOutput
}

func newLoader() *templates.Loader {
	return templates.NewLoader(texttemplate.DefaultSerializer(), logging.Component("templates"))
}

func resolveProjectDir() (string, error) {
	if projectDir != "" {
		return projectDir, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolve working directory: %w", err)
	}
	return wd, nil
}

func loadTemplates() ([]*templates.Template, error) {
	dir, err := resolveProjectDir()
	if err != nil {
		return nil, err
	}

	extra := append(append([]string{}, templateDirs...), GetConfig().Templates.Dirs...)
	loaded, err := newLoader().LoadTemplatesFromSearchPaths(dir, extra...)
	if err != nil {
		return nil, err
	}
	logger.Debug().Int("count", len(loaded)).Str("project", dir).Msg("templates resolved")
	return loaded, nil
}

func findTemplate(name string) (*templates.Template, error) {
	loaded, err := loadTemplates()
	if err != nil {
		return nil, err
	}
	tmpl := templates.FindTemplate(loaded, name)
	if tmpl == nil {
		return nil, fmt.Errorf("template %q not found", name)
	}
	return tmpl, nil
}

func newRenderer() *styles.Renderer {
	cfg := GetConfig()
	return styles.NewRenderer(cfg.Theme(), cfg.UseColor(hasTTY()))
}
