// i18nc resolves and formats localized messages from a pipeline definition,
// for trying out translation configs from the command line.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pgwireless/i18n"
	"github.com/pgwireless/i18n/config"

	// Source types available to pipeline definitions.
	_ "github.com/pgwireless/i18n/source/bundle"
	_ "github.com/pgwireless/i18n/source/file"
	_ "github.com/pgwireless/i18n/source/static"
)

// Version information (set via -ldflags during build)
var version = "dev"

// Settings are the environment defaults for flags.
type Settings struct {
	ConfigPath string `env:"I18N_CONFIG" envDefault:"i18n.yaml"`
	Language   string `env:"I18N_LANGUAGE" envDefault:""`
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var settings Settings
	config.MustLoad(&settings)

	root := &cobra.Command{
		Use:           "i18nc",
		Short:         "Resolve and format localized messages from a pipeline definition",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newTranslateCmd(settings))
	root.AddCommand(newSourcesCmd())
	return root
}

func newTranslateCmd(settings Settings) *cobra.Command {
	var (
		configPath string
		language   string
		category   string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "translate <key> [name=value...]",
		Short: "Translate a message key with optional named parameters",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := parseParams(args[1:])
			if err != nil {
				return err
			}

			opts := []i18n.Option{}
			if verbose {
				log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
				opts = append(opts,
					i18n.WithLogger(log),
					i18n.WithMissingTranslationHandler(func(language, category, key string) {
						log.Warn("missing translation",
							slog.String("language", language),
							slog.String("category", category),
							slog.String("key", key),
						)
					}),
				)
			}

			translations, err := config.LoadPipeline(configPath, opts...)
			if err != nil {
				return err
			}

			lang := language
			if lang == "" {
				lang = translations.DefaultLanguage()
			}

			result, err := translations.Translate(cmd.Context(), category, args[0], params, lang)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", settings.ConfigPath, "pipeline definition file")
	cmd.Flags().StringVarP(&language, "lang", "l", settings.Language, "target language (default: pipeline default)")
	cmd.Flags().StringVarP(&category, "category", "C", "app", "message category")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log misses and formatter failures")
	return cmd
}

func newSourcesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "List registered source types",
		RunE: func(cmd *cobra.Command, args []string) error {
			types := i18n.SourceTypes()
			sort.Strings(types)
			for _, name := range types {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

// parseParams turns name=value arguments into a parameter map.
func parseParams(args []string) (i18n.M, error) {
	if len(args) == 0 {
		return nil, nil
	}
	params := make(i18n.M, len(args))
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("parameter %q is not of the form name=value", arg)
		}
		params[name] = value
	}
	return params, nil
}
