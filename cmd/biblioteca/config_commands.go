package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"biblioteca/internal/config"
	"biblioteca/internal/language"
	"biblioteca/internal/preflight"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigValidateCommand(ctx))
	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigShowCommand(ctx))

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			} else {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve config path: %w", err)
				}
				target = expanded
			}

			dir := filepath.Dir(target)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create config directory %q: %w", dir, err)
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Edit [filter] allowed_languages and [[load.datasets]] to match your data.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration and check the paths it names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			fmt.Fprintf(out, "Config path: %s\n", ctx.configPath)
			if !ctx.configSeen {
				fmt.Fprintln(out, "Config file did not exist; defaults were used")
			}

			results := preflight.ForDatabase(cfg)
			optional := map[string]bool{}
			if cfg.Filter.Source != "" {
				source := preflight.CheckFileReadable("Filter source", cfg.Filter.Source)
				results = append(results, source)
				optional[source.Name] = true
			}
			for _, ds := range cfg.Load.Datasets {
				file, err := cfg.ResolveDataPath(ds.File)
				if err != nil {
					return fmt.Errorf("dataset %s: %w", ds.Name, err)
				}
				check := preflight.CheckFileReadable("Dataset "+ds.Name, file)
				results = append(results, check)
				optional[check.Name] = true
			}

			lines, failures := checkLines(results, optional, colorize)
			for _, line := range renderHeading("Paths", colorize) {
				fmt.Fprintln(out, line)
			}
			for _, line := range lines {
				fmt.Fprintln(out, line)
			}
			if failures > 0 {
				return fmt.Errorf("%d required path check(s) failed", failures)
			}
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			settings := [][]string{
				{"paths.database", cfg.Paths.Database},
				{"paths.data_dir", cfg.Paths.DataDir},
				{"paths.log_dir", valueOrNone(cfg.Paths.LogDir)},
				{"paths.schema_file", valueOrNone(cfg.Paths.SchemaFile)},
				{"filter.source", valueOrNone(cfg.Filter.Source)},
				{"filter.field", cfg.Filter.Field},
				{"logging.format", cfg.Logging.Format},
				{"logging.level", cfg.Logging.Level},
			}
			fmt.Fprintln(out, tableView{title: "Settings", headers: []string{"Setting", "Value"}}.render(settings))

			languages := make([][]string, 0, len(cfg.Filter.AllowedLanguages))
			for _, tag := range cfg.Filter.AllowedLanguages {
				languages = append(languages, []string{tag, language.DisplayName(tag)})
			}
			fmt.Fprintln(out, tableView{title: "Filter", headers: []string{"Allowed language", "Name"}}.render(languages))

			datasets := make([][]string, 0, len(cfg.Load.Datasets))
			for _, ds := range cfg.Load.Datasets {
				file, err := cfg.ResolveDataPath(ds.File)
				if err != nil {
					file = ds.File
				}
				datasets = append(datasets, []string{ds.Name, ds.Table, file})
			}
			fmt.Fprintln(out, tableView{title: "Datasets", headers: []string{"Dataset", "Table", "File"}}.render(datasets))
			return nil
		},
	}
}

func valueOrNone(value string) string {
	if strings.TrimSpace(value) == "" {
		return "(none)"
	}
	return value
}
