package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"biblioteca/internal/config"
	"biblioteca/internal/language"
	"biblioteca/internal/linefilter"
	"biblioteca/internal/preflight"
)

func newFilterCommand(ctx *commandContext) *cobra.Command {
	var languages []string
	var field string
	var dryRun bool
	var backup bool

	cmd := &cobra.Command{
		Use:   "filter [FILE]",
		Short: "Keep only the lines of a JSON lines file whose language is allowed",
		Long: "Filter rewrites a line-delimited JSON file in place, keeping the lines whose\n" +
			"language field exactly matches one of the allowed tags. Kept lines are copied\n" +
			"byte for byte; unparseable lines are dropped and counted.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			source := cfg.Filter.Source
			if len(args) == 1 {
				source, err = config.ExpandPath(strings.TrimSpace(args[0]))
				if err != nil {
					return fmt.Errorf("resolve source path: %w", err)
				}
			}
			if strings.TrimSpace(source) == "" {
				return fmt.Errorf("no source file: pass FILE or set filter.source")
			}

			tags := cfg.Filter.AllowedLanguages
			if cmd.Flags().Changed("language") {
				for _, tag := range languages {
					if err := language.Validate(tag); err != nil {
						return fmt.Errorf("--language: %w", err)
					}
				}
				tags = languages
			}
			if strings.TrimSpace(field) == "" {
				field = cfg.Filter.Field
			}

			checks := preflight.ForFilter(source)
			if dryRun {
				checks = checks[:1]
			}
			if err := preflight.FirstFailure(checks); err != nil {
				return err
			}

			runCtx, logger, err := ctx.begin(cmd)
			if err != nil {
				return err
			}
			allowed := language.NewSet(tags...)
			result, err := linefilter.Run(runCtx, linefilter.Options{
				Path:    source,
				Allowed: allowed,
				Field:   field,
				DryRun:  dryRun,
				Backup:  backup,
				Logger:  logger,
			})
			if err != nil {
				return err
			}

			printFilterResult(cmd, result, allowed)
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&languages, "language", "l", nil, "Allowed language tag (repeatable, replaces filter.allowed_languages)")
	cmd.Flags().StringVar(&field, "field", "", "JSON field holding the language tag (default filter.field)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Count matches without rewriting the file")
	cmd.Flags().BoolVar(&backup, "backup", false, "Copy the original to FILE.bak before replacing it")
	return cmd
}

func printFilterResult(cmd *cobra.Command, result linefilter.Result, allowed language.Set) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Kept %d of %d lines processed.\n", result.Kept, result.Total)
	fmt.Fprintf(out, "Skipped %d malformed and %d non-matching lines.\n", result.Malformed, result.Unmatched)
	if result.BackupPath != "" {
		fmt.Fprintf(out, "Original saved to %s.\n", result.BackupPath)
	}
	if !result.Replaced {
		names := make([]string, 0, allowed.Len())
		for _, tag := range allowed.Tags() {
			names = append(names, fmt.Sprintf("%s (%s)", tag, language.DisplayName(tag)))
		}
		fmt.Fprintf(out, "Allowed languages: %s.\n", strings.Join(names, ", "))
		fmt.Fprintln(out, "Dry run: file left unchanged.")
	}
	fmt.Fprintf(out, "Total time: %.2f seconds.\n", result.Elapsed.Seconds())
}
