package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"biblioteca/internal/config"
	"biblioteca/internal/logging"
	"biblioteca/internal/preflight"
	"biblioteca/internal/store"
)

func newDBCommand(ctx *commandContext) *cobra.Command {
	var databaseFlag string

	dbCmd := &cobra.Command{
		Use:   "db",
		Short: "Catalog database utilities",
	}
	dbCmd.PersistentFlags().StringVar(&databaseFlag, "database", "", "Database file (default paths.database)")

	openStore := func(cmd *cobra.Command, schema string) (context.Context, *store.Store, error) {
		cfg, err := ctx.ensureConfig()
		if err != nil {
			return nil, nil, err
		}
		if path := strings.TrimSpace(databaseFlag); path != "" {
			expanded, err := config.ExpandPath(path)
			if err != nil {
				return nil, nil, fmt.Errorf("resolve database path: %w", err)
			}
			if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
				return nil, nil, fmt.Errorf("create database directory: %w", err)
			}
			cfg.Paths.Database = expanded
		}
		checked := *cfg
		checked.Paths.SchemaFile = schema
		if err := preflight.FirstFailure(preflight.ForDatabase(&checked)); err != nil {
			return nil, nil, err
		}
		runCtx, logger, err := ctx.begin(cmd)
		if err != nil {
			return nil, nil, err
		}
		st, err := store.Open(runCtx, cfg.Paths.Database, logging.WithContext(runCtx, logger))
		if err != nil {
			return nil, nil, err
		}
		return runCtx, st, nil
	}

	dbCmd.AddCommand(newDBInitCommand(ctx, openStore))
	dbCmd.AddCommand(newDBLoadCommand(ctx, openStore))
	dbCmd.AddCommand(newDBTablesCommand(openStore))
	return dbCmd
}

// storeOpener applies --database, runs the database preflight checks (plus a
// readability check of schema when non-empty) and opens the store.
type storeOpener func(cmd *cobra.Command, schema string) (context.Context, *store.Store, error)

func newDBInitCommand(ctx *commandContext, open storeOpener) *cobra.Command {
	var schemaFlag string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Run the schema script against the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			schema := cfg.Paths.SchemaFile
			if path := strings.TrimSpace(schemaFlag); path != "" {
				schema, err = config.ExpandPath(path)
				if err != nil {
					return fmt.Errorf("resolve schema path: %w", err)
				}
			}

			runCtx, st, err := open(cmd, schema)
			if err != nil {
				return err
			}
			defer st.Close()

			if schema == "" {
				err = st.ExecScript(runCtx, store.DefaultSchema())
			} else {
				err = st.ExecFile(runCtx, schema)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "SQL executed successfully.")
			return nil
		},
	}

	cmd.Flags().StringVar(&schemaFlag, "schema", "", "SQL script to run (default paths.schema_file, else the built-in schema)")
	return cmd
}

func newDBLoadCommand(ctx *commandContext, open storeOpener) *cobra.Command {
	var replace bool

	cmd := &cobra.Command{
		Use:   "load [NAME...]",
		Short: "Load JSON datasets into tables",
		Long: "Load creates one table per dataset from its JSON file. Without names every\n" +
			"configured dataset is loaded in order. Column names and types are inferred\n" +
			"from the data.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			datasets, err := selectDatasets(cfg, args)
			if err != nil {
				return err
			}

			files := make([]string, len(datasets))
			checks := make([]preflight.Result, len(datasets))
			for i, ds := range datasets {
				files[i], err = cfg.ResolveDataPath(ds.File)
				if err != nil {
					return fmt.Errorf("dataset %s: %w", ds.Name, err)
				}
				checks[i] = preflight.CheckFileReadable("Dataset "+ds.Name, files[i])
			}
			if err := preflight.FirstFailure(checks); err != nil {
				return err
			}

			runCtx, st, err := open(cmd, "")
			if err != nil {
				return err
			}
			defer st.Close()

			out := cmd.OutOrStdout()
			for i, ds := range datasets {
				result, err := st.LoadJSON(runCtx, ds.Table, files[i], store.LoadOptions{Replace: replace})
				if err != nil {
					return fmt.Errorf("load %s: %w", ds.Name, err)
				}
				fmt.Fprintf(out, "Loaded %d rows into %s (%d columns) in %.2f seconds.\n",
					result.Rows, result.Table, len(result.Columns), result.Elapsed.Seconds())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&replace, "replace", false, "Drop existing tables before loading")
	return cmd
}

func selectDatasets(cfg *config.Config, names []string) ([]config.Dataset, error) {
	if len(names) == 0 {
		if len(cfg.Load.Datasets) == 0 {
			return nil, fmt.Errorf("no datasets configured")
		}
		return cfg.Load.Datasets, nil
	}
	selected := make([]config.Dataset, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		ds, ok := cfg.Dataset(name)
		if !ok {
			return nil, fmt.Errorf("unknown dataset %q (configured: %s)", name, strings.Join(cfg.DatasetNames(), ", "))
		}
		if seen[ds.Name] {
			continue
		}
		seen[ds.Name] = true
		selected = append(selected, ds)
	}
	return selected, nil
}

func newDBTablesCommand(open storeOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List tables with column and row counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runCtx, st, err := open(cmd, "")
			if err != nil {
				return err
			}
			defer st.Close()

			tables, err := st.Tables(runCtx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(tables) == 0 {
				fmt.Fprintln(out, "No tables")
				return nil
			}
			rows := make([][]string, 0, len(tables))
			var total int64
			for _, info := range tables {
				rows = append(rows, []string{
					info.Name,
					strconv.Itoa(info.Columns),
					strconv.FormatInt(info.Rows, 10),
				})
				total += info.Rows
			}
			view := tableView{
				headers: []string{"Table", "Columns", "Rows"},
				aligns:  []columnAlignment{alignLeft, alignRight, alignRight},
				footer:  []string{"Total", "", strconv.FormatInt(total, 10)},
			}
			fmt.Fprintf(out, "Database: %s\n", st.Path())
			fmt.Fprintln(out, view.render(rows))
			return nil
		},
	}
}
