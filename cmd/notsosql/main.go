package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	notsosql "github.com/Basillica/not-so-sql"
)

type app struct {
	v      *viper.Viper
	cfg    *Config
	logger *slog.Logger
}

// open loads the snapshot named by the config.
func (a *app) open() (*notsosql.FileSystem, error) {
	return notsosql.OpenFileSystem(a.cfg.DB, notsosql.WithLogger(a.logger))
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:           "notsosql",
		Short:         "A tiny single-file relational store",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(a.v)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = newLogger(os.Stderr, cfg)
			slog.SetDefault(a.logger)
			return nil
		},
	}

	if err := bindFlags(root, a.v); err != nil {
		panic(err)
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "repl",
			Short: "Start an interactive prompt",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				f, err := a.open()
				if err != nil {
					return err
				}
				return notsosql.RunRepl(f)
			},
		},
		&cobra.Command{
			Use:   "query <sql>",
			Short: "Run a SELECT and print the result",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				results, err := notsosql.RunQuery(a.cfg.DB, strings.Join(args, " "), notsosql.WithLogger(a.logger))
				if err != nil {
					return err
				}
				notsosql.RenderResults(cmd.OutOrStdout(), results)
				return nil
			},
		},
		&cobra.Command{
			Use:   "create-table <table> [column ...]",
			Short: "Create or replace a table",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				f, err := a.open()
				if err != nil {
					return err
				}
				if err := f.CreateTable(args[0], args[1:]); err != nil {
					return err
				}
				a.logger.Info("table created", "table", args[0], "columns", args[1:])
				return nil
			},
		},
		&cobra.Command{
			Use:   "insert <table> [column=value ...]",
			Short: "Insert one row",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				f, err := a.open()
				if err != nil {
					return err
				}
				id, err := f.InsertRow(args[0], notsosql.ParseAssignments(args[1:]))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "inserted row %d\n", id)
				return nil
			},
		},
		&cobra.Command{
			Use:   "tables [table]",
			Short: "Describe one table or list all of them",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				f, err := a.open()
				if err != nil {
					return err
				}
				name := ""
				if len(args) == 1 {
					name = args[0]
				}
				notsosql.DebugTable(cmd.OutOrStdout(), f, name)
				return nil
			},
		},
	)

	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
