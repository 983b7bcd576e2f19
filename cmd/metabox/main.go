package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-metabox/pkg/hooks"
	"github.com/goliatone/go-metabox/pkg/orchestrator"
	"github.com/goliatone/go-metabox/pkg/panel"
	"github.com/goliatone/go-metabox/pkg/schema"
	"github.com/goliatone/go-metabox/pkg/storage/sqlstore"
)

var (
	defsPath    string
	sqlitePath  string
	postgresURL string
	jsonOutput  bool
	verbose     bool

	logger    *slog.Logger
	store     *sqlstore.Store
	registrar *hooks.Registry
	gen       *orchestrator.Orchestrator
)

func defaultDefs() string {
	if s := os.Getenv("METABOX_DEFINITIONS"); s != "" {
		return s
	}
	return "metabox.yaml"
}

var rootCmd = &cobra.Command{
	Use:           "metabox",
	Short:         "Render and edit content meta box panels from the command line",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

		var err error
		if postgresURL != "" {
			store, err = sqlstore.OpenPostgres(postgresURL)
		} else {
			store, err = sqlstore.OpenSQLite(sqlitePath)
		}
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}

		defs, err := loadDefinitions(defsPath)
		if err != nil {
			return err
		}

		registrar = hooks.New()
		gen = orchestrator.New(
			orchestrator.WithStore(store),
			orchestrator.WithRegistrar(registrar),
			orchestrator.WithLogger(logger),
		)
		if _, err := gen.Mount(defs); err != nil {
			return err
		}
		logger.Debug("definitions loaded", "path", defsPath, "panels", defs.IDs())
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if store != nil {
			store.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&defsPath, "defs", defaultDefs(), "panel definition file or directory (YAML/JSON)")
	rootCmd.PersistentFlags().StringVar(&sqlitePath, "db", "metabox.db", "SQLite database file")
	rootCmd.PersistentFlags().StringVar(&postgresURL, "postgres", os.Getenv("METABOX_POSTGRES_URL"), "Postgres connection URL (overrides --db)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(panelsCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(setCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadDefinitions(path string) (*schema.Store, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("definitions: %w", err)
	}
	if info.IsDir() {
		return schema.LoadFS(os.DirFS(path))
	}
	return schema.LoadFile(path)
}

func lookupPanel(id string) (*panel.Panel, error) {
	p, ok := gen.Panel(id)
	if !ok {
		return nil, fmt.Errorf("unknown panel %q", id)
	}
	return p, nil
}

var stdoutWriter io.Writer = os.Stdout

func stdout() io.Writer {
	return stdoutWriter
}
