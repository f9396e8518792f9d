// Package cli provides the command-line interface for cvgraph.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/khajiev13/cv-agent-fiilterer/internal/config"
	"github.com/khajiev13/cv-agent-fiilterer/internal/db"
	"github.com/khajiev13/cv-agent-fiilterer/internal/extract"
	"github.com/khajiev13/cv-agent-fiilterer/internal/graph"
	"github.com/khajiev13/cv-agent-fiilterer/internal/ingest"
	"github.com/khajiev13/cv-agent-fiilterer/internal/metrics"
	"github.com/spf13/cobra"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	verbose bool

	// Shared state wired up in PersistentPreRunE
	cfg        config.Config
	logger     *slog.Logger
	logCleanup func() error
	dbClient   *db.Client
	engine     *graph.Engine
	collector  *metrics.Collector

	// Lazy-initialized: only commands that extract need an LLM.
	extractor *extract.Client
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "cvgraph",
	Short: "CV and job posting ingestion into a recruiting graph",
	Long: `Cvgraph ingests CVs and job postings, extracts structured entities with
an LLM and maintains them as a property graph in SurrealDB.

Documents are queued and processed by a worker pool; re-processing the
same document updates the graph in place instead of duplicating it.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip DB connection for version and help commands
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		cfg = config.Load()
		if verbose {
			cfg.LogLevel = slog.LevelDebug
		}
		logger, logCleanup = config.SetupLogger(cfg.LogFile, cfg.LogLevel)

		ctx := context.Background()
		dbCfg := db.Config{
			URL:       cfg.SurrealDBURL,
			Namespace: cfg.SurrealDBNamespace,
			Database:  cfg.SurrealDBDatabase,
			Username:  cfg.SurrealDBUser,
			Password:  cfg.SurrealDBPass,
			AuthLevel: cfg.SurrealDBAuthLevel,
		}

		var err error
		dbClient, err = db.NewClient(ctx, dbCfg, logger)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}

		if err := dbClient.InitSchema(ctx); err != nil {
			return fmt.Errorf("initialize schema: %w", err)
		}

		engine = graph.NewEngine(dbClient, logger)
		collector = metrics.NewCollector()
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if dbClient != nil {
			if err := dbClient.Close(context.Background()); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to close database: %v\n", err)
			}
		}
		if logCleanup != nil {
			_ = logCleanup()
		}
	},
}

// getIngestService builds the pipeline facade. The LLM client is
// created on first use so read-only commands work without API keys.
func getIngestService() (*ingest.Service, error) {
	if extractor == nil {
		var err error
		extractor, err = extract.NewClient(cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("init extraction client: %w", err)
		}
	}
	return ingest.NewService(cfg, engine, extractor, collector, logger), nil
}

// getExtractor returns the lazily-created extraction client.
func getExtractor() (*extract.Client, error) {
	if extractor == nil {
		var err error
		extractor, err = extract.NewClient(cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("init extraction client: %w", err)
		}
	}
	return extractor, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(roleCmd)
	rootCmd.AddCommand(candidateCmd)
	rootCmd.AddCommand(versionCmd)
}
