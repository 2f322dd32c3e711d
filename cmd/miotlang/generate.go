package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vasiliykireev/multi-lang-for-miot-home-assistant-integration/internal/generator"
	"github.com/vasiliykireev/multi-lang-for-miot-home-assistant-integration/internal/infrastructure/config"
	"github.com/vasiliykireev/multi-lang-for-miot-home-assistant-integration/internal/infrastructure/database"
	"github.com/vasiliykireev/multi-lang-for-miot-home-assistant-integration/internal/infrastructure/logging"
	"github.com/vasiliykireev/multi-lang-for-miot-home-assistant-integration/internal/lang"
	"github.com/vasiliykireev/multi-lang-for-miot-home-assistant-integration/internal/spec"
)

// generateCmd builds the one-shot generation command.
//
// generate fetches (or reads) one specification document, flattens it and
// writes <urn>.json. It works without a config file: defaults cover the
// public registry and current-directory output.
func generateCmd(configPath *string) *cobra.Command {
	var (
		filePath   string
		langTag    string
		outputPath string
		noStore    bool
	)

	cmd := &cobra.Command{
		Use:   "generate <urn>",
		Short: "Generate a translation file for one device model",
		Long: `Generate fetches the specification instance document for the given URN,
flattens it into translation keys and writes <urn>.json.

A version suffix on the URN (":1") is stripped before fetching. With
--file the document is read from a local JSON file instead of the
registry. Unless --no-store is given, the result is also recorded in
the local SQLite catalog.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			return runGenerate(ctx, generateOptions{
				configPath: resolveConfigPath(*configPath),
				urn:        args[0],
				filePath:   filePath,
				langTag:    langTag,
				outputPath: outputPath,
				noStore:    noStore,
			})
		},
	}

	cmd.Flags().StringVarP(&filePath, "file", "f", "",
		"Read the specification from a local JSON file instead of the registry")
	cmd.Flags().StringVarP(&langTag, "lang", "l", "",
		"Language tag for descriptions (default from config)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "",
		"Output file path (default <dir>/<urn>.json)")
	cmd.Flags().BoolVar(&noStore, "no-store", false,
		"Skip recording the result in the SQLite catalog")

	return cmd
}

// generateOptions carries the resolved flags for one generation run.
type generateOptions struct {
	configPath string
	urn        string
	filePath   string
	langTag    string
	outputPath string
	noStore    bool
}

// runGenerate executes one generation run and prints a short summary.
func runGenerate(ctx context.Context, opts generateOptions) error {
	cfg, err := loadConfigOrDefault(opts.configPath)
	if err != nil {
		return err
	}

	log := logging.New(cfg.Logging, version)

	// The catalog is optional for one-shot runs: skip the database entirely
	// when the caller opted out.
	var repo lang.Repository
	if !opts.noStore {
		db, dbErr := database.Open(database.Config{
			Path:        cfg.Database.Path,
			WALMode:     cfg.Database.WALMode,
			BusyTimeout: cfg.Database.BusyTimeout,
		})
		if dbErr != nil {
			return fmt.Errorf("opening database: %w", dbErr)
		}
		defer func() {
			if closeErr := db.Close(); closeErr != nil {
				log.Error("error closing database", "error", closeErr)
			}
		}()

		if migrateErr := db.Migrate(ctx); migrateErr != nil {
			return fmt.Errorf("running migrations: %w", migrateErr)
		}
		repo = lang.NewSQLiteRepository(db.DB)
	}

	gen := generator.New(cfg, spec.NewClient(cfg.Spec, log), repo, nil, nil, log)

	result, err := gen.Generate(ctx, generator.Request{
		URN:        opts.urn,
		Lang:       opts.langTag,
		FilePath:   opts.filePath,
		OutputPath: opts.outputPath,
		SkipStore:  opts.noStore,
		SkipNotify: true,
	})
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d keys (%s, source %s) -> %s\n",
		result.URN, result.KeyCount, result.Lang, result.Source, result.Path)
	return nil
}

// loadConfigOrDefault loads the config file when it exists and falls back
// to defaults otherwise, so the CLI works out of the box.
func loadConfigOrDefault(path string) (*config.Config, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return config.Default(), nil
		}
		return nil, fmt.Errorf("checking config file: %w", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// resolveConfigPath applies the MIOTLANG_CONFIG environment variable when
// the --config flag was left at its default.
func resolveConfigPath(flagValue string) string {
	if flagValue != defaultConfigPath {
		return flagValue
	}
	if path := os.Getenv("MIOTLANG_CONFIG"); path != "" {
		return path
	}
	return flagValue
}
