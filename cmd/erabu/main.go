// Package main is the erabu CLI entry point.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/hyperjump/erabu/internal/catalog"
	"github.com/hyperjump/erabu/internal/classify"
	"github.com/hyperjump/erabu/internal/cli"
	"github.com/hyperjump/erabu/internal/config"
	"github.com/hyperjump/erabu/internal/models"
	"github.com/hyperjump/erabu/internal/pipeline"
	"github.com/hyperjump/erabu/internal/ranking"
	"github.com/hyperjump/erabu/internal/server"
	"github.com/hyperjump/erabu/pkg/utils"
	"go.uber.org/zap"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/erabu/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists
// it is used, so that "erabu server" from the project dir uses the project's
// config (including debug). Returns the config and the path actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "build":
		runBuild()
	case "aggregate":
		runAggregate()
	case "query":
		runQuery()
	case "search":
		runBrowse()
	case "server":
		runServer()
	case "status":
		runStatus()
	case "version", "--version", "-v":
		fmt.Printf("erabu version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Print(`erabu - ranked product catalog builder and buying-guide retrieval engine

Usage:
  erabu build      [-config path] [-meta path] [-reviews path]   run the two-pass extraction
  erabu aggregate  [-config path]                                aggregate reviews into the catalog
  erabu query      [flags]                                       rank catalog products for a plan
  erabu search     [-limit n] <query>                            free-text catalog browsing
  erabu server     [-config path] [-debug]                       start the HTTP API
  erabu status     [-config path]                                show built index status
  erabu version                                                  print the version

Run "erabu <command> -h" for command flags.
`)
}

// mustLoad loads config and logger for a subcommand, exiting on failure.
func mustLoad(configPath string, debug bool) (*config.Config, *zap.Logger) {
	cfg, resolved, err := loadConfig(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug || debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	logger.Debug("config loaded", zap.String("config_path", resolved))
	return cfg, logger
}

func runBuild() {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	metaPath := fs.String("meta", "", "metadata JSONL path (overrides config)")
	reviewsPath := fs.String("reviews", "", "reviews JSONL path (overrides config)")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, logger := mustLoad(*configPath, *debug)
	defer logger.Sync()

	if *metaPath != "" {
		cfg.Data.MetadataPath = *metaPath
	}
	if *reviewsPath != "" {
		cfg.Data.ReviewsPath = *reviewsPath
	}

	classifier := classify.NewClassifier(&cfg.Classifier)
	builder := pipeline.NewBuilder(classifier,
		pipeline.WithLogger(logger),
		pipeline.WithProgressEvery(cfg.Build.ProgressEvery),
	)

	start := time.Now()
	stats, err := builder.Run(cfg.Data.MetadataPath, cfg.Data.ReviewsPath,
		cfg.Data.ProductIndexPath, cfg.Data.ReviewIndexPath)
	if err != nil {
		logger.Fatal("Build failed", zap.Error(err))
	}
	logger.Info("build complete",
		zap.Int("products", stats.Pass1.Kept),
		zap.Int("reviews", stats.Pass2.Kept),
		zap.Duration("elapsed", time.Since(start)),
	)
	fmt.Printf("Built %d products and %d reviews in %s\n",
		stats.Pass1.Kept, stats.Pass2.Kept, time.Since(start).Round(time.Millisecond))
}

func runAggregate() {
	fs := flag.NewFlagSet("aggregate", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, logger := mustLoad(*configPath, *debug)
	defer logger.Sync()

	agg := pipeline.NewAggregator(
		pipeline.WithAggregatorLogger(logger),
		pipeline.WithMaxSnippets(cfg.Build.MaxSnippets),
	)
	stats, err := agg.AggregateFiles(cfg.Data.ProductIndexPath, cfg.Data.ReviewIndexPath,
		cfg.Data.AggregatedIndexPath)
	if err != nil {
		logger.Fatal("Aggregation failed", zap.Error(err))
	}
	fmt.Printf("Aggregated %d reviews into %d catalog records\n",
		stats.ReviewsUsed, stats.ProductsWritten)
}

func runQuery() {
	fs := flag.NewFlagSet("query", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	planPath := fs.String("plan", "", "path to a plan JSON file (overrides plan flags)")
	budget := fs.Float64("budget", 0, "target budget (0 = no budget constraint)")
	flex := fs.Float64("flex", 0, "budget flexibility fraction (default 0.3)")
	minReviews := fs.Int("min-reviews", -1, "minimum review count (default 10)")
	useCase := fs.String("use-case", "general", "use case: commute|gym|audiophile|gaming|general")
	must := fs.String("must", "", "comma-separated must-have keywords")
	boost := fs.String("boost", "", "comma-separated boost keywords")
	topK := fs.Int("top-k", 0, "number of results (default from config)")
	format := fs.String("format", "text", "output format: text|json")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, logger := mustLoad(*configPath, *debug)
	defer logger.Sync()

	plan, err := planFromFlags(*planPath, *budget, *flex, *minReviews, *useCase, *must, *boost)
	if err != nil {
		logger.Fatal("Invalid plan", zap.Error(err))
	}

	store, err := catalog.NewStore(cfg.Data.AggregatedIndexPath, catalog.WithStoreLogger(logger))
	if err != nil {
		logger.Fatal("Failed to load catalog", zap.Error(err))
	}

	engine := ranking.NewEngine(store, ranking.NewScorer(&cfg.Scoring),
		ranking.WithEngineLogger(logger))
	k := *topK
	if k <= 0 {
		k = cfg.Retrieval.TopK
	}
	ranked := engine.Retrieve(plan, k)

	if err := cli.WriteRankedProducts(os.Stdout, ranked, cli.OutputFormat(*format)); err != nil {
		logger.Fatal("Failed to write results", zap.Error(err))
	}
}

// planFromFlags builds a plan either from a JSON file or from the individual
// query flags.
func planFromFlags(planPath string, budget, flex float64, minReviews int, useCase, must, boost string) (*models.BuyingGuidePlan, error) {
	if planPath != "" {
		data, err := os.ReadFile(planPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read plan file: %w", err)
		}
		var plan models.BuyingGuidePlan
		if err := json.Unmarshal(data, &plan); err != nil {
			return nil, fmt.Errorf("failed to parse plan file: %w", err)
		}
		return &plan, nil
	}

	plan := &models.BuyingGuidePlan{
		BudgetFlexPct:    flex,
		UseCase:          useCase,
		MustHaveKeywords: splitKeywords(must),
		BoostKeywords:    splitKeywords(boost),
	}
	if budget > 0 {
		plan.Budget = &budget
	}
	if minReviews >= 0 {
		plan.MinReviews = &minReviews
	}
	return plan, nil
}

func splitKeywords(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func runBrowse() {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	limit := fs.Int("limit", 0, "max hits (default from config)")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	query := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if query == "" {
		fmt.Println("Usage: erabu search [flags] <query>")
		os.Exit(1)
	}

	cfg, logger := mustLoad(*configPath, *debug)
	defer logger.Sync()

	store, err := catalog.NewStore(cfg.Data.AggregatedIndexPath, catalog.WithStoreLogger(logger))
	if err != nil {
		logger.Fatal("Failed to load catalog", zap.Error(err))
	}
	browse, err := catalog.NewBrowseIndex(store.Snapshot())
	if err != nil {
		logger.Fatal("Failed to build browse index", zap.Error(err))
	}
	defer browse.Close()

	n := *limit
	if n <= 0 {
		n = cfg.Retrieval.BrowseLimit
	}
	hits, err := browse.Search(query, n)
	if err != nil {
		logger.Fatal("Search failed", zap.Error(err))
	}

	fmt.Printf("\nFound %d products for %q\n\n", len(hits), query)
	for i, hit := range hits {
		product := store.Get(hit.ID)
		if product == nil {
			continue
		}
		fmt.Printf("%2d. [%.3f] %s  %s\n", i+1, hit.Score, hit.ID, utils.Truncate(product.Title, 80))
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	noBrowse := fs.Bool("no-browse", false, "disable the free-text browse index")
	_ = fs.Parse(os.Args[2:])

	cfg, logger := mustLoad(*configPath, *debug)
	defer logger.Sync()

	store, err := catalog.NewStore(cfg.Data.AggregatedIndexPath, catalog.WithStoreLogger(logger))
	if err != nil {
		logger.Fatal("Failed to load catalog", zap.Error(err))
	}

	var browse *catalog.BrowseIndex
	if !*noBrowse {
		browse, err = catalog.NewBrowseIndex(store.Snapshot())
		if err != nil {
			logger.Fatal("Failed to build browse index", zap.Error(err))
		}
		defer browse.Close()
	}

	engine := ranking.NewEngine(store, ranking.NewScorer(&cfg.Scoring),
		ranking.WithEngineLogger(logger))
	srv := server.NewServer(engine, store, browse, cfg, logger)

	// Reload the snapshot when an offline rebuild replaces the index file.
	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	go func() {
		if err := store.Watch(watchCtx); err != nil {
			logger.Warn("catalog watch stopped", zap.Error(err))
		}
	}()

	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	watchCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	_ = fs.Parse(os.Args[2:])

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	for _, index := range []struct {
		name string
		path string
	}{
		{"product index", cfg.Data.ProductIndexPath},
		{"review index", cfg.Data.ReviewIndexPath},
		{"aggregated index", cfg.Data.AggregatedIndexPath},
	} {
		info, err := os.Stat(index.path)
		if err != nil {
			fmt.Printf("%-17s missing   %s\n", index.name, index.path)
			continue
		}
		fmt.Printf("%-17s %8d bytes  %s\n", index.name, info.Size(), index.path)
	}

	products, err := catalog.LoadIndexFile(cfg.Data.AggregatedIndexPath)
	if err == nil {
		fmt.Printf("catalog products  %d\n", len(products))
	}
}
