package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/agenthands/protgraph/internal/config"
	"github.com/agenthands/protgraph/internal/core"
	"github.com/agenthands/protgraph/internal/core/extraction"
	"github.com/agenthands/protgraph/internal/driver"
	"github.com/agenthands/protgraph/internal/metrics"
	"github.com/agenthands/protgraph/internal/source"
)

var (
	cfgPath   string
	sourceRef string
	verbose   bool
)

func main() {
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:           "protgraph",
		Short:         "Load UniProt entries into a Neo4j protein graph",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "config/config.toml", "path to the TOML config file")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")

	ingestCmd := &cobra.Command{
		Use:   "ingest",
		Short: "Fetch a UniProt entry and write it to the graph",
		RunE:  runIngest,
	}
	ingestCmd.Flags().StringVar(&sourceRef, "source", "", "document URL, s3://bucket/key or file path (default: configured source url)")

	extractCmd := &cobra.Command{
		Use:   "extract",
		Short: "Print the records an ingestion would write, without touching the database",
		RunE:  runExtract,
	}
	extractCmd.Flags().StringVar(&sourceRef, "source", "", "document URL, s3://bucket/key or file path (default: configured source url)")

	indicesCmd := &cobra.Command{
		Use:   "indices",
		Short: "Create the graph indices",
		RunE:  runIndices,
	}

	root.AddCommand(ingestCmd, extractCmd, indicesCmd)

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func setup() (*config.Config, *zap.Logger, error) {
	logger, err := newLogger()
	if err != nil {
		return nil, nil, err
	}
	cfg, err := config.Resolve(cfgPath)
	if err != nil {
		return nil, nil, err
	}
	if sourceRef == "" {
		sourceRef = cfg.Source.URL
	}
	return cfg, logger, nil
}

func openDriver(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*driver.Neo4jDriver, error) {
	return driver.NewNeo4jDriver(ctx, cfg.Neo4j.URI, cfg.Neo4j.User, cfg.Neo4j.Password, cfg.Neo4j.Database, logger)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()
	ctx := cmd.Context()

	doc, err := source.NewLoader(ctx, cfg, logger).Load(ctx, sourceRef)
	if err != nil {
		return err
	}

	d, err := openDriver(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer d.Close(ctx)

	ingester := core.NewIngester(d, logger, metrics.NewRecorder(prometheus.NewRegistry()), cfg.Ingest.Parallel)
	if cfg.Ingest.BuildIndices {
		if err := ingester.BuildIndices(ctx); err != nil {
			logger.Warn("Failed to build indices", zap.Error(err))
		}
	}

	result, err := ingester.Ingest(ctx, doc)
	if err != nil {
		return err
	}
	return printJSON(cmd, result)
}

func runExtract(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()
	ctx := cmd.Context()

	doc, err := source.NewLoader(ctx, cfg, logger).Load(ctx, sourceRef)
	if err != nil {
		return err
	}
	ex, err := extraction.ExtractAll(doc)
	if err != nil {
		return err
	}
	return printJSON(cmd, ex)
}

func runIndices(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()
	ctx := cmd.Context()

	d, err := openDriver(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer d.Close(ctx)

	if err := d.BuildIndices(ctx); err != nil {
		return err
	}
	logger.Info("Indices created", zap.Int("count", len(driver.IndexQueries)))
	return nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
