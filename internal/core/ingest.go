package core

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/agenthands/protgraph/internal/core/extraction"
	"github.com/agenthands/protgraph/internal/core/model"
	"github.com/agenthands/protgraph/internal/driver"
	"github.com/agenthands/protgraph/internal/metrics"
	"github.com/agenthands/protgraph/internal/uniprot"
)

var ErrProteinNotFound = errors.New("protein not found")

// Stage is a set of write batches with no dependency between them. Every
// batch of a stage is durable before the next stage starts.
type Stage []driver.WriteRequest

// Plan orders the batches so that each node's parent exists before the
// statement that matches it runs:
//
//	Protein -> FullName, Gene -> Organism -> Lineage -> Reference ->
//	Citation, Author -> Feature, Evidence, Sequence
func Plan(ex *extraction.Extraction) []Stage {
	return []Stage{
		{
			{Name: "protein", Statement: driver.WriteProteinQuery, Rows: model.Rows([]model.ProteinRecord{ex.Protein})},
		},
		{
			{Name: "full_name", Statement: driver.WriteFullNameQuery, Rows: model.Rows([]model.FullNameRecord{ex.FullName})},
			{Name: "genes", Statement: driver.WriteGeneQuery, Rows: model.Rows(ex.Genes)},
		},
		{
			{Name: "organisms", Statement: driver.WriteOrganismQuery, Rows: model.Rows(ex.Organisms)},
		},
		{
			{Name: "lineages", Statement: driver.WriteLineageQuery, Rows: model.Rows(ex.Lineages)},
		},
		{
			{Name: "references", Statement: driver.WriteReferenceQuery, Rows: model.Rows(ex.References)},
		},
		{
			{Name: "citations", Statement: driver.WriteCitationQuery, Rows: model.Rows(ex.Citations)},
			{Name: "authors", Statement: driver.WriteAuthorQuery, Rows: model.Rows(ex.Authors)},
		},
		{
			{Name: "features", Statement: driver.WriteFeatureQuery, Rows: model.Rows(ex.Features)},
			{Name: "evidences", Statement: driver.WriteEvidenceQuery, Rows: model.Rows(ex.Evidences)},
			{Name: "sequences", Statement: driver.WriteSequenceQuery, Rows: model.Rows(ex.Sequences)},
		},
	}
}

type RunResult struct {
	RunID     string         `json:"run_id"`
	Accession string         `json:"accession"`
	Written   map[string]int `json:"written"`
	Duration  time.Duration  `json:"duration_ns"`
}

// Ingester builds the graph for one document per run. Runs are insert-only:
// ingesting the same entry twice duplicates its nodes, and a failure partway
// leaves the batches already written in place.
type Ingester struct {
	Driver        driver.GraphDriver
	Logger        *zap.Logger
	Metrics       *metrics.Recorder
	Parallel      bool
	UUIDGenerator func() string
}

func NewIngester(d driver.GraphDriver, logger *zap.Logger, rec *metrics.Recorder, parallel bool) *Ingester {
	return &Ingester{
		Driver:        d,
		Logger:        logger,
		Metrics:       rec,
		Parallel:      parallel,
		UUIDGenerator: func() string { return uuid.New().String() },
	}
}

func (g *Ingester) BuildIndices(ctx context.Context) error {
	return g.Driver.BuildIndices(ctx)
}

// Ingest extracts every record first, so a document error aborts before
// anything is written, then applies the plan on one session.
func (g *Ingester) Ingest(ctx context.Context, doc *uniprot.Document) (*RunResult, error) {
	start := time.Now()
	result := &RunResult{RunID: g.UUIDGenerator(), Written: make(map[string]int)}
	log := g.Logger.With(zap.String("run_id", result.RunID))

	err := g.run(ctx, log, doc, result)
	result.Duration = time.Since(start)
	g.Metrics.ObserveRun(err, result.Duration)

	if err != nil {
		log.Error("Ingestion run failed", zap.String("accession", result.Accession), zap.Error(err))
		return result, err
	}
	log.Info("Ingestion run finished",
		zap.String("accession", result.Accession),
		zap.Duration("duration", result.Duration))
	return result, nil
}

func (g *Ingester) run(ctx context.Context, log *zap.Logger, doc *uniprot.Document, result *RunResult) error {
	ex, err := extraction.ExtractAll(doc)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}
	result.Accession = ex.Protein.ID

	session, err := g.Driver.OpenSession(ctx)
	if err != nil {
		return fmt.Errorf("failed to open session: %w", err)
	}
	defer func() {
		if cerr := session.Close(context.WithoutCancel(ctx)); cerr != nil {
			log.Warn("Failed to close session", zap.Error(cerr))
		}
	}()

	var mu sync.Mutex
	for i, stage := range Plan(ex) {
		if err := g.runStage(ctx, log, session, stage, func(name string, rows int) {
			mu.Lock()
			result.Written[name] = rows
			mu.Unlock()
		}); err != nil {
			return fmt.Errorf("stage %d: %w", i+1, err)
		}
	}
	return nil
}

func (g *Ingester) runStage(ctx context.Context, log *zap.Logger, session driver.Session, stage Stage, done func(string, int)) error {
	write := func(ctx context.Context, req driver.WriteRequest) error {
		if len(req.Rows) == 0 {
			log.Debug("Skipping empty batch", zap.String("entity", req.Name))
			return nil
		}
		if err := session.Write(ctx, req); err != nil {
			return err
		}
		g.Metrics.ObserveBatch(req.Name, len(req.Rows))
		done(req.Name, len(req.Rows))
		log.Info("Wrote batch", zap.String("entity", req.Name), zap.Int("rows", len(req.Rows)))
		return nil
	}

	if !g.Parallel || len(stage) < 2 {
		for _, req := range stage {
			if err := write(ctx, req); err != nil {
				return err
			}
		}
		return nil
	}

	eg, egCtx := errgroup.WithContext(ctx)
	for _, req := range stage {
		eg.Go(func() error {
			return write(egCtx, req)
		})
	}
	return eg.Wait()
}

// Summary counts the outgoing relationships of a protein by type.
func (g *Ingester) Summary(ctx context.Context, accession string) (map[string]int64, error) {
	res, err := g.Driver.ExecuteQuery(ctx, driver.ProteinSummaryQuery, map[string]interface{}{"id": accession})
	if err != nil {
		return nil, err
	}
	if len(res.Records) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrProteinNotFound, accession)
	}

	counts := make(map[string]int64)
	for _, rec := range res.Records {
		rel, _ := rec.Get("relationship")
		count, _ := rec.Get("count")
		name, ok := rel.(string)
		if !ok {
			continue
		}
		n, _ := count.(int64)
		counts[name] += n
	}
	return counts, nil
}
