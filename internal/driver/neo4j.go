package driver

import (
	"context"
	"fmt"
	"sync"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
)

type Neo4jDriver struct {
	Driver   neo4j.DriverWithContext
	Database string
	Logger   *zap.Logger
}

func NewNeo4jDriver(ctx context.Context, uri, username, password, database string, logger *zap.Logger) (*Neo4jDriver, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create neo4j driver: %w", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("failed to reach neo4j at %s: %w", uri, err)
	}

	logger.Info("Connected to Neo4j", zap.String("uri", uri), zap.String("database", database))
	return &Neo4jDriver{Driver: driver, Database: database, Logger: logger}, nil
}

func (d *Neo4jDriver) Close(ctx context.Context) error {
	return d.Driver.Close(ctx)
}

func (d *Neo4jDriver) ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	var opts []neo4j.ExecuteQueryConfigurationOption
	if d.Database != "" {
		opts = append(opts, neo4j.ExecuteQueryWithDatabase(d.Database))
	}
	result, err := neo4j.ExecuteQuery(ctx, d.Driver, query, params, neo4j.EagerResultTransformer, opts...)
	if err != nil {
		return neo4j.EagerResult{}, fmt.Errorf("failed to execute query: %w", err)
	}
	return *result, nil
}

// BuildIndices creates the indexes behind the match-by-key lookups the write
// statements perform.
func (d *Neo4jDriver) BuildIndices(ctx context.Context) error {
	for _, q := range IndexQueries {
		if _, err := d.ExecuteQuery(ctx, q, nil); err != nil {
			// index may already exist under another name
			d.Logger.Warn("Failed to create index", zap.String("query", q), zap.Error(err))
		}
	}
	return nil
}

func (d *Neo4jDriver) OpenSession(ctx context.Context) (Session, error) {
	s := d.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: d.Database,
	})
	return &neo4jSession{session: s}, nil
}

// neo4jSession serializes writes: a driver session is not safe for
// concurrent use.
type neo4jSession struct {
	mu      sync.Mutex
	session neo4j.SessionWithContext
}

func (s *neo4jSession) Write(ctx context.Context, req WriteRequest) error {
	rows := make([]any, len(req.Rows))
	for i, r := range req.Rows {
		rows[i] = r
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, req.Statement, map[string]any{"rows": rows})
		if err != nil {
			return nil, err
		}
		return result.Consume(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", req.Name, err)
	}
	return nil
}

func (s *neo4jSession) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Close(ctx)
}
