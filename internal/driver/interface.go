package driver

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// WriteRequest is one batch: a statement template that unwinds $rows, and the
// flat parameter rows it is applied to.
type WriteRequest struct {
	Name      string
	Statement string
	Rows      []map[string]any
}

type GraphDriver interface {
	ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error)
	BuildIndices(ctx context.Context) error
	// OpenSession acquires the write session for one ingestion run.
	OpenSession(ctx context.Context) (Session, error)
	Close(ctx context.Context) error
}

// Session applies write batches, each in its own transaction. Implementations
// must be safe for concurrent use.
type Session interface {
	Write(ctx context.Context, req WriteRequest) error
	Close(ctx context.Context) error
}
