package core

import (
	"context"
	"errors"
	"sync"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/agenthands/protgraph/internal/driver"
)

type MockDriver struct {
	mu             sync.Mutex
	Writes         []driver.WriteRequest
	FailOn         string
	SessionsOpened int
	SessionsClosed int

	QueryExecuted string
	QueryParams   map[string]interface{}
	MockResult    neo4j.EagerResult
	Err           error
}

func (m *MockDriver) ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	m.QueryExecuted = query
	m.QueryParams = params
	if m.Err != nil {
		return neo4j.EagerResult{}, m.Err
	}
	return m.MockResult, nil
}

func (m *MockDriver) BuildIndices(ctx context.Context) error {
	return nil
}

func (m *MockDriver) OpenSession(ctx context.Context) (driver.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SessionsOpened++
	return &mockSession{d: m}, nil
}

func (m *MockDriver) Close(ctx context.Context) error {
	return nil
}

// Names returns the batch names in write order.
func (m *MockDriver) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, len(m.Writes))
	for i, w := range m.Writes {
		names[i] = w.Name
	}
	return names
}

type mockSession struct {
	d *MockDriver
}

func (s *mockSession) Write(ctx context.Context, req driver.WriteRequest) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	if req.Name == s.d.FailOn {
		return errors.New("transaction rolled back")
	}
	s.d.Writes = append(s.d.Writes, req)
	return nil
}

func (s *mockSession) Close(ctx context.Context) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	s.d.SessionsClosed++
	return nil
}
