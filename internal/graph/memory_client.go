package graph

import (
	"context"
	"sync"
)

// ExecutedQuery captures a cypher statement and its parameters as issued
// against the client.
type ExecutedQuery struct {
	Query  string
	Params map[string]any
}

// queryLog is one side (read or write) of the in-memory client: the queries
// it has seen and the canned results still waiting to be served, in FIFO
// order.
type queryLog struct {
	calls   []ExecutedQuery
	pending []Result
}

func (l *queryLog) record(cypher string, params map[string]any) Result {
	var cloned map[string]any
	if params != nil {
		cloned = make(map[string]any, len(params))
		for k, v := range params {
			cloned[k] = v
		}
	}
	l.calls = append(l.calls, ExecutedQuery{Query: cypher, Params: cloned})

	if len(l.pending) == 0 {
		return Result{}
	}
	next := l.pending[0]
	l.pending = l.pending[1:]
	return next
}

// MemoryClient is an in-memory implementation of the Client interface used to
// test the graph-backed source without a running database.
type MemoryClient struct {
	mu           sync.Mutex
	reads        queryLog
	writes       queryLog
	err          error
	connectivity error
}

// NewMemoryClient instantiates an empty in-memory client.
func NewMemoryClient() *MemoryClient {
	return &MemoryClient{}
}

// WithError configures the client to fail every subsequent read and write.
func (m *MemoryClient) WithError(err error) *MemoryClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
	return m
}

// WithConnectivityError forces VerifyConnectivity to return the supplied error.
func (m *MemoryClient) WithConnectivityError(err error) *MemoryClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connectivity = err
	return m
}

// PushReadResult queues a result for a future ExecuteRead call.
func (m *MemoryClient) PushReadResult(res Result) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reads.pending = append(m.reads.pending, res)
}

// PushWriteResult queues a result for a future ExecuteWrite call.
func (m *MemoryClient) PushWriteResult(res Result) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes.pending = append(m.writes.pending, res)
}

func (m *MemoryClient) ExecuteRead(_ context.Context, cypher string, params map[string]any) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return Result{}, m.err
	}
	return m.reads.record(cypher, params), nil
}

func (m *MemoryClient) ExecuteWrite(_ context.Context, cypher string, params map[string]any) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return Result{}, m.err
	}
	return m.writes.record(cypher, params), nil
}

func (m *MemoryClient) VerifyConnectivity(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connectivity
}

func (m *MemoryClient) Close(context.Context) error {
	return nil
}

// ReadCalls returns a snapshot of executed read queries.
func (m *MemoryClient) ReadCalls() []ExecutedQuery {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ExecutedQuery(nil), m.reads.calls...)
}

// WriteCalls returns a snapshot of executed write queries.
func (m *MemoryClient) WriteCalls() []ExecutedQuery {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ExecutedQuery(nil), m.writes.calls...)
}
