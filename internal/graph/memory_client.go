package graph

import (
	"context"
	"sync"
)

// Handler answers a query issued against a MemoryClient.
type Handler func(q ExecutedQuery) (Result, error)

// MemoryClient is an in-memory Client for tests. Reads and writes are recorded;
// responses come from queued results first, then from the optional handler.
type MemoryClient struct {
	mu           sync.Mutex
	writeCalls   []ExecutedQuery
	readCalls    []ExecutedQuery
	readResults  []Result
	writeResults []Result
	readHandler  Handler
	writeHandler Handler
	err          error
	connectivity error
	closed       bool
}

// ExecutedQuery captures a cypher statement and parameters executed against the graph.
type ExecutedQuery struct {
	Query  string
	Params map[string]any
}

// NewMemoryClient returns an empty MemoryClient.
func NewMemoryClient() *MemoryClient {
	return &MemoryClient{}
}

// WithError makes every subsequent query fail with err.
func (m *MemoryClient) WithError(err error) *MemoryClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
	return m
}

// WithConnectivityError forces VerifyConnectivity to return err.
func (m *MemoryClient) WithConnectivityError(err error) *MemoryClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connectivity = err
	return m
}

// OnRead installs a handler consulted when no queued read result remains.
func (m *MemoryClient) OnRead(h Handler) *MemoryClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readHandler = h
	return m
}

// OnWrite installs a handler consulted when no queued write result remains.
func (m *MemoryClient) OnWrite(h Handler) *MemoryClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeHandler = h
	return m
}

// PushReadResult queues a result for the next ExecuteRead call.
func (m *MemoryClient) PushReadResult(res Result) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readResults = append(m.readResults, res)
}

// PushWriteResult queues a result for the next ExecuteWrite call.
func (m *MemoryClient) PushWriteResult(res Result) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeResults = append(m.writeResults, res)
}

func (m *MemoryClient) ExecuteWrite(_ context.Context, cypher string, params map[string]any) (Result, error) {
	return m.execute(true, cypher, params)
}

func (m *MemoryClient) ExecuteRead(_ context.Context, cypher string, params map[string]any) (Result, error) {
	return m.execute(false, cypher, params)
}

func (m *MemoryClient) execute(write bool, cypher string, params map[string]any) (Result, error) {
	m.mu.Lock()
	calls, queued, h := &m.readCalls, &m.readResults, m.readHandler
	if write {
		calls, queued, h = &m.writeCalls, &m.writeResults, m.writeHandler
	}
	if m.closed {
		m.mu.Unlock()
		return Result{}, ErrClosed
	}
	if m.err != nil {
		err := m.err
		m.mu.Unlock()
		return Result{}, err
	}

	q := ExecutedQuery{Query: cypher, Params: cloneMap(params)}
	*calls = append(*calls, q)

	if len(*queued) > 0 {
		res := (*queued)[0]
		*queued = (*queued)[1:]
		m.mu.Unlock()
		return res, nil
	}
	m.mu.Unlock()

	if h == nil {
		return Result{}, nil
	}
	return h(q)
}

func (m *MemoryClient) VerifyConnectivity(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	return m.connectivity
}

func (m *MemoryClient) Close(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// WriteCalls returns a snapshot of executed write queries.
func (m *MemoryClient) WriteCalls() []ExecutedQuery {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ExecutedQuery(nil), m.writeCalls...)
}

// ReadCalls returns a snapshot of executed read queries.
func (m *MemoryClient) ReadCalls() []ExecutedQuery {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ExecutedQuery(nil), m.readCalls...)
}

func cloneMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
