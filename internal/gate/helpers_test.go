package gate

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/amoylab/sessiongate/internal/common/cnst"
	"github.com/amoylab/sessiongate/internal/session"
)

type fakeRequest map[string]string

func (r fakeRequest) Var(name string) (string, bool) {
	v, ok := r[name]
	return v, ok
}

func authRequest(header string) fakeRequest {
	return fakeRequest{cnst.VarAuthorization: header}
}

type fakeResponse struct {
	status  int
	headers map[string]string
	body    []byte
}

func newFakeResponse() *fakeResponse {
	return &fakeResponse{headers: map[string]string{}}
}

func (r *fakeResponse) SetStatus(code int)          { r.status = code }
func (r *fakeResponse) SetHeader(key, value string) { r.headers[key] = value }
func (r *fakeResponse) SetBody(body []byte)         { r.body = body }

type panicResponse struct{}

func (panicResponse) SetStatus(int)            { panic("status") }
func (panicResponse) SetHeader(string, string) { panic("header") }
func (panicResponse) SetBody([]byte)           { panic("body closed") }

type countingChain struct {
	mu    sync.Mutex
	calls int
}

func (c *countingChain) Filter(context.Context, Request, Response) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
}

func (c *countingChain) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

var errStoreDown = errors.New("dial tcp 10.0.0.5:6379: connect: connection refused")

// stubStore lets tests control Get
type stubStore struct {
	get func(ctx context.Context, key string) (string, error)

	mu   sync.Mutex
	keys []string
}

var _ session.Store = (*stubStore)(nil)

func (s *stubStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	s.keys = append(s.keys, key)
	s.mu.Unlock()
	return s.get(ctx, key)
}

func (s *stubStore) Ping(context.Context) error { return nil }
func (s *stubStore) Close() error               { return nil }

func (s *stubStore) lookups() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.keys...)
}

type recordedLookup struct {
	store, result string
}

type fakeRecorder struct {
	mu        sync.Mutex
	decisions []string
	lookups   []recordedLookup
}

func (r *fakeRecorder) ObserveDecision(code string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.decisions = append(r.decisions, code)
}

func (r *fakeRecorder) ObserveLookup(store, result string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lookups = append(r.lookups, recordedLookup{store, result})
}
