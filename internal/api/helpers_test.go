package api

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/rusenback/docker-gateway/internal/config"
	"github.com/rusenback/docker-gateway/internal/docker"
)

const (
	testID   = "0123456789ab"
	testFull = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"
)

// syncBuffer is a log sink safe for the server's concurrent writes
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type testServer struct {
	*Server
	logs  *syncBuffer
	audit *fakeAudit
}

func newTestServer(t *testing.T, rt docker.Runtime, mutate func(*config.Config)) *testServer {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.FrontendDir = ""
	if mutate != nil {
		mutate(&cfg)
	}

	logs := &syncBuffer{}
	audit := &fakeAudit{}
	s := NewServer(rt, cfg, ServerOptions{
		Logger: slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug})),
		Audit:  audit,
	})
	return &testServer{Server: s, logs: logs, audit: audit}
}

func (ts *testServer) do(method, target string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	req.Host = "localhost"
	for i := 0; i+1 < len(headers); i += 2 {
		if headers[i] == "Host" {
			req.Host = headers[i+1]
			continue
		}
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	ts.Handler().ServeHTTP(w, req)
	return w
}

func body(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	b, err := io.ReadAll(w.Result().Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	return string(b)
}

func notFound(id string) error {
	return &docker.Error{Op: "inspect", ID: id, Kind: docker.KindNotFound, Err: errors.New("Error response from daemon: No such container: " + id)}
}

func unavailable(op, id string) error {
	return &docker.Error{Op: op, ID: id, Kind: docker.KindUnavailable, Err: errors.New("dial tcp 10.0.0.2:2375: connect: connection refused")}
}

func apiFailure(op, id string) error {
	return &docker.Error{Op: op, ID: id, Kind: docker.KindAPI, Err: errors.New("Error response from daemon: cannot start: driver failed programming external connectivity")}
}
