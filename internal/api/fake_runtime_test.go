package api

import (
	"context"
	"sync"

	"github.com/rusenback/docker-gateway/internal/model"
)

// fakeRuntime records calls and returns canned results
type fakeRuntime struct {
	mu sync.Mutex

	containers []model.ContainerSummary
	refs       map[string]model.ContainerRef
	logs       []byte

	listErr    error
	inspectErr error
	startErr   error
	stopErr    error
	logsErr    error

	calls    int
	lastTail int
	started  []string
	stopped  []string
}

func (f *fakeRuntime) called() {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
}

func (f *fakeRuntime) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeRuntime) ListContainers(ctx context.Context) ([]model.ContainerSummary, error) {
	f.called()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.containers, nil
}

func (f *fakeRuntime) InspectContainer(ctx context.Context, id string) (model.ContainerRef, error) {
	f.called()
	if f.inspectErr != nil {
		return model.ContainerRef{}, f.inspectErr
	}
	ref, ok := f.refs[id]
	if !ok {
		return model.ContainerRef{}, notFound(id)
	}
	return ref, nil
}

func (f *fakeRuntime) StartContainer(ctx context.Context, ref model.ContainerRef) error {
	f.called()
	f.mu.Lock()
	f.started = append(f.started, ref.ID)
	f.mu.Unlock()
	return f.startErr
}

func (f *fakeRuntime) StopContainer(ctx context.Context, ref model.ContainerRef) error {
	f.called()
	f.mu.Lock()
	f.stopped = append(f.stopped, ref.ID)
	f.mu.Unlock()
	return f.stopErr
}

func (f *fakeRuntime) ContainerLogs(ctx context.Context, ref model.ContainerRef, tail int) ([]byte, error) {
	f.called()
	f.mu.Lock()
	f.lastTail = tail
	f.mu.Unlock()
	if f.logsErr != nil {
		return nil, f.logsErr
	}
	return f.logs, nil
}

func (f *fakeRuntime) Ping(ctx context.Context) error {
	return nil
}

func (f *fakeRuntime) Close() error {
	return nil
}

// fakeAudit collects recorded entries
type fakeAudit struct {
	mu      sync.Mutex
	entries []model.AuditEntry
}

func (a *fakeAudit) Record(entry model.AuditEntry) {
	a.mu.Lock()
	a.entries = append(a.entries, entry)
	a.mu.Unlock()
}
