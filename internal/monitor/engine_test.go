package monitor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"upwatch/internal/domain"
	"upwatch/internal/repo"
)

// --- fakes ---

type fakeWebsites struct {
	mu    sync.Mutex
	sites []*domain.Website
	err   error
	calls int
}

func (f *fakeWebsites) GetAllWebsites(ctx context.Context) ([]*domain.Website, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.sites, f.err
}

func (f *fakeWebsites) CreateWebsite(ctx context.Context, userID domain.UserID, url string) (*domain.Website, error) {
	return nil, nil
}
func (f *fakeWebsites) GetWebsite(ctx context.Context, id domain.WebsiteID) (*domain.Website, error) {
	return nil, domain.ErrNotFound
}
func (f *fakeWebsites) ListWebsites(ctx context.Context, userID domain.UserID) ([]*domain.Website, error) {
	return nil, nil
}
func (f *fakeWebsites) UpdateWebsite(ctx context.Context, id domain.WebsiteID, userID domain.UserID, newURL string) (*domain.Website, error) {
	return nil, domain.ErrNotFound
}
func (f *fakeWebsites) DeleteWebsite(ctx context.Context, id domain.WebsiteID, userID domain.UserID) error {
	return domain.ErrNotFound
}

type writeOp struct {
	kind string // "record" or "status"
	id   domain.WebsiteID
}

type fakeHistory struct {
	mu        sync.Mutex
	ops       []writeOp
	recordErr error
}

func (f *fakeHistory) RecordCheck(ctx context.Context, websiteID domain.WebsiteID, result domain.CheckResult) (*domain.CheckHistory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ops = append(f.ops, writeOp{"record", websiteID})
	if f.recordErr != nil {
		return nil, f.recordErr
	}
	return &domain.CheckHistory{WebsiteID: websiteID, IsUp: result.IsUp}, nil
}

func (f *fakeHistory) UpdateWebsiteStatus(ctx context.Context, websiteID domain.WebsiteID, isUp bool, responseTimeMS *int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ops = append(f.ops, writeOp{"status", websiteID})
	return nil
}

func (f *fakeHistory) GetWebsiteHistory(ctx context.Context, websiteID domain.WebsiteID, limit, offset int) ([]*domain.CheckHistory, error) {
	return nil, nil
}

type alwaysDown struct{}

func (alwaysDown) Check(ctx context.Context, url string) domain.CheckResult {
	code := 500
	msg := "HTTP 500"
	rtt := 3
	return domain.CheckResult{IsUp: false, StatusCode: &code, ErrorMessage: &msg, ResponseTimeMS: &rtt}
}

var _ repo.WebsiteStore = (*fakeWebsites)(nil)
var _ repo.HistoryStore = (*fakeHistory)(nil)

func site(id string) *domain.Website {
	return &domain.Website{ID: domain.WebsiteID(id), URL: "https://" + id + ".example", TimeAdded: time.Now().UTC()}
}

// --- tests ---

func TestEngine_CycleWritesHistoryBeforeStatus(t *testing.T) {
	ws := &fakeWebsites{sites: []*domain.Website{site("w1"), site("w2")}}
	hs := &fakeHistory{}

	e := NewEngine(zap.NewNop(), ws, hs, alwaysDown{}, time.Minute, time.Second, 1)
	e.runCycle(context.Background())

	hs.mu.Lock()
	defer hs.mu.Unlock()
	if len(hs.ops) != 4 {
		t.Fatalf("want 4 writes (2 per website), got %d: %+v", len(hs.ops), hs.ops)
	}
	// per website, record strictly precedes status
	lastKind := map[domain.WebsiteID]string{}
	for _, op := range hs.ops {
		if op.kind == "status" && lastKind[op.id] != "record" {
			t.Fatalf("status written before record for %s: %+v", op.id, hs.ops)
		}
		lastKind[op.id] = op.kind
	}
}

func TestEngine_SnapshotErrorSkipsCycle(t *testing.T) {
	ws := &fakeWebsites{sites: []*domain.Website{site("w1")}, err: errors.New("db down")}
	hs := &fakeHistory{}

	e := NewEngine(zap.NewNop(), ws, hs, alwaysDown{}, time.Minute, time.Second, 1)
	e.runCycle(context.Background())

	if len(hs.ops) != 0 {
		t.Fatalf("failed snapshot must skip the cycle, got writes %+v", hs.ops)
	}
}

func TestEngine_RecordFailureStillUpdatesStatus(t *testing.T) {
	// a failed history write is logged, not fatal; the next write proceeds
	ws := &fakeWebsites{sites: []*domain.Website{site("w1")}}
	hs := &fakeHistory{recordErr: errors.New("insert failed")}

	e := NewEngine(zap.NewNop(), ws, hs, alwaysDown{}, time.Minute, time.Second, 1)
	e.runCycle(context.Background())

	hs.mu.Lock()
	defer hs.mu.Unlock()
	if len(hs.ops) != 2 || hs.ops[1].kind != "status" {
		t.Fatalf("want record then status despite record error, got %+v", hs.ops)
	}
}

func TestEngine_FirstCycleWaitsOneInterval(t *testing.T) {
	ws := &fakeWebsites{sites: []*domain.Website{site("w1")}}
	hs := &fakeHistory{}

	e := NewEngine(zap.NewNop(), ws, hs, alwaysDown{}, 60*time.Millisecond, time.Second, 1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go e.Run(ctx)

	// well inside the first interval: nothing may have run yet
	time.Sleep(20 * time.Millisecond)
	ws.mu.Lock()
	early := ws.calls
	ws.mu.Unlock()
	if early != 0 {
		t.Fatalf("no cycle may run before the first interval elapses, got %d", early)
	}

	// after a couple of intervals the engine must have cycled
	time.Sleep(150 * time.Millisecond)
	ws.mu.Lock()
	later := ws.calls
	ws.mu.Unlock()
	if later == 0 {
		t.Fatalf("expected at least one cycle after the interval")
	}
}

func TestEngine_ZeroIntervalDisabled(t *testing.T) {
	ws := &fakeWebsites{sites: []*domain.Website{site("w1")}}
	hs := &fakeHistory{}

	e := NewEngine(zap.NewNop(), ws, hs, alwaysDown{}, 0, time.Second, 1)

	done := make(chan struct{})
	go func() {
		e.Run(context.Background())
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("disabled engine must return immediately")
	}
}
