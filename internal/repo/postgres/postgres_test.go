package postgres

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"go.uber.org/zap"

	"upwatch/internal/auth"
	"upwatch/internal/domain"
)

// Integration test; skipped unless DATABASE_URL points at a reachable
// Postgres. Runs the embedded migrations on a fresh DB/volume.
func TestPostgresStore_EndToEnd(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set; skipping Postgres integration test")
	}

	ctx := context.Background()
	if err := RunMigrations(ctx, dsn); err != nil {
		t.Fatalf("migrations: %v", err)
	}

	store, err := New(ctx, dsn, zap.NewNop())
	if err != nil {
		t.Fatalf("New store: %v", err)
	}
	defer store.Close()

	// Unique usernames per run to avoid UNIQUE collisions with earlier runs.
	suffix := fmt.Sprintf("%d", time.Now().UTC().UnixNano())
	hash, err := auth.HashPassword("pw")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	alice, err := store.SignUp(ctx, "alice-"+suffix, hash)
	if err != nil {
		t.Fatalf("SignUp alice: %v", err)
	}
	if _, err := store.SignUp(ctx, "alice-"+suffix, hash); !errors.Is(err, domain.ErrDuplicate) {
		t.Fatalf("duplicate username: want ErrDuplicate, got %v", err)
	}
	bob, err := store.SignUp(ctx, "bob-"+suffix, hash)
	if err != nil {
		t.Fatalf("SignUp bob: %v", err)
	}

	if got, err := store.SignIn(ctx, "alice-"+suffix, "pw"); err != nil || got != alice {
		t.Fatalf("SignIn: got %s err=%v", got, err)
	}
	if _, err := store.SignIn(ctx, "alice-"+suffix, "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("bad password: want ErrInvalidCredentials, got %v", err)
	}

	// Website CRUD under ownership
	w, err := store.CreateWebsite(ctx, alice, "https://example.com")
	if err != nil {
		t.Fatalf("CreateWebsite: %v", err)
	}
	got, err := store.GetWebsite(ctx, w.ID)
	if err != nil || got.UserID != alice || got.IsUp != nil {
		t.Fatalf("GetWebsite: %+v err=%v", got, err)
	}
	if _, err := store.UpdateWebsite(ctx, w.ID, bob, "https://evil.example"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("cross-tenant update: want ErrNotFound, got %v", err)
	}
	if err := store.DeleteWebsite(ctx, w.ID, bob); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("cross-tenant delete: want ErrNotFound, got %v", err)
	}

	// Probe write path: record then status, down then up
	code := 503
	rtt := 120
	msg := "HTTP 503"
	if _, err := store.RecordCheck(ctx, w.ID, domain.CheckResult{
		IsUp: false, ResponseTimeMS: &rtt, StatusCode: &code, ErrorMessage: &msg,
	}); err != nil {
		t.Fatalf("RecordCheck: %v", err)
	}
	if err := store.UpdateWebsiteStatus(ctx, w.ID, false, &rtt); err != nil {
		t.Fatalf("UpdateWebsiteStatus(down): %v", err)
	}
	got, _ = store.GetWebsite(ctx, w.ID)
	if got.IsUp == nil || *got.IsUp || got.LastDownTime == nil {
		t.Fatalf("down probe not reflected: %+v", got)
	}
	downAt := *got.LastDownTime

	okRTT := 30
	if err := store.UpdateWebsiteStatus(ctx, w.ID, true, &okRTT); err != nil {
		t.Fatalf("UpdateWebsiteStatus(up): %v", err)
	}
	got, _ = store.GetWebsite(ctx, w.ID)
	if got.IsUp == nil || !*got.IsUp {
		t.Fatalf("up probe not reflected: %+v", got)
	}
	if got.LastDownTime == nil || !got.LastDownTime.Equal(downAt) {
		t.Fatalf("last_down_time must carry forward, got %v want %v", got.LastDownTime, downAt)
	}

	rows, err := store.GetWebsiteHistory(ctx, w.ID, 50, 0)
	if err != nil || len(rows) != 1 {
		t.Fatalf("history: %d rows err=%v", len(rows), err)
	}
	if rows[0].StatusCode == nil || *rows[0].StatusCode != 503 || rows[0].ErrorMessage == nil || *rows[0].ErrorMessage != "HTTP 503" {
		t.Fatalf("unexpected history row: %+v", rows[0])
	}

	// Cascade: deleting the website takes its history with it
	if err := store.DeleteWebsite(ctx, w.ID, alice); err != nil {
		t.Fatalf("DeleteWebsite: %v", err)
	}
	rows, err = store.GetWebsiteHistory(ctx, w.ID, 50, 0)
	if err != nil || len(rows) != 0 {
		t.Fatalf("want cascaded history delete, got %d rows err=%v", len(rows), err)
	}
}
