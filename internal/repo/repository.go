package repo

import (
	"context"

	"upwatch/internal/domain"
)

// Ports (interfaces) — swap in any DB adapter later.

type UserStore interface {
	// SignUp inserts a new user with a fresh id; domain.ErrDuplicate on a
	// taken username. The password must already be hashed.
	SignUp(ctx context.Context, username, passwordHash string) (domain.UserID, error)
	// SignIn loads the user by username, verifies the password against the
	// stored hash and returns the user id. Unknown username and bad
	// password are both domain.ErrInvalidCredentials.
	SignIn(ctx context.Context, username, password string) (domain.UserID, error)
}

type WebsiteStore interface {
	CreateWebsite(ctx context.Context, userID domain.UserID, url string) (*domain.Website, error)
	// GetWebsite returns domain.ErrNotFound for an absent id. Ownership is
	// the caller's problem on reads.
	GetWebsite(ctx context.Context, id domain.WebsiteID) (*domain.Website, error)
	// ListWebsites returns the user's websites ordered by time_added descending.
	ListWebsites(ctx context.Context, userID domain.UserID) ([]*domain.Website, error)
	// UpdateWebsite changes the URL only when (id, userID) matches a row;
	// domain.ErrNotFound otherwise. Ownership is part of the predicate.
	UpdateWebsite(ctx context.Context, id domain.WebsiteID, userID domain.UserID, newURL string) (*domain.Website, error)
	// DeleteWebsite removes the row only when (id, userID) matches;
	// domain.ErrNotFound when zero rows are deleted.
	DeleteWebsite(ctx context.Context, id domain.WebsiteID, userID domain.UserID) error
	// GetAllWebsites enumerates every website; monitor engine only.
	GetAllWebsites(ctx context.Context) ([]*domain.Website, error)
}

type HistoryStore interface {
	// RecordCheck appends one history row with a fresh id and checked_at = now.
	RecordCheck(ctx context.Context, websiteID domain.WebsiteID, result domain.CheckResult) (*domain.CheckHistory, error)
	// UpdateWebsiteStatus refreshes is_up, last_checked and response_time_ms;
	// last_down_time is set on a down result and carried forward on an up one.
	UpdateWebsiteStatus(ctx context.Context, websiteID domain.WebsiteID, isUp bool, responseTimeMS *int) error
	// GetWebsiteHistory pages rows ordered by checked_at descending.
	GetWebsiteHistory(ctx context.Context, websiteID domain.WebsiteID, limit, offset int) ([]*domain.CheckHistory, error)
}

// Store is the full persistence surface the API and engine wire against.
type Store interface {
	UserStore
	WebsiteStore
	HistoryStore
}
