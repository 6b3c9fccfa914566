package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"upwatch/internal/auth"
	"upwatch/internal/domain"
	"upwatch/internal/repo"
)

// Store is an in-memory implementation of the repo ports guarded by one
// mutex, mirroring the single-lock reference store. Used by tests and as
// a dev fallback when DATABASE_URL is unset.
type Store struct {
	mu       sync.RWMutex
	users    map[domain.UserID]*domain.User
	websites map[domain.WebsiteID]*domain.Website
	history  []*domain.CheckHistory
}

func New() *Store {
	return &Store{
		users:    make(map[domain.UserID]*domain.User),
		websites: make(map[domain.WebsiteID]*domain.Website),
		history:  make([]*domain.CheckHistory, 0, 128),
	}
}

// ---- UserStore ----

func (m *Store) SignUp(ctx context.Context, username, passwordHash string) (domain.UserID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			return "", domain.ErrDuplicate
		}
	}
	id := domain.UserID(uuid.NewString())
	m.users[id] = &domain.User{ID: id, Username: username, PasswordHash: passwordHash}
	return id, nil
}

func (m *Store) SignIn(ctx context.Context, username, password string) (domain.UserID, error) {
	m.mu.RLock()
	var found *domain.User
	for _, u := range m.users {
		if u.Username == username {
			found = u
			break
		}
	}
	m.mu.RUnlock()

	if found == nil {
		return "", domain.ErrInvalidCredentials
	}
	ok, err := auth.VerifyPassword(password, found.PasswordHash)
	if err != nil || !ok {
		return "", domain.ErrInvalidCredentials
	}
	return found.ID, nil
}

// ---- WebsiteStore ----

func (m *Store) CreateWebsite(ctx context.Context, userID domain.UserID, url string) (*domain.Website, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w := &domain.Website{
		ID:        domain.WebsiteID(uuid.NewString()),
		URL:       url,
		UserID:    userID,
		TimeAdded: time.Now().UTC(),
	}
	m.websites[w.ID] = w
	cp := *w
	return &cp, nil
}

func (m *Store) GetWebsite(ctx context.Context, id domain.WebsiteID) (*domain.Website, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	w, ok := m.websites[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *w
	return &cp, nil
}

func (m *Store) ListWebsites(ctx context.Context, userID domain.UserID) ([]*domain.Website, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Website
	for _, w := range m.websites {
		if w.UserID == userID {
			cp := *w
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TimeAdded.After(out[j].TimeAdded) })
	return out, nil
}

func (m *Store) UpdateWebsite(ctx context.Context, id domain.WebsiteID, userID domain.UserID, newURL string) (*domain.Website, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.websites[id]
	if !ok || w.UserID != userID {
		return nil, domain.ErrNotFound
	}
	w.URL = newURL
	cp := *w
	return &cp, nil
}

func (m *Store) DeleteWebsite(ctx context.Context, id domain.WebsiteID, userID domain.UserID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.websites[id]
	if !ok || w.UserID != userID {
		return domain.ErrNotFound
	}
	delete(m.websites, id)
	// cascade, matching the FK in the postgres schema
	kept := m.history[:0]
	for _, h := range m.history {
		if h.WebsiteID != id {
			kept = append(kept, h)
		}
	}
	m.history = kept
	return nil
}

func (m *Store) GetAllWebsites(ctx context.Context) ([]*domain.Website, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.Website, 0, len(m.websites))
	for _, w := range m.websites {
		cp := *w
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TimeAdded.After(out[j].TimeAdded) })
	return out, nil
}

// ---- HistoryStore ----

func (m *Store) RecordCheck(ctx context.Context, websiteID domain.WebsiteID, result domain.CheckResult) (*domain.CheckHistory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.websites[websiteID]; !ok {
		return nil, domain.ErrNotFound
	}
	h := &domain.CheckHistory{
		ID:             uuid.NewString(),
		WebsiteID:      websiteID,
		CheckedAt:      time.Now().UTC(),
		IsUp:           result.IsUp,
		ResponseTimeMS: result.ResponseTimeMS,
		StatusCode:     result.StatusCode,
		ErrorMessage:   result.ErrorMessage,
	}
	m.history = append(m.history, h)
	cp := *h
	return &cp, nil
}

func (m *Store) UpdateWebsiteStatus(ctx context.Context, websiteID domain.WebsiteID, isUp bool, responseTimeMS *int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.websites[websiteID]
	if !ok {
		return domain.ErrNotFound
	}
	now := time.Now().UTC()
	up := isUp
	w.IsUp = &up
	w.LastChecked = &now
	w.ResponseTimeMS = responseTimeMS
	if !isUp {
		down := now
		w.LastDownTime = &down
	}
	return nil
}

func (m *Store) GetWebsiteHistory(ctx context.Context, websiteID domain.WebsiteID, limit, offset int) ([]*domain.CheckHistory, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	// appended in insertion order; newest-first means walking backwards
	var rows []*domain.CheckHistory
	for i := len(m.history) - 1; i >= 0; i-- {
		if m.history[i].WebsiteID == websiteID {
			rows = append(rows, m.history[i])
		}
	}
	if offset >= len(rows) {
		return nil, nil
	}
	rows = rows[offset:]
	if limit < len(rows) {
		rows = rows[:limit]
	}
	out := make([]*domain.CheckHistory, len(rows))
	for i, h := range rows {
		cp := *h
		out[i] = &cp
	}
	return out, nil
}

var _ repo.Store = (*Store)(nil)
