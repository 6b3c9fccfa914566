package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"upwatch/internal/domain"
)

const websiteColumns = `id, url, user_id, time_added, is_up, last_checked, last_down_time, response_time_ms`

func scanWebsite(row pgx.Row) (*domain.Website, error) {
	var w domain.Website
	err := row.Scan(&w.ID, &w.URL, &w.UserID, &w.TimeAdded,
		&w.IsUp, &w.LastChecked, &w.LastDownTime, &w.ResponseTimeMS)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// ---- WebsiteStore ----

func (s *Store) CreateWebsite(ctx context.Context, userID domain.UserID, url string) (*domain.Website, error) {
	w := &domain.Website{
		ID:        domain.WebsiteID(uuid.NewString()),
		URL:       url,
		UserID:    userID,
		TimeAdded: time.Now().UTC(),
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO websites (id, url, user_id, time_added)
		 VALUES ($1, $2, $3, $4)`,
		string(w.ID), w.URL, string(w.UserID), w.TimeAdded,
	)
	if err != nil {
		return nil, fmt.Errorf("insert website: %w", err)
	}
	return w, nil
}

func (s *Store) GetWebsite(ctx context.Context, id domain.WebsiteID) (*domain.Website, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+websiteColumns+` FROM websites WHERE id = $1`, string(id))
	w, err := scanWebsite(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get website: %w", err)
	}
	return w, nil
}

func (s *Store) ListWebsites(ctx context.Context, userID domain.UserID) ([]*domain.Website, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+websiteColumns+`
		   FROM websites
		  WHERE user_id = $1
		  ORDER BY time_added DESC, id DESC`, string(userID))
	if err != nil {
		return nil, fmt.Errorf("list websites: %w", err)
	}
	defer rows.Close()
	return collectWebsites(rows)
}

// UpdateWebsite encodes ownership as part of the WHERE predicate; a
// mismatch is indistinguishable from an absent row.
func (s *Store) UpdateWebsite(ctx context.Context, id domain.WebsiteID, userID domain.UserID, newURL string) (*domain.Website, error) {
	row := s.pool.QueryRow(ctx,
		`UPDATE websites SET url = $3
		  WHERE id = $1 AND user_id = $2
		  RETURNING `+websiteColumns,
		string(id), string(userID), newURL)
	w, err := scanWebsite(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update website: %w", err)
	}
	return w, nil
}

func (s *Store) DeleteWebsite(ctx context.Context, id domain.WebsiteID, userID domain.UserID) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM websites WHERE id = $1 AND user_id = $2`,
		string(id), string(userID))
	if err != nil {
		return fmt.Errorf("delete website: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Store) GetAllWebsites(ctx context.Context) ([]*domain.Website, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+websiteColumns+`
		   FROM websites
		  ORDER BY time_added DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("all websites: %w", err)
	}
	defer rows.Close()
	return collectWebsites(rows)
}

func collectWebsites(rows pgx.Rows) ([]*domain.Website, error) {
	var out []*domain.Website
	for rows.Next() {
		w, err := scanWebsite(rows)
		if err != nil {
			return nil, fmt.Errorf("scan website: %w", err)
		}
		out = append(out, w)
	}
	return out, rows.Err()
}
