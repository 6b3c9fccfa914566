package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"upwatch/internal/domain"
)

// ---- HistoryStore ----

func (s *Store) RecordCheck(ctx context.Context, websiteID domain.WebsiteID, result domain.CheckResult) (*domain.CheckHistory, error) {
	h := &domain.CheckHistory{
		ID:             uuid.NewString(),
		WebsiteID:      websiteID,
		CheckedAt:      time.Now().UTC(),
		IsUp:           result.IsUp,
		ResponseTimeMS: result.ResponseTimeMS,
		StatusCode:     result.StatusCode,
		ErrorMessage:   result.ErrorMessage,
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO check_history
		   (id, website_id, checked_at, is_up, response_time_ms, status_code, error_message)
		 VALUES
		   ($1, $2, $3, $4, $5, $6, $7)`,
		h.ID, string(h.WebsiteID), h.CheckedAt, h.IsUp, h.ResponseTimeMS, h.StatusCode, h.ErrorMessage,
	)
	if err != nil {
		return nil, fmt.Errorf("insert check: %w", err)
	}
	return h, nil
}

// UpdateWebsiteStatus refreshes the status cache. last_down_time carries
// forward on an up probe and moves to now on a down one.
func (s *Store) UpdateWebsiteStatus(ctx context.Context, websiteID domain.WebsiteID, isUp bool, responseTimeMS *int) error {
	now := time.Now().UTC()
	tag, err := s.pool.Exec(ctx,
		`UPDATE websites
		    SET is_up = $2,
		        last_checked = $3,
		        response_time_ms = $4,
		        last_down_time = CASE WHEN $2 THEN last_down_time ELSE $3 END
		  WHERE id = $1`,
		string(websiteID), isUp, now, responseTimeMS,
	)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Store) GetWebsiteHistory(ctx context.Context, websiteID domain.WebsiteID, limit, offset int) ([]*domain.CheckHistory, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, website_id, checked_at, is_up, response_time_ms, status_code, error_message
		   FROM check_history
		  WHERE website_id = $1
		  ORDER BY checked_at DESC, id DESC
		  LIMIT $2 OFFSET $3`,
		string(websiteID), limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	defer rows.Close()

	var out []*domain.CheckHistory
	for rows.Next() {
		var h domain.CheckHistory
		if err := rows.Scan(&h.ID, &h.WebsiteID, &h.CheckedAt, &h.IsUp,
			&h.ResponseTimeMS, &h.StatusCode, &h.ErrorMessage); err != nil {
			return nil, fmt.Errorf("scan check: %w", err)
		}
		out = append(out, &h)
	}
	return out, rows.Err()
}
