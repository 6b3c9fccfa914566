package domain

import (
	"strings"
	"time"
)

type UserID string

type WebsiteID string

type User struct {
	ID           UserID `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}

// Website is one registered URL owned by a single user. The four status
// fields are pointers so a never-probed website stays NULL in storage
// instead of carrying zero values.
type Website struct {
	ID             WebsiteID  `json:"id"`
	URL            string     `json:"url"`
	UserID         UserID     `json:"user_id"`
	TimeAdded      time.Time  `json:"time_added"`
	IsUp           *bool      `json:"is_up"`
	LastChecked    *time.Time `json:"last_checked"`
	LastDownTime   *time.Time `json:"last_down_time"`
	ResponseTimeMS *int       `json:"response_time_ms"`
}

// CheckHistory is one append-only probe record. Rows are never updated.
type CheckHistory struct {
	ID             string    `json:"id"`
	WebsiteID      WebsiteID `json:"website_id"`
	CheckedAt      time.Time `json:"checked_at"`
	IsUp           bool      `json:"is_up"`
	ResponseTimeMS *int      `json:"response_time_ms"`
	StatusCode     *int      `json:"status_code"`
	ErrorMessage   *string   `json:"error_message"`
}

// ValidWebsiteURL reports whether raw is acceptable as a monitored URL:
// non-empty after trimming, http:// or https:// prefix. No further parsing.
func ValidWebsiteURL(raw string) bool {
	u := strings.TrimSpace(raw)
	return strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://")
}
