package httpapi

import (
	"time"

	"upwatch/internal/domain"
)

// wireTimeFormat is the timestamp wire format: seconds resolution, no
// zone suffix, UTC implicit.
const wireTimeFormat = "2006-01-02T15:04:05"

func renderTime(t time.Time) string {
	return t.UTC().Format(wireTimeFormat)
}

func renderTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := renderTime(*t)
	return &s
}

type credentialsInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type websiteInput struct {
	URL string `json:"url"`
}

type idOutput struct {
	ID string `json:"id"`
}

type signInOutput struct {
	JWT string `json:"jwt"`
}

type deleteOutput struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type websiteItem struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	TimeAdded string `json:"time_added"`
}

type websiteListOutput struct {
	Items []websiteItem `json:"items"`
}

type websiteURLOutput struct {
	URL string `json:"url"`
}

type statusOutput struct {
	IsUp           *bool   `json:"is_up"`
	LastChecked    *string `json:"last_checked"`
	LastDownTime   *string `json:"last_down_time"`
	ResponseTimeMS *int    `json:"response_time_ms"`
}

type historyItem struct {
	CheckedAt      string  `json:"checked_at"`
	IsUp           bool    `json:"is_up"`
	ResponseTimeMS *int    `json:"response_time_ms"`
	StatusCode     *int    `json:"status_code"`
	ErrorMessage   *string `json:"error_message"`
}

type historyOutput struct {
	Items []historyItem `json:"items"`
}

func toWebsiteItem(w *domain.Website) websiteItem {
	return websiteItem{
		ID:        string(w.ID),
		URL:       w.URL,
		TimeAdded: renderTime(w.TimeAdded),
	}
}

func toStatusOutput(w *domain.Website) statusOutput {
	return statusOutput{
		IsUp:           w.IsUp,
		LastChecked:    renderTimePtr(w.LastChecked),
		LastDownTime:   renderTimePtr(w.LastDownTime),
		ResponseTimeMS: w.ResponseTimeMS,
	}
}

func toHistoryItem(h *domain.CheckHistory) historyItem {
	return historyItem{
		CheckedAt:      renderTime(h.CheckedAt),
		IsUp:           h.IsUp,
		ResponseTimeMS: h.ResponseTimeMS,
		StatusCode:     h.StatusCode,
		ErrorMessage:   h.ErrorMessage,
	}
}
