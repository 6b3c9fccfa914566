package domain

// CheckResult is the outcome of a single probe. ResponseTimeMS and
// StatusCode are pointers to allow nil (e.g. no status on a transport
// failure), matching the nullable history columns.
type CheckResult struct {
	IsUp           bool    `json:"is_up"`
	ResponseTimeMS *int    `json:"response_time_ms"`
	StatusCode     *int    `json:"status_code"`
	ErrorMessage   *string `json:"error_message"`
}
