package probe

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"upwatch/internal/domain"
)

// DefaultTimeout is the hard deadline for one probe.
const DefaultTimeout = 10 * time.Second

type HTTPChecker struct {
	Client *http.Client
}

// NewHTTPChecker builds a checker with a hard total timeout. Redirects
// follow the client default (up to 10 hops).
func NewHTTPChecker(timeout time.Duration) *HTTPChecker {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPChecker{
		Client: &http.Client{Timeout: timeout},
	}
}

// Check issues one GET against url. A 2xx response classifies the target
// as up. Non-2xx responses come back as down with "HTTP <code>"; transport
// failures (DNS, TCP, TLS, timeout) as down with the error text and no
// status code. Latency is always measured, including up to the failure.
func (h *HTTPChecker) Check(ctx context.Context, url string) domain.CheckResult {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return failure(start, err)
	}

	resp, err := h.Client.Do(req)
	if err != nil {
		return failure(start, err)
	}
	defer resp.Body.Close()

	elapsed := int(time.Since(start).Milliseconds())
	code := resp.StatusCode
	out := domain.CheckResult{
		IsUp:           code >= 200 && code < 300,
		ResponseTimeMS: &elapsed,
		StatusCode:     &code,
	}
	if !out.IsUp {
		msg := fmt.Sprintf("HTTP %d", code)
		out.ErrorMessage = &msg
	}
	return out
}

func failure(start time.Time, err error) domain.CheckResult {
	elapsed := int(time.Since(start).Milliseconds())
	msg := err.Error()
	return domain.CheckResult{
		IsUp:           false,
		ResponseTimeMS: &elapsed,
		ErrorMessage:   &msg,
	}
}

var _ Checker = (*HTTPChecker)(nil)
