package probe

import (
	"context"

	"upwatch/internal/domain"
)

// Checker performs a single check against a target URL. Implementations
// hold no per-target state and never retry; a down classification is a
// normal result, not an error.
type Checker interface {
	Check(ctx context.Context, url string) domain.CheckResult
}
