package service

import (
	"errors"

	"github.com/okian/talentflow/internal/adapters/repository"
	"github.com/okian/talentflow/internal/domain/assessment"
)

// Sentinel kinds for router errors. ErrNotFound is the store's sentinel
// re-exported so callers need not import the repository package.
var (
	ErrNotFound           = repository.ErrNotFound
	ErrDuplicateSlug      = errors.New("slug must be unique")
	ErrServiceUnavailable = errors.New("service unavailable")
)

// errKind maps an error to a stable label for metrics.
func errKind(err error) string {
	var verr *assessment.ValidationError
	switch {
	case errors.Is(err, ErrServiceUnavailable):
		return "service_unavailable"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrDuplicateSlug):
		return "duplicate_slug"
	case errors.As(err, &verr):
		return "validation"
	default:
		return "internal"
	}
}
