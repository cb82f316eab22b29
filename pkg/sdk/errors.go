package knowhub

import "github.com/kailas-cloud/knowhub/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound      = domain.ErrNotFound
	ErrUnknownEntity = domain.ErrUnknownEntity
	ErrUnknownField  = domain.ErrUnknownField
	ErrInvalidValue  = domain.ErrInvalidValue
)

// ValidationError names the field and value a search rejected.
// Use errors.As() to inspect it.
type ValidationError = domain.ValidationError
