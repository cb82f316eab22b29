package db

import "errors"

// Sentinel errors for database operations.
var (
	ErrInvalidQuery = errors.New("db: invalid query")
	ErrUnknownTable = errors.New("db: unknown table")
)

// Op constants name the failing operation for error context.
const (
	OpConnect = "CONNECT"
	OpMigrate = "MIGRATE"
	OpCount   = "COUNT"
	OpFetch   = "FETCH"
	OpPut     = "PUT"
	OpHGetAll = "HGETALL"
	OpHSet    = "HSET"
	OpScan    = "SCAN"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
