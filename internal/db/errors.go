package db

import "errors"

// Sentinel errors for database operations.
var (
	ErrKeyNotFound  = errors.New("db: key not found")
	ErrInvalidQuery = errors.New("db: invalid query")
)

// Op names the failing storage operation in Error.
const (
	OpSearchContent  = "SEARCH_CONTENT"
	OpLookupKeywords = "LOOKUP_KEYWORDS"
	OpInsertQueryLog = "INSERT_QUERY_LOG"
	OpMigrate        = "MIGRATE"
	OpGet            = "GET"
	OpSet            = "SET"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
