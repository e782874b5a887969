package db

// Op constants name the store operations for error context.
const (
	OpFind       = "find"
	OpAggregate  = "aggregate"
	OpInsertMany = "insertMany"
	OpDrop       = "drop"
	OpPing       = "ping"
)

// Error wraps an underlying store error with the operation and collection
// for diagnostics. Anything wrapped in it is an infrastructure failure,
// never a client error.
type Error struct {
	Op         string
	Collection string
	Err        error
}

func (e *Error) Error() string {
	if e.Collection == "" {
		return e.Op + ": " + e.Err.Error()
	}
	return e.Op + " " + e.Collection + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }
