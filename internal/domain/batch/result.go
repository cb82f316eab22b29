// Package batch holds per-row outcomes of bulk writes.
package batch

// ItemStatus is the processing outcome of a single batch item.
type ItemStatus string

// Batch item status values.
const (
	StatusOK    ItemStatus = "ok"
	StatusError ItemStatus = "error"
)

// Result is the outcome of writing one row.
type Result struct {
	table  string
	key    string
	status ItemStatus
	err    error
}

// NewOK creates a successful batch result.
func NewOK(table, key string) Result { return Result{table: table, key: key, status: StatusOK} }

// NewError creates a failed batch result.
func NewError(table, key string, err error) Result {
	return Result{table: table, key: key, status: StatusError, err: err}
}

// Table returns the target table.
func (r Result) Table() string { return r.table }

// Key identifies the row within its table: the id, or the link columns for join rows.
func (r Result) Key() string { return r.key }

// Status returns the processing outcome.
func (r Result) Status() ItemStatus { return r.status }

// Err returns the error, if any.
func (r Result) Err() error { return r.err }

// Summary counts results per status.
type Summary struct {
	OK     int
	Failed int
}

// Summarize counts the outcomes in results.
func Summarize(results []Result) Summary {
	var s Summary
	for _, r := range results {
		if r.status == StatusOK {
			s.OK++
		} else {
			s.Failed++
		}
	}
	return s
}
