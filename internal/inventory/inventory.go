package inventory

import "errors"

// Entry is one process observed in a snapshot.
type Entry struct {
	PID   int
	RSSKb float64
}

// Source produces a point-in-time snapshot of every process on the host.
type Source interface {
	Snapshot() ([]Entry, error)
}

// ErrUnavailable reports that the underlying inventory mechanism could not
// be queried at all this tick. Callers treat it as transient.
var ErrUnavailable = errors.New("process inventory unavailable")

// TotalMB sums resident set size across a snapshot, in megabytes.
func TotalMB(entries []Entry) float64 {
	var kb float64
	for _, e := range entries {
		kb += e.RSSKb
	}
	return kb / 1024
}
