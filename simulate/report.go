// Package simulate implements the per-symbol cycle simulation engine
// and its profiling accumulators: enable -> match -> propagate
// -> special-element settle -> advance, run single-threaded and
// synchronously over a byte stream.
package simulate

import "fmt"

// Report is one entry of the ordered report log: the cycle on which an
// element reported, and the element's string id.
type Report struct {
	Cycle int
	ID    string
}

// String renders a report in a batch-simulator print form:
// "automatonID.elementID" at cycle+1.
func (r Report) String(automatonID string) string {
	return fmt.Sprintf("%d: %s.%s", r.Cycle+1, automatonID, r.ID)
}
