// Package timeline turns recorded flights into a classified,
// chronologically ordered event stream. The Merger scans flight
// boundaries and separates FLIGHT ranges from DOWNTIME gaps; the
// Aggregator groups each gap-free run of flights under a synthetic
// UPTIME range.
package timeline

import "time"

// Flight is one recorded interval: a period during which the machine
// was known to be up. Begin and End come from the store, with
// Begin = last_ts - duration.
type Flight struct {
	ID    int64
	Begin time.Time
	End   time.Time
}

// BoundaryKind distinguishes the two endpoints of a flight.
type BoundaryKind int

const (
	BoundaryOpen BoundaryKind = iota
	BoundaryClose
)

// Boundary is one endpoint of a flight, the unit of the merge scan.
type Boundary struct {
	Time     time.Time
	Kind     BoundaryKind
	FlightID int64
}

// Kind classifies a range in the report timeline.
type Kind int

const (
	KindDowntime Kind = iota
	KindFlight
	KindUptime
)

func (k Kind) String() string {
	switch k {
	case KindDowntime:
		return "DOWNTIME"
	case KindFlight:
		return "FLIGHT"
	case KindUptime:
		return "UPTIME"
	default:
		return "UNKNOWN"
	}
}

// Range is a span of time with an identifier. For FLIGHT ranges the
// ID is the flight's store ID; for DOWNTIME and UPTIME ranges it is a
// counter starting at 1, maintained separately per kind.
//
// A zero Begin marks the start of recorded history: no earlier flight
// end is known. Renderers display it as -INF.
type Range struct {
	ID    int64
	Begin time.Time
	End   time.Time
}

// Event is one classified entry of the report timeline.
type Event struct {
	Kind  Kind
	Range Range
}

// Source yields classified events one at a time, in chronological
// order. It follows the sql.Rows idiom: call Scan until it returns
// false, then check Err.
type Source interface {
	Scan() bool
	Event() Event
	Err() error
}
