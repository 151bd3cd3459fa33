package timeline

import (
	"fmt"
	"time"
)

// Merger is the first pipeline stage. It consumes a time-ordered
// boundary stream and classifies it into DOWNTIME and FLIGHT events:
// a DOWNTIME whenever a flight opens while no flight is open, and a
// FLIGHT whenever a flight closes, carrying its true begin and end.
//
// Consuming the output in order and tracking open flights exactly
// reconstructs which flights were open at any instant.
type Merger struct {
	boundaries []Boundary
	pos        int

	open      map[int64]time.Time
	lastEnd   time.Time // most recent close; zero until the first close
	downtimes int64

	cur Event
	err error
}

// NewMerger creates a merger over boundaries, which must be sorted
// ascending by time (see Boundaries).
func NewMerger(boundaries []Boundary) *Merger {
	return &Merger{
		boundaries: boundaries,
		open:       make(map[int64]time.Time),
	}
}

// Scan advances to the next classified event. It returns false when
// the stream is exhausted or on error; check Err afterwards.
func (m *Merger) Scan() bool {
	if m.err != nil {
		return false
	}

	for m.pos < len(m.boundaries) {
		b := m.boundaries[m.pos]
		m.pos++

		switch b.Kind {
		case BoundaryOpen:
			gap := len(m.open) == 0
			m.open[b.FlightID] = b.Time
			if gap {
				m.downtimes++
				m.cur = Event{
					Kind:  KindDowntime,
					Range: Range{ID: m.downtimes, Begin: m.lastEnd, End: b.Time},
				}
				return true
			}

		case BoundaryClose:
			begin, ok := m.open[b.FlightID]
			if !ok {
				m.err = fmt.Errorf("close boundary for flight %d with no matching open", b.FlightID)
				return false
			}
			delete(m.open, b.FlightID)
			m.lastEnd = b.Time
			m.cur = Event{
				Kind:  KindFlight,
				Range: Range{ID: b.FlightID, Begin: begin, End: b.Time},
			}
			return true
		}
	}

	return false
}

// Event returns the event produced by the last successful Scan.
func (m *Merger) Event() Event {
	return m.cur
}

// Err returns the first error encountered during the scan.
func (m *Merger) Err() error {
	return m.err
}
