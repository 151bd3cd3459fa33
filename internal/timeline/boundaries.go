package timeline

import "sort"

// Boundaries derives the open and close boundary events for each
// flight and sorts them ascending by time.
//
// At equal timestamps opens order before closes, then by flight ID.
// Open-first matters: when one flight ends at the exact instant the
// next begins, the open must still see the closing flight in the open
// set, so the two flights join a single uptime run instead of being
// split by a zero-length downtime.
func Boundaries(flights []Flight) []Boundary {
	bs := make([]Boundary, 0, 2*len(flights))
	for _, f := range flights {
		bs = append(bs,
			Boundary{Time: f.Begin, Kind: BoundaryOpen, FlightID: f.ID},
			Boundary{Time: f.End, Kind: BoundaryClose, FlightID: f.ID},
		)
	}

	sort.Slice(bs, func(i, j int) bool {
		if !bs[i].Time.Equal(bs[j].Time) {
			return bs[i].Time.Before(bs[j].Time)
		}
		if bs[i].Kind != bs[j].Kind {
			return bs[i].Kind == BoundaryOpen
		}
		return bs[i].FlightID < bs[j].FlightID
	})

	return bs
}
