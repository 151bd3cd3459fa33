// Package report renders a classified event stream as the
// human-readable timeline report.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/ciberfox/flight-recorder/internal/timeline"
)

// timeLayout is the local-time layout for finite timestamps.
const timeLayout = "2006-01-02 15:04:05"

// Renderer writes one report line per classified event.
type Renderer struct {
	w io.Writer
}

// NewRenderer creates a renderer writing to w.
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{w: w}
}

// Render drains events and writes the report. Each UPTIME is preceded
// by a blank separator line, and FLIGHT lines are indented under
// their UPTIME. Rendering stops at the first error from the source.
func (r *Renderer) Render(events timeline.Source) error {
	for events.Scan() {
		ev := events.Event()

		if ev.Kind == timeline.KindUptime {
			if _, err := fmt.Fprintln(r.w); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
		}

		indent := ""
		if ev.Kind == timeline.KindFlight {
			indent = "    "
		}

		_, err := fmt.Fprintf(r.w, "%s%s %d: %s -> %s (%s)\n",
			indent, ev.Kind, ev.Range.ID,
			formatTime(ev.Range.Begin), formatTime(ev.Range.End),
			formatElapsed(ev.Range))
		if err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}

	return events.Err()
}

// formatTime renders a timestamp in local time, with -INF for the
// unknown start of history.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-INF"
	}
	return t.Local().Format(timeLayout)
}

// formatElapsed renders a range's elapsed time, with INF when the
// range begins before recorded history.
func formatElapsed(rng timeline.Range) string {
	if rng.Begin.IsZero() {
		return "INF"
	}
	return rng.End.Sub(rng.Begin).String()
}
