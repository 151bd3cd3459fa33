package report

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/ciberfox/flight-recorder/internal/timeline"
)

// sliceSource replays fixed events and then reports a final error.
type sliceSource struct {
	events []timeline.Event
	pos    int
	cur    timeline.Event
	final  error
}

func (s *sliceSource) Scan() bool {
	if s.pos >= len(s.events) {
		return false
	}
	s.cur = s.events[s.pos]
	s.pos++
	return true
}

func (s *sliceSource) Event() timeline.Event { return s.cur }

func (s *sliceSource) Err() error {
	if s.pos >= len(s.events) {
		return s.final
	}
	return nil
}

func TestRender(t *testing.T) {
	begin := time.Unix(1700000000, 0)
	end := begin.Add(90 * time.Minute)

	events := []timeline.Event{
		{Kind: timeline.KindDowntime, Range: timeline.Range{ID: 1, End: begin}},
		{Kind: timeline.KindUptime, Range: timeline.Range{ID: 1, Begin: begin, End: end}},
		{Kind: timeline.KindFlight, Range: timeline.Range{ID: 7, Begin: begin, End: end}},
	}

	var buf strings.Builder
	if err := NewRenderer(&buf).Render(&sliceSource{events: events}); err != nil {
		t.Fatalf("render failed: %v", err)
	}

	beginStr := begin.Local().Format(timeLayout)
	endStr := end.Local().Format(timeLayout)

	want := fmt.Sprintf(
		"DOWNTIME 1: -INF -> %s (INF)\n"+
			"\n"+
			"UPTIME 1: %s -> %s (1h30m0s)\n"+
			"    FLIGHT 7: %s -> %s (1h30m0s)\n",
		beginStr, beginStr, endStr, beginStr, endStr)

	if buf.String() != want {
		t.Errorf("unexpected report output:\ngot:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestRenderBlankLineBeforeEachUptime(t *testing.T) {
	base := time.Unix(1700000000, 0)
	next := base.Add(2 * time.Hour)

	events := []timeline.Event{
		{Kind: timeline.KindUptime, Range: timeline.Range{ID: 1, Begin: base, End: base.Add(time.Hour)}},
		{Kind: timeline.KindFlight, Range: timeline.Range{ID: 1, Begin: base, End: base.Add(time.Hour)}},
		{Kind: timeline.KindDowntime, Range: timeline.Range{ID: 1, Begin: base.Add(time.Hour), End: next}},
		{Kind: timeline.KindUptime, Range: timeline.Range{ID: 2, Begin: next, End: next.Add(time.Hour)}},
		{Kind: timeline.KindFlight, Range: timeline.Range{ID: 2, Begin: next, End: next.Add(time.Hour)}},
	}

	var buf strings.Builder
	if err := NewRenderer(&buf).Render(&sliceSource{events: events}); err != nil {
		t.Fatalf("render failed: %v", err)
	}

	lines := strings.Split(buf.String(), "\n")
	var blanks int
	for i, line := range lines {
		if line != "" {
			continue
		}
		if i == len(lines)-1 {
			// Trailing newline artifact.
			continue
		}
		blanks++
		if !strings.HasPrefix(lines[i+1], "UPTIME") {
			t.Errorf("blank line %d not followed by UPTIME: %q", i, lines[i+1])
		}
	}
	if blanks != 2 {
		t.Errorf("expected 2 blank separator lines, got %d", blanks)
	}
}

func TestRenderPropagatesSourceError(t *testing.T) {
	srcErr := errors.New("merge failed")
	src := &sliceSource{
		events: []timeline.Event{
			{Kind: timeline.KindDowntime, Range: timeline.Range{ID: 1, End: time.Unix(10, 0)}},
		},
		final: srcErr,
	}

	err := NewRenderer(&strings.Builder{}).Render(src)
	if !errors.Is(err, srcErr) {
		t.Fatalf("expected source error, got %v", err)
	}
}
