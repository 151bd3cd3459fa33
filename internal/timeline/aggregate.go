package timeline

// Aggregator is the second pipeline stage. It re-emits the merger's
// output with one synthetic UPTIME event inserted before each run of
// consecutive FLIGHT events, spanning the run's earliest begin and
// latest end. DOWNTIME events pass through at their original
// position.
//
// Runs of the same kind are already contiguous in the merger's
// output, so the aggregator only buffers the current flight run.
type Aggregator struct {
	src Source

	queue   []Event
	uptimes int64
	done    bool

	cur Event
	err error
}

// NewAggregator creates an aggregator over src, normally a Merger.
func NewAggregator(src Source) *Aggregator {
	return &Aggregator{src: src}
}

// Scan advances to the next event. It returns false when the stream
// is exhausted or on error; check Err afterwards.
func (a *Aggregator) Scan() bool {
	if a.err != nil {
		return false
	}

	if len(a.queue) == 0 && !a.done {
		a.fill()
		if a.err != nil {
			return false
		}
	}

	if len(a.queue) == 0 {
		return false
	}
	a.cur = a.queue[0]
	a.queue = a.queue[1:]
	return true
}

// fill pulls from the source until it has a complete group to emit:
// either a lone DOWNTIME, or a flight run (as UPTIME + FLIGHTs)
// together with the DOWNTIME that ended it.
func (a *Aggregator) fill() {
	var run []Event

	for a.src.Scan() {
		ev := a.src.Event()

		if ev.Kind == KindFlight {
			run = append(run, ev)
			continue
		}

		if len(run) > 0 {
			a.queue = append(a.queue, a.summarize(run)...)
		}
		a.queue = append(a.queue, ev)
		return
	}

	a.done = true
	if err := a.src.Err(); err != nil {
		a.err = err
		a.queue = nil
		return
	}
	if len(run) > 0 {
		a.queue = append(a.queue, a.summarize(run)...)
	}
}

// summarize prefixes a flight run with its UPTIME event. The run is
// non-empty and in original order; the UPTIME spans the minimum begin
// and maximum end over the run, which need not belong to the same
// flight when flights nest or overlap.
func (a *Aggregator) summarize(run []Event) []Event {
	begin := run[0].Range.Begin
	end := run[0].Range.End
	for _, ev := range run[1:] {
		if ev.Range.Begin.Before(begin) {
			begin = ev.Range.Begin
		}
		if ev.Range.End.After(end) {
			end = ev.Range.End
		}
	}

	a.uptimes++
	out := make([]Event, 0, len(run)+1)
	out = append(out, Event{
		Kind:  KindUptime,
		Range: Range{ID: a.uptimes, Begin: begin, End: end},
	})
	return append(out, run...)
}

// Event returns the event produced by the last successful Scan.
func (a *Aggregator) Event() Event {
	return a.cur
}

// Err returns the first error encountered by this stage or the
// underlying source.
func (a *Aggregator) Err() error {
	return a.err
}
