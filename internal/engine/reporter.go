package engine

// Reporter receives progress events while the evaluator phases run. The
// engine calls it from a single goroutine.
type Reporter interface {
	// StartPhase announces a new evaluation phase over total commits.
	StartPhase(description string, total int)
	// Advance marks one commit as processed within the current phase.
	Advance(commitID string)
	// EndPhase closes the current phase.
	EndPhase()
}

type nopReporter struct{}

func (nopReporter) StartPhase(string, int) {}
func (nopReporter) Advance(string)         {}
func (nopReporter) EndPhase()              {}

// NopReporter returns a Reporter that discards all events.
func NopReporter() Reporter {
	return nopReporter{}
}
