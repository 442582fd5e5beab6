package gate

import "time"

// Recorder receives decision and lookup timings. *metrics.Metrics implements it.
type Recorder interface {
	ObserveDecision(code string, d time.Duration)
	ObserveLookup(store, result string, d time.Duration)
}

// lookup results reported to Recorder
const (
	LookupFound   = "found"
	LookupMissing = "missing"
	LookupError   = "error"
)

type nopRecorder struct{}

func (nopRecorder) ObserveDecision(string, time.Duration)       {}
func (nopRecorder) ObserveLookup(string, string, time.Duration) {}
