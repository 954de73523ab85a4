package ingest

import "time"

// Reconstructor converts relative presentation timestamps into
// absolute wall-clock instants anchored at stream open. The anchor
// is captured once and never changes for the life of the run.
type Reconstructor struct {
	anchor   time.Time
	start    int64
	timeBase TimeBase
}

// NewReconstructor takes the stream-open instant, the start-of-stream
// timestamp (NoPTS defaults to zero) and the stream time-base.
func NewReconstructor(anchor time.Time, start int64, tb TimeBase) *Reconstructor {
	if start == NoPTS {
		start = 0
	}
	return &Reconstructor{anchor: anchor, start: start, timeBase: tb}
}

// Absolute returns anchor + (pts - start) * timeBase.
func (r *Reconstructor) Absolute(pts int64) time.Time {
	return r.anchor.Add(r.timeBase.Duration(pts - r.start))
}
