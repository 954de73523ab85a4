package ingest

import (
	"math"
	"time"
)

// NoPTS marks an absent presentation or decode timestamp.
const NoPTS = int64(math.MinInt64)

// TimeBase is seconds per tick as a rational.
type TimeBase struct {
	Num int `json:"num"`
	Den int `json:"den"`
}

// Duration converts ticks into real time.
func (tb TimeBase) Duration(ticks int64) time.Duration {
	num, den := int64(tb.Num), int64(tb.Den)
	sec := ticks * num / den
	rem := ticks * num % den
	return time.Duration(sec)*time.Second + time.Duration(rem*int64(time.Second)/den)
}

// TransportPacket is one demuxed unit of the compressed stream.
// A packet carries either a whole access unit or a fragment of one,
// all fragments sharing the same timestamps.
type TransportPacket struct {
	Payload    []byte
	PTS        int64 // NoPTS when absent
	DTS        int64 // NoPTS when absent
	Duration   int64
	IsKeyframe bool
	TimeBase   TimeBase
}

// Frame is one access unit ready for timestamping.
type Frame struct {
	Payload    []byte
	PTS        int64
	DTS        int64
	Duration   int64
	TimeBase   TimeBase
	Codec      string // core codec name: H264, H265, AV1
	Width      int
	Height     int
	IsKeyframe bool
}
