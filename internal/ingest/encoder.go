package ingest

import (
	"time"

	"github.com/camkit/camfeed/pkg/core"
)

// EncodeFrame wraps a frame and its absolute timestamp into a
// codec-tagged record. The codec switch repeats the check done at
// stream open: this is the last point where a bad codec can be
// caught before publication.
func EncodeFrame(frame *Frame, ts time.Time, entityPath string) (*Record, error) {
	payload := &RecordPayload{
		Data:       frame.Payload,
		Width:      frame.Width,
		Height:     frame.Height,
		IsKeyframe: frame.IsKeyframe,
		PTS:        frame.PTS,
		DTS:        frame.DTS,
		Duration:   frame.Duration,
		TimeBase:   frame.TimeBase,
	}

	rec := &Record{EntityPath: entityPath, Timestamp: ts}

	switch frame.Codec {
	case core.CodecH264:
		rec.Codec, rec.H264 = CodecH264, payload
	case core.CodecH265:
		rec.Codec, rec.H265 = CodecHEVC, payload
	case core.CodecAV1:
		rec.Codec, rec.AV1 = CodecAV1, payload
	default:
		return nil, &UnsupportedCodecError{Codec: frame.Codec}
	}

	return rec, nil
}
