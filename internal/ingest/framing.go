package ingest

import (
	"github.com/camkit/camfeed/pkg/core"
	"github.com/camkit/camfeed/pkg/h264/annexb"
)

// ValidateFraming confirms the payload of the first usable packet
// begins with a 3- or 4-byte Annex-B start code. Only start-code
// codecs are checked; AV1 uses sized OBUs and always passes. Runs
// once per stream open, a failure is fatal for the run.
func ValidateFraming(codec string, payload []byte) error {
	switch codec {
	case core.CodecH264, core.CodecH265:
	default:
		return nil
	}

	if annexb.HasStartCode(payload) {
		return nil
	}

	prefix := payload
	if len(prefix) > 4 {
		prefix = prefix[:4]
	}
	return &UnsupportedFramingError{Codec: codec, Prefix: prefix}
}
