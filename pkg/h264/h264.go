// Package h264 - Annex-B oriented H264 helpers and RTP depacketization.
package h264

import (
	"bytes"
	"encoding/base64"
	"strings"

	"github.com/camkit/camfeed/pkg/core"
	"github.com/camkit/camfeed/pkg/h264/annexb"
)

const (
	NALUTypePFrame = 1 // Coded slice of a non-IDR picture
	NALUTypeIFrame = 5 // Coded slice of an IDR picture
	NALUTypeSEI    = 6
	NALUTypeSPS    = 7
	NALUTypePPS    = 8
	NALUTypeAUD    = 9
)

// NALUType of an Annex-B unit with a 4-byte start code.
func NALUType(b []byte) byte {
	return b[4] & 0x1F
}

// IsKeyframe - check if any NALU in one AU is Keyframe. An AU may open
// with SPS/PPS/SEI before the slice, so every NALU is checked.
func IsKeyframe(b []byte) bool {
	for len(b) >= 5 {
		switch NALUType(b) {
		case NALUTypePFrame:
			return false
		case NALUTypeIFrame:
			return true
		}

		i := bytes.Index(b[4:], []byte(annexb.StartCode))
		if i < 0 {
			return false
		}
		b = b[4+i:]
	}
	return false
}

// GetParameterSet - SPS and PPS from the SDP fmtp line.
func GetParameterSet(fmtp string) (sps, pps []byte) {
	if fmtp == "" {
		return
	}

	s := core.Between(fmtp, "sprop-parameter-sets=", ";")
	if s == "" {
		return
	}

	i := strings.IndexByte(s, ',')
	if i < 0 {
		return
	}

	sps, _ = base64.StdEncoding.DecodeString(s[:i])
	pps, _ = base64.StdEncoding.DecodeString(s[i+1:])

	return
}
