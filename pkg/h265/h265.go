// Package h265 - Annex-B oriented H265 helpers and RTP depacketization.
package h265

import (
	"encoding/base64"

	"github.com/camkit/camfeed/pkg/core"
	"github.com/deepch/vdk/codec/h265parser"
)

// RTP payload structures on top of the NAL unit type space (RFC 7798)
const (
	NALUTypeAP = 48 // aggregation packet
	NALUTypeFU = 49 // fragmentation unit
)

// NALUType of an Annex-B unit with a 4-byte start code.
func NALUType(b []byte) byte {
	return (b[4] >> 1) & 0x3F
}

// IsKeyframe - unit carries an IRAP slice (BLA..CRA).
func IsKeyframe(b []byte) bool {
	if len(b) < 6 {
		return false
	}
	nuType := NALUType(b)
	return nuType >= h265parser.NAL_UNIT_CODED_SLICE_BLA_W_LP &&
		nuType <= h265parser.NAL_UNIT_CODED_SLICE_CRA
}

// GetParameterSet - VPS, SPS and PPS from the SDP fmtp line.
func GetParameterSet(fmtp string) (vps, sps, pps []byte) {
	if fmtp == "" {
		return
	}

	if s := core.Between(fmtp, "sprop-vps=", ";"); s != "" {
		vps, _ = base64.StdEncoding.DecodeString(s)
	}
	if s := core.Between(fmtp, "sprop-sps=", ";"); s != "" {
		sps, _ = base64.StdEncoding.DecodeString(s)
	}
	if s := core.Between(fmtp, "sprop-pps=", ";"); s != "" {
		pps, _ = base64.StdEncoding.DecodeString(s)
	}

	return
}
