package h264

import (
	"github.com/pion/rtp"
	"github.com/pion/rtp/codecs"
)

// Depayloader converts RTP packets to Annex-B units. One call may return
// zero units (FU-A in progress) or one unit holding every NALU from the
// packet, each with a 4-byte start code.
type Depayloader struct {
	depack codecs.H264Packet
}

func (d *Depayloader) Depay(packet *rtp.Packet) [][]byte {
	// codecs.H264Packet emits Annex-B and reassembles FU-A internally
	payload, err := d.depack.Unmarshal(packet.Payload)
	if err != nil || len(payload) == 0 {
		return nil
	}
	return [][]byte{payload}
}
