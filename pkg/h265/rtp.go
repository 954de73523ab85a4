package h265

import (
	"encoding/binary"

	"github.com/pion/rtp"
)

var startCode = []byte{0, 0, 0, 1}

// Depayloader converts RTP packets to Annex-B units (RFC 7798): single NAL
// unit packets pass through, aggregation packets are split, fragmentation
// units are reassembled across packets. Every returned unit carries a
// 4-byte start code.
type Depayloader struct {
	fu []byte // fragmented NALU in progress, without start code
}

func (d *Depayloader) Depay(packet *rtp.Packet) [][]byte {
	data := packet.Payload
	if len(data) < 3 {
		return nil
	}

	switch nuType := (data[0] >> 1) & 0x3F; nuType {
	case NALUTypeFU:
		fuHeader := data[2]
		switch {
		case fuHeader&0x80 != 0: // start
			nuType = fuHeader & 0x3F
			d.fu = append(d.fu[:0], (data[0]&0x81)|(nuType<<1), data[1])
			d.fu = append(d.fu, data[3:]...)
			return nil
		case fuHeader&0x40 != 0: // end
			if d.fu == nil {
				return nil // lost the start fragment
			}
			unit := append([]byte(nil), startCode...)
			unit = append(unit, d.fu...)
			unit = append(unit, data[3:]...)
			d.fu = nil
			return [][]byte{unit}
		default: // middle
			if d.fu == nil {
				return nil
			}
			d.fu = append(d.fu, data[3:]...)
			return nil
		}

	case NALUTypeAP:
		var units [][]byte
		for data = data[2:]; len(data) > 2; {
			size := int(binary.BigEndian.Uint16(data))
			data = data[2:]
			if size > len(data) {
				break
			}
			unit := append([]byte(nil), startCode...)
			unit = append(unit, data[:size]...)
			units = append(units, unit)
			data = data[size:]
		}
		return units

	default:
		unit := append([]byte(nil), startCode...)
		unit = append(unit, data...)
		return [][]byte{unit}
	}
}
