package av1

import (
	"github.com/pion/rtp"
)

// Depayloader converts RTP packets (AV1 RTP payload spec) to units of the
// low-overhead bitstream format. OBU elements inside a packet carry no
// obu_size field, so every completed OBU is rewritten as a sized OBU.
type Depayloader struct {
	frag []byte // OBU fragment continued from the previous packet
}

func (d *Depayloader) Depay(packet *rtp.Packet) [][]byte {
	data := packet.Payload
	if len(data) < 2 {
		return nil
	}

	// aggregation header: Z Y W W N - - -
	zbit := data[0]&0x80 != 0
	ybit := data[0]&0x40 != 0
	w := (data[0] >> 4) & 0x03
	data = data[1:]

	var elements [][]byte
	for i := byte(1); len(data) > 0; i++ {
		size := uint(len(data))
		if w == 0 || i < w {
			var n int
			if size, n = DecodeLEB128(data); n == 0 || size > uint(len(data)-n) {
				d.frag = nil
				return nil
			}
			data = data[n:]
		}
		elements = append(elements, data[:size])
		data = data[size:]
	}

	if len(elements) == 0 {
		return nil
	}

	if zbit {
		if d.frag == nil {
			return nil // start of this OBU was lost
		}
		elements[0] = append(d.frag, elements[0]...)
	}
	d.frag = nil

	last := len(elements) - 1
	if ybit {
		d.frag = append([]byte(nil), elements[last]...)
		elements = elements[:last]
	}

	var unit []byte
	for _, obu := range elements {
		unit = appendSizedOBU(unit, obu)
	}
	if unit == nil {
		return nil
	}
	return [][]byte{unit}
}

// appendSizedOBU rewrites a raw OBU element as header + obu_size + payload.
func appendSizedOBU(b, obu []byte) []byte {
	if len(obu) == 0 {
		return b
	}

	header := obu[0]
	i := 1
	if header&obuExtensionFlag != 0 {
		if len(obu) < 2 {
			return b
		}
		i = 2
	}

	b = append(b, header|obuHasSizeFlag)
	b = append(b, obu[1:i]...)
	b = AppendLEB128(b, uint(len(obu)-i))
	return append(b, obu[i:]...)
}
