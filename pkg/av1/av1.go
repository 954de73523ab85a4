// Package av1 - RTP depacketization into the AV1 low-overhead bitstream
// format (sized OBUs).
package av1

const (
	OBUSequenceHeader = 1
	OBUTemporalDelim  = 2
	OBUFrameHeader    = 3
	OBUMetadata       = 5
	OBUFrame          = 6
)

const (
	obuExtensionFlag = 0x04
	obuHasSizeFlag   = 0x02
)

// OBUType from the OBU header byte.
func OBUType(b byte) byte {
	return (b >> 3) & 0x0F
}

// IsKeyframe - a temporal unit starting a new coded video sequence carries
// the sequence header OBU.
func IsKeyframe(unit []byte) bool {
	for len(unit) > 0 {
		header := unit[0]
		i := 1
		if header&obuExtensionFlag != 0 {
			i++
		}
		if header&obuHasSizeFlag == 0 {
			return false // not sized, can't walk further
		}
		size, n := DecodeLEB128(unit[i:])
		if n == 0 {
			return false
		}
		if OBUType(header) == OBUSequenceHeader {
			return true
		}
		i += n + int(size)
		if i > len(unit) {
			return false
		}
		unit = unit[i:]
	}
	return false
}

// DecodeLEB128 returns the value and the number of bytes consumed,
// n == 0 on truncated input.
func DecodeLEB128(b []byte) (v uint, n int) {
	for i := 0; i < len(b) && i < 8; i++ {
		v |= uint(b[i]&0x7F) << (i * 7)
		if b[i]&0x80 == 0 {
			return v, i + 1
		}
	}
	return 0, 0
}

// AppendLEB128 appends the LEB128 encoding of v.
func AppendLEB128(b []byte, v uint) []byte {
	for {
		c := byte(v & 0x7F)
		if v >>= 7; v != 0 {
			b = append(b, c|0x80)
		} else {
			return append(b, c)
		}
	}
}
