// Package annexb - universal for H264 and H265
package annexb

import "bytes"

const StartCode = "\x00\x00\x00\x01"
const StartCodeShort = "\x00\x00\x01"

// HasStartCode - payload begins with the 3- or 4-byte start code.
func HasStartCode(b []byte) bool {
	return bytes.HasPrefix(b, []byte(StartCode)) || bytes.HasPrefix(b, []byte(StartCodeShort))
}
