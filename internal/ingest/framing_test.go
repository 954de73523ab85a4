package ingest

import (
	"testing"

	"github.com/camkit/camfeed/pkg/core"
	"github.com/stretchr/testify/require"
)

func TestValidateFraming(t *testing.T) {
	require.Nil(t, ValidateFraming(core.CodecH264, []byte{0, 0, 0, 1, 0x65}))
	require.Nil(t, ValidateFraming(core.CodecH264, []byte{0, 0, 1, 0x65}))
	require.Nil(t, ValidateFraming(core.CodecH265, []byte{0, 0, 0, 1, 0x26, 0x01}))

	err := ValidateFraming(core.CodecH264, []byte{0x65, 0x88, 0x84, 0x00})

	var framing *UnsupportedFramingError
	require.ErrorAs(t, err, &framing)
	require.Equal(t, core.CodecH264, framing.Codec)
	require.Equal(t, []byte{0x65, 0x88, 0x84, 0x00}, framing.Prefix)
}

func TestValidateFramingAV1(t *testing.T) {
	// AV1 has no start codes, the check never applies
	require.Nil(t, ValidateFraming(core.CodecAV1, []byte{0x0A, 0x0B}))
}
