package ingest

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/camkit/camfeed/pkg/core"
	"github.com/stretchr/testify/require"
)

func TestEncodeFrame(t *testing.T) {
	frame := &Frame{
		Payload:    []byte{0, 0, 0, 1, 0x65, 0x88},
		PTS:        1000,
		DTS:        1000,
		Duration:   40,
		TimeBase:   TimeBase{Num: 1, Den: 1000},
		Codec:      core.CodecH264,
		Width:      1920,
		Height:     1080,
		IsKeyframe: true,
	}

	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	rec, err := EncodeFrame(frame, ts, "camera/192.168.1.10/front")
	require.Nil(t, err)
	require.Equal(t, "camera/192.168.1.10/front", rec.EntityPath)
	require.Equal(t, ts, rec.Timestamp)
	require.Equal(t, CodecH264, rec.Codec)

	require.NotNil(t, rec.H264)
	require.Nil(t, rec.H265)
	require.Nil(t, rec.AV1)

	require.Equal(t, frame.Payload, rec.H264.Data)
	require.Equal(t, 1920, rec.H264.Width)
	require.Equal(t, 1080, rec.H264.Height)
	require.True(t, rec.H264.IsKeyframe)
	require.Equal(t, int64(1000), rec.H264.PTS)
	require.Equal(t, int64(1000), rec.H264.DTS)
	require.Equal(t, int64(40), rec.H264.Duration)
	require.Equal(t, TimeBase{Num: 1, Den: 1000}, rec.H264.TimeBase)
}

func TestEncodeFrameTags(t *testing.T) {
	for codec, tag := range map[string]string{
		core.CodecH264: CodecH264,
		core.CodecH265: CodecHEVC,
		core.CodecAV1:  CodecAV1,
	} {
		rec, err := EncodeFrame(&Frame{Codec: codec}, time.Now(), "camera/x")
		require.Nil(t, err)
		require.Equal(t, tag, rec.Codec)
	}
}

func TestEncodeFrameUnknownCodec(t *testing.T) {
	_, err := EncodeFrame(&Frame{Codec: "MPEG2VIDEO"}, time.Now(), "camera/x")

	var unsupported *UnsupportedCodecError
	require.ErrorAs(t, err, &unsupported)
	require.Equal(t, "MPEG2VIDEO", unsupported.Codec)
}

func TestRecordJSON(t *testing.T) {
	rec, err := EncodeFrame(&Frame{Codec: core.CodecH265}, time.Time{}, "camera/x")
	require.Nil(t, err)

	b, err := json.Marshal(rec)
	require.Nil(t, err)

	// only the tagged sub-payload appears on the wire
	require.Contains(t, string(b), `"codec":"hevc"`)
	require.Contains(t, string(b), `"h265"`)
	require.NotContains(t, string(b), `"h264"`)
	require.NotContains(t, string(b), `"av1"`)
}
