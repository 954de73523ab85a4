package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnmarshalSDP(t *testing.T) {
	// Hikvision DS-2CD2043G0-I
	sdp := []byte(`v=0
o=- 1675628507792537 1675628507792537 IN IP4 192.168.1.12
s=Media Presentation
e=NONE
b=AS:5050
t=0 0
a=control:rtsp://192.168.1.12:554/Streaming/Channels/101/
m=video 0 RTP/AVP 96
c=IN IP4 0.0.0.0
b=AS:5000
a=recvonly
a=control:rtsp://192.168.1.12:554/Streaming/Channels/101/trackID=1
a=rtpmap:96 H264/90000
a=fmtp:96 profile-level-id=420029; packetization-mode=1; sprop-parameter-sets=Z00AH5Y1QKALdNwEBAQI,aO48gA==
m=audio 0 RTP/AVP 0
c=IN IP4 0.0.0.0
b=AS:50
a=recvonly
a=control:rtsp://192.168.1.12:554/Streaming/Channels/101/trackID=2
a=rtpmap:0 PCMU/8000
`)

	medias, err := UnmarshalSDP(sdp)
	require.NoError(t, err)
	require.Len(t, medias, 2)

	video := medias[0]
	require.Equal(t, KindVideo, video.Kind)
	require.Equal(t, DirectionSendonly, video.Direction)
	require.Len(t, video.Codecs, 1)
	require.Equal(t, CodecH264, video.Codecs[0].Name)
	require.Equal(t, uint32(90000), video.Codecs[0].ClockRate)
	require.Equal(t, uint8(96), video.Codecs[0].PayloadType)
	require.Contains(t, video.Codecs[0].FmtpLine, "sprop-parameter-sets=")

	audio := medias[1]
	require.Equal(t, KindAudio, audio.Kind)
	require.Equal(t, CodecPCMU, audio.Codecs[0].Name)
}

func TestUnmarshalSDPBrokenHeader(t *testing.T) {
	// some cameras produce a session section pion can't parse
	sdp := []byte("v=0\no=- 1 1 IN IP4 rom t_rtsplin\ns=\n" +
		"m=video 0 RTP/AVP 96\na=rtpmap:96 H265/90000\n")

	medias, err := UnmarshalSDP(sdp)
	require.NoError(t, err)
	require.Len(t, medias, 1)
	require.Equal(t, CodecH265, medias[0].Codecs[0].Name)
}

func TestBetween(t *testing.T) {
	require.Equal(t, "60", Between("RTP/AVP/TCP;interleaved=0-1;timeout=60;x", "timeout=", ";"))
	require.Equal(t, "60", Between("timeout=60", "timeout=", ";"))
	require.Equal(t, "", Between("interleaved=0-1", "timeout=", ";"))
}

func TestAtoi(t *testing.T) {
	require.Equal(t, 0, Atoi(""))
	require.Equal(t, 554, Atoi("554"))
	require.Equal(t, -1, Atoi("5x"))
}
