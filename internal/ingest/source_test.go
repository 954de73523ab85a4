package ingest

import (
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"net/url"
	"testing"

	"github.com/camkit/camfeed/pkg/core"
	"github.com/stretchr/testify/require"
)

const cameraSDP = `v=0
o=- 1 1 IN IP4 0.0.0.0
s=-
c=IN IP4 0.0.0.0
t=0 0
m=video 0 RTP/AVP 98
a=control:trackID=1
a=rtpmap:98 H264/90000
a=fmtp:98 packetization-mode=1; sprop-parameter-sets=Z2QAKaw0yAeAIn5cBagICAoAAAfQAAE4gdDAAjhAACOEF3lxoYAEcIAARwgu8uFA,aO48MAA=; profile-level-id=640029
`

func rtpPacket(seq uint16, ts uint32, payload ...byte) []byte {
	b := make([]byte, 12, 12+len(payload))
	b[0] = 0x80
	b[1] = 98
	binary.BigEndian.PutUint16(b[2:], seq)
	binary.BigEndian.PutUint32(b[4:], ts)
	return append(b, payload...)
}

func interleave(channel byte, b []byte) []byte {
	buf := make([]byte, 4, 4+len(b))
	buf[0] = '$'
	buf[1] = channel
	binary.BigEndian.PutUint16(buf[2:], uint16(len(b)))
	return append(buf, b...)
}

func serveCamera(t *testing.T, ln net.Listener) {
	conn, err := ln.Accept()
	require.Nil(t, err)

	b := make([]byte, 8192)
	for {
		_, err := conn.Read(b)
		if err != nil {
			return
		}

		switch string(b[:4]) {
		case "OPTI":
			_, _ = fmt.Fprintf(conn, "RTSP/1.0 200 OK\r\nCSeq: 1\r\n\r\n")
		case "DESC":
			_, _ = fmt.Fprintf(conn,
				"RTSP/1.0 200 OK\r\nCSeq: 2\r\nContent-Type: application/sdp\r\nContent-Length: %d\r\n\r\n%s",
				len(cameraSDP), cameraSDP)
		case "SETU":
			_, _ = fmt.Fprintf(conn,
				"RTSP/1.0 200 OK\r\nCSeq: 3\r\nSession: 12345678\r\nTransport: RTP/AVP/TCP;unicast;interleaved=0-1\r\n\r\n")
		case "PLAY":
			_, _ = fmt.Fprintf(conn, "RTSP/1.0 200 OK\r\nCSeq: 4\r\n\r\n")
			_, _ = conn.Write(interleave(0, rtpPacket(1, 90000, 0x65, 0x88)))
			_, _ = conn.Write(interleave(0, rtpPacket(2, 93000, 0x41, 0x9A)))
			_ = conn.Close()
			return
		}
	}
}

func TestOpenSource(t *testing.T) {
	ln, err := net.Listen("tcp", "localhost:0")
	require.Nil(t, err)

	go serveCamera(t, ln)

	u, _ := url.Parse("rtsp://" + ln.Addr().String() + "/stream")

	source, err := OpenSource(u, 0)
	require.Nil(t, err)
	defer source.Close()

	require.Equal(t, core.CodecH264, source.Codec)
	require.Equal(t, TimeBase{Num: 1, Den: 90000}, source.TimeBase)
	require.Greater(t, source.Width, 0)
	require.Greater(t, source.Height, 0)

	// timestamps come out zero-based in stream ticks
	pkt, err := source.ReadPacket()
	require.Nil(t, err)
	require.Equal(t, int64(0), pkt.PTS)
	require.Equal(t, []byte{0, 0, 0, 1, 0x65, 0x88}, pkt.Payload)
	require.True(t, pkt.IsKeyframe)

	pkt, err = source.ReadPacket()
	require.Nil(t, err)
	require.Equal(t, int64(3000), pkt.PTS)
	require.False(t, pkt.IsKeyframe)

	require.Greater(t, source.Recv(), 0)

	_, err = source.ReadPacket()
	require.ErrorIs(t, err, io.EOF)
}

func TestOpenSourceNoVideo(t *testing.T) {
	ln, err := net.Listen("tcp", "localhost:0")
	require.Nil(t, err)

	go serveCamera(t, ln)

	u, _ := url.Parse("rtsp://" + ln.Addr().String() + "/stream")

	_, err = OpenSource(u, 1)

	var notFound *StreamNotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, 1, notFound.Index)
}
