package rtsp

import (
	"encoding/binary"
	"fmt"
	"net"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTimeout(t *testing.T) {
	old := Timeout
	Timeout = time.Millisecond
	defer func() { Timeout = old }()

	ln, err := net.Listen("tcp", "localhost:0")
	require.Nil(t, err)

	client, err := NewClient("rtsp://" + ln.Addr().String() + "/stream")
	require.Nil(t, err)

	err = client.Dial()
	require.Nil(t, err)

	err = client.Describe()
	require.ErrorIs(t, err, os.ErrDeadlineExceeded)
}

const testSDP = `v=0
o=- 1 1 IN IP4 0.0.0.0
s=-
c=IN IP4 0.0.0.0
t=0 0
m=video 0 RTP/AVP 96
a=control:trackID=1
a=rtpmap:96 H264/90000
a=fmtp:96 packetization-mode=1; profile-level-id=640029
m=audio 0 RTP/AVP 8
a=control:trackID=2
a=rtpmap:8 PCMA/8000
`

func fakeCamera(t *testing.T, ln net.Listener) {
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
			_, _ = fmt.Fprintf(conn, "RTSP/1.0 200 OK\r\nCSeq: 1\r\nPublic: OPTIONS, DESCRIBE, SETUP, PLAY, TEARDOWN\r\n\r\n")

		case "DESC":
			_, _ = fmt.Fprintf(conn,
				"RTSP/1.0 200 OK\r\nCSeq: 2\r\nContent-Type: application/sdp\r\nContent-Length: %d\r\n\r\n%s",
				len(testSDP), testSDP)

		case "SETU":
			// answer with other channels than requested
			_, _ = fmt.Fprintf(conn,
				"RTSP/1.0 200 OK\r\nCSeq: 3\r\nSession: 216525287999;timeout=60\r\nTransport: RTP/AVP/TCP;unicast;interleaved=4-5;ssrc=10117CB7\r\n\r\n")

		case "PLAY":
			_, _ = fmt.Fprintf(conn, "RTSP/1.0 200 OK\r\nCSeq: 4\r\n\r\n")

			// RTCP sender report on the control channel
			sr := make([]byte, 28)
			sr[0] = 0x80
			sr[1] = 200
			binary.BigEndian.PutUint16(sr[2:], 6) // length in words - 1
			_, _ = conn.Write(interleave(5, sr))

			// RTP packet on the data channel
			pkt := []byte{
				0x80, 0x60, 0x00, 0x01, // v=2, pt=96, seq=1
				0x00, 0x00, 0x23, 0x28, // timestamp=9000
				0x00, 0x00, 0x00, 0x01, // ssrc
				0x65, 0x88, // payload
			}
			_, _ = conn.Write(interleave(4, pkt))

		case "TEAR":
			return
		}
	}
}

func interleave(channel byte, b []byte) []byte {
	buf := make([]byte, 4, 4+len(b))
	buf[0] = '$'
	buf[1] = channel
	binary.BigEndian.PutUint16(buf[2:], uint16(len(b)))
	return append(buf, b...)
}

func TestClient(t *testing.T) {
	ln, err := net.Listen("tcp", "localhost:0")
	require.Nil(t, err)

	go fakeCamera(t, ln)

	client, err := NewClient("rtsp://" + ln.Addr().String() + "/stream")
	require.Nil(t, err)

	err = client.Dial()
	require.Nil(t, err)

	err = client.Options()
	require.Nil(t, err)

	err = client.Describe()
	require.Nil(t, err)
	require.Len(t, client.Medias, 2)
	require.Equal(t, "video", client.Medias[0].Kind)
	require.Equal(t, "H264", client.Medias[0].Codecs[0].Name)

	ch, err := client.SetupMedia(client.Medias[0])
	require.Nil(t, err)
	require.Equal(t, byte(4), ch)
	require.Equal(t, keepaliveDT(60), client.keepalive)

	err = client.Play()
	require.Nil(t, err)

	// the PLAY response and the RTCP report are consumed internally
	channel, packet, err := client.ReadPacket()
	require.Nil(t, err)
	require.Equal(t, byte(4), channel)
	require.Equal(t, uint32(9000), packet.Timestamp)
	require.Equal(t, []byte{0x65, 0x88}, packet.Payload)

	require.NotNil(t, client.SenderReport(4))

	err = client.Close()
	require.Nil(t, err)
}

func TestURLParse(t *testing.T) {
	u, err := urlParse("rtsp://rtsp://turret2-cam.lan:554/stream1/")
	require.Nil(t, err)
	require.Equal(t, "turret2-cam.lan:554", u.Host)

	u, err = urlParse("rtsp://::ffff:192.168.1.123/onvif/profile.1/")
	require.Nil(t, err)
	require.Equal(t, "/onvif/profile.1/", u.Path)
}
