package rtsp

import (
	"encoding/binary"
	"errors"
	"io"
	"time"

	"github.com/camkit/camfeed/pkg/tcp"
	"github.com/pion/rtcp"
	"github.com/pion/rtp"
)

// ReadPacket returns the next RTP packet from an even interleaved
// channel. RTCP reports, inline RTSP exchanges and keepalives are
// handled internally.
func (c *Conn) ReadPacket() (byte, *rtp.Packet, error) {
	for {
		if c.keepalive > 0 && time.Now().After(c.keepaliveTS) {
			req := &tcp.Request{Method: MethodOptions, URL: c.URL}
			if err := c.Request(req); err != nil {
				return 0, nil, err
			}
			c.keepaliveTS = time.Now().Add(c.keepalive)
		}

		if err := c.conn.SetReadDeadline(time.Now().Add(Timeout)); err != nil {
			return 0, nil, err
		}

		// we can read:
		// 1. RTP interleaved: `$` + 1B channel number + 2B size
		// 2. RTSP response:   RTSP/1.0 200 OK
		// 3. RTSP request:    OPTIONS ...
		buf4, err := c.reader.Peek(4)
		if err != nil {
			return 0, nil, err
		}

		if buf4[0] != '$' {
			if string(buf4) == "RTSP" {
				if _, err = tcp.ReadResponse(c.reader); err != nil {
					return 0, nil, err
				}
			} else {
				if _, err = tcp.ReadRequest(c.reader); err != nil {
					return 0, nil, err
				}
			}
			continue
		}

		channel := buf4[1]
		size := int(binary.BigEndian.Uint16(buf4[2:]))

		if _, err = c.reader.Discard(4); err != nil {
			return 0, nil, err
		}

		buf := make([]byte, size)
		if _, err = io.ReadFull(c.reader, buf); err != nil {
			return 0, nil, err
		}

		c.recv += size

		// hope that the odd channels are always RTCP
		if channel&1 != 0 {
			if packets, err2 := rtcp.Unmarshal(buf); err2 == nil {
				c.handleRTCP(channel, packets)
			}
			continue
		}

		packet := &rtp.Packet{}
		if err = packet.Unmarshal(buf); err != nil {
			return 0, nil, errors.New("rtsp: wrong RTP data")
		}

		return channel, packet, nil
	}
}

func (c *Conn) handleRTCP(channel byte, packets []rtcp.Packet) {
	for _, p := range packets {
		if sr, ok := p.(*rtcp.SenderReport); ok {
			if c.reports == nil {
				c.reports = make(map[byte]*rtcp.SenderReport)
			}
			c.reports[channel] = sr
		}
	}
}

// SenderReport returns the last RTCP sender report seen on the control
// channel paired with the given data channel, or nil.
func (c *Conn) SenderReport(dataChannel byte) *rtcp.SenderReport {
	return c.reports[dataChannel+1]
}
