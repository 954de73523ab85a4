package ingest

import (
	"net/url"

	"github.com/camkit/camfeed/pkg/av1"
	"github.com/camkit/camfeed/pkg/core"
	"github.com/camkit/camfeed/pkg/h264"
	"github.com/camkit/camfeed/pkg/h265"
	"github.com/camkit/camfeed/pkg/rtsp"
	"github.com/deepch/vdk/codec/h264parser"
	"github.com/deepch/vdk/codec/h265parser"
	"github.com/pion/rtp"
)

type depayloader interface {
	Depay(packet *rtp.Packet) [][]byte
}

// Source opens the transport behind a credentialed stream URI and
// yields transport packets for exactly one video stream. Packets
// come out access-unit-fragment sized with zero-based timestamps in
// the stream's own tick units.
type Source struct {
	Codec     string // core codec name
	Width     int
	Height    int
	TimeBase  TimeBase
	StartTime int64 // start-of-stream PTS after normalization

	conn    *rtsp.Conn
	channel byte
	depay   depayloader
	queue   []*TransportPacket

	started bool
	prev    uint32
	total   int64
}

// OpenSource dials the stream and negotiates a single video track
// selected by the zero-based index. The connection is torn down on
// every failed exit.
func OpenSource(u *url.URL, index int) (src *Source, err error) {
	conn, err := rtsp.NewClient(u.String())
	if err != nil {
		return nil, err
	}

	if err = conn.Dial(); err != nil {
		return nil, err
	}

	defer func() {
		if err != nil {
			_ = conn.Close()
		}
	}()

	if err = conn.Options(); err != nil {
		return nil, err
	}
	if err = conn.Describe(); err != nil {
		return nil, err
	}

	var media *core.Media
	i := 0
	for _, m := range conn.Medias {
		if m.Kind != core.KindVideo {
			continue
		}
		if i == index {
			media = m
			break
		}
		i++
	}
	if media == nil {
		return nil, &StreamNotFoundError{Index: index}
	}

	codec := media.Codecs[0]
	src = &Source{conn: conn, Codec: codec.Name}

	switch codec.Name {
	case core.CodecH264:
		src.depay = &h264.Depayloader{}
		if sps, pps := h264.GetParameterSet(codec.FmtpLine); sps != nil {
			if data, err2 := h264parser.NewCodecDataFromSPSAndPPS(sps, pps); err2 == nil {
				src.Width = data.Width()
				src.Height = data.Height()
			}
		}
	case core.CodecH265:
		src.depay = &h265.Depayloader{}
		if vps, sps, pps := h265.GetParameterSet(codec.FmtpLine); sps != nil {
			if data, err2 := h265parser.NewCodecDataFromVPSAndSPSAndPPS(vps, sps, pps); err2 == nil {
				src.Width = data.Width()
				src.Height = data.Height()
			}
		}
	case core.CodecAV1:
		src.depay = &av1.Depayloader{}
	default:
		return nil, &UnsupportedCodecError{Codec: codec.Name}
	}

	clockRate := int(codec.ClockRate)
	if clockRate == 0 {
		clockRate = 90000
	}
	src.TimeBase = TimeBase{Num: 1, Den: clockRate}

	if src.channel, err = conn.SetupMedia(media); err != nil {
		return nil, err
	}

	if err = conn.Play(); err != nil {
		return nil, err
	}

	return src, nil
}

// ReadPacket returns the next packet for the selected stream. The
// sequence is consumed once, in order, and ends with the underlying
// read error (io.EOF on clean peer close).
func (s *Source) ReadPacket() (*TransportPacket, error) {
	for {
		if len(s.queue) > 0 {
			pkt := s.queue[0]
			s.queue = s.queue[1:]
			return pkt, nil
		}

		channel, packet, err := s.conn.ReadPacket()
		if err != nil {
			return nil, err
		}
		if channel != s.channel {
			continue
		}

		units := s.depay.Depay(packet)
		if units == nil {
			continue
		}

		pts := s.unwrap(packet.Timestamp)

		for _, unit := range units {
			s.queue = append(s.queue, &TransportPacket{
				Payload:    unit,
				PTS:        pts,
				DTS:        pts,
				IsKeyframe: s.isKeyframe(unit),
				TimeBase:   s.TimeBase,
			})
		}
	}
}

// Recv returns total transport payload bytes read so far.
func (s *Source) Recv() int {
	return s.conn.Recv()
}

func (s *Source) Close() error {
	return s.conn.Close()
}

// unwrap turns the 32-bit transport timestamp into a zero-based
// 64-bit tick counter that survives wraparound.
func (s *Source) unwrap(ts uint32) int64 {
	if !s.started {
		s.started = true
		s.prev = ts
		return 0
	}
	s.total += int64(int32(ts - s.prev))
	s.prev = ts
	return s.total
}

func (s *Source) isKeyframe(unit []byte) bool {
	switch s.Codec {
	case core.CodecH264:
		return h264.IsKeyframe(unit)
	case core.CodecH265:
		return h265.IsKeyframe(unit)
	case core.CodecAV1:
		return av1.IsKeyframe(unit)
	}
	return false
}
