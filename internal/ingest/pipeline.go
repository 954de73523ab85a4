package ingest

import (
	"errors"
	"io"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/camkit/camfeed/internal/metrics"
	"github.com/camkit/camfeed/pkg/core"
	"github.com/camkit/camfeed/pkg/onvif"
	"github.com/rs/zerolog"
)

// Config describes one camera. Control-plane and stream credentials
// are separate because devices commonly use different accounts for
// the two planes.
type Config struct {
	Address       string `yaml:"address"`
	ONVIFUsername string `yaml:"onvif_username"`
	ONVIFPassword string `yaml:"onvif_password"`
	Username      string `yaml:"username"`
	Password      string `yaml:"password"`
	Profile       int    `yaml:"profile"`
	Stream        int    `yaml:"stream"`
	EntityPath    string `yaml:"entity_path"`
}

// PublishFunc hands one finished record to the downstream consumer.
type PublishFunc func(*Record) error

// Pipeline runs the full acquisition chain for one camera: resolve,
// inject credentials, open transport, validate framing, assemble
// frames, timestamp, encode, publish. One pipeline owns one stream
// and shares no state with others.
type Pipeline struct {
	name    string
	cfg     Config
	log     zerolog.Logger
	publish PublishFunc
}

func NewPipeline(name string, cfg Config, log zerolog.Logger, publish PublishFunc) *Pipeline {
	if cfg.EntityPath == "" {
		cfg.EntityPath = "camera/" + addressHost(cfg.Address) + "/" + name
	}
	return &Pipeline{name: name, cfg: cfg, log: log, publish: publish}
}

// addressHost extracts the camera host from the configured address,
// which may be a bare host, host:port or a full device URL.
func addressHost(address string) string {
	s := address
	if !strings.Contains(s, "://") {
		s = "http://" + s
	}
	if u, err := url.Parse(s); err == nil && u.Hostname() != "" {
		return u.Hostname()
	}
	return address
}

// Run blocks until the stream ends or a fatal error is raised. End of
// stream (peer close) returns nil. Retry policy belongs to the
// caller, nothing here reconnects.
func (p *Pipeline) Run() error {
	address := p.cfg.Address
	if !strings.Contains(address, "://") {
		address = "http://" + address
	}

	client, err := onvif.NewClient(address, p.cfg.ONVIFUsername, p.cfg.ONVIFPassword)
	if err != nil {
		return err
	}

	u, err := ResolveStream(client, p.cfg.Profile)
	if err != nil {
		return err
	}

	u = InjectCredentials(u, p.cfg.Username, p.cfg.Password)

	name, _ := client.GetDeviceName()

	p.log.Info().
		Str("camera", p.name).
		Str("device", name).
		Str("url", u.Redacted()).
		Msg("[ingest] stream resolved")

	source, err := OpenSource(u, p.cfg.Stream)
	if err != nil {
		return err
	}
	defer source.Close()

	info := StreamInfo{
		Codec:     source.Codec,
		Width:     source.Width,
		Height:    source.Height,
		TimeBase:  source.TimeBase,
		StartTime: source.StartTime,
	}

	p.log.Info().
		Str("camera", p.name).
		Str("codec", info.Codec).
		Int("width", info.Width).
		Int("height", info.Height).
		Msg("[ingest] stream open")

	// track transport bytes as they come off the wire
	var recv int
	next := func() (*TransportPacket, error) {
		pkt, err := source.ReadPacket()
		if n := source.Recv(); n > recv {
			metrics.BytesReceived.WithLabelValues(p.name).Add(float64(n - recv))
			recv = n
		}
		return pkt, err
	}

	// the wall-clock anchor for the whole run
	return p.stream(info, next, time.Now())
}

// StreamInfo carries the static attributes of an open stream.
type StreamInfo struct {
	Codec     string
	Width     int
	Height    int
	TimeBase  TimeBase
	StartTime int64
}

// stream pulls packets until the source ends, pushing finished
// records to the publisher.
func (p *Pipeline) stream(info StreamInfo, next func() (*TransportPacket, error), anchor time.Time) error {
	switch info.Codec {
	case core.CodecH264, core.CodecH265, core.CodecAV1:
	default:
		return &UnsupportedCodecError{Codec: info.Codec}
	}

	clock := NewReconstructor(anchor, info.StartTime, info.TimeBase)

	asm := &Assembler{}
	validated := false

	for {
		pkt, err := next()
		if err != nil {
			if isEOS(err) {
				p.log.Info().Str("camera", p.name).Msg("[ingest] end of stream")
				// the last group is complete only on a clean close
				if frame := asm.Flush(); frame != nil {
					return p.emit(frame, info, clock)
				}
				return nil
			}
			return err
		}

		// packets with no decode timestamp are unusable, drop them
		if pkt.DTS == NoPTS {
			metrics.PacketsDropped.WithLabelValues(p.name, "no_dts").Inc()
			continue
		}

		if !validated {
			if err = ValidateFraming(info.Codec, pkt.Payload); err != nil {
				return err
			}
			validated = true
		}

		frame := asm.Push(pkt)
		if frame == nil {
			continue
		}

		if err = p.emit(frame, info, clock); err != nil {
			return err
		}
	}
}

func (p *Pipeline) emit(frame *Frame, info StreamInfo, clock *Reconstructor) error {
	frame.Codec = info.Codec
	frame.Width = info.Width
	frame.Height = info.Height

	rec, err := EncodeFrame(frame, clock.Absolute(frame.PTS), p.cfg.EntityPath)
	if err != nil {
		return err
	}

	if err = p.publish(rec); err != nil {
		return err
	}

	metrics.FramesPublished.WithLabelValues(p.name, rec.Codec).Inc()
	if frame.IsKeyframe {
		metrics.KeyFrames.WithLabelValues(p.name).Inc()
	}

	return nil
}

// isEOS reports whether err means the peer ended the stream.
func isEOS(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed)
}
