package publish

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sync"

	"github.com/camkit/camfeed/internal/app"
	"github.com/camkit/camfeed/pkg/core"
	"github.com/camkit/camfeed/pkg/mqtt"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// sink delivers one marshaled record to the downstream consumer.
type sink interface {
	Publish(topic string, payload []byte) error
	Close() error
}

var (
	mu    sync.Mutex
	out   sink
	topic string
	log   zerolog.Logger
)

func Init() {
	var cfg struct {
		Mod struct {
			URL   string `yaml:"url"`
			Topic string `yaml:"topic"`
		} `yaml:"publish"`
	}

	app.LoadConfig(&cfg)

	log = app.GetLogger("publish")

	topic = cfg.Mod.Topic
	if topic == "" {
		topic = "camfeed/frames"
	}

	if cfg.Mod.URL == "" {
		log.Warn().Msg("[publish] no url configured, records are dropped")
		return
	}

	s, err := dial(cfg.Mod.URL)
	if err != nil {
		log.Fatal().Err(err).Str("url", cfg.Mod.URL).Msg("[publish] connect")
	}

	out = s
	log.Info().Str("url", cfg.Mod.URL).Str("topic", topic).Msg("[publish] connected")
}

func dial(rawURL string) (sink, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}

	switch u.Scheme {
	case "mqtt":
		client, err := mqtt.Dial(rawURL, "camfeed-"+core.RandString(6))
		if err != nil {
			return nil, err
		}
		return client, nil

	case "ws", "wss":
		conn, _, err := websocket.DefaultDialer.Dial(rawURL, nil)
		if err != nil {
			return nil, err
		}
		return &wsSink{conn: conn}, nil
	}

	return nil, fmt.Errorf("publish: unsupported scheme: %s", u.Scheme)
}

// Send marshals the record and hands it to the configured sink.
// Safe for concurrent use by multiple camera pipelines.
func Send(v any) error {
	mu.Lock()
	defer mu.Unlock()

	if out == nil {
		return nil
	}

	b, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return out.Publish(topic, b)
}

func Close() {
	mu.Lock()
	defer mu.Unlock()

	if out != nil {
		_ = out.Close()
		out = nil
	}
}

// wsSink writes each record as one text message. The topic is carried
// by the records themselves, websocket consumers get everything.
type wsSink struct {
	conn *websocket.Conn
}

func (s *wsSink) Publish(_ string, payload []byte) error {
	return s.conn.WriteMessage(websocket.TextMessage, payload)
}

func (s *wsSink) Close() error {
	return s.conn.Close()
}
