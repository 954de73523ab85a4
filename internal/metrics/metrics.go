package metrics

import (
	"net/http"

	"github.com/camkit/camfeed/internal/app"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ActiveStreams = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "camfeed_active_streams",
		Help: "Number of camera streams currently running",
	})

	FramesPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "camfeed_frames_published_total",
		Help: "Total number of frames published",
	}, []string{"camera", "codec"})

	KeyFrames = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "camfeed_keyframes_total",
		Help: "Total number of keyframes published",
	}, []string{"camera"})

	PacketsDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "camfeed_packets_dropped_total",
		Help: "Total number of transport packets dropped",
	}, []string{"camera", "reason"})

	BytesReceived = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "camfeed_bytes_received_total",
		Help: "Total payload bytes received from cameras",
	}, []string{"camera"})

	StreamErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "camfeed_stream_errors_total",
		Help: "Total number of fatal stream errors",
	}, []string{"camera"})
)

func Init() {
	var cfg struct {
		Mod struct {
			Listen string `yaml:"listen"`
		} `yaml:"metrics"`
	}

	app.LoadConfig(&cfg)

	if cfg.Mod.Listen == "" {
		return
	}

	log := app.GetLogger("metrics")

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	go func() {
		log.Info().Str("addr", cfg.Mod.Listen).Msg("[metrics] listen")
		if err := http.ListenAndServe(cfg.Mod.Listen, mux); err != nil {
			log.Error().Err(err).Msg("[metrics] serve")
		}
	}()
}
