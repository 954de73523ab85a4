package ingest

import (
	"github.com/camkit/camfeed/internal/app"
	"github.com/camkit/camfeed/internal/metrics"
)

func Init(publish PublishFunc) {
	var cfg struct {
		Cameras map[string]Config `yaml:"cameras"`
	}

	app.LoadConfig(&cfg)

	log := app.GetLogger("ingest")

	for name, camera := range cfg.Cameras {
		if camera.Address == "" {
			log.Error().Str("camera", name).Msg("[ingest] missing address")
			continue
		}

		pipeline := NewPipeline(name, camera, log, publish)

		go func(name string) {
			metrics.ActiveStreams.Inc()
			defer metrics.ActiveStreams.Dec()

			if err := pipeline.Run(); err != nil {
				metrics.StreamErrors.WithLabelValues(name).Inc()
				log.Error().Err(err).Str("camera", name).Msg("[ingest] stream failed")
			}
		}(name)
	}
}
