package main

import (
	"github.com/camkit/camfeed/internal/app"
	"github.com/camkit/camfeed/internal/ingest"
	"github.com/camkit/camfeed/internal/metrics"
	"github.com/camkit/camfeed/internal/publish"
	"github.com/camkit/camfeed/pkg/shell"
)

func main() {
	app.Init() // init config and logs

	metrics.Init() // optional prometheus endpoint
	publish.Init() // connect the downstream sink

	ingest.Init(func(rec *ingest.Record) error {
		return publish.Send(rec)
	})

	shell.RunUntilSignal()

	publish.Close()
}
