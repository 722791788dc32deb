package catena

import (
	"sync/atomic"

	"github.com/VictoriaMetrics/metrics"
)

var (
	// StatsForNerds exposes Prometheus metrics for catena readers.
	// Metric names are prefixed with "catena_".
	//
	// The following metrics are exposed:
	//
	// catena_sources_opened_total
	// catena_source_open_errors_total
	// catena_sources_skipped_total
	// catena_read_bytes_total
	// catena_open_source_handles
	//
	// You can surface these metrics in your application using the
	// [metrics.RegisterSet] function.
	//
	// [metrics.RegisterSet]: https://pkg.go.dev/github.com/VictoriaMetrics/metrics#RegisterSet
	StatsForNerds = metrics.NewSet()

	openHandles atomic.Int64

	sourcesOpenedTotal    = StatsForNerds.NewCounter("catena_sources_opened_total")
	sourceOpenErrorsTotal = StatsForNerds.NewCounter("catena_source_open_errors_total")
	sourcesSkippedTotal   = StatsForNerds.NewCounter("catena_sources_skipped_total")
	readBytesTotal        = StatsForNerds.NewCounter("catena_read_bytes_total")

	_ = StatsForNerds.NewGauge("catena_open_source_handles", func() float64 {
		return float64(openHandles.Load())
	})
)
