package fio

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

const metricsNamespace = "fiostat"

type pipelineMetrics struct {
	frames         prometheus.Counter
	samples        prometheus.Counter
	writes         prometheus.Counter
	writeFailures  prometheus.Counter
	discardedBytes prometheus.Counter
}

// newPipelineMetrics registers the pipeline counters with reg. A nil reg
// leaves them unregistered. Counters already registered by an earlier run
// are reused, so totals accumulate across runs.
func newPipelineMetrics(reg prometheus.Registerer) *pipelineMetrics {
	factory := counterFactory{reg: reg}
	return &pipelineMetrics{
		frames: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "frames_total",
			Help:      "Complete fio status reports read from stdout.",
		}),
		samples: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "samples_total",
			Help:      "Read samples extracted from status reports.",
		}),
		writes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "sink_writes_total",
			Help:      "Points handed to the time-series sink.",
		}),
		writeFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "sink_write_failures_total",
			Help:      "Points the time-series sink failed to write.",
		}),
		discardedBytes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "discarded_bytes_total",
			Help:      "Bytes of fio output that never formed a status report.",
		}),
	}
}

type counterFactory struct {
	reg prometheus.Registerer
}

func (f counterFactory) NewCounter(opts prometheus.CounterOpts) prometheus.Counter {
	counter := prometheus.NewCounter(opts)
	if f.reg == nil {
		return counter
	}
	err := f.reg.Register(counter)
	if err == nil {
		return counter
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
			return existing
		}
	}
	log.Warn().Err(err).Str("name", opts.Name).Msg("Unable to register fio pipeline counter")
	return counter
}
