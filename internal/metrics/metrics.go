package metrics

import (
	"net/http"

	"github.com/bnema/astropost/internal/domain"
	"github.com/bnema/astropost/internal/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"
)

const namespace = "astropost"

type Collector struct {
	registry  *prometheus.Registry
	topics    *prometheus.CounterVec
	skips     *prometheus.CounterVec
	publishes *prometheus.CounterVec
	cycles    *prometheus.CounterVec
}

var _ ports.CycleObserver = (*Collector)(nil)

func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		topics: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "topics_total",
			Help:      "Topics processed by the generation stage, by result.",
		}, []string{"result"}),
		skips: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "topic_skips_total",
			Help:      "Skipped topics by the stage that failed.",
		}, []string{"stage"}),
		publishes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publishes_total",
			Help:      "Publish calls by mode and result.",
		}, []string{"mode", "result"}),
		cycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cycles_total",
			Help:      "Finished cycles by trigger and outcome.",
		}, []string{"trigger", "outcome"}),
	}

	c.registry.MustRegister(c.topics, c.skips, c.publishes, c.cycles)
	return c
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

func (c *Collector) TopicGenerated(domain.Topic) {
	c.topics.WithLabelValues("generated").Inc()
}

func (c *Collector) TopicSkipped(_ domain.Topic, stage string) {
	c.topics.WithLabelValues("skipped").Inc()
	c.skips.WithLabelValues(stage).Inc()
}

func (c *Collector) PublishAttempted(mode domain.PublishMode, published bool) {
	result := "failed"
	if published {
		result = "published"
	}
	c.publishes.WithLabelValues(string(mode), result).Inc()
}

func (c *Collector) CycleFinished(trigger domain.Trigger, outcome domain.CycleOutcome) {
	c.cycles.WithLabelValues(string(trigger), string(outcome)).Inc()
}

type Totals struct {
	Generated int
	Skipped   int
	Cycles    int
}

// Totals reads the current counters back, for the shutdown summary.
func (c *Collector) Totals() Totals {
	totals := Totals{
		Generated: int(counterValue(c.topics.WithLabelValues("generated"))),
		Skipped:   int(counterValue(c.topics.WithLabelValues("skipped"))),
	}

	metrics := make(chan prometheus.Metric, 16)
	go func() {
		c.cycles.Collect(metrics)
		close(metrics)
	}()
	for metric := range metrics {
		totals.Cycles += int(counterValue(metric))
	}

	return totals
}

func counterValue(metric prometheus.Metric) float64 {
	var out dto.Metric
	if err := metric.Write(&out); err != nil {
		return 0
	}
	return out.GetCounter().GetValue()
}
