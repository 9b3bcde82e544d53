package metrics

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"titan/internal/ledger"
)

var (
	categoryUsageDesc = prometheus.NewDesc(
		"titan_topic_category_usage",
		"Number of topics generated per category, read from the ledger",
		[]string{"category"},
		nil,
	)
	uniqueTopicsDesc = prometheus.NewDesc(
		"titan_topic_unique_keywords",
		"Number of distinct keywords in the ledger",
		nil,
		nil,
	)

	quotesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "titan_quotes_total",
		Help: "Total price quotes by product and behavior segment",
	}, []string{"product", "segment"})

	topicsSelectedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "titan_topics_selected_total",
		Help: "Total topics selected by category",
	}, []string{"category"})

	ambiguityTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "titan_classification_ambiguity_total",
		Help: "Pricing signals that matched no rule and fell back to a default, by dimension",
	}, []string{"dimension"})
)

// collectTimeout bounds the ledger read done on each scrape.
const collectTimeout = 5 * time.Second

// CategoryCollector is a custom Prometheus collector that reads category
// usage from the ledger on each scrape.
type CategoryCollector struct {
	ledger ledger.Ledger
}

// NewCategoryCollector returns a collector reading from l.
func NewCategoryCollector(l ledger.Ledger) *CategoryCollector {
	return &CategoryCollector{ledger: l}
}

// Describe sends the metric descriptors to the channel.
func (c *CategoryCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- categoryUsageDesc
	ch <- uniqueTopicsDesc
}

// Collect reads the ledger and emits one gauge per category.
func (c *CategoryCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), collectTimeout)
	defer cancel()

	u, err := c.ledger.Usage(ctx)
	if err != nil {
		slog.Error("failed to collect category usage metrics", "error", err)
		return
	}
	for category, n := range u.ByCategory {
		ch <- prometheus.MustNewConstMetric(
			categoryUsageDesc,
			prometheus.GaugeValue,
			float64(n),
			category,
		)
	}
	ch <- prometheus.MustNewConstMetric(uniqueTopicsDesc, prometheus.GaugeValue, float64(len(u.Used)))
}

var initOnce sync.Once

// Init registers the counters and the ledger collector with the default
// registry. Must be called once at startup; later calls are no-ops.
func Init(l ledger.Ledger) {
	initOnce.Do(func() {
		prometheus.MustRegister(quotesTotal, topicsSelectedTotal, ambiguityTotal)
		prometheus.MustRegister(NewCategoryCollector(l))
	})
}

// RecordQuote counts a served price quote.
func RecordQuote(product, segment string) {
	quotesTotal.WithLabelValues(product, segment).Inc()
}

// RecordTopicSelected counts a selected topic.
func RecordTopicSelected(category string) {
	topicsSelectedTotal.WithLabelValues(category).Inc()
}

// RecordAmbiguity counts a classifier fallback for dimension, e.g. "device".
func RecordAmbiguity(dimension string) {
	ambiguityTotal.WithLabelValues(dimension).Inc()
}
