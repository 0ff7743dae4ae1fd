package metrics

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"seodash/internal/models"
)

var (
	keywordSearchDesc = prometheus.NewDesc(
		"seodash_keyword_searches_total",
		"Total keyword search count by intent filter and outcome",
		[]string{"intent", "outcome"},
		nil,
	)
)

// SearchStore persists keyword search counts.
type SearchStore interface {
	IncrementKeywordSearch(ctx context.Context, intent, outcome string) error
	GetAllKeywordSearches(ctx context.Context) ([]models.KeywordSearch, error)
}

// KeywordSearchCollector is a custom Prometheus collector that reads keyword
// search counts from the database on each scrape.
type KeywordSearchCollector struct {
	store SearchStore
}

// NewKeywordSearchCollector returns a collector backed by store.
func NewKeywordSearchCollector(store SearchStore) *KeywordSearchCollector {
	return &KeywordSearchCollector{store: store}
}

// Describe sends the metric descriptor to the channel.
func (c *KeywordSearchCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- keywordSearchDesc
}

// Collect queries the database for all keyword searches and emits them as counters.
func (c *KeywordSearchCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	searches, err := c.store.GetAllKeywordSearches(ctx)
	if err != nil {
		slog.Error("failed to collect keyword search metrics", "error", err)
		return
	}
	for _, s := range searches {
		ch <- prometheus.MustNewConstMetric(
			keywordSearchDesc,
			prometheus.CounterValue,
			float64(s.Count),
			s.Intent,
			s.Outcome,
		)
	}
}

// Recorder provides async keyword search recording.
type Recorder struct {
	store SearchStore
	wg    sync.WaitGroup
}

var (
	recorder     *Recorder
	recorderOnce sync.Once
)

// Init registers the custom collector and initializes the recorder.
// Must be called once at startup.
func Init(store SearchStore) {
	recorderOnce.Do(func() {
		recorder = &Recorder{store: store}
		prometheus.MustRegister(NewKeywordSearchCollector(store))
	})
}

// RecordKeywordSearch asynchronously records a keyword search outcome.
func RecordKeywordSearch(intent, outcome string) {
	if recorder == nil {
		return
	}
	recorder.record(intent, outcome)
}

func (r *Recorder) record(intent, outcome string) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := r.store.IncrementKeywordSearch(ctx, intent, outcome); err != nil {
			slog.Error("failed to record keyword search", "intent", intent, "outcome", outcome, "error", err)
		}
	}()
}

// Flush waits for pending recordings to finish.
func Flush() {
	if recorder != nil {
		recorder.wg.Wait()
	}
}

// HTTP holds request metrics for the API.
type HTTP struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// NewHTTP creates the HTTP metrics on reg.
func NewHTTP(reg prometheus.Registerer) *HTTP {
	factory := promauto.With(reg)
	return &HTTP{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "seodash_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "seodash_http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
	}
}

// Observe records one finished request.
func (h *HTTP) Observe(method, path, status string, elapsed time.Duration) {
	h.RequestsTotal.WithLabelValues(method, path, status).Inc()
	h.RequestDuration.WithLabelValues(method, path, status).Observe(elapsed.Seconds())
}
