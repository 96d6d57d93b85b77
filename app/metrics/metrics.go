// Package metrics exposes Prometheus counters for the answer pipeline.
package metrics

import (
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	TranscriptsReceived prometheus.Counter
	QueriesTotal        prometheus.Counter
	CasualTotal         prometheus.Counter
	FallbackTotal       prometheus.Counter
	AnswerFailures      prometheus.Counter

	RAGLatency      prometheus.Histogram
	RetrievedChunks prometheus.Histogram
	ReplyLength     prometheus.Histogram

	SessionsStarted prometheus.Counter
	ActiveSessions  prometheus.Gauge
}

// New registers all collectors on the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers all collectors on reg. Tests pass their own registry so
// repeated construction does not panic on duplicate registration.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		TranscriptsReceived: factory.NewCounter(prometheus.CounterOpts{
			Name: "nexi_transcripts_received_total",
			Help: "Total number of user transcripts received from sessions",
		}),
		QueriesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "nexi_rag_queries_total",
			Help: "Total number of queries answered through the RAG pipeline",
		}),
		CasualTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "nexi_casual_replies_total",
			Help: "Total number of utterances answered with a canned casual reply",
		}),
		FallbackTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "nexi_fallback_replies_total",
			Help: "Total number of weak RAG answers replaced by the fallback reply",
		}),
		AnswerFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "nexi_answer_failures_total",
			Help: "Total number of answer attempts that ended in the error reply",
		}),
		RAGLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "nexi_rag_latency_seconds",
			Help:    "Latency of the retrieve-and-generate call",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
		}),
		RetrievedChunks: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "nexi_retrieved_chunks",
			Help:    "Number of chunks retrieved per query",
			Buckets: prometheus.LinearBuckets(0, 1, 11),
		}),
		ReplyLength: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "nexi_reply_length_chars",
			Help:    "Length of sanitized replies in characters",
			Buckets: prometheus.ExponentialBuckets(8, 2, 10),
		}),
		SessionsStarted: factory.NewCounter(prometheus.CounterOpts{
			Name: "nexi_sessions_started_total",
			Help: "Total number of audio or text sessions joined",
		}),
		ActiveSessions: factory.NewGauge(prometheus.GaugeOpts{
			Name: "nexi_active_sessions",
			Help: "Current number of live sessions",
		}),
	}
}

// ObserveRAG records one retrieve-and-generate call.
func (m *Metrics) ObserveRAG(start time.Time, chunks int) {
	m.QueriesTotal.Inc()
	m.RAGLatency.Observe(time.Since(start).Seconds())
	m.RetrievedChunks.Observe(float64(chunks))
}

// Serve exposes /metrics on addr in a background goroutine.
func Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		log.Printf("📊 Metrics listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("⚠️ Metrics server error: %v", err)
		}
	}()
	return srv
}
