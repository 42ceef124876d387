package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var HttpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "http_requests_total",
	Help: "Total number of requests labelled by path and status",
}, []string{"path", "status"})

var chunksCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "ingest_chunks_created_total",
	Help: "Chunks produced by the splitter across all ingestions",
})

var chunksStoredTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "ingest_chunks_stored_total",
	Help: "Chunks actually written to the vector collection",
})

var requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "pipeline_request_duration_seconds",
	Help:    "Total time spent in one ingest or query pipeline run.",
	Buckets: []float64{.1, .5, 1, 2, 5, 10, 30},
}, []string{"pipeline"})

var dependencyLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "dependency_latency_seconds",
	Help:    "Latency of external service calls.",
	Buckets: []float64{.05, .1, .25, .5, 1, 2, 5, 10},
}, []string{"service"})

type HttpStatusRecorder struct {
	http.ResponseWriter
	Status int
}

func (r *HttpStatusRecorder) WriteHeader(code int) {
	r.Status = code
	r.ResponseWriter.WriteHeader(code)
}

func CaptureExecutionMetrics(label string, timeElapsed time.Duration) {
	dependencyLatency.WithLabelValues(label).Observe(timeElapsed.Seconds())
}

func CapturePipelineMetrics(pipeline string, timeElapsed time.Duration) {
	requestDuration.WithLabelValues(pipeline).Observe(timeElapsed.Seconds())
}

func AddChunksCreated(n int) {
	chunksCreatedTotal.Add(float64(n))
}

func AddChunksStored(n int) {
	chunksStoredTotal.Add(float64(n))
}
