package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/AAliKKhan/PassMeterX/pkg/meter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "passmeter"

// Evaluation sources.
const (
	SourceForm = "form"
	SourceAPI  = "api"
)

var (
	evaluations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "evaluations_total",
		Help:      "Total number of password evaluations by strength level",
	}, []string{"source", "level"})

	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests received",
	}, []string{"method", "route", "status"})

	httpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

// ObserveEvaluation records one scored password. Only the level is kept.
func ObserveEvaluation(source string, r *meter.Result) {
	if r == nil {
		return
	}
	evaluations.WithLabelValues(source, string(r.Level())).Inc()
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// StatusRecorder captures the status code written by a handler.
type StatusRecorder struct {
	http.ResponseWriter
	Status int
}

func (r *StatusRecorder) WriteHeader(status int) {
	r.Status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *StatusRecorder) Write(b []byte) (int, error) {
	if r.Status == 0 {
		r.Status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

// Instrument wraps next and records request count and latency under route.
// The route must be a fixed pattern, never the raw request path.
func Instrument(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec, ok := w.(*StatusRecorder)
		if !ok {
			rec = &StatusRecorder{ResponseWriter: w}
		}
		start := time.Now()

		next.ServeHTTP(rec, r)

		status := rec.Status
		if status == 0 {
			status = http.StatusOK
		}
		labels := []string{r.Method, route, strconv.Itoa(status)}
		httpRequests.WithLabelValues(labels...).Inc()
		httpLatency.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
	})
}
