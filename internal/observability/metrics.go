package observability

import (
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/yungbote/coursechat-backend/internal/platform/envutil"
	"github.com/yungbote/coursechat-backend/internal/platform/logger"
)

type Metrics struct {
	apiRequests     *CounterVec
	apiLatency      *HistogramVec
	apiInflight     *Gauge
	llmRequests     *CounterVec
	llmLatency      *HistogramVec
	classified      *CounterVec
	materials       *CounterVec
	docstoreOps     *CounterVec
	docstoreLatency *HistogramVec
}

var (
	initOnce sync.Once
	instance *Metrics
)

func Enabled() bool {
	return envutil.Bool("METRICS_ENABLED", false)
}

// Current is nil until Init ran with METRICS_ENABLED set. Every Observe
// method is a no-op on a nil receiver.
func Current() *Metrics {
	return instance
}

func Init(log *logger.Logger) *Metrics {
	if !Enabled() {
		return nil
	}
	initOnce.Do(func() {
		instance = newMetrics()
		if log != nil {
			log.Info("metrics initialized")
		}
	})
	return instance
}

func newMetrics() *Metrics {
	return &Metrics{
		apiRequests: NewCounterVec("cc_api_requests_total", "Total API requests by method/route/status.", []string{"method", "route", "status"}),
		apiLatency: NewHistogramVec(
			"cc_api_request_duration_seconds",
			"API request latency in seconds by method/route/status.",
			[]string{"method", "route", "status"},
			[]float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		),
		apiInflight: NewGauge("cc_api_inflight_requests", "In-flight API requests."),
		llmRequests: NewCounterVec("cc_llm_requests_total", "Chat completion calls by provider/model/status.", []string{"provider", "model", "status"}),
		llmLatency: NewHistogramVec(
			"cc_llm_request_duration_seconds",
			"Chat completion latency in seconds by provider/model/status.",
			[]string{"provider", "model", "status"},
			[]float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
		),
		classified:  NewCounterVec("cc_grounding_classifications_total", "Classifier outcomes per chat turn.", []string{"outcome"}),
		materials:   NewCounterVec("cc_grounding_materials_total", "Selected materials by type and resolution outcome.", []string{"type", "outcome"}),
		docstoreOps: NewCounterVec("cc_docstore_operations_total", "Document store operations by backend/operation/status.", []string{"backend", "operation", "status"}),
		docstoreLatency: NewHistogramVec(
			"cc_docstore_operation_duration_seconds",
			"Document store operation latency in seconds by backend/operation/status.",
			[]string{"backend", "operation", "status"},
			[]float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		),
	}
}

func (m *Metrics) WriteHTTP(w http.ResponseWriter, _ *http.Request) {
	if m == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	_ = m.WritePrometheus(w)
}

func (m *Metrics) WritePrometheus(w io.Writer) error {
	if m == nil {
		return nil
	}
	for _, c := range []collector{
		m.apiRequests,
		m.apiLatency,
		m.apiInflight,
		m.llmRequests,
		m.llmLatency,
		m.classified,
		m.materials,
		m.docstoreOps,
		m.docstoreLatency,
	} {
		if err := c.WritePrometheus(w); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) ObserveAPI(method, route, status string, dur time.Duration) {
	if m == nil {
		return
	}
	method = orUnknown(method)
	route = orUnknown(route)
	if status == "" {
		status = "0"
	}
	m.apiRequests.Inc(method, route, status)
	m.apiLatency.Observe(dur.Seconds(), method, route, status)
}

func (m *Metrics) APIInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) APIInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

// ObserveLLMRequest records one completion call; status is "ok" or "error".
func (m *Metrics) ObserveLLMRequest(provider, model, status string, dur time.Duration) {
	if m == nil {
		return
	}
	provider, model, status = orUnknown(provider), orUnknown(model), orUnknown(status)
	m.llmRequests.Inc(provider, model, status)
	if dur > 0 {
		m.llmLatency.Observe(dur.Seconds(), provider, model, status)
	}
}

func (m *Metrics) IncClassification(outcome string) {
	if m == nil {
		return
	}
	m.classified.Inc(orUnknown(outcome))
}

// IncMaterial counts one selected descriptor; outcome is "resolved",
// "unavailable" or "error".
func (m *Metrics) IncMaterial(materialType, outcome string) {
	if m == nil {
		return
	}
	m.materials.Inc(orUnknown(materialType), orUnknown(outcome))
}

func (m *Metrics) ObserveDocstoreOperation(backend, operation, status string, dur time.Duration) {
	if m == nil {
		return
	}
	backend, operation, status = orUnknown(backend), orUnknown(operation), orUnknown(status)
	m.docstoreOps.Inc(backend, operation, status)
	m.docstoreLatency.Observe(dur.Seconds(), backend, operation, status)
}

func orUnknown(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "unknown"
	}
	return v
}
