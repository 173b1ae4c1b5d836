package observability

import (
	"strings"
	"testing"
	"time"
)

func TestNilMetricsAreNoops(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("GET", "/healthcheck", "200", time.Millisecond)
	m.ObserveLLMRequest("openai", "gpt", "ok", time.Second)
	m.IncClassification("reference")
	m.IncMaterial("code_example", "resolved")
	m.APIInflightInc()
	if err := m.WritePrometheus(&strings.Builder{}); err != nil {
		t.Fatalf("WritePrometheus on nil: %v", err)
	}
}

func TestWritePrometheus(t *testing.T) {
	m := newMetrics()
	m.ObserveAPI("POST", "/api/chat/grounded", "200", 300*time.Millisecond)
	m.ObserveLLMRequest("openai", "gpt-4o", "ok", 3*time.Second)
	m.IncClassification("reference")
	m.IncClassification("reference")
	m.IncMaterial("code_example", "resolved")
	m.IncMaterial("", "unavailable")

	var b strings.Builder
	if err := m.WritePrometheus(&b); err != nil {
		t.Fatalf("WritePrometheus: %v", err)
	}
	out := b.String()
	for _, want := range []string{
		"# TYPE cc_api_requests_total counter\n",
		`cc_api_requests_total{method="POST",route="/api/chat/grounded",status="200"} 1.000000`,
		`cc_api_request_duration_seconds_bucket{method="POST",route="/api/chat/grounded",status="200",le="0.25"} 0`,
		`cc_api_request_duration_seconds_bucket{method="POST",route="/api/chat/grounded",status="200",le="0.5"} 1`,
		`cc_api_request_duration_seconds_bucket{method="POST",route="/api/chat/grounded",status="200",le="+Inf"} 1`,
		`cc_llm_requests_total{provider="openai",model="gpt-4o",status="ok"} 1.000000`,
		`cc_grounding_classifications_total{outcome="reference"} 2.000000`,
		`cc_grounding_materials_total{type="unknown",outcome="unavailable"} 1.000000`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q\n---\n%s", want, out)
		}
	}
}

func TestLabelEscaping(t *testing.T) {
	got := labelString([]string{"a", "b"}, []string{`x"y`})
	if got != `{a="x\"y",b="unknown"}` {
		t.Fatalf("labelString=%s", got)
	}
	if got := withLe("", "1"); got != `{le="1"}` {
		t.Fatalf("withLe empty=%s", got)
	}
}
