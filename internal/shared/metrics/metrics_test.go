package metrics

import (
	"strings"
	"testing"
)

func TestHistogramBucketsAreCumulativeOnce(t *testing.T) {
	h := newHistogram([]float64{10, 100})
	h.Observe(5)
	h.Observe(50)
	h.Observe(500)

	snap := h.Snapshot()
	if snap.counts[0] != 1 || snap.counts[1] != 1 {
		t.Fatalf("expected per-bucket counts [1 1], got %v", snap.counts)
	}
	if snap.count != 3 {
		t.Fatalf("expected count 3, got %d", snap.count)
	}
}

func TestRenderIncludesLabelledCounters(t *testing.T) {
	ObserveAPICall("list_resumes", "ok", 12)
	ObserveAPICall("list_resumes", "error", 40)
	IncViewMount("resume")
	IncExport("pdf", "ok")

	out := Render()
	for _, want := range []string{
		`api_calls_total{op="list_resumes",outcome="ok"}`,
		`api_calls_total{op="list_resumes",outcome="error"}`,
		`view_mounts_total{view="resume"}`,
		`exports_total{format="pdf",outcome="ok"}`,
		"# TYPE api_call_duration_ms histogram",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}
