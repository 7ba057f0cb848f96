package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
)

var (
	apiCalls     = newCounterVec()
	viewMounts   = newCounterVec()
	exportsTotal = newCounterVec()

	apiCallDuration = newHistogram([]float64{25, 50, 100, 250, 500, 1000, 2500, 5000, 10000, 30000})
)

// ObserveAPICall records one backend call with its outcome ("ok" or "error") and duration.
func ObserveAPICall(op, outcome string, durationMs float64) {
	apiCalls.Inc(op + "|" + outcome)
	if durationMs < 0 {
		durationMs = 0
	}
	apiCallDuration.Observe(durationMs)
}

// IncViewMount counts a fresh view instance.
func IncViewMount(view string) {
	viewMounts.Inc(view)
}

// IncExport counts a finished export flow per format and outcome.
func IncExport(format, outcome string) {
	exportsTotal.Inc(format + "|" + outcome)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounterVec(&buf, "api_calls_total", "Backend API calls by operation and outcome", []string{"op", "outcome"}, apiCalls.Snapshot())
	writeHistogram(&buf, "api_call_duration_ms", "Backend API call duration in milliseconds", apiCallDuration.Snapshot())
	writeCounterVec(&buf, "view_mounts_total", "View instances mounted", []string{"view"}, viewMounts.Snapshot())
	writeCounterVec(&buf, "exports_total", "Export flows by format and outcome", []string{"format", "outcome"}, exportsTotal.Snapshot())
	return buf.String()
}

type counterVec struct {
	mu     sync.Mutex
	values map[string]uint64
}

func newCounterVec() *counterVec {
	return &counterVec{values: make(map[string]uint64)}
}

func (c *counterVec) Inc(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key]++
}

func (c *counterVec) Snapshot() map[string]uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]uint64, len(c.values))
	for k, v := range c.values {
		out[k] = v
	}
	return out
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

// Observe adds value to the first bucket that holds it; cumulation happens at render time.
func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			return
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounterVec(buf *bytes.Buffer, name, help string, labels []string, values map[string]uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(buf, "%s{%s} %d\n", name, formatLabels(labels, key), values[key])
	}
}

func formatLabels(labels []string, key string) string {
	parts := splitKey(key, len(labels))
	var buf bytes.Buffer
	for i, label := range labels {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(&buf, "%s=%q", label, parts[i])
	}
	return buf.String()
}

func splitKey(key string, n int) []string {
	out := make([]string, n)
	idx := 0
	start := 0
	for i := 0; i < len(key) && idx < n-1; i++ {
		if key[i] == '|' {
			out[idx] = key[start:i]
			idx++
			start = i + 1
		}
	}
	out[idx] = key[start:]
	return out
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
