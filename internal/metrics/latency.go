package metrics

import (
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

const (
	minLatency = int64(time.Microsecond)
	maxLatency = int64(time.Minute)
)

type LatencySummary struct {
	Count   int64         `json:"count"`
	Average time.Duration `json:"average"`
	P50     time.Duration `json:"p50"`
	P95     time.Duration `json:"p95"`
	P99     time.Duration `json:"p99"`
	Max     time.Duration `json:"max"`
}

// Recorder collects one latency histogram per operation name.
type Recorder struct {
	mu         sync.Mutex
	histograms map[string]*hdrhistogram.Histogram
}

func NewRecorder() *Recorder {
	return &Recorder{histograms: make(map[string]*hdrhistogram.Histogram)}
}

func (r *Recorder) Observe(name string, d time.Duration) {
	value := int64(d)
	if value < minLatency {
		value = minLatency
	}
	if value > maxLatency {
		value = maxLatency
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.histograms[name]
	if !ok {
		h = hdrhistogram.New(minLatency, maxLatency, 3)
		r.histograms[name] = h
	}
	_ = h.RecordValue(value)
}

func (r *Recorder) Snapshot() map[string]LatencySummary {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]LatencySummary, len(r.histograms))
	for name, h := range r.histograms {
		out[name] = LatencySummary{
			Count:   h.TotalCount(),
			Average: time.Duration(h.Mean()),
			P50:     time.Duration(h.ValueAtQuantile(50)),
			P95:     time.Duration(h.ValueAtQuantile(95)),
			P99:     time.Duration(h.ValueAtQuantile(99)),
			Max:     time.Duration(h.Max()),
		}
	}
	return out
}
