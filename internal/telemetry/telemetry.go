// Package telemetry is the explicitly constructed telemetry context shared
// by the invoker and the flows: a structured logger, atomic counters and
// latency histograms. Built once at process start, flushed on shutdown.
package telemetry

import (
	"log/slog"
	"os"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
)

var latencyBoundsMs = []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000}

type Telemetry struct {
	logger *slog.Logger

	counters sync.Map // series key -> *atomic.Int64

	mu         sync.Mutex
	histograms map[string]*histogram
}

type histogram struct {
	counts []int64
	sum    float64
	total  int64
}

func New(service string) *Telemetry {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil)).With("service", service)
	return &Telemetry{
		logger:     logger,
		histograms: make(map[string]*histogram),
	}
}

func (t *Telemetry) Logger() *slog.Logger {
	return t.logger
}

// Count increments a counter series. Tags are "key=value" pairs; they are
// sorted into a stable series key so concurrent callers share one cell.
func (t *Telemetry) Count(name string, delta int64, tags ...string) {
	key := seriesKey(name, tags)
	v, ok := t.counters.Load(key)
	if !ok {
		v, _ = t.counters.LoadOrStore(key, new(atomic.Int64))
	}
	v.(*atomic.Int64).Add(delta)
}

// Observe records one latency sample in milliseconds.
func (t *Telemetry) Observe(name string, valueMs float64, tags ...string) {
	key := seriesKey(name, tags)

	t.mu.Lock()
	defer t.mu.Unlock()

	h, ok := t.histograms[key]
	if !ok {
		h = &histogram{counts: make([]int64, len(latencyBoundsMs)+1)}
		t.histograms[key] = h
	}
	idx := len(latencyBoundsMs)
	for i, bound := range latencyBoundsMs {
		if valueMs <= bound {
			idx = i
			break
		}
	}
	h.counts[idx]++
	h.sum += valueMs
	h.total++
}

type HistogramSnapshot struct {
	BoundsMs []float64 `json:"boundsMs"`
	Counts   []int64   `json:"counts"`
	SumMs    float64   `json:"sumMs"`
	Count    int64     `json:"count"`
}

type Snapshot struct {
	Counters   map[string]int64             `json:"counters"`
	Histograms map[string]HistogramSnapshot `json:"histograms"`
}

func (t *Telemetry) Snapshot() Snapshot {
	snap := Snapshot{
		Counters:   make(map[string]int64),
		Histograms: make(map[string]HistogramSnapshot),
	}

	t.counters.Range(func(k, v any) bool {
		snap.Counters[k.(string)] = v.(*atomic.Int64).Load()
		return true
	})

	t.mu.Lock()
	defer t.mu.Unlock()
	for key, h := range t.histograms {
		counts := make([]int64, len(h.counts))
		copy(counts, h.counts)
		snap.Histograms[key] = HistogramSnapshot{
			BoundsMs: latencyBoundsMs,
			Counts:   counts,
			SumMs:    h.sum,
			Count:    h.total,
		}
	}
	return snap
}

// Flush logs the final aggregate state. Called once on shutdown.
func (t *Telemetry) Flush() {
	snap := t.Snapshot()
	t.logger.Info("[Telemetry:Flush] - Final telemetry state",
		"counter_series", len(snap.Counters),
		"histogram_series", len(snap.Histograms))
}

func seriesKey(name string, tags []string) string {
	if len(tags) == 0 {
		return name
	}
	sorted := make([]string, len(tags))
	copy(sorted, tags)
	sort.Strings(sorted)
	return name + "{" + strings.Join(sorted, ",") + "}"
}
