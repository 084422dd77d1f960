package quality

import (
	"sync"
	"sync/atomic"

	"github.com/aokiyuki/cocoro/backend/internal/analysis/emotion"
)

// Report is a point-in-time snapshot of the process-wide quality
// counters.
type Report struct {
	TotalTurns            int64                   `json:"totalTurns"`
	CrisisDetections      int64                   `json:"crisisDetections"`
	CrisisRate            float64                 `json:"crisisRate"`
	AverageResponseLength float64                 `json:"averageResponseLength"`
	EmotionDistribution   map[emotion.Label]int64 `json:"emotionDistribution"`
}

// Monitor aggregates statistics over every processed turn. Counters are
// plain atomics and the histogram has one fixed bucket per label, so
// recording from many goroutines never funnels through a single hot lock;
// only the incremental mean takes a short mutex.
type Monitor struct {
	totalTurns       atomic.Int64
	crisisDetections atomic.Int64
	histogram        map[emotion.Label]*atomic.Int64

	avgMu    sync.Mutex
	avgCount int64
	avgLen   float64
}

// NewMonitor allocates a monitor with a bucket for every emotion label.
func NewMonitor() *Monitor {
	histogram := make(map[emotion.Label]*atomic.Int64, len(emotion.Labels()))
	for _, label := range emotion.Labels() {
		histogram[label] = new(atomic.Int64)
	}
	return &Monitor{histogram: histogram}
}

// Record logs one processed turn: the classified emotion, the rendered
// response length in runes and whether the crisis path fired.
func (m *Monitor) Record(label emotion.Label, responseLen int, crisisDetected bool) {
	m.totalTurns.Add(1)
	if crisisDetected {
		m.crisisDetections.Add(1)
	}

	bucket, ok := m.histogram[label]
	if !ok {
		bucket = m.histogram[emotion.Unknown]
	}
	bucket.Add(1)

	m.avgMu.Lock()
	m.avgCount++
	m.avgLen += (float64(responseLen) - m.avgLen) / float64(m.avgCount)
	m.avgMu.Unlock()
}

// Snapshot returns a consistent report. The crisis rate divides by
// max(totalTurns, 1) so an empty monitor reports zero instead of NaN.
func (m *Monitor) Snapshot() Report {
	m.avgMu.Lock()
	avg := m.avgLen
	m.avgMu.Unlock()

	total := m.totalTurns.Load()
	detections := m.crisisDetections.Load()

	divisor := total
	if divisor < 1 {
		divisor = 1
	}

	distribution := make(map[emotion.Label]int64, len(m.histogram))
	for label, bucket := range m.histogram {
		distribution[label] = bucket.Load()
	}

	return Report{
		TotalTurns:            total,
		CrisisDetections:      detections,
		CrisisRate:            float64(detections) / float64(divisor),
		AverageResponseLength: avg,
		EmotionDistribution:   distribution,
	}
}
