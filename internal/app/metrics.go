package app

import (
	"sync/atomic"
	"time"
)

// Metrics counts what the editor did during a session. All methods are safe
// for concurrent use.
type Metrics struct {
	// Frame timing
	frameCount   atomic.Uint64
	frameTotalNs atomic.Int64
	frameMaxNs   atomic.Int64

	// Input handling
	inputCount   atomic.Uint64
	inputTotalNs atomic.Int64

	// Editing
	strokes atomic.Uint64
	exports atomic.Uint64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// RecordFrame records how long a drawn frame took.
func (m *Metrics) RecordFrame(duration time.Duration) {
	ns := duration.Nanoseconds()
	m.frameCount.Add(1)
	m.frameTotalNs.Add(ns)

	for {
		old := m.frameMaxNs.Load()
		if ns <= old || m.frameMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordInput records input processing timing.
func (m *Metrics) RecordInput(duration time.Duration) {
	m.inputCount.Add(1)
	m.inputTotalNs.Add(duration.Nanoseconds())
}

// RecordStroke records a committed pencil or eraser stroke.
func (m *Metrics) RecordStroke() {
	m.strokes.Add(1)
}

// RecordExport records a successful image export.
func (m *Metrics) RecordExport() {
	m.exports.Add(1)
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	s := MetricsSnapshot{
		Uptime:     time.Since(m.startTime),
		FrameCount: m.frameCount.Load(),
		MaxFrame:   time.Duration(m.frameMaxNs.Load()),
		InputCount: m.inputCount.Load(),
		Strokes:    m.strokes.Load(),
		Exports:    m.exports.Load(),
	}
	if s.FrameCount > 0 {
		s.AvgFrame = time.Duration(m.frameTotalNs.Load() / int64(s.FrameCount))
	}
	if s.InputCount > 0 {
		s.AvgInput = time.Duration(m.inputTotalNs.Load() / int64(s.InputCount))
	}
	return s
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime     time.Duration
	FrameCount uint64
	AvgFrame   time.Duration
	MaxFrame   time.Duration
	InputCount uint64
	AvgInput   time.Duration
	Strokes    uint64
	Exports    uint64
}

// AvgFPS returns the frame rate the average frame time allows.
func (s MetricsSnapshot) AvgFPS() float64 {
	if s.AvgFrame == 0 {
		return 0
	}
	return float64(time.Second) / float64(s.AvgFrame)
}

// Metrics returns the application's metrics.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}
