// Package profiler reports frame rate and memory statistics of the render loop.
package profiler

import (
	"fmt"
	"log"
	"runtime"
	"time"
)

// Stats is one reporting window of the profiler.
type Stats struct {
	// FPS is the average frame rate over the window.
	FPS float64
	// HeapMB is the live heap at the end of the window.
	HeapMB float64
	// AllocRateMB is the heap allocation rate in MB per second.
	AllocRateMB float64
	// GCCount is the total number of completed GC cycles.
	GCCount uint32
	// LastPause and MaxPause are the most recent and the longest GC pause of the window.
	LastPause time.Duration
	MaxPause  time.Duration
	// SysMB is the memory obtained from the OS.
	SysMB float64
}

// String formats s as a single log line.
func (s Stats) String() string {
	return fmt.Sprintf("FPS: %.2f | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, max: %d µs) | Sys: %.2f MB",
		s.FPS, s.HeapMB, s.AllocRateMB, s.GCCount, s.LastPause.Microseconds(), s.MaxPause.Microseconds(), s.SysMB)
}

// Profiler counts frames and samples runtime memory statistics once per interval.
// It is not safe for concurrent use; the render loop owns it.
type Profiler struct {
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	now            func() time.Time
	last           Stats
}

// ProfilerOption is a functional option for configuring a Profiler.
type ProfilerOption func(*Profiler)

// WithInterval sets how often statistics are reported. Values <= 0 are ignored.
//
// Parameters:
//   - interval: the reporting interval
//
// Returns:
//   - ProfilerOption: option function to apply
func WithInterval(interval time.Duration) ProfilerOption {
	return func(p *Profiler) {
		if interval > 0 {
			p.updateInterval = interval
		}
	}
}

// withClock replaces time.Now.
func withClock(now func() time.Time) ProfilerOption {
	return func(p *Profiler) {
		p.now = now
	}
}

// NewProfiler creates a new Profiler reporting once per second by default.
//
// Parameters:
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerOption) *Profiler {
	p := &Profiler{
		updateInterval: time.Second,
		now:            time.Now,
	}
	for _, option := range options {
		option(p)
	}
	p.lastTime = p.now()
	return p
}

// Tick counts one frame. When the interval has elapsed it samples the runtime, logs the
// statistics and starts a new window.
//
// Returns:
//   - bool: true if stats were logged this tick
func (p *Profiler) Tick() bool {
	p.frameCount++
	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	runtime.ReadMemStats(&p.memStats)
	p.last = p.sample(elapsed)
	log.Printf("[Profiler] %s", p.last)

	p.frameCount = 0
	p.lastTime = currentTime
	p.lastGCCount = p.memStats.NumGC
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}

// Last returns the statistics of the most recent completed window.
//
// Returns:
//   - Stats: the last report, or the zero value before the first one
func (p *Profiler) Last() Stats {
	return p.last
}

// sample derives Stats from the current memStats over a window of length elapsed.
func (p *Profiler) sample(elapsed time.Duration) Stats {
	const mb = 1024 * 1024
	seconds := elapsed.Seconds()

	s := Stats{
		FPS:         float64(p.frameCount) / seconds,
		HeapMB:      float64(p.memStats.Alloc) / mb,
		AllocRateMB: float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / mb / seconds,
		GCCount:     p.memStats.NumGC,
		SysMB:       float64(p.memStats.Sys) / mb,
	}

	gcCount := p.memStats.NumGC
	if gcCount == 0 {
		return s
	}
	// PauseNs is a circular buffer of the last 256 pauses.
	s.LastPause = time.Duration(p.memStats.PauseNs[(gcCount-1)%256])
	start := p.lastGCCount
	if gcCount-start > 256 {
		start = gcCount - 256
	}
	for i := start; i < gcCount; i++ {
		s.MaxPause = max(s.MaxPause, time.Duration(p.memStats.PauseNs[i%256]))
	}
	return s
}
