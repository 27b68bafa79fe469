package profiling

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Lightweight per-frame CPU profiler for tick-level insights.

// Profiler accumulates named durations for the current frame. The zero
// value is ready to use and safe for concurrent Track calls.
type Profiler struct {
	mu          sync.Mutex
	frameTotals map[string]time.Duration
}

// Default backs the package-level helpers.
var Default = &Profiler{}

// Track returns a stop function that records the elapsed time under the given name.
// Usage: defer p.Track("subsystem.Operation")()
func (p *Profiler) Track(name string) func() {
	start := time.Now()
	return func() {
		p.Add(name, time.Since(start))
	}
}

// Add records d under name.
func (p *Profiler) Add(name string, d time.Duration) {
	p.mu.Lock()
	if p.frameTotals == nil {
		p.frameTotals = make(map[string]time.Duration)
	}
	p.frameTotals[name] += d
	p.mu.Unlock()
}

// ResetFrame clears current per-frame totals. Call at the start of each frame.
func (p *Profiler) ResetFrame() {
	p.mu.Lock()
	clear(p.frameTotals)
	p.mu.Unlock()
}

// Snapshot returns a copy of current per-frame totals.
func (p *Profiler) Snapshot() map[string]time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make(map[string]time.Duration, len(p.frameTotals))
	for k, v := range p.frameTotals {
		out[k] = v
	}
	return out
}

// Total returns the sum of every recorded duration.
func (p *Profiler) Total() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	var sum time.Duration
	for _, v := range p.frameTotals {
		sum += v
	}
	return sum
}

// TopN formats top N durations from the current frame totals.
// Example: "render.Frame:4.2ms, meshing.Mesh:2.1ms"
func (p *Profiler) TopN(n int) string {
	ss := p.Snapshot()
	type pair struct {
		name string
		dur  time.Duration
	}
	list := make([]pair, 0, len(ss))
	for k, v := range ss {
		list = append(list, pair{name: k, dur: v})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].dur != list[j].dur {
			return list[i].dur > list[j].dur
		}
		return list[i].name < list[j].name
	})
	n = min(n, len(list))
	parts := make([]string, 0, n)
	for i := 0; i < n; i++ {
		ms := float64(list[i].dur.Microseconds()) / 1000.0
		parts = append(parts, list[i].name+":"+formatMs(ms))
	}
	return strings.Join(parts, ", ")
}

// formatMs keeps one decimal and drops a trailing ".0".
func formatMs(ms float64) string {
	return strings.TrimSuffix(strconv.FormatFloat(ms, 'f', 1, 64), ".0") + "ms"
}

// Track records into Default.
func Track(name string) func() { return Default.Track(name) }

// ResetFrame clears Default.
func ResetFrame() { Default.ResetFrame() }

// Snapshot copies Default's totals.
func Snapshot() map[string]time.Duration { return Default.Snapshot() }

// TopN formats Default's largest entries.
func TopN(n int) string { return Default.TopN(n) }
