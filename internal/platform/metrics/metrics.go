// Package metrics provides observability for the simulation server.
package metrics

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// Collector gathers runtime counters.
type Collector struct {
	// Tick metrics
	TickCount      int64
	TickLatencySum int64 // nanoseconds
	TickLatencyMax int64
	SimulatedMs    int64
	LastTickTime   time.Time

	// Persistence metrics
	SavesWritten int64
	SaveLatSum   int64
	SaveLatMax   int64
	SaveErrors   int64
	SavesDropped int64
	LinesWritten int64
	LineErrors   int64

	// Simulation
	Deaths       int64
	CurrentDepth int64
	MaxDepth     int64

	// WebSocket metrics
	WSConnectionsActive int64
	WSMessagesIn        int64
	WSMessagesOut       int64
	WSErrors            int64

	// System
	StartTime time.Time
	mu        sync.RWMutex
}

// Global collector instance
var collector = New()

// New creates an empty collector.
func New() *Collector {
	return &Collector{StartTime: time.Now()}
}

// Get returns the global collector.
func Get() *Collector {
	return collector
}

func storeMax(dst *int64, v int64) {
	for {
		cur := atomic.LoadInt64(dst)
		if v <= cur || atomic.CompareAndSwapInt64(dst, cur, v) {
			return
		}
	}
}

// RecordTick records one simulation step of simulated ms taking latency.
func (c *Collector) RecordTick(latency time.Duration, simulated float64) {
	atomic.AddInt64(&c.TickCount, 1)
	atomic.AddInt64(&c.TickLatencySum, int64(latency))
	atomic.AddInt64(&c.SimulatedMs, int64(simulated))
	storeMax(&c.TickLatencyMax, int64(latency))

	c.mu.Lock()
	c.LastTickTime = time.Now()
	c.mu.Unlock()
}

// RecordSave records a snapshot write.
func (c *Collector) RecordSave(latency time.Duration, err error) {
	atomic.AddInt64(&c.SavesWritten, 1)
	atomic.AddInt64(&c.SaveLatSum, int64(latency))
	storeMax(&c.SaveLatMax, int64(latency))
	if err != nil {
		atomic.AddInt64(&c.SaveErrors, 1)
	}
}

// RecordSaveDropped records a snapshot superseded before it was written.
func (c *Collector) RecordSaveDropped() {
	atomic.AddInt64(&c.SavesDropped, 1)
}

// RecordLine records a narration line persisted.
func (c *Collector) RecordLine(err error) {
	atomic.AddInt64(&c.LinesWritten, 1)
	if err != nil {
		atomic.AddInt64(&c.LineErrors, 1)
	}
}

// RecordDepth updates the depth gauges.
func (c *Collector) RecordDepth(current, record int) {
	atomic.StoreInt64(&c.CurrentDepth, int64(current))
	storeMax(&c.MaxDepth, int64(record))
}

// RecordDeath counts a character death.
func (c *Collector) RecordDeath() {
	atomic.AddInt64(&c.Deaths, 1)
}

// RecordWSConnection records WebSocket connection changes.
func (c *Collector) RecordWSConnection(delta int64) {
	atomic.AddInt64(&c.WSConnectionsActive, delta)
}

// RecordWSMessage records WebSocket messages.
func (c *Collector) RecordWSMessage(incoming bool) {
	if incoming {
		atomic.AddInt64(&c.WSMessagesIn, 1)
	} else {
		atomic.AddInt64(&c.WSMessagesOut, 1)
	}
}

// RecordWSError records a WebSocket error.
func (c *Collector) RecordWSError() {
	atomic.AddInt64(&c.WSErrors, 1)
}

// Snapshot returns current metrics as a map.
func (c *Collector) Snapshot() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	tickCount := atomic.LoadInt64(&c.TickCount)
	saves := atomic.LoadInt64(&c.SavesWritten)

	var tickAvg, saveAvg float64
	if tickCount > 0 {
		tickAvg = float64(atomic.LoadInt64(&c.TickLatencySum)) / float64(tickCount) / 1e6 // ms
	}
	if saves > 0 {
		saveAvg = float64(atomic.LoadInt64(&c.SaveLatSum)) / float64(saves) / 1e6
	}

	return map[string]interface{}{
		"uptime_seconds": time.Since(c.StartTime).Seconds(),

		"tick": map[string]interface{}{
			"count":          tickCount,
			"simulated_ms":   atomic.LoadInt64(&c.SimulatedMs),
			"avg_latency_ms": tickAvg,
			"max_latency_ms": float64(atomic.LoadInt64(&c.TickLatencyMax)) / 1e6,
			"last_tick":      c.LastTickTime.Format(time.RFC3339),
		},

		"persistence": map[string]interface{}{
			"saves":           saves,
			"avg_save_lat_ms": saveAvg,
			"max_save_lat_ms": float64(atomic.LoadInt64(&c.SaveLatMax)) / 1e6,
			"save_errors":     atomic.LoadInt64(&c.SaveErrors),
			"saves_dropped":   atomic.LoadInt64(&c.SavesDropped),
			"lines":           atomic.LoadInt64(&c.LinesWritten),
			"line_errors":     atomic.LoadInt64(&c.LineErrors),
		},

		"simulation": map[string]interface{}{
			"deaths":        atomic.LoadInt64(&c.Deaths),
			"current_depth": atomic.LoadInt64(&c.CurrentDepth),
			"record_depth":  atomic.LoadInt64(&c.MaxDepth),
		},

		"websocket": map[string]interface{}{
			"active_connections": atomic.LoadInt64(&c.WSConnectionsActive),
			"messages_in":        atomic.LoadInt64(&c.WSMessagesIn),
			"messages_out":       atomic.LoadInt64(&c.WSMessagesOut),
			"errors":             atomic.LoadInt64(&c.WSErrors),
		},
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func (c *Collector) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-cache")
		json.NewEncoder(w).Encode(c.Snapshot())
	}
}

// PrometheusHandler returns metrics in Prometheus text format.
func (c *Collector) PrometheusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")

		// Tick metrics
		fmt.Fprintf(w, "# HELP hollowheart_tick_count Total tick cycles\n")
		fmt.Fprintf(w, "# TYPE hollowheart_tick_count counter\n")
		fmt.Fprintf(w, "hollowheart_tick_count %d\n\n", atomic.LoadInt64(&c.TickCount))

		fmt.Fprintf(w, "# HELP hollowheart_simulated_ms_total Simulated milliseconds\n")
		fmt.Fprintf(w, "# TYPE hollowheart_simulated_ms_total counter\n")
		fmt.Fprintf(w, "hollowheart_simulated_ms_total %d\n\n", atomic.LoadInt64(&c.SimulatedMs))

		fmt.Fprintf(w, "# HELP hollowheart_tick_latency_max_ms Maximum tick latency\n")
		fmt.Fprintf(w, "# TYPE hollowheart_tick_latency_max_ms gauge\n")
		fmt.Fprintf(w, "hollowheart_tick_latency_max_ms %.2f\n\n", float64(atomic.LoadInt64(&c.TickLatencyMax))/1e6)

		// Persistence metrics
		fmt.Fprintf(w, "# HELP hollowheart_saves_total Snapshots written\n")
		fmt.Fprintf(w, "# TYPE hollowheart_saves_total counter\n")
		fmt.Fprintf(w, "hollowheart_saves_total %d\n\n", atomic.LoadInt64(&c.SavesWritten))

		fmt.Fprintf(w, "# HELP hollowheart_save_errors_total Snapshot write errors\n")
		fmt.Fprintf(w, "# TYPE hollowheart_save_errors_total counter\n")
		fmt.Fprintf(w, "hollowheart_save_errors_total %d\n\n", atomic.LoadInt64(&c.SaveErrors))

		fmt.Fprintf(w, "# HELP hollowheart_log_lines_total Narration lines persisted\n")
		fmt.Fprintf(w, "# TYPE hollowheart_log_lines_total counter\n")
		fmt.Fprintf(w, "hollowheart_log_lines_total %d\n\n", atomic.LoadInt64(&c.LinesWritten))

		// Simulation
		fmt.Fprintf(w, "# HELP hollowheart_deaths_total Character deaths\n")
		fmt.Fprintf(w, "# TYPE hollowheart_deaths_total counter\n")
		fmt.Fprintf(w, "hollowheart_deaths_total %d\n\n", atomic.LoadInt64(&c.Deaths))

		fmt.Fprintf(w, "# HELP hollowheart_depth Current and record depth\n")
		fmt.Fprintf(w, "# TYPE hollowheart_depth gauge\n")
		fmt.Fprintf(w, "hollowheart_depth{kind=\"current\"} %d\n", atomic.LoadInt64(&c.CurrentDepth))
		fmt.Fprintf(w, "hollowheart_depth{kind=\"record\"} %d\n\n", atomic.LoadInt64(&c.MaxDepth))

		// WebSocket metrics
		fmt.Fprintf(w, "# HELP hollowheart_ws_connections Active WebSocket connections\n")
		fmt.Fprintf(w, "# TYPE hollowheart_ws_connections gauge\n")
		fmt.Fprintf(w, "hollowheart_ws_connections %d\n\n", atomic.LoadInt64(&c.WSConnectionsActive))

		fmt.Fprintf(w, "# HELP hollowheart_ws_messages_total Total WebSocket messages\n")
		fmt.Fprintf(w, "# TYPE hollowheart_ws_messages_total counter\n")
		fmt.Fprintf(w, "hollowheart_ws_messages_total{direction=\"in\"} %d\n", atomic.LoadInt64(&c.WSMessagesIn))
		fmt.Fprintf(w, "hollowheart_ws_messages_total{direction=\"out\"} %d\n", atomic.LoadInt64(&c.WSMessagesOut))
	}
}
