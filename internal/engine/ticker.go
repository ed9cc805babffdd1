package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/PatrikSjolin/hollowheart/internal/platform/logger"
	"github.com/PatrikSjolin/hollowheart/internal/platform/metrics"
)

// DefaultTickRate is how often the driver advances the simulation.
const DefaultTickRate = 100 * time.Millisecond

// Ticker drives a Session in real time. It measures wall-clock time between
// ticks and hands it to the simulation as elapsed milliseconds.
type Ticker struct {
	session  *Session
	logger   *logger.Logger
	metrics  *metrics.Collector
	rate     time.Duration
	autosave time.Duration
	now      func() time.Time

	tickNumber int64
	last       time.Time
	sinceSave  time.Duration
	deaths     int
	stopChan   chan struct{}
}

// NewTicker creates the real-time driver. A zero autosave disables
// periodic saves.
func NewTicker(s *Session, rate, autosave time.Duration, m *metrics.Collector, log *logger.Logger) *Ticker {
	if rate <= 0 {
		rate = DefaultTickRate
	}
	return &Ticker{
		session:  s,
		logger:   log,
		metrics:  m,
		rate:     rate,
		autosave: autosave,
		now:      time.Now,
		stopChan: make(chan struct{}),
	}
}

// Start begins the game loop. Call in a goroutine.
func (t *Ticker) Start(ctx context.Context) {
	t.logger.Info(fmt.Sprintf("Engine ticker started at %s per tick.", t.rate))
	t.last = t.now()
	t.deaths = t.session.Status().Deaths

	ticker := time.NewTicker(t.rate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			t.session.Save()
			t.logger.Info("Engine ticker stopped by context.")
			return
		case <-t.stopChan:
			t.session.Save()
			t.logger.Info("Engine ticker stopped manually.")
			return
		case <-ticker.C:
			t.tick()
		}
	}
}

// Stop gracefully stops the ticker.
func (t *Ticker) Stop() {
	close(t.stopChan)
}

// tick processes a single step using wall-clock elapsed time.
func (t *Ticker) tick() {
	now := t.now()
	elapsed := now.Sub(t.last)
	t.last = now
	t.step(elapsed)
}

func (t *Ticker) step(elapsed time.Duration) {
	t.tickNumber++
	ms := float64(elapsed) / float64(time.Millisecond)

	start := time.Now()
	st := t.session.Tick(ms)
	t.metrics.RecordTick(time.Since(start), ms)
	t.metrics.RecordDepth(st.Depth, st.RecordDepth)
	for ; t.deaths < st.Deaths; t.deaths++ {
		t.metrics.RecordDeath()
	}

	if t.autosave <= 0 {
		return
	}
	t.sinceSave += elapsed
	if t.sinceSave >= t.autosave {
		t.sinceSave = 0
		t.session.Save()
	}
}

// TickNumber returns how many ticks have run.
func (t *Ticker) TickNumber() int64 {
	return t.tickNumber
}
