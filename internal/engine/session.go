package engine

import (
	"sync"

	"github.com/PatrikSjolin/hollowheart/internal/domain/building"
	"github.com/PatrikSjolin/hollowheart/internal/domain/character"
	"github.com/PatrikSjolin/hollowheart/internal/domain/item"
	"github.com/PatrikSjolin/hollowheart/internal/domain/resource"
)

// Session serializes access to an Engine. A tick runs to completion before
// the next command or tick starts.
type Session struct {
	mu  sync.Mutex
	eng *Engine
}

// NewSession wraps eng.
func NewSession(eng *Engine) *Session {
	return &Session{eng: eng}
}

// Status is a small read-only view used by drivers.
type Status struct {
	Depth       int  `json:"depth"`
	RecordDepth int  `json:"record_depth"`
	Deaths      int  `json:"deaths"`
	Level       int  `json:"level"`
	Health      int  `json:"health"`
	MaxHealth   int  `json:"max_health"`
	Exploring   bool `json:"exploring"`
}

func (s *Session) do(fn func(e *Engine) bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.eng)
}

// Tick advances the simulation by elapsed ms and returns the status after it.
func (s *Session) Tick(elapsed float64) Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.eng.Update(elapsed)
	return s.status()
}

// Status returns the current status.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status()
}

func (s *Session) status() Status {
	c := s.eng.char
	return Status{
		Depth:       c.Depth,
		RecordDepth: c.RecordDepth,
		Deaths:      c.Deaths,
		Level:       c.Level,
		Health:      c.CurrentHealth,
		MaxHealth:   c.MaxHealth(),
		Exploring:   c.Exploring,
	}
}

// Snapshot returns a deep copy of the character state.
func (s *Session) Snapshot() character.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eng.char.Snapshot()
}

// Save persists the current state.
func (s *Session) Save() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.eng.Save()
}

func (s *Session) Descend() bool { return s.do((*Engine).Descend) }
func (s *Session) Ascend() bool  { return s.do((*Engine).Ascend) }
func (s *Session) ClimbUp() bool { return s.do((*Engine).ClimbUp) }

func (s *Session) UpgradeStat(a character.Attribute) bool {
	return s.do(func(e *Engine) bool { return e.UpgradeStat(a) })
}

func (s *Session) EquipItem(slot item.Slot, id string) bool {
	return s.do(func(e *Engine) bool { return e.EquipItem(slot, id) })
}

func (s *Session) UnequipItem(slot item.Slot) bool {
	return s.do(func(e *Engine) bool { return e.UnequipItem(slot) })
}

func (s *Session) UseItem(id string) bool {
	return s.do(func(e *Engine) bool { return e.UseItem(id) })
}

func (s *Session) StartResearch(name string) bool {
	return s.do(func(e *Engine) bool { return e.StartResearch(name) })
}

func (s *Session) BuyBuilding(k building.Kind) bool {
	return s.do(func(e *Engine) bool { return e.BuyBuilding(k) })
}

func (s *Session) ConvertResource(k resource.Kind, amount int) bool {
	return s.do(func(e *Engine) bool { return e.ConvertResource(k, amount) })
}
