package engine

import (
	"time"

	"github.com/PatrikSjolin/hollowheart/internal/domain/character"
	"github.com/PatrikSjolin/hollowheart/internal/domain/item"
)

// LootGenerator produces items. *item.Generator satisfies it.
type LootGenerator interface {
	Generate(depth, level int, quality float64) item.Item
	GenerateEquipment(depth, level int, quality float64) item.Item
}

// Persister receives snapshots to store. Implementations must not block
// the caller; failures stay on their side.
type Persister interface {
	Save(snapshot character.Snapshot)
}

// Leaderboard receives new record depths. Fire-and-forget.
type Leaderboard interface {
	Submit(name string, depth int)
}

// Clock is the wall-clock source research timing depends on.
type Clock interface {
	Now() time.Time
}

// SystemClock reads time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

type noPersister struct{}

func (noPersister) Save(character.Snapshot) {}

type noLeaderboard struct{}

func (noLeaderboard) Submit(string, int) {}
