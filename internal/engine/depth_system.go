package engine

import (
	"fmt"

	"github.com/PatrikSjolin/hollowheart/internal/domain/character"
	"github.com/PatrikSjolin/hollowheart/internal/domain/combatant"
	"github.com/PatrikSjolin/hollowheart/internal/domain/depth"
	"github.com/PatrikSjolin/hollowheart/internal/domain/narration"
	"github.com/PatrikSjolin/hollowheart/internal/platform/logger"
	"github.com/PatrikSjolin/hollowheart/internal/platform/random"
)

// DepthSystem owns the per-depth configuration cache and boss spawning.
type DepthSystem struct {
	rng    random.Source
	logger *logger.Logger
}

// NewDepthSystem creates the depth configuration manager.
func NewDepthSystem(rng random.Source, log *logger.Logger) *DepthSystem {
	return &DepthSystem{rng: rng, logger: log}
}

// ConfigFor returns the cached configuration for d, generating and caching
// it on the first visit.
func (ds *DepthSystem) ConfigFor(c *character.Character, d int) depth.Config {
	if cfg, ok := c.Config(d); ok {
		return cfg
	}
	cfg := depth.Generate(d, depth.Params{
		NextBossDepth:    c.NextBossDepth,
		LastSpecialDepth: c.LastSpecialDepth,
	}, ds.rng)
	c.CacheConfig(cfg)
	ds.logger.Event("DEPTH_GENERATED", c.Name,
		fmt.Sprintf("depth %d boss=%v special=%v poison=%v", d, cfg.Boss, cfg.SpecialEvent, cfg.Poisonous))
	return cfg
}

// ensureBoss spawns the guardian when the character stands on the boss
// depth and none is alive.
func (ds *DepthSystem) ensureBoss(c *character.Character, cfg depth.Config) {
	if c.Depth != c.NextBossDepth || c.Boss() != nil {
		return
	}
	boss := combatant.SpawnBoss(ds.rng, c.Depth, cfg.MonsterStrength)
	c.Monsters = append(c.Monsters, boss)
	c.Log(narration.StyleWarning, "The %s awaits you with %d HP!", boss.Name, boss.Health)
}

// Descend moves from the surface to the last visited depth, or one depth
// deeper while exploring once the dwell time has been survived.
func (e *Engine) Descend() bool {
	c := e.char
	if !c.Exploring {
		if !c.Alive() {
			c.Log(narration.StyleWarning, "You can't descend while being dead. Rest until your health returns.")
			return false
		}
		target := max(c.LastDepthVisited, 1)
		c.Exploring = true
		e.enterDepth(target)
		return true
	}

	if c.Depth == c.NextBossDepth {
		name := "guardian"
		if b := c.Boss(); b != nil {
			name = b.Name
		}
		c.Log(narration.StyleWarning, "The %s blocks the way down. Defeat it first.", name)
		return false
	}
	if c.TimeSurvived <= e.cfg.DwellTime {
		c.Log(narration.StyleWarning, "Not ready to descend. Survive a little longer at this depth.")
		return false
	}
	c.TimeSurvived = 0
	e.enterDepth(c.Depth + 1)
	return true
}

func (e *Engine) enterDepth(d int) {
	c := e.char
	c.Depth = d
	c.ClearMonsters()
	e.special.Cancel(c)

	cfg := e.depths.ConfigFor(c, d)
	c.Log(narration.StylePlain, "You descend to depth %d.", d)
	if d > c.RecordDepth {
		c.RecordDepth = d
		c.Log(narration.StyleAchievement, "New record depth: %d!", d)
		e.board.Submit(c.Name, d)
	}
	e.depths.ensureBoss(c, cfg)
}

// Ascend returns to the surface, remembering the depth left.
func (e *Engine) Ascend() bool {
	c := e.char
	if !c.Exploring {
		c.Log(narration.StyleWarning, "You are already at the surface.")
		return false
	}
	c.LastDepthVisited = c.Depth
	c.Depth = 0
	c.Exploring = false
	c.ClearMonsters()
	e.special.Cancel(c)
	c.Log(narration.StylePlain, "You ascend back to the surface.")
	return true
}

// ClimbUp spends a rope to move up one depth.
func (e *Engine) ClimbUp() bool {
	c := e.char
	if c.Depth <= 0 {
		c.Log(narration.StyleWarning, "There is nothing above you to climb.")
		return false
	}
	if !c.ConsumeRope() {
		c.Log(narration.StyleWarning, "You need a rope to climb up.")
		return false
	}
	c.ClearMonsters()
	e.special.Cancel(c)
	c.Depth--

	if c.Depth == 0 {
		c.Exploring = false
		c.LastDepthVisited = 1
		c.Log(narration.StylePlain, "You used a rope to climb back to the surface.")
		return true
	}
	cfg := e.depths.ConfigFor(c, c.Depth)
	e.depths.ensureBoss(c, cfg)
	c.Log(narration.StylePlain, "You used a rope to climb up to depth %d.", c.Depth)
	return true
}
