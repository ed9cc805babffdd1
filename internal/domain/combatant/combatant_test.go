package combatant

import (
	"testing"

	"github.com/PatrikSjolin/hollowheart/internal/domain/narration"
	"github.com/PatrikSjolin/hollowheart/internal/platform/random"
)

type dummyTarget struct {
	reduction float64
	health    int
}

func (d *dummyTarget) DamageReduction() float64 { return d.reduction }
func (d *dummyTarget) TakeDamage(amount int)    { d.health -= amount }

type lines struct{ got []string }

func (l *lines) AppendLogLine(msg string, _ narration.Style) { l.got = append(l.got, msg) }

func TestAttackAppliesReduction(t *testing.T) {
	c := &Combatant{Kind: KindWorm, Name: "Worm", Health: 10, Damage: 21}
	target := &dummyTarget{reduction: 0.25, health: 100}
	log := &lines{}

	dealt := c.Attack(target, log)

	if dealt != 15 {
		t.Errorf("dealt = %d, want 15", dealt)
	}
	if target.health != 85 {
		t.Errorf("target health = %d, want 85", target.health)
	}
	if len(log.got) != 1 {
		t.Fatalf("expected one narration line, got %d", len(log.got))
	}
}

func TestAdvanceTimerBatchesHits(t *testing.T) {
	c := &Combatant{AttackInterval: 4000}
	if hits := c.AdvanceTimer(3000); hits != 0 {
		t.Errorf("hits = %d, want 0", hits)
	}
	if hits := c.AdvanceTimer(6000); hits != 2 {
		t.Errorf("hits = %d, want 2", hits)
	}
	if c.AttackTimer != 1000 {
		t.Errorf("remainder = %f, want 1000", c.AttackTimer)
	}
}

func TestSpawnScalesWithDepth(t *testing.T) {
	src := random.NewScripted(0)
	src.PushInts(0, 10, 5)
	c := Spawn(src, 3, 2, 1.5)
	if c.Kind != KindWorm {
		t.Fatalf("kind = %q, want worm", c.Kind)
	}
	// (10 + 60) * 1.5
	if c.Health != 105 {
		t.Errorf("health = %d, want 105", c.Health)
	}
	// (5 + 12) * 1.5 = 25.5
	if c.Damage != 25 {
		t.Errorf("damage = %d, want 25", c.Damage)
	}
	if c.AttackInterval != MinAttackInterval {
		t.Errorf("interval = %f, want %f", c.AttackInterval, MinAttackInterval)
	}
	if c.IsBoss() {
		t.Errorf("regular spawn flagged as boss")
	}
}

func TestSpawnBoss(t *testing.T) {
	src := random.NewScripted(0)
	src.PushInts(0, 0)
	b := SpawnBoss(src, 5, 1)
	if !b.IsBoss() {
		t.Fatalf("boss not flagged")
	}
	if b.Health != 500 || b.Damage != 40 {
		t.Errorf("boss stats = %d/%d, want 500/40", b.Health, b.Damage)
	}
}

func TestRehydrate(t *testing.T) {
	data := []Data{
		{Kind: KindGhoul, Name: "stale name", Health: 30, Damage: 7, AttackInterval: 5000, AttackTimer: 1200},
		{Kind: Kind("dragon"), Health: 10},
		{Kind: KindRat, Health: 0},
		{Kind: KindBoss, Health: 900, Damage: 50},
	}
	got := Rehydrate(data)
	if len(got) != 2 {
		t.Fatalf("rehydrated %d combatants, want 2", len(got))
	}
	if got[0].Name != "Ghoul" || got[0].AttackTimer != 1200 {
		t.Errorf("ghoul not restored: %+v", got[0])
	}
	if !got[1].IsBoss() || got[1].AttackInterval != MaxAttackInterval {
		t.Errorf("boss not restored: %+v", got[1])
	}
}
