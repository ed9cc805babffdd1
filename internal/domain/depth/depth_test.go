package depth

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/PatrikSjolin/hollowheart/internal/domain/resource"
	"github.com/PatrikSjolin/hollowheart/internal/platform/random"
)

func TestBossFlagMatchesNextBossDepth(t *testing.T) {
	for d := 1; d <= 12; d++ {
		cfg := Generate(d, Params{NextBossDepth: 5}, random.New(int64(d)))
		if cfg.Boss != (d == 5) {
			t.Errorf("depth %d: boss = %v", d, cfg.Boss)
		}
		if cfg.Boss && cfg.SpecialEvent {
			t.Errorf("depth %d: boss depth must not carry a special event", d)
		}
	}
}

func TestSpecialEventRateLimited(t *testing.T) {
	// Every chance draw succeeds.
	src := random.NewScripted()
	src.FloatFallback = 0

	cfg := Generate(8, Params{NextBossDepth: 50, LastSpecialDepth: 4}, src)
	if cfg.SpecialEvent {
		t.Errorf("special event within window of depth 4")
	}
	cfg = Generate(10, Params{NextBossDepth: 50, LastSpecialDepth: 4}, src)
	if !cfg.SpecialEvent {
		t.Errorf("expected special event outside window")
	}
	cfg = Generate(2, Params{NextBossDepth: 50}, src)
	if cfg.SpecialEvent {
		t.Errorf("special event below minimum depth")
	}
}

func TestResourceTableDepthGated(t *testing.T) {
	cfg := Generate(1, Params{NextBossDepth: 5}, random.New(7))
	if len(cfg.Resources) != 1 || cfg.Resources[0].Kind != resource.Iron {
		t.Fatalf("depth 1 resources = %+v, want iron only", cfg.Resources)
	}
	if p := cfg.Resources[0].Probability; p < 0.4 || p >= 0.8 {
		t.Errorf("iron probability %f outside [0.4, 0.8)", p)
	}

	for seed := int64(0); seed < 20; seed++ {
		deep := Generate(12, Params{NextBossDepth: 5}, random.New(seed))
		if len(deep.Resources) != MaxResourcesPerDepth {
			t.Fatalf("seed %d: %d resources, want %d", seed, len(deep.Resources), MaxResourcesPerDepth)
		}
		if deep.Resources[0].Kind == deep.Resources[1].Kind {
			t.Errorf("seed %d: duplicate resource %v", seed, deep.Resources[0].Kind)
		}
	}
}

func TestGenerateDeterministicForSeed(t *testing.T) {
	a := Generate(6, Params{NextBossDepth: 9}, random.New(42))
	b := Generate(6, Params{NextBossDepth: 9}, random.New(42))
	ja, _ := json.Marshal(a)
	jb, _ := json.Marshal(b)
	if !bytes.Equal(ja, jb) {
		t.Errorf("same seed produced different configs:\n%s\n%s", ja, jb)
	}
}

func TestCloneDoesNotShareResources(t *testing.T) {
	cfg := Generate(12, Params{}, random.New(1))
	cp := cfg.Clone()
	cp.Resources[0].Probability = 99
	if cfg.Resources[0].Probability == 99 {
		t.Errorf("clone shares resource table")
	}
}

func TestScalingBounds(t *testing.T) {
	cfg := Generate(100, Params{}, random.New(3))
	if cfg.SpawnProbability > MaxSpawnProbability {
		t.Errorf("spawn probability %f above cap", cfg.SpawnProbability)
	}
	if cfg.MonsterTypes != MaxMonsterTypes {
		t.Errorf("monster types = %d, want %d", cfg.MonsterTypes, MaxMonsterTypes)
	}
	if cfg.MonsterStrength <= 1 {
		t.Errorf("monster strength %f should grow with depth", cfg.MonsterStrength)
	}
	if !cfg.HazardsEnabled {
		t.Errorf("hazards should be enabled deep down")
	}
}
