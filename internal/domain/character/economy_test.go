package character

import (
	"testing"
	"time"

	"github.com/PatrikSjolin/hollowheart/internal/domain/building"
	"github.com/PatrikSjolin/hollowheart/internal/domain/research"
	"github.com/PatrikSjolin/hollowheart/internal/domain/resource"
)

func TestResearchLifecycle(t *testing.T) {
	c, _ := newTestCharacter()
	c.Resources = resource.Amounts{resource.Coins: 250, resource.Iron: 25}
	def, _ := research.Lookup("Increased Life Regen")
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	if !c.StartResearch(def, def.Duration, now) {
		t.Fatalf("research rejected")
	}
	if c.Resource(resource.Coins) != 50 || c.Resource(resource.Iron) != 5 {
		t.Errorf("cost not deducted: %v", c.Resources)
	}
	if c.StartResearch(def, def.Duration, now) {
		t.Errorf("second concurrent research accepted")
	}
	if got := c.ResearchProgress(now.Add(10 * time.Minute)); got != 20*time.Minute {
		t.Errorf("progress = %s, want 20m", got)
	}
	if got := c.ResearchProgress(now.Add(time.Hour)); got != 0 {
		t.Errorf("progress after end = %s, want 0", got)
	}

	if !c.CompleteResearch() {
		t.Fatalf("complete rejected")
	}
	if c.RegenRate != 10 {
		t.Errorf("regen rate = %f, want 10", c.RegenRate)
	}
	if !c.ResearchCompleted(def.Name) || c.Research != nil {
		t.Errorf("research not recorded as completed")
	}
}

func TestGenerateResources(t *testing.T) {
	c, _ := newTestCharacter()
	mill, _ := building.Lookup(building.LumberMill)
	c.AddBuilding(mill)
	c.AddBuilding(mill)

	c.GenerateResources(25000)
	if c.Resource(resource.Wood) != 4 {
		t.Errorf("wood = %d, want 4", c.Resource(resource.Wood))
	}
	if c.Timers.Generation[building.LumberMill] != 5000 {
		t.Errorf("remainder = %f, want 5000", c.Timers.Generation[building.LumberMill])
	}
	if c.Resource(resource.Stone) != 0 {
		t.Errorf("stone generated without a quarry")
	}
}

func TestStorageBuildingRaisesCap(t *testing.T) {
	c, _ := newTestCharacter()
	wh, _ := building.Lookup(building.WoodWarehouse)
	c.AddBuilding(wh)
	if c.MaxWood != StartingStorage+200 {
		t.Errorf("max wood = %d", c.MaxWood)
	}
}
