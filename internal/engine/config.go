package engine

// Config holds the balance values and flags the controller runs with.
// All durations are milliseconds of simulated time.
type Config struct {
	Debug bool

	DwellTime        float64
	TreasureInterval float64
	HazardInterval   float64
	PoisonInterval   float64
	PoisonDamage     int

	MaxMonsters int

	HazardChance         float64
	HazardDangerPerDepth int
	HazardBaseDamage     int

	ItemFindChance    float64
	MaxItemFindChance float64

	BossDepthGap    int
	BossDepthSpread int
	BossXPFactor    int

	SpecialEventCountdown      float64
	SpecialEventBaseDamage     int
	SpecialEventDamagePerDepth int
	SpecialEventQuality        float64
	SpecialEventStatBonus      int

	VillageCooldown      float64
	VillageMinDepth      int
	VillageMinDuration   float64
	VillageMaxDuration   float64
	VillageDestroyChance float64
	VillageDebuffChance  float64
	VillageMaxProtection float64
}

// DefaultConfig returns the standard balance at game speed 2.
func DefaultConfig() Config {
	return Config{
		DwellTime:        12000,
		TreasureInterval: 10000,
		HazardInterval:   2000,
		PoisonInterval:   3000,
		PoisonDamage:     2,

		MaxMonsters: 3,

		HazardChance:         0.35,
		HazardDangerPerDepth: 15,
		HazardBaseDamage:     6,

		ItemFindChance:    0.1,
		MaxItemFindChance: 0.5,

		BossDepthGap:    3,
		BossDepthSpread: 3,
		BossXPFactor:    5,

		SpecialEventCountdown:      10000,
		SpecialEventBaseDamage:     60,
		SpecialEventDamagePerDepth: 12,
		SpecialEventQuality:        3.0,
		SpecialEventStatBonus:      5,

		VillageCooldown:      120000,
		VillageMinDepth:      3,
		VillageMinDuration:   30000,
		VillageMaxDuration:   90000,
		VillageDestroyChance: 0.02,
		VillageDebuffChance:  0.005,
		VillageMaxProtection: 0.99,
	}
}
