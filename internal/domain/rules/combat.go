// Package rules contains the pure calculation logic for game mechanics.
// This package is PURE and must NOT import any infrastructure packages.
package rules

import "math"

// Balance constants shared by the character and the controller.
const (
	BaseXP            = 200
	XPGrowthRate      = 1.4
	BaseAttackSpeedMs = 6000.0

	HealthPerVitality = 10
	ArmorPerStrength  = 4
	ArmorSoftCap      = 120.0
	DexteritySoftCap  = 15.0
	BoostSoftCap      = 100.0

	// WeaponAttackScale converts a weapon's attack bonus into a damage multiplier.
	WeaponAttackScale = 10.0
)

// MaxHealth returns the health cap granted by vitality.
func MaxHealth(vitality int) int {
	return vitality * HealthPerVitality
}

// BaseArmor returns the armor granted by strength alone.
func BaseArmor(strength int) int {
	return strength * ArmorPerStrength
}

// DamageReduction maps armor onto [0, 1). Negative armor counts as none.
func DamageReduction(armor int) float64 {
	if armor <= 0 {
		return 0
	}
	a := float64(armor)
	return a / (a + ArmorSoftCap)
}

// Mitigate applies a damage reduction fraction to a raw hit and floors it.
func Mitigate(raw int, reduction float64) int {
	if raw <= 0 {
		return 0
	}
	return int(math.Floor(float64(raw) * (1 - reduction)))
}

// AttackSpeedMs is the delay between player attacks. It shrinks toward zero
// as dexterity grows but never reaches it.
func AttackSpeedMs(dexterity int) float64 {
	d := math.Max(float64(dexterity), 0)
	return (1 - d/(d+DexteritySoftCap)) * BaseAttackSpeedMs
}

// WeaponFactor is the multiplier a weapon's attack bonus contributes to a hit.
// An empty weapon slot contributes 1.
func WeaponFactor(attackBonus int) float64 {
	if attackBonus <= 0 {
		return 1
	}
	return 1 + float64(attackBonus)/WeaponAttackScale
}

// DamageRoll computes a player hit. u must be drawn uniformly from [1, 2).
func DamageRoll(strength, weaponAttack int, u float64) int {
	return int(math.Floor(float64(strength) * 0.5 * WeaponFactor(weaponAttack) * u))
}

// XPNeeded is the cumulative experience required to reach the next level
// from the given one.
func XPNeeded(level int) int {
	if level <= 0 {
		return 0
	}
	total := BaseXP
	for l := 2; l <= level; l++ {
		total += int(math.Floor(BaseXP * math.Pow(XPGrowthRate, float64(l-1))))
	}
	return total
}

// Boost returns 1 + s/(s+100), the shared soft-capped multiplier used for
// quality, quantity and experience boosts.
func Boost(stat int) float64 {
	s := math.Max(float64(stat), 0)
	return 1 + s/(s+BoostSoftCap)
}
