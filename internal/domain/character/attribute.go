package character

import "fmt"

// Attribute is one of the four base attributes, or Health as an effect target.
type Attribute int

const (
	Strength Attribute = iota + 1
	Dexterity
	Vitality
	Intelligence
	// Health is only valid as an effect target. It cannot be upgraded.
	Health
)

// Attributes lists the upgradeable attributes.
var Attributes = []Attribute{Strength, Dexterity, Vitality, Intelligence}

var attributeNames = map[Attribute]string{
	Strength:     "strength",
	Dexterity:    "dexterity",
	Vitality:     "vitality",
	Intelligence: "intelligence",
	Health:       "health",
}

func (a Attribute) String() string {
	if n, ok := attributeNames[a]; ok {
		return n
	}
	return fmt.Sprintf("attribute(%d)", int(a))
}

// Upgradeable reports whether points can be spent on a.
func (a Attribute) Upgradeable() bool {
	switch a {
	case Strength, Dexterity, Vitality, Intelligence:
		return true
	}
	return false
}

// ParseAttribute resolves an attribute name.
func ParseAttribute(name string) (Attribute, error) {
	for a, n := range attributeNames {
		if n == name {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown attribute %q", name)
}

func (a Attribute) MarshalText() ([]byte, error) {
	n, ok := attributeNames[a]
	if !ok {
		return nil, fmt.Errorf("invalid attribute %d", int(a))
	}
	return []byte(n), nil
}

func (a *Attribute) UnmarshalText(b []byte) error {
	parsed, err := ParseAttribute(string(b))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Stat returns the current value of an attribute. Health returns current health.
func (c *Character) Stat(a Attribute) int {
	switch a {
	case Strength:
		return c.Strength
	case Dexterity:
		return c.Dexterity
	case Vitality:
		return c.Vitality
	case Intelligence:
		return c.Intelligence
	case Health:
		return c.CurrentHealth
	}
	return 0
}

// adjustStat adds delta to an attribute, never letting it fall below 1, and
// returns the delta actually applied.
func (c *Character) adjustStat(a Attribute, delta int) int {
	var p *int
	switch a {
	case Strength:
		p = &c.Strength
	case Dexterity:
		p = &c.Dexterity
	case Vitality:
		p = &c.Vitality
	case Intelligence:
		p = &c.Intelligence
	case Health:
		before := c.CurrentHealth
		c.setHealth(c.CurrentHealth + delta)
		return c.CurrentHealth - before
	default:
		return 0
	}
	next := max(*p+delta, 1)
	applied := next - *p
	*p = next
	if a == Vitality {
		c.setHealth(c.CurrentHealth)
	}
	return applied
}

// RaiseAttribute permanently adds n to an upgradeable attribute.
func (c *Character) RaiseAttribute(a Attribute, n int) {
	if a.Upgradeable() {
		c.adjustStat(a, n)
	}
}
