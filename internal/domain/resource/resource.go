// Package resource defines the closed set of resource kinds a character can hold.
// This package is PURE and must NOT import any infrastructure packages.
package resource

import (
	"encoding/json"
	"fmt"
)

// Kind identifies a resource. The zero value is invalid.
type Kind int

const (
	Wood Kind = iota + 1
	Stone
	Iron
	Gold
	Emerald
	Diamonds
	Coins
)

// All lists every kind in display order.
var All = []Kind{Wood, Stone, Iron, Gold, Emerald, Diamonds, Coins}

// Raw lists the kinds a village hazard can destroy.
var Raw = []Kind{Wood, Stone, Iron, Gold}

var names = map[Kind]string{
	Wood:     "wood",
	Stone:    "stone",
	Iron:     "iron",
	Gold:     "gold",
	Emerald:  "emerald",
	Diamonds: "diamonds",
	Coins:    "coins",
}

// conversionRates are shop prices in coins per unit.
var conversionRates = map[Kind]int{
	Iron:     1,
	Gold:     5,
	Emerald:  10,
	Diamonds: 50,
}

func (k Kind) String() string {
	if n, ok := names[k]; ok {
		return n
	}
	return fmt.Sprintf("resource(%d)", int(k))
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	_, ok := names[k]
	return ok
}

// ConversionRate returns the coins paid per unit and whether the shop buys it.
func (k Kind) ConversionRate() (int, bool) {
	rate, ok := conversionRates[k]
	return rate, ok
}

// Parse resolves a resource name.
func Parse(name string) (Kind, error) {
	for k, n := range names {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown resource %q", name)
}

// MarshalText encodes the kind by name so snapshots stay readable and
// resource maps serialize with string keys.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("invalid resource %d", int(k))
	}
	return []byte(names[k]), nil
}

// UnmarshalText decodes a kind by name.
func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Amounts is a resource balance or cost table.
type Amounts map[Kind]int

// Clone returns an independent copy.
func (a Amounts) Clone() Amounts {
	out := make(Amounts, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Covers reports whether a holds at least every amount listed in cost.
func (a Amounts) Covers(cost Amounts) bool {
	for k, need := range cost {
		if a[k] < need {
			return false
		}
	}
	return true
}

var _ json.Marshaler = Amounts(nil)

// MarshalJSON writes balances keyed by resource name.
func (a Amounts) MarshalJSON() ([]byte, error) {
	m := make(map[string]int, len(a))
	for k, v := range a {
		if !k.Valid() {
			continue
		}
		m[names[k]] = v
	}
	return json.Marshal(m)
}

// UnmarshalJSON skips unknown keys and negative values instead of failing.
func (a *Amounts) UnmarshalJSON(b []byte) error {
	var m map[string]int
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	out := make(Amounts, len(m))
	for name, v := range m {
		k, err := Parse(name)
		if err != nil || v < 0 {
			continue
		}
		out[k] = v
	}
	*a = out
	return nil
}
