package resource

import (
	"encoding/json"
	"testing"
)

func TestParseRoundTrip(t *testing.T) {
	for _, k := range All {
		got, err := Parse(k.String())
		if err != nil {
			t.Fatalf("Parse(%q): %v", k.String(), err)
		}
		if got != k {
			t.Errorf("Parse(%q) = %v, want %v", k.String(), got, k)
		}
	}
	if _, err := Parse("mithril"); err == nil {
		t.Errorf("expected error for unknown resource")
	}
}

func TestConversionRates(t *testing.T) {
	if rate, ok := Diamonds.ConversionRate(); !ok || rate != 50 {
		t.Errorf("diamonds rate = %d,%v want 50,true", rate, ok)
	}
	if _, ok := Wood.ConversionRate(); ok {
		t.Errorf("wood should not be convertible")
	}
}

func TestAmountsJSONSkipsUnknownKeys(t *testing.T) {
	var a Amounts
	if err := json.Unmarshal([]byte(`{"wood":5,"mithril":3,"gold":-2,"coins":10}`), &a); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(a) != 2 || a[Wood] != 5 || a[Coins] != 10 {
		t.Errorf("unexpected amounts %v", a)
	}

	b, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Amounts
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal back: %v", err)
	}
	if back[Wood] != 5 || back[Coins] != 10 {
		t.Errorf("round trip lost values: %v", back)
	}
}

func TestCovers(t *testing.T) {
	have := Amounts{Wood: 100, Coins: 300}
	if !have.Covers(Amounts{Wood: 100, Coins: 300}) {
		t.Errorf("exact balance should cover cost")
	}
	if have.Covers(Amounts{Iron: 1}) {
		t.Errorf("missing resource should not cover cost")
	}
}
