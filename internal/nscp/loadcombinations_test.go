package nscp

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestParseLoadCase(t *testing.T) {
	for in, want := range map[string]LoadCase{
		"":    Dead,
		"D":   Dead,
		"l":   Live,
		"LR":  Roof,
		" W ": Wind,
		"e":   Earthquake,
		"R":   Rain,
	} {
		got, err := ParseLoadCase(in)
		if err != nil {
			t.Fatalf("ParseLoadCase(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("ParseLoadCase(%q) = %q, want %q", in, got, want)
		}
	}
	if _, err := ParseLoadCase("snow"); err == nil {
		t.Fatal("ParseLoadCase(snow) succeeded")
	}
}

func TestFactor(t *testing.T) {
	lc, err := Lookup("2", LoadCombinations)
	if err != nil {
		t.Fatal(err)
	}
	got := make([]float64, len(LoadCases))
	for i, c := range LoadCases {
		got[i] = lc.Factor(c)
	}
	want := []float64{1.2, 1.6, 0.5, 0, 0, 0.5}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("factors (-want +got):\n%s", diff)
	}
	if f := lc.Factor("X"); f != 0 {
		t.Fatalf("unknown case factor = %v", f)
	}
}

func TestLookup(t *testing.T) {
	if lc, err := Lookup("s", LoadCombinations); err != nil || lc.ID != Service.ID {
		t.Fatalf("Lookup(s) = %v, %v", lc, err)
	}
	if _, err := Lookup("9", SimplifiedCombinations); err == nil {
		t.Fatal("Lookup(9) succeeded")
	}
}

func TestGoverning(t *testing.T) {
	cs := CaseSamples{
		Dead: {0, -10, -20, 5},
		Live: {0, -4, 2, 1},
	}
	peaks := CalculatePeaks(cs, 4, SimplifiedCombinations)
	want := []Peak{
		{Combination: SimplifiedCombinations[0], Value: -28, Index: 2},
		{Combination: SimplifiedCombinations[1], Value: -20.8, Index: 2},
	}
	if diff := cmp.Diff(want, peaks, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Fatalf("peaks (-want +got):\n%s", diff)
	}

	gov, ok := CalculateGoverning(cs, 4, SimplifiedCombinations)
	if !ok || gov.Combination.ID != "1" {
		t.Fatalf("governing = %+v, %v; want combination 1", gov, ok)
	}
	if _, ok := CalculateGoverning(cs, 4, nil); ok {
		t.Fatal("governing found with no combinations")
	}
}
