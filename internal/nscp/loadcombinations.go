// Package nscp holds the NSCP 2015 factored load combinations and applies
// them to beams whose loads are tagged with a load case.
package nscp

import (
	"fmt"
	"math"
	"strings"
)

// LoadCase identifies the source of a load.
type LoadCase string

// NSCP 2015 Section 203 load cases
const (
	Dead       LoadCase = "D"
	Live       LoadCase = "L"
	Roof       LoadCase = "Lr"
	Wind       LoadCase = "W"
	Earthquake LoadCase = "E"
	Rain       LoadCase = "R"
)

// LoadCases lists every load case in a fixed order.
var LoadCases = []LoadCase{Dead, Live, Roof, Wind, Earthquake, Rain}

// ParseLoadCase parses a load case tag. The empty string is a dead load.
func ParseLoadCase(s string) (LoadCase, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Dead, nil
	}
	for _, c := range LoadCases {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown load case %q (expected one of D, L, Lr, W, E, R)", s)
}

// LoadCombination represents an NSCP load combination
// Based on NSCP 2015 Section 203.3 - Load Combinations Using Strength Design
type LoadCombination struct {
	ID          string
	Description string
	// Load factors for each load case
	Dead       float64 // D - Dead load
	Live       float64 // L - Live load
	Roof       float64 // Lr - Roof live load
	Wind       float64 // W - Wind load
	Earthquake float64 // E - Earthquake load
	Rain       float64 // R - Rain load
}

// NSCP 2015 Section 203.3.1 - Basic Load Combinations
var LoadCombinations = []LoadCombination{
	{
		ID:          "1",
		Description: "1.4D",
		Dead:        1.4,
	},
	{
		ID:          "2",
		Description: "1.2D + 1.6L + 0.5(Lr or R)",
		Dead:        1.2,
		Live:        1.6,
		Roof:        0.5,
		Rain:        0.5,
	},
	{
		ID:          "3",
		Description: "1.2D + 1.6(Lr or R) + (1.0L or 0.5W)",
		Dead:        1.2,
		Live:        1.0,
		Roof:        1.6,
		Rain:        1.6,
		Wind:        0.5,
	},
	{
		ID:          "4",
		Description: "1.2D + 1.0W + 1.0L + 0.5(Lr or R)",
		Dead:        1.2,
		Live:        1.0,
		Wind:        1.0,
		Roof:        0.5,
		Rain:        0.5,
	},
	{
		ID:          "5",
		Description: "1.2D + 1.0E + 1.0L",
		Dead:        1.2,
		Live:        1.0,
		Earthquake:  1.0,
	},
	{
		ID:          "6",
		Description: "0.9D + 1.0W",
		Dead:        0.9,
		Wind:        1.0,
	},
	{
		ID:          "7",
		Description: "0.9D + 1.0E",
		Dead:        0.9,
		Earthquake:  1.0,
	},
}

// SimplifiedCombinations for common beam design scenarios
// These are the most frequently used combinations for gravity loads
var SimplifiedCombinations = []LoadCombination{
	{
		ID:          "1",
		Description: "1.4D",
		Dead:        1.4,
	},
	{
		ID:          "2",
		Description: "1.2D + 1.6L",
		Dead:        1.2,
		Live:        1.6,
	},
}

// Service applies every load case unfactored.
var Service = LoadCombination{
	ID:          "S",
	Description: "D + L + Lr + W + E + R (unfactored)",
	Dead:        1,
	Live:        1,
	Roof:        1,
	Wind:        1,
	Earthquake:  1,
	Rain:        1,
}

// Factor returns the load factor the combination applies to c.
func (lc LoadCombination) Factor(c LoadCase) float64 {
	switch c {
	case Dead:
		return lc.Dead
	case Live:
		return lc.Live
	case Roof:
		return lc.Roof
	case Wind:
		return lc.Wind
	case Earthquake:
		return lc.Earthquake
	case Rain:
		return lc.Rain
	}
	return 0
}

// Lookup finds a combination by ID. "S" selects Service.
func Lookup(id string, combinations []LoadCombination) (LoadCombination, error) {
	if strings.EqualFold(id, Service.ID) {
		return Service, nil
	}
	for _, lc := range combinations {
		if lc.ID == id {
			return lc, nil
		}
	}
	return LoadCombination{}, fmt.Errorf("unknown load combination %q", id)
}

// CaseSamples holds one unfactored diagram per load case, sampled at a shared
// set of coordinates.
type CaseSamples map[LoadCase][]float64

// Apply superposes the case diagrams with the combination's factors into n
// samples.
func (lc LoadCombination) Apply(cs CaseSamples, n int) []float64 {
	out := make([]float64, n)
	for c, ys := range cs {
		k := lc.Factor(c)
		if k == 0 {
			continue
		}
		for i := 0; i < n && i < len(ys); i++ {
			out[i] += k * ys[i]
		}
	}
	return out
}

// Peak is the largest absolute factored value of one combination and the
// sample index at which it occurs.
type Peak struct {
	Combination LoadCombination
	Value       float64
	Index       int
}

// CalculatePeaks factors cs with every combination and returns each
// combination's peak in the order given.
func CalculatePeaks(cs CaseSamples, n int, combinations []LoadCombination) []Peak {
	peaks := make([]Peak, 0, len(combinations))
	for _, lc := range combinations {
		p := Peak{Combination: lc}
		for i, v := range lc.Apply(cs, n) {
			if math.Abs(v) > math.Abs(p.Value) {
				p.Value = v
				p.Index = i
			}
		}
		peaks = append(peaks, p)
	}
	return peaks
}

// CalculateGoverning finds the combination with the largest absolute factored
// value. Ties go to the earlier combination.
func CalculateGoverning(cs CaseSamples, n int, combinations []LoadCombination) (Peak, bool) {
	var gov Peak
	found := false
	for _, p := range CalculatePeaks(cs, n, combinations) {
		if !found || math.Abs(p.Value) > math.Abs(gov.Value) {
			gov = p
			found = true
		}
	}
	return gov, found
}
