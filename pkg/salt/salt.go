// Package salt provides the equilibrium relative humidity above saturated salt
// solutions as a function of temperature.
//
// Coefficients follow L. Greenspan, "Humidity Fixed Points of Binary Saturated
// Aqueous Solutions", J. Res. NBS 81A (1977) and OIML R121 (1996).
package salt

import (
	"fmt"
	"math"
	"strings"
)

// Salt identifies the saturated solution used as a humidity fixed point
type Salt int

const (
	None Salt = iota
	MgCl2
	NaCl
	KCl
	H2O
)

// Coefficients describes the cubic fit h(t) = A0 + A1·t + A2·t² + A3·t³ and
// the inclusive temperature band (°C) in which it is valid.
type Coefficients struct {
	A0, A1, A2, A3 float64
	TMin, TMax     float64
}

var coefficients = map[Salt]Coefficients{
	MgCl2: {A0: 33.6686, A1: -0.00797397, A2: -0.108988e-2, A3: 0.0, TMin: 0, TMax: 80},
	NaCl:  {A0: 75.5164, A1: 0.0398321, A2: -0.265459e-2, A3: 0.2848e-4, TMin: 0, TMax: 80},
	KCl:   {A0: 88.619, A1: -0.19334, A2: 0.899706e-3, A3: 0.0, TMin: 5, TMax: 80},
	H2O:   {A0: 100.0, A1: 0.0, A2: 0.0, A3: 0.0, TMin: 0, TMax: 100},
}

var names = map[Salt]string{
	None:  "None",
	MgCl2: "MgCl2",
	NaCl:  "NaCl",
	KCl:   "KCl",
	H2O:   "H2O",
}

// fix point designations used on certificates
var aliases = map[string]Salt{
	"hfp33":  MgCl2,
	"hfp75":  NaCl,
	"hfp85":  KCl,
	"hfp100": H2O,
}

func (s Salt) String() string {
	if n, ok := names[s]; ok {
		return n
	}
	return fmt.Sprintf("Salt(%d)", int(s))
}

// Coefficients returns the fit for s. ok is false for None and unknown values.
func (s Salt) Coefficients() (c Coefficients, ok bool) {
	c, ok = coefficients[s]
	return c, ok
}

// TrueHumidity returns the equilibrium relative humidity in %RH above a
// saturated solution of s at temperature t (°C). It returns NaN when s has
// no fit or t lies outside the valid band.
func TrueHumidity(s Salt, t float64) float64 {
	c, ok := coefficients[s]
	if !ok {
		return math.NaN()
	}
	return c.Humidity(t)
}

// Humidity evaluates the fit at t, or NaN outside [TMin, TMax]
func (c Coefficients) Humidity(t float64) float64 {
	// NaN fails both comparisons, so guard it explicitly
	if math.IsNaN(t) || t < c.TMin || t > c.TMax {
		return math.NaN()
	}
	return c.A0 + c.A1*t + c.A2*t*t + c.A3*t*t*t
}

// Parse converts a salt name or fix point designation (case-insensitive)
// into a Salt.
func Parse(name string) (Salt, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for s, sn := range names {
		if s != None && strings.ToLower(sn) == n {
			return s, nil
		}
	}
	if s, ok := aliases[n]; ok {
		return s, nil
	}
	return None, fmt.Errorf("unknown salt solution %q", name)
}

// All returns every salt with a valid fit, in declaration order
func All() []Salt {
	return []Salt{MgCl2, NaCl, KCl, H2O}
}
