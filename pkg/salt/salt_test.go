package salt

import (
	"math"
	"testing"
)

func TestTrueHumidityNaCl(t *testing.T) {
	for _, temp := range []float64{0, 5, 20, 23.5, 40, 79.9, 80} {
		want := 75.5164 + 0.0398321*temp - 0.265459e-2*temp*temp + 0.2848e-4*temp*temp*temp
		got := TrueHumidity(NaCl, temp)
		if math.Abs(got-want) > 1e-12 {
			t.Errorf("TrueHumidity(NaCl, %v) = %v, expected %v", temp, got, want)
		}
	}
}

func TestTrueHumidityOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		salt Salt
		temp float64
	}{
		{"NaCl below band", NaCl, -0.01},
		{"NaCl above band", NaCl, 80.01},
		{"KCl below band", KCl, 4.9},
		{"MgCl2 above band", MgCl2, 81},
		{"H2O above band", H2O, 100.5},
		{"None", None, 20},
		{"unknown salt", Salt(42), 20},
		{"NaN temperature", NaCl, math.NaN()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrueHumidity(tt.salt, tt.temp); !math.IsNaN(got) {
				t.Errorf("TrueHumidity(%v, %v) = %v, expected NaN", tt.salt, tt.temp, got)
			}
		})
	}
}

func TestTrueHumidityKnownValues(t *testing.T) {
	// Greenspan's tabulated values at 25 °C
	tests := []struct {
		salt     Salt
		expected float64
	}{
		{MgCl2, 32.78},
		{NaCl, 75.29},
		{KCl, 84.34},
		{H2O, 100.0},
	}

	for _, tt := range tests {
		t.Run(tt.salt.String(), func(t *testing.T) {
			got := TrueHumidity(tt.salt, 25)
			if math.Abs(got-tt.expected) > 0.05 {
				t.Errorf("TrueHumidity(%v, 25) = %.3f, expected %.2f", tt.salt, got, tt.expected)
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Salt
		wantErr bool
	}{
		{"NaCl", NaCl, false},
		{"nacl", NaCl, false},
		{" MgCl2 ", MgCl2, false},
		{"KCL", KCl, false},
		{"h2o", H2O, false},
		{"HFP75", NaCl, false},
		{"hfp100", H2O, false},
		{"None", None, true},
		{"LiCl", None, true},
		{"", None, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, expected %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestEverySaltHasBand(t *testing.T) {
	for _, s := range All() {
		c, ok := s.Coefficients()
		if !ok {
			t.Fatalf("%v has no coefficients", s)
		}
		if c.TMin >= c.TMax {
			t.Errorf("%v has empty band [%v, %v]", s, c.TMin, c.TMax)
		}
	}
	if _, ok := None.Coefficients(); ok {
		t.Error("None must not have coefficients")
	}
}
