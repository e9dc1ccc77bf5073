package stats

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

func TestEmpty(t *testing.T) {
	var r Running
	if r.Count() != 0 {
		t.Errorf("Count = %d, expected 0", r.Count())
	}
	for name, v := range map[string]float64{
		"Mean":              r.Mean(),
		"Range":             r.Range(),
		"StandardDeviation": r.StandardDeviation(),
		"Min":               r.Min(),
		"Max":               r.Max(),
	} {
		if !math.IsNaN(v) {
			t.Errorf("%s = %v on empty accumulator, expected NaN", name, v)
		}
	}
}

func TestSingleSample(t *testing.T) {
	var r Running
	r.Update(23.4)

	if r.Count() != 1 {
		t.Errorf("Count = %d, expected 1", r.Count())
	}
	if r.Mean() != 23.4 {
		t.Errorf("Mean = %v, expected 23.4", r.Mean())
	}
	if r.Range() != 0 {
		t.Errorf("Range = %v, expected 0", r.Range())
	}
	if r.StandardDeviation() != 0 {
		t.Errorf("StandardDeviation = %v, expected 0", r.StandardDeviation())
	}
}

func TestCountAndReset(t *testing.T) {
	var r Running
	for i := 0; i < 17; i++ {
		r.Update(float64(i))
	}
	if r.Count() != 17 {
		t.Errorf("Count = %d, expected 17", r.Count())
	}

	r.Reset()
	if r != (Running{}) {
		t.Errorf("Reset left state %+v, expected zero value", r)
	}

	r.Update(5)
	if r.Count() != 1 || r.Mean() != 5 || r.Range() != 0 {
		t.Errorf("after Reset and one update got count=%d mean=%v range=%v", r.Count(), r.Mean(), r.Range())
	}
}

func TestMatchesBatch(t *testing.T) {
	rng := rand.New(rand.NewSource(1977))

	for _, n := range []int{1, 2, 3, 10, 137, 1000, 10000} {
		samples := make([]float64, n)
		for i := range samples {
			// large offset relative to the spread is where naive sums fail
			samples[i] = 1e6 + rng.NormFloat64()*0.01
		}

		var r Running
		for _, v := range samples {
			r.Update(v)
		}

		mean, std := stat.MeanStdDev(samples, nil)
		if n == 1 {
			std = 0
		}
		spread := floats.Max(samples) - floats.Min(samples)

		if math.Abs(r.Mean()-mean) > 1e-6 {
			t.Errorf("n=%d: Mean = %.12f, expected %.12f", n, r.Mean(), mean)
		}
		if math.Abs(r.StandardDeviation()-std) > 1e-6*math.Max(std, 1e-3) {
			t.Errorf("n=%d: StandardDeviation = %.12f, expected %.12f", n, r.StandardDeviation(), std)
		}
		if r.Range() != spread {
			t.Errorf("n=%d: Range = %.12f, expected %.12f", n, r.Range(), spread)
		}
	}
}

func TestRandomizedSizes(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 50; trial++ {
		n := 1 + rng.Intn(10000)
		samples := make([]float64, n)
		for i := range samples {
			samples[i] = rng.Float64()*60 - 10
		}

		var r Running
		for _, v := range samples {
			r.Update(v)
		}

		mean := stat.Mean(samples, nil)
		std := 0.0
		if n > 1 {
			std = stat.StdDev(samples, nil)
		}
		if math.Abs(r.Mean()-mean) > 1e-9 {
			t.Errorf("n=%d: Mean = %v, expected %v", n, r.Mean(), mean)
		}
		if math.Abs(r.StandardDeviation()-std) > 1e-9 {
			t.Errorf("n=%d: StandardDeviation = %v, expected %v", n, r.StandardDeviation(), std)
		}
		if r.Count() != n {
			t.Errorf("Count = %d, expected %d", r.Count(), n)
		}
	}
}

func TestNaNPropagates(t *testing.T) {
	var r Running
	r.Update(1)
	r.Update(math.NaN())
	r.Update(2)

	if r.Count() != 3 {
		t.Errorf("Count = %d, expected 3", r.Count())
	}
	if !math.IsNaN(r.Mean()) || !math.IsNaN(r.Range()) || !math.IsNaN(r.StandardDeviation()) {
		t.Errorf("expected NaN statistics, got mean=%v range=%v std=%v", r.Mean(), r.Range(), r.StandardDeviation())
	}

	r.Reset()
	r.Update(2)
	if r.Mean() != 2 {
		t.Errorf("Mean after Reset = %v, expected 2", r.Mean())
	}
}

func TestSnapshot(t *testing.T) {
	var r Running
	for _, v := range []float64{2, 4, 4, 4, 5, 5, 7, 9} {
		r.Update(v)
	}
	s := r.Snapshot()

	if s.Count != 8 || math.Abs(s.Mean-5) > 1e-12 || s.Min != 2 || s.Max != 9 || s.Range != 7 {
		t.Errorf("unexpected snapshot %+v", s)
	}
	// sample stddev of the classic population-2 example
	if math.Abs(s.StandardDeviation-math.Sqrt(32.0/7.0)) > 1e-12 {
		t.Errorf("StandardDeviation = %v, expected %v", s.StandardDeviation, math.Sqrt(32.0/7.0))
	}

	r.Update(100)
	if s.Count != 8 {
		t.Error("snapshot changed after further updates")
	}
}
