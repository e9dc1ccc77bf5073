package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/chrissnell/humifix/pkg/salt"
)

func main() {
	var saltName string
	var temp, from, to, step float64
	flag.StringVar(&saltName, "salt", "", "Salt solution (MgCl2, NaCl, KCl, H2O); all salts when empty")
	flag.Float64Var(&temp, "temp", math.NaN(), "Single temperature in °C")
	flag.Float64Var(&from, "from", 0, "First temperature of the table in °C")
	flag.Float64Var(&to, "to", 40, "Last temperature of the table in °C")
	flag.Float64Var(&step, "step", 5, "Temperature step in °C")
	flag.Parse()

	salts := salt.All()
	if saltName != "" {
		s, err := salt.Parse(saltName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		salts = []salt.Salt{s}
	}

	if !math.IsNaN(temp) {
		from, to, step = temp, temp, 1
	}
	if step <= 0 || to < from {
		fmt.Fprintln(os.Stderr, "Error: -step must be positive and -to not below -from")
		os.Exit(1)
	}

	writeTable(os.Stdout, salts, from, to, step)
}

// writeTable prints one row per temperature and one column per salt; values
// outside a salt's valid range are shown as NaN.
func writeTable(w io.Writer, salts []salt.Salt, from, to, step float64) {
	fmt.Fprintf(w, "%8s", "t (°C)")
	for _, s := range salts {
		fmt.Fprintf(w, "%10s", s)
	}
	fmt.Fprintln(w)

	n := int(math.Round((to-from)/step)) + 1
	for i := 0; i < n; i++ {
		t := from + float64(i)*step
		fmt.Fprintf(w, "%8.2f", t)
		for _, s := range salts {
			fmt.Fprintf(w, "%10.2f", salt.TrueHumidity(s, t))
		}
		fmt.Fprintln(w)
	}
}
