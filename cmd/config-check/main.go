package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/chrissnell/humifix/internal/app"
	"github.com/chrissnell/humifix/pkg/config"
)

func main() {
	yamlFile := flag.String("config", "", "Path to YAML configuration file")
	flag.Parse()

	if *yamlFile == "" {
		fmt.Fprintf(os.Stderr, "Usage: %s -config <config.yaml>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	fmt.Printf("Loading YAML configuration: %s\n", *yamlFile)
	provider := config.NewYAMLProvider(*yamlFile)
	defer provider.Close()

	c, err := provider.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading YAML config: %v\n", err)
		os.Exit(1)
	}

	if err := check(os.Stdout, c, time.Now()); err != nil {
		fmt.Fprintf(os.Stderr, "✗ %v\n", err)
		os.Exit(1)
	}
}

// check validates c and describes the run it would start at now
func check(w io.Writer, c *config.ConfigData, now time.Time) error {
	if err := c.Validate(); err != nil {
		return err
	}
	fmt.Fprintln(w, "✓ Configuration is valid")

	s := c.SaltType()
	l := c.Logging
	fmt.Fprintf(w, "\nFixed point:   %s\n", s)
	fmt.Fprintf(w, "Cycle:         every %d min, tolerance %d s, poll every %v\n", l.IntervalMinutes, l.ToleranceSeconds, l.PollInterval)
	fmt.Fprintf(w, "Warm-up:       %d cycles (%d min)\n", l.DiscardFirst, l.DiscardFirst*l.IntervalMinutes)
	fmt.Fprintf(w, "Summary:       every %v\n", l.SummaryPeriod())

	fmt.Fprintf(w, "\nTransmitters:  %d\n", len(c.Transmitters))
	for i, t := range c.Transmitters {
		switch t.Type {
		case config.TransmitterTypeSerial:
			fmt.Fprintf(w, "  Sensor#%d %s: serial %s @ %d baud, timeout %v\n", i+1, t.Name, t.SerialDevice, t.Baud, t.ReadTimeout)
		case config.TransmitterTypeSimulator:
			fmt.Fprintf(w, "  Sensor#%d %s: simulator at %.2f °C / %.2f %%\n", i+1, t.Name, t.Simulator.Temperature, t.Simulator.Humidity)
		}
	}

	fmt.Fprintln(w, "\nOutputs:")
	if !c.Output.DisableCSV {
		fmt.Fprintf(w, "  data file     %s\n", app.OutputFile(c.Output, now, s.String(), "csv"))
	}
	if !c.Output.DisableLog {
		fmt.Fprintf(w, "  summary log   %s\n", app.OutputFile(c.Output, now, s.String(), "log"))
	}
	if c.Storage.SQLite != nil {
		fmt.Fprintf(w, "  sqlite        %s\n", c.Storage.SQLite.Path)
	}
	if c.Storage.TimescaleDB != nil {
		fmt.Fprintln(w, "  timescaledb   enabled")
	}
	if c.RESTServer != nil {
		fmt.Fprintf(w, "  status API    %s:%d\n", c.RESTServer.ListenAddr, c.RESTServer.Port)
	}
	return nil
}
