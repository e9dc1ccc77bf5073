package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/chrissnell/humifix/internal/app"
	"github.com/chrissnell/humifix/internal/log"
	"github.com/chrissnell/humifix/pkg/config"
)

const version = "1.0-" + runtime.GOOS + "/" + runtime.GOARCH

func main() {
	var o overrides
	cfgFile := flag.String("config", "", "Path to a YAML configuration file (optional when -ports and -salt are given)")
	flag.StringVar(&o.ports, "ports", "", "Comma-separated serial devices of the transmitters, e.g. /dev/ttyUSB0,/dev/ttyUSB1")
	flag.StringVar(&o.prefix, "prefix", "", "Prefix of the data and summary file names")
	flag.StringVar(&o.dir, "dir", "", "Directory for the data and summary files")
	flag.StringVar(&o.salt, "salt", "", "Fixed point solution: MgCl2, NaCl, KCl or H2O")
	flag.StringVar(&o.comment, "comment", "", "User comment written to the header")
	flag.Float64Var(&o.summaryHours, "summary", 0, "Summary period in hours")
	flag.IntVar(&o.discard, "discard", -1, "Number of warm-up cycles to discard")
	debug := flag.Bool("debug", false, "Turn on debugging output")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("humifix %s\n", version)
		os.Exit(0)
	}

	cfgData, err := loadConfig(*cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	o.apply(cfgData)
	cfgData.ApplyDefaults()

	// Set up logging
	if err := log.InitWithFile(*debug || cfgData.Log.Debug, log.FileConfig{
		Path:       cfgData.Log.File,
		MaxSizeMB:  cfgData.Log.MaxSizeMB,
		MaxBackups: cfgData.Log.MaxBackups,
	}); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	application := app.New(config.NewStaticProvider(cfgData), log.GetSugaredLogger(), app.WithVersion(version))
	if err := application.Run(context.Background()); err != nil {
		log.Errorf("Application error: %v", err)
		log.Sync()
		os.Exit(1)
	}
}

func loadConfig(cfgFile string) (*config.ConfigData, error) {
	if cfgFile == "" {
		return config.Defaults(), nil
	}

	filename, _ := filepath.Abs(cfgFile)
	provider := config.NewYAMLProvider(filename)
	defer provider.Close()

	cfgData, err := provider.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error reading config file. Did you pass the -config flag? Run with -h for help: %w", err)
	}
	return cfgData, nil
}
