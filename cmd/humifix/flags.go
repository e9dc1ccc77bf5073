package main

import (
	"strings"

	"github.com/chrissnell/humifix/pkg/config"
)

// overrides holds command line values that take precedence over the file
type overrides struct {
	ports        string
	prefix       string
	dir          string
	salt         string
	comment      string
	summaryHours float64
	discard      int
}

func (o overrides) apply(c *config.ConfigData) {
	if o.ports != "" {
		c.Transmitters = nil
		for _, p := range strings.Split(o.ports, ",") {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			c.Transmitters = append(c.Transmitters, config.TransmitterData{
				Name:         p,
				Type:         config.TransmitterTypeSerial,
				SerialDevice: p,
			})
		}
	}
	if o.prefix != "" {
		c.Output.Prefix = o.prefix
	}
	if o.dir != "" {
		c.Output.Directory = o.dir
	}
	if o.salt != "" {
		c.Salt = o.salt
	}
	if o.comment != "" {
		c.Comment = o.comment
	}
	if o.summaryHours > 0 {
		c.Logging.SummaryHours = o.summaryHours
	}
	if o.discard >= 0 {
		c.Logging.DiscardFirst = o.discard
	}
}
