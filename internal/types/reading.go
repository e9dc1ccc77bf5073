package types

import (
	"time"
)

// Reading is one poll of a single humidity transmitter. Err is set when the
// poll failed; Temperature and Humidity are meaningless in that case.
type Reading struct {
	Timestamp   time.Time
	Transmitter string
	Temperature float64 // °C
	Humidity    float64 // %RH
	Err         error
}

// OK reports whether the poll produced values
func (r Reading) OK() bool {
	return r.Err == nil
}
