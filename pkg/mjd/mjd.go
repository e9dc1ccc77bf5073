// Package mjd converts between wall-clock time and Modified Julian Date.
package mjd

import (
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

const (
	// jdOffset is JD - MJD
	jdOffset = 2400000.5
	// unixEpoch is the MJD of 1970-01-01T00:00:00Z
	unixEpoch = 40587.0
)

// FromUnix returns the MJD of a UTC unix timestamp in whole seconds
func FromUnix(sec int64) float64 {
	return float64(sec)/86400.0 + unixEpoch
}

// FromTime returns the MJD of t. Sub-second precision is dropped so that a
// timestamp and its unix seconds always map to the same date.
func FromTime(t time.Time) float64 {
	return julian.TimeToJD(t.UTC().Truncate(time.Second)) - jdOffset
}

// ToTime converts an MJD back to a UTC time
func ToTime(mjd float64) time.Time {
	return julian.JDToTime(mjd + jdOffset).UTC()
}
