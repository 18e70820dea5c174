package spike

import "strings"

// Spike is one detected threshold crossing on a single electrode. Rows are
// immutable once detected except for the electrode tag (rewritten during
// sub-sorting) and the Conductance flag (set by artifact tagging).
type Spike struct {
	Electrode   string
	Time        float64 // seconds
	Amplitude   float64
	Threshold   float64
	Conductance bool
}

// IsAnalog reports whether tag names an auxiliary analog input channel
// (analog1..analog8) rather than a recording electrode.
func IsAnalog(tag string) bool { return strings.HasPrefix(tag, "analog") }
