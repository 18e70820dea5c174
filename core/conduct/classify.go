package conduct

import "math"

// Params are the conductance classification thresholds.
type Params struct {
	MinSep    float64 // run separation threshold, seconds
	MinEvents int     // pair must have strictly more events than this
	MaxJitter float64 // member time-difference stddev must stay below, ms
}

// DefaultParams returns the artifact-tagging thresholds.
func DefaultParams() Params {
	return Params{MinSep: TagMinSep, MinEvents: 30, MaxJitter: 0.3}
}

// Classify reports whether one electrode pair's cofiring events are
// consistent with a shared conductance artifact. True coincidental firing is
// rare and jitter-inconsistent; crosstalk fires often and in lockstep, so a
// pair qualifies only with a high event count and low timing jitter.
//
// Event members are canonically ordered by electrode tag before the time
// sequence is differenced; only differences strictly below MinSep enter the
// jitter statistic, which is the sample standard deviation in milliseconds.
func Classify(events []Event, p Params) bool {
	if len(events) <= p.MinEvents {
		return false
	}

	times := make([]float64, 0, 2*len(events))
	for _, e := range events {
		m := e.byElectrode()
		times = append(times, m[0].Spike.Time, m[1].Spike.Time)
	}
	var diffs []float64
	for i := 1; i < len(times); i++ {
		if d := times[i] - times[i-1]; d < p.MinSep {
			diffs = append(diffs, d)
		}
	}
	return 1000*stddev(diffs) < p.MaxJitter
}

// stddev is the sample standard deviation (n-1 divisor); NaN below two
// samples, which never classifies as an artifact.
func stddev(xs []float64) float64 {
	if len(xs) < 2 {
		return math.NaN()
	}
	mean := 0.0
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))
	ss := 0.0
	for _, x := range xs {
		ss += (x - mean) * (x - mean)
	}
	return math.Sqrt(ss / float64(len(xs)-1))
}
