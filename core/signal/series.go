// Package signal conditions raw electrode traces and slices spike waveforms.
package signal

import "errors"

// ErrShortSeries is returned when a series is too short to infer its
// sampling interval.
var ErrShortSeries = errors.New("series needs at least two samples")

// Series is a uniformly sampled voltage trace. Times and Values have the
// same length; Times spacing is the sampling interval.
type Series struct {
	Times  []float64 // seconds
	Values []float64
}

// New builds a series sampled at sampleRate Hz starting at t=0.
func New(values []float64, sampleRate float64) Series {
	times := make([]float64, len(values))
	for i := range times {
		times[i] = float64(i) / sampleRate
	}
	return Series{Times: times, Values: values}
}

// Len returns the number of samples.
func (s Series) Len() int { return len(s.Values) }

// Dt returns the sampling interval inferred from the time index.
func (s Series) Dt() (float64, error) {
	if len(s.Times) < 2 {
		return 0, ErrShortSeries
	}
	return s.Times[1] - s.Times[0], nil
}
