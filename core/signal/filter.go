package signal

import "fmt"

// Default band edges for extracellular spike recordings, Hz.
const (
	DefaultLow  = 200.0
	DefaultHigh = 4000.0
)

// Bandpass filters a series with a 2nd-order Butterworth filter applied
// forward and backward, so the output has zero phase distortion and the same
// length and time index as the input. The band collapses to a pure lowpass
// at high when low < 0.1 Hz, and to a pure highpass at low when
// high > 10000 Hz. Edge frequencies must lie below the Nyquist frequency of
// the series.
func Bandpass(s Series, low, high float64) (Series, error) {
	dt, err := s.Dt()
	if err != nil {
		return Series{}, err
	}
	nyquist := 1 / dt / 2

	var c coeffs
	switch {
	case low < 0.1:
		if high >= nyquist {
			return Series{}, fmt.Errorf("lowpass cutoff %g Hz at or above Nyquist %g Hz", high, nyquist)
		}
		c, err = butter(2, []float64{high / nyquist}, lowpass)
	case high > 10000:
		if low >= nyquist {
			return Series{}, fmt.Errorf("highpass cutoff %g Hz at or above Nyquist %g Hz", low, nyquist)
		}
		c, err = butter(2, []float64{low / nyquist}, highpass)
	default:
		if high >= nyquist {
			return Series{}, fmt.Errorf("band edge %g Hz at or above Nyquist %g Hz", high, nyquist)
		}
		if low >= high {
			return Series{}, fmt.Errorf("band edges inverted: %g >= %g", low, high)
		}
		c, err = butter(2, []float64{low / nyquist, high / nyquist}, bandpass)
	}
	if err != nil {
		return Series{}, err
	}

	return Series{Times: s.Times, Values: filtFilt(c.b, c.a, s.Values)}, nil
}
