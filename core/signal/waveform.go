package signal

// DefaultWindowLen is the waveform window width in seconds.
const DefaultWindowLen = 0.003

// ExtractWaveforms slices one window of windowLen seconds per spike time,
// centered on the nearest sample index. A full window holds
// 2*floor(windowLen/(2*dt)) samples; windows that run past either end of the
// series are truncated rather than padded, so callers must not assume
// uniform waveform length near trace boundaries.
func ExtractWaveforms(s Series, times []float64, windowLen float64) ([][]float64, error) {
	dt, err := s.Dt()
	if err != nil {
		return nil, err
	}
	span := int(windowLen / 2 / dt)

	out := make([][]float64, 0, len(times))
	for _, t := range times {
		x := int(t / dt)
		lo, hi := x-span, x+span
		if lo < 0 {
			lo = 0
		}
		if hi > len(s.Values) {
			hi = len(s.Values)
		}
		if lo >= hi {
			out = append(out, nil)
			continue
		}
		out = append(out, append([]float64(nil), s.Values[lo:hi]...))
	}
	return out, nil
}
