package sortpca

import (
	"fmt"
	"strconv"

	"mea-core/signal"
	"mea-core/spike"
)

// Options control waveform embedding and clustering. Eps and MinPts are in
// embedding units and depend on filter and PCA scale; they are tunable, not
// physical constants.
type Options struct {
	Low       float64 // filter band low edge, Hz
	High      float64 // filter band high edge, Hz
	WindowLen float64 // waveform window, seconds
	Eps       float64 // DBSCAN neighborhood radius
	MinPts    int     // DBSCAN minimum neighborhood size
}

// DefaultOptions returns the usual sub-sorting parameters.
func DefaultOptions() Options {
	return Options{
		Low:       signal.DefaultLow,
		High:      signal.DefaultHigh,
		WindowLen: signal.DefaultWindowLen,
		Eps:       30,
		MinPts:    3,
	}
}

// SubSort splits each electrode group of t into putative distinct sources
// and rewrites every spike's tag as "<tag>.<cluster>", where cluster -1 is
// noise. traces maps electrode tags to their raw series; analog channels and
// electrodes without a trace are left untouched. No spikes are created or
// destroyed, but group membership changes: one group becomes N+1 groups.
func SubSort(t *spike.Table, traces map[string]signal.Series, o Options) error {
	retags := make(map[int]string)
	for _, tag := range t.Tags() {
		if spike.IsAnalog(tag) {
			continue
		}
		trace, ok := traces[tag]
		if !ok {
			continue
		}

		filtered, err := signal.Bandpass(trace, o.Low, o.High)
		if err != nil {
			return fmt.Errorf("filter %s: %w", tag, err)
		}
		rows := t.GroupRows(tag)
		times := make([]float64, len(rows))
		for i, r := range rows {
			times[i] = t.Row(r).Time
		}
		waves, err := signal.ExtractWaveforms(filtered, times, o.WindowLen)
		if err != nil {
			return fmt.Errorf("extract %s: %w", tag, err)
		}

		pts, err := PCA2(padUniform(waves))
		if err != nil {
			return fmt.Errorf("embed %s: %w", tag, err)
		}
		labels := DBSCAN(pts, o.Eps, o.MinPts)
		for i, r := range rows {
			retags[r] = tag + "." + strconv.Itoa(labels[i])
		}
	}
	t.Retag(retags)
	return nil
}

// padUniform zero-pads boundary-truncated waveforms to the common window
// length so they can share one embedding matrix.
func padUniform(waves [][]float64) [][]float64 {
	width := 0
	for _, w := range waves {
		if len(w) > width {
			width = len(w)
		}
	}
	out := make([][]float64, len(waves))
	for i, w := range waves {
		if len(w) == width {
			out[i] = w
			continue
		}
		padded := make([]float64, width)
		copy(padded, w)
		out[i] = padded
	}
	return out
}
