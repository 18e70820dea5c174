package conduct

import (
	"math"
	"sort"
)

// ChooseKeepElectrode picks the electrode whose spikes are genuine within a
// set of cofiring events: the one with the highest mean absolute amplitude.
// Electrodes within 20% of that maximum are all candidates, and the
// alphabetically first candidate wins, so overlapping pairs resolve
// deterministically. Returns "" for an empty event set.
func ChooseKeepElectrode(events []Event) string {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, e := range events {
		for _, r := range e.Members() {
			sums[r.Spike.Electrode] += math.Abs(r.Spike.Amplitude)
			counts[r.Spike.Electrode]++
		}
	}
	if len(sums) == 0 {
		return ""
	}

	maxAmp := 0.0
	means := make(map[string]float64, len(sums))
	for tag, sum := range sums {
		m := sum / float64(counts[tag])
		means[tag] = m
		if m > maxAmp {
			maxAmp = m
		}
	}

	var candidates []string
	for tag, m := range means {
		if m > 0.8*maxAmp {
			candidates = append(candidates, tag)
		}
	}
	if len(candidates) == 0 {
		// All-zero amplitudes; any electrode is as good as another.
		for tag := range means {
			candidates = append(candidates, tag)
		}
	}
	sort.Strings(candidates)
	return candidates[0]
}
