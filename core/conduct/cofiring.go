// Package conduct detects and tags conductance artifacts: spurious
// near-simultaneous spike pairs on two electrodes caused by electrical
// crosstalk rather than independent firing.
package conduct

import (
	"sort"

	"mea-core/spike"
)

// Separation thresholds in seconds. DefaultMinSep suits general cofiring
// queries; TagMinSep is the tighter threshold used for artifact tagging.
const (
	DefaultMinSep = 0.0005
	TagMinSep     = 0.0012
)

// Row pairs a spike with its row position in the owning table, so artifact
// flags can be written back after classification.
type Row struct {
	Index int
	Spike spike.Spike
}

// Event is one cofiring event: exactly two spikes on two distinct
// electrodes, temporally adjacent and isolated from all other spikes by more
// than the separation threshold. Members are kept in time order.
type Event struct {
	First, Second Row
}

// Members returns the event's rows in time order.
func (e Event) Members() [2]Row { return [2]Row{e.First, e.Second} }

// byElectrode returns the event's rows ordered by electrode tag, the
// canonical order used for timing-jitter statistics.
func (e Event) byElectrode() [2]Row {
	if e.Second.Spike.Electrode < e.First.Spike.Electrode {
		return [2]Row{e.Second, e.First}
	}
	return [2]Row{e.First, e.Second}
}

// CofiringEvents partitions rows into maximal runs of temporally adjacent
// spikes, where a new run starts whenever the gap to the previous spike
// exceeds minSep, and keeps only runs of exactly two spikes from distinct
// electrodes. Isolated spikes and runs of three or more (ambiguous clusters
// or fast single-electrode bursts) are discarded. Rows may arrive in any
// order; output preserves run order, i.e. the time order of each run's
// first member. The sort is stable, so equal-time spikes keep their
// relative row order.
func CofiringEvents(rows []Row, minSep float64) []Event {
	sorted := append([]Row(nil), rows...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Spike.Time < sorted[j].Spike.Time
	})

	var events []Event
	start := 0
	for i := 1; i <= len(sorted); i++ {
		if i < len(sorted) && sorted[i].Spike.Time-sorted[i-1].Spike.Time <= minSep {
			continue
		}
		if i-start == 2 && sorted[start].Spike.Electrode != sorted[start+1].Spike.Electrode {
			events = append(events, Event{First: sorted[start], Second: sorted[start+1]})
		}
		start = i
	}
	return events
}
