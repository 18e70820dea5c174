// Package detect bridges the external peak-detection primitive to the spike
// table model.
package detect

import (
	"fmt"

	"mea-core/signal"
	"mea-core/spike"
)

// DefaultAmplitude is the usual detection sensitivity multiplier.
const DefaultAmplitude = 6.0

// PeakFunc is the contract of the peak-detection primitive: scan one
// electrode's series and return candidate spikes whose thresholds the
// detector derives internally (typically a multiple of estimated noise).
// amp scales detection sensitivity.
type PeakFunc func(s signal.Series, amp float64) ([]spike.Spike, error)

// Spikes runs detect over every channel named in order and assembles the
// results into one table; channel order fixes the table's group order.
// Channels missing from traces are skipped. Detector failures are fatal:
// upstream data access errors propagate to the caller.
func Spikes(traces map[string]signal.Series, order []string, detect PeakFunc, amp float64) (*spike.Table, error) {
	t := spike.NewTable(nil)
	for _, tag := range order {
		s, ok := traces[tag]
		if !ok {
			continue
		}
		peaks, err := detect(s, amp)
		if err != nil {
			return nil, fmt.Errorf("detect %s: %w", tag, err)
		}
		for _, p := range peaks {
			p.Electrode = tag
			t.Append(p)
		}
	}
	return t, nil
}
