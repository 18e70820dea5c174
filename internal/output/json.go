// internal/output/json.go
package output

import (
	"io"

	"mea-core/spike"
	"mea/internal/jsonutil"
	"mea/pkg/api"
)

// ToAPISpike converts a domain spike to the stable wire schema (v1).
func ToAPISpike(s spike.Spike) api.SpikeV1 {
	return api.SpikeV1{
		Electrode:   s.Electrode,
		Time:        s.Time,
		Amplitude:   s.Amplitude,
		Threshold:   s.Threshold,
		Conductance: s.Conductance,
	}
}

func toAPISpikes(list []spike.Spike) []api.SpikeV1 {
	out := make([]api.SpikeV1, 0, len(list))
	for _, s := range list {
		out = append(out, ToAPISpike(s))
	}
	return out
}

// WriteJSON writes a single JSON array of v1 spikes (pretty-indented).
func WriteJSON(w io.Writer, list []spike.Spike) error {
	return jsonutil.EncodePretty(w, toAPISpikes(list))
}
