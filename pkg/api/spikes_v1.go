// pkg/api/spikes_v1.go
package api

// SpikeV1 is the stable JSON schema for tagged spike rows.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type SpikeV1 struct {
	Electrode   string  `json:"electrode"`
	Time        float64 `json:"time"`
	Amplitude   float64 `json:"amplitude"`
	Threshold   float64 `json:"threshold"`
	Conductance bool    `json:"conductance,omitempty"`
}

// RunV1 is the stable schema for persisted analysis runs.
type RunV1 struct {
	ID        string  `json:"id"`
	Source    string  `json:"source"`
	MinSep    float64 `json:"min_sep"`
	MinEvents int     `json:"min_events"`
	MaxJitter float64 `json:"max_jitter"`
	Spikes    int     `json:"spikes"`
	Flagged   int     `json:"flagged"`
	CreatedAt string  `json:"created_at"`
}
