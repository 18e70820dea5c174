// internal/output/runs.go
package output

import (
	"bufio"
	"io"
	"strconv"
	"time"

	"mea/internal/jsonutil"
	"mea/internal/store"
	"mea/pkg/api"
)

// ToAPIRun converts a stored run to the stable wire schema (v1).
func ToAPIRun(r store.Run) api.RunV1 {
	return api.RunV1{
		ID:        r.ID,
		Source:    r.Source,
		MinSep:    r.MinSep,
		MinEvents: r.MinEvents,
		MaxJitter: r.MaxJitter,
		Spikes:    r.Spikes,
		Flagged:   r.Flagged,
		CreatedAt: r.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// WriteRunsText prints one separated-value line per run.
func WriteRunsText(w io.Writer, runs []store.Run, sep byte, header bool) error {
	bw := bufio.NewWriter(w)
	if header {
		if _, err := bw.WriteString(RunsHeaderFor(sep) + "\n"); err != nil {
			return err
		}
	}
	ss := string(sep)
	for _, r := range runs {
		line := r.ID + ss + r.Source + ss +
			formatFloat(r.MinSep) + ss +
			strconv.Itoa(r.MinEvents) + ss +
			formatFloat(r.MaxJitter) + ss +
			strconv.Itoa(r.Spikes) + ss +
			strconv.Itoa(r.Flagged) + ss +
			r.CreatedAt.UTC().Format(time.RFC3339)
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteRunsJSON writes a JSON array of v1 runs.
func WriteRunsJSON(w io.Writer, runs []store.Run) error {
	out := make([]api.RunV1, 0, len(runs))
	for _, r := range runs {
		out = append(out, ToAPIRun(r))
	}
	return jsonutil.EncodePretty(w, out)
}
