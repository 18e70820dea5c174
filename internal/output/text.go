// internal/output/text.go
package output

import (
	"bufio"
	"io"
	"strconv"

	"mea-core/spike"
)

// FormatRow renders one spike row with the given separator. Floats use the
// shortest representation that round-trips, so written tables reload exactly.
func FormatRow(s spike.Spike, sep byte) string {
	ss := string(sep)
	return s.Electrode + ss +
		formatFloat(s.Time) + ss +
		formatFloat(s.Amplitude) + ss +
		formatFloat(s.Threshold) + ss +
		strconv.FormatBool(s.Conductance)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// StreamText writes spikes from a channel as separated-value lines.
// On write error it keeps draining the channel so the producer never blocks.
func StreamText(w io.Writer, in <-chan spike.Spike, sep byte, header bool) error {
	bw := bufio.NewWriter(w)
	var err error
	if header {
		_, err = bw.WriteString(HeaderFor(sep) + "\n")
	}
	for s := range in {
		if err != nil {
			continue
		}
		_, err = bw.WriteString(FormatRow(s, sep) + "\n")
	}
	if err != nil {
		return err
	}
	return bw.Flush()
}

// WriteText writes a buffered slice of spikes.
func WriteText(w io.Writer, rows []spike.Spike, sep byte, header bool) error {
	bw := bufio.NewWriter(w)
	if header {
		if _, err := bw.WriteString(HeaderFor(sep) + "\n"); err != nil {
			return err
		}
	}
	for _, s := range rows {
		if _, err := bw.WriteString(FormatRow(s, sep) + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
