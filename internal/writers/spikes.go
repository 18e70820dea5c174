package writers

import (
	"encoding/json"
	"fmt"
	"io"

	"mea-core/spike"
	"mea/internal/jsonlutil"
	"mea/internal/output"
)

// StartSpikeWriter spins up a writer goroutine for tagged spike rows.
// Formats: csv, tsv, jsonl (streamed) and json (buffered, array output).
// The returned error channel yields exactly one value after the input
// channel is closed and drained.
func StartSpikeWriter(out io.Writer, format string, header bool, bufSize int) (chan<- spike.Spike, <-chan error) {
	if format == "jsonl" {
		return jsonlutil.Start(out, bufSize, func(enc *json.Encoder, s spike.Spike) error {
			return enc.Encode(output.ToAPISpike(s))
		}, IsBrokenPipe)
	}
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan spike.Spike, bufSize)
	errCh := make(chan error, 1)

	go func() {
		var err error
		switch format {
		case "json":
			var buf []spike.Spike
			for s := range in {
				buf = append(buf, s)
			}
			err = output.WriteJSON(out, buf)

		case "csv":
			err = output.StreamText(out, in, ',', header)

		case "tsv":
			err = output.StreamText(out, in, '\t', header)

		default:
			for range in {
			}
			err = fmt.Errorf("unsupported output %q", format)
		}
		errCh <- err
	}()

	return in, errCh
}
