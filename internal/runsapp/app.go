// internal/runsapp/app.go
package runsapp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"

	"mea/internal/output"
	"mea/internal/runscli"
	"mea/internal/store"
	"mea/internal/version"
	"mea/internal/writers"
)

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := runscli.NewFlagSet("mearuns")
	fs.SetOutput(io.Discard)

	opts, err := runscli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(outw)
			fs.Usage()
			if e := outw.Flush(); writers.IsBrokenPipe(e) {
				return 0
			} else if e != nil {
				_, _ = fmt.Fprintln(stderr, e)
				return 3
			}
			return 0
		}
		_, _ = fmt.Fprintln(stderr, err)
		fs.SetOutput(outw)
		fs.Usage()
		if e := outw.Flush(); writers.IsBrokenPipe(e) {
			return 0
		} else if e != nil {
			_, _ = fmt.Fprintln(stderr, e)
			return 3
		}
		return 2
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "mearuns version %s\n", version.Version)
		if e := outw.Flush(); writers.IsBrokenPipe(e) {
			return 0
		} else if e != nil {
			_, _ = fmt.Fprintln(stderr, e)
			return 3
		}
		return 0
	}

	st, err := store.Open(opts.DBPath)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}
	defer st.Close()

	if opts.RunID != "" {
		spikes, err := st.RunSpikes(opts.RunID)
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 3
		}
		rowCh, errCh := writers.StartSpikeWriter(outw, opts.Output, opts.Header, 64)
		for _, s := range spikes {
			rowCh <- s
		}
		close(rowCh)
		if err := <-errCh; writers.IsBrokenPipe(err) {
			return 0
		} else if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 3
		}
	} else {
		runs, err := st.ListRuns(opts.Limit)
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 3
		}
		switch opts.Output {
		case "json":
			err = output.WriteRunsJSON(outw, runs)
		case "jsonl":
			enc := json.NewEncoder(outw)
			for _, r := range runs {
				if err = enc.Encode(output.ToAPIRun(r)); err != nil {
					break
				}
			}
		default:
			sep := byte('\t')
			if opts.Output == "csv" {
				sep = ','
			}
			err = output.WriteRunsText(outw, runs, sep, opts.Header)
		}
		if writers.IsBrokenPipe(err) {
			return 0
		} else if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 3
		}
	}

	if err := outw.Flush(); writers.IsBrokenPipe(err) {
		return 0
	} else if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}
	return 0
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
