// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"mea-core/conduct"
	"mea-core/sortpca"
	"mea/internal/cli"
	"mea/internal/logging"
	"mea/internal/pretty"
	"mea/internal/recordio"
	"mea/internal/spikeio"
	"mea/internal/store"
	"mea/internal/version"
	"mea/internal/writers"
)

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("meatag")
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		_, _ = cli.ParseArgs(fs, []string{"-h"})
		fs.SetOutput(outw)
		fs.Usage()
		if err := outw.Flush(); writers.IsBrokenPipe(err) {
			return 0
		} else if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 3
		}
		return 0
	}

	opts, err := cli.ParseArgs(fs, argv)
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
		_, _ = fmt.Fprintf(outw, "meatag version %s\n", version.Version)
		if e := outw.Flush(); writers.IsBrokenPipe(e) {
			return 0
		} else if e != nil {
			_, _ = fmt.Fprintln(stderr, e)
			return 3
		}
		return 0
	}

	logging.SetVerbosity(opts.Verbose, opts.Quiet)

	tbl, err := spikeio.ReadFile(opts.SpikesFile)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	logging.Debug("loaded spikes", "rows", tbl.Len(), "electrodes", tbl.NumGroups())

	if opts.RawFile != "" && !opts.NoSubsort {
		traces, err := recordio.ReadFile(opts.RawFile, opts.Channels, opts.SampleRate, opts.Calibration)
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 2
		}
		so := sortpca.Options{
			Low: opts.Low, High: opts.High, WindowLen: opts.WindowLen,
			Eps: opts.Eps, MinPts: opts.MinPoints,
		}
		if err := sortpca.SubSort(tbl, traces, so); err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 3
		}
		logging.Debug("sub-sorted units", "electrodes", tbl.NumGroups())
	}

	tagger := conduct.Tagger{
		Params:  conduct.Params{MinSep: opts.MinSep, MinEvents: opts.MinEvents, MaxJitter: opts.MaxJitter},
		Threads: opts.Threads,
	}
	flagged, err := tagger.Tag(parent, tbl)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}
	logging.Info("tagged conductance rows", "flagged", flagged, "rows", tbl.Len())

	if opts.Plate {
		_, _ = fmt.Fprint(stderr, pretty.RenderPlate(tbl))
	}

	rowCh, errCh := writers.StartSpikeWriter(outw, opts.Output, opts.Header, 64)
	for _, s := range tbl.Rows() {
		rowCh <- s
	}
	close(rowCh)
	if err := <-errCh; writers.IsBrokenPipe(err) {
		return 0
	} else if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}
	if err := outw.Flush(); writers.IsBrokenPipe(err) {
		return 0
	} else if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}

	if opts.DBPath != "" {
		st, err := store.Open(opts.DBPath)
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 3
		}
		defer st.Close()
		id, err := st.SaveRun(opts.SpikesFile, tagger.Params, tbl, flagged)
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 3
		}
		logging.Info("saved run", "id", id, "db", opts.DBPath)
	}
	return 0
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
