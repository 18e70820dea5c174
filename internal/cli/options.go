// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"mea-core/conduct"
	"mea-core/sortpca"
	"mea/internal/recordio"
	"mea/internal/version"
)

// Options holds all CLI flags and arguments.
type Options struct {
	// Input
	SpikesFile  string
	RawFile     string
	Channels    []string
	SampleRate  float64
	Calibration float64

	// Sub-sorting
	Low       float64
	High      float64
	WindowLen float64
	Eps       float64
	MinPoints int
	NoSubsort bool

	// Conductance tagging
	MinSep    float64
	MinEvents int
	MaxJitter float64

	// Performance
	Threads int

	// Output
	Output string
	Header bool // true unless --no-header
	Plate  bool
	DBPath string

	Verbose bool
	Quiet   bool
	Version bool
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: conductance-artifact tagging for MEA spike recordings

Version: %s

Usage of %s:
`, name, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}

// Parse is the top-level call for CLI parsing.
func Parse() (Options, error) { return ParseArgs(flag.CommandLine, nil) }

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	so := sortpca.DefaultOptions()
	cp := conduct.DefaultParams()

	// Input
	fs.StringVar(&opt.SpikesFile, "spikes", "", "spike CSV file (electrode,time,amplitude,threshold[,conductance]) [*]")
	fs.StringVar(&opt.RawFile, "raw", "", "raw binary recording for waveform sub-sorting []")
	var chans stringSlice
	fs.Var(&chans, "channels", "electrode tag per raw channel, in file order (repeatable or comma-separated) []")
	fs.Float64Var(&opt.SampleRate, "sample-rate", recordio.DefaultSampleRate, "raw recording sample rate in Hz [20000]")
	fs.Float64Var(&opt.Calibration, "calibration", recordio.DefaultCalibration, "raw sample calibration in uV/count [0.0610]")

	// Sub-sorting
	fs.Float64Var(&opt.Low, "low", so.Low, "bandpass low cutoff in Hz (<0.1 = lowpass only) [200]")
	fs.Float64Var(&opt.High, "high", so.High, "bandpass high cutoff in Hz (>10000 = highpass only) [4000]")
	fs.Float64Var(&opt.WindowLen, "window", so.WindowLen, "waveform window length in seconds [0.003]")
	fs.Float64Var(&opt.Eps, "eps", so.Eps, "DBSCAN neighborhood radius in PCA space [30]")
	fs.IntVar(&opt.MinPoints, "min-points", so.MinPts, "DBSCAN core-point threshold [3]")
	fs.BoolVar(&opt.NoSubsort, "no-subsort", false, "skip waveform sub-sorting even when --raw is given [false]")

	// Conductance tagging
	fs.Float64Var(&opt.MinSep, "min-sep", cp.MinSep, "max spacing within a cofiring event in seconds [0.0012]")
	fs.IntVar(&opt.MinEvents, "min-events", cp.MinEvents, "event count an artifact pair must exceed [30]")
	fs.Float64Var(&opt.MaxJitter, "max-jitter", cp.MaxJitter, "max time-difference stddev in ms for artifact pairs [0.3]")

	// Performance
	fs.IntVar(&opt.Threads, "threads", 0, "number of worker threads (0 = all CPUs) [0]")

	// Output
	fs.StringVar(&opt.Output, "output", "tsv", "output format: tsv | csv | json | jsonl [tsv]")
	fs.BoolVar(&opt.Plate, "plate", false, "draw an ASCII plate map on stderr after tagging [false]")
	noHeader := false
	fs.BoolVar(&noHeader, "no-header", false, "suppress header line in tsv/csv [false]")
	fs.StringVar(&opt.DBPath, "db", "", "SQLite database to persist the run []")

	fs.BoolVar(&opt.Verbose, "verbose", false, "log debug detail to stderr [false]")
	fs.BoolVar(&opt.Quiet, "quiet", false, "log errors only [false]")
	fs.BoolVar(&opt.Version, "v", false, "print version and exit (shorthand) [false]")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}
	opt.Channels = chans
	opt.Header = !noHeader

	// Validation
	if opt.SpikesFile == "" {
		return opt, errors.New("--spikes is required")
	}
	if opt.RawFile != "" && len(opt.Channels) == 0 {
		return opt, errors.New("--raw requires --channels")
	}
	if opt.RawFile == "" && len(opt.Channels) > 0 {
		return opt, errors.New("--channels requires --raw")
	}
	if opt.SampleRate <= 0 {
		return opt, errors.New("--sample-rate must be > 0")
	}
	if opt.Calibration <= 0 {
		return opt, errors.New("--calibration must be > 0")
	}
	if opt.Low < 0 || opt.High <= 0 {
		return opt, errors.New("--low must be ≥ 0 and --high > 0")
	}
	if opt.WindowLen <= 0 {
		return opt, errors.New("--window must be > 0")
	}
	if opt.Eps <= 0 {
		return opt, errors.New("--eps must be > 0")
	}
	if opt.MinPoints < 1 {
		return opt, errors.New("--min-points must be ≥ 1")
	}
	if opt.MinSep <= 0 {
		return opt, errors.New("--min-sep must be > 0")
	}
	if opt.MinEvents < 0 {
		return opt, errors.New("--min-events must be ≥ 0")
	}
	if opt.MaxJitter <= 0 {
		return opt, errors.New("--max-jitter must be > 0")
	}
	if opt.Threads < 0 {
		return opt, errors.New("--threads must be ≥ 0")
	}
	switch opt.Output {
	case "tsv", "csv", "json", "jsonl":
	default:
		return opt, fmt.Errorf("invalid --output %q", opt.Output)
	}
	if opt.Verbose && opt.Quiet {
		return opt, errors.New("--verbose conflicts with --quiet")
	}
	return opt, nil
}

// stringSlice allows repeatable, comma-separated string flags.
type stringSlice []string

func (s *stringSlice) String() string { return strings.Join(*s, ",") }
func (s *stringSlice) Set(v string) error {
	for _, part := range strings.Split(v, ",") {
		if part != "" {
			*s = append(*s, part)
		}
	}
	return nil
}
