// internal/runscli/options.go
package runscli

import (
	"errors"
	"flag"
	"fmt"

	"mea/internal/version"
)

// Options holds the run-browser flags.
type Options struct {
	DBPath string
	Limit  int
	RunID  string // when set, dump that run's spikes instead of listing
	Output string
	Header bool

	Version bool
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: browse persisted tagging runs

Version: %s

Usage of %s:
`, name, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	fs.StringVar(&opt.DBPath, "db", "", "SQLite database written by meatag --db [*]")
	fs.IntVar(&opt.Limit, "limit", 20, "max runs to list [20]")
	fs.StringVar(&opt.RunID, "run", "", "dump the spikes of one run by ID []")
	fs.StringVar(&opt.Output, "output", "tsv", "output format: tsv | csv | json | jsonl [tsv]")
	noHeader := false
	fs.BoolVar(&noHeader, "no-header", false, "suppress header line in tsv/csv [false]")

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
	opt.Header = !noHeader

	if opt.DBPath == "" {
		return opt, errors.New("--db is required")
	}
	if opt.Limit < 1 {
		return opt, errors.New("--limit must be ≥ 1")
	}
	switch opt.Output {
	case "tsv", "csv", "json", "jsonl":
	default:
		return opt, fmt.Errorf("invalid --output %q", opt.Output)
	}
	return opt, nil
}
