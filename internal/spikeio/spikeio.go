// Package spikeio reads and writes spike tables as CSV.
//
// The canonical layout is five columns with a header row:
// electrode,time,amplitude,threshold,conductance. Legacy four-column
// tables without the conductance column are accepted on read.
package spikeio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"mea-core/spike"
)

// ReadFile loads a spike table from a CSV file.
func ReadFile(path string) (*spike.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Read parses a spike table from CSV. Columns are located by header name,
// so extra columns and reordered columns are tolerated.
func Read(r io.Reader) (*spike.Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("spike csv: empty input")
	}
	if err != nil {
		return nil, fmt.Errorf("spike csv: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	for _, name := range []string{"electrode", "time", "amplitude", "threshold"} {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("spike csv: missing column %q", name)
		}
	}
	condCol, hasCond := col["conductance"]

	t := spike.NewTable(nil)
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("spike csv: %w", err)
		}

		var s spike.Spike
		s.Electrode = rec[col["electrode"]]
		if s.Time, err = parseField(rec, col["time"], line, "time"); err != nil {
			return nil, err
		}
		if s.Amplitude, err = parseField(rec, col["amplitude"], line, "amplitude"); err != nil {
			return nil, err
		}
		if s.Threshold, err = parseField(rec, col["threshold"], line, "threshold"); err != nil {
			return nil, err
		}
		if hasCond {
			v, err := strconv.ParseBool(rec[condCol])
			if err != nil {
				return nil, fmt.Errorf("spike csv: line %d: bad conductance %q", line, rec[condCol])
			}
			s.Conductance = v
		}
		t.Append(s)
	}
	return t, nil
}

func parseField(rec []string, i, line int, name string) (float64, error) {
	v, err := strconv.ParseFloat(rec[i], 64)
	if err != nil {
		return 0, fmt.Errorf("spike csv: line %d: bad %s %q", line, name, rec[i])
	}
	return v, nil
}

// WriteFile saves a spike table to a CSV file.
func WriteFile(path string, t *spike.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, t); err != nil {
		_ = f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}

// Write emits the table as CSV. Floats use the shortest representation
// that round-trips, so Write followed by Read reproduces the table exactly.
func Write(w io.Writer, t *spike.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"electrode", "time", "amplitude", "threshold", "conductance"}); err != nil {
		return err
	}
	for _, s := range t.Rows() {
		rec := []string{
			s.Electrode,
			strconv.FormatFloat(s.Time, 'g', -1, 64),
			strconv.FormatFloat(s.Amplitude, 'g', -1, 64),
			strconv.FormatFloat(s.Threshold, 'g', -1, 64),
			strconv.FormatBool(s.Conductance),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
