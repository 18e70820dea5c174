package integration

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"mea/internal/app"
	"mea/internal/runsapp"
	"mea/internal/store"
	"mea/pkg/api"
)

// lockstepCSV renders n cofiring a1/b1 pairs plus an isolated a1 spike.
// The a1 member always has the larger amplitude, so b1 rows get flagged
// once n exceeds the event threshold.
func lockstepCSV(n int) string {
	var b strings.Builder
	b.WriteString("electrode,time,amplitude,threshold\n")
	for i := 0; i < n; i++ {
		base := 0.5 * float64(i+1)
		jitter := 0.00005
		if i%2 == 1 {
			jitter = -0.00005
		}
		b.WriteString("a1," + strconv.FormatFloat(base, 'g', -1, 64) + ",-20,-15\n")
		b.WriteString("b1," + strconv.FormatFloat(base+0.001+jitter, 'g', -1, 64) + ",-8,-6\n")
	}
	b.WriteString("a1,100,-20,-15\n")
	return b.String()
}

func writeSpikes(t *testing.T, n int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "spikes.csv")
	if err := os.WriteFile(path, []byte(lockstepCSV(n)), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestTagCSVEndToEnd(t *testing.T) {
	path := writeSpikes(t, 31)
	var out, errb bytes.Buffer

	code := app.Run([]string{"--spikes", path, "--output", "csv", "--quiet"}, &out, &errb)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, errb.String())
	}

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 1+63 {
		t.Fatalf("line count = %d, want 64", len(lines))
	}
	if lines[0] != "electrode,time,amplitude,threshold,conductance" {
		t.Fatalf("header = %q", lines[0])
	}
	flagged := 0
	for _, line := range lines[1:] {
		fields := strings.Split(line, ",")
		if fields[len(fields)-1] == "true" {
			flagged++
			if fields[0] != "b1" {
				t.Errorf("flagged row on %s, want b1 only: %q", fields[0], line)
			}
		}
	}
	if flagged != 31 {
		t.Fatalf("flagged rows = %d, want 31", flagged)
	}
}

func TestTagBelowThresholdKeepsAllRows(t *testing.T) {
	path := writeSpikes(t, 29)
	var out, errb bytes.Buffer

	code := app.Run([]string{"--spikes", path, "--quiet"}, &out, &errb)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, errb.String())
	}
	if strings.Contains(out.String(), "true") {
		t.Fatal("no rows should be flagged below the event threshold")
	}
}

func TestTagJSONOutput(t *testing.T) {
	path := writeSpikes(t, 31)
	var out, errb bytes.Buffer

	code := app.Run([]string{"--spikes", path, "--output", "json", "--quiet"}, &out, &errb)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, errb.String())
	}
	var rows []api.SpikeV1
	if err := json.Unmarshal(out.Bytes(), &rows); err != nil {
		t.Fatal(err)
	}
	if len(rows) != 63 {
		t.Fatalf("row count = %d, want 63", len(rows))
	}
}

func TestTagPersistsRun(t *testing.T) {
	path := writeSpikes(t, 31)
	db := filepath.Join(t.TempDir(), "runs.db")
	var out, errb bytes.Buffer

	code := app.Run([]string{"--spikes", path, "--db", db, "--quiet"}, &out, &errb)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, errb.String())
	}

	st, err := store.Open(db)
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()
	runs, err := st.ListRuns(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("run count = %d, want 1", len(runs))
	}
	if runs[0].Spikes != 63 || runs[0].Flagged != 31 {
		t.Fatalf("run = %+v", runs[0])
	}
}

func TestRunsListAndDump(t *testing.T) {
	path := writeSpikes(t, 31)
	db := filepath.Join(t.TempDir(), "runs.db")
	var out, errb bytes.Buffer

	if code := app.Run([]string{"--spikes", path, "--db", db, "--quiet"}, &out, &errb); code != 0 {
		t.Fatalf("meatag exit code = %d, stderr: %s", code, errb.String())
	}

	out.Reset()
	errb.Reset()
	if code := runsapp.Run([]string{"--db", db}, &out, &errb); code != 0 {
		t.Fatalf("mearuns exit code = %d, stderr: %s", code, errb.String())
	}
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("listing lines = %d, want header + 1 run", len(lines))
	}
	id := strings.Split(lines[1], "\t")[0]

	out.Reset()
	errb.Reset()
	if code := runsapp.Run([]string{"--db", db, "--run", id, "--output", "json"}, &out, &errb); code != 0 {
		t.Fatalf("dump exit code = %d, stderr: %s", code, errb.String())
	}
	var rows []api.SpikeV1
	if err := json.Unmarshal(out.Bytes(), &rows); err != nil {
		t.Fatal(err)
	}
	if len(rows) != 63 {
		t.Fatalf("dumped rows = %d, want 63", len(rows))
	}
}

func TestSubSortFromRaw(t *testing.T) {
	dir := t.TempDir()

	// Flat two-channel recording: every waveform is identical, so each
	// electrode with enough spikes collapses into sub-cluster 0.
	frames := 20000
	raw := make([]byte, 0, 4*frames)
	for i := 0; i < 2*frames; i++ {
		raw = append(raw, 0x00, 0x80) // 32768 -> 0 after calibration
	}
	rawPath := filepath.Join(dir, "rec.bin")
	if err := os.WriteFile(rawPath, raw, 0o644); err != nil {
		t.Fatal(err)
	}

	csv := "electrode,time,amplitude,threshold\n" +
		"a1,0.1,-12,-9\na1,0.2,-11,-9\na1,0.3,-13,-9\na1,0.4,-12,-9\n" +
		"b1,0.15,-8,-6\nb1,0.25,-8,-6\n"
	spikesPath := filepath.Join(dir, "spikes.csv")
	if err := os.WriteFile(spikesPath, []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}

	var out, errb bytes.Buffer
	code := app.Run([]string{
		"--spikes", spikesPath,
		"--raw", rawPath, "--channels", "a1,b1",
		"--output", "csv", "--quiet",
	}, &out, &errb)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, errb.String())
	}

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 7 {
		t.Fatalf("line count = %d, want 7", len(lines))
	}
	for _, line := range lines[1:5] {
		if !strings.HasPrefix(line, "a1.0,") {
			t.Errorf("a1 spike not retagged to a1.0: %q", line)
		}
	}
	// Two b1 spikes are below the cluster threshold and become noise.
	for _, line := range lines[5:] {
		if !strings.HasPrefix(line, "b1.-1,") {
			t.Errorf("b1 spike not retagged to b1.-1: %q", line)
		}
	}
}

func TestUsageAndBadFlags(t *testing.T) {
	var out, errb bytes.Buffer
	if code := app.Run(nil, &out, &errb); code != 0 {
		t.Fatalf("no-arg exit code = %d", code)
	}
	if !strings.Contains(out.String(), "Usage of meatag") {
		t.Fatalf("usage missing: %q", out.String())
	}

	out.Reset()
	errb.Reset()
	if code := app.Run([]string{"--nope"}, &out, &errb); code != 2 {
		t.Fatalf("bad-flag exit code = %d, want 2", code)
	}

	out.Reset()
	errb.Reset()
	if code := app.Run([]string{"--spikes", "does-not-exist.csv", "--quiet"}, &out, &errb); code != 2 {
		t.Fatalf("missing-file exit code = %d, want 2", code)
	}
}

func TestVersionFlag(t *testing.T) {
	var out, errb bytes.Buffer
	if code := app.Run([]string{"--version"}, &out, &errb); code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.HasPrefix(out.String(), "meatag version ") {
		t.Fatalf("version output = %q", out.String())
	}
}
