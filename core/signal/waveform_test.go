package signal

import "testing"

func TestExtractWaveformFullWindow(t *testing.T) {
	// dt = 0.0001 s, windowLen = 0.003 s -> span 15, full window 30 samples.
	vals := make([]float64, 1000)
	for i := range vals {
		vals[i] = float64(i)
	}
	s := New(vals, 10000)

	waves, err := ExtractWaveforms(s, []float64{0.05003}, 0.003)
	if err != nil {
		t.Fatal(err)
	}
	if len(waves) != 1 {
		t.Fatalf("got %d waveforms, want 1", len(waves))
	}
	if len(waves[0]) != 30 {
		t.Fatalf("waveform length = %d, want 30", len(waves[0]))
	}
	// Centered on sample 500: spans [485, 515).
	if waves[0][0] != 485 || waves[0][29] != 514 {
		t.Fatalf("window misplaced: first=%g last=%g", waves[0][0], waves[0][29])
	}
}

func TestExtractWaveformTruncatedAtBoundaries(t *testing.T) {
	vals := make([]float64, 100)
	s := New(vals, 10000)

	// Spike near t=0: left half of the window is cut off, not padded.
	waves, err := ExtractWaveforms(s, []float64{0.00055, 0.00985}, 0.003)
	if err != nil {
		t.Fatal(err)
	}
	if got := len(waves[0]); got != 20 {
		t.Errorf("left-truncated length = %d, want 20", got)
	}
	if got := len(waves[1]); got != 17 {
		t.Errorf("right-truncated length = %d, want 17", got)
	}
	for _, w := range waves {
		if len(w) > 30 {
			t.Fatalf("waveform longer than full window: %d", len(w))
		}
	}
}

func TestExtractWaveformShortSeries(t *testing.T) {
	if _, err := ExtractWaveforms(New([]float64{1}, 1000), []float64{0}, 0.003); err == nil {
		t.Fatal("expected error for single-sample series")
	}
}
