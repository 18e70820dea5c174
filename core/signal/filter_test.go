package signal

import (
	"math"
	"testing"
)

func constSeries(n int, v, fs float64) Series {
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = v
	}
	return New(vals, fs)
}

func TestBandpassPreservesLengthAndIndex(t *testing.T) {
	s := New(sine(4000, 1000, 20000), 20000)
	out, err := Bandpass(s, 200, 4000)
	if err != nil {
		t.Fatal(err)
	}
	if out.Len() != s.Len() {
		t.Fatalf("length changed: %d != %d", out.Len(), s.Len())
	}
	for i := range s.Times {
		if out.Times[i] != s.Times[i] {
			t.Fatalf("time index changed at %d", i)
		}
	}
}

func TestBandpassKeepsPassband(t *testing.T) {
	// 1 kHz sits inside the 200-4000 Hz band; amplitude should survive.
	s := New(sine(4000, 1000, 20000), 20000)
	out, err := Bandpass(s, 200, 4000)
	if err != nil {
		t.Fatal(err)
	}
	ratio := rms(out.Values[1000:3000]) / rms(s.Values[1000:3000])
	if ratio < 0.7 || ratio > 1.1 {
		t.Fatalf("passband RMS ratio = %g", ratio)
	}
}

func TestBandpassRejectsDC(t *testing.T) {
	s := constSeries(4000, 1.0, 20000)
	out, err := Bandpass(s, 200, 4000)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1000; i < 3000; i++ {
		if math.Abs(out.Values[i]) > 0.05 {
			t.Fatalf("DC leaked through bandpass: %g at %d", out.Values[i], i)
		}
	}
}

func TestLowpassOnlyBelowPoint1Hz(t *testing.T) {
	// low < 0.1 selects a pure lowpass, which passes DC unchanged.
	s := constSeries(1000, 1.0, 1000)
	out, err := Bandpass(s, 0, 200)
	if err != nil {
		t.Fatal(err)
	}
	for i := 400; i < 600; i++ {
		if math.Abs(out.Values[i]-1) > 1e-3 {
			t.Fatalf("lowpass altered DC: %g at %d", out.Values[i], i)
		}
	}
}

func TestHighpassOnlyAbove10kHz(t *testing.T) {
	// high > 10000 selects a pure highpass, which removes DC.
	s := constSeries(1000, 1.0, 1000)
	out, err := Bandpass(s, 200, 20000)
	if err != nil {
		t.Fatal(err)
	}
	for i := 400; i < 600; i++ {
		if math.Abs(out.Values[i]) > 1e-3 {
			t.Fatalf("highpass kept DC: %g at %d", out.Values[i], i)
		}
	}
}

func TestBandpassShortSeries(t *testing.T) {
	if _, err := Bandpass(New([]float64{1}, 1000), 200, 4000); err == nil {
		t.Fatal("expected error for single-sample series")
	}
}

func TestBandpassEdgeAtNyquist(t *testing.T) {
	// Nyquist is 500 Hz here; both edges are invalid.
	s := constSeries(100, 0, 1000)
	if _, err := Bandpass(s, 200, 600); err == nil {
		t.Fatal("expected error for edge above Nyquist")
	}
	if _, err := Bandpass(s, 0, 500); err == nil {
		t.Fatal("expected error for lowpass cutoff at Nyquist")
	}
}

func TestZeroPhase(t *testing.T) {
	// A symmetric pulse must keep its peak position after zero-phase
	// filtering.
	vals := make([]float64, 2000)
	for i := range vals {
		d := float64(i - 1000)
		vals[i] = math.Exp(-d * d / 50)
	}
	s := New(vals, 20000)
	out, err := Bandpass(s, 200, 4000)
	if err != nil {
		t.Fatal(err)
	}
	peak := 0
	for i, v := range out.Values {
		if v > out.Values[peak] {
			peak = i
		}
	}
	if peak < 995 || peak > 1005 {
		t.Fatalf("peak shifted to %d", peak)
	}
}

func sine(n int, freq, fs float64) []float64 {
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = math.Sin(2 * math.Pi * freq * float64(i) / fs)
	}
	return vals
}

func rms(x []float64) float64 {
	s := 0.0
	for _, v := range x {
		s += v * v
	}
	return math.Sqrt(s / float64(len(x)))
}
