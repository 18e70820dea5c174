package recordio

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"
)

func rawFrames(samples ...uint16) []byte {
	buf := make([]byte, 2*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint16(buf[2*i:], s)
	}
	return buf
}

func TestReadDeinterleavesAndCalibrates(t *testing.T) {
	// Two channels, three frames: ch0 = 0, +1, +2 counts; ch1 = -1, -2, -3.
	data := rawFrames(
		32768, 32767,
		32769, 32766,
		32770, 32765,
	)
	traces, err := Read(bytes.NewReader(data), []string{"a1", "b1"}, 20000, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	a1, b1 := traces["a1"], traces["b1"]
	if a1.Len() != 3 || b1.Len() != 3 {
		t.Fatalf("lengths = %d,%d, want 3,3", a1.Len(), b1.Len())
	}
	wantA := []float64{0, 0.5, 1.0}
	wantB := []float64{-0.5, -1.0, -1.5}
	for i := range wantA {
		if a1.Values[i] != wantA[i] {
			t.Errorf("a1[%d] = %g, want %g", i, a1.Values[i], wantA[i])
		}
		if b1.Values[i] != wantB[i] {
			t.Errorf("b1[%d] = %g, want %g", i, b1.Values[i], wantB[i])
		}
	}
	if dt := a1.Times[1] - a1.Times[0]; math.Abs(dt-1.0/20000) > 1e-12 {
		t.Errorf("sample spacing = %g, want %g", dt, 1.0/20000)
	}
}

func TestReadErrors(t *testing.T) {
	cases := []struct {
		name     string
		data     []byte
		channels []string
	}{
		{"no channels", rawFrames(32768), nil},
		{"odd byte count", []byte{0x01}, []string{"a1"}},
		{"partial frame", rawFrames(32768, 32768, 32768), []string{"a1", "b1"}},
		{"duplicate channel", rawFrames(32768, 32768), []string{"a1", "a1"}},
	}
	for _, c := range cases {
		if _, err := Read(bytes.NewReader(c.data), c.channels, 20000, 0.5); err == nil {
			t.Errorf("%s: expected error", c.name)
		}
	}
}
