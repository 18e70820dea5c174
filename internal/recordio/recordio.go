// Package recordio decodes raw MEA recordings: 16-bit unsigned
// little-endian samples interleaved frame by frame across channels.
package recordio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"mea-core/signal"
)

// Acquisition defaults for the supported amplifier.
const (
	DefaultSampleRate  = 20000.0
	DefaultCalibration = 0.0610
)

var errNoChannels = errors.New("raw recording: no channels given")

// ReadFile decodes a raw recording into calibrated per-channel series.
func ReadFile(path string, channels []string, sampleRate, cal float64) (map[string]signal.Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	traces, err := Read(f, channels, sampleRate, cal)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return traces, nil
}

// Read decodes interleaved uint16 samples. Sample k of channel i sits at
// frame k offset i; the calibrated value is (raw-32768)*cal.
func Read(r io.Reader, channels []string, sampleRate, cal float64) (map[string]signal.Series, error) {
	if len(channels) == 0 {
		return nil, errNoChannels
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(data)%2 != 0 {
		return nil, fmt.Errorf("raw recording: odd byte count %d", len(data))
	}
	total := len(data) / 2
	if total%len(channels) != 0 {
		return nil, fmt.Errorf("raw recording: %d samples do not fill %d channels", total, len(channels))
	}
	frames := total / len(channels)

	values := make([][]float64, len(channels))
	for i := range values {
		values[i] = make([]float64, frames)
	}
	for k := 0; k < total; k++ {
		raw := binary.LittleEndian.Uint16(data[2*k:])
		values[k%len(channels)][k/len(channels)] = (float64(raw) - 32768.0) * cal
	}

	traces := make(map[string]signal.Series, len(channels))
	for i, tag := range channels {
		if _, dup := traces[tag]; dup {
			return nil, fmt.Errorf("raw recording: duplicate channel %q", tag)
		}
		traces[tag] = signal.New(values[i], sampleRate)
	}
	return traces, nil
}
