// Package trainlog reads the per-epoch training log emitted by the generator
// training run. The log is a JSON object with one array per tracked series;
// an epoch entry may be a scalar or a list of intermediate values, in which
// case the final value of the epoch is kept.
package trainlog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/klauspost/compress/zstd"
)

// ErrMalformedLog reports a log file that could not be parsed.
var ErrMalformedLog = errors.New("trainlog: malformed log")

// Series names the tracked log series in plot order.
var Series = []string{"test_loss", "gen_loss", "disc_loss", "time"}

// Titles maps each series to its plot title.
var Titles = map[string]string{
	"test_loss": "Test Loss",
	"gen_loss":  "Generator Loss",
	"disc_loss": "Discriminator Loss",
	"time":      "Time per Epoch",
}

// Log holds one value per epoch for each tracked series.
type Log struct {
	TestLoss  []float64
	GenLoss   []float64
	DiscLoss  []float64
	EpochTime []float64
}

// Get returns the values of a named series.
func (l *Log) Get(series string) ([]float64, bool) {
	switch series {
	case "test_loss":
		return l.TestLoss, true
	case "gen_loss":
		return l.GenLoss, true
	case "disc_loss":
		return l.DiscLoss, true
	case "time":
		return l.EpochTime, true
	}
	return nil, false
}

// Load reads a training log from path. Files with a .zst suffix are
// decompressed transparently.
func Load(path string) (*Log, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var src io.Reader = f
	if strings.HasSuffix(path, ".zst") {
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("%w: zstd %s: %v", ErrMalformedLog, path, err)
		}
		defer zr.Close()
		src = zr
	}

	raw, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	l, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

// Parse decodes a training log from JSON.
func Parse(data []byte) (*Log, error) {
	var raw struct {
		TestLoss  json.RawMessage `json:"test_loss"`
		GenLoss   json.RawMessage `json:"gen_loss"`
		DiscLoss  json.RawMessage `json:"disc_loss"`
		EpochTime json.RawMessage `json:"time"`
	}
	if err := sonic.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedLog, err)
	}

	l := &Log{}
	for _, s := range []struct {
		name string
		raw  json.RawMessage
		dst  *[]float64
	}{
		{"test_loss", raw.TestLoss, &l.TestLoss},
		{"gen_loss", raw.GenLoss, &l.GenLoss},
		{"disc_loss", raw.DiscLoss, &l.DiscLoss},
		{"time", raw.EpochTime, &l.EpochTime},
	} {
		if len(s.raw) == 0 {
			continue
		}
		vals, err := parseSeries(s.raw)
		if err != nil {
			return nil, fmt.Errorf("series %q: %w", s.name, err)
		}
		*s.dst = vals
	}
	return l, nil
}

// parseSeries accepts either a flat array of epoch values or an array of
// per-epoch lists, keeping the last value of each list.
func parseSeries(raw json.RawMessage) ([]float64, error) {
	var flat []float64
	if err := sonic.Unmarshal(raw, &flat); err == nil {
		return flat, nil
	}
	var nested [][]float64
	if err := sonic.Unmarshal(raw, &nested); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedLog, err)
	}
	vals := make([]float64, len(nested))
	for i, epoch := range nested {
		if len(epoch) == 0 {
			return nil, fmt.Errorf("%w: epoch %d is empty", ErrMalformedLog, i)
		}
		vals[i] = epoch[len(epoch)-1]
	}
	return vals, nil
}
