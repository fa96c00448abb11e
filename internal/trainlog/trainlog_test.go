package trainlog

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/require"
)

func TestParseFlatSeries(t *testing.T) {
	l, err := Parse([]byte(`{
		"test_loss": [0.9, 0.7, 0.5],
		"gen_loss": [1.2, 1.0],
		"disc_loss": [0.8],
		"time": [12.5, 12.1, 11.9]
	}`))
	require.NoError(t, err)
	require.Equal(t, []float64{0.9, 0.7, 0.5}, l.TestLoss)
	require.Equal(t, []float64{1.2, 1.0}, l.GenLoss)
	require.Equal(t, []float64{0.8}, l.DiscLoss)
	require.Equal(t, []float64{12.5, 12.1, 11.9}, l.EpochTime)
}

func TestParseNestedSeriesKeepsLastValue(t *testing.T) {
	l, err := Parse([]byte(`{"gen_loss": [[3.0, 2.5, 2.0], [1.8, 1.5]]}`))
	require.NoError(t, err)
	require.Equal(t, []float64{2.0, 1.5}, l.GenLoss)
}

func TestParseMissingSeriesSkipped(t *testing.T) {
	l, err := Parse([]byte(`{"test_loss": [1.0]}`))
	require.NoError(t, err)
	require.Equal(t, []float64{1.0}, l.TestLoss)
	require.Nil(t, l.GenLoss)

	vals, ok := l.Get("gen_loss")
	require.True(t, ok)
	require.Empty(t, vals)
	_, ok = l.Get("nope")
	require.False(t, ok)
}

func TestParseMalformed(t *testing.T) {
	for name, in := range map[string]string{
		"not json":     "pickle",
		"wrong type":   `{"test_loss": "high"}`,
		"empty epoch":  `{"disc_loss": [[]]}`,
		"mixed nested": `{"gen_loss": [[1.0], "x"]}`,
	} {
		_, err := Parse([]byte(in))
		require.ErrorIs(t, err, ErrMalformedLog, name)
	}
}

func TestLoadZstd(t *testing.T) {
	var buf bytes.Buffer
	zw, err := zstd.NewWriter(&buf)
	require.NoError(t, err)
	_, err = zw.Write([]byte(`{"time": [1.0, 2.0]}`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	path := filepath.Join(t.TempDir(), "log.json.zst")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	l, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, []float64{1.0, 2.0}, l.EpochTime)
}
