package eq

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonora-labs/masterforge/internal/dsp"
)

func TestValidateRejectsTooManyBands(t *testing.T) {
	bands := make([]Band, MaxBands+1)
	for i := range bands {
		bands[i] = Band{FreqHz: 1000, GainDb: 1, Q: 1, Shape: Peak}
	}

	err := Settings{Bands: bands}.Validate(44100)
	assert.Error(t, err)
}

func TestValidateRejectsOutOfRangeGain(t *testing.T) {
	err := Settings{Bands: []Band{{FreqHz: 1000, GainDb: 100, Q: 1, Shape: Peak}}}.Validate(44100)
	assert.Error(t, err)
}

func TestProcessSkipsNoOpBands(t *testing.T) {
	in := [][]float64{{0.1, 0.2, 0.3, 0.4}}
	settings := Settings{Bands: []Band{{FreqHz: 1000, GainDb: 0.01, Q: 1, Shape: Peak}}}

	out, err := Process(in, settings, 44100)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestPeakBoostThenCutRoundTrips(t *testing.T) {
	n := 4096
	in := make([]float64, n)

	for i := range in {
		in[i] = math.Sin(2 * math.Pi * 440 * float64(i) / 44100)
	}

	settings := Settings{Bands: []Band{
		{FreqHz: 1000, GainDb: 6, Q: 1, Shape: Peak},
		{FreqHz: 1000, GainDb: -6, Q: 1, Shape: Peak},
	}}

	out, err := Process([][]float64{in}, settings, 44100)
	require.NoError(t, err)

	diff := make([]float64, n)
	for i := range diff {
		diff[i] = in[i] - out[0][i]
	}

	assert.Less(t, dsp.RMS(diff), 1e-3)
}
