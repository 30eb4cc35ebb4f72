package dynamics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/sonora-labs/masterforge/internal/dsp"
)

func TestLimitRespectsCeiling(t *testing.T) {
	settings := LimiterSettings{CeilingDb: -1.0, ReleaseSec: 0.05}

	in := make([]float64, 4410)
	for i := range in {
		in[i] = math.Sin(2 * math.Pi * 1000 * float64(i) / 44100)
	}

	out, err := Limit(in, settings, 44100)
	require.NoError(t, err)

	ceilingLin := dsp.DbToLinear(settings.CeilingDb)

	for _, v := range out {
		assert.LessOrEqual(t, math.Abs(v), ceilingLin+1e-9)
	}
}

func TestLimitPropertyNeverExceedsCeiling(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ceilingDb := rapid.Float64Range(-12, 0).Draw(t, "ceiling")
		settings := LimiterSettings{CeilingDb: ceilingDb, ReleaseSec: 0.05}

		n := rapid.IntRange(16, 512).Draw(t, "n")
		in := make([]float64, n)

		for i := range in {
			in[i] = rapid.Float64Range(-2, 2).Draw(t, "sample")
		}

		out, err := Limit(in, settings, 44100)
		require.NoError(t, err)

		ceilingLin := dsp.DbToLinear(ceilingDb)

		for _, v := range out {
			assert.LessOrEqual(t, math.Abs(v), ceilingLin+1e-9)
		}
	})
}

func TestLimitRejectsInvalidSettings(t *testing.T) {
	_, err := Limit([]float64{0.1}, LimiterSettings{CeilingDb: 1}, 44100)
	assert.Error(t, err)
}
