package stereo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func monoAsStereo(n int, gen func(i int) float64) [][]float64 {
	l := make([]float64, n)
	r := make([]float64, n)

	for i := 0; i < n; i++ {
		v := gen(i)
		l[i] = v
		r[i] = v
	}

	return [][]float64{l, r}
}

func TestMonoInputUnityWidthYieldsIdenticalChannels(t *testing.T) {
	channels := monoAsStereo(512, func(i int) float64 { return math.Sin(float64(i) * 0.05) })

	out, err := Process(channels, Settings{Width: 1}, 44100)
	require.NoError(t, err)

	for i := range out[0] {
		assert.InDelta(t, out[0][i], out[1][i], 1e-9)
	}
}

func TestWidthZeroFoldsToMono(t *testing.T) {
	l := []float64{0.5, -0.3, 0.1, 0.9}
	r := []float64{0.1, 0.2, -0.4, -0.1}

	out, err := Process([][]float64{l, r}, Settings{Width: 0}, 44100)
	require.NoError(t, err)

	for i := range out[0] {
		assert.Less(t, math.Abs(out[0][i]-out[1][i]), 1e-9)
	}
}

func TestProcessRejectsNegativeWidth(t *testing.T) {
	_, err := Process([][]float64{{0.1}, {0.1}}, Settings{Width: -1}, 44100)
	assert.Error(t, err)
}

func TestProcessPassesThroughMonoBuffer(t *testing.T) {
	in := [][]float64{{0.1, 0.2, 0.3}}

	out, err := Process(in, Settings{Width: 1}, 44100)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestWidthZeroFoldsToMonoProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(4, 128).Draw(t, "n")

		l := make([]float64, n)
		r := make([]float64, n)

		for i := 0; i < n; i++ {
			l[i] = rapid.Float64Range(-1, 1).Draw(t, "l")
			r[i] = rapid.Float64Range(-1, 1).Draw(t, "r")
		}

		out, err := Process([][]float64{l, r}, Settings{Width: 0}, 44100)
		require.NoError(t, err)

		for i := range out[0] {
			assert.Less(t, math.Abs(out[0][i]-out[1][i]), 1e-9)
		}
	})
}
