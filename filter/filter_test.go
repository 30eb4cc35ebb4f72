package filter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/sonora-labs/masterforge/biquad"
	"github.com/sonora-labs/masterforge/internal/dsp"
)

func TestRunCausalIdentityPassesThrough(t *testing.T) {
	in := []float64{0.1, -0.2, 0.3, 0.5, -0.9}

	out, err := RunCausal(biquad.Identity(), in)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestRunZeroPhaseIdentityPassesThrough(t *testing.T) {
	in := make([]float64, 256)
	for i := range in {
		in[i] = math.Sin(float64(i) * 0.1)
	}

	out, err := RunZeroPhase(biquad.Identity(), in)
	require.NoError(t, err)
	require.Len(t, out, len(in))

	for i := range in {
		assert.InDelta(t, in[i], out[i], 1e-9)
	}
}

func TestRunZeroPhaseRejectsNonFiniteCoefficients(t *testing.T) {
	bad := biquad.Coefficients{B0: math.NaN()}

	_, err := RunZeroPhase(bad, []float64{1, 2, 3})
	assert.Error(t, err)
}

func TestRunZeroPhasePeakBoostThenCutRoundTrips(t *testing.T) {
	in := make([]float64, 4096)
	for i := range in {
		in[i] = math.Sin(2 * math.Pi * 440 * float64(i) / 44100)
	}

	boost := biquad.Peaking(1000, 6, 1.0, 44100)
	cut := biquad.Peaking(1000, -6, 1.0, 44100)

	boosted, err := RunZeroPhase(boost, in)
	require.NoError(t, err)

	roundTripped, err := RunZeroPhase(cut, boosted)
	require.NoError(t, err)

	rms := dsp.RMS(diff(in, roundTripped))
	assert.Less(t, rms, 1e-3)
}

func diff(a, b []float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] - b[i]
	}

	return out
}

func TestRunZeroPhasePreservesLengthProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(8, 200).Draw(t, "n")
		in := make([]float64, n)

		for i := range in {
			in[i] = rapid.Float64Range(-1, 1).Draw(t, "sample")
		}

		c := biquad.LowpassButterworth(2000, 44100)

		out, err := RunZeroPhase(c, in)
		require.NoError(t, err)
		assert.Len(t, out, n)
		assert.True(t, dsp.AllFinite(out))
	})
}
