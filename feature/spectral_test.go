package feature

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpectralFeaturesAreFiniteForSilence(t *testing.T) {
	silence := make([]float64, 44100*2)

	f := Spectral(silence, 44100)

	for _, v := range f.MfccMean {
		assert.False(t, math.IsNaN(v) || math.IsInf(v, 0))
	}

	assert.False(t, math.IsNaN(f.SpectralCentroidMean))
	assert.False(t, math.IsNaN(f.SpectralRolloffMean))
	assert.Equal(t, 0.0, f.ZcrMean)
}

func TestWhiteNoiseCentroidIsHigh(t *testing.T) {
	n := 44100 * 10
	samples := make([]float64, n)

	seed := uint64(12345)

	for i := range samples {
		seed = seed*6364136223846793005 + 1442695040888963407
		u := float64(seed>>11) / float64(1<<53)
		samples[i] = 2*u - 1
	}

	f := Spectral(samples, 44100)

	assert.GreaterOrEqual(t, f.SpectralCentroidMean, 3000.0)
	assert.LessOrEqual(t, f.SpectralCentroidMean, 12000.0)
}

func TestZeroCrossingRateOfAlternatingSignalIsHigh(t *testing.T) {
	n := 4096
	samples := make([]float64, n)

	for i := range samples {
		if i%2 == 0 {
			samples[i] = 1
		} else {
			samples[i] = -1
		}
	}

	rate := zeroCrossingRate(samples)
	assert.Greater(t, rate, 0.9)
}
