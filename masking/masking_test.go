package masking

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeSilenceMasksAllTwentyFourBands(t *testing.T) {
	silence := make([]float64, 44100*2)

	a := Analyze(silence, 44100)

	assert.Len(t, a.Bands, 24)
	assert.Equal(t, 24, a.TotalMaskedBands)
	assert.Len(t, a.Recommendations, 24)
}

func TestAnalyzeBandsAreOrderedByCenterFrequency(t *testing.T) {
	n := 44100 * 2
	samples := make([]float64, n)

	for i := range samples {
		samples[i] = 0.5 * math.Sin(2*math.Pi*1000*float64(i)/44100)
	}

	a := Analyze(samples, 44100)

	require := a.Bands
	for i := 1; i < len(require); i++ {
		assert.Greater(t, require[i].CenterFreq, require[i-1].CenterFreq)
	}
}

func TestLoudToneLeavesItsBandUnmasked(t *testing.T) {
	n := 44100 * 2
	samples := make([]float64, n)

	for i := range samples {
		samples[i] = 0.9 * math.Sin(2*math.Pi*1000*float64(i)/44100)
	}

	a := Analyze(samples, 44100)

	found := false

	for _, b := range a.Bands {
		if b.CenterFreq > 900 && b.CenterFreq < 1100 {
			assert.False(t, b.IsMasked)
			found = true
		}
	}

	assert.True(t, found)
	assert.Less(t, a.TotalMaskedBands, 24)
}

func TestRecommendationForPicksRangeByFrequency(t *testing.T) {
	assert.Contains(t, recommendationFor(200), "+2-4 dB")
	assert.Contains(t, recommendationFor(1000), "+1-3 dB")
	assert.Contains(t, recommendationFor(8000), "+2-5 dB")
}
