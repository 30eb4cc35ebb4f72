package stereoanalysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeMonoInputReturnsDocumentedDefaults(t *testing.T) {
	a := Analyze([][]float64{{0.1, 0.2, 0.3}}, 44100)

	assert.True(t, a.IsMono)
	assert.Equal(t, 0.0, a.Width)
	assert.Equal(t, 1.0, a.Correlation)
	assert.Equal(t, 0.0, a.Balance)
	assert.Equal(t, 1.0, a.PhaseCoherence)
	assert.Equal(t, 1.0, a.BassMonoFraction)
	assert.NotEmpty(t, a.Recommendations)
}

func TestAnalyzeIdenticalChannelsAreFullyCorrelated(t *testing.T) {
	n := 4096
	samples := make([]float64, n)

	for i := range samples {
		samples[i] = 0.5 * math.Sin(2*math.Pi*440*float64(i)/44100)
	}

	a := Analyze([][]float64{samples, samples}, 44100)

	assert.InDelta(t, 1.0, a.Correlation, 1e-6)
	assert.InDelta(t, 0.0, a.Width, 1e-6)
	assert.InDelta(t, 0.0, a.Balance, 1e-6)
	assert.Contains(t, a.Recommendations, "L/R channels are very highly correlated — track may be near-mono")
}

func TestAnalyzeOutOfPhaseChannelsHaveLowCorrelation(t *testing.T) {
	n := 4096
	left := make([]float64, n)
	right := make([]float64, n)

	for i := range left {
		left[i] = 0.5 * math.Sin(2*math.Pi*440*float64(i)/44100)
		right[i] = -left[i]
	}

	a := Analyze([][]float64{left, right}, 44100)

	assert.Less(t, a.Correlation, -0.9)
}

func TestWhiteNoiseStereoCorrelationIsNearZero(t *testing.T) {
	n := 44100 * 2
	left := make([]float64, n)
	right := make([]float64, n)

	seed := uint64(999)

	next := func() float64 {
		seed = seed*6364136223846793005 + 1442695040888963407
		u := float64(seed>>11) / float64(1<<53)
		return 2*u - 1
	}

	for i := range left {
		left[i] = next()
		right[i] = next()
	}

	a := Analyze([][]float64{left, right}, 44100)

	assert.GreaterOrEqual(t, a.Correlation, -0.2)
	assert.LessOrEqual(t, a.Correlation, 0.2)
}

func TestAnalyzeBassMonoFractionIsHighForDeliberatelyFoldedBass(t *testing.T) {
	n := 44100 * 2
	left := make([]float64, n)
	right := make([]float64, n)

	for i := range left {
		// Bass below 120 Hz is identical in both channels (already mono);
		// a wide high-frequency layer differs between channels.
		bass := 0.5 * math.Sin(2*math.Pi*80*float64(i)/44100)
		left[i] = bass + 0.3*math.Sin(2*math.Pi*6000*float64(i)/44100)
		right[i] = bass - 0.3*math.Sin(2*math.Pi*6000*float64(i)/44100)
	}

	a := Analyze([][]float64{left, right}, 44100)

	assert.Greater(t, a.BassMonoFraction, 0.8)
}

func TestRecommendationsForThresholds(t *testing.T) {
	recs := recommendationsFor(0.05, 0.0, 0.9, 0.9, 0.0)
	assert.Contains(t, recs, "Stereo image is very narrow — consider widening")

	recs = recommendationsFor(0.05, 0.0, 0.9, 0.9, 0.95)
	assert.NotContains(t, recs, "Stereo image is very narrow — consider widening")

	recs = recommendationsFor(1.0, 0.2, 0.9, 0.9, 0.0)
	assert.Contains(t, recs, "Stereo balance is skewed toward the right channel")

	recs = recommendationsFor(1.0, 0.0, 0.5, 0.9, 0.0)
	assert.Contains(t, recs, "Low L/R correlation — possible phase issue")

	recs = recommendationsFor(1.0, 0.0, 0.9, 0.5, 0.0)
	assert.Contains(t, recs, "Phase coherence is low — check channel alignment")
}
