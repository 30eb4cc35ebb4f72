package feature

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractRejectsEmptyBuffer(t *testing.T) {
	_, err := Extract([][]float64{{}}, 44100)
	assert.Error(t, err)
}

func TestExtractRejectsNonFiniteSamples(t *testing.T) {
	samples := make([]float64, 1000)
	samples[10] = math.NaN()

	_, err := Extract([][]float64{samples, samples}, 44100)
	assert.Error(t, err)
}

func TestExtractResamplesAndWindows(t *testing.T) {
	sampleRate := 22050
	n := sampleRate * 40 // longer than AnalysisWindowSeconds, exercises truncation

	samples := make([]float64, n)
	for i := range samples {
		samples[i] = 0.3 * math.Sin(2*math.Pi*300*float64(i)/float64(sampleRate))
	}

	result, err := Extract([][]float64{samples, samples}, sampleRate)
	require.NoError(t, err)

	assert.False(t, math.IsNaN(result.Loudness.RmsDb))
	assert.False(t, math.IsNaN(result.Spectral.SpectralCentroidMean))
	assert.NotEmpty(t, result.Key.Key)
	assert.GreaterOrEqual(t, result.Tempo.Bpm, 60.0)
}

func TestExtractAtTargetSampleRateSkipsResample(t *testing.T) {
	samples := make([]float64, TargetSampleRate*2)
	for i := range samples {
		samples[i] = 0.2 * math.Sin(2*math.Pi*500*float64(i)/float64(TargetSampleRate))
	}

	result, err := Extract([][]float64{samples}, TargetSampleRate)
	require.NoError(t, err)

	assert.False(t, math.IsNaN(result.Frequency.DominantFrequency))
}
