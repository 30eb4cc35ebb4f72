package feature

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sonora-labs/masterforge/internal/spectral"
)

func TestTempoOfSilenceDefaultsTo120(t *testing.T) {
	silence := make([]float64, 44100*2)

	te := Tempo(silence, 44100)

	assert.Equal(t, 120.0, te.Bpm)
	assert.True(t, te.Defaulted)
}

func TestTempoIsWithinDocumentedRange(t *testing.T) {
	n := 44100 * 5
	samples := make([]float64, n)

	bpm := 120.0
	beatPeriod := int(44100 * 60 / bpm)

	for i := range samples {
		if i%beatPeriod < 200 {
			samples[i] = 0.8
		}
	}

	te := Tempo(samples, 44100)

	assert.GreaterOrEqual(t, te.Bpm, 60.0)
	assert.LessOrEqual(t, te.Bpm, 200.0)
	assert.False(t, math.IsNaN(te.Bpm))
}

func TestOnsetEnvelopeIsNonNegative(t *testing.T) {
	n := 44100 * 2
	samples := make([]float64, n)

	for i := range samples {
		samples[i] = 0.5 * math.Sin(2*math.Pi*220*float64(i)/44100)
	}

	onset := onsetEnvelope(spectral.STFT(samples, 44100, stftNFFT, stftHop))
	for _, v := range onset {
		assert.GreaterOrEqual(t, v, 0.0)
	}
}
