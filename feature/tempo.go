package feature

import (
	"math"

	"github.com/sonora-labs/masterforge/internal/dsp"
	"github.com/sonora-labs/masterforge/internal/spectral"
)

const (
	tempoWindowSeconds = 10
	defaultTempoBpm    = 120
	minTempoBpm        = 60
	maxTempoBpm        = 200
)

// Tempo estimates BPM via autocorrelation of an onset-strength envelope,
// searching lags that correspond to [60, 200] BPM; on failure (flat or
// silent input, or a best lag whose BPM falls outside that range) the
// default of 120 BPM is substituted and Defaulted is set.
func Tempo(samples []float64, sampleRate int) TempoEstimate {
	window := samples
	if max := tempoWindowSeconds * sampleRate; len(window) > max {
		window = window[:max]
	}

	frames := spectral.STFT(window, sampleRate, stftNFFT, stftHop)
	if len(frames.Magnitudes) < 4 {
		return TempoEstimate{Bpm: defaultTempoBpm, Defaulted: true}
	}

	onset := onsetEnvelope(frames)
	frameRate := float64(sampleRate) / float64(stftHop)

	bpm, ok := autocorrelationBpm(onset, frameRate)
	if !ok {
		return TempoEstimate{Bpm: defaultTempoBpm, Defaulted: true}
	}

	return TempoEstimate{Bpm: bpm, Defaulted: false}
}

// onsetEnvelope computes the half-wave-rectified frame-to-frame energy
// difference, a standard cheap onset-strength proxy.
func onsetEnvelope(frames spectral.Frames) []float64 {
	energies := make([]float64, len(frames.Magnitudes))

	for i, mag := range frames.Magnitudes {
		var sum float64
		for _, m := range mag {
			sum += m * m
		}

		energies[i] = sum
	}

	onset := make([]float64, len(energies))

	for i := 1; i < len(energies); i++ {
		d := energies[i] - energies[i-1]
		if d > 0 {
			onset[i] = d
		}
	}

	return onset
}

// autocorrelationBpm finds the lag (within the range implied by
// [minTempoBpm, maxTempoBpm]) that maximizes the onset envelope's
// autocorrelation, and converts it to BPM.
func autocorrelationBpm(onset []float64, frameRate float64) (float64, bool) {
	mean := 0.0
	for _, v := range onset {
		mean += v
	}

	if len(onset) == 0 {
		return 0, false
	}

	mean /= float64(len(onset))

	centered := make([]float64, len(onset))
	for i, v := range onset {
		centered[i] = v - mean
	}

	if dsp.Peak(centered) < dsp.Epsilon {
		return 0, false
	}

	minLag := int(frameRate * 60 / maxTempoBpm)
	maxLag := int(frameRate * 60 / minTempoBpm)

	if maxLag >= len(centered) {
		maxLag = len(centered) - 1
	}

	if minLag < 1 {
		minLag = 1
	}

	if minLag >= maxLag {
		return 0, false
	}

	bestLag := -1
	bestScore := 0.0

	for lag := minLag; lag <= maxLag; lag++ {
		var score float64
		for i := 0; i+lag < len(centered); i++ {
			score += centered[i] * centered[i+lag]
		}

		if score > bestScore {
			bestScore = score
			bestLag = lag
		}
	}

	if bestLag <= 0 || bestScore <= 0 {
		return 0, false
	}

	bpm := 60 * frameRate / float64(bestLag)

	if math.IsNaN(bpm) || bpm < minTempoBpm || bpm > maxTempoBpm {
		return 0, false
	}

	return bpm, true
}
