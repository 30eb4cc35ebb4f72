package feature

import (
	"math"

	"github.com/sonora-labs/masterforge/internal/dsp"
	"github.com/sonora-labs/masterforge/internal/spectral"
)

const (
	stftNFFT    = 1024
	stftHop     = 512
	melBands    = 40
	rolloffFrac = 0.85

	spectralWindowSeconds = 10
)

// Spectral computes SpectralFeatures over the first 10 s of mono
// samples: an STFT with n_fft=1024/hop=512, MFCC-like means/stds from a
// 40-band mel filterbank reduced to the first MfccCoeffCount DCT
// coefficients, spectral centroid, 85%-energy rolloff, and zero-crossing
// rate.
func Spectral(samples []float64, sampleRate int) SpectralFeatures {
	if max := spectralWindowSeconds * sampleRate; len(samples) > max {
		samples = samples[:max]
	}

	frames := spectral.STFT(samples, sampleRate, stftNFFT, stftHop)
	fb := spectral.MelFilterbank(melBands, stftNFFT, sampleRate)

	var (
		mfccSum    [MfccCoeffCount]float64
		mfccSumSq  [MfccCoeffCount]float64
		centroidSum float64
		rolloffSum  float64
	)

	n := len(frames.Magnitudes)

	for _, mag := range frames.Magnitudes {
		melE := spectral.MelEnergies(fb, mag)
		mfcc := spectral.DCT2(melE, MfccCoeffCount)

		for k := 0; k < MfccCoeffCount; k++ {
			mfccSum[k] += mfcc[k]
			mfccSumSq[k] += mfcc[k] * mfcc[k]
		}

		centroidSum += spectralCentroid(mag, frames.BinHz)
		rolloffSum += spectralRolloff(mag, frames.BinHz, rolloffFrac)
	}

	var mean, std [MfccCoeffCount]float64

	if n > 0 {
		for k := 0; k < MfccCoeffCount; k++ {
			mean[k] = mfccSum[k] / float64(n)
			variance := mfccSumSq[k]/float64(n) - mean[k]*mean[k]

			if variance < 0 {
				variance = 0
			}

			std[k] = math.Sqrt(variance)
		}
	}

	var centroidMean, rolloffMean float64

	if n > 0 {
		centroidMean = centroidSum / float64(n)
		rolloffMean = rolloffSum / float64(n)
	}

	return SpectralFeatures{
		MfccMean:             mean,
		MfccStd:              std,
		SpectralCentroidMean: centroidMean,
		SpectralRolloffMean:  rolloffMean,
		ZcrMean:              zeroCrossingRate(samples),
		ChromaMean:           spectral.MeanChroma(frames),
	}
}

func spectralCentroid(mag []float64, binHz float64) float64 {
	var weighted, total float64

	for i, m := range mag {
		freq := float64(i) * binHz
		weighted += freq * m
		total += m
	}

	if total < dsp.Epsilon {
		return 0
	}

	return weighted / total
}

func spectralRolloff(mag []float64, binHz, frac float64) float64 {
	var total float64
	for _, m := range mag {
		total += m
	}

	if total < dsp.Epsilon {
		return 0
	}

	threshold := total * frac

	var cum float64

	for i, m := range mag {
		cum += m
		if cum >= threshold {
			return float64(i) * binHz
		}
	}

	return float64(len(mag)-1) * binHz
}

// zeroCrossingRate averages the per-frame zero-crossing rate over
// non-overlapping frames of length stftNFFT, matching the STFT's
// framing so the ZCR mean is comparable window-to-window.
func zeroCrossingRate(samples []float64) float64 {
	if len(samples) < 2 {
		return 0
	}

	var frameRates []float64

	for pos := 0; pos+stftNFFT <= len(samples); pos += stftNFFT {
		frame := samples[pos : pos+stftNFFT]

		var crossings int

		for i := 1; i < len(frame); i++ {
			if (frame[i-1] >= 0) != (frame[i] >= 0) {
				crossings++
			}
		}

		frameRates = append(frameRates, float64(crossings)/float64(len(frame)-1))
	}

	if len(frameRates) == 0 {
		var crossings int

		for i := 1; i < len(samples); i++ {
			if (samples[i-1] >= 0) != (samples[i] >= 0) {
				crossings++
			}
		}

		return float64(crossings) / float64(len(samples)-1)
	}

	var sum float64
	for _, r := range frameRates {
		sum += r
	}

	return sum / float64(len(frameRates))
}
