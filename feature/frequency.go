package feature

import (
	"github.com/sonora-labs/masterforge/internal/spectral"
)

const frequencyWindowSeconds = 10

// Frequency computes the 7-band energy breakdown, dominant frequency,
// and spectral-balance heuristic over mono samples.
func Frequency(samples []float64, sampleRate int) FrequencyAnalysis {
	window := samples
	if max := frequencyWindowSeconds * sampleRate; len(window) > max {
		window = window[:max]
	}

	frames := spectral.STFT(window, sampleRate, stftNFFT, stftHop)
	spectrum := frames.MeanSpectrum()

	energies := make(map[string]float64, len(FrequencyBands))

	var total float64

	for _, band := range FrequencyBands {
		e := sumBand(spectrum, frames.BinHz, band.LowHz, band.HighHz)
		energies[band.Name] = e
		total += e
	}

	dominant := dominantFrequency(spectrum, frames.BinHz)

	ratios := make(map[string]float64, len(energies))
	balance := make(map[string]string, len(energies))

	for _, band := range FrequencyBands {
		ratio := 0.0
		if total > 0 {
			ratio = energies[band.Name] / total
		}

		ratios[band.Name] = ratio
		balance[band.Name] = classifyBalance(band.Name, ratio)
	}

	return FrequencyAnalysis{
		Energies:          energies,
		DominantFrequency: dominant,
		SpectralBalance:   balance,
		BandRatios:        ratios,
	}
}

func sumBand(spectrum []float64, binHz, lowHz, highHz float64) float64 {
	var sum float64

	for i, m := range spectrum {
		freq := float64(i) * binHz
		if freq >= lowHz && freq < highHz {
			sum += m
		}
	}

	return sum
}

// dominantFrequency returns the bin-center of the max-magnitude bin,
// ignoring bins below 20 Hz (including DC, which is never a meaningful
// "dominant frequency").
func dominantFrequency(spectrum []float64, binHz float64) float64 {
	bestBin := -1
	bestMag := 0.0

	minBin := int(20/binHz) + 1

	for i := minBin; i < len(spectrum); i++ {
		if spectrum[i] > bestMag {
			bestMag = spectrum[i]
			bestBin = i
		}
	}

	if bestBin < 0 {
		return 0
	}

	return float64(bestBin) * binHz
}

// classifyBalance applies the per-band energy-share thresholds below to
// label a band as needing a boost, a cut, or left neutral.
func classifyBalance(band string, ratio float64) string {
	switch band {
	case "bass":
		switch {
		case ratio < 0.15:
			return "boost"
		case ratio > 0.25:
			return "cut"
		default:
			return "neutral"
		}
	case "mid":
		switch {
		case ratio < 0.20:
			return "boost"
		case ratio > 0.35:
			return "cut"
		default:
			return "neutral"
		}
	case "brilliance":
		switch {
		case ratio < 0.10:
			return "boost"
		case ratio > 0.20:
			return "cut"
		default:
			return "neutral"
		}
	default:
		return "neutral"
	}
}
