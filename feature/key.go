package feature

import "github.com/sonora-labs/masterforge/internal/spectral"

const keyWindowSeconds = 5

// Key estimates the musical key of mono samples via chroma argmax: STFT
// magnitude binned into the 12 pitch classes, averaged across frames,
// with the dominant class taken as the key. Silence or an all-zero
// chroma vector defaults to "C" and sets Defaulted.
func Key(samples []float64, sampleRate int) KeyEstimate {
	window := samples
	if max := keyWindowSeconds * sampleRate; len(window) > max {
		window = window[:max]
	}

	frames := spectral.STFT(window, sampleRate, stftNFFT, stftHop)
	chroma := spectral.MeanChroma(frames)

	var total float64
	for _, v := range chroma {
		total += v
	}

	if total <= 0 {
		return KeyEstimate{Key: "C", Defaulted: true}
	}

	return KeyEstimate{Key: spectral.ArgmaxPitchClass(chroma), Defaulted: false}
}
