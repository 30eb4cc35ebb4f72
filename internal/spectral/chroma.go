package spectral

import "math"

// PitchClasses names the 12 semitone classes in MIDI order starting at C
// (MIDI note number mod 12 == 0).
var PitchClasses = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Chroma bins a magnitude spectrum into the 12 pitch classes by mapping
// each bin's frequency to the nearest MIDI semitone (A4=440Hz reference)
// and accumulating magnitude into that semitone's pitch class. Bins
// below 20 Hz are skipped, since they carry no well-defined pitch class
// and would otherwise dump DC/sub-bass energy into whichever class the
// rounding happens to land on.
func Chroma(spectrum []float64, binHz float64) [12]float64 {
	var bins [12]float64

	for i, mag := range spectrum {
		freq := float64(i) * binHz
		if freq < 20 {
			continue
		}

		midiNote := 69 + 12*math.Log2(freq/440)
		pitchClass := int(math.Round(midiNote)) % 12

		if pitchClass < 0 {
			pitchClass += 12
		}

		bins[pitchClass] += mag
	}

	return bins
}

// MeanChroma averages Chroma across every STFT frame.
func MeanChroma(f Frames) [12]float64 {
	var mean [12]float64

	if len(f.Magnitudes) == 0 {
		return mean
	}

	for _, frame := range f.Magnitudes {
		c := Chroma(frame, f.BinHz)
		for i := range mean {
			mean[i] += c[i]
		}
	}

	inv := 1 / float64(len(f.Magnitudes))
	for i := range mean {
		mean[i] *= inv
	}

	return mean
}

// ArgmaxPitchClass returns the name of the dominant pitch class in
// chroma, used for key estimation's argmax step.
func ArgmaxPitchClass(chroma [12]float64) string {
	best := 0

	for i := 1; i < 12; i++ {
		if chroma[i] > chroma[best] {
			best = i
		}
	}

	return PitchClasses[best]
}
