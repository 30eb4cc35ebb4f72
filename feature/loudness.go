package feature

import (
	"math"

	"github.com/sonora-labs/masterforge/biquad"
	"github.com/sonora-labs/masterforge/filter"
	"github.com/sonora-labs/masterforge/internal/dsp"
)

// Loudness computes LoudnessMetrics over mono samples: RMS and peak in
// dB over the whole window, plus an approximate K-weighted LUFS. The
// approximation follows ITU-R BS.1770's two-stage filter shape
// (high-pass at 38 Hz, then a high-shelf around 1.5 kHz) but replaces
// the shelf with a fixed linear gain (10^(4/20) instead of an actual
// shelf biquad), trading ~1-2 dB of accuracy against a true BS.1770
// meter for a much simpler implementation.
func Loudness(samples []float64, sampleRate int) LoudnessMetrics {
	rmsDb := dsp.LinearToDb(dsp.RMS(samples))
	peakDb := dsp.LinearToDb(dsp.Peak(samples))

	lufsApprox := kWeightedLufs(samples, sampleRate)

	return LoudnessMetrics{
		RmsDb:          rmsDb,
		PeakDb:         peakDb,
		LufsIntegrated: lufsApprox,
		LufsApprox:     lufsApprox,
		DynamicRange:   peakDb - rmsDb,
	}
}

func kWeightedLufs(samples []float64, sampleRate int) float64 {
	hpCoeffs := biquad.HighpassButterworth(38, float64(sampleRate))

	filtered, err := filter.RunCausal(hpCoeffs, samples)
	if err != nil {
		return -120
	}

	const shelfGainLin = 1.5848931924611136 // 10^(4/20)

	var sumSq float64

	for _, x := range filtered {
		shelved := x * shelfGainLin
		sumSq += shelved * shelved
	}

	meanSq := sumSq / math.Max(1, float64(len(filtered)))

	return -0.691 + 10*math.Log10(meanSq+dsp.Epsilon)
}
