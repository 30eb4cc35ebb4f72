// Package stereoanalysis implements correlation, width, balance, and
// phase-coherence measurement over a stereo pair. It only measures a
// stereo image; it never modifies one (see the stereo package for
// that).
package stereoanalysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/sonora-labs/masterforge/biquad"
	"github.com/sonora-labs/masterforge/filter"
	"github.com/sonora-labs/masterforge/internal/dsp"
)

const (
	phaseLagSearch = 32
	bassMonoCutoff = 120
)

// Analysis is the full stereo-image measurement for one buffer.
type Analysis struct {
	IsMono           bool
	Width            float64
	Correlation      float64
	Balance          float64
	PhaseCoherence   float64
	MidEnergyDb      float64
	SideEnergyDb     float64
	BassMonoFraction float64
	Recommendations  []string
}

// Analyze computes Analysis over planar channels at sampleRate. A
// single-channel (mono) input short-circuits to the documented mono
// defaults.
func Analyze(channels [][]float64, sampleRate int) Analysis {
	if len(channels) < 2 {
		return Analysis{
			IsMono:           true,
			Width:            0,
			Correlation:      1,
			Balance:          0,
			PhaseCoherence:   1,
			BassMonoFraction: 1,
			Recommendations:  []string{"Track is mono — consider stereo enhancement"},
		}
	}

	left, right := channels[0], channels[1]

	n := minLen(left, right)
	left, right = left[:n], right[:n]

	correlation := 0.0
	if n > 1 {
		correlation = stat.Correlation(left, right, nil)
	}

	mid := make([]float64, n)
	side := make([]float64, n)

	for i := 0; i < n; i++ {
		mid[i] = (left[i] + right[i]) / 2
		side[i] = (left[i] - right[i]) / 2
	}

	midEnergy := energy(mid)
	sideEnergy := energy(side)
	width := sideEnergy / (midEnergy + dsp.Epsilon)

	energyL := energy(left)
	energyR := energy(right)
	balance := (energyR - energyL) / (energyR + energyL + dsp.Epsilon)

	phaseCoherence := dsp.Clamp(maxCrossCorrelation(left, right), 0, 1)

	midEnergyDb := dsp.PowerToDb(midEnergy)
	sideEnergyDb := dsp.PowerToDb(sideEnergy)

	bassFraction := bassMonoFraction(mid, side, sampleRate)

	return Analysis{
		IsMono:           false,
		Width:            width,
		Correlation:      correlation,
		Balance:          balance,
		PhaseCoherence:   phaseCoherence,
		MidEnergyDb:      midEnergyDb,
		SideEnergyDb:     sideEnergyDb,
		BassMonoFraction: bassFraction,
		Recommendations:  recommendationsFor(width, balance, correlation, phaseCoherence, bassFraction),
	}
}

// bassMonoFraction reports the fraction of sub-bassMonoCutoff Hz energy
// that sits in the mid (sum) channel rather than the side (difference)
// channel: a track that was deliberately folded to mono below the
// crossover scores close to 1, a track with wide stereo bass scores
// close to 0.
func bassMonoFraction(mid, side []float64, sampleRate int) float64 {
	lpCoeffs := biquad.LowpassButterworth(bassMonoCutoff, float64(sampleRate))

	lowMid, errMid := filter.RunCausal(lpCoeffs, mid)
	lowSide, errSide := filter.RunCausal(lpCoeffs, side)

	if errMid != nil || errSide != nil {
		return 1
	}

	midEnergy := energy(lowMid)
	sideEnergy := energy(lowSide)

	return dsp.Clamp(midEnergy/(midEnergy+sideEnergy+dsp.Epsilon), 0, 1)
}

func minLen(a, b []float64) int {
	if len(a) < len(b) {
		return len(a)
	}

	return len(b)
}

func energy(samples []float64) float64 {
	var sum float64
	for _, v := range samples {
		sum += v * v
	}

	return sum / math.Max(1, float64(len(samples)))
}

// maxCrossCorrelation searches a small lag window for the normalized
// cross-correlation peak between l and r:
// phase_coherence = |max cross-correlation| / sqrt(autocorr_L * autocorr_R).
func maxCrossCorrelation(l, r []float64) float64 {
	autoL := dot(l, l, 0)
	autoR := dot(r, r, 0)

	denom := math.Sqrt(autoL * autoR)
	if denom < dsp.Epsilon {
		return 0
	}

	best := 0.0

	for lag := -phaseLagSearch; lag <= phaseLagSearch; lag++ {
		v := math.Abs(dot(l, r, lag)) / denom
		if v > best {
			best = v
		}
	}

	return best
}

// dot computes sum(l[i]*r[i+lag]) over the overlapping range.
func dot(l, r []float64, lag int) float64 {
	var sum float64

	for i := 0; i < len(l); i++ {
		j := i + lag
		if j < 0 || j >= len(r) {
			continue
		}

		sum += l[i] * r[j]
	}

	return sum
}

func recommendationsFor(width, balance, correlation, phaseCoherence, bassMonoFraction float64) []string {
	var recs []string

	switch {
	case width < 0.1 && bassMonoFraction < 0.9:
		recs = append(recs, "Stereo image is very narrow — consider widening")
	case width > 2.0:
		recs = append(recs, "Stereo image is overly wide — check for phase issues")
	}

	if math.Abs(balance) > 0.1 {
		side := "left"
		if balance > 0 {
			side = "right"
		}

		recs = append(recs, fmt.Sprintf("Stereo balance is skewed toward the %s channel", side))
	}

	switch {
	case correlation < 0.7:
		recs = append(recs, "Low L/R correlation — possible phase issue")
	case correlation > 0.95:
		recs = append(recs, "L/R channels are very highly correlated — track may be near-mono")
	}

	if phaseCoherence < 0.8 {
		recs = append(recs, "Phase coherence is low — check channel alignment")
	}

	return recs
}
