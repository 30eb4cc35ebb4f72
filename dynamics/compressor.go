// Package dynamics implements a feed-forward compressor and a
// brick-wall limiter, built atop Envelope (attack/release smoothing)
// and plain per-sample math — no filter package dependency, since both
// processors work directly in the sample/dB domain rather than through
// biquad sections.
package dynamics

import (
	"fmt"
	"math"

	"github.com/sonora-labs/masterforge/internal/dsp"
	"github.com/sonora-labs/masterforge/masterforgeerr"
)

// CompressionSettings configures the feed-forward compressor.
type CompressionSettings struct {
	ThresholdDb        float64 // <= 0
	Ratio               float64 // >= 1
	AttackSec           float64 // > 0
	ReleaseSec          float64 // > 0
	MakeupGainDb        float64
	KneeDb              float64 // soft-knee width in dB; 0 = hard knee
	TargetDynamicRangeDb *float64 // optional
}

// Validate checks CompressionSettings for a non-positive threshold, a
// ratio of at least 1, positive attack/release times, and a
// non-negative knee.
func (s CompressionSettings) Validate() error {
	if s.ThresholdDb > 0 {
		return masterforgeerr.InvalidSettings(fmt.Sprintf("compression: threshold must be <= 0, got %.2f", s.ThresholdDb))
	}

	if s.Ratio < 1 {
		return masterforgeerr.InvalidSettings(fmt.Sprintf("compression: ratio must be >= 1, got %.2f", s.Ratio))
	}

	if s.AttackSec <= 0 {
		return masterforgeerr.InvalidSettings(fmt.Sprintf("compression: attack must be > 0, got %.4f", s.AttackSec))
	}

	if s.ReleaseSec <= 0 {
		return masterforgeerr.InvalidSettings(fmt.Sprintf("compression: release must be > 0, got %.4f", s.ReleaseSec))
	}

	if s.KneeDb < 0 {
		return masterforgeerr.InvalidSettings(fmt.Sprintf("compression: knee must be >= 0, got %.2f", s.KneeDb))
	}

	return nil
}

// gainReductionDb computes the instantaneous (unsmoothed) gain reduction
// in dB for a signal level xDb, with an optional soft knee: within
// +-knee/2 of the threshold the reduction ramps in quadratically instead
// of switching on sharply at the threshold, avoiding audible zipper
// noise on material that hovers near threshold.
func gainReductionDb(xDb, thresholdDb, ratio, kneeDb float64) float64 {
	overshoot := xDb - thresholdDb

	if kneeDb <= 0 {
		return math.Max(0, overshoot*(1-1/ratio))
	}

	half := kneeDb / 2

	switch {
	case overshoot <= -half:
		return 0
	case overshoot >= half:
		return overshoot * (1 - 1/ratio)
	default:
		t := (overshoot + half) / kneeDb
		return t * t * half * (1 - 1/ratio)
	}
}

// Compress applies the feed-forward compressor to a single channel of
// samples: convert to dB, compute gain reduction, smooth through an
// attack/release envelope, apply and restore sign, add makeup gain.
func Compress(samples []float64, settings CompressionSettings, sampleRate int) ([]float64, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	out := make([]float64, len(samples))
	env := NewEnvelope(settings.AttackSec, settings.ReleaseSec, sampleRate)
	makeup := dsp.DbToLinear(settings.MakeupGainDb)

	for i, x := range samples {
		xDb := dsp.LinearToDb(x)
		grTarget := gainReductionDb(xDb, settings.ThresholdDb, settings.Ratio, settings.KneeDb)
		grSmoothed := env.Step(grTarget)

		gainLin := dsp.DbToLinear(-grSmoothed) * makeup
		out[i] = x * gainLin

		if math.IsNaN(out[i]) || math.IsInf(out[i], 0) {
			return nil, &masterforgeerr.DspError{Stage: "dynamics.Compress", Index: i}
		}
	}

	return out, nil
}

// CompressChannels applies Compress independently to every channel,
// each with its own envelope state.
func CompressChannels(channels [][]float64, settings CompressionSettings, sampleRate int) ([][]float64, error) {
	if settings.TargetDynamicRangeDb != nil {
		settings = adjustForTargetDynamicRange(channels, settings)
	}

	out := make([][]float64, len(channels))

	for i, ch := range channels {
		compressed, err := Compress(ch, settings, sampleRate)
		if err != nil {
			return nil, err
		}

		out[i] = compressed
	}

	return out, nil
}

// adjustForTargetDynamicRange implements optional dynamic-range
// targeting: measure current DR as 20*log10(peak/rms), and if it
// differs from the target by more than 2 dB, nudge threshold and ratio
// toward the target.
func adjustForTargetDynamicRange(channels [][]float64, settings CompressionSettings) CompressionSettings {
	var peak, sumSq float64

	var n int

	for _, ch := range channels {
		for _, x := range ch {
			if abs := math.Abs(x); abs > peak {
				peak = abs
			}

			sumSq += x * x
			n++
		}
	}

	if n == 0 {
		return settings
	}

	rms := math.Sqrt(sumSq / float64(n))
	currentDr := 20 * math.Log10(peak/(rms+dsp.Epsilon))

	target := *settings.TargetDynamicRangeDb
	delta := currentDr - target

	if math.Abs(delta) <= 2 {
		return settings
	}

	adjusted := settings

	thresholdStep := math.Min(math.Abs(delta)*0.5, 6)
	if delta > 0 {
		// Current DR too wide: compress harder (lower threshold, raise ratio).
		adjusted.ThresholdDb -= thresholdStep
		adjusted.Ratio = dsp.Clamp(settings.Ratio*(1+math.Abs(delta)*0.1), 1.5, 10)
	} else {
		// Current DR too narrow: compress less.
		adjusted.ThresholdDb += thresholdStep
		adjusted.Ratio = dsp.Clamp(settings.Ratio*(1-math.Abs(delta)*0.05), 1.5, 10)
	}

	if adjusted.ThresholdDb > 0 {
		adjusted.ThresholdDb = 0
	}

	return adjusted
}
