package genre

import (
	"strings"

	"github.com/sonora-labs/masterforge/dynamics"
	"github.com/sonora-labs/masterforge/eq"
	"github.com/sonora-labs/masterforge/mastering"
	"github.com/sonora-labs/masterforge/saturation"
	"github.com/sonora-labs/masterforge/stereo"
)

// aliases maps genre-ish names to one of the three named presets,
// grounded on the original service's genre_mapping fuzzy-match table
// (ai_mastering.py); unmapped and unknown names fall back to rock.
var aliases = map[string]string{
	"rock":        "rock",
	"alternative": "rock",
	"metal":       "rock",
	"punk":        "rock",
	"electronic":  "electronic",
	"dance":       "electronic",
	"techno":      "electronic",
	"house":       "electronic",
	"ambient":     "electronic",
	"jazz":        "jazz",
	"blues":       "jazz",
}

// Preset returns the named genre-preset MasteringSettings. Unknown
// names fall back to "rock".
func Preset(name string) mastering.Settings {
	key, ok := aliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		key = "rock"
	}

	switch key {
	case "electronic":
		return electronicPreset()
	case "jazz":
		return jazzPreset()
	default:
		return rockPreset()
	}
}

// TargetLufs maps each preset's key to its reference integrated
// loudness target, carried over from the original service's
// genre_standards table (ai_mastering.py).
var TargetLufs = map[string]float64{
	"rock":       -11.0,
	"electronic": -12.0,
	"jazz":       -18.0,
}

// The frequency_curve/compression/stereo_width figures below are
// carried over from the original service's genre_standards table
// (ai_mastering.py), with the lowest curve point realized as a low
// shelf, the highest as a high shelf, the points between as peaking EQ
// bands, and limiting ceiling chosen conservatively relative to the
// preset's target LUFS.
func rockPreset() mastering.Settings {
	eqSettings := eq.Settings{Bands: []eq.Band{
		{FreqHz: 60, GainDb: 1.0, Q: 1.0, Shape: eq.LowShelf},
		{FreqHz: 120, GainDb: 2.0, Q: 1.0, Shape: eq.Peak},
		{FreqHz: 250, GainDb: 0.5, Q: 1.0, Shape: eq.Peak},
		{FreqHz: 2000, GainDb: 1.0, Q: 1.0, Shape: eq.Peak},
		{FreqHz: 4000, GainDb: 2.5, Q: 1.0, Shape: eq.Peak},
		{FreqHz: 8000, GainDb: 2.0, Q: 1.0, Shape: eq.Peak},
		{FreqHz: 12000, GainDb: 1.0, Q: 1.0, Shape: eq.Peak},
		{FreqHz: 16000, GainDb: 0.5, Q: 1.0, Shape: eq.HighShelf},
	}}

	compression := dynamics.CompressionSettings{
		ThresholdDb: -6, Ratio: 4.0, AttackSec: 0.001, ReleaseSec: 0.05, MakeupGainDb: 3,
	}

	sat := saturation.Settings{Kind: saturation.Tube, Drive: 0.3, Mix: 0.2}
	width := stereo.Settings{Width: 1.1, BassMonoFreq: 120}
	limiter := dynamics.LimiterSettings{CeilingDb: -1.0, ReleaseSec: 0.08}

	return mastering.Settings{
		Eq: &eqSettings, Compression: &compression, Saturation: &sat,
		Stereo: &width, Limiting: &limiter,
	}
}

func electronicPreset() mastering.Settings {
	eqSettings := eq.Settings{Bands: []eq.Band{
		{FreqHz: 60, GainDb: 2.0, Q: 1.0, Shape: eq.LowShelf},
		{FreqHz: 120, GainDb: 1.5, Q: 1.0, Shape: eq.Peak},
		{FreqHz: 500, GainDb: -0.5, Q: 1.0, Shape: eq.Peak},
		{FreqHz: 2000, GainDb: 0.5, Q: 1.0, Shape: eq.Peak},
		{FreqHz: 4000, GainDb: 1.0, Q: 1.0, Shape: eq.Peak},
		{FreqHz: 8000, GainDb: 3.0, Q: 1.0, Shape: eq.Peak},
		{FreqHz: 12000, GainDb: 2.0, Q: 1.0, Shape: eq.Peak},
		{FreqHz: 16000, GainDb: 3.0, Q: 1.0, Shape: eq.HighShelf},
	}}

	compression := dynamics.CompressionSettings{
		ThresholdDb: -4, Ratio: 6.0, AttackSec: 0.001, ReleaseSec: 0.03, MakeupGainDb: 4,
	}

	sat := saturation.Settings{Kind: saturation.SoftClip, Drive: 0.2, Mix: 0.15}
	width := stereo.Settings{Width: 1.4, BassMonoFreq: 100}
	limiter := dynamics.LimiterSettings{CeilingDb: -0.8, ReleaseSec: 0.05}

	return mastering.Settings{
		Eq: &eqSettings, Compression: &compression, Saturation: &sat,
		Stereo: &width, Limiting: &limiter,
	}
}

func jazzPreset() mastering.Settings {
	eqSettings := eq.Settings{Bands: []eq.Band{
		{FreqHz: 60, GainDb: -1.0, Q: 1.0, Shape: eq.LowShelf},
		{FreqHz: 500, GainDb: 0.5, Q: 1.0, Shape: eq.Peak},
		{FreqHz: 1000, GainDb: 1.0, Q: 1.0, Shape: eq.Peak},
		{FreqHz: 2000, GainDb: 1.5, Q: 1.0, Shape: eq.Peak},
		{FreqHz: 4000, GainDb: 1.0, Q: 1.0, Shape: eq.Peak},
		{FreqHz: 8000, GainDb: 2.0, Q: 1.0, Shape: eq.Peak},
		{FreqHz: 12000, GainDb: 2.5, Q: 1.0, Shape: eq.Peak},
		{FreqHz: 16000, GainDb: 2.0, Q: 1.0, Shape: eq.HighShelf},
	}}

	compression := dynamics.CompressionSettings{
		ThresholdDb: -16, Ratio: 2.0, AttackSec: 0.01, ReleaseSec: 0.3, MakeupGainDb: 1.5,
	}

	width := stereo.Settings{Width: 1.3, BassMonoFreq: 80}
	limiter := dynamics.LimiterSettings{CeilingDb: -1.5, ReleaseSec: 0.15}

	return mastering.Settings{
		Eq: &eqSettings, Compression: &compression,
		Stereo: &width, Limiting: &limiter,
	}
}
