package mastering

import (
	"github.com/sonora-labs/masterforge/dynamics"
	"github.com/sonora-labs/masterforge/eq"
	"github.com/sonora-labs/masterforge/saturation"
	"github.com/sonora-labs/masterforge/stereo"
)

func exampleEq() eq.Settings {
	return eq.Settings{Bands: []eq.Band{{FreqHz: 1000, GainDb: 3, Q: 1, Shape: eq.Peak}}}
}

func exampleSaturation() saturation.Settings {
	return saturation.Settings{Kind: saturation.Tube, Drive: 0.5, Mix: 0.3}
}

func exampleCompression() dynamics.CompressionSettings {
	return dynamics.CompressionSettings{ThresholdDb: -12, Ratio: 4, AttackSec: 0.005, ReleaseSec: 0.1}
}

func exampleStereo() stereo.Settings {
	return stereo.Settings{Width: 1.2, BassMonoFreq: 120}
}
