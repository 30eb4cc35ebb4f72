// Package feature implements the FeatureExtractor: loudness, spectral,
// key, tempo, and frequency-band analysis over a bounded analysis
// window. None of these sub-extractors share state; the façade
// (Extract) simply calls each in turn and assembles the result.
package feature

// MfccCoeffCount is the number of MFCC coefficients tracked per frame.
const MfccCoeffCount = 8

// LoudnessMetrics holds a buffer's loudness measurements.
type LoudnessMetrics struct {
	RmsDb          float64
	PeakDb         float64
	LufsIntegrated float64
	LufsApprox     float64
	DynamicRange   float64
}

// SpectralFeatures holds the cepstral and spectral-shape measurements,
// plus the chroma mean vector recovered from the key estimator for
// reuse by callers that want the raw pitch-class profile.
type SpectralFeatures struct {
	MfccMean             [MfccCoeffCount]float64
	MfccStd              [MfccCoeffCount]float64
	SpectralCentroidMean float64
	SpectralRolloffMean  float64
	ZcrMean              float64
	ChromaMean           [12]float64
}

// FrequencyAnalysis holds the named-band energy breakdown.
type FrequencyAnalysis struct {
	Energies          map[string]float64 // band name -> summed magnitude
	DominantFrequency float64
	SpectralBalance   map[string]string // band name -> "boost"|"neutral"|"cut"
	BandRatios        map[string]float64 // band name -> share of total energy
}

// FrequencyBands is the fixed named-band table used for frequency
// balance analysis.
var FrequencyBands = []struct {
	Name       string
	LowHz      float64
	HighHz     float64
}{
	{"sub_bass", 20, 60},
	{"bass", 60, 250},
	{"low_mid", 250, 500},
	{"mid", 500, 2000},
	{"high_mid", 2000, 4000},
	{"presence", 4000, 6000},
	{"brilliance", 6000, 20000},
}

// KeyEstimate is the result of key estimation, including whether the
// default was used due to insufficient signal.
type KeyEstimate struct {
	Key       string
	Defaulted bool
}

// TempoEstimate is the result of tempo estimation, including whether
// the default (120 BPM) was substituted after a failed detection.
type TempoEstimate struct {
	Bpm       float64
	Defaulted bool
}
