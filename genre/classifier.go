// Package genre implements a rule-based genre classifier and the
// genre-preset mastering chains. The scoring rules are grounded on the
// original service's additive feature-threshold classifier
// (audio_analyzer.py's _predict_genre); the weights and thresholds are
// carried over unchanged.
package genre

import "math"

// Labels is the fixed, ordered set of genres the classifier scores.
var Labels = []string{"electronic", "rock", "jazz", "hip-hop", "pop"}

// Features bundles the inputs the classifier consumes: spectral
// centroid mean, ZCR mean, tempo, rolloff mean, and the first three
// MFCC means plus the std of MFCC[1].
type Features struct {
	CentroidMean float64
	ZcrMean      float64
	TempoBpm     float64
	RolloffMean  float64
	Mfcc0Mean    float64
	Mfcc1Mean    float64
	Mfcc2Mean    float64
	Mfcc1Std     float64
}

// Prediction is a classifier verdict, extended with the full score
// table and the runner-up label/confidence.
type Prediction struct {
	Label               string
	Confidence          float64
	Scores              map[string]float64
	RunnerUp            string
	RunnerUpConfidence  float64
}

// Classify scores f against every genre's rule set and returns the
// argmax prediction, falling back to pop/0.5 when every score is below
// a 0.3 confidence floor, or when f carries no spectral energy (zero
// centroid and rolloff, as extracted from silence).
func Classify(f Features) Prediction {
	scores := map[string]float64{
		"electronic": electronicScore(f),
		"rock":       rockScore(f),
		"jazz":       jazzScore(f),
		"hip-hop":    hipHopScore(f),
		"pop":        popScore(f),
	}

	best, bestScore := argmax(scores)
	runnerUp, runnerUpScore := runnerUp(scores, best)

	noSignal := f.CentroidMean == 0 && f.RolloffMean == 0
	if bestScore < 0.3 || noSignal {
		return Prediction{
			Label:              "pop",
			Confidence:         0.5,
			Scores:             scores,
			RunnerUp:           runnerUp,
			RunnerUpConfidence: math.Min(runnerUpScore, 1.0),
		}
	}

	return Prediction{
		Label:              best,
		Confidence:         math.Min(bestScore, 1.0),
		Scores:             scores,
		RunnerUp:           runnerUp,
		RunnerUpConfidence: math.Min(runnerUpScore, 1.0),
	}
}

func electronicScore(f Features) float64 {
	score := 0.0

	if f.CentroidMean > 1800 {
		score += 0.4
	}

	if f.ZcrMean > 0.05 {
		score += 0.3
	}

	if f.TempoBpm > 110 && f.TempoBpm < 180 {
		score += 0.3
	}

	if f.RolloffMean > 2500 {
		score += 0.3
	}

	if f.Mfcc2Mean > 10 {
		score += 0.4
	}

	if f.Mfcc1Std > 20 {
		score += 0.3
	}

	return score
}

func rockScore(f Features) float64 {
	score := 0.0

	if f.CentroidMean > 1500 && f.CentroidMean < 3000 {
		score += 0.2
	}

	if f.TempoBpm > 100 && f.TempoBpm < 160 {
		score += 0.2
	}

	if f.RolloffMean > 3000 {
		score += 0.3
	}

	if f.Mfcc2Mean < 0 {
		score += 0.3
	}

	return score
}

func jazzScore(f Features) float64 {
	score := 0.0

	if f.CentroidMean < 1500 {
		score += 0.2
	}

	if f.TempoBpm > 80 && f.TempoBpm < 120 {
		score += 0.2
	}

	if f.ZcrMean < 0.03 {
		score += 0.3
	}

	if f.Mfcc1Std < 15 {
		score += 0.2
	}

	if f.RolloffMean < 2000 {
		score += 0.3
	}

	return score
}

func hipHopScore(f Features) float64 {
	score := 0.0

	if f.TempoBpm > 70 && f.TempoBpm < 100 {
		score += 0.3
	}

	if f.CentroidMean < 1800 {
		score += 0.2
	}

	if f.Mfcc0Mean > 0 {
		score += 0.3
	}

	if f.RolloffMean < 2500 {
		score += 0.2
	}

	return score
}

func popScore(f Features) float64 {
	score := 0.0

	if f.TempoBpm > 90 && f.TempoBpm < 130 {
		score += 0.2
	}

	if f.CentroidMean > 1000 && f.CentroidMean < 2500 {
		score += 0.3
	}

	if f.ZcrMean > 0.03 && f.ZcrMean < 0.08 {
		score += 0.3
	}

	if math.Abs(f.Mfcc1Mean) < 0.5 {
		score += 0.2
	}

	return score
}

func argmax(scores map[string]float64) (string, float64) {
	best := Labels[0]
	bestScore := scores[best]

	for _, label := range Labels[1:] {
		if scores[label] > bestScore {
			best = label
			bestScore = scores[label]
		}
	}

	return best, bestScore
}

func runnerUp(scores map[string]float64, exclude string) (string, float64) {
	best := ""
	bestScore := -1.0

	for _, label := range Labels {
		if label == exclude {
			continue
		}

		if scores[label] > bestScore {
			best = label
			bestScore = scores[label]
		}
	}

	return best, math.Max(bestScore, 0)
}
