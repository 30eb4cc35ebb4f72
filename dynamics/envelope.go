package dynamics

import "math"

// Envelope smooths a dB-domain control signal with independent
// attack/release one-pole coefficients: the attack branch is selected
// when the new value exceeds the current envelope value (gain
// reduction growing, i.e. the signal just got louder), release
// otherwise.
type Envelope struct {
	attackCoeff  float64
	releaseCoeff float64
	value        float64
}

// NewEnvelope builds an Envelope for the given attack/release times (in
// seconds) at sampleRate, using the one-pole coefficient
// alpha = 1 - exp(-1/(time*sampleRate)).
func NewEnvelope(attackSec, releaseSec float64, sampleRate int) *Envelope {
	return &Envelope{
		attackCoeff:  oneMinusExpCoeff(attackSec, sampleRate),
		releaseCoeff: oneMinusExpCoeff(releaseSec, sampleRate),
	}
}

func oneMinusExpCoeff(timeSec float64, sampleRate int) float64 {
	if timeSec <= 0 {
		return 1
	}

	return 1 - math.Exp(-1/(timeSec*float64(sampleRate)))
}

// Step advances the envelope toward target by one sample and returns the
// new smoothed value.
func (e *Envelope) Step(target float64) float64 {
	coeff := e.releaseCoeff
	if target > e.value {
		coeff = e.attackCoeff
	}

	e.value += coeff * (target - e.value)

	return e.value
}

// Value returns the current smoothed value without advancing.
func (e *Envelope) Value() float64 {
	return e.value
}

// Reset zeroes the envelope state.
func (e *Envelope) Reset() {
	e.value = 0
}
