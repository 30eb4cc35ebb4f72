// Package masterforgeerr defines the error kinds surfaced by the
// analysis and mastering core. Every failure is returned, never
// logged or panicked; callers distinguish kinds with errors.Is/As.
package masterforgeerr

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. Wrap one of these with fmt.Errorf("%w: ...", ErrX)
// (or via the constructors below) so callers can errors.Is against the kind
// without caring about the message.
var (
	ErrInvalidAudio    = errors.New("invalid audio")
	ErrInvalidSettings = errors.New("invalid settings")
	ErrCancelled       = errors.New("cancelled")
	ErrUnsupported     = errors.New("unsupported")
	ErrDsp             = errors.New("dsp error")
)

// DspError reports a mastering-chain failure at a specific stage and
// sample index: any stage producing non-finite samples aborts the chain
// with this error rather than returning a partial result.
type DspError struct {
	Stage string
	Index int
	Err   error
}

func (e *DspError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("dsp error in stage %q at sample %d", e.Stage, e.Index)
	}

	return fmt.Sprintf("dsp error in stage %q at sample %d: %v", e.Stage, e.Index, e.Err)
}

func (e *DspError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrDsp}
	}

	return []error{ErrDsp, e.Err}
}

// NewDspError builds a DspError for the given stage/index with no
// underlying cause (e.g. a non-finite sample detected after processing).
func NewDspError(stage string, index int) *DspError {
	return &DspError{Stage: stage, Index: index}
}

// InvalidAudio wraps ErrInvalidAudio with context, e.g. "empty buffer" or
// "non-finite sample at channel 0 index 512".
func InvalidAudio(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidAudio, reason)
}

// InvalidSettings wraps ErrInvalidSettings with context naming the
// offending field, e.g. "ratio must be >= 1, got 0.5".
func InvalidSettings(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidSettings, reason)
}

// Unsupported wraps ErrUnsupported with context, e.g. "channels=3".
func Unsupported(reason string) error {
	return fmt.Errorf("%w: %s", ErrUnsupported, reason)
}
