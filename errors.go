package flake

import (
	"errors"
	"fmt"
)

// Sentinel error kinds the encoder may report. Use errors.Is against these to
// classify a failure; the wrapped error carries the offending value.
var (
	// ErrInvalidConfig is returned when a configuration value is outside the
	// FLAC-legal range: channels, bits-per-sample, sample rate, block size,
	// prediction order, LPC precision, or padding size.
	ErrInvalidConfig = errors.New("flake: invalid configuration")

	// ErrEncoderInternal is returned when a frame cannot be encoded due to an
	// internal invariant violation, such as failing to resolve a block-size
	// code. The caller should abort the stream.
	ErrEncoderInternal = errors.New("flake: internal encoder error")

	// ErrBufferOverflow is returned when the bounded bit writer latched eof
	// during final emission despite the verbatim fallback. This is an
	// assertion-class bug: it should never occur for a correctly sized frame
	// buffer, and the stream is left invalid if it does.
	ErrBufferOverflow = errors.New("flake: frame buffer overflow")
)

// invalidConfigf wraps ErrInvalidConfig with a formatted message. Rather than
// mewkiz/pkg/errutil's position-tagged errors, this uses fmt.Errorf's %w
// directly so errors.Is can still classify the result: errutil.ErrInfo has
// no Unwrap method and would break the chain.
func invalidConfigf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrInvalidConfig}, args...)...)
}

// internalf wraps ErrEncoderInternal with a formatted message, for the same
// errors.Is reason invalidConfigf avoids errutil.
func internalf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrEncoderInternal}, args...)...)
}
