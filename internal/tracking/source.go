// Package tracking provides the landmark sources that drive the avatar:
// a keyboard pointer, recorded traces and the helpers shared with the
// camera source.
package tracking

import (
	"errors"
	"fmt"
)

var (
	// ErrCaptureFailed is wrapped by every error that ends a session because
	// the input stream is gone (camera read failure, trace exhausted).
	ErrCaptureFailed = errors.New("capture failed")

	// ErrEndOfStream marks a trace that ran out of samples. It also matches
	// ErrCaptureFailed.
	ErrEndOfStream = fmt.Errorf("%w: end of stream", ErrCaptureFailed)

	// ErrClosed is returned by sources used after Close.
	ErrClosed = errors.New("source closed")
)
