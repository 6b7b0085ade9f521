package audio

import "errors"

// Errors surfaced synchronously by the start operations.
var (
	// ErrInvalidArgument reports a bad file path or an out-of-range argument.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrDeviceInitFailed reports that the device backend could not
	// allocate buffers or open a stream.
	ErrDeviceInitFailed = errors.New("failed to initialize audio device")
	// ErrInvalidAudioFile reports a file whose WAVE header failed validation.
	ErrInvalidAudioFile = errors.New("invalid audio file")
)

// Closed set of device-level errors a backend may return from transfer
// calls. The streaming loops treat any of these as a premature but
// non-fatal end of stream: the error is logged and the session finalizes.
var (
	// ErrDeviceUnsupported reports a rate/channel/bit-depth combination
	// the backend cannot serve.
	ErrDeviceUnsupported = errors.New("device: configuration not supported")
	// ErrDeviceBadValue reports rejected buffer parameters.
	ErrDeviceBadValue = errors.New("device: bad value")
	// ErrDeviceInvalidOp reports an operation invalid in the current
	// device state.
	ErrDeviceInvalidOp = errors.New("device: invalid operation")
	// ErrDeviceFailure reports a generic transfer failure.
	ErrDeviceFailure = errors.New("device: transfer failed")
)
