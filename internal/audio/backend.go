package audio

import "strings"

// BackendType represents the type of audio backend
type BackendType string

const (
	BackendTypeALSA BackendType = "alsa"
	BackendTypeAuto BackendType = "auto"
)

// Capture is an open device handle delivering PCM data.
//
// Read blocks until data is available. A return of (0, nil) is the
// distinguished "no data" result and means the stream ended naturally.
// Device failures are reported through the closed device error set.
type Capture interface {
	Read(p []byte) (int, error)

	// Close stops the stream and releases the device. Safe to call while
	// a Read is blocked; the blocked call returns afterwards.
	Close() error
}

// Playback is an open device handle accepting PCM data.
//
// Write blocks until the device accepts data and may perform a short
// write; callers must loop until their input is exhausted.
type Playback interface {
	Write(p []byte) (int, error)

	// Close stops the stream and releases the device. Safe to call while
	// a Write is blocked.
	Close() error
}

// Backend abstracts the audio capture/playback endpoint.
type Backend interface {
	// MinBufferSize returns the minimum safe transfer buffer size in
	// bytes for the given stream parameters, or ErrDeviceUnsupported /
	// ErrDeviceBadValue when the combination cannot be served.
	MinBufferSize(sampleRate, channels, bitsPerSample int) (int, error)

	// OpenCapture opens the device for recording.
	OpenCapture(sampleRate, channels, bitsPerSample, bufferSize int) (Capture, error)

	// OpenPlayback opens the device for playback.
	OpenPlayback(sampleRate, channels, bitsPerSample, bufferSize int) (Playback, error)

	// Type returns the backend type
	Type() BackendType
}

// sampleRateCandidates are the rates probed by AvailableSampleRates.
var sampleRateCandidates = []int{8000, 11025, 22050, 44100, 48000}

// AvailableSampleRates returns the sample rates the backend accepts for
// mono 16-bit capture. Each returned rate is safe to record with.
func AvailableSampleRates(b Backend) []int {
	rates := make([]int, 0, len(sampleRateCandidates))
	for _, rate := range sampleRateCandidates {
		if _, err := b.MinBufferSize(rate, 1, 16); err == nil {
			rates = append(rates, rate)
		}
	}
	return rates
}

// NewBackend creates a backend of the requested type. An empty or "auto"
// name selects the ALSA backend, the only one currently available.
func NewBackend(name, device string) Backend {
	switch strings.ToLower(name) {
	case "alsa":
		return NewALSABackend(device)
	default:
		return NewALSABackend(device)
	}
}
