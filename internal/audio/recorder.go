package audio

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pixmob/wavebox/internal/wave"
)

// Only mono 16-bit PCM is implemented; the container generalizes but
// nothing here exercises other layouts.
const (
	numChannels   = 1
	bitsPerSample = 16
)

// stopGracePeriod bounds how long Stop waits for the worker goroutine to
// exit on its own before forcing a shutdown.
const stopGracePeriod = 5 * time.Second

// Recorder records audio from the capture device to a WAVE file. The
// transfer loop runs in a dedicated goroutine; Record returns as soon as
// the loop is started.
type Recorder struct {
	filePath    string
	backend     Backend
	stopTimeout time.Duration

	mu       sync.Mutex
	listener Listener
	writer   *fileWriter
}

// NewRecorder creates a recorder targeting the given file path.
func NewRecorder(filePath string, backend Backend) (*Recorder, error) {
	if filePath == "" {
		return nil, fmt.Errorf("%w: file path is required", ErrInvalidArgument)
	}
	return &Recorder{
		filePath:    filePath,
		backend:     backend,
		stopTimeout: stopGracePeriod,
	}, nil
}

// SetListener registers the observer notified of lifecycle events. The
// recorder does not own the listener; passing nil detaches it.
func (r *Recorder) SetListener(l Listener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listener = l
}

func (r *Recorder) currentListener() Listener {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.listener
}

// Pause is not implemented.
func (r *Recorder) Pause() {
	slog.Warn("Pause not implemented")
}

// Record starts recording mono 16-bit PCM at the given sample rate in a
// worker goroutine. Precondition failures are returned synchronously;
// I/O failures during streaming are logged and end the recording with
// whatever data was written, behind a correctly patched header.
func (r *Recorder) Record(sampleRateInHz int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.writer != nil && !r.writer.finished() {
		return fmt.Errorf("%w: recording already in progress", ErrInvalidArgument)
	}

	minBufferSize, err := r.backend.MinBufferSize(sampleRateInHz, numChannels, bitsPerSample)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeviceInitFailed, err)
	}
	// a longer buffer absorbs file I/O latency and prevents audio gaps
	bufferSize := 2 * minBufferSize

	file, err := os.OpenFile(r.filePath, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	if err := file.Truncate(wave.HeaderLen); err != nil {
		file.Close()
		return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	// placeholder header; the byte-count fields are patched at stop
	header := wave.EncodeHeader(sampleRateInHz, numChannels, bitsPerSample)
	if _, err := file.Write(header); err != nil {
		file.Close()
		return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	capture, err := r.backend.OpenCapture(sampleRateInHz, numChannels, bitsPerSample, bufferSize)
	if err != nil {
		file.Close()
		return fmt.Errorf("%w: %v", ErrDeviceInitFailed, err)
	}

	w := &fileWriter{
		filePath:   r.filePath,
		sampleRate: sampleRateInHz,
		file:       file,
		capture:    capture,
		buffer:     make([]byte, bufferSize),
		done:       make(chan struct{}),
		listener:   r.currentListener,
	}
	w.recording.Store(true)
	r.writer = w

	go w.run()
	return nil
}

// Stop requests a graceful stop and waits up to the grace period for the
// worker to exit, then forces a shutdown that still releases the device
// and file handles. Idempotent: with no recording in progress it is a
// no-op.
func (r *Recorder) Stop() {
	r.mu.Lock()
	w := r.writer
	r.writer = nil
	r.mu.Unlock()

	if w == nil {
		return
	}

	w.recording.Store(false)

	select {
	case <-w.done:
	case <-time.After(r.stopTimeout):
		slog.Warn("Recording worker did not stop within grace period, forcing shutdown", "file", w.filePath)
		w.release()
		<-w.done
	}
}

// fileWriter is the recording worker. It exclusively owns the transfer
// buffer, file handle and capture handle for its lifetime; the only
// state shared with the controller is the recording flag.
type fileWriter struct {
	filePath   string
	sampleRate int
	file       *os.File
	capture    Capture
	buffer     []byte
	recording  atomic.Bool
	done       chan struct{}
	releaseOne sync.Once
	listener   func() Listener
}

func (w *fileWriter) finished() bool {
	select {
	case <-w.done:
		return true
	default:
		return false
	}
}

func (w *fileWriter) run() {
	defer close(w.done)

	slog.Info("Start writing audio data to file", "file", w.filePath)
	Notify(w.listener(), RecordingStarted, w.filePath)

	bytesWritten := w.transfer()
	w.finalize(bytesWritten)
	w.release()

	slog.Info("Stop writing audio data to file", "file", w.filePath, "bytes", bytesWritten)
}

// transfer moves PCM data from the device to the file until the flag is
// cleared, the device reports no data, or an error occurs. It returns
// the exact number of PCM bytes written.
func (w *fileWriter) transfer() uint32 {
	var bytesWritten uint32

	for w.recording.Load() {
		n, err := w.capture.Read(w.buffer)
		if err != nil {
			slog.Error("Failed to get audio data", "file", w.filePath, "error", err)
			break
		}
		if n == 0 {
			slog.Debug("Got no audio samples")
			break
		}

		m, err := w.file.Write(w.buffer[:n])
		bytesWritten += uint32(m)
		if err != nil {
			slog.Warn("I/O error when writing audio data to file", "file", w.filePath, "error", err)
			break
		}
	}

	return bytesWritten
}

// finalize patches the deferred byte-count fields now that the total is
// known. Failures are logged; the sample data already on disk is kept.
func (w *fileWriter) finalize(bytesWritten uint32) {
	header := wave.EncodeHeader(w.sampleRate, numChannels, bitsPerSample)
	wave.PatchSizes(header, bytesWritten)

	if _, err := w.file.Seek(0, io.SeekStart); err != nil {
		slog.Warn("Failed to seek to file start for header patch", "file", w.filePath, "error", err)
		return
	}
	if _, err := w.file.Write(header); err != nil {
		slog.Warn("Failed to write patched header", "file", w.filePath, "error", err)
		return
	}
	if err := w.file.Sync(); err != nil {
		slog.Debug("Failed to sync recorded file", "file", w.filePath, "error", err)
	}
}

// release stops and releases the device, closes the file, clears the
// flag and fires the stopped event. It runs exactly once, on every exit
// path including a forced shutdown.
func (w *fileWriter) release() {
	w.releaseOne.Do(func() {
		if err := w.capture.Close(); err != nil {
			slog.Debug("Failed to release capture device", "error", err)
		}
		if err := w.file.Close(); err != nil {
			slog.Debug("Failed to close recorded file", "file", w.filePath, "error", err)
		}
		w.recording.Store(false)
		Notify(w.listener(), RecordingStopped, w.filePath)
	})
}
