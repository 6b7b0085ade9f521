// Package play implements WAVE file playback through an audio backend.
package play

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pixmob/wavebox/internal/audio"
	"github.com/pixmob/wavebox/internal/wave"
)

const (
	numChannels   = 1
	bitsPerSample = 16
)

const stopGracePeriod = 5 * time.Second

// Player plays a mono 16-bit PCM WAVE file on the playback device. The
// transfer loop runs in a dedicated goroutine; Play returns as soon as
// the loop is started.
type Player struct {
	filePath    string
	backend     audio.Backend
	stopTimeout time.Duration

	mu       sync.Mutex
	listener audio.Listener
	reader   *fileReader
}

// NewPlayer creates a player for the given file path.
func NewPlayer(filePath string, backend audio.Backend) (*Player, error) {
	if filePath == "" {
		return nil, fmt.Errorf("%w: file path is required", audio.ErrInvalidArgument)
	}
	return &Player{
		filePath:    filePath,
		backend:     backend,
		stopTimeout: stopGracePeriod,
	}, nil
}

// SetListener registers the observer notified of lifecycle events. The
// player does not own the listener; passing nil detaches it.
func (p *Player) SetListener(l audio.Listener) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listener = l
}

func (p *Player) currentListener() audio.Listener {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.listener
}

// Seek validates the relative position but performs no repositioning;
// seeking within a stream is not implemented.
func (p *Player) Seek(position float64) error {
	if position < 0 || position > 1 {
		return fmt.Errorf("%w: invalid seek position: %v", audio.ErrInvalidArgument, position)
	}
	slog.Warn("Seek not implemented")
	return nil
}

// Pause is not implemented.
func (p *Player) Pause() {
	slog.Warn("Pause not implemented")
}

// Play starts playback in a worker goroutine. The file's WAVE header is
// decoded first to obtain the sample rate; header validation failures
// and device initialization failures are returned synchronously.
func (p *Player) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.reader != nil && !p.reader.finished() {
		return fmt.Errorf("%w: playback already in progress", audio.ErrInvalidArgument)
	}

	file, err := os.Open(p.filePath)
	if err != nil {
		return fmt.Errorf("%w: %v", audio.ErrInvalidArgument, err)
	}

	// reading the header also positions the cursor past it
	header := make([]byte, wave.HeaderLen)
	if _, err := io.ReadFull(file, header); err != nil {
		file.Close()
		return fmt.Errorf("%w: %v", audio.ErrInvalidAudioFile, wave.ErrTruncatedHeader)
	}
	sampleRate, err := wave.DecodeSampleRate(header)
	if err != nil {
		file.Close()
		return fmt.Errorf("%w: %v", audio.ErrInvalidAudioFile, err)
	}

	minBufferSize, err := p.backend.MinBufferSize(int(sampleRate), numChannels, bitsPerSample)
	if err != nil {
		file.Close()
		return fmt.Errorf("%w: %v", audio.ErrDeviceInitFailed, err)
	}
	// a longer buffer absorbs file I/O latency and prevents audio gaps
	bufferSize := 2 * minBufferSize

	playback, err := p.backend.OpenPlayback(int(sampleRate), numChannels, bitsPerSample, bufferSize)
	if err != nil {
		file.Close()
		return fmt.Errorf("%w: %v", audio.ErrDeviceInitFailed, err)
	}

	r := &fileReader{
		filePath: p.filePath,
		file:     file,
		playback: playback,
		buffer:   make([]byte, bufferSize),
		done:     make(chan struct{}),
		listener: p.currentListener,
	}
	r.playing.Store(true)
	p.reader = r

	go r.run()
	return nil
}

// Stop requests a graceful stop and waits up to the grace period for the
// worker to exit, then forces a shutdown that still releases the device
// and file handles. Idempotent: with no playback in progress it is a
// no-op.
func (p *Player) Stop() {
	p.mu.Lock()
	r := p.reader
	p.reader = nil
	p.mu.Unlock()

	if r == nil {
		return
	}

	r.playing.Store(false)

	select {
	case <-r.done:
	case <-time.After(p.stopTimeout):
		slog.Warn("Playback worker did not stop within grace period, forcing shutdown", "file", r.filePath)
		r.release()
		<-r.done
	}
}

// Done returns a channel closed when the current playback worker exits.
// With no playback in progress the returned channel is already closed.
func (p *Player) Done() <-chan struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.reader == nil {
		closed := make(chan struct{})
		close(closed)
		return closed
	}
	return p.reader.done
}

// fileReader is the playback worker. It exclusively owns the transfer
// buffer, file handle and playback handle for its lifetime; the only
// state shared with the controller is the playing flag.
type fileReader struct {
	filePath   string
	file       *os.File
	playback   audio.Playback
	buffer     []byte
	playing    atomic.Bool
	done       chan struct{}
	releaseOne sync.Once
	listener   func() audio.Listener
}

func (r *fileReader) finished() bool {
	select {
	case <-r.done:
		return true
	default:
		return false
	}
}

func (r *fileReader) run() {
	defer close(r.done)

	slog.Info("Start playing audio data from file", "file", r.filePath)
	audio.Notify(r.listener(), audio.PlaybackStarted, r.filePath)

	r.transfer()
	r.release()

	slog.Info("Stop playing audio data from file", "file", r.filePath)
}

// transfer moves PCM data from the file to the device until the flag is
// cleared, the file is exhausted, or the device reports an error.
func (r *fileReader) transfer() {
	for r.playing.Load() {
		n, err := r.file.Read(r.buffer)
		if n < 1 {
			if err != nil && err != io.EOF {
				slog.Warn("I/O error when reading audio data from file", "file", r.filePath, "error", err)
			}
			break
		}

		// the device may perform short writes; hand over everything read
		delivered := 0
		for delivered < n {
			m, werr := r.playback.Write(r.buffer[delivered:n])
			if werr != nil {
				slog.Error("Failed to play audio data", "file", r.filePath, "error", werr)
				return
			}
			delivered += m
		}
	}
}

// release stops and releases the device, closes the file, clears the
// flag and fires the stopped event. It runs exactly once, on every exit
// path including a forced shutdown.
func (r *fileReader) release() {
	r.releaseOne.Do(func() {
		if err := r.playback.Close(); err != nil {
			slog.Debug("Failed to release playback device", "error", err)
		}
		if err := r.file.Close(); err != nil {
			slog.Debug("Failed to close audio file", "file", r.filePath, "error", err)
		}
		r.playing.Store(false)
		audio.Notify(r.listener(), audio.PlaybackStopped, r.filePath)
	})
}
