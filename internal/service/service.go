// Package service coordinates recording and playback sessions: it owns
// the audio backend, enforces at most one active recording and one
// active playback, maps song names to output files and logs session
// events.
package service

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pixmob/wavebox/internal/audio"
	"github.com/pixmob/wavebox/internal/config"
	"github.com/pixmob/wavebox/internal/play"
)

// Service is the application-level facade over recorder and player.
type Service struct {
	cfg     *config.Config
	backend audio.Backend

	mu       sync.Mutex
	recorder *audio.Recorder
	player   *play.Player
}

// New creates a service using the backend selected by the configuration.
func New(cfg *config.Config) *Service {
	return NewWithBackend(cfg, audio.NewBackend(cfg.Audio.Backend, cfg.Audio.Device))
}

// NewWithBackend creates a service over an explicit backend.
func NewWithBackend(cfg *config.Config, backend audio.Backend) *Service {
	return &Service{cfg: cfg, backend: backend}
}

// OnWaveEvent implements audio.Listener by logging session events.
func (s *Service) OnWaveEvent(event audio.Event, filePath string, position float64) {
	slog.Info("Wave event", "event", event.String(), "file", filePath, "position", position)
}

// OutputPath returns the WAVE file path a song name maps to.
func (s *Service) OutputPath(songName string) string {
	return filepath.Join(s.cfg.Output.Directory, cleanFileName(songName)+".wav")
}

// Record starts recording the given song. Only one recording may be
// active at a time.
func (s *Service) Record(songName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.recorder != nil {
		return fmt.Errorf("recording already in progress")
	}
	if strings.TrimSpace(songName) == "" {
		return fmt.Errorf("%w: song name is required", audio.ErrInvalidArgument)
	}

	if err := os.MkdirAll(s.cfg.Output.Directory, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	outputFile := s.OutputPath(songName)
	rec, err := audio.NewRecorder(outputFile, s.backend)
	if err != nil {
		return err
	}
	rec.SetListener(s)

	if err := rec.Record(s.cfg.Audio.SampleRate); err != nil {
		return fmt.Errorf("failed to start recording: %w", err)
	}

	s.recorder = rec
	slog.Info("Recording started", "song", songName, "output", outputFile, "rate", s.cfg.Audio.SampleRate)
	return nil
}

// StopRecording stops the active recording, if any.
func (s *Service) StopRecording() {
	s.mu.Lock()
	rec := s.recorder
	s.recorder = nil
	s.mu.Unlock()

	if rec != nil {
		rec.Stop()
	}
}

// Play starts playback of a previously recorded song. Only one playback
// may be active at a time.
func (s *Service) Play(songName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.player != nil {
		select {
		case <-s.player.Done():
			// previous playback finished on its own
		default:
			return fmt.Errorf("playback already in progress")
		}
	}

	outputFile := s.OutputPath(songName)
	if _, err := os.Stat(outputFile); err != nil {
		return fmt.Errorf("audio file not found: %s", outputFile)
	}

	p, err := play.NewPlayer(outputFile, s.backend)
	if err != nil {
		return err
	}
	p.SetListener(s)

	if err := p.Play(); err != nil {
		return fmt.Errorf("failed to start playback: %w", err)
	}

	s.player = p
	slog.Info("Playback started", "song", songName, "file", outputFile)
	return nil
}

// StopPlayback stops the active playback, if any.
func (s *Service) StopPlayback() {
	s.mu.Lock()
	p := s.player
	s.player = nil
	s.mu.Unlock()

	if p != nil {
		p.Stop()
	}
}

// PlaybackDone returns a channel closed when the current playback ends.
// With no playback active the channel is already closed.
func (s *Service) PlaybackDone() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.player == nil {
		closed := make(chan struct{})
		close(closed)
		return closed
	}
	return s.player.Done()
}

// Stop stops both sessions.
func (s *Service) Stop() {
	s.StopRecording()
	s.StopPlayback()
}

// cleanFileName sanitizes a song name for use as a file name.
// Allows: letters, numbers, spaces, hyphens, underscores
func cleanFileName(name string) string {
	var result strings.Builder
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == ' ' || r == '-' || r == '_' {
			result.WriteRune(r)
		}
	}
	return strings.ReplaceAll(strings.TrimSpace(result.String()), " ", "_")
}
