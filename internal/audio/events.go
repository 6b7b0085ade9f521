package audio

import "log/slog"

// Event identifies a lifecycle transition of a recording or playback
// session. The numeric values are part of the observer contract.
type Event int

const (
	PlaybackStarted Event = 10
	PlaybackStopped Event = 11
	PlaybackPaused  Event = 12

	RecordingStarted Event = 20
	RecordingStopped Event = 21
	RecordingPaused  Event = 22
)

func (e Event) String() string {
	switch e {
	case PlaybackStarted:
		return "playback-started"
	case PlaybackStopped:
		return "playback-stopped"
	case PlaybackPaused:
		return "playback-paused"
	case RecordingStarted:
		return "recording-started"
	case RecordingStopped:
		return "recording-stopped"
	case RecordingPaused:
		return "recording-paused"
	}
	return "unknown"
}

// Listener receives session lifecycle events. The file path names the
// file being recorded or played; position is the relative position in
// the file where the event occurred (currently always 0, no progress
// tracking is implemented).
type Listener interface {
	OnWaveEvent(event Event, filePath string, position float64)
}

// Notify delivers an event to a listener. Sessions hold their listener
// non-owningly: a nil listener is a silent no-op, and a listener that
// panics is logged and never destabilizes the session.
func Notify(l Listener, event Event, filePath string) {
	if l == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("Error when invoking wave listener", "event", event.String(), "file", filePath, "panic", r)
		}
	}()
	l.OnWaveEvent(event, filePath, 0)
}
