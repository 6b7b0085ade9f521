package audio

import "testing"

func TestEventString(t *testing.T) {
	t.Parallel()

	cases := map[Event]string{
		PlaybackStarted:  "playback-started",
		PlaybackStopped:  "playback-stopped",
		PlaybackPaused:   "playback-paused",
		RecordingStarted: "recording-started",
		RecordingStopped: "recording-stopped",
		RecordingPaused:  "recording-paused",
		Event(99):        "unknown",
	}

	for event, want := range cases {
		if got := event.String(); got != want {
			t.Errorf("Event(%d).String() = %q, want %q", int(event), got, want)
		}
	}
}

func TestNotify_NilListener(t *testing.T) {
	t.Parallel()

	// must be a silent no-op
	Notify(nil, RecordingStarted, "a.wav")
}

func TestNotify_PanicContained(t *testing.T) {
	t.Parallel()

	Notify(panickyListener{}, RecordingStarted, "a.wav")
}
