package audio

import (
	"sync"
)

// mockBackend is a scripted Backend for tests.
type mockBackend struct {
	minSize    int
	minErr     error
	supported  map[int]bool // nil means every rate is supported
	capture    *mockCapture
	openCapErr error
}

func (b *mockBackend) MinBufferSize(sampleRate, channels, bitsPerSample int) (int, error) {
	if b.minErr != nil {
		return 0, b.minErr
	}
	if b.supported != nil && !b.supported[sampleRate] {
		return 0, ErrDeviceUnsupported
	}
	return b.minSize, nil
}

func (b *mockBackend) OpenCapture(sampleRate, channels, bitsPerSample, bufferSize int) (Capture, error) {
	if b.openCapErr != nil {
		return nil, b.openCapErr
	}
	return b.capture, nil
}

func (b *mockBackend) OpenPlayback(sampleRate, channels, bitsPerSample, bufferSize int) (Playback, error) {
	return nil, ErrDeviceUnsupported
}

func (b *mockBackend) Type() BackendType { return BackendType("mock") }

// mockCapture feeds a fixed sequence of buffers. When the sequence is
// exhausted it reports endErr, or the natural (0, nil) end of stream
// when endErr is nil. With block set, Read hangs until Close.
type mockCapture struct {
	mu     sync.Mutex
	chunks [][]byte
	endErr error
	block  bool

	closed    chan struct{}
	closeOnce sync.Once
}

func newMockCapture(chunks [][]byte, endErr error, block bool) *mockCapture {
	return &mockCapture{
		chunks: chunks,
		endErr: endErr,
		block:  block,
		closed: make(chan struct{}),
	}
}

func (c *mockCapture) Read(p []byte) (int, error) {
	if c.block {
		// simulates a device call that never returns until released
		<-c.closed
		return 0, ErrDeviceFailure
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.chunks) == 0 {
		return 0, c.endErr
	}
	chunk := c.chunks[0]
	c.chunks = c.chunks[1:]
	return copy(p, chunk), nil
}

func (c *mockCapture) Close() error {
	c.closeOnce.Do(func() { close(c.closed) })
	return nil
}

func (c *mockCapture) isClosed() bool {
	select {
	case <-c.closed:
		return true
	default:
		return false
	}
}

// eventCollector records listener callbacks and signals each one on a
// channel so tests can wait for lifecycle transitions.
type eventCollector struct {
	mu     sync.Mutex
	events []Event
	ch     chan Event
}

func newEventCollector() *eventCollector {
	return &eventCollector{ch: make(chan Event, 16)}
}

func (c *eventCollector) OnWaveEvent(event Event, filePath string, position float64) {
	c.mu.Lock()
	c.events = append(c.events, event)
	c.mu.Unlock()
	c.ch <- event
}

func (c *eventCollector) count(event Event) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, e := range c.events {
		if e == event {
			n++
		}
	}
	return n
}
