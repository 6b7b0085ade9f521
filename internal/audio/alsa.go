package audio

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"sync"
	"time"
)

// ALSABackend implements the Backend interface on top of the ALSA
// command line tools, streaming raw S16_LE PCM through arecord/aplay
// subprocess pipes.
type ALSABackend struct {
	device string
}

// NewALSABackend creates a backend bound to the given ALSA device name.
// An empty device selects the ALSA default.
func NewALSABackend(device string) *ALSABackend {
	return &ALSABackend{device: device}
}

// Type returns the backend type
func (b *ALSABackend) Type() BackendType {
	return BackendTypeALSA
}

// MinBufferSize returns the minimum safe buffer size in bytes, sized for
// roughly 100ms of audio at the given stream parameters.
func (b *ALSABackend) MinBufferSize(sampleRate, channels, bitsPerSample int) (int, error) {
	if sampleRate <= 0 || channels < 1 || bitsPerSample%8 != 0 || bitsPerSample == 0 {
		return 0, fmt.Errorf("%w: rate=%d channels=%d bits=%d", ErrDeviceBadValue, sampleRate, channels, bitsPerSample)
	}
	if bitsPerSample != 16 {
		return 0, fmt.Errorf("%w: only 16-bit PCM is implemented", ErrDeviceUnsupported)
	}
	frameSize := channels * bitsPerSample / 8
	return sampleRate * frameSize / 10, nil
}

// OpenCapture starts an arecord subprocess delivering raw PCM on stdout.
func (b *ALSABackend) OpenCapture(sampleRate, channels, bitsPerSample, bufferSize int) (Capture, error) {
	if _, err := b.MinBufferSize(sampleRate, channels, bitsPerSample); err != nil {
		return nil, err
	}

	bin, err := exec.LookPath("arecord")
	if err != nil {
		return nil, fmt.Errorf("%w: arecord not found", ErrDeviceUnsupported)
	}

	args := b.rawArgs(sampleRate, channels, bufferSize)
	cmd := exec.Command(bin, args...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeviceFailure, err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeviceFailure, err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeviceFailure, err)
	}

	slog.Debug("ALSA capture started", "device", b.device, "rate", sampleRate, "channels", channels)
	go relayStderr(stderr, "arecord")

	return &alsaCapture{cmd: cmd, stdout: stdout}, nil
}

// OpenPlayback starts an aplay subprocess consuming raw PCM on stdin.
func (b *ALSABackend) OpenPlayback(sampleRate, channels, bitsPerSample, bufferSize int) (Playback, error) {
	if _, err := b.MinBufferSize(sampleRate, channels, bitsPerSample); err != nil {
		return nil, err
	}

	bin, err := exec.LookPath("aplay")
	if err != nil {
		return nil, fmt.Errorf("%w: aplay not found", ErrDeviceUnsupported)
	}

	args := b.rawArgs(sampleRate, channels, bufferSize)
	cmd := exec.Command(bin, args...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeviceFailure, err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeviceFailure, err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeviceFailure, err)
	}

	slog.Debug("ALSA playback started", "device", b.device, "rate", sampleRate, "channels", channels)
	go relayStderr(stderr, "aplay")

	return &alsaPlayback{cmd: cmd, stdin: stdin}, nil
}

// rawArgs builds the shared arecord/aplay argument list for raw S16_LE.
func (b *ALSABackend) rawArgs(sampleRate, channels, bufferSize int) []string {
	args := []string{
		"-q",
		"-t", "raw",
		"-f", "S16_LE",
		"-c", strconv.Itoa(channels),
		"-r", strconv.Itoa(sampleRate),
	}
	if b.device != "" {
		args = append(args, "-D", b.device)
	}
	if bufferSize > 0 {
		args = append(args, "--buffer-size", strconv.Itoa(bufferSize))
	}
	return args
}

// relayStderr forwards subprocess diagnostics to the log.
func relayStderr(pipe io.ReadCloser, label string) {
	scanner := bufio.NewScanner(pipe)
	for scanner.Scan() {
		slog.Debug("ALSA output", "tool", label, "line", scanner.Text())
	}
	pipe.Close()
}

type alsaCapture struct {
	cmd    *exec.Cmd
	stdout io.ReadCloser
	once   sync.Once
}

func (c *alsaCapture) Read(p []byte) (int, error) {
	n, err := c.stdout.Read(p)
	if err == io.EOF {
		// subprocess ended, natural end of stream
		return n, nil
	}
	if err != nil {
		return n, fmt.Errorf("%w: %v", ErrDeviceFailure, err)
	}
	return n, nil
}

func (c *alsaCapture) Close() error {
	c.once.Do(func() {
		stopProcess(c.cmd, "arecord")
		c.stdout.Close()
	})
	return nil
}

type alsaPlayback struct {
	cmd   *exec.Cmd
	stdin io.WriteCloser
	once  sync.Once
}

func (p *alsaPlayback) Write(b []byte) (int, error) {
	n, err := p.stdin.Write(b)
	if err != nil {
		return n, fmt.Errorf("%w: %v", ErrDeviceFailure, err)
	}
	return n, nil
}

func (p *alsaPlayback) Close() error {
	p.once.Do(func() {
		// closing stdin lets aplay drain its buffer and exit
		p.stdin.Close()
		stopProcess(p.cmd, "aplay")
	})
	return nil
}

// stopProcess asks the subprocess to exit and kills it when it does not
// comply within the timeout.
func stopProcess(cmd *exec.Cmd, label string) {
	if cmd.Process == nil {
		return
	}

	if err := cmd.Process.Signal(os.Interrupt); err != nil {
		slog.Debug("Failed to interrupt process, killing", "tool", label, "error", err)
		cmd.Process.Kill()
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	select {
	case err := <-done:
		if err != nil {
			slog.Debug("Process exited", "tool", label, "error", err)
		}
	case <-time.After(5 * time.Second):
		slog.Warn("Process did not exit within timeout, force killing", "tool", label)
		cmd.Process.Kill()
		<-done
	}
}
