package wave

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func TestEncodeHeader_Layout(t *testing.T) {
	t.Parallel()

	header := EncodeHeader(44100, 1, 16)

	if len(header) != HeaderLen {
		t.Fatalf("EncodeHeader() length = %d, want %d", len(header), HeaderLen)
	}

	if !bytes.Equal(header[0:4], []byte("RIFF")) {
		t.Errorf("bytes [0:4) = %q, want RIFF", header[0:4])
	}
	if !bytes.Equal(header[8:12], []byte("WAVE")) {
		t.Errorf("bytes [8:12) = %q, want WAVE", header[8:12])
	}
	if !bytes.Equal(header[12:16], []byte("fmt ")) {
		t.Errorf("bytes [12:16) = %q, want 'fmt '", header[12:16])
	}
	if !bytes.Equal(header[36:40], []byte("data")) {
		t.Errorf("bytes [36:40) = %q, want data", header[36:40])
	}

	if got := binary.LittleEndian.Uint32(header[4:8]); got != 0 {
		t.Errorf("chunk size placeholder = %d, want 0", got)
	}
	if got := binary.LittleEndian.Uint32(header[40:44]); got != 0 {
		t.Errorf("data size placeholder = %d, want 0", got)
	}

	if got := binary.LittleEndian.Uint32(header[16:20]); got != 16 {
		t.Errorf("fmt chunk size = %d, want 16", got)
	}
	if got := binary.LittleEndian.Uint16(header[20:22]); got != 1 {
		t.Errorf("audio format = %d, want 1 (PCM)", got)
	}
	if got := binary.LittleEndian.Uint16(header[22:24]); got != 1 {
		t.Errorf("channels = %d, want 1", got)
	}
	if got := binary.LittleEndian.Uint32(header[24:28]); got != 44100 {
		t.Errorf("sample rate = %d, want 44100", got)
	}
	if got := binary.LittleEndian.Uint32(header[28:32]); got != 88200 {
		t.Errorf("byte rate = %d, want 88200", got)
	}
	if got := binary.LittleEndian.Uint16(header[32:34]); got != 2 {
		t.Errorf("block align = %d, want 2", got)
	}
	if got := binary.LittleEndian.Uint16(header[34:36]); got != 16 {
		t.Errorf("bits per sample = %d, want 16", got)
	}
}

func TestDecodeSampleRate_RoundTrip(t *testing.T) {
	t.Parallel()

	// The candidate set the device backend probes.
	rates := []int{8000, 11025, 22050, 44100, 48000}

	for _, rate := range rates {
		header := EncodeHeader(rate, 1, 16)

		got, err := DecodeSampleRate(header)
		if err != nil {
			t.Fatalf("DecodeSampleRate(EncodeHeader(%d)) error = %v", rate, err)
		}
		if got != uint32(rate) {
			t.Errorf("DecodeSampleRate(EncodeHeader(%d)) = %d", rate, got)
		}
	}
}

func TestPatchSizes(t *testing.T) {
	t.Parallel()

	counts := []uint32{0, 1, 512, 65536, 0xFFFFFF}

	for _, n := range counts {
		header := EncodeHeader(22050, 1, 16)
		original := make([]byte, HeaderLen)
		copy(original, header)

		PatchSizes(header, n)

		if got := binary.LittleEndian.Uint32(header[40:44]); got != n {
			t.Errorf("PatchSizes(%d): data size = %d", n, got)
		}
		if got := binary.LittleEndian.Uint32(header[4:8]); got != n+36 {
			t.Errorf("PatchSizes(%d): chunk size = %d, want %d", n, got, n+36)
		}

		// Every byte outside the two patched fields must be untouched.
		for i := range header {
			if (i >= 4 && i < 8) || (i >= 40 && i < 44) {
				continue
			}
			if header[i] != original[i] {
				t.Errorf("PatchSizes(%d): byte %d changed from %#x to %#x", n, i, original[i], header[i])
			}
		}
	}
}

func TestDecodeSampleRate_TagMutations(t *testing.T) {
	t.Parallel()

	// Flipping any single byte of the RIFF or WAVE tag must fail the
	// decode; the match is exact and case-sensitive.
	offsets := []int{0, 1, 2, 3, 8, 9, 10, 11}

	for _, off := range offsets {
		header := EncodeHeader(44100, 1, 16)
		header[off] ^= 0x20 // case flip for ASCII letters

		if _, err := DecodeSampleRate(header); !errors.Is(err, ErrInvalidFormat) {
			t.Errorf("mutated byte %d: error = %v, want ErrInvalidFormat", off, err)
		}
	}
}

func TestDecodeSampleRate_Truncated(t *testing.T) {
	t.Parallel()

	header := EncodeHeader(44100, 1, 16)

	for n := 0; n < HeaderLen; n++ {
		if _, err := DecodeSampleRate(header[:n]); !errors.Is(err, ErrTruncatedHeader) {
			t.Errorf("len %d: error = %v, want ErrTruncatedHeader", n, err)
		}
	}
}

func TestDecodeSampleRate_LenientFields(t *testing.T) {
	t.Parallel()

	// Only the RIFF and WAVE tags are validated; a damaged fmt tag or a
	// non-PCM format code must still decode.
	header := EncodeHeader(48000, 1, 16)
	copy(header[12:16], []byte("JUNK"))
	binary.LittleEndian.PutUint16(header[20:22], 7) // mu-law

	got, err := DecodeSampleRate(header)
	if err != nil {
		t.Fatalf("DecodeSampleRate() error = %v, want nil", err)
	}
	if got != 48000 {
		t.Errorf("DecodeSampleRate() = %d, want 48000", got)
	}
}
