package wave

import (
	"bytes"
	"encoding/binary"
)

// HeaderLen is the length of a canonical WAVE/PCM header.
const HeaderLen = 44

// Chunk tags are raw ASCII bytes, independent of host endianness.
var (
	tagRIFF = []byte("RIFF")
	tagWAVE = []byte("WAVE")
	tagFmt  = []byte("fmt ")
	tagData = []byte("data")
)

// EncodeHeader builds a 44-byte WAVE header for uncompressed PCM audio.
// The chunk-size field (offset 4) and the data subchunk size (offset 40)
// are left at zero; call PatchSizes once the PCM byte count is known.
// All multi-byte numeric fields are little-endian.
func EncodeHeader(sampleRate, channels, bitsPerSample int) []byte {
	byteRate := uint32(sampleRate) * uint32(channels) * uint32(bitsPerSample/8)
	blockAlign := uint16(channels) * uint16(bitsPerSample/8)

	header := make([]byte, HeaderLen)

	// RIFF chunk descriptor
	copy(header[0:4], tagRIFF)
	// chunk size written later by PatchSizes
	copy(header[8:12], tagWAVE)

	// fmt subchunk
	copy(header[12:16], tagFmt)
	binary.LittleEndian.PutUint32(header[16:20], 16) // PCM fmt chunk size
	binary.LittleEndian.PutUint16(header[20:22], 1)  // PCM audio format
	binary.LittleEndian.PutUint16(header[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], byteRate)
	binary.LittleEndian.PutUint16(header[32:34], blockAlign)
	binary.LittleEndian.PutUint16(header[34:36], uint16(bitsPerSample))

	// data subchunk, size written later by PatchSizes
	copy(header[36:40], tagData)

	return header
}

// PatchSizes rewrites the two deferred byte-count fields in header:
// the data subchunk size at offset 40 becomes dataByteCount, and the
// RIFF chunk size at offset 4 becomes dataByteCount+36 (everything after
// the 8-byte RIFF tag and size). No other bytes are touched.
func PatchSizes(header []byte, dataByteCount uint32) {
	binary.LittleEndian.PutUint32(header[40:44], dataByteCount)
	binary.LittleEndian.PutUint32(header[4:8], dataByteCount+36)
}

// DecodeSampleRate extracts the sample rate from a WAVE header.
//
// It fails with ErrTruncatedHeader when fewer than HeaderLen bytes are
// given, and with ErrInvalidFormat when the RIFF tag (bytes 0-3) or the
// WAVE tag (bytes 8-11) does not match exactly. The fmt subchunk, audio
// format and channel count are not validated.
func DecodeSampleRate(header []byte) (uint32, error) {
	if len(header) < HeaderLen {
		return 0, ErrTruncatedHeader
	}
	if !bytes.Equal(header[0:4], tagRIFF) {
		return 0, ErrInvalidFormat
	}
	if !bytes.Equal(header[8:12], tagWAVE) {
		return 0, ErrInvalidFormat
	}
	return binary.LittleEndian.Uint32(header[24:28]), nil
}
