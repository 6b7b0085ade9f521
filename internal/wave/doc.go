// Package wave implements the fixed 44-byte WAVE/PCM file header.
//
// The header is produced in two phases: EncodeHeader emits a header with
// zeroed byte-count fields before any sample data exists, and PatchSizes
// fills in the chunk sizes once the total PCM byte count is known. This
// matches how a streaming recorder writes the file: placeholder header
// first, sample data next, then a seek back to rewrite two fields.
//
// DecodeSampleRate performs the minimal validation a player needs: the
// RIFF and WAVE tags must match exactly. It deliberately does not inspect
// the fmt chunk, audio format or channel count; callers needing stricter
// validation must extend this check.
package wave
