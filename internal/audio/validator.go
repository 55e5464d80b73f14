// Package audio validates uploaded audio payloads before any paid
// transcription call is made. Validation is structural only: size, declared
// content type, and a magic-byte sniff of the first bytes. No decoding.
package audio

import (
	"fmt"
	"io"
	"strings"

	"github.com/askroom/askroom/internal/domain"
)

// DefaultMaxBytes is the default upload size limit (10 MiB).
const DefaultMaxBytes = 10 * 1024 * 1024

// sniffLen is how many leading bytes the signature check inspects.
const sniffLen = 32

var allowedContentTypes = map[string]struct{}{
	"audio/mpeg":  {},
	"audio/mp3":   {},
	"audio/wav":   {},
	"audio/x-wav": {},
	"audio/ogg":   {},
	"audio/mp4":   {},
	"audio/flac":  {},
	"audio/webm":  {},
}

// Validator checks uploaded audio payloads against the configured size
// limit, the content-type allow-list, and known container signatures.
type Validator struct {
	maxBytes int64
}

// NewValidator creates a Validator with the given size limit. A
// non-positive limit falls back to DefaultMaxBytes.
func NewValidator(maxBytes int64) *Validator {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Validator{maxBytes: maxBytes}
}

// Validate returns nil when data looks like a recognized audio container
// of an allowed content type within the size limit. All failures are
// validation errors; Validate has no side effects.
func (v *Validator) Validate(data []byte, contentType string) error {
	if len(data) == 0 {
		return domain.ErrAudioNotFound
	}

	if int64(len(data)) > v.maxBytes {
		return domain.NewDomainError(domain.ErrCodeValidation,
			fmt.Sprintf("audio file exceeds the maximum allowed size of %d MiB", v.maxBytes/(1024*1024)))
	}

	if _, ok := allowedContentTypes[strings.ToLower(contentType)]; !ok {
		return domain.ErrAudioInvalidFormat
	}

	if !DetectSignature(data) {
		return domain.ErrAudioInvalidType
	}

	return nil
}

// MaxBytes returns the configured size limit.
func (v *Validator) MaxBytes() int64 {
	return v.maxBytes
}

// DetectSignature reports whether buf starts with a known audio container
// signature. Only the first 32 bytes are inspected.
func DetectSignature(buf []byte) bool {
	if len(buf) > sniffLen {
		buf = buf[:sniffLen]
	}
	if len(buf) < 4 {
		return false
	}

	return isMP3(buf) || isWAV(buf) || isOgg(buf) || isFLAC(buf) || isWebM(buf) || isMP4Audio(buf)
}

// SniffReader checks the signature by reading up to 32 bytes from r and
// restores the original read position, so the caller can re-read the full
// payload afterwards.
func SniffReader(r io.ReadSeeker) (bool, error) {
	pos, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return false, err
	}

	buf := make([]byte, sniffLen)
	n, err := io.ReadFull(r, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return false, err
	}

	if _, err := r.Seek(pos, io.SeekStart); err != nil {
		return false, err
	}

	return DetectSignature(buf[:n]), nil
}

func isMP3(buf []byte) bool {
	// ID3v2 tag header.
	if buf[0] == 0x49 && buf[1] == 0x44 && buf[2] == 0x33 {
		return true
	}
	// MPEG frame sync: 11 set bits.
	return buf[0] == 0xFF && buf[1]&0xE0 == 0xE0
}

func isWAV(buf []byte) bool {
	return len(buf) >= 12 &&
		buf[0] == 'R' && buf[1] == 'I' && buf[2] == 'F' && buf[3] == 'F' &&
		buf[8] == 'W' && buf[9] == 'A' && buf[10] == 'V' && buf[11] == 'E'
}

func isOgg(buf []byte) bool {
	return buf[0] == 'O' && buf[1] == 'g' && buf[2] == 'g' && buf[3] == 'S'
}

func isFLAC(buf []byte) bool {
	return buf[0] == 'f' && buf[1] == 'L' && buf[2] == 'a' && buf[3] == 'C'
}

func isWebM(buf []byte) bool {
	// EBML header followed by a "webm" doc type marker somewhere in the
	// sniffed window.
	if buf[0] != 0x1A || buf[1] != 0x45 || buf[2] != 0xDF || buf[3] != 0xA3 {
		return false
	}
	for i := 4; i+4 <= len(buf); i++ {
		if buf[i] == 'w' && buf[i+1] == 'e' && buf[i+2] == 'b' && buf[i+3] == 'm' {
			return true
		}
	}
	return false
}

var mp4AudioBrands = []string{"M4A ", "mp42", "isom", "aac "}

func isMP4Audio(buf []byte) bool {
	// ISO-BMFF: a "ftyp" box with an audio-compatible major brand.
	if len(buf) < 12 {
		return false
	}
	if buf[4] != 'f' || buf[5] != 't' || buf[6] != 'y' || buf[7] != 'p' {
		return false
	}
	brand := string(buf[8:12])
	for _, b := range mp4AudioBrands {
		if brand == b {
			return true
		}
	}
	return false
}
