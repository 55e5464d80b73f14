package audio

import (
	"bytes"
	"io"
	"testing"

	"github.com/askroom/askroom/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mp3Frame builds a payload starting with an MPEG frame sync.
func mp3Frame(size int) []byte {
	data := make([]byte, size)
	data[0] = 0xFF
	data[1] = 0xFB
	data[2] = 0x90
	return data
}

func wavHeader() []byte {
	data := make([]byte, 64)
	copy(data[0:4], "RIFF")
	copy(data[8:12], "WAVE")
	return data
}

func TestValidator_Validate(t *testing.T) {
	v := NewValidator(DefaultMaxBytes)

	t.Run("zero-length file is rejected", func(t *testing.T) {
		err := v.Validate(nil, "audio/mpeg")
		assert.ErrorIs(t, err, domain.ErrAudioNotFound)
	})

	t.Run("file exactly at the size limit is accepted", func(t *testing.T) {
		err := v.Validate(mp3Frame(DefaultMaxBytes), "audio/mpeg")
		assert.NoError(t, err)
	})

	t.Run("file one byte over the limit is rejected", func(t *testing.T) {
		err := v.Validate(mp3Frame(DefaultMaxBytes+1), "audio/mpeg")
		require.Error(t, err)
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.ErrCodeValidation, domainErr.Code)
		assert.Contains(t, domainErr.Message, "10 MiB")
	})

	t.Run("content type outside the allow-list is rejected", func(t *testing.T) {
		err := v.Validate(mp3Frame(64), "text/plain")
		assert.ErrorIs(t, err, domain.ErrAudioInvalidFormat)
	})

	t.Run("content type comparison is case-insensitive", func(t *testing.T) {
		err := v.Validate(mp3Frame(64), "Audio/MPEG")
		assert.NoError(t, err)
	})

	t.Run("allowed content type with random bytes is rejected", func(t *testing.T) {
		data := bytes.Repeat([]byte{0x42}, 64)
		err := v.Validate(data, "audio/mpeg")
		assert.ErrorIs(t, err, domain.ErrAudioInvalidType)
	})

	t.Run("wav payload passes", func(t *testing.T) {
		assert.NoError(t, v.Validate(wavHeader(), "audio/wav"))
	})
}

func TestNewValidator_DefaultLimit(t *testing.T) {
	v := NewValidator(0)
	assert.Equal(t, int64(DefaultMaxBytes), v.MaxBytes())
}

func TestDetectSignature(t *testing.T) {
	webm := append([]byte{0x1A, 0x45, 0xDF, 0xA3, 0x01, 0x00}, []byte("webm")...)
	webmNoMarker := []byte{0x1A, 0x45, 0xDF, 0xA3, 0x01, 0x00, 0x00, 0x00}

	m4a := make([]byte, 16)
	copy(m4a[4:8], "ftyp")
	copy(m4a[8:12], "M4A ")

	ftypVideo := make([]byte, 16)
	copy(ftypVideo[4:8], "ftyp")
	copy(ftypVideo[8:12], "avc1")

	tests := []struct {
		name string
		data []byte
		want bool
	}{
		{"id3 tagged mp3", append([]byte("ID3"), make([]byte, 16)...), true},
		{"mp3 frame sync", []byte{0xFF, 0xFB, 0x90, 0x00}, true},
		{"mp3 frame sync variant", []byte{0xFF, 0xE0, 0x00, 0x00}, true},
		{"almost frame sync", []byte{0xFF, 0x1F, 0x00, 0x00}, false},
		{"riff wave", wavHeader(), true},
		{"riff without wave", append([]byte("RIFFxxxxAVI "), make([]byte, 8)...), false},
		{"ogg", []byte("OggS\x00\x02"), true},
		{"flac", []byte("fLaC\x00\x00\x00\x22"), true},
		{"webm with marker", webm, true},
		{"ebml without webm marker", webmNoMarker, false},
		{"m4a ftyp", m4a, true},
		{"ftyp with video brand", ftypVideo, false},
		{"too short", []byte{0xFF}, false},
		{"random bytes", bytes.Repeat([]byte{0x42}, 32), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectSignature(tt.data))
		})
	}
}

func TestSniffReader_RestoresPosition(t *testing.T) {
	payload := mp3Frame(128)
	r := bytes.NewReader(payload)

	ok, err := SniffReader(r)
	require.NoError(t, err)
	assert.True(t, ok)

	// The full payload must still be readable from the start.
	rest, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, payload, rest)
}

func TestSniffReader_ShortPayload(t *testing.T) {
	r := bytes.NewReader([]byte("Og"))
	ok, err := SniffReader(r)
	require.NoError(t, err)
	assert.False(t, ok)
}
