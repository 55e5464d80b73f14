package domain

import (
	"fmt"
	"time"
)

// MaxTranscriptionChars bounds the length of a single transcript chunk.
const MaxTranscriptionChars = 10000

// TranscriptChunk is one transcribed, embedded segment of room audio and
// the unit of similarity retrieval. Chunks are created only by successful
// audio ingestion, never mutated, and soft-deleted via the Active flag.
type TranscriptChunk struct {
	ID            string
	RoomID        string
	Transcription string
	Embedding     []float32
	CreatedOn     time.Time
	Active        bool
}

// NewTranscriptChunk creates a new TranscriptChunk instance
func NewTranscriptChunk(id, roomID, transcription string, embedding []float32, createdOn time.Time) *TranscriptChunk {
	return &TranscriptChunk{
		ID:            id,
		RoomID:        roomID,
		Transcription: transcription,
		Embedding:     embedding,
		CreatedOn:     createdOn,
		Active:        true,
	}
}

// ValidateTranscriptChunk validates a TranscriptChunk instance against the
// deployment's embedding dimensionality.
func ValidateTranscriptChunk(c *TranscriptChunk, dimensions int) error {
	if c == nil {
		return fmt.Errorf("transcript chunk cannot be nil")
	}

	if c.ID == "" {
		return fmt.Errorf("transcript chunk ID is required")
	}

	if c.RoomID == "" {
		return fmt.Errorf("transcript chunk RoomID is required")
	}

	if c.Transcription == "" {
		return fmt.Errorf("transcript chunk Transcription is required")
	}

	if len(c.Transcription) > MaxTranscriptionChars {
		return ErrTranscriptionTooLong
	}

	if dimensions > 0 && len(c.Embedding) != dimensions {
		return fmt.Errorf("transcript chunk embedding has %d dimensions, expected %d", len(c.Embedding), dimensions)
	}

	return nil
}
