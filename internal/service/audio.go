package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/askroom/askroom/internal/audio"
	"github.com/askroom/askroom/internal/domain"
	"github.com/askroom/askroom/internal/telemetry"
)

// ArchiveClient stores raw audio payloads in object storage. Archiving is
// best-effort and independent of the chunk's unit of work.
type ArchiveClient interface {
	PutObject(ctx context.Context, key, contentType string, data []byte) error
}

// AudioService ingests room audio: structural validation, transcription,
// embedding, and persistence of the resulting transcript chunk.
type AudioService struct {
	validator  *audio.Validator
	rooms      RoomRepositoryInterface
	ai         AIClient
	tx         TxRunner
	archive    ArchiveClient
	uuidGen    UUIDGenerator
	dimensions int
}

// NewAudioService creates a new AudioService instance. archive may be nil
// when no object storage is configured.
func NewAudioService(
	validator *audio.Validator,
	rooms RoomRepositoryInterface,
	ai AIClient,
	tx TxRunner,
	archive ArchiveClient,
	dimensions int,
) *AudioService {
	return &AudioService{
		validator:  validator,
		rooms:      rooms,
		ai:         ai,
		tx:         tx,
		archive:    archive,
		uuidGen:    &DefaultUUIDGenerator{},
		dimensions: dimensions,
	}
}

// NewAudioServiceWithUUIDGen creates a new AudioService with a custom UUID
// generator (for testing)
func NewAudioServiceWithUUIDGen(
	validator *audio.Validator,
	rooms RoomRepositoryInterface,
	ai AIClient,
	tx TxRunner,
	archive ArchiveClient,
	dimensions int,
	uuidGen UUIDGenerator,
) *AudioService {
	svc := NewAudioService(validator, rooms, ai, tx, archive, dimensions)
	svc.uuidGen = uuidGen
	return svc
}

// UploadAudioInput represents an uploaded audio payload for a room
type UploadAudioInput struct {
	RoomID      string
	Data        []byte
	ContentType string
}

// UploadAudioOutput is the public projection of an ingested chunk
type UploadAudioOutput struct {
	ChunkID       string
	RoomID        string
	Transcription string
	CreatedOn     time.Time
}

// Upload validates the payload, transcribes and embeds it, and commits the
// resulting transcript chunk. Validation and room lookup run before any AI
// call. If the chunk commits and archiving the raw audio fails, the failure
// is logged and the upload still succeeds; the archive is an independent
// collaborator, not part of the unit of work.
func (s *AudioService) Upload(ctx context.Context, input UploadAudioInput) (*UploadAudioOutput, error) {
	ctx, span := telemetry.StartSpan(ctx, "AudioService.Upload", telemetry.SpanAttributes{
		RoomID:    input.RoomID,
		Operation: "upload_audio",
	})
	defer span.End()

	if err := s.validator.Validate(input.Data, input.ContentType); err != nil {
		return nil, err
	}

	room, err := s.rooms.GetByID(ctx, input.RoomID)
	if err != nil {
		return nil, err
	}

	transcription, err := s.ai.Transcribe(ctx, input.Data, input.ContentType)
	if err != nil {
		span.SetError(err)
		return nil, aiServiceError("failed to transcribe audio", err)
	}
	log.Printf("audio: transcribed %d bytes into %d chars for room %s", len(input.Data), len(transcription), room.ID)

	embedding, err := s.ai.GenerateEmbedding(ctx, transcription)
	if err != nil {
		span.SetError(err)
		return nil, aiServiceError("failed to generate transcription embedding", err)
	}

	chunk := domain.NewTranscriptChunk(s.uuidGen.NewString(), room.ID, transcription, embedding, time.Now().UTC())
	if err := domain.ValidateTranscriptChunk(chunk, s.dimensions); err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeValidation, "invalid transcript chunk", err)
	}

	err = s.tx.WithTx(ctx, func(repos TxRepositories) error {
		return repos.Chunks().Create(ctx, chunk)
	})
	if err != nil {
		span.SetError(err)
		return nil, storageError("failed to persist transcript chunk", err)
	}

	if s.archive != nil {
		key := archiveKey(room.ID, chunk.ID)
		if err := s.archive.PutObject(ctx, key, input.ContentType, input.Data); err != nil {
			log.Printf("audio: failed to archive raw audio for chunk %s: %v", chunk.ID, err)
		}
	}

	return &UploadAudioOutput{
		ChunkID:       chunk.ID,
		RoomID:        chunk.RoomID,
		Transcription: chunk.Transcription,
		CreatedOn:     chunk.CreatedOn,
	}, nil
}

func archiveKey(roomID, chunkID string) string {
	return fmt.Sprintf("rooms/%s/chunks/%s", roomID, chunkID)
}
