package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/askroom/askroom/internal/domain"
	"github.com/askroom/askroom/internal/telemetry"
)

// QuestionRepositoryInterface defines the repository interface for question
// persistence
type QuestionRepositoryInterface interface {
	Create(ctx context.Context, q *domain.Question) error
	ListByRoom(ctx context.Context, roomID string) ([]*domain.Question, error)
}

// ChunkSearcher retrieves the transcript chunks most similar to an
// embedding, scoped to a room.
type ChunkSearcher interface {
	FindSimilar(ctx context.Context, roomID string, embedding []float32, opts SearchOptions) ([]*domain.TranscriptChunk, error)
}

// QuestionService drives the question-answer pipeline: embed the question,
// retrieve similar transcript chunks, generate a grounded answer when any
// qualify, and persist the resulting Question record.
type QuestionService struct {
	rooms     RoomRepositoryInterface
	questions QuestionRepositoryInterface
	retriever ChunkSearcher
	ai        AIClient
	tx        TxRunner
	uuidGen   UUIDGenerator
}

// NewQuestionService creates a new QuestionService instance
func NewQuestionService(
	rooms RoomRepositoryInterface,
	questions QuestionRepositoryInterface,
	retriever ChunkSearcher,
	ai AIClient,
	tx TxRunner,
) *QuestionService {
	return &QuestionService{
		rooms:     rooms,
		questions: questions,
		retriever: retriever,
		ai:        ai,
		tx:        tx,
		uuidGen:   &DefaultUUIDGenerator{},
	}
}

// NewQuestionServiceWithUUIDGen creates a new QuestionService with a custom
// UUID generator (for testing)
func NewQuestionServiceWithUUIDGen(
	rooms RoomRepositoryInterface,
	questions QuestionRepositoryInterface,
	retriever ChunkSearcher,
	ai AIClient,
	tx TxRunner,
	uuidGen UUIDGenerator,
) *QuestionService {
	svc := NewQuestionService(rooms, questions, retriever, ai, tx)
	svc.uuidGen = uuidGen
	return svc
}

// CreateQuestionInput represents the input for asking a question in a room
type CreateQuestionInput struct {
	RoomID   string
	Question string
}

// QuestionOutput is the public projection of a persisted question
type QuestionOutput struct {
	ID        string
	RoomID    string
	Question  string
	Answer    string
	CreatedOn time.Time
}

// Create runs the answer pipeline for a question and persists the result.
// Validation and room lookup happen before any AI call so that bad requests
// never spend a paid call. An empty retrieval yields an empty answer, which
// is still persisted. Nothing is written if any earlier step fails.
func (s *QuestionService) Create(ctx context.Context, input CreateQuestionInput) (*QuestionOutput, error) {
	ctx, span := telemetry.StartSpan(ctx, "QuestionService.Create", telemetry.SpanAttributes{
		RoomID:    input.RoomID,
		Operation: "create_question",
	})
	defer span.End()

	questionText := strings.TrimSpace(input.Question)
	if questionText == "" {
		return nil, domain.ErrEmptyQuestion
	}

	room, err := s.rooms.GetByID(ctx, input.RoomID)
	if err != nil {
		return nil, err
	}

	embedding, err := s.ai.GenerateEmbedding(ctx, questionText)
	if err != nil {
		span.SetError(err)
		return nil, aiServiceError("failed to generate question embedding", err)
	}

	chunks, err := s.retriever.FindSimilar(ctx, room.ID, embedding, SearchOptions{})
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	answer := ""
	if len(chunks) > 0 {
		log.Printf("question: %d similar chunks found in room %s, generating answer", len(chunks), room.ID)

		transcriptions := make([]string, len(chunks))
		for i, chunk := range chunks {
			transcriptions[i] = chunk.Transcription
		}

		answer, err = s.ai.GenerateAnswer(ctx, questionText, transcriptions)
		if err != nil {
			span.SetError(err)
			return nil, aiServiceError("failed to generate answer", err)
		}
	} else {
		log.Printf("question: no similar chunks in room %s, answer will be empty", room.ID)
	}

	question := domain.NewQuestion(s.uuidGen.NewString(), room.ID, questionText, answer, time.Now().UTC())
	if err := domain.ValidateQuestion(question); err != nil {
		return nil, err
	}

	err = s.tx.WithTx(ctx, func(repos TxRepositories) error {
		return repos.Questions().Create(ctx, question)
	})
	if err != nil {
		span.SetError(err)
		return nil, storageError("failed to persist question", err)
	}

	return questionToOutput(question), nil
}

// ListByRoom returns the questions asked in a room, newest first.
func (s *QuestionService) ListByRoom(ctx context.Context, roomID string) ([]*QuestionOutput, error) {
	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}

	questions, err := s.questions.ListByRoom(ctx, room.ID)
	if err != nil {
		return nil, storageError("failed to list questions", err)
	}

	outputs := make([]*QuestionOutput, len(questions))
	for i, q := range questions {
		outputs[i] = questionToOutput(q)
	}
	return outputs, nil
}

func questionToOutput(q *domain.Question) *QuestionOutput {
	return &QuestionOutput{
		ID:        q.ID,
		RoomID:    q.RoomID,
		Question:  q.Question,
		Answer:    q.Answer,
		CreatedOn: q.CreatedOn,
	}
}
