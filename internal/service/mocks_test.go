package service

import (
	"context"

	"github.com/askroom/askroom/internal/domain"
	"github.com/askroom/askroom/internal/pagination"
	"github.com/stretchr/testify/mock"
)

// MockRoomRepository is a mock implementation of RoomRepositoryInterface
type MockRoomRepository struct {
	mock.Mock
}

func (m *MockRoomRepository) Create(ctx context.Context, room *domain.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

func (m *MockRoomRepository) GetByID(ctx context.Context, id string) (*domain.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

func (m *MockRoomRepository) ListWithCursor(ctx context.Context, cursor *pagination.Cursor, limit int) ([]*domain.RoomSummary, error) {
	args := m.Called(ctx, cursor, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.RoomSummary), args.Error(1)
}

func (m *MockRoomRepository) Deactivate(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockQuestionRepository is a mock implementation of QuestionRepositoryInterface
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) Create(ctx context.Context, q *domain.Question) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *MockQuestionRepository) ListByRoom(ctx context.Context, roomID string) ([]*domain.Question, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Question), args.Error(1)
}

// MockChunkRepository is a mock implementation of ChunkRepositoryInterface
type MockChunkRepository struct {
	mock.Mock
}

func (m *MockChunkRepository) Create(ctx context.Context, chunk *domain.TranscriptChunk) error {
	args := m.Called(ctx, chunk)
	return args.Error(0)
}

func (m *MockChunkRepository) FindNearest(ctx context.Context, roomID string, queryVec []float32, limit int, similarityThreshold float64) ([]*domain.TranscriptChunk, error) {
	args := m.Called(ctx, roomID, queryVec, limit, similarityThreshold)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.TranscriptChunk), args.Error(1)
}

// MockAIClient is a mock implementation of AIClient
type MockAIClient struct {
	mock.Mock
}

func (m *MockAIClient) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	args := m.Called(ctx, audio, mimeType)
	return args.String(0), args.Error(1)
}

func (m *MockAIClient) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float32), args.Error(1)
}

func (m *MockAIClient) GenerateAnswer(ctx context.Context, question string, contexts []string) (string, error) {
	args := m.Called(ctx, question, contexts)
	return args.String(0), args.Error(1)
}

// MockUUIDGenerator returns a fixed sequence of IDs
type MockUUIDGenerator struct {
	callCount int
	uuids     []string
}

func NewMockUUIDGenerator(uuids ...string) *MockUUIDGenerator {
	return &MockUUIDGenerator{uuids: uuids}
}

func (m *MockUUIDGenerator) NewString() string {
	if m.callCount < len(m.uuids) {
		uuid := m.uuids[m.callCount]
		m.callCount++
		return uuid
	}
	return "default-uuid"
}

// fakeTxRunner runs the unit of work against the given repositories without
// a real transaction. A non-nil err simulates a commit failure: fn never runs.
type fakeTxRunner struct {
	rooms     RoomRepositoryInterface
	questions QuestionRepositoryInterface
	chunks    ChunkRepositoryInterface
	err       error
}

func (f *fakeTxRunner) WithTx(ctx context.Context, fn func(repos TxRepositories) error) error {
	if f.err != nil {
		return f.err
	}
	return fn(f)
}

func (f *fakeTxRunner) Rooms() RoomRepositoryInterface         { return f.rooms }
func (f *fakeTxRunner) Questions() QuestionRepositoryInterface { return f.questions }
func (f *fakeTxRunner) Chunks() ChunkRepositoryInterface       { return f.chunks }
