package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/askroom/askroom/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func activeRoom(id string) *domain.Room {
	return domain.NewRoom(id, "Physics 101", "intro lectures", time.Now().UTC())
}

func newQuestionService(rooms *MockRoomRepository, questions *MockQuestionRepository, chunks *MockChunkRepository, ai *MockAIClient, uuids ...string) *QuestionService {
	retriever := NewChunkRetriever(chunks, SearchOptions{})
	tx := &fakeTxRunner{rooms: rooms, questions: questions, chunks: chunks}
	return NewQuestionServiceWithUUIDGen(rooms, questions, retriever, ai, tx, NewMockUUIDGenerator(uuids...))
}

// TestQuestionService_Create tests the Create method
func TestQuestionService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("generates grounded answer from retrieved chunks in ranked order", func(t *testing.T) {
		mockRooms := new(MockRoomRepository)
		mockQuestions := new(MockQuestionRepository)
		mockChunks := new(MockChunkRepository)
		mockAI := new(MockAIClient)

		service := newQuestionService(mockRooms, mockQuestions, mockChunks, mockAI, "question-id-1")

		embedding := []float32{0.1, 0.2, 0.3}
		retrieved := []*domain.TranscriptChunk{
			domain.NewTranscriptChunk("chunk-1", "room-1", "first chunk", embedding, time.Now()),
			domain.NewTranscriptChunk("chunk-2", "room-1", "second chunk", embedding, time.Now()),
		}

		mockRooms.On("GetByID", mock.Anything, "room-1").Return(activeRoom("room-1"), nil)
		mockAI.On("GenerateEmbedding", mock.Anything, "What is inertia?").Return(embedding, nil)
		mockChunks.On("FindNearest", mock.Anything, "room-1", embedding, DefaultSearchLimit, DefaultSimilarityThreshold).
			Return(retrieved, nil)
		mockAI.On("GenerateAnswer", mock.Anything, "What is inertia?", []string{"first chunk", "second chunk"}).
			Return("Inertia is resistance to change in motion.", nil)
		mockQuestions.On("Create", mock.Anything, mock.MatchedBy(func(q *domain.Question) bool {
			return q.ID == "question-id-1" &&
				q.RoomID == "room-1" &&
				q.Question == "What is inertia?" &&
				q.Answer == "Inertia is resistance to change in motion." &&
				q.Active
		})).Return(nil)

		result, err := service.Create(ctx, CreateQuestionInput{RoomID: "room-1", Question: "What is inertia?"})

		require.NoError(t, err)
		assert.Equal(t, "question-id-1", result.ID)
		assert.Equal(t, "Inertia is resistance to change in motion.", result.Answer)

		mockRooms.AssertExpectations(t)
		mockQuestions.AssertExpectations(t)
		mockChunks.AssertExpectations(t)
		mockAI.AssertExpectations(t)
	})

	t.Run("persists question with empty answer when no chunks qualify", func(t *testing.T) {
		mockRooms := new(MockRoomRepository)
		mockQuestions := new(MockQuestionRepository)
		mockChunks := new(MockChunkRepository)
		mockAI := new(MockAIClient)

		service := newQuestionService(mockRooms, mockQuestions, mockChunks, mockAI, "question-id-1")

		embedding := []float32{0.1, 0.2, 0.3}
		mockRooms.On("GetByID", mock.Anything, "room-1").Return(activeRoom("room-1"), nil)
		mockAI.On("GenerateEmbedding", mock.Anything, "Anything in here?").Return(embedding, nil)
		mockChunks.On("FindNearest", mock.Anything, "room-1", embedding, DefaultSearchLimit, DefaultSimilarityThreshold).
			Return([]*domain.TranscriptChunk{}, nil)
		mockQuestions.On("Create", mock.Anything, mock.MatchedBy(func(q *domain.Question) bool {
			return q.Answer == ""
		})).Return(nil)

		result, err := service.Create(ctx, CreateQuestionInput{RoomID: "room-1", Question: "Anything in here?"})

		require.NoError(t, err)
		assert.Equal(t, "", result.Answer)

		// No completion call was made for an empty retrieval
		mockAI.AssertNotCalled(t, "GenerateAnswer", mock.Anything, mock.Anything, mock.Anything)
		mockQuestions.AssertExpectations(t)
	})

	t.Run("rejects blank question before any AI call", func(t *testing.T) {
		mockRooms := new(MockRoomRepository)
		mockQuestions := new(MockQuestionRepository)
		mockChunks := new(MockChunkRepository)
		mockAI := new(MockAIClient)

		service := newQuestionService(mockRooms, mockQuestions, mockChunks, mockAI)

		result, err := service.Create(ctx, CreateQuestionInput{RoomID: "room-1", Question: "   \t\n"})

		require.Error(t, err)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, domain.ErrEmptyQuestion)

		mockRooms.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
		mockAI.AssertNotCalled(t, "GenerateEmbedding", mock.Anything, mock.Anything)
	})

	t.Run("returns not found for unknown room without spending AI calls", func(t *testing.T) {
		mockRooms := new(MockRoomRepository)
		mockQuestions := new(MockQuestionRepository)
		mockChunks := new(MockChunkRepository)
		mockAI := new(MockAIClient)

		service := newQuestionService(mockRooms, mockQuestions, mockChunks, mockAI)

		mockRooms.On("GetByID", mock.Anything, "missing-room").Return(nil, domain.ErrRoomNotFound)

		result, err := service.Create(ctx, CreateQuestionInput{RoomID: "missing-room", Question: "Hello?"})

		require.Error(t, err)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, domain.ErrRoomNotFound)

		mockAI.AssertNotCalled(t, "GenerateEmbedding", mock.Anything, mock.Anything)
	})

	t.Run("wraps embedding failure as AI service error", func(t *testing.T) {
		mockRooms := new(MockRoomRepository)
		mockQuestions := new(MockQuestionRepository)
		mockChunks := new(MockChunkRepository)
		mockAI := new(MockAIClient)

		service := newQuestionService(mockRooms, mockQuestions, mockChunks, mockAI)

		mockRooms.On("GetByID", mock.Anything, "room-1").Return(activeRoom("room-1"), nil)
		mockAI.On("GenerateEmbedding", mock.Anything, "Hello?").Return(nil, errors.New("rate limited"))

		result, err := service.Create(ctx, CreateQuestionInput{RoomID: "room-1", Question: "Hello?"})

		require.Error(t, err)
		assert.Nil(t, result)

		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.ErrCodeAIService, domainErr.Code)

		mockQuestions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("wraps completion failure as AI service error and persists nothing", func(t *testing.T) {
		mockRooms := new(MockRoomRepository)
		mockQuestions := new(MockQuestionRepository)
		mockChunks := new(MockChunkRepository)
		mockAI := new(MockAIClient)

		service := newQuestionService(mockRooms, mockQuestions, mockChunks, mockAI)

		embedding := []float32{0.5}
		retrieved := []*domain.TranscriptChunk{
			domain.NewTranscriptChunk("chunk-1", "room-1", "a lecture", embedding, time.Now()),
		}

		mockRooms.On("GetByID", mock.Anything, "room-1").Return(activeRoom("room-1"), nil)
		mockAI.On("GenerateEmbedding", mock.Anything, "Hello?").Return(embedding, nil)
		mockChunks.On("FindNearest", mock.Anything, "room-1", embedding, DefaultSearchLimit, DefaultSimilarityThreshold).
			Return(retrieved, nil)
		mockAI.On("GenerateAnswer", mock.Anything, "Hello?", []string{"a lecture"}).
			Return("", errors.New("model overloaded"))

		result, err := service.Create(ctx, CreateQuestionInput{RoomID: "room-1", Question: "Hello?"})

		require.Error(t, err)
		assert.Nil(t, result)

		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.ErrCodeAIService, domainErr.Code)

		mockQuestions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("wraps retrieval failure as storage error", func(t *testing.T) {
		mockRooms := new(MockRoomRepository)
		mockQuestions := new(MockQuestionRepository)
		mockChunks := new(MockChunkRepository)
		mockAI := new(MockAIClient)

		service := newQuestionService(mockRooms, mockQuestions, mockChunks, mockAI)

		embedding := []float32{0.5}
		mockRooms.On("GetByID", mock.Anything, "room-1").Return(activeRoom("room-1"), nil)
		mockAI.On("GenerateEmbedding", mock.Anything, "Hello?").Return(embedding, nil)
		mockChunks.On("FindNearest", mock.Anything, "room-1", embedding, DefaultSearchLimit, DefaultSimilarityThreshold).
			Return(nil, errors.New("connection refused"))

		_, err := service.Create(ctx, CreateQuestionInput{RoomID: "room-1", Question: "Hello?"})

		require.Error(t, err)

		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.ErrCodeStorage, domainErr.Code)
	})

	t.Run("wraps commit failure as storage error", func(t *testing.T) {
		mockRooms := new(MockRoomRepository)
		mockQuestions := new(MockQuestionRepository)
		mockChunks := new(MockChunkRepository)
		mockAI := new(MockAIClient)

		retriever := NewChunkRetriever(mockChunks, SearchOptions{})
		tx := &fakeTxRunner{err: errors.New("serialization failure")}
		service := NewQuestionServiceWithUUIDGen(mockRooms, mockQuestions, retriever, mockAI, tx, NewMockUUIDGenerator("question-id-1"))

		embedding := []float32{0.5}
		mockRooms.On("GetByID", mock.Anything, "room-1").Return(activeRoom("room-1"), nil)
		mockAI.On("GenerateEmbedding", mock.Anything, "Hello?").Return(embedding, nil)
		mockChunks.On("FindNearest", mock.Anything, "room-1", embedding, DefaultSearchLimit, DefaultSimilarityThreshold).
			Return([]*domain.TranscriptChunk{}, nil)

		result, err := service.Create(ctx, CreateQuestionInput{RoomID: "room-1", Question: "Hello?"})

		require.Error(t, err)
		assert.Nil(t, result)

		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.ErrCodeStorage, domainErr.Code)
	})

	t.Run("trims question text before embedding and persisting", func(t *testing.T) {
		mockRooms := new(MockRoomRepository)
		mockQuestions := new(MockQuestionRepository)
		mockChunks := new(MockChunkRepository)
		mockAI := new(MockAIClient)

		service := newQuestionService(mockRooms, mockQuestions, mockChunks, mockAI, "question-id-1")

		embedding := []float32{0.1}
		mockRooms.On("GetByID", mock.Anything, "room-1").Return(activeRoom("room-1"), nil)
		mockAI.On("GenerateEmbedding", mock.Anything, "What now?").Return(embedding, nil)
		mockChunks.On("FindNearest", mock.Anything, "room-1", embedding, DefaultSearchLimit, DefaultSimilarityThreshold).
			Return([]*domain.TranscriptChunk{}, nil)
		mockQuestions.On("Create", mock.Anything, mock.MatchedBy(func(q *domain.Question) bool {
			return q.Question == "What now?"
		})).Return(nil)

		result, err := service.Create(ctx, CreateQuestionInput{RoomID: "room-1", Question: "  What now?  "})

		require.NoError(t, err)
		assert.Equal(t, "What now?", result.Question)
		mockQuestions.AssertExpectations(t)
	})
}

// TestQuestionService_ListByRoom tests the ListByRoom method
func TestQuestionService_ListByRoom(t *testing.T) {
	ctx := context.Background()

	t.Run("lists questions for an existing room", func(t *testing.T) {
		mockRooms := new(MockRoomRepository)
		mockQuestions := new(MockQuestionRepository)

		service := NewQuestionService(mockRooms, mockQuestions, nil, nil, nil)

		stored := []*domain.Question{
			domain.NewQuestion("q-2", "room-1", "Second?", "Yes.", time.Now()),
			domain.NewQuestion("q-1", "room-1", "First?", "", time.Now().Add(-time.Hour)),
		}

		mockRooms.On("GetByID", mock.Anything, "room-1").Return(activeRoom("room-1"), nil)
		mockQuestions.On("ListByRoom", mock.Anything, "room-1").Return(stored, nil)

		result, err := service.ListByRoom(ctx, "room-1")

		require.NoError(t, err)
		require.Len(t, result, 2)
		assert.Equal(t, "q-2", result[0].ID)
		assert.Equal(t, "", result[1].Answer)
	})

	t.Run("returns not found for unknown room", func(t *testing.T) {
		mockRooms := new(MockRoomRepository)
		mockQuestions := new(MockQuestionRepository)

		service := NewQuestionService(mockRooms, mockQuestions, nil, nil, nil)

		mockRooms.On("GetByID", mock.Anything, "missing").Return(nil, domain.ErrRoomNotFound)

		result, err := service.ListByRoom(ctx, "missing")

		require.Error(t, err)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, domain.ErrRoomNotFound)

		mockQuestions.AssertNotCalled(t, "ListByRoom", mock.Anything, mock.Anything)
	})
}
