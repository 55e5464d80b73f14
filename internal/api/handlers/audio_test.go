package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/askroom/askroom/internal/domain"
	"github.com/askroom/askroom/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAudioService struct {
	mock.Mock
}

func (m *MockAudioService) Upload(ctx context.Context, input service.UploadAudioInput) (*service.UploadAudioOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UploadAudioOutput), args.Error(1)
}

// multipartAudioRequest builds a multipart request with a single "file" part.
func multipartAudioRequest(t *testing.T, roomID, contentType string, payload []byte) *http.Request {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="lecture.mp3"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/rooms/"+roomID+"/audio", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", roomID)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestAudioHandler_Upload_Success(t *testing.T) {
	mockSvc := new(MockAudioService)
	handler := NewAudioHandler(mockSvc)

	payload := []byte{0x49, 0x44, 0x33, 0x04, 0x00, 0x00}
	output := &service.UploadAudioOutput{
		ChunkID:       "chunk-123",
		RoomID:        "room-123",
		Transcription: "today we cover inertia",
		CreatedOn:     time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC),
	}

	mockSvc.On("Upload", mock.Anything, mock.MatchedBy(func(input service.UploadAudioInput) bool {
		return input.RoomID == "room-123" &&
			input.ContentType == "audio/mpeg" &&
			bytes.Equal(input.Data, payload)
	})).Return(output, nil)

	req := multipartAudioRequest(t, "room-123", "audio/mpeg", payload)
	w := httptest.NewRecorder()

	handler.Upload(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "chunk-123", data["chunk_id"])
	assert.Equal(t, "today we cover inertia", data["transcription"])
	mockSvc.AssertExpectations(t)
}

func TestAudioHandler_Upload_MissingFile(t *testing.T) {
	mockSvc := new(MockAudioService)
	handler := NewAudioHandler(mockSvc)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("other", "value"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/rooms/room-123/audio", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "room-123")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	w := httptest.NewRecorder()

	handler.Upload(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestAudioHandler_Upload_NotMultipart(t *testing.T) {
	mockSvc := new(MockAudioService)
	handler := NewAudioHandler(mockSvc)

	req := requestWithID(http.MethodPost, "/rooms/room-123/audio", "room-123", []byte("raw bytes"))
	w := httptest.NewRecorder()

	handler.Upload(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAudioHandler_Upload_ValidationError(t *testing.T) {
	mockSvc := new(MockAudioService)
	handler := NewAudioHandler(mockSvc)

	mockSvc.On("Upload", mock.Anything, mock.Anything).Return(nil, domain.ErrAudioInvalidType)

	req := multipartAudioRequest(t, "room-123", "audio/mpeg", []byte("not really audio"))
	w := httptest.NewRecorder()

	handler.Upload(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAudioHandler_Upload_RoomNotFound(t *testing.T) {
	mockSvc := new(MockAudioService)
	handler := NewAudioHandler(mockSvc)

	mockSvc.On("Upload", mock.Anything, mock.Anything).Return(nil, domain.ErrRoomNotFound)

	req := multipartAudioRequest(t, "missing", "audio/mpeg", []byte{0x49, 0x44, 0x33})
	w := httptest.NewRecorder()

	handler.Upload(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAudioHandler_Upload_TranscriptionFailure(t *testing.T) {
	mockSvc := new(MockAudioService)
	handler := NewAudioHandler(mockSvc)

	mockSvc.On("Upload", mock.Anything, mock.Anything).
		Return(nil, domain.NewDomainError(domain.ErrCodeAIService, "failed to transcribe audio"))

	req := multipartAudioRequest(t, "room-123", "audio/mpeg", []byte{0x49, 0x44, 0x33})
	w := httptest.NewRecorder()

	handler.Upload(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}
