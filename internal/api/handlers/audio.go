package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/askroom/askroom/internal/api"
	"github.com/askroom/askroom/internal/service"
	"github.com/go-chi/chi/v5"
)

// maxMultipartMemory bounds the in-memory part of multipart parsing; the
// body size itself is capped by the MaxBodyBytes middleware.
const maxMultipartMemory = 4 << 20

type AudioService interface {
	Upload(ctx context.Context, input service.UploadAudioInput) (*service.UploadAudioOutput, error)
}

type AudioHandler struct {
	svc AudioService
}

func NewAudioHandler(svc AudioService) *AudioHandler {
	return &AudioHandler{svc: svc}
}

type UploadAudioResponse struct {
	ChunkID       string `json:"chunk_id"`
	RoomID        string `json:"room_id"`
	Transcription string `json:"transcription"`
	CreatedOn     string `json:"created_on"`
}

// Upload accepts a multipart form with a single "file" part holding the
// audio payload.
func (h *AudioHandler) Upload(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "id")
	if roomID == "" {
		api.Error(w, http.StatusBadRequest, "room id is required")
		return
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		api.Error(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		api.Error(w, http.StatusBadRequest, "failed to read file")
		return
	}

	contentType := header.Header.Get("Content-Type")

	result, err := h.svc.Upload(r.Context(), service.UploadAudioInput{
		RoomID:      roomID,
		Data:        data,
		ContentType: contentType,
	})
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusCreated, UploadAudioResponse{
		ChunkID:       result.ChunkID,
		RoomID:        result.RoomID,
		Transcription: result.Transcription,
		CreatedOn:     result.CreatedOn.Format("2006-01-02T15:04:05Z"),
	})
}
