package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/askroom/askroom/internal/api"
	"github.com/askroom/askroom/internal/service"
	"github.com/go-chi/chi/v5"
)

type QuestionService interface {
	Create(ctx context.Context, input service.CreateQuestionInput) (*service.QuestionOutput, error)
	ListByRoom(ctx context.Context, roomID string) ([]*service.QuestionOutput, error)
}

type QuestionHandler struct {
	svc QuestionService
}

func NewQuestionHandler(svc QuestionService) *QuestionHandler {
	return &QuestionHandler{svc: svc}
}

type CreateQuestionRequest struct {
	Question string `json:"question"`
}

type QuestionResponse struct {
	ID        string `json:"id"`
	RoomID    string `json:"room_id"`
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	CreatedOn string `json:"created_on"`
}

type QuestionListResponse struct {
	Items []*QuestionResponse `json:"items"`
}

func questionToResponse(q *service.QuestionOutput) *QuestionResponse {
	return &QuestionResponse{
		ID:        q.ID,
		RoomID:    q.RoomID,
		Question:  q.Question,
		Answer:    q.Answer,
		CreatedOn: q.CreatedOn.Format("2006-01-02T15:04:05Z"),
	}
}

func (h *QuestionHandler) Create(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "id")
	if roomID == "" {
		api.Error(w, http.StatusBadRequest, "room id is required")
		return
	}

	var req CreateQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	question, err := h.svc.Create(r.Context(), service.CreateQuestionInput{
		RoomID:   roomID,
		Question: req.Question,
	})
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusCreated, questionToResponse(question))
}

func (h *QuestionHandler) List(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "id")
	if roomID == "" {
		api.Error(w, http.StatusBadRequest, "room id is required")
		return
	}

	questions, err := h.svc.ListByRoom(r.Context(), roomID)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	items := make([]*QuestionResponse, len(questions))
	for i, q := range questions {
		items[i] = questionToResponse(q)
	}

	api.Success(w, http.StatusOK, QuestionListResponse{Items: items})
}
