package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/askroom/askroom/internal/api"
	"github.com/askroom/askroom/internal/pagination"
	"github.com/askroom/askroom/internal/service"
	"github.com/go-chi/chi/v5"
)

type RoomService interface {
	Create(ctx context.Context, input service.CreateRoomInput) (*service.RoomOutput, error)
	GetByID(ctx context.Context, id string) (*service.RoomOutput, error)
	List(ctx context.Context, input service.ListRoomsInput) (*pagination.PageResult[*service.RoomListItem], error)
	Deactivate(ctx context.Context, id string) error
}

type RoomHandler struct {
	svc RoomService
}

func NewRoomHandler(svc RoomService) *RoomHandler {
	return &RoomHandler{svc: svc}
}

type CreateRoomRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type RoomResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedOn   string `json:"created_on"`
}

type RoomListItemResponse struct {
	RoomResponse
	QuestionCount int64 `json:"question_count"`
	ChunkCount    int64 `json:"chunk_count"`
}

type RoomListResponse struct {
	Items   []*RoomListItemResponse `json:"items"`
	Cursor  string                  `json:"cursor,omitempty"`
	HasMore bool                    `json:"has_more"`
}

func roomToResponse(room *service.RoomOutput) RoomResponse {
	return RoomResponse{
		ID:          room.ID,
		Name:        room.Name,
		Description: room.Description,
		CreatedOn:   room.CreatedOn.Format("2006-01-02T15:04:05Z"),
	}
}

func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name == "" {
		api.Error(w, http.StatusBadRequest, "name is required")
		return
	}

	room, err := h.svc.Create(r.Context(), service.CreateRoomInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusCreated, roomToResponse(room))
}

func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		api.Error(w, http.StatusBadRequest, "id is required")
		return
	}

	room, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, roomToResponse(room))
}

func (h *RoomHandler) List(w http.ResponseWriter, r *http.Request) {
	cursor := r.URL.Query().Get("cursor")
	limitStr := r.URL.Query().Get("limit")
	limit := 0
	if limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	page, err := h.svc.List(r.Context(), service.ListRoomsInput{Cursor: cursor, Limit: limit})
	if err != nil {
		api.HandleError(w, err)
		return
	}

	items := make([]*RoomListItemResponse, len(page.Items))
	for i, item := range page.Items {
		items[i] = &RoomListItemResponse{
			RoomResponse:  roomToResponse(&item.RoomOutput),
			QuestionCount: item.QuestionCount,
			ChunkCount:    item.ChunkCount,
		}
	}

	api.Success(w, http.StatusOK, RoomListResponse{
		Items:   items,
		Cursor:  page.Cursor,
		HasMore: page.HasMore,
	})
}

func (h *RoomHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		api.Error(w, http.StatusBadRequest, "id is required")
		return
	}

	if err := h.svc.Deactivate(r.Context(), id); err != nil {
		api.HandleError(w, err)
		return
	}

	api.JSON(w, http.StatusNoContent, nil)
}
