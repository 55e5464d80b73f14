package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/askroom/askroom/internal/domain"
	"github.com/askroom/askroom/internal/pagination"
	"github.com/askroom/askroom/internal/telemetry"
)

// Room listing page size policy.
const (
	DefaultRoomPageSize = 20
	MaxRoomPageSize     = 100
)

// RoomRepositoryInterface defines the repository interface for room
// persistence
type RoomRepositoryInterface interface {
	Create(ctx context.Context, room *domain.Room) error
	GetByID(ctx context.Context, id string) (*domain.Room, error)
	ListWithCursor(ctx context.Context, cursor *pagination.Cursor, limit int) ([]*domain.RoomSummary, error)
	Deactivate(ctx context.Context, id string) error
}

// RoomService manages rooms and their listings.
type RoomService struct {
	rooms   RoomRepositoryInterface
	tx      TxRunner
	uuidGen UUIDGenerator
}

// NewRoomService creates a new RoomService instance
func NewRoomService(rooms RoomRepositoryInterface, tx TxRunner) *RoomService {
	return &RoomService{
		rooms:   rooms,
		tx:      tx,
		uuidGen: &DefaultUUIDGenerator{},
	}
}

// NewRoomServiceWithUUIDGen creates a new RoomService with a custom UUID
// generator (for testing)
func NewRoomServiceWithUUIDGen(rooms RoomRepositoryInterface, tx TxRunner, uuidGen UUIDGenerator) *RoomService {
	svc := NewRoomService(rooms, tx)
	svc.uuidGen = uuidGen
	return svc
}

// CreateRoomInput represents the input for creating a room
type CreateRoomInput struct {
	Name        string
	Description string
}

// RoomOutput is the public projection of a room
type RoomOutput struct {
	ID          string
	Name        string
	Description string
	CreatedOn   time.Time
}

// RoomListItem is one row of a room listing, including content counters.
type RoomListItem struct {
	RoomOutput
	QuestionCount int64
	ChunkCount    int64
}

// ListRoomsInput controls pagination of the room listing.
type ListRoomsInput struct {
	Cursor string
	Limit  int
}

// Create validates and persists a new room.
func (s *RoomService) Create(ctx context.Context, input CreateRoomInput) (*RoomOutput, error) {
	ctx, span := telemetry.StartSpan(ctx, "RoomService.Create", telemetry.SpanAttributes{
		Operation: "create_room",
	})
	defer span.End()

	room := domain.NewRoom(s.uuidGen.NewString(), strings.TrimSpace(input.Name), strings.TrimSpace(input.Description), time.Now().UTC())
	if err := domain.ValidateRoom(room); err != nil {
		return nil, err
	}

	err := s.tx.WithTx(ctx, func(repos TxRepositories) error {
		return repos.Rooms().Create(ctx, room)
	})
	if err != nil {
		span.SetError(err)
		return nil, storageError("failed to persist room", err)
	}

	return roomToOutput(room), nil
}

// GetByID returns a single active room.
func (s *RoomService) GetByID(ctx context.Context, id string) (*RoomOutput, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return roomToOutput(room), nil
}

// List returns a page of rooms, newest first, with question and chunk
// counters. An invalid cursor is a validation error, not a storage error.
func (s *RoomService) List(ctx context.Context, input ListRoomsInput) (*pagination.PageResult[*RoomListItem], error) {
	limit := input.Limit
	if limit <= 0 {
		limit = DefaultRoomPageSize
	}
	if limit > MaxRoomPageSize {
		limit = MaxRoomPageSize
	}

	cursor, err := pagination.DecodeCursor(input.Cursor)
	if err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeValidation, "invalid pagination cursor", err)
	}

	summaries, err := s.rooms.ListWithCursor(ctx, cursor, limit)
	if err != nil {
		return nil, storageError("failed to list rooms", err)
	}

	items := make([]*RoomListItem, len(summaries))
	for i, summary := range summaries {
		items[i] = &RoomListItem{
			RoomOutput:    *roomToOutput(summary.Room),
			QuestionCount: summary.QuestionCount,
			ChunkCount:    summary.ChunkCount,
		}
	}

	next := pagination.CreateNextCursor(items, limit,
		func(item *RoomListItem) string { return item.ID },
		func(item *RoomListItem) time.Time { return item.CreatedOn },
	)

	return &pagination.PageResult[*RoomListItem]{
		Items:   items,
		Cursor:  next,
		HasMore: next != "",
	}, nil
}

// Deactivate soft-deletes a room. Existing questions and chunks are kept
// but no longer reachable through the room.
func (s *RoomService) Deactivate(ctx context.Context, id string) error {
	err := s.tx.WithTx(ctx, func(repos TxRepositories) error {
		return repos.Rooms().Deactivate(ctx, id)
	})
	if err != nil {
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			return err
		}
		return storageError("failed to deactivate room", err)
	}
	return nil
}

func roomToOutput(room *domain.Room) *RoomOutput {
	return &RoomOutput{
		ID:          room.ID,
		Name:        room.Name,
		Description: room.Description,
		CreatedOn:   room.CreatedOn,
	}
}
