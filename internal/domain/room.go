package domain

import (
	"fmt"
	"strings"
	"time"
)

// Room is a shared space that owns transcript chunks and the questions
// asked against them. Rooms are append-only: they are never deleted, only
// deactivated via the Active flag.
type Room struct {
	ID          string
	Name        string
	Description string
	CreatedOn   time.Time
	Active      bool
}

// NewRoom creates a new Room instance
func NewRoom(id, name, description string, createdOn time.Time) *Room {
	return &Room{
		ID:          id,
		Name:        name,
		Description: description,
		CreatedOn:   createdOn,
		Active:      true,
	}
}

// RoomSummary is a room joined with its content counters, used by listings.
type RoomSummary struct {
	Room          *Room
	QuestionCount int64
	ChunkCount    int64
}

// ValidateRoom validates a Room instance
func ValidateRoom(r *Room) error {
	if r == nil {
		return fmt.Errorf("room cannot be nil")
	}

	if r.ID == "" {
		return fmt.Errorf("room ID is required")
	}

	if strings.TrimSpace(r.Name) == "" {
		return ErrEmptyRoomName
	}

	return nil
}
