package domain

import (
	"fmt"
	"strings"
	"time"
)

// Question records a question asked in a room together with the answer
// produced for it. An empty Answer means no grounded answer was produced;
// it is a regular value, not an absent state. Questions are immutable
// after creation: re-asking creates a new Question.
type Question struct {
	ID        string
	RoomID    string
	Question  string
	Answer    string
	CreatedOn time.Time
	Active    bool
}

// NewQuestion creates a new Question instance
func NewQuestion(id, roomID, question, answer string, createdOn time.Time) *Question {
	return &Question{
		ID:        id,
		RoomID:    roomID,
		Question:  question,
		Answer:    answer,
		CreatedOn: createdOn,
		Active:    true,
	}
}

// ValidateQuestion validates a Question instance
func ValidateQuestion(q *Question) error {
	if q == nil {
		return fmt.Errorf("question cannot be nil")
	}

	if q.ID == "" {
		return fmt.Errorf("question ID is required")
	}

	if q.RoomID == "" {
		return fmt.Errorf("question RoomID is required")
	}

	if strings.TrimSpace(q.Question) == "" {
		return ErrEmptyQuestion
	}

	return nil
}
