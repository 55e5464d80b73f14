package repository

import (
	"context"
	"errors"

	"github.com/askroom/askroom/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type QuestionRepository struct {
	db dbtx
}

func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{db: pool}
}

func NewQuestionRepositoryWithTx(tx pgx.Tx) *QuestionRepository {
	return &QuestionRepository{db: tx}
}

func (r *QuestionRepository) Create(ctx context.Context, q *domain.Question) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO questions (id, room_id, question, answer, created_on, active)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		q.ID, q.RoomID, q.Question, q.Answer, q.CreatedOn, q.Active,
	)
	return err
}

func (r *QuestionRepository) GetByID(ctx context.Context, id string) (*domain.Question, error) {
	var q domain.Question
	err := r.db.QueryRow(ctx,
		`SELECT id, room_id, question, answer, created_on, active
		 FROM questions WHERE id = $1 AND active`,
		id,
	).Scan(&q.ID, &q.RoomID, &q.Question, &q.Answer, &q.CreatedOn, &q.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrQuestionNotFound
		}
		return nil, err
	}
	return &q, nil
}

// ListByRoom returns the active questions of a room, newest first.
func (r *QuestionRepository) ListByRoom(ctx context.Context, roomID string) ([]*domain.Question, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, room_id, question, answer, created_on, active
		 FROM questions WHERE room_id = $1 AND active
		 ORDER BY created_on DESC, id DESC`,
		roomID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*domain.Question
	for rows.Next() {
		var q domain.Question
		if err := rows.Scan(&q.ID, &q.RoomID, &q.Question, &q.Answer, &q.CreatedOn, &q.Active); err != nil {
			return nil, err
		}
		results = append(results, &q)
	}
	return results, rows.Err()
}
