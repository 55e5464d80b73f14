package repository

import (
	"context"
	"errors"

	"github.com/askroom/askroom/internal/domain"
	"github.com/askroom/askroom/internal/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RoomRepository struct {
	db dbtx
}

func NewRoomRepository(pool *pgxpool.Pool) *RoomRepository {
	return &RoomRepository{db: pool}
}

func NewRoomRepositoryWithTx(tx pgx.Tx) *RoomRepository {
	return &RoomRepository{db: tx}
}

func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO rooms (id, name, description, created_on, active)
		 VALUES ($1, $2, $3, $4, $5)`,
		room.ID, room.Name, room.Description, room.CreatedOn, room.Active,
	)
	return err
}

func (r *RoomRepository) GetByID(ctx context.Context, id string) (*domain.Room, error) {
	var room domain.Room
	err := r.db.QueryRow(ctx,
		`SELECT id, name, description, created_on, active
		 FROM rooms WHERE id = $1 AND active`,
		id,
	).Scan(&room.ID, &room.Name, &room.Description, &room.CreatedOn, &room.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRoomNotFound
		}
		return nil, err
	}
	return &room, nil
}

// ListWithCursor returns active rooms newest first, with their active
// question and chunk counts, keyset-paginated on (created_on, id).
func (r *RoomRepository) ListWithCursor(ctx context.Context, cursor *pagination.Cursor, limit int) ([]*domain.RoomSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	const baseQuery = `
		SELECT r.id, r.name, r.description, r.created_on, r.active,
		       (SELECT count(*) FROM questions q WHERE q.room_id = r.id AND q.active),
		       (SELECT count(*) FROM audio_chunks c WHERE c.room_id = r.id AND c.active)
		FROM rooms r
		WHERE r.active`

	var rows pgx.Rows
	var err error

	if cursor != nil {
		rows, err = r.db.Query(ctx,
			baseQuery+` AND (r.created_on, r.id) < ($1, $2)
			ORDER BY r.created_on DESC, r.id DESC
			LIMIT $3`,
			cursor.Timestamp, cursor.LastID, limit,
		)
	} else {
		rows, err = r.db.Query(ctx,
			baseQuery+`
			ORDER BY r.created_on DESC, r.id DESC
			LIMIT $1`,
			limit,
		)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*domain.RoomSummary
	for rows.Next() {
		var room domain.Room
		var summary domain.RoomSummary
		if err := rows.Scan(&room.ID, &room.Name, &room.Description, &room.CreatedOn, &room.Active,
			&summary.QuestionCount, &summary.ChunkCount); err != nil {
			return nil, err
		}
		summary.Room = &room
		results = append(results, &summary)
	}
	return results, rows.Err()
}

// Deactivate soft-deletes a room. Its questions and chunks stay in place
// but stop being reachable through the active room.
func (r *RoomRepository) Deactivate(ctx context.Context, id string) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE rooms SET active = false WHERE id = $1 AND active`,
		id,
	)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrRoomNotFound
	}
	return nil
}
