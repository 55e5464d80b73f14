package repository

import (
	"context"

	"github.com/askroom/askroom/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
)

// ChunkRepository handles persistence and similarity retrieval of
// transcript chunks.
type ChunkRepository struct {
	db dbtx
}

func NewChunkRepository(pool *pgxpool.Pool) *ChunkRepository {
	return &ChunkRepository{db: pool}
}

func NewChunkRepositoryWithTx(tx pgx.Tx) *ChunkRepository {
	return &ChunkRepository{db: tx}
}

func (r *ChunkRepository) Create(ctx context.Context, chunk *domain.TranscriptChunk) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO audio_chunks (id, room_id, transcription, embedding, created_on, active)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		chunk.ID, chunk.RoomID, chunk.Transcription, pgvector.NewVector(chunk.Embedding), chunk.CreatedOn, chunk.Active,
	)
	return err
}

// FindNearest returns up to limit active chunks of a room ranked by cosine
// distance to queryVec, keeping only those within 1 - similarityThreshold.
// The index scan ranks candidates; the exact distance re-check runs here so
// the cutoff does not depend on approximate index behavior. A chunk whose
// stored dimensionality differs from the query never qualifies.
func (r *ChunkRepository) FindNearest(ctx context.Context, roomID string, queryVec []float32, limit int, similarityThreshold float64) ([]*domain.TranscriptChunk, error) {
	if limit <= 0 {
		limit = 5
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, room_id, transcription, embedding, created_on, active
		 FROM audio_chunks
		 WHERE room_id = $1 AND active
		 ORDER BY embedding <=> $2
		 LIMIT $3`,
		roomID, pgvector.NewVector(queryVec), limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	maxDistance := 1.0 - similarityThreshold

	var results []*domain.TranscriptChunk
	for rows.Next() {
		var chunk domain.TranscriptChunk
		var embedding pgvector.Vector
		if err := rows.Scan(&chunk.ID, &chunk.RoomID, &chunk.Transcription, &embedding, &chunk.CreatedOn, &chunk.Active); err != nil {
			return nil, err
		}
		chunk.Embedding = embedding.Slice()

		if domain.CosineDistance(chunk.Embedding, queryVec) <= maxDistance {
			results = append(results, &chunk)
		}
	}
	return results, rows.Err()
}
