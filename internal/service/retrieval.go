package service

import (
	"context"
	"fmt"

	"github.com/askroom/askroom/internal/domain"
)

// Default retrieval policy applied when the caller does not override it.
const (
	DefaultSearchLimit         = 5
	DefaultSimilarityThreshold = 0.7
)

// ChunkRepositoryInterface defines the repository interface for transcript
// chunk persistence and nearest-neighbor retrieval.
type ChunkRepositoryInterface interface {
	Create(ctx context.Context, chunk *domain.TranscriptChunk) error
	FindNearest(ctx context.Context, roomID string, queryVec []float32, limit int, similarityThreshold float64) ([]*domain.TranscriptChunk, error)
}

// SearchOptions overrides the default retrieval policy. Zero values mean
// "use the default".
type SearchOptions struct {
	Limit     int
	Threshold float64
}

// ChunkRetriever executes similarity searches over a room's transcript
// chunks. It owns the default limit/threshold policy and bounds checking;
// distance ranking and threshold re-filtering live in the chunk store.
type ChunkRetriever struct {
	chunks   ChunkRepositoryInterface
	defaults SearchOptions
}

// NewChunkRetriever creates a ChunkRetriever. Zero-valued defaults fall
// back to DefaultSearchLimit and DefaultSimilarityThreshold.
func NewChunkRetriever(chunks ChunkRepositoryInterface, defaults SearchOptions) *ChunkRetriever {
	if defaults.Limit <= 0 {
		defaults.Limit = DefaultSearchLimit
	}
	if defaults.Threshold <= 0 {
		defaults.Threshold = DefaultSimilarityThreshold
	}
	return &ChunkRetriever{chunks: chunks, defaults: defaults}
}

// FindSimilar returns the chunks in roomID whose cosine distance to
// embedding is within 1 - threshold, closest first. An empty result is the
// expected outcome for a room with no sufficiently similar audio, not an
// error.
func (r *ChunkRetriever) FindSimilar(ctx context.Context, roomID string, embedding []float32, opts SearchOptions) ([]*domain.TranscriptChunk, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = r.defaults.Limit
	}

	threshold := opts.Threshold
	if threshold == 0 {
		threshold = r.defaults.Threshold
	}
	if threshold < 0 || threshold > 1 {
		return nil, domain.NewDomainError(domain.ErrCodeValidation,
			fmt.Sprintf("similarity threshold %v is outside [0, 1]", threshold))
	}

	chunks, err := r.chunks.FindNearest(ctx, roomID, embedding, limit, threshold)
	if err != nil {
		return nil, storageError("similarity search failed", err)
	}

	if chunks == nil {
		chunks = []*domain.TranscriptChunk{}
	}
	return chunks, nil
}
