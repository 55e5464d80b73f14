package service

import (
	"context"

	"github.com/askroom/askroom/internal/domain"
)

// AIClient defines the external AI contract the services depend on:
// speech-to-text, text embedding, and grounded answer generation. Each
// call is a remote call with no local retry; retry policy belongs to the
// deployment, not the core.
type AIClient interface {
	Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error)
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
	GenerateAnswer(ctx context.Context, question string, contexts []string) (string, error)
}

func aiServiceError(message string, err error) error {
	return domain.NewDomainErrorWithCause(domain.ErrCodeAIService, message, err)
}

func storageError(message string, err error) error {
	return domain.NewDomainErrorWithCause(domain.ErrCodeStorage, message, err)
}
