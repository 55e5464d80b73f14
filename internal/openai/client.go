package openai

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const (
	// DefaultTranscriptionModel is the OpenAI model used for audio transcription
	DefaultTranscriptionModel = openai.Whisper1
	// DefaultChatModel is the OpenAI model used for answer generation
	DefaultChatModel = openai.GPT4Turbo
	// DefaultEmbeddingModel is the OpenAI model used for generating embeddings
	DefaultEmbeddingModel = openai.SmallEmbedding3
	// DefaultEmbeddingDimensions is the embedding dimensionality requested per deployment
	DefaultEmbeddingDimensions = 1536
	// DefaultLanguage is the transcription language hint
	DefaultLanguage = "pt"

	answerMaxTokens   = 2000
	answerTemperature = 0.7
)

const answerSystemPrompt = "You answer questions about what was said in a recorded room. " +
	"Use only the provided transcript excerpts as context. If the context does not contain " +
	"the answer, say that the recordings do not cover it. Answer in the language of the question."

const transcriptionPrompt = "Transcription of audio recorded during a live room session."

var (
	// ErrEmptyText is returned when text is empty
	ErrEmptyText = errors.New("text cannot be empty")
	// ErrEmptyAudio is returned when the audio payload is empty
	ErrEmptyAudio = errors.New("audio payload cannot be empty")
	// ErrWrongDimensions is returned when an embedding has unexpected dimensions
	ErrWrongDimensions = errors.New("embedding has wrong dimensions")
	// ErrEmptyTranscription is returned when transcription yields no text
	ErrEmptyTranscription = errors.New("transcription response contained no text")
	// ErrEmptyCompletion is returned when answer generation yields no content
	ErrEmptyCompletion = errors.New("completion response contained no content")
	// ErrNoAPIKey is returned when OpenAI API key is not set
	ErrNoAPIKey = errors.New("OPENAI_API_KEY environment variable not set")
)

// api is the subset of the OpenAI SDK the client uses, extracted so tests
// can substitute a fake.
type api interface {
	CreateTranscription(ctx context.Context, request openai.AudioRequest) (openai.AudioResponse, error)
	CreateEmbeddings(ctx context.Context, request openai.EmbeddingRequestConverter) (openai.EmbeddingResponse, error)
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Config holds OpenAI client configuration.
type Config struct {
	APIKey              string
	EmbeddingModel      openai.EmbeddingModel
	EmbeddingDimensions int
	Language            string
}

// Client wraps the OpenAI API for transcription, embedding generation, and
// grounded answer generation.
type Client struct {
	api        api
	model      openai.EmbeddingModel
	dimensions int
	language   string
}

// NewClient creates a new OpenAI client using defaults.
func NewClient(apiKey string) *Client {
	return NewClientWithConfig(Config{APIKey: apiKey})
}

// NewClientWithConfig creates a new OpenAI client with explicit configuration.
func NewClientWithConfig(cfg Config) *Client {
	model := cfg.EmbeddingModel
	if model == "" {
		model = DefaultEmbeddingModel
	}
	dimensions := cfg.EmbeddingDimensions
	if dimensions <= 0 {
		dimensions = DefaultEmbeddingDimensions
	}
	language := cfg.Language
	if language == "" {
		language = DefaultLanguage
	}
	return &Client{
		api:        openai.NewClient(cfg.APIKey),
		model:      model,
		dimensions: dimensions,
		language:   language,
	}
}

// NewClientFromEnv creates a new OpenAI client using the OPENAI_API_KEY
// environment variable.
func NewClientFromEnv() (*Client, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	return NewClient(apiKey), nil
}

// Transcribe converts raw audio bytes to text using the configured language
// hint. The mime type only picks the filename the API sees; no decoding
// happens locally.
func (c *Client) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	if len(audio) == 0 {
		return "", ErrEmptyAudio
	}

	resp, err := c.api.CreateTranscription(ctx, openai.AudioRequest{
		Model:    DefaultTranscriptionModel,
		FilePath: filenameForMime(mimeType),
		Reader:   bytes.NewReader(audio),
		Language: c.language,
		Prompt:   transcriptionPrompt,
		Format:   openai.AudioResponseFormatText,
	})
	if err != nil {
		return "", fmt.Errorf("failed to transcribe audio: %w", err)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", ErrEmptyTranscription
	}

	return text, nil
}

// GenerateEmbedding generates a fixed-length embedding for the given text.
func (c *Client) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, ErrEmptyText
	}

	resp, err := c.api.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input:      []string{text},
		Model:      c.model,
		Dimensions: c.dimensions,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding: %w", err)
	}

	if len(resp.Data) == 0 {
		return nil, errors.New("no embedding data returned")
	}

	embedding := resp.Data[0].Embedding
	if len(embedding) != c.dimensions {
		return nil, ErrWrongDimensions
	}

	return embedding, nil
}

// GenerateAnswer produces an answer to question grounded in the given
// transcript excerpts. Contexts are joined in caller order with a blank
// line between them.
func (c *Client) GenerateAnswer(ctx context.Context, question string, contexts []string) (string, error) {
	if question == "" {
		return "", ErrEmptyText
	}

	context := strings.Join(contexts, "\n\n")
	prompt := fmt.Sprintf("Transcript excerpts:\n\n%s\n\nQuestion: %s", context, question)

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: DefaultChatModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: answerSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   answerMaxTokens,
		Temperature: answerTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate answer: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", ErrEmptyCompletion
	}

	return resp.Choices[0].Message.Content, nil
}

// filenameForMime maps a declared audio mime type to a filename whose
// extension the transcription API understands.
func filenameForMime(mimeType string) string {
	switch strings.ToLower(mimeType) {
	case "audio/mpeg", "audio/mp3":
		return "audio.mp3"
	case "audio/ogg":
		return "audio.ogg"
	case "audio/flac":
		return "audio.flac"
	case "audio/mp4":
		return "audio.m4a"
	case "audio/webm":
		return "audio.webm"
	default:
		return "audio.wav"
	}
}
