package admin

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/askroom/askroom/internal/api/handlers"
	"github.com/askroom/askroom/internal/audio"
	"github.com/askroom/askroom/internal/config"
	"github.com/askroom/askroom/internal/database"
	"github.com/askroom/askroom/internal/openai"
	"github.com/askroom/askroom/internal/repository"
	"github.com/askroom/askroom/internal/server"
	"github.com/askroom/askroom/internal/service"
	"github.com/askroom/askroom/internal/storage"
	"github.com/askroom/askroom/internal/telemetry"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/cobra"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long:  "Start the askroom API server on the specified port",
		RunE:  runServe,
	}

	cmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	cmd.Flags().Bool("no-migrate", false, "Skip automatic database migrations on startup")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize Sentry with tracing if SENTRY_DSN is set
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		environment := os.Getenv("ENVIRONMENT")
		if environment == "" {
			environment = "development"
		}

		// Default to 10% sampling in production, 100% in development
		sampleRate := 0.1
		if environment == "development" {
			sampleRate = 1.0
		}

		shutdownTelemetry, err := telemetry.Init(telemetry.Config{
			DSN:              dsn,
			Environment:      environment,
			TracesSampleRate: sampleRate,
		})
		if err != nil {
			log.Printf("telemetry init failed (continuing without tracing): %v", err)
		} else {
			defer shutdownTelemetry()
		}
	}

	portFlag, _ := cmd.Flags().GetString("port")
	if portFlag != "" && portFlag != "8080" {
		cfg.Port = portFlag
	}

	pool, err := database.NewPool(ctx, database.Config{URL: cfg.DatabaseURL})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()
	log.Println("connected to database")

	// Run migrations unless --no-migrate flag is set
	noMigrate, _ := cmd.Flags().GetBool("no-migrate")
	if !noMigrate {
		if err := runMigrations(cfg.DatabaseURL); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	roomRepo := repository.NewRoomRepository(pool)
	questionRepo := repository.NewQuestionRepository(pool)
	chunkRepo := repository.NewChunkRepository(pool)
	txRunner := repository.NewTxRunner(pool)

	var archive service.ArchiveClient
	if cfg.HasS3() {
		s3Config := storage.S3ClientConfig{
			Endpoint:        cfg.S3Endpoint,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.S3AccessKey,
			SecretAccessKey: cfg.S3SecretKey,
			Bucket:          cfg.S3Bucket,
			UsePathStyle:    true,
		}
		s3Client, err := storage.NewS3Client(ctx, s3Config)
		if err != nil {
			return fmt.Errorf("failed to create S3 client: %w", err)
		}
		if err := s3Client.EnsureBucket(ctx); err != nil {
			return fmt.Errorf("failed to ensure S3 bucket: %w", err)
		}
		log.Printf("S3 bucket '%s' ready", cfg.S3Bucket)
		archive = s3Client
	}

	roomSvc := service.NewRoomService(roomRepo, txRunner)
	roomHandler := handlers.NewRoomHandler(roomSvc)

	var questionHandler *handlers.QuestionHandler
	var audioHandler *handlers.AudioHandler
	if cfg.HasOpenAI() {
		aiClient := openai.NewClientWithConfig(openai.Config{
			APIKey:              cfg.OpenAIAPIKey,
			EmbeddingDimensions: cfg.EmbeddingDimensions,
			Language:            cfg.AudioLanguage,
		})

		retriever := service.NewChunkRetriever(chunkRepo, service.SearchOptions{
			Limit:     cfg.SearchLimit,
			Threshold: cfg.SimilarityThreshold,
		})

		questionSvc := service.NewQuestionService(roomRepo, questionRepo, retriever, aiClient, txRunner)
		audioSvc := service.NewAudioService(
			audio.NewValidator(cfg.MaxAudioBytes),
			roomRepo,
			aiClient,
			txRunner,
			archive,
			cfg.EmbeddingDimensions,
		)

		questionHandler = handlers.NewQuestionHandler(questionSvc)
		audioHandler = handlers.NewAudioHandler(audioSvc)
	} else {
		log.Println("OPENAI_API_KEY not set: question and audio endpoints disabled")
		questionHandler = handlers.NewQuestionHandler(&NoOpQuestionService{})
		audioHandler = handlers.NewAudioHandler(&NoOpAudioService{})
	}

	routerCfg := server.RouterConfig{
		RoomHandler:     roomHandler,
		QuestionHandler: questionHandler,
		AudioHandler:    audioHandler,
	}

	router := server.NewRouter(routerCfg)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("server exited")
	return nil
}

type NoOpQuestionService struct{}

func (s *NoOpQuestionService) Create(ctx context.Context, input service.CreateQuestionInput) (*service.QuestionOutput, error) {
	return nil, fmt.Errorf("question service not configured: ASKROOM_OPENAI_API_KEY required")
}

func (s *NoOpQuestionService) ListByRoom(ctx context.Context, roomID string) ([]*service.QuestionOutput, error) {
	return nil, fmt.Errorf("question service not configured: ASKROOM_OPENAI_API_KEY required")
}

type NoOpAudioService struct{}

func (s *NoOpAudioService) Upload(ctx context.Context, input service.UploadAudioInput) (*service.UploadAudioOutput, error) {
	return nil, fmt.Errorf("audio service not configured: ASKROOM_OPENAI_API_KEY required")
}

func runMigrations(databaseURL string) error {
	// Create a sql.DB connection for golang-migrate
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database for migrations: %w", err)
	}
	defer db.Close()

	// Create postgres driver instance
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	// Create migrate instance with file source
	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	// Run migrations
	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	// Get migration version and status
	version, dirty, err := m.Version()
	if err != nil && err != migrate.ErrNilVersion {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	if err == migrate.ErrNilVersion {
		log.Println("migrations: database is up to date (no migrations applied)")
	} else if dirty {
		return fmt.Errorf("migration version %d is dirty - manual intervention required", version)
	} else if err == migrate.ErrNoChange {
		log.Printf("migrations: database is up to date (version %d)", version)
	} else {
		log.Printf("migrations: applied successfully (version %d)", version)
	}

	return nil
}
