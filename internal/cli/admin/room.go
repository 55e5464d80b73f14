package admin

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/askroom/askroom/internal/config"
	"github.com/askroom/askroom/internal/database"
	"github.com/askroom/askroom/internal/pagination"
	"github.com/askroom/askroom/internal/repository"
	"github.com/askroom/askroom/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

func RoomCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "room",
		Short: "Manage rooms",
		Long:  "Create, list, and deactivate rooms directly against the database",
	}

	cmd.AddCommand(RoomCreateCmd())
	cmd.AddCommand(RoomListCmd())
	cmd.AddCommand(RoomDeactivateCmd())

	return cmd
}

func RoomCreateCmd() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new room",
		Long:  "Create a new room with the specified name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputFormat, _ := cmd.Flags().GetString("output")
			return runRoomCreate(args[0], description, outputFormat)
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Room description")
	cmd.Flags().StringP("output", "o", "text", "Output format (text or json)")

	return cmd
}

func runRoomCreate(name, description, outputFormat string) error {
	ctx := context.Background()

	pool, err := getDBPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	roomRepo := repository.NewRoomRepository(pool)
	roomSvc := service.NewRoomService(roomRepo, repository.NewTxRunner(pool))

	room, err := roomSvc.Create(ctx, service.CreateRoomInput{
		Name:        name,
		Description: description,
	})
	if err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}

	if outputFormat == "json" {
		data := map[string]interface{}{
			"id":         room.ID,
			"name":       room.Name,
			"created_on": room.CreatedOn,
		}
		jsonBytes, _ := json.MarshalIndent(data, "", "  ")
		fmt.Println(string(jsonBytes))
	} else {
		fmt.Printf("Room created: %s (%s)\n", room.Name, room.ID)
	}

	return nil
}

func RoomListCmd() *cobra.Command {
	var (
		limit  int
		cursor string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all rooms",
		Long:  "List all active rooms with question and chunk counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			outputFormat, _ := cmd.Flags().GetString("output")
			return runRoomList(outputFormat, limit, cursor)
		},
	}

	cmd.Flags().StringP("output", "o", "text", "Output format (text or json)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of results")
	cmd.Flags().StringVar(&cursor, "cursor", "", "Pagination cursor from previous response")

	return cmd
}

func runRoomList(outputFormat string, limit int, cursorStr string) error {
	ctx := context.Background()

	pool, err := getDBPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	roomRepo := repository.NewRoomRepository(pool)

	cursor, _ := pagination.DecodeCursor(cursorStr)
	summaries, err := roomRepo.ListWithCursor(ctx, cursor, limit)
	if err != nil {
		return fmt.Errorf("failed to list rooms: %w", err)
	}

	if outputFormat == "json" {
		data := make([]map[string]interface{}, len(summaries))
		for i, s := range summaries {
			data[i] = map[string]interface{}{
				"id":             s.Room.ID,
				"name":           s.Room.Name,
				"created_on":     s.Room.CreatedOn,
				"question_count": s.QuestionCount,
				"chunk_count":    s.ChunkCount,
			}
		}
		jsonBytes, _ := json.MarshalIndent(data, "", "  ")
		fmt.Println(string(jsonBytes))
	} else {
		if len(summaries) == 0 {
			fmt.Println("No rooms found")
			return nil
		}
		fmt.Println("Rooms:")
		for _, s := range summaries {
			fmt.Printf("  %s: %s (questions: %d, chunks: %d, created: %s)\n",
				s.Room.ID, s.Room.Name, s.QuestionCount, s.ChunkCount,
				s.Room.CreatedOn.Format("2006-01-02 15:04:05"))
		}
	}

	return nil
}

func RoomDeactivateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deactivate <room-id>",
		Short: "Deactivate a room",
		Long:  "Soft-delete a room so it no longer accepts audio or questions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoomDeactivate(args[0])
		},
	}

	return cmd
}

func runRoomDeactivate(roomID string) error {
	ctx := context.Background()

	pool, err := getDBPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	roomRepo := repository.NewRoomRepository(pool)
	roomSvc := service.NewRoomService(roomRepo, repository.NewTxRunner(pool))

	if err := roomSvc.Deactivate(ctx, roomID); err != nil {
		return fmt.Errorf("failed to deactivate room: %w", err)
	}

	fmt.Printf("Room deactivated: %s\n", roomID)
	return nil
}

func getDBPool(ctx context.Context) (*pgxpool.Pool, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	pool, err := database.NewPool(ctx, database.Config{URL: cfg.DatabaseURL})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return pool, nil
}
