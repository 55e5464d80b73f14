package client

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"
)

// CreateRoomRequest represents the room creation API request.
type CreateRoomRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// RoomResponse represents a room in API responses.
type RoomResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedOn   string `json:"created_on"`
}

// RoomListItemResponse represents a room with its activity counts.
type RoomListItemResponse struct {
	RoomResponse
	QuestionCount int64 `json:"question_count"`
	ChunkCount    int64 `json:"chunk_count"`
}

// RoomListResponse represents the room list API response.
type RoomListResponse struct {
	Items   []RoomListItemResponse `json:"items"`
	Cursor  string                 `json:"cursor,omitempty"`
	HasMore bool                   `json:"has_more"`
}

// RoomCmd creates the room command group.
func RoomCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "room",
		Short: "Manage rooms",
		Long:  "Create, list, inspect, and delete rooms via the API.",
	}

	cmd.AddCommand(RoomCreateCmd())
	cmd.AddCommand(RoomListCmd())
	cmd.AddCommand(RoomGetCmd())
	cmd.AddCommand(RoomDeleteCmd())

	return cmd
}

// RoomCreateCmd creates the room create command.
func RoomCreateCmd() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runRoomCreate(cmd, args[0], description, outputJSON)
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Room description")

	return cmd
}

func runRoomCreate(cmd *cobra.Command, name, description string, outputJSON bool) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	resp, err := api.Post("/rooms", CreateRoomRequest{
		Name:        name,
		Description: description,
	})
	if err != nil {
		return fmt.Errorf("create room failed: %w", err)
	}

	var room RoomResponse
	if err := json.Unmarshal(resp.Data, &room); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(room, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	fmt.Printf("Room created: %s (%s)\n", room.Name, room.ID)
	return nil
}

// RoomListCmd creates the room list command.
func RoomListCmd() *cobra.Command {
	var (
		limit  int
		cursor string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List rooms",
		Long:  "Lists active rooms with question and audio chunk counts.",
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runRoomList(cmd, limit, cursor, outputJSON)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of results")
	cmd.Flags().StringVar(&cursor, "cursor", "", "Pagination cursor from previous response")

	return cmd
}

func runRoomList(cmd *cobra.Command, limit int, cursor string, outputJSON bool) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	query := url.Values{}
	if limit > 0 {
		query.Set("limit", fmt.Sprintf("%d", limit))
	}
	if cursor != "" {
		query.Set("cursor", cursor)
	}

	path := "/rooms"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	resp, err := api.Get(path)
	if err != nil {
		return fmt.Errorf("list rooms failed: %w", err)
	}

	var listResp RoomListResponse
	if err := json.Unmarshal(resp.Data, &listResp); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(listResp, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if len(listResp.Items) == 0 {
		fmt.Println("No rooms found.")
		return nil
	}

	fmt.Printf("Found %d rooms:\n\n", len(listResp.Items))
	for i, room := range listResp.Items {
		fmt.Printf("%d. %s\n", i+1, room.Name)
		if room.Description != "" {
			fmt.Printf("   %s\n", room.Description)
		}
		fmt.Printf("   Questions: %d, Audio chunks: %d\n", room.QuestionCount, room.ChunkCount)
		fmt.Printf("   Created: %s\n", room.CreatedOn)
		fmt.Printf("   ID: %s\n", room.ID)
		if i < len(listResp.Items)-1 {
			fmt.Println(strings.Repeat("-", 40))
		}
	}

	if listResp.HasMore && listResp.Cursor != "" {
		fmt.Printf("\n%s\n", strings.Repeat("-", 40))
		fmt.Printf("More results available. Use --cursor %s\n", listResp.Cursor)
	}

	return nil
}

// RoomGetCmd creates the room get command.
func RoomGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <room-id>",
		Short: "Show a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runRoomGet(cmd, args[0], outputJSON)
		},
	}

	return cmd
}

func runRoomGet(cmd *cobra.Command, roomID string, outputJSON bool) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	resp, err := api.Get("/rooms/" + url.PathEscape(roomID))
	if err != nil {
		return fmt.Errorf("get room failed: %w", err)
	}

	var room RoomResponse
	if err := json.Unmarshal(resp.Data, &room); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(room, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	fmt.Printf("%s\n", room.Name)
	if room.Description != "" {
		fmt.Printf("%s\n", room.Description)
	}
	fmt.Printf("Created: %s\n", room.CreatedOn)
	fmt.Printf("ID: %s\n", room.ID)
	return nil
}

// RoomDeleteCmd creates the room delete command.
func RoomDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <room-id>",
		Short: "Delete a room",
		Long:  "Deactivates a room. Its questions and audio stay in the database but the room stops accepting new activity.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoomDelete(cmd, args[0])
		},
	}

	return cmd
}

func runRoomDelete(cmd *cobra.Command, roomID string) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	if _, err := api.Delete("/rooms/" + url.PathEscape(roomID)); err != nil {
		return fmt.Errorf("delete room failed: %w", err)
	}

	fmt.Printf("Room deleted: %s\n", roomID)
	return nil
}
