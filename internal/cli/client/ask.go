package client

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"
)

// AskRequest represents the question API request.
type AskRequest struct {
	Question string `json:"question"`
}

// QuestionResponse represents a question and its answer in API responses.
type QuestionResponse struct {
	ID        string `json:"id"`
	RoomID    string `json:"room_id"`
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	CreatedOn string `json:"created_on"`
}

// QuestionListResponse represents the question list API response.
type QuestionListResponse struct {
	Items []QuestionResponse `json:"items"`
}

// AskCmd creates the ask command.
func AskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <room-id> <question>",
		Short: "Ask a question in a room",
		Long: "Asks a question grounded in the room's transcribed audio. " +
			"The answer is empty when no recording is similar enough to the question.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runAsk(cmd, args[0], args[1], outputJSON)
		},
	}

	return cmd
}

func runAsk(cmd *cobra.Command, roomID, question string, outputJSON bool) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	path := "/rooms/" + url.PathEscape(roomID) + "/questions"
	resp, err := api.Post(path, AskRequest{Question: question})
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	var q QuestionResponse
	if err := json.Unmarshal(resp.Data, &q); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(q, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	fmt.Printf("Q: %s\n\n", q.Question)
	if q.Answer == "" {
		fmt.Println("No answer: the room's recordings do not cover this question.")
	} else {
		fmt.Printf("A: %s\n", q.Answer)
	}
	fmt.Printf("\nID: %s\n", q.ID)
	return nil
}

// QuestionsCmd creates the questions command.
func QuestionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "questions <room-id>",
		Short: "List questions asked in a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runQuestions(cmd, args[0], outputJSON)
		},
	}

	return cmd
}

func runQuestions(cmd *cobra.Command, roomID string, outputJSON bool) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	resp, err := api.Get("/rooms/" + url.PathEscape(roomID) + "/questions")
	if err != nil {
		return fmt.Errorf("list questions failed: %w", err)
	}

	var listResp QuestionListResponse
	if err := json.Unmarshal(resp.Data, &listResp); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(listResp, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if len(listResp.Items) == 0 {
		fmt.Println("No questions asked yet.")
		return nil
	}

	fmt.Printf("Found %d questions:\n\n", len(listResp.Items))
	for i, q := range listResp.Items {
		fmt.Printf("%d. %s\n", i+1, q.Question)
		if q.Answer == "" {
			fmt.Println("   (no answer: recordings did not cover it)")
		} else {
			answer := q.Answer
			if len(answer) > 200 {
				answer = answer[:197] + "..."
			}
			fmt.Printf("   %s\n", answer)
		}
		fmt.Printf("   Asked: %s\n", q.CreatedOn)
		fmt.Printf("   ID: %s\n", q.ID)
		if i < len(listResp.Items)-1 {
			fmt.Println(strings.Repeat("-", 40))
		}
	}

	return nil
}
