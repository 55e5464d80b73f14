package main

import (
	"fmt"
	"os"

	"github.com/askroom/askroom/internal/cli/client"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "askroom",
		Short: "Askroom CLI - Audio Q&A over recorded rooms",
		Long: `Askroom CLI uploads room audio and asks questions grounded in what was recorded.

Environment variables:
  ASKROOM_API_URL   API base URL (default: http://localhost:8080)`,
		Version: version,
	}

	rootCmd.PersistentFlags().Bool("output", false, "Output as JSON")
	rootCmd.PersistentFlags().String("api-url", "", "API base URL (overrides env)")

	rootCmd.AddCommand(client.RoomCmd())
	rootCmd.AddCommand(client.AskCmd())
	rootCmd.AddCommand(client.QuestionsCmd())
	rootCmd.AddCommand(client.UploadCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
