package client

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

// UploadAudioResponse represents the audio upload API response.
type UploadAudioResponse struct {
	ChunkID       string `json:"chunk_id"`
	RoomID        string `json:"room_id"`
	Transcription string `json:"transcription"`
	CreatedOn     string `json:"created_on"`
}

// audioContentTypes maps file extensions to the content type sent with the
// upload. The server re-checks the actual bytes against the declared type.
var audioContentTypes = map[string]string{
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".ogg":  "audio/ogg",
	".oga":  "audio/ogg",
	".flac": "audio/flac",
	".m4a":  "audio/mp4",
	".mp4":  "audio/mp4",
	".webm": "audio/webm",
}

// UploadCmd creates the upload command.
func UploadCmd() *cobra.Command {
	var contentType string

	cmd := &cobra.Command{
		Use:   "upload <room-id> <file>",
		Short: "Upload an audio file to a room",
		Long: "Uploads an audio file to a room. The server transcribes it and " +
			"indexes the transcription so it can ground future answers.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runUpload(cmd, args[0], args[1], contentType, outputJSON)
		},
	}

	cmd.Flags().StringVar(&contentType, "content-type", "", "Override the detected audio content type")

	return cmd
}

func runUpload(cmd *cobra.Command, roomID, filePath, contentType string, outputJSON bool) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat file: %w", err)
	}

	if contentType == "" {
		ext := strings.ToLower(filepath.Ext(filePath))
		ct, ok := audioContentTypes[ext]
		if !ok {
			return fmt.Errorf("cannot detect audio type for %q; pass --content-type", filepath.Base(filePath))
		}
		contentType = ct
	}

	if !outputJSON {
		fmt.Printf("Uploading %s (%d bytes)...\n", filepath.Base(filePath), stat.Size())
	}

	path := "/rooms/" + url.PathEscape(roomID) + "/audio"
	resp, err := api.PostMultipart(path, filepath.Base(filePath), contentType, file)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	var uploadResp UploadAudioResponse
	if err := json.Unmarshal(resp.Data, &uploadResp); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(uploadResp, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	fmt.Printf("Audio transcribed and indexed (chunk %s):\n\n", uploadResp.ChunkID)
	transcription := uploadResp.Transcription
	if len(transcription) > 300 {
		transcription = transcription[:297] + "..."
	}
	fmt.Println(transcription)
	return nil
}
