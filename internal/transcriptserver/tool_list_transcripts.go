package transcriptserver

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ListTranscriptsInput is the input schema for list_available_transcripts.
type ListTranscriptsInput struct {
	VideoURLOrID string `json:"video_url_or_id" jsonschema:"YouTube video URL or bare 11-character video ID"`
}

func registerListTranscripts(server *mcp.Server, svc *Service) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_available_transcripts",
		Description: "List the caption tracks available for a YouTube video: language name and code, whether the track is auto-generated, and whether it is translatable.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input ListTranscriptsInput) (*mcp.CallToolResult, any, error) {
		if input.VideoURLOrID == "" {
			return nil, nil, errors.New("video_url_or_id is required")
		}
		out := svc.ListAvailable(ctx, input.VideoURLOrID)
		return textResult(out), nil, nil
	})
}
