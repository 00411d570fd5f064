package transcriptserver

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// TranscriptFromIDInput is the input schema for get_transcript_from_id.
type TranscriptFromIDInput struct {
	VideoID    string `json:"video_id" jsonschema:"YouTube video ID, exactly 11 characters"`
	Language   string `json:"language,omitempty" jsonschema:"Preferred caption language code, e.g. en, es, pt-BR (default: en)"`
	FormatType string `json:"format_type,omitempty" jsonschema:"Output format: text (timestamped lines), json, or raw (default: text)"`
}

func registerTranscriptFromID(server *mcp.Server, svc *Service) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_transcript_from_id",
		Description: "Get the transcript of a YouTube video from its 11-character video ID. Returns timestamped text by default; format_type selects json or a raw segment dump. Falls back to English when the preferred language has no track.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input TranscriptFromIDInput) (*mcp.CallToolResult, any, error) {
		if input.VideoID == "" {
			return nil, nil, errors.New("video_id is required")
		}
		out := svc.TranscriptFromID(ctx, input.VideoID, input.Language, input.FormatType)
		return textResult(out), nil, nil
	})
}
