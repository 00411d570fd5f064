package transcriptserver

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// TranscriptFromURLInput is the input schema for get_transcript_from_url.
type TranscriptFromURLInput struct {
	URL        string `json:"url" jsonschema:"YouTube video URL (watch, youtu.be, embed, or /v/ form)"`
	Language   string `json:"language,omitempty" jsonschema:"Preferred caption language code, e.g. en, es, pt-BR (default: en)"`
	FormatType string `json:"format_type,omitempty" jsonschema:"Output format: text (timestamped lines), json, or raw (default: text)"`
}

func registerTranscriptFromURL(server *mcp.Server, svc *Service) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_transcript_from_url",
		Description: "Get the transcript of a YouTube video from its URL. Returns timestamped text by default; format_type selects json or a raw segment dump. Falls back to English when the preferred language has no track.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input TranscriptFromURLInput) (*mcp.CallToolResult, any, error) {
		if input.URL == "" {
			return nil, nil, errors.New("url is required")
		}
		out := svc.TranscriptFromURL(ctx, input.URL, input.Language, input.FormatType)
		return textResult(out), nil, nil
	})
}
