package transcriptserver

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_transcript/internal/engine"
)

// transcriptResourcePrefix is the URI scheme under which transcripts are
// exposed as MCP resources.
const transcriptResourcePrefix = "youtube://transcript/"

// RegisterResources registers the youtube://transcript/{video_id} resource
// template. Reads resolve through the same path as get_transcript_from_id
// with default language and text format, so failures arrive as message text
// rather than protocol errors.
func RegisterResources(server *mcp.Server, svc *Service) {
	server.AddResourceTemplate(&mcp.ResourceTemplate{
		Name:        "video_transcript",
		Description: "Timestamped transcript of a YouTube video",
		MIMEType:    "text/plain",
		URITemplate: transcriptResourcePrefix + "{video_id}",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		engine.IncrResourceRequests()
		videoID := strings.TrimPrefix(req.Params.URI, transcriptResourcePrefix)
		text := svc.TranscriptFromID(ctx, videoID, "", "")
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "text/plain",
				Text:     text,
			}},
		}, nil
	})
}
