package transcriptserver

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RegisterTools registers the transcript tools on the given MCP server:
// get_transcript_from_url, get_transcript_from_id, list_available_transcripts.
func RegisterTools(server *mcp.Server, svc *Service) {
	registerTranscriptFromURL(server, svc)
	registerTranscriptFromID(server, svc)
	registerListTranscripts(server, svc)
}

// textResult wraps a message string as an unstructured tool result.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}
