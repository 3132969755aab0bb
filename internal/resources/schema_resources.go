package resources

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/agenda/internal/store"
)

// SchemaURI is the URI under which the result schema is served.
const SchemaURI = "schema://result"

// RegisterSchemaResources registers the result schema resource with the
// MCP server
func RegisterSchemaResources(s *mcpserver.MCPServer) error {
	schemaResource := mcp.NewResource(
		SchemaURI,
		"Result Schema",
		mcp.WithResourceDescription("JSON schema of event and reminder query results"),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(schemaResource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleResultSchema(ctx, request)
	})

	return nil
}

func handleResultSchema(_ context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     store.JSONSchema(),
		},
	}, nil
}
