package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/projector/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for schema resources.
	uriScheme = "jsonapi://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "types",
		Name:        "types",
		Description: "Summary of every registered resource type",
		MIMEType:    "application/json",
	}, s.handleTypesResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "types/{type}",
		Name:        "type-description",
		Description: "Fields, relationships, and subtypes of one resource type",
		MIMEType:    "application/json",
	}, s.handleTypeResource)
}

// handleTypesResource returns the summaries of all registered types.
func (s *Server) handleTypesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return jsonResource(req.Params.URI, s.ports.Schema.List())
}

// handleTypeResource returns the description of one type.
func (s *Server) handleTypeResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	name := extractTypeName(req.Params.URI)
	if name == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	desc, err := s.ports.Schema.Describe(name)
	if errors.Is(err, domain.ErrUnsupportedType) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("describing %s: %w", name, err)
	}
	return jsonResource(req.Params.URI, desc)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractTypeName extracts the type from a URI like jsonapi://types/{type}.
func extractTypeName(uri string) string {
	const prefix = uriScheme + "types/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	name := strings.TrimPrefix(uri, prefix)
	if strings.Contains(name, "/") {
		return ""
	}
	return name
}
