package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/projector/internal/core/domain"
	"github.com/custodia-labs/projector/internal/core/ports/driving"
	"github.com/custodia-labs/projector/internal/core/services"
)

// ProjectInput is the input schema for the project tool.
type ProjectInput struct {
	Type     string  `json:"type" jsonschema:"the resource type, as declared or in the configured type format"`
	ID       string  `json:"id,omitempty" jsonschema:"a single resource id; omit to list the collection"`
	Include  *string `json:"include,omitempty" jsonschema:"comma separated relationship paths; omit to use the type's default includes"`
	Page     int     `json:"page,omitempty" jsonschema:"collection page number (default 1)"`
	PageSize int     `json:"page_size,omitempty" jsonschema:"collection page size (default from settings)"`
}

// ProjectOutput is the structured result of the project tool.
// Document is set on success and alongside invalid include paths.
// Tools return it as any so no output schema is inferred from the
// document's Go shape, which differs from its JSON:API encoding.
type ProjectOutput struct {
	Document *domain.Document     `json:"document,omitempty"`
	Errors   []domain.ErrorObject `json:"errors,omitempty"`
}

// DescribeInput is the input schema for the describe tool.
type DescribeInput struct {
	Type string `json:"type" jsonschema:"the resource type to describe"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "project",
		Description: "Project stored records of a resource type into a JSON:API document",
	}, s.handleProject)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "describe",
		Description: "Describe the attributes, relationships, and subtypes of a resource type",
	}, s.handleDescribe)
}

// handleProject handles the project tool invocation. Projection failures
// are reported as JSON:API error objects in a tool error result.
func (s *Server) handleProject(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ProjectInput,
) (*mcp.CallToolResult, any, error) {
	req := driving.ProjectionRequest{
		Type: input.Type,
		ID:   input.ID,
		Page: domain.Page{Number: input.Page, Size: input.PageSize},
	}
	if input.Include != nil {
		req.Include = domain.Include(*input.Include)
	}

	doc, err := s.ports.Projection.Project(ctx, req)
	if err != nil {
		out := ProjectOutput{Errors: services.ErrorDocument(err).Errors}
		var incErr *domain.IncludeError
		if errors.As(err, &incErr) {
			out.Document = doc
		}
		return &mcp.CallToolResult{IsError: true}, out, nil
	}
	return nil, ProjectOutput{Document: doc}, nil
}

// handleDescribe handles the describe tool invocation.
func (s *Server) handleDescribe(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input DescribeInput,
) (*mcp.CallToolResult, any, error) {
	desc, err := s.ports.Schema.Describe(input.Type)
	if err != nil {
		return nil, nil, err
	}
	return nil, desc, nil
}
