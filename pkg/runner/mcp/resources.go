package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerTasksResource(srv, svc)
	registerTaskTemplate(srv, svc)
}

func registerTasksResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"things://tasks",
		"Tasks",
		mcp.WithResourceDescription("Every task, archived ones included, with summary counts."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		sum, err := svc.Summary(ctx)
		if err != nil {
			return nil, err
		}
		tasks := toDTOs(svc.Store.Tasks())

		payload := map[string]any{
			"tasks":   tasks,
			"count":   len(tasks),
			"summary": sum,
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerTaskTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"things://tasks/{id}",
		"Task Details",
		mcp.WithTemplateDescription("Detailed information about a single task."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		id := templateArg(request.Params.Arguments, "id")
		if id == "" {
			return nil, fmt.Errorf("task id is required")
		}

		dto, err := svc.TaskByID(ctx, id)
		if err != nil {
			return nil, err
		}

		payload := map[string]any{
			"task": dto,
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

// templateArg reads a matched URI template variable, which arrives either as
// a string or as a single element list.
func templateArg(args map[string]any, name string) string {
	switch v := args[name].(type) {
	case string:
		return v
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	}
	return ""
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
