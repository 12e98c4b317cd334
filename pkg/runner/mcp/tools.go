package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerListTasksTool(srv, svc)
	registerGetTaskTool(srv, svc)
	registerAddTaskTool(srv, svc)
	registerUpdateTaskTool(srv, svc)
	registerToggleTaskTool(srv, svc)
	registerArchiveTaskTool(srv, svc)
	registerDeleteTaskTool(srv, svc)
	registerTaskStatsTool(srv, svc)
	registerReportTool(srv, svc)
}

func registerListTasksTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_tasks",
		mcp.WithDescription("List tasks. The all filter hides archived tasks."),
		mcp.WithString("filter",
			mcp.Description("Which tasks to list, defaults to all."),
			mcp.Enum("all", "todos", "completed", "archived"),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tasks, filter, err := svc.ListTasks(ctx, request.GetString("filter", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"filter": filter,
			"title":  filter.Title(),
			"tasks":  tasks,
			"count":  len(tasks),
		})
	})
}

func registerGetTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_task",
		mcp.WithDescription("Fetch a single task by identifier."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task identifier to fetch."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		dto, err := svc.TaskByID(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerAddTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_task",
		mcp.WithDescription("Create a new todo task."),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Task title; surrounding whitespace is trimmed."),
		),
		mcp.WithString("category",
			mcp.Description("Task category, defaults to personal."),
			mcp.Enum("personal", "business"),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Title    string `json:"title"`
			Category string `json:"category"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		dto, err := svc.AddTask(ctx, args.Title, args.Category)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerUpdateTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"update_task",
		mcp.WithDescription("Change the title and/or category of a task."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task identifier to modify."),
		),
		mcp.WithString("title",
			mcp.Description("New title."),
		),
		mcp.WithString("category",
			mcp.Description("New category."),
			mcp.Enum("personal", "business"),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			ID       string  `json:"id"`
			Title    *string `json:"title"`
			Category *string `json:"category"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		dto, err := svc.UpdateTask(ctx, UpdateTaskOptions{
			ID:       args.ID,
			Title:    args.Title,
			Category: args.Category,
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerToggleTaskTool(srv *server.MCPServer, svc *Service) {
	registerIDTool(srv,
		"toggle_task",
		"Complete a todo task or reopen a completed one. Archived tasks can not be toggled.",
		"Task identifier to toggle.",
		svc.ToggleTask,
	)
}

func registerArchiveTaskTool(srv *server.MCPServer, svc *Service) {
	registerIDTool(srv,
		"archive_task",
		"Archive a task. Archived tasks only show under the archived filter.",
		"Task identifier to archive.",
		svc.ArchiveTask,
	)
}

func registerDeleteTaskTool(srv *server.MCPServer, svc *Service) {
	registerIDTool(srv,
		"delete_task",
		"Permanently delete a task.",
		"Task identifier to delete.",
		svc.DeleteTask,
	)
}

func registerIDTool(srv *server.MCPServer, name, description, idDescription string, fn func(context.Context, string) (*TaskDTO, error)) {
	tool := mcp.NewTool(
		name,
		mcp.WithDescription(description),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description(idDescription),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		dto, err := fn(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerTaskStatsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"task_stats",
		mcp.WithDescription("Counts per category and filter, with the completion rate in percent."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sum, err := svc.Summary(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(sum)
	})
}

func registerReportTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"completed_report",
		mcp.WithDescription("Tasks completed recently, grouped by category, archived ones included."),
		mcp.WithString("window",
			mcp.Description("How far back to look, e.g. 12h, 3d or 2w. Defaults to 1w."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		r, err := svc.Report(ctx, request.GetString("window", ""), time.Now())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(r)
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
