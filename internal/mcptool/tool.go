// Package mcptool exposes skill-gap analysis as a Model Context Protocol tool.
package mcptool

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jonathan/hiresense/internal/analysis"
	"github.com/jonathan/hiresense/internal/types"
)

// ToolName is the registered tool name
const ToolName = "skill_gap_analysis"

// Input is the tool's argument object
type Input struct {
	ResumeText string `json:"resume_text,omitempty" jsonschema:"Resume or academic background as plain text"`
	SkillsText string `json:"skills_text,omitempty" jsonschema:"Comma-separated or free-form list of current skills"`
	CareerGoal string `json:"career_goal" jsonschema:"Target role, e.g. Data Scientist or DevOps Engineer"`
}

// Output mirrors the analysis response envelope with string-typed id and timestamp
type Output struct {
	Success   bool          `json:"success"`
	ID        string        `json:"id,omitempty"`
	Source    string        `json:"source,omitempty"`
	CreatedAt string        `json:"created_at,omitempty"`
	Data      *types.Report `json:"data,omitempty"`
	Error     string        `json:"error,omitempty"`
}

// NewOutput converts a response envelope
func NewOutput(resp types.AnalysisResponse) Output {
	out := Output{
		Success: resp.Success,
		Source:  resp.Source,
		Data:    resp.Data,
		Error:   resp.Error,
	}
	if resp.Success {
		out.ID = resp.ID.String()
		out.CreatedAt = resp.CreatedAt.Format(time.RFC3339)
	}
	return out
}

// NewServer builds an MCP server with the analysis tool registered
func NewServer(version string, producer analysis.Producer) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "hiresense",
		Version: version,
	}, nil)
	Register(server, producer)
	return server
}

// Register adds the skill_gap_analysis tool to server
func Register(server *mcp.Server, producer analysis.Producer) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolName,
		Description: "Analyze the gap between a learner's resume or skills and a target career goal. Returns strong, moderate, weak and missing skills, category scores, a four-phase learning roadmap, priority recommendations, career readiness and project ideas.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input Input) (*mcp.CallToolResult, Output, error) {
		resp := analysis.Run(ctx, producer, types.AnalysisRequest{
			ResumeText: input.ResumeText,
			SkillsText: input.SkillsText,
			CareerGoal: input.CareerGoal,
		})
		if !resp.Success {
			return nil, Output{}, errors.New(resp.Error)
		}
		slog.Debug("tool call completed", slog.String("tool", ToolName), slog.String("id", resp.ID.String()))
		return nil, NewOutput(resp), nil
	})
}

// ServeStdio runs the server over stdin/stdout until ctx is done or the client disconnects
func ServeStdio(ctx context.Context, server *mcp.Server) error {
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		return fmt.Errorf("mcp stdio server failed: %w", err)
	}
	return nil
}

// HTTPHandler serves the server over the streamable HTTP transport
func HTTPHandler(server *mcp.Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return server }, nil)
}
