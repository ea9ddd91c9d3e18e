package mcptool

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/hiresense/internal/analysis"
	"github.com/jonathan/hiresense/internal/types"
)

func connect(t *testing.T) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	server := NewServer("test", analysis.NewEngine(nil))
	clientTransport, serverTransport := mcp.NewInMemoryTransports()

	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = serverSession.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func TestTool_Listed(t *testing.T) {
	session := connect(t)

	res, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, res.Tools, 1)
	assert.Equal(t, ToolName, res.Tools[0].Name)
	require.NotNil(t, res.Tools[0].Annotations)
	assert.True(t, res.Tools[0].Annotations.ReadOnlyHint)
}

func TestTool_Analyze(t *testing.T) {
	session := connect(t)

	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: ToolName,
		Arguments: map[string]any{
			"career_goal": "Data Scientist",
			"skills_text": "python python python, sql",
		},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)

	data, err := json.Marshal(res.StructuredContent)
	require.NoError(t, err)
	var out Output
	require.NoError(t, json.Unmarshal(data, &out))

	assert.True(t, out.Success)
	assert.Equal(t, types.SourceFallback, out.Source)
	_, err = uuid.Parse(out.ID)
	assert.NoError(t, err)
	require.NotNil(t, out.Data)
	assert.Len(t, out.Data.LearningRoadmap.Phases, 4)
}

func TestTool_ValidationError(t *testing.T) {
	session := connect(t)

	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      ToolName,
		Arguments: map[string]any{"career_goal": "Data Scientist"},
	})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, types.MsgMissingProfile)
}

func TestNewOutput(t *testing.T) {
	id := uuid.New()
	created := time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)
	out := NewOutput(types.AnalysisResponse{Success: true, ID: id, Source: types.SourceAI, CreatedAt: created})
	assert.Equal(t, id.String(), out.ID)
	assert.Equal(t, "2026-05-01T09:30:00Z", out.CreatedAt)

	failed := NewOutput(types.Failed("nope"))
	assert.False(t, failed.Success)
	assert.Empty(t, failed.ID)
	assert.Equal(t, "nope", failed.Error)
}
