package mcp

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kanbanwatch/internal/application"
	"kanbanwatch/internal/domain"
	"kanbanwatch/internal/ports"
)

type memVault struct {
	paths []string
	docs  map[string]string
}

func (v *memVault) ListPaths(_ context.Context, root string) ([]string, error) {
	var out []string
	for _, p := range v.paths {
		if strings.HasPrefix(p, root) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (v *memVault) Exists(path string) bool {
	_, ok := v.docs[path]
	return ok
}

func (v *memVault) Read(path string) (string, error) {
	return v.docs[path], nil
}

func (v *memVault) Write(path, text string) error {
	v.docs[path] = text
	return nil
}

type memStore struct{ settings domain.Settings }

func (s *memStore) Load() (domain.Settings, error) {
	return s.settings, nil
}

func (s *memStore) Save(set domain.Settings) error {
	s.settings = set
	return nil
}

func (s *memStore) Path() string {
	return "memory"
}

type memJournal struct {
	ports.CycleJournal
	records []ports.JournalRecord
}

func (j *memJournal) Recent(limit int) ([]ports.JournalRecord, error) {
	if limit < len(j.records) {
		return j.records[:limit], nil
	}
	return j.records, nil
}

func newDeps() (Deps, *memVault) {
	vault := &memVault{
		paths: []string{"Projects/Alpha/one.md"},
		docs:  map[string]string{"Board.md": "## Alpha\n"},
	}
	store := &memStore{settings: domain.Settings{
		Vault:               "/vault",
		TargetFolder:        "Projects",
		KanbanBoardLocation: "Board.md",
		UpdateTime:          30,
	}}
	engine := application.NewEngine(vault, store, nil)
	return Deps{Engine: engine, Vault: vault, Settings: store}, vault
}

func callTool(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) (string, bool) {
	t.Helper()

	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	result, err := handler(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, result.Content)

	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return text.Text, result.IsError
}

func TestSyncTool_UpdatesBoard(t *testing.T) {
	deps, vault := newDeps()

	text, isErr := callTool(t, syncHandler(deps.Engine), nil)

	assert.False(t, isErr)
	assert.Contains(t, text, "added 1 to the board")
	assert.Contains(t, text, "- [ ] [[Alpha/one|one]]")
	assert.Equal(t, "## Alpha\n- [ ] [[Alpha/one|one]]\n", vault.docs["Board.md"])
}

func TestSyncTool_ReportsFailure(t *testing.T) {
	deps, vault := newDeps()
	delete(vault.docs, "Board.md")

	text, isErr := callTool(t, syncHandler(deps.Engine), nil)

	assert.True(t, isErr)
	assert.Contains(t, text, "kanban board not found")
}

func TestPreviewTool_DoesNotWrite(t *testing.T) {
	deps, vault := newDeps()

	text, isErr := callTool(t, previewHandler(deps), nil)

	assert.False(t, isErr)
	assert.Contains(t, text, "+ - [ ] [[Alpha/one|one]]")
	assert.Equal(t, "## Alpha\n", vault.docs["Board.md"])
}

func TestStatusTool(t *testing.T) {
	deps, _ := newDeps()
	deps.Engine.RunCycle(context.Background())

	text, isErr := callTool(t, statusHandler(deps), nil)

	assert.False(t, isErr)
	assert.Contains(t, text, "target_folder: Projects")
	assert.Contains(t, text, "tracked files: 1")
}

func TestHistoryTool(t *testing.T) {
	journal := &memJournal{records: []ports.JournalRecord{
		{
			ID:        "c2",
			StartedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
			Outcome:   "updated",
			Additions: 1,
			Inserted:  []domain.BoardEntry{{Category: "Alpha", Item: "one"}},
		},
		{ID: "c1", Outcome: "error", Error: "kanban board not found"},
	}}

	text, isErr := callTool(t, historyHandler(journal), map[string]any{"limit": 1})

	assert.False(t, isErr)
	assert.Contains(t, text, "2024-05-01T10:00:00Z  c2  updated  1 new")
	assert.Contains(t, text, "[[Alpha/one|one]]")
	assert.NotContains(t, text, "c1")
}

func TestHistoryTool_Empty(t *testing.T) {
	text, _ := callTool(t, historyHandler(&memJournal{}), nil)
	assert.Equal(t, "No results.", text)
}

func TestConfigSetTool(t *testing.T) {
	deps, _ := newDeps()

	text, isErr := callTool(t, configSetHandler(deps), map[string]any{"key": "update_time", "value": "60"})
	assert.False(t, isErr)
	assert.Equal(t, "Set update_time = 60", text)

	settings, _ := deps.Settings.Load()
	assert.Equal(t, 60, settings.UpdateTime)

	text, isErr = callTool(t, configSetHandler(deps), map[string]any{"key": "update_time", "value": "soon"})
	assert.True(t, isErr)
	assert.NotEmpty(t, text)
}
