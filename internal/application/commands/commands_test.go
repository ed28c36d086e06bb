package commands

import (
	"context"
	"errors"
	"strings"
	"testing"

	"kanbanwatch/internal/application"
	"kanbanwatch/internal/domain"
	"kanbanwatch/internal/ports"
)

type fakeVault struct {
	paths []string
	docs  map[string]string
}

func (v *fakeVault) ListPaths(_ context.Context, root string) ([]string, error) {
	var out []string
	for _, p := range v.paths {
		if strings.HasPrefix(p, root) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (v *fakeVault) Exists(path string) bool {
	_, ok := v.docs[path]
	return ok
}

func (v *fakeVault) Read(path string) (string, error) {
	return v.docs[path], nil
}

func (v *fakeVault) Write(path, text string) error {
	v.docs[path] = text
	return nil
}

type fakeStore struct {
	settings domain.Settings
	saves    int
}

func (s *fakeStore) Load() (domain.Settings, error) { return s.settings, nil }
func (s *fakeStore) Save(settings domain.Settings) error {
	s.settings = settings
	s.saves++
	return nil
}
func (s *fakeStore) Path() string { return "memory" }

type fakeRunner struct {
	report *domain.CycleReport
}

func (r *fakeRunner) RunCycle(context.Context) *domain.CycleReport { return r.report }

func TestPreviewCommand_DoesNotWrite(t *testing.T) {
	vault := &fakeVault{
		paths: []string{"Projects/Alpha/one.md", "Projects/Gamma/two.md"},
		docs:  map[string]string{"Board.md": "## Alpha\n"},
	}
	cmd := NewPreviewCommand(vault, domain.Settings{TargetFolder: "Projects", KanbanBoardLocation: "Board.md"})

	result, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if vault.docs["Board.md"] != "## Alpha\n" {
		t.Errorf("preview wrote the board: %q", vault.docs["Board.md"])
	}
	if len(result.Merge.Inserted) != 1 || result.Merge.Inserted[0].FullKey() != "Alpha/one" {
		t.Errorf("Inserted = %v", result.Merge.Inserted)
	}
	summary := result.Summary()
	if !strings.Contains(summary, "+ - [ ] [[Alpha/one|one]]") {
		t.Errorf("summary missing insertion:\n%s", summary)
	}
	if !strings.Contains(summary, `no heading "## Gamma"`) {
		t.Errorf("summary missing dropped category:\n%s", summary)
	}
}

func TestPreviewCommand_Validate(t *testing.T) {
	tests := []struct {
		name     string
		settings domain.Settings
		errMsg   string
	}{
		{"missing folder", domain.Settings{KanbanBoardLocation: "Board.md"}, "target folder is required"},
		{"missing board", domain.Settings{TargetFolder: "Projects"}, "kanban board location is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewPreviewCommand(&fakeVault{}, tt.settings).Validate()
			if err == nil || !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("expected error containing %q, got %v", tt.errMsg, err)
			}
		})
	}
}

func TestPreviewCommand_MissingBoard(t *testing.T) {
	vault := &fakeVault{paths: []string{"Projects/Alpha/one.md"}, docs: map[string]string{}}
	cmd := NewPreviewCommand(vault, domain.Settings{TargetFolder: "Projects", KanbanBoardLocation: "Board.md"})

	_, err := cmd.Execute(context.Background())
	if !errors.Is(err, application.ErrBoardNotFound) {
		t.Errorf("expected ErrBoardNotFound, got %v", err)
	}
}

func TestConfigureCommand(t *testing.T) {
	store := &fakeStore{settings: domain.Settings{TargetFolder: "Old", UpdateTime: 30}}

	result, err := NewConfigureCommand(store, "targetFolder", "Projects").Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.settings.TargetFolder != "Projects" || store.saves != 1 {
		t.Errorf("store = %+v (saves=%d)", store.settings, store.saves)
	}
	if result.Message != "Set target_folder = Projects" {
		t.Errorf("Message = %q", result.Message)
	}
}

func TestConfigureCommand_RejectsBadValue(t *testing.T) {
	store := &fakeStore{settings: domain.DefaultSettings()}

	_, err := NewConfigureCommand(store, "update_time", "NaN").Execute(context.Background())
	if !errors.Is(err, application.ErrInvalidSetting) {
		t.Errorf("expected ErrInvalidSetting, got %v", err)
	}
	if store.saves != 0 {
		t.Error("invalid setting was saved")
	}
}

func TestSyncCommand(t *testing.T) {
	batch := domain.NewAdditionBatch()
	batch.Add("Alpha", "one")
	batch.Add("Gamma", "two")
	report := &domain.CycleReport{
		Additions:    batch,
		Inserted:     []domain.BoardEntry{{Category: "Alpha", Item: "one"}},
		Dropped:      []string{"Gamma"},
		BoardWritten: true,
	}

	result, err := NewSyncCommand(&fakeRunner{report: report}).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `Found 2 new file(s), added 1 to the board; no heading for: "Gamma"`
	if result.Message != want {
		t.Errorf("Message = %q, want %q", result.Message, want)
	}
}

func TestSummarizeCycle(t *testing.T) {
	tests := []struct {
		name   string
		report *domain.CycleReport
		want   string
	}{
		{"skipped", &domain.CycleReport{Skipped: true}, "Skipped: a previous cycle is still running"},
		{"failed", &domain.CycleReport{Err: application.ErrNotConfigured}, "Cycle failed: target folder not configured"},
		{"idle", &domain.CycleReport{SnapshotSize: 4}, "No new files (4 tracked)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SummarizeCycle(tt.report); got != tt.want {
				t.Errorf("SummarizeCycle() = %q, want %q", got, tt.want)
			}
		})
	}
}

type fakeJournal struct {
	ports.CycleJournal
	limit int
}

func (j *fakeJournal) Recent(limit int) ([]ports.JournalRecord, error) {
	j.limit = limit
	return []ports.JournalRecord{{ID: "a"}}, nil
}

func TestHistoryCommand(t *testing.T) {
	j := &fakeJournal{}

	records, err := NewHistoryCommand(j, 0).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if j.limit != DefaultHistoryLimit || len(records) != 1 {
		t.Errorf("limit = %d, records = %v", j.limit, records)
	}

	if _, err := NewHistoryCommand(j, -1).Execute(context.Background()); err == nil {
		t.Error("expected error for negative limit")
	}
}
