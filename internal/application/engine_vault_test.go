package application

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"kanbanwatch/internal/adapters/filesystem"
)

func TestRunCycle_OnDiskVaultIgnoresDotFiles(t *testing.T) {
	root := t.TempDir()
	files := map[string]string{
		"Projects/Alpha/one.md":      "# one",
		"Projects/Alpha/.DS_Store":   "",
		"Projects/Alpha/.hidden.md":  "# hidden",
		"Projects/.obsidian/note.md": "# cache",
		boardPath:                    "## Alpha\n",
	}
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			t.Fatalf("failed to create dir for %s: %v", rel, err)
		}
		if err := os.WriteFile(full, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", rel, err)
		}
	}

	settings := testSettings()
	settings.settings.Vault = root
	engine := NewEngine(filesystem.NewVault(root), settings, nil)

	report := engine.RunCycle(context.Background())
	if report.Err != nil {
		t.Fatalf("unexpected error: %v", report.Err)
	}

	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(boardPath)))
	if err != nil {
		t.Fatalf("failed to read board: %v", err)
	}
	board := string(data)

	want := "## Alpha\n- [ ] [[Alpha/one|one]]\n"
	if board != want {
		t.Errorf("board =\n%q\nwant\n%q", board, want)
	}
	if strings.Contains(board, "/|]]") {
		t.Errorf("board has a link with an empty name: %q", board)
	}
	if engine.SnapshotSize() != 1 {
		t.Errorf("SnapshotSize() = %d, want 1", engine.SnapshotSize())
	}
}
