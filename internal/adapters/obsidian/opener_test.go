package obsidian

import (
	"errors"
	"testing"
)

func TestNewOpener_DerivesVaultName(t *testing.T) {
	tests := []struct {
		name          string
		vaultPath     string
		wantVaultName string
	}{
		{
			name:          "simple vault path",
			vaultPath:     "/Users/test/MyVault",
			wantVaultName: "MyVault",
		},
		{
			name:          "vault with spaces",
			vaultPath:     "/Users/test/My Obsidian Vault",
			wantVaultName: "My Obsidian Vault",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opener := NewOpener(tt.vaultPath)
			if opener.vaultName != tt.wantVaultName {
				t.Errorf("vaultName = %q, want %q", opener.vaultName, tt.wantVaultName)
			}
		})
	}
}

func TestBuildURI(t *testing.T) {
	tests := []struct {
		name      string
		vaultPath string
		filePath  string
		wantURI   string
		wantErr   bool
	}{
		{
			name:      "vault-relative board",
			vaultPath: "/Users/test/MyVault",
			filePath:  "Boards/Kanban.md",
			wantURI:   "obsidian://open?file=Boards%2FKanban.md&vault=MyVault",
		},
		{
			name:      "absolute board path",
			vaultPath: "/Users/test/MyVault",
			filePath:  "/Users/test/MyVault/Work Board.md",
			wantURI:   "obsidian://open?file=Work%20Board.md&vault=MyVault",
		},
		{
			name:      "vault name with spaces",
			vaultPath: "/Users/test/My Vault",
			filePath:  "Kanban.md",
			wantURI:   "obsidian://open?file=Kanban.md&vault=My%20Vault",
		},
		{
			name:      "plus sign survives",
			vaultPath: "/v",
			filePath:  "C++ board.md",
			wantURI:   "obsidian://open?file=C%2B%2B%20board.md&vault=v",
		},
		{
			name:      "file outside vault",
			vaultPath: "/Users/test/MyVault",
			filePath:  "/Users/test/OtherFolder/file.md",
			wantErr:   true,
		},
		{
			name:      "relative escape",
			vaultPath: "/Users/test/MyVault",
			filePath:  "../secrets.md",
			wantErr:   true,
		},
		{
			name:      "empty path",
			vaultPath: "/Users/test/MyVault",
			filePath:  "  ",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opener := NewOpener(tt.vaultPath)
			gotURI, err := opener.BuildURI(tt.filePath)

			if (err != nil) != tt.wantErr {
				t.Errorf("BuildURI() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if gotURI != tt.wantURI {
				t.Errorf("BuildURI() = %q, want %q", gotURI, tt.wantURI)
			}
		})
	}
}

func TestOpenFile_RunsLauncher(t *testing.T) {
	opener := NewOpener("/Users/test/MyVault")

	var gotName string
	var gotArgs []string
	opener.run = func(name string, args ...string) error {
		gotName, gotArgs = name, args
		return nil
	}

	if err := opener.OpenFile("Kanban.md"); err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	if gotName == "" || len(gotArgs) == 0 {
		t.Fatalf("launcher not invoked")
	}
	if last := gotArgs[len(gotArgs)-1]; last != "obsidian://open?file=Kanban.md&vault=MyVault" {
		t.Errorf("launched URI = %q", last)
	}
}

func TestOpenFile_PropagatesError(t *testing.T) {
	opener := NewOpener("/v")
	want := errors.New("no handler")
	opener.run = func(string, ...string) error { return want }

	if err := opener.OpenFile("Kanban.md"); !errors.Is(err, want) {
		t.Errorf("expected %v, got %v", want, err)
	}
}

func TestLauncher(t *testing.T) {
	tests := []struct {
		goos     string
		wantName string
		wantErr  bool
	}{
		{"darwin", "open", false},
		{"linux", "xdg-open", false},
		{"windows", "cmd", false},
		{"plan9", "", true},
	}

	for _, tt := range tests {
		name, _, err := launcher(tt.goos, "obsidian://open")
		if (err != nil) != tt.wantErr || name != tt.wantName {
			t.Errorf("launcher(%q) = %q, %v", tt.goos, name, err)
		}
	}
}
