package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kanbanwatch/internal/domain"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"VAULT", "TARGET_FOLDER", "KANBAN_BOARD_LOCATION", "UPDATE_TIME", "CONFIG"} {
		t.Setenv(EnvPrefix+"_"+key, "")
	}
}

func TestStore_LoadMissingFileReturnsDefaults(t *testing.T) {
	clearEnv(t)
	store := NewStore(filepath.Join(t.TempDir(), "config.yaml"))

	settings, err := store.Load()
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultUpdateTime, settings.UpdateTime)
	assert.Empty(t, settings.TargetFolder)
	assert.Empty(t, settings.KanbanBoardLocation)
	assert.Equal(t, ExpandHome(DefaultVaultPath), settings.Vault)
}

func TestStore_SaveThenLoad(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	store := NewStore(path)

	want := domain.Settings{
		Vault:               "/vaults/work",
		TargetFolder:        "Projects",
		KanbanBoardLocation: "Boards/Kanban.md",
		UpdateTime:          45,
	}
	require.NoError(t, store.Save(want))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "target_folder: Projects")
	assert.Contains(t, string(data), "update_time: 45")
}

func TestStore_PartialFileMergedOverDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("target_folder: Projects\n"), 0644))

	settings, err := NewStore(path).Load()
	require.NoError(t, err)

	assert.Equal(t, "Projects", settings.TargetFolder)
	assert.Equal(t, domain.DefaultUpdateTime, settings.UpdateTime)
}

func TestStore_MalformedUpdateTimeFailsClosed(t *testing.T) {
	clearEnv(t)
	tests := []string{"update_time: soon\n", "update_time: 0\n", "update_time: -5\n"}

	for _, content := range tests {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		settings, err := NewStore(path).Load()
		require.NoError(t, err, content)
		assert.Equal(t, domain.DefaultUpdateTime, settings.UpdateTime, content)
	}
}

func TestStore_EnvironmentOverridesFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("target_folder: Projects\nupdate_time: 10\n"), 0644))

	t.Setenv("KANBANWATCH_TARGET_FOLDER", "Work")
	t.Setenv("KANBANWATCH_UPDATE_TIME", "90")

	settings, err := NewStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "Work", settings.TargetFolder)
	assert.Equal(t, 90, settings.UpdateTime)
}

func TestStore_InvalidYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("target_folder: [unterminated\n"), 0644))

	_, err := NewStore(path).Load()
	assert.Error(t, err)
}

func TestFilePath(t *testing.T) {
	clearEnv(t)

	t.Setenv("KANBANWATCH_CONFIG", "/etc/kw.yaml")
	assert.Equal(t, "/etc/kw.yaml", FilePath())

	t.Setenv("KANBANWATCH_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	assert.Equal(t, filepath.Join("/xdg", "kanbanwatch", "config.yaml"), FilePath())
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "notes"), ExpandHome("~/notes"))
	assert.Equal(t, "/abs/path", ExpandHome("/abs/path"))
	assert.Equal(t, "", ExpandHome(""))
}
