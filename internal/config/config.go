package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"kanbanwatch/internal/domain"
	"kanbanwatch/internal/ports"
)

const (
	appName  = "kanbanwatch"
	fileName = "config.yaml"

	// EnvPrefix prefixes every environment override (KANBANWATCH_TARGET_FOLDER, ...)
	EnvPrefix = "KANBANWATCH"

	DefaultVaultPath = "~/Documents/Obsidian"
)

// fileSettings is the on-disk shape of the settings file
type fileSettings struct {
	Vault               string `yaml:"vault" mapstructure:"vault"`
	TargetFolder        string `yaml:"target_folder" mapstructure:"target_folder"`
	KanbanBoardLocation string `yaml:"kanban_board_location" mapstructure:"kanban_board_location"`
	UpdateTime          int    `yaml:"update_time" mapstructure:"update_time"`
}

// Store implements ports.SettingsStore with a YAML file read through viper
type Store struct {
	path string
}

// Ensure Store implements SettingsStore
var _ ports.SettingsStore = (*Store)(nil)

// NewStore creates a store for the settings file at path.
// An empty path selects FilePath().
func NewStore(path string) *Store {
	if path == "" {
		path = FilePath()
	}
	return &Store{path: ExpandHome(path)}
}

// Path returns the settings file location
func (s *Store) Path() string {
	return s.path
}

// Load reads the settings file merged over the defaults, then applies
// environment overrides. A missing file is not an error. An unusable
// update_time falls back to the default interval.
func (s *Store) Load() (domain.Settings, error) {
	v := viper.New()
	v.SetConfigFile(s.path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	defaults := domain.DefaultSettings()
	v.SetDefault("vault", VaultPath())
	v.SetDefault("target_folder", defaults.TargetFolder)
	v.SetDefault("kanban_board_location", defaults.KanbanBoardLocation)
	v.SetDefault("update_time", defaults.UpdateTime)

	if err := v.ReadInConfig(); err != nil && !isNotExist(err) {
		return defaults, fmt.Errorf("failed to read settings %s: %w", s.path, err)
	}

	updateTime, _ := domain.ParseUpdateTime(v.GetString("update_time"))

	return domain.Settings{
		Vault:               ExpandHome(v.GetString("vault")),
		TargetFolder:        strings.TrimSpace(v.GetString("target_folder")),
		KanbanBoardLocation: strings.TrimSpace(v.GetString("kanban_board_location")),
		UpdateTime:          updateTime,
	}, nil
}

// Save writes the settings file, creating its directory if needed
func (s *Store) Save(settings domain.Settings) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", filepath.Dir(s.path), err)
	}

	data, err := yaml.Marshal(fileSettings{
		Vault:               settings.Vault,
		TargetFolder:        settings.TargetFolder,
		KanbanBoardLocation: settings.KanbanBoardLocation,
		UpdateTime:          settings.UpdateTime,
	})
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
}

// VaultPath returns the vault path from KANBANWATCH_VAULT env var,
// falling back to DefaultVaultPath.
func VaultPath() string {
	if env := os.Getenv(EnvPrefix + "_VAULT"); env != "" {
		return env
	}
	return DefaultVaultPath
}

// FilePath returns the settings file path from KANBANWATCH_CONFIG, falling
// back to $XDG_CONFIG_HOME/kanbanwatch/config.yaml.
func FilePath() string {
	if env := os.Getenv(EnvPrefix + "_CONFIG"); env != "" {
		return env
	}
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(".", "."+appName, fileName)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, appName, fileName)
}

// DataDir returns the directory for the journal and log files
func DataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, appName)
}

// ExpandHome expands a leading ~ to the home directory
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
