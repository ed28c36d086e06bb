package commands

import (
	"context"
	"fmt"

	"kanbanwatch/internal/application"
	"kanbanwatch/internal/domain"
	"kanbanwatch/internal/ports"
)

// ConfigureResult contains the result of changing a setting
type ConfigureResult struct {
	Settings domain.Settings
	Message  string
}

// ConfigureCommand changes one setting and saves it
type ConfigureCommand struct {
	store ports.SettingsStore
	Key   string
	Value string
}

// NewConfigureCommand creates a new ConfigureCommand
func NewConfigureCommand(store ports.SettingsStore, key, value string) *ConfigureCommand {
	return &ConfigureCommand{
		store: store,
		Key:   key,
		Value: value,
	}
}

// Validate checks the key and value without touching the store
func (c *ConfigureCommand) Validate() error {
	if err := application.ValidateRequired("key", c.Key); err != nil {
		return err
	}
	probe := domain.DefaultSettings()
	return application.ApplySetting(&probe, c.Key, c.Value)
}

// Execute runs the configure command
func (c *ConfigureCommand) Execute(ctx context.Context) (*ConfigureResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	settings, err := c.store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if err := application.ApplySetting(&settings, c.Key, c.Value); err != nil {
		return nil, err
	}
	if err := c.store.Save(settings); err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}

	key := application.NormalizeKey(c.Key)
	value, _ := application.SettingValue(settings, key)
	return &ConfigureResult{
		Settings: settings,
		Message:  fmt.Sprintf("Set %s = %s", key, value),
	}, nil
}
