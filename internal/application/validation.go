package application

import (
	"fmt"
	"strings"

	"kanbanwatch/internal/domain"
)

// Setting keys accepted by ApplySetting
const (
	KeyVault               = "vault"
	KeyTargetFolder        = "target_folder"
	KeyKanbanBoardLocation = "kanban_board_location"
	KeyUpdateTime          = "update_time"
)

// SettingKeys lists the known setting keys in display order
var SettingKeys = []string{KeyVault, KeyTargetFolder, KeyKanbanBoardLocation, KeyUpdateTime}

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", formatFieldName(fieldName)),
		}
	}
	return nil
}

// formatFieldName converts setting keys to space-separated words
// for more readable error messages (e.g., "target_folder" -> "target folder")
func formatFieldName(fieldName string) string {
	return strings.ReplaceAll(fieldName, "_", " ")
}

// ValidateSettings checks that a cycle has what it needs to update a board
func ValidateSettings(s domain.Settings) error {
	if err := ValidateRequired(KeyVault, s.Vault); err != nil {
		return err
	}
	if err := ValidateRequired(KeyTargetFolder, s.TargetFolder); err != nil {
		return err
	}
	return ValidateRequired(KeyKanbanBoardLocation, s.KanbanBoardLocation)
}

// ApplySetting sets one setting by key, normalizing aliases such as
// "targetFolder" or "target-folder".
func ApplySetting(s *domain.Settings, key, value string) error {
	switch NormalizeKey(key) {
	case KeyVault:
		s.Vault = strings.TrimSpace(value)
	case KeyTargetFolder:
		s.TargetFolder = strings.TrimSpace(value)
	case KeyKanbanBoardLocation:
		s.KanbanBoardLocation = strings.TrimSpace(value)
	case KeyUpdateTime:
		n, ok := domain.ParseUpdateTime(value)
		if !ok {
			return &ValidationError{
				Field:   KeyUpdateTime,
				Message: fmt.Sprintf("expected a positive number of seconds, got: %q", value),
			}
		}
		s.UpdateTime = n
	default:
		return &ValidationError{
			Field:   "key",
			Message: fmt.Sprintf("unknown setting %q (expected one of: %s)", key, strings.Join(SettingKeys, ", ")),
		}
	}
	return nil
}

// SettingValue returns one setting by key for display
func SettingValue(s domain.Settings, key string) (string, error) {
	switch NormalizeKey(key) {
	case KeyVault:
		return s.Vault, nil
	case KeyTargetFolder:
		return s.TargetFolder, nil
	case KeyKanbanBoardLocation:
		return s.KanbanBoardLocation, nil
	case KeyUpdateTime:
		return fmt.Sprintf("%d", s.UpdateTime), nil
	}
	return "", &ValidationError{Field: "key", Message: fmt.Sprintf("unknown setting %q", key)}
}

// NormalizeKey maps camelCase and kebab-case spellings to snake_case keys
func NormalizeKey(key string) string {
	switch strings.ToLower(strings.NewReplacer("-", "", "_", "").Replace(strings.TrimSpace(key))) {
	case "vault":
		return KeyVault
	case "targetfolder":
		return KeyTargetFolder
	case "kanbanboardlocation", "board":
		return KeyKanbanBoardLocation
	case "updatetime", "interval":
		return KeyUpdateTime
	}
	return key
}
