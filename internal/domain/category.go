package domain

import (
	"path"
	"strings"
)

// CategoryOf returns the category key for a vault-relative file path: the
// first non-empty path segment below root. Paths outside root are used as-is.
// Returns "" when no segment exists.
func CategoryOf(filePath, root string) string {
	cleanRoot := strings.TrimRight(root, "/") + "/"

	rel := filePath
	if strings.HasPrefix(filePath, cleanRoot) {
		rel = filePath[len(cleanRoot):]
	}

	for _, part := range strings.Split(rel, "/") {
		if strings.TrimSpace(part) != "" {
			return part
		}
	}
	return ""
}

// ItemName returns the display name of a file: its base name without the
// final extension (e.g., "Projects/Alpha/one.md" -> "one").
func ItemName(filePath string) string {
	base := path.Base(filePath)
	if base == "." || base == "/" {
		return ""
	}
	return strings.TrimSuffix(base, path.Ext(base))
}
