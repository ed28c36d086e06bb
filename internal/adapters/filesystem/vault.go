package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"kanbanwatch/internal/ports"
)

// ErrPathEscape is returned when a resolved path escapes the vault boundary.
var ErrPathEscape = errors.New("path escapes vault boundary")

// Vault implements ports.Vault on a vault directory
type Vault struct {
	root string
}

// Ensure Vault implements ports.Vault
var _ ports.Vault = (*Vault)(nil)

// NewVault creates a vault rooted at vaultPath
func NewVault(vaultPath string) *Vault {
	// Expand ~ to home directory
	if strings.HasPrefix(vaultPath, "~") {
		home, _ := os.UserHomeDir()
		vaultPath = filepath.Join(home, vaultPath[1:])
	}
	return &Vault{root: vaultPath}
}

// Root returns the vault directory
func (v *Vault) Root() string {
	return v.root
}

// ListPaths returns the vault-relative, slash-separated paths of all regular
// files whose path starts with root, sorted. Hidden directories such as
// .obsidian and .trash are skipped, and so are dot-files like .DS_Store.
func (v *Vault) ListPaths(ctx context.Context, root string) ([]string, error) {
	var paths []string

	err := filepath.WalkDir(v.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == v.root {
				return err
			}
			return nil // Skip unreadable entries
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if d.IsDir() {
			if path != v.root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || strings.HasPrefix(d.Name(), ".") {
			return nil
		}

		rel, err := filepath.Rel(v.root, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if strings.HasPrefix(rel, root) {
			paths = append(paths, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk vault %s: %w", v.root, err)
	}

	sort.Strings(paths)
	return paths, nil
}

// Exists reports whether path is a regular file inside the vault
func (v *Vault) Exists(path string) bool {
	abs, err := v.resolve(path)
	if err != nil {
		return false
	}
	info, err := os.Stat(abs)
	return err == nil && info.Mode().IsRegular()
}

// Read returns the content of the document at path
func (v *Vault) Read(path string) (string, error) {
	abs, err := v.resolve(path)
	if err != nil {
		return "", err
	}
	content, err := os.ReadFile(abs)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(content), nil
}

// Write replaces the document at path, keeping its file mode
func (v *Vault) Write(path, text string) error {
	abs, err := v.resolve(path)
	if err != nil {
		return err
	}

	mode := os.FileMode(0644)
	if info, err := os.Stat(abs); err == nil {
		mode = info.Mode().Perm()
	}

	if err := os.WriteFile(abs, []byte(text), mode); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// AbsPath returns the absolute location of a vault-relative path
func (v *Vault) AbsPath(path string) (string, error) {
	return v.resolve(path)
}

// resolve maps a vault-relative path onto the filesystem and validates it
// stays within the vault boundary.
func (v *Vault) resolve(relPath string) (string, error) {
	if strings.TrimSpace(relPath) == "" {
		return "", fmt.Errorf("empty path")
	}
	absPath, err := filepath.Abs(filepath.Join(v.root, filepath.FromSlash(relPath)))
	if err != nil {
		return "", fmt.Errorf("resolve path: %w", err)
	}
	vaultAbs, err := filepath.Abs(v.root)
	if err != nil {
		return "", fmt.Errorf("resolve vault path: %w", err)
	}
	if !strings.HasPrefix(absPath, vaultAbs+string(filepath.Separator)) && absPath != vaultAbs {
		return "", fmt.Errorf("%w: %s", ErrPathEscape, relPath)
	}
	return absPath, nil
}
