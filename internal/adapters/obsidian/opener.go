package obsidian

import (
	"fmt"
	"net/url"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"kanbanwatch/internal/ports"
)

// Opener implements ports.BoardOpener with the obsidian:// URI scheme
type Opener struct {
	vaultPath string
	vaultName string
	run       func(name string, args ...string) error
}

// Ensure Opener implements BoardOpener
var _ ports.BoardOpener = (*Opener)(nil)

// NewOpener creates a new Obsidian opener for the given vault path
func NewOpener(vaultPath string) *Opener {
	return &Opener{
		vaultPath: vaultPath,
		vaultName: filepath.Base(vaultPath),
		run: func(name string, args ...string) error {
			return exec.Command(name, args...).Run()
		},
	}
}

// OpenFile opens a board in Obsidian. Relative paths are taken from the vault root.
func (o *Opener) OpenFile(filePath string) error {
	uri, err := o.BuildURI(filePath)
	if err != nil {
		return err
	}
	name, args, err := launcher(runtime.GOOS, uri)
	if err != nil {
		return err
	}
	return o.run(name, args...)
}

// BuildURI constructs the obsidian:// URI for a board path
func (o *Opener) BuildURI(filePath string) (string, error) {
	if strings.TrimSpace(filePath) == "" {
		return "", fmt.Errorf("no board path given")
	}
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(o.vaultPath, filepath.FromSlash(filePath))
	}

	relPath, err := filepath.Rel(o.vaultPath, filePath)
	if err != nil {
		return "", fmt.Errorf("failed to get relative path: %w", err)
	}
	if relPath == ".." || strings.HasPrefix(relPath, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("file is outside the vault: %s", filePath)
	}

	// Obsidian expects forward slashes in paths
	relPath = filepath.ToSlash(relPath)

	query := url.Values{}
	query.Set("vault", o.vaultName)
	query.Set("file", relPath)
	return "obsidian://open?" + strings.ReplaceAll(query.Encode(), "+", "%20"), nil
}

// launcher returns the platform command that hands uri to its handler
func launcher(goos, uri string) (string, []string, error) {
	switch goos {
	case "darwin":
		return "open", []string{uri}, nil
	case "linux", "freebsd", "openbsd":
		return "xdg-open", []string{uri}, nil
	case "windows":
		return "cmd", []string{"/c", "start", "", uri}, nil
	default:
		return "", nil, fmt.Errorf("unsupported operating system: %s", goos)
	}
}
