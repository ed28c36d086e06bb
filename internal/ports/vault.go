package ports

import "context"

// PathLister lists the files of a vault
type PathLister interface {
	// ListPaths returns the vault-relative paths of every file whose path
	// starts with root. Paths use "/" separators.
	ListPaths(ctx context.Context, root string) ([]string, error)
}

// DocumentStore reads and writes vault documents by vault-relative path
type DocumentStore interface {
	// Exists reports whether path names a regular file
	Exists(path string) bool
	Read(path string) (string, error)
	Write(path, text string) error
}

// Vault is a vault that can both list files and store documents
type Vault interface {
	PathLister
	DocumentStore
}
