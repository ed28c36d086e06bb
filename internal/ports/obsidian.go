package ports

// BoardOpener opens a board document for the user
type BoardOpener interface {
	// OpenFile opens a vault-relative or absolute path inside the vault
	OpenFile(filePath string) error
}
