package files

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Manager moves processed workbooks into an archive directory so a
// re-run of the importer does not pick them up again.
type Manager struct {
	archiveDir string
}

// NewManager creates a manager that archives into archiveDir.
func NewManager(archiveDir string) *Manager {
	return &Manager{archiveDir: archiveDir}
}

// Archive moves the file into the archive directory, creating the
// directory on first use, and returns the new path. Rename is tried
// first; a copy and delete covers moves across filesystems.
func (m *Manager) Archive(path string) (string, error) {
	if err := os.MkdirAll(m.archiveDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	dst := filepath.Join(m.archiveDir, filepath.Base(path))
	if err := os.Rename(path, dst); err == nil {
		return dst, nil
	}

	if err := copyFile(path, dst); err != nil {
		return "", err
	}
	if err := os.Remove(path); err != nil {
		return "", fmt.Errorf("failed to remove source file: %w", err)
	}
	return dst, nil
}

func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source file: %w", err)
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dstFile.Close()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return fmt.Errorf("failed to copy file content: %w", err)
	}

	// Sync to ensure write is complete
	return dstFile.Sync()
}
