package store

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/spf13/afero"
)

// Export writes the snapshot to path as indented JSON, creating parent directories
func Export(fs afero.Fs, path string, snapshot domain.Snapshot) error {
	data, err := json.MarshalIndent(normalize(snapshot), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}
	}

	if err := afero.WriteFile(fs, path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return nil
}

// Import reads a snapshot written by Export. A missing file reports
// domain.ErrNoSnapshot and an unreadable one domain.ErrCorruptSnapshot.
func Import(fs afero.Fs, path string) (domain.Snapshot, error) {
	exists, err := afero.Exists(fs, path)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("failed to stat import file: %w", err)
	}
	if !exists {
		return domain.Snapshot{}, fmt.Errorf("%w: %s does not exist", domain.ErrNoSnapshot, path)
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("failed to read import file: %w", err)
	}
	return DecodeSnapshot(data)
}
