package versions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/cryptobom/internal/common"
	"github.com/dmitrijs2005/cryptobom/internal/filex"
)

// FileRepository stores one JSON file per snapshot in a single
// directory, named <project>_<versionID>.json.
type FileRepository struct {
	dir string
}

// NewFileRepository creates the snapshot directory if needed and
// returns a repository over it.
func NewFileRepository(dir string) (*FileRepository, error) {
	abs, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, fmt.Errorf("snapshot dir: %w", err)
	}
	return &FileRepository{dir: abs}, nil
}

func (r *FileRepository) path(project, versionID string) string {
	return filepath.Join(r.dir, fmt.Sprintf("%s_%s.json", project, versionID))
}

// Save writes the snapshot, replacing any file with the same key.
func (r *FileRepository) Save(ctx context.Context, snap *Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot %s: %w", snap.VersionID, err)
	}
	path := r.path(snap.ProjectName, snap.VersionID)
	if err := os.WriteFile(path, data, 0o660); err != nil {
		return fmt.Errorf("write snapshot %s: %w", path, err)
	}
	return nil
}

// Load reads a snapshot back; a missing file maps to
// common.ErrVersionNotFound.
func (r *FileRepository) Load(ctx context.Context, project, versionID string) (*Snapshot, error) {
	path := r.path(project, versionID)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", versionID, common.ErrVersionNotFound)
		}
		return nil, fmt.Errorf("read snapshot %s: %w", path, err)
	}
	snap := &Snapshot{}
	if err := json.Unmarshal(data, snap); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot %s: %w", path, err)
	}
	return snap, nil
}

// Exists reports whether a snapshot file is present.
func (r *FileRepository) Exists(ctx context.Context, project, versionID string) (bool, error) {
	_, err := os.Stat(r.path(project, versionID))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("stat snapshot %s: %w", r.path(project, versionID), err)
	}
	return true, nil
}

// Delete removes a snapshot file; a missing file maps to
// common.ErrVersionNotFound.
func (r *FileRepository) Delete(ctx context.Context, project, versionID string) error {
	path := r.path(project, versionID)
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s: %w", versionID, common.ErrVersionNotFound)
		}
		return fmt.Errorf("delete snapshot %s: %w", path, err)
	}
	return nil
}
