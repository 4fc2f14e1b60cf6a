package versions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/cryptobom/internal/common"
	"github.com/dmitrijs2005/cryptobom/internal/inventory"
	"github.com/dmitrijs2005/cryptobom/internal/logging"
	"github.com/dmitrijs2005/cryptobom/internal/models"
)

// versionIDLayout renders snapshot times as lexically sortable ids.
const versionIDLayout = "20060102_150405"

// Diff is the asset-level difference between two snapshots. Added and
// Modified follow the newer snapshot's asset order, Removed follows the
// older one's.
type Diff struct {
	Added           []string `json:"added"`
	Removed         []string `json:"removed"`
	Modified        []string `json:"modified"`
	AssetCountDelta int      `json:"assetCountDelta"`
}

// Store snapshots one live inventory into a Repository and keeps the
// in-process history of snapshots it has taken. History is rebuilt only
// from snapshots created in the current process; it is not persisted.
type Store struct {
	inv     *inventory.Inventory
	repo    Repository
	logger  logging.Logger
	history []HistoryEntry

	// lastStamp enforces strictly increasing version ids: two snapshots
	// within one second get consecutive whole-second stamps.
	lastStamp time.Time
	now       func() time.Time
}

// NewStore returns a Store over the given inventory and repository.
func NewStore(inv *inventory.Inventory, repo Repository, logger logging.Logger) *Store {
	return &Store{inv: inv, repo: repo, logger: logger, now: time.Now}
}

// nextStamp returns a whole-second timestamp strictly after the last
// one issued, advancing past the wall clock when needed.
func (s *Store) nextStamp() time.Time {
	t := s.now().Truncate(time.Second)
	if !t.After(s.lastStamp) {
		t = s.lastStamp.Add(time.Second)
	}
	s.lastStamp = t
	return t
}

// Create snapshots the inventory's current assets and audit trail,
// persists the copy and records it in the in-memory history. Returns
// the new version id.
func (s *Store) Create(ctx context.Context, message, user string) (string, error) {
	stamp := s.nextStamp()
	versionID := stamp.Format(versionIDLayout)

	// lastStamp only covers ids issued by this process; the repository
	// may hold a snapshot from an earlier run in the same second.
	for {
		exists, err := s.repo.Exists(ctx, s.inv.ProjectName(), versionID)
		if err != nil {
			return "", fmt.Errorf("create version %s: %w", versionID, err)
		}
		if !exists {
			break
		}
		stamp = s.nextStamp()
		versionID = stamp.Format(versionIDLayout)
	}

	snap := &Snapshot{
		VersionID:   versionID,
		ProjectName: s.inv.ProjectName(),
		Timestamp:   stamp,
		Message:     message,
		User:        user,
		Summary:     s.inv.Summary(),
		Assets:      s.inv.Assets(),
		AuditLog:    s.inv.AuditLog(),
	}
	if err := s.repo.Save(ctx, snap); err != nil {
		return "", fmt.Errorf("create version %s: %w", versionID, err)
	}

	s.history = append(s.history, HistoryEntry{
		VersionID: versionID,
		Timestamp: stamp,
		Message:   message,
		User:      user,
		Summary:   snap.Summary,
	})

	s.logger.Info(ctx, "snapshot created",
		"project", snap.ProjectName, "version", versionID, "assets", len(snap.Assets))
	return versionID, nil
}

// History returns a copy of the snapshot history, oldest first.
func (s *Store) History() []HistoryEntry {
	return append([]HistoryEntry(nil), s.history...)
}

// Load fetches one snapshot of this store's project by version id.
func (s *Store) Load(ctx context.Context, versionID string) (*Snapshot, error) {
	return s.repo.Load(ctx, s.inv.ProjectName(), versionID)
}

// Diff compares two snapshots by version id. Modified means any field
// differs, not merely presence in both.
func (s *Store) Diff(ctx context.Context, versionIDA, versionIDB string) (*Diff, error) {
	snapA, err := s.Load(ctx, versionIDA)
	if err != nil {
		return nil, err
	}
	snapB, err := s.Load(ctx, versionIDB)
	if err != nil {
		return nil, err
	}

	byIDA := assetIndex(snapA.Assets)
	byIDB := assetIndex(snapB.Assets)

	diff := &Diff{AssetCountDelta: len(snapB.Assets) - len(snapA.Assets)}
	for _, b := range snapB.Assets {
		a, ok := byIDA[b.ID]
		switch {
		case !ok:
			diff.Added = append(diff.Added, b.ID)
		case !a.Equal(b):
			diff.Modified = append(diff.Modified, b.ID)
		}
	}
	for _, a := range snapA.Assets {
		if _, ok := byIDB[a.ID]; !ok {
			diff.Removed = append(diff.Removed, a.ID)
		}
	}
	return diff, nil
}

// Restore replaces the live inventory's assets wholesale with the
// snapshot's. The audit trail and the snapshot history are untouched
// apart from the synthetic "restored" entry the inventory appends.
func (s *Store) Restore(ctx context.Context, versionID, user string) error {
	snap, err := s.Load(ctx, versionID)
	if err != nil {
		return err
	}

	s.inv.RestoreFrom(snap.Assets, versionID, user)
	s.logger.Info(ctx, "snapshot restored",
		"project", snap.ProjectName, "version", versionID, "assets", len(snap.Assets))
	return nil
}

// Prune deletes the oldest snapshots beyond keepCount, oldest first by
// history order, and returns how many were deleted. Snapshots already
// gone from the repository are dropped from history without failing the
// prune.
func (s *Store) Prune(ctx context.Context, keepCount int) (int, error) {
	if keepCount < 0 {
		keepCount = 0
	}
	if len(s.history) <= keepCount {
		return 0, nil
	}

	drop := s.history[:len(s.history)-keepCount]
	deleted := 0
	for _, entry := range drop {
		if err := s.repo.Delete(ctx, s.inv.ProjectName(), entry.VersionID); err != nil {
			if errors.Is(err, common.ErrVersionNotFound) {
				s.logger.Warn(ctx, "snapshot already gone", "version", entry.VersionID)
				continue
			}
			return deleted, fmt.Errorf("prune version %s: %w", entry.VersionID, err)
		}
		deleted++
	}
	s.history = append([]HistoryEntry(nil), s.history[len(s.history)-keepCount:]...)

	s.logger.Info(ctx, "snapshots pruned", "deleted", deleted, "kept", keepCount)
	return deleted, nil
}

func assetIndex(assets []*models.Asset) map[string]*models.Asset {
	byID := make(map[string]*models.Asset, len(assets))
	for _, a := range assets {
		byID[a.ID] = a
	}
	return byID
}
