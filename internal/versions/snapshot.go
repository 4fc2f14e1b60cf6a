// Package versions implements named, timestamped snapshots of an
// inventory with diff, restore and prune. Snapshots are self-contained:
// once written they are independent of the live inventory.
package versions

import (
	"context"
	"time"

	"github.com/dmitrijs2005/cryptobom/internal/inventory"
	"github.com/dmitrijs2005/cryptobom/internal/models"
)

// Snapshot is a point-in-time copy of an inventory's assets and audit
// trail, keyed by (project, version id). Version ids are derived from
// the snapshot time as YYYYMMDD_HHMMSS and sort lexically.
type Snapshot struct {
	VersionID   string              `json:"versionId"`
	ProjectName string              `json:"projectName"`
	Timestamp   time.Time           `json:"timestamp"`
	Message     string              `json:"message"`
	User        string              `json:"user"`
	Summary     inventory.Summary   `json:"summary"`
	Assets      []*models.Asset     `json:"assets"`
	AuditLog    []models.AuditEntry `json:"auditLog"`
}

// HistoryEntry is the lightweight in-memory record of one snapshot
// taken in the current process. History is deliberately not persisted.
type HistoryEntry struct {
	VersionID string            `json:"versionId"`
	Timestamp time.Time         `json:"timestamp"`
	Message   string            `json:"message"`
	User      string            `json:"user"`
	Summary   inventory.Summary `json:"summary"`
}

// Repository persists snapshots. Implementations must return an error
// wrapping common.ErrVersionNotFound from Load and Delete when the
// snapshot does not exist.
type Repository interface {
	Save(ctx context.Context, snap *Snapshot) error
	Load(ctx context.Context, project, versionID string) (*Snapshot, error)
	Exists(ctx context.Context, project, versionID string) (bool, error)
	Delete(ctx context.Context, project, versionID string) error
}
