package models

import "time"

// AuditAction names the mutation an audit entry records.
type AuditAction string

const (
	AuditAdded    AuditAction = "added"
	AuditUpdated  AuditAction = "updated"
	AuditRemoved  AuditAction = "removed"
	AuditRestored AuditAction = "restored"
)

// AuditEntry is the immutable record of one inventory mutation. Entries
// are created by the owning inventory and never modified afterwards.
//
// OldValue and NewValue carry full asset snapshots where applicable:
// adds record NewValue, removes record OldValue, updates record both.
// A restore records neither; its AssetID holds the restored version id.
type AuditEntry struct {
	ID        string      `json:"id"`
	Timestamp time.Time   `json:"timestamp"`
	Action    AuditAction `json:"action"`
	AssetID   string      `json:"assetId"`
	AssetName string      `json:"assetName"`
	OldValue  *Asset      `json:"oldValue,omitempty"`
	NewValue  *Asset      `json:"newValue,omitempty"`
	User      string      `json:"user"`
}

// Clone returns a copy whose OldValue and NewValue snapshots are
// independent of the original.
func (e AuditEntry) Clone() AuditEntry {
	e.OldValue = e.OldValue.Clone()
	e.NewValue = e.NewValue.Clone()
	return e
}
