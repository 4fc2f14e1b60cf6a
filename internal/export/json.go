// Package export serializes inventories for external consumers:
// flattened JSON (round-trippable) and CSV. The flattened forms carry
// each asset's computed risk level but drop the full old/new snapshots
// from audit entries; those live only in version snapshots.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/cryptobom/internal/inventory"
	"github.com/dmitrijs2005/cryptobom/internal/models"
	"github.com/dmitrijs2005/cryptobom/internal/validation"
)

// AssetRecord is one asset as consumers see it: all record fields plus
// the precomputed risk level.
type AssetRecord struct {
	models.Asset
	RiskLevel models.RiskLevel `json:"riskLevel"`
}

// AuditRecord is the flattened form of one audit entry, without the
// old/new asset snapshots.
type AuditRecord struct {
	Timestamp time.Time          `json:"timestamp"`
	Action    models.AuditAction `json:"action"`
	AssetID   string             `json:"assetId"`
	AssetName string             `json:"assetName"`
	User      string             `json:"user"`
}

// Document is the flattened export shape of a whole inventory.
type Document struct {
	ProjectName    string        `json:"projectName"`
	Description    string        `json:"description"`
	CreatedAt      time.Time     `json:"createdAt"`
	LastModifiedAt time.Time     `json:"lastModifiedAt"`
	Version        string        `json:"version"`
	Assets         []AssetRecord `json:"assets"`
	AuditLog       []AuditRecord `json:"auditLog"`
}

// Flatten builds the export document from the inventory's current
// state. Risk levels are computed at call time.
func Flatten(inv *inventory.Inventory) *Document {
	now := time.Now()
	doc := &Document{
		ProjectName:    inv.ProjectName(),
		Description:    inv.Description(),
		CreatedAt:      inv.CreatedAt(),
		LastModifiedAt: inv.LastModifiedAt(),
		Version:        inv.Version(),
	}
	for _, a := range inv.Assets() {
		doc.Assets = append(doc.Assets, AssetRecord{Asset: *a, RiskLevel: a.Risk(now)})
	}
	for _, e := range inv.AuditLog() {
		doc.AuditLog = append(doc.AuditLog, AuditRecord{
			Timestamp: e.Timestamp,
			Action:    e.Action,
			AssetID:   e.AssetID,
			AssetName: e.AssetName,
			User:      e.User,
		})
	}
	return doc
}

// WriteJSON writes the flattened inventory as indented JSON.
func WriteJSON(w io.Writer, inv *inventory.Inventory) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Flatten(inv)); err != nil {
		return fmt.Errorf("export json: %w", err)
	}
	return nil
}

// ReadJSON rebuilds an inventory from a flattened export. The asset set
// round-trips exactly; audit history and timestamps are summarized in
// the export and are not restored.
func ReadJSON(r io.Reader, validator *validation.AssetValidator) (*inventory.Inventory, error) {
	doc := &Document{}
	if err := json.NewDecoder(r).Decode(doc); err != nil {
		return nil, fmt.Errorf("import json: %w", err)
	}

	inv := inventory.New(doc.ProjectName, doc.Description, validator)
	if doc.Version != "" {
		inv.SetVersion(doc.Version)
	}

	assets := make([]*models.Asset, 0, len(doc.Assets))
	for n := range doc.Assets {
		assets = append(assets, &doc.Assets[n].Asset)
	}
	inv.Adopt(assets)
	return inv, nil
}
