package inventory

import "github.com/dmitrijs2005/cryptobom/internal/models"

// RestoreFrom replaces the asset set wholesale with the given assets,
// stamps the modification time and appends a single synthetic audit
// entry recording which version was restored. The existing audit trail
// is kept intact.
func (i *Inventory) RestoreFrom(assets []*models.Asset, versionID, user string) {
	i.assets = make(map[string]*models.Asset, len(assets))
	i.order = i.order[:0]
	for _, a := range assets {
		c := a.Clone()
		i.assets[c.ID] = c
		i.order = append(i.order, c.ID)
	}
	i.lastModifiedAt = i.now()

	i.appendAudit(models.AuditEntry{
		Action:    models.AuditRestored,
		AssetID:   versionID,
		AssetName: "snapshot restore",
		User:      i.orDefault(user),
	})
}

// Adopt merges imported assets into the inventory without validation or
// audit entries, overwriting existing ids. Import reconstructs a prior
// export; the mutations it replays were audited when they first
// happened.
func (i *Inventory) Adopt(assets []*models.Asset) {
	for _, a := range assets {
		c := a.Clone()
		if _, exists := i.assets[c.ID]; !exists {
			i.order = append(i.order, c.ID)
		}
		i.assets[c.ID] = c
	}
}
