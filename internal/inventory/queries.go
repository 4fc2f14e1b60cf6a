package inventory

import (
	"github.com/dmitrijs2005/cryptobom/internal/models"
)

// Summary is the aggregate view of an inventory's current state.
type Summary struct {
	ProjectName      string                   `json:"projectName"`
	TotalAssets      int                      `json:"totalAssets"`
	AssetTypes       map[models.AssetType]int `json:"assetTypes"`
	CriticalRisk     int                      `json:"criticalRisk"`
	VulnerableAssets int                      `json:"vulnerableAssets"`
	ExpiredAssets    int                      `json:"expiredAssets"`
	CreatedAt        string                   `json:"createdAt"`
	LastModifiedAt   string                   `json:"lastModifiedAt"`
	Version          string                   `json:"version"`
}

// ComplianceStatus reports how much of the inventory claims a standard.
type ComplianceStatus struct {
	Standard        string   `json:"standard"`
	TotalAssets     int      `json:"totalAssets"`
	Compliant       int      `json:"compliant"`
	NonCompliant    int      `json:"nonCompliant"`
	Percentage      float64  `json:"compliancePercentage"`
	NonCompliantIDs []string `json:"nonCompliantAssets"`
}

// ordered iterates the live assets in insertion order. Internal use
// only; callers outside the package get copies.
func (i *Inventory) ordered() []*models.Asset {
	out := make([]*models.Asset, 0, len(i.order))
	for _, id := range i.order {
		out = append(out, i.assets[id])
	}
	return out
}

// ByType returns copies of all assets of the given type.
func (i *Inventory) ByType(t models.AssetType) []*models.Asset {
	var out []*models.Asset
	for _, a := range i.ordered() {
		if a.Type == t {
			out = append(out, a.Clone())
		}
	}
	return out
}

// ByRisk returns copies of all assets whose computed risk tier equals
// level. The tier is recomputed at call time, never cached.
func (i *Inventory) ByRisk(level models.RiskLevel) []*models.Asset {
	now := i.now()
	var out []*models.Asset
	for _, a := range i.ordered() {
		if a.Risk(now) == level {
			out = append(out, a.Clone())
		}
	}
	return out
}

// Critical returns all assets at CRITICAL risk.
func (i *Inventory) Critical() []*models.Asset {
	return i.ByRisk(models.RiskCritical)
}

// Vulnerable returns all assets with a non-zero vulnerability score or
// at least one known CVE.
func (i *Inventory) Vulnerable() []*models.Asset {
	var out []*models.Asset
	for _, a := range i.ordered() {
		if a.VulnerabilityScore > 0 || len(a.KnownCVEs) > 0 {
			out = append(out, a.Clone())
		}
	}
	return out
}

// Expired returns all assets whose expiration date has passed.
func (i *Inventory) Expired() []*models.Asset {
	now := i.now()
	var out []*models.Asset
	for _, a := range i.ordered() {
		if a.IsExpired(now) {
			out = append(out, a.Clone())
		}
	}
	return out
}

// Summary computes the aggregate counts over the current state.
func (i *Inventory) Summary() Summary {
	now := i.now()
	types := make(map[models.AssetType]int)
	var critical, vulnerable, expired int
	for _, a := range i.ordered() {
		types[a.Type]++
		if a.Risk(now) == models.RiskCritical {
			critical++
		}
		if a.VulnerabilityScore > 0 || len(a.KnownCVEs) > 0 {
			vulnerable++
		}
		if a.IsExpired(now) {
			expired++
		}
	}
	return Summary{
		ProjectName:      i.projectName,
		TotalAssets:      len(i.assets),
		AssetTypes:       types,
		CriticalRisk:     critical,
		VulnerableAssets: vulnerable,
		ExpiredAssets:    expired,
		CreatedAt:        i.createdAt.Format(timeLayout),
		LastModifiedAt:   i.lastModifiedAt.Format(timeLayout),
		Version:          i.version,
	}
}

const timeLayout = "2006-01-02T15:04:05Z07:00"

// ComplianceStatusFor reports the share of assets whose declared
// compliance list contains the given standard, and the ids that lack it.
func (i *Inventory) ComplianceStatusFor(standard string) ComplianceStatus {
	status := ComplianceStatus{
		Standard:    standard,
		TotalAssets: len(i.assets),
	}
	for _, a := range i.ordered() {
		if a.IsCompliant(standard) {
			status.Compliant++
		} else {
			status.NonCompliant++
			status.NonCompliantIDs = append(status.NonCompliantIDs, a.ID)
		}
	}
	if status.TotalAssets > 0 {
		status.Percentage = float64(status.Compliant) / float64(status.TotalAssets) * 100
	}
	return status
}

// AuditLog returns a copy of the full audit trail, oldest first. The
// asset snapshots inside the entries are cloned so callers cannot reach
// the stored trail through them.
func (i *Inventory) AuditLog() []models.AuditEntry {
	return cloneEntries(i.audit)
}

// RecentAudit returns a copy of the most recent n audit entries, oldest
// first. n larger than the trail returns everything.
func (i *Inventory) RecentAudit(n int) []models.AuditEntry {
	if n <= 0 {
		return nil
	}
	if n > len(i.audit) {
		n = len(i.audit)
	}
	return cloneEntries(i.audit[len(i.audit)-n:])
}

func cloneEntries(entries []models.AuditEntry) []models.AuditEntry {
	out := make([]models.AuditEntry, len(entries))
	for n, e := range entries {
		out[n] = e.Clone()
	}
	return out
}
