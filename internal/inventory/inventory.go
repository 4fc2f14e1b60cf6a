// Package inventory implements the mutable cryptographic bill of
// materials: an ordered collection of assets with an append-only audit
// trail. Every mutation is validated where required, applied, stamped
// and audited; risk tiers are always recomputed on read.
//
// An Inventory is owned by one logical session. It provides no internal
// locking; concurrent writers need an external mutex.
package inventory

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/cryptobom/internal/common"
	"github.com/dmitrijs2005/cryptobom/internal/models"
	"github.com/dmitrijs2005/cryptobom/internal/validation"
)

// Inventory owns a set of assets keyed by id plus the audit trail of
// every mutation applied to it. Iteration order is insertion order.
type Inventory struct {
	projectName string
	description string
	version     string

	createdAt      time.Time
	lastModifiedAt time.Time

	assets map[string]*models.Asset
	order  []string
	audit  []models.AuditEntry

	validator   *validation.AssetValidator
	defaultUser string
	now         func() time.Time
}

// New creates an empty inventory for the given project. Assets added
// through Add are checked by the given validator first.
func New(projectName, description string, validator *validation.AssetValidator) *Inventory {
	now := time.Now()
	return &Inventory{
		projectName:    projectName,
		description:    description,
		version:        "1.0.0",
		createdAt:      now,
		lastModifiedAt: now,
		assets:         make(map[string]*models.Asset),
		validator:      validator,
		defaultUser:    common.DefaultUser,
		now:            time.Now,
	}
}

// SetDefaultUser replaces the user recorded on mutations when the
// caller gives none. Empty restores the package default.
func (i *Inventory) SetDefaultUser(user string) {
	if user == "" {
		user = common.DefaultUser
	}
	i.defaultUser = user
}

// ProjectName returns the project this inventory belongs to.
func (i *Inventory) ProjectName() string { return i.projectName }

// Description returns the free-form inventory description.
func (i *Inventory) Description() string { return i.description }

// SetDescription replaces the description without touching the audit
// trail or modification stamp. Used by import.
func (i *Inventory) SetDescription(d string) { i.description = d }

// Version returns the free-form display version string.
func (i *Inventory) Version() string { return i.version }

// SetVersion replaces the display version string.
func (i *Inventory) SetVersion(v string) { i.version = v }

// CreatedAt returns the creation timestamp.
func (i *Inventory) CreatedAt() time.Time { return i.createdAt }

// LastModifiedAt returns the timestamp of the last mutation.
func (i *Inventory) LastModifiedAt() time.Time { return i.lastModifiedAt }

// Len returns the number of assets currently held.
func (i *Inventory) Len() int { return len(i.assets) }

// Add validates the asset and inserts it. It fails with a
// validation.Error when checks fail and with common.ErrDuplicateID when
// the id is already taken. The inventory stores its own copy; the
// caller's value stays independent.
func (i *Inventory) Add(a *models.Asset, user string) error {
	if i.validator != nil {
		if ok, findings := i.validator.Validate(a); !ok {
			return &validation.Error{Findings: findings}
		}
	}
	if _, exists := i.assets[a.ID]; exists {
		return fmt.Errorf("%s: %w", a.ID, common.ErrDuplicateID)
	}

	stored := a.Clone()
	clampScore(stored)
	i.assets[stored.ID] = stored
	i.order = append(i.order, stored.ID)
	i.lastModifiedAt = i.now()

	i.appendAudit(models.AuditEntry{
		Action:    models.AuditAdded,
		AssetID:   stored.ID,
		AssetName: stored.Name,
		NewValue:  stored.Clone(),
		User:      i.orDefault(user),
	})
	return nil
}

// Remove deletes the asset with the given id. Removal is final: the id
// becomes free again and only the audit trail preserves the old state.
func (i *Inventory) Remove(id, user string) error {
	old, exists := i.assets[id]
	if !exists {
		return fmt.Errorf("%s: %w", id, common.ErrNotFound)
	}

	delete(i.assets, id)
	i.order = deleteOrdered(i.order, id)
	i.lastModifiedAt = i.now()

	i.appendAudit(models.AuditEntry{
		Action:    models.AuditRemoved,
		AssetID:   id,
		AssetName: old.Name,
		OldValue:  old.Clone(),
		User:      i.orDefault(user),
	})
	return nil
}

// Update applies a partial update to an existing asset. Only fields set
// on the patch change; everything else keeps its prior value. The audit
// entry records both the pre-image and the post-image.
func (i *Inventory) Update(id, user string, patch AssetPatch) error {
	a, exists := i.assets[id]
	if !exists {
		return fmt.Errorf("%s: %w", id, common.ErrNotFound)
	}

	old := a.Clone()
	patch.apply(a)
	clampScore(a)
	i.lastModifiedAt = i.now()

	i.appendAudit(models.AuditEntry{
		Action:    models.AuditUpdated,
		AssetID:   id,
		AssetName: a.Name,
		OldValue:  old,
		NewValue:  a.Clone(),
		User:      i.orDefault(user),
	})
	return nil
}

// Get returns a copy of the asset with the given id.
func (i *Inventory) Get(id string) (*models.Asset, bool) {
	a, ok := i.assets[id]
	if !ok {
		return nil, false
	}
	return a.Clone(), true
}

// Assets returns copies of all assets in insertion order.
func (i *Inventory) Assets() []*models.Asset {
	out := make([]*models.Asset, 0, len(i.order))
	for _, id := range i.order {
		out = append(out, i.assets[id].Clone())
	}
	return out
}

// appendAudit stamps and appends an entry. The trail is append-only by
// construction: no method mutates or deletes entries once added.
func (i *Inventory) appendAudit(e models.AuditEntry) {
	e.ID = uuid.NewString()
	e.Timestamp = i.now()
	i.audit = append(i.audit, e)
}

func clampScore(a *models.Asset) {
	if a.VulnerabilityScore < 0 {
		a.VulnerabilityScore = 0
	}
	if a.VulnerabilityScore > 10 {
		a.VulnerabilityScore = 10
	}
}

func deleteOrdered(order []string, id string) []string {
	for n, v := range order {
		if v == id {
			return append(order[:n], order[n+1:]...)
		}
	}
	return order
}

func (i *Inventory) orDefault(user string) string {
	if user == "" {
		return i.defaultUser
	}
	return user
}
