package inventory

import "github.com/dmitrijs2005/cryptobom/internal/models"

// AssetPatch is an explicit partial update for one asset. Nil fields are
// left untouched; set fields replace the stored value. Because the
// updatable fields are enumerated here, there is no way to address an
// unknown field. The asset id is immutable and deliberately absent.
type AssetPatch struct {
	Name               *string
	Type               *models.AssetType
	Algorithm          *string
	KeyLengthBits      *int
	CipherMode         *string
	Purpose            *models.Purpose
	LibraryRef         *string
	Version            *string
	Status             *models.AssetStatus
	Compliance         *[]string
	VulnerabilityScore *float64
	KnownCVEs          *[]string
	RotationSchedule   *string
	LastAuditDate      *string
	ExpirationDate     *string
	Dependencies       *[]string
	Description        *string
	Notes              *string
}

func (p AssetPatch) apply(a *models.Asset) {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Type != nil {
		a.Type = *p.Type
	}
	if p.Algorithm != nil {
		a.Algorithm = *p.Algorithm
	}
	if p.KeyLengthBits != nil {
		a.KeyLengthBits = *p.KeyLengthBits
	}
	if p.CipherMode != nil {
		a.CipherMode = *p.CipherMode
	}
	if p.Purpose != nil {
		a.Purpose = *p.Purpose
	}
	if p.LibraryRef != nil {
		a.LibraryRef = *p.LibraryRef
	}
	if p.Version != nil {
		a.Version = *p.Version
	}
	if p.Status != nil {
		a.Status = *p.Status
	}
	if p.Compliance != nil {
		a.Compliance = append([]string(nil), *p.Compliance...)
	}
	if p.VulnerabilityScore != nil {
		a.VulnerabilityScore = *p.VulnerabilityScore
	}
	if p.KnownCVEs != nil {
		a.KnownCVEs = append([]string(nil), *p.KnownCVEs...)
	}
	if p.RotationSchedule != nil {
		a.RotationSchedule = *p.RotationSchedule
	}
	if p.LastAuditDate != nil {
		a.LastAuditDate = *p.LastAuditDate
	}
	if p.ExpirationDate != nil {
		a.ExpirationDate = *p.ExpirationDate
	}
	if p.Dependencies != nil {
		a.Dependencies = append([]string(nil), *p.Dependencies...)
	}
	if p.Description != nil {
		a.Description = *p.Description
	}
	if p.Notes != nil {
		a.Notes = *p.Notes
	}
}
