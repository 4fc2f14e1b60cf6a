// Package models defines the cryptographic asset record and the audit
// entry types shared by all engine components.
package models

import (
	"slices"
	"time"
)

// AssetType classifies what kind of cryptographic artifact an asset is.
type AssetType string

const (
	AssetTypeAlgorithm   AssetType = "algorithm"
	AssetTypeKey         AssetType = "key"
	AssetTypeCertificate AssetType = "certificate"
	AssetTypeLibrary     AssetType = "library"
	AssetTypeCipherSuite AssetType = "cipher_suite"
)

// AssetTypes lists the recognized asset types in declaration order.
var AssetTypes = []AssetType{
	AssetTypeAlgorithm,
	AssetTypeKey,
	AssetTypeCertificate,
	AssetTypeLibrary,
	AssetTypeCipherSuite,
}

// Valid reports whether t is one of the recognized asset types.
func (t AssetType) Valid() bool {
	return slices.Contains(AssetTypes, t)
}

// AssetStatus is the declared lifecycle state of an asset.
type AssetStatus string

const (
	StatusActive     AssetStatus = "active"
	StatusDeprecated AssetStatus = "deprecated"
	StatusVulnerable AssetStatus = "vulnerable"
	StatusExpired    AssetStatus = "expired"
	StatusPlanned    AssetStatus = "planned"
)

// AssetStatuses lists the recognized statuses in declaration order.
var AssetStatuses = []AssetStatus{
	StatusActive,
	StatusDeprecated,
	StatusVulnerable,
	StatusExpired,
	StatusPlanned,
}

// Valid reports whether s is one of the recognized statuses.
func (s AssetStatus) Valid() bool {
	return slices.Contains(AssetStatuses, s)
}

// Purpose describes what an asset is used for. The empty value means
// "not declared" and is always accepted.
type Purpose string

const (
	PurposeEncryption     Purpose = "encryption"
	PurposeHashing        Purpose = "hashing"
	PurposeSigning        Purpose = "signing"
	PurposeKeyExchange    Purpose = "key_exchange"
	PurposeAuthentication Purpose = "authentication"
)

// Purposes lists the recognized purposes in declaration order.
var Purposes = []Purpose{
	PurposeEncryption,
	PurposeHashing,
	PurposeSigning,
	PurposeKeyExchange,
	PurposeAuthentication,
}

// Valid reports whether p is one of the recognized purposes.
func (p Purpose) Valid() bool {
	return slices.Contains(Purposes, p)
}

// RiskLevel is the computed risk tier of an asset. It is derived on every
// read from status, vulnerability score and expiry, never stored.
type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

// Asset is one tracked cryptographic artifact: an algorithm, a key, a
// certificate, a library or a cipher suite.
type Asset struct {
	ID                 string      `json:"id"`
	Name               string      `json:"name"`
	Type               AssetType   `json:"assetType"`
	Algorithm          string      `json:"algorithm"`
	KeyLengthBits      int         `json:"keyLengthBits"`
	CipherMode         string      `json:"cipherMode"`
	Purpose            Purpose     `json:"purpose"`
	LibraryRef         string      `json:"libraryRef"`
	Version            string      `json:"version"`
	Status             AssetStatus `json:"status"`
	Compliance         []string    `json:"compliance"`
	VulnerabilityScore float64     `json:"vulnerabilityScore"`
	KnownCVEs          []string    `json:"knownCVEs"`
	RotationSchedule   string      `json:"rotationSchedule"`
	LastAuditDate      string      `json:"lastAuditDate"`
	ExpirationDate     string      `json:"expirationDate"`
	Dependencies       []string    `json:"dependencies"`
	Description        string      `json:"description"`
	Notes              string      `json:"notes"`
}

// expiryLayouts are tried in order when parsing ExpirationDate.
var expiryLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// IsExpired reports whether the asset's expiration date lies before now.
// An empty or unparsable date means "no expiry" and reports false.
func (a *Asset) IsExpired(now time.Time) bool {
	if a.ExpirationDate == "" {
		return false
	}
	for _, layout := range expiryLayouts {
		if expiry, err := time.Parse(layout, a.ExpirationDate); err == nil {
			return now.After(expiry)
		}
	}
	return false
}

// Risk computes the risk tier of the asset at the given instant.
// First match wins: vulnerable or expired assets are CRITICAL regardless
// of score, then the CVSS-like score decides HIGH/MEDIUM/LOW.
func (a *Asset) Risk(now time.Time) RiskLevel {
	if a.Status == StatusVulnerable || a.IsExpired(now) {
		return RiskCritical
	}
	if a.VulnerabilityScore >= 7.0 {
		return RiskHigh
	}
	if a.VulnerabilityScore >= 4.0 {
		return RiskMedium
	}
	return RiskLow
}

// IsCompliant reports whether the asset itself claims the given standard.
// This is a literal membership test over the declared compliance list; see
// policy.Matcher for checks that do not trust the claim.
func (a *Asset) IsCompliant(standard string) bool {
	return slices.Contains(a.Compliance, standard)
}

// Equal reports whether two assets have identical field values.
func (a *Asset) Equal(other *Asset) bool {
	if a == nil || other == nil {
		return a == other
	}
	return a.ID == other.ID &&
		a.Name == other.Name &&
		a.Type == other.Type &&
		a.Algorithm == other.Algorithm &&
		a.KeyLengthBits == other.KeyLengthBits &&
		a.CipherMode == other.CipherMode &&
		a.Purpose == other.Purpose &&
		a.LibraryRef == other.LibraryRef &&
		a.Version == other.Version &&
		a.Status == other.Status &&
		a.VulnerabilityScore == other.VulnerabilityScore &&
		a.RotationSchedule == other.RotationSchedule &&
		a.LastAuditDate == other.LastAuditDate &&
		a.ExpirationDate == other.ExpirationDate &&
		a.Description == other.Description &&
		a.Notes == other.Notes &&
		slices.Equal(a.Compliance, other.Compliance) &&
		slices.Equal(a.KnownCVEs, other.KnownCVEs) &&
		slices.Equal(a.Dependencies, other.Dependencies)
}

// Clone returns a deep copy of the asset. Slice fields are copied so the
// clone is independent of the original.
func (a *Asset) Clone() *Asset {
	if a == nil {
		return nil
	}
	c := *a
	c.Compliance = slices.Clone(a.Compliance)
	c.KnownCVEs = slices.Clone(a.KnownCVEs)
	c.Dependencies = slices.Clone(a.Dependencies)
	return &c
}
