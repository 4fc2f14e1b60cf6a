// Package validation implements structural and policy validation of
// cryptographic assets. Validation never mutates its input and always
// reports every failing check, not just the first.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/dmitrijs2005/cryptobom/internal/common"
	"github.com/dmitrijs2005/cryptobom/internal/models"
)

var idPattern = regexp.MustCompile(`^[A-Z0-9_-]+$`)

// MinKeyLengthBits is the smallest key length accepted for key-type
// assets and key-purposed assets.
const MinKeyLengthBits = 128

// Error carries the complete list of findings from a failed validation.
// It wraps common.ErrValidation for errors.Is matching.
type Error struct {
	Findings []string
}

func (e *Error) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Findings, "; "))
}

func (e *Error) Unwrap() error { return common.ErrValidation }

// AssetValidator checks single assets and batches. The zero clock
// defaults to time.Now; tests can substitute a fixed clock.
type AssetValidator struct {
	now func() time.Time
}

// NewAssetValidator returns a validator using the wall clock for expiry
// checks.
func NewAssetValidator() *AssetValidator {
	return &AssetValidator{now: time.Now}
}

// NewAssetValidatorAt returns a validator whose expiry checks evaluate
// against the given clock.
func NewAssetValidatorAt(now func() time.Time) *AssetValidator {
	return &AssetValidator{now: now}
}

// Validate runs every check against the asset and returns ok together
// with the list of findings. The list is empty when ok is true.
func (v *AssetValidator) Validate(a *models.Asset) (bool, []string) {
	var findings []string

	if a.ID == "" {
		findings = append(findings, "asset ID must be a non-empty string")
	} else if !idPattern.MatchString(a.ID) {
		findings = append(findings, "asset ID must contain only uppercase letters, numbers, hyphens, underscores")
	}

	if len(a.Name) < 3 {
		findings = append(findings, "asset name must be at least 3 characters long")
	}

	if !a.Type.Valid() {
		findings = append(findings, fmt.Sprintf("asset type must be one of: %s", joinTypes()))
	}

	if a.Algorithm == "" {
		findings = append(findings, "algorithm must be specified")
	}

	if a.Type == models.AssetTypeKey || strings.Contains(string(a.Purpose), "key") {
		if a.KeyLengthBits <= 0 {
			findings = append(findings, "key length must be specified for cryptographic keys")
		} else if a.KeyLengthBits < MinKeyLengthBits {
			findings = append(findings, fmt.Sprintf("key length should be at least %d bits", MinKeyLengthBits))
		}
	}

	if !a.Status.Valid() {
		findings = append(findings, fmt.Sprintf("status must be one of: %s", joinStatuses()))
	}

	if a.IsExpired(v.now()) {
		findings = append(findings, "asset has expired")
	}

	if a.Purpose != "" && !a.Purpose.Valid() {
		findings = append(findings, fmt.Sprintf("purpose must be one of: %s", joinPurposes()))
	}

	return len(findings) == 0, findings
}

// ValidateBatch validates every asset and aggregates failures, each
// prefixed with the owning asset's id. Overall ok requires every asset
// to pass.
func (v *AssetValidator) ValidateBatch(assets []*models.Asset) (bool, []string) {
	var all []string
	for _, a := range assets {
		if ok, findings := v.Validate(a); !ok {
			for _, f := range findings {
				all = append(all, fmt.Sprintf("%s: %s", a.ID, f))
			}
		}
	}
	return len(all) == 0, all
}

func joinTypes() string {
	parts := make([]string, len(models.AssetTypes))
	for i, t := range models.AssetTypes {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}

func joinStatuses() string {
	parts := make([]string, len(models.AssetStatuses))
	for i, s := range models.AssetStatuses {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}

func joinPurposes() string {
	parts := make([]string, len(models.Purposes))
	for i, p := range models.Purposes {
		parts[i] = string(p)
	}
	return strings.Join(parts, ", ")
}
