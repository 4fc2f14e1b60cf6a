// Package posture aggregates inventory state into an overall security
// posture: a 0–100 score with a qualitative label, per-asset
// recommendations and a whole-BOM validation verdict.
package posture

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/cryptobom/internal/inventory"
	"github.com/dmitrijs2005/cryptobom/internal/models"
	"github.com/dmitrijs2005/cryptobom/internal/policy"
	"github.com/dmitrijs2005/cryptobom/internal/validation"
)

// Label is the qualitative posture bucket derived from the score.
type Label string

const (
	LabelExcellent Label = "EXCELLENT"
	LabelGood      Label = "GOOD"
	LabelFair      Label = "FAIR"
	LabelPoor      Label = "POOR"
)

// labelFor maps a score to its bucket; thresholds are inclusive lower
// bounds evaluated highest-first.
func labelFor(score float64) Label {
	switch {
	case score >= 90:
		return LabelExcellent
	case score >= 70:
		return LabelGood
	case score >= 50:
		return LabelFair
	default:
		return LabelPoor
	}
}

// Posture is the aggregate health of one inventory.
type Posture struct {
	TotalAssets   int     `json:"totalAssets"`
	Critical      int     `json:"critical"`
	Vulnerable    int     `json:"vulnerable"`
	Expired       int     `json:"expired"`
	SecurityScore float64 `json:"securityScore"`
	Label         Label   `json:"posture"`
}

// Report is the verdict of whole-BOM validation. Valid flips only on
// hard errors; warnings are advisory.
type Report struct {
	Valid    bool     `json:"isValid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// Scorer computes posture, recommendations and BOM validation over an
// inventory, using the injected policy matcher and asset validator.
type Scorer struct {
	matcher   *policy.Matcher
	validator *validation.AssetValidator
	now       func() time.Time
}

// NewScorer returns a Scorer over the given matcher and validator.
func NewScorer(matcher *policy.Matcher, validator *validation.AssetValidator) *Scorer {
	return &Scorer{matcher: matcher, validator: validator, now: time.Now}
}

// SecurityPosture computes the aggregate score. The risk penalty is
// (critical*40 + vulnerable*20 + expired*40) / total, zero for an empty
// inventory, and the score is 100 minus the penalty, floored at 0.
func (s *Scorer) SecurityPosture(inv *inventory.Inventory) Posture {
	summary := inv.Summary()

	var penalty float64
	if summary.TotalAssets > 0 {
		penalty = float64(summary.CriticalRisk*40+summary.VulnerableAssets*20+summary.ExpiredAssets*40) /
			float64(summary.TotalAssets)
	}
	score := 100 - penalty
	if score < 0 {
		score = 0
	}

	return Posture{
		TotalAssets:   summary.TotalAssets,
		Critical:      summary.CriticalRisk,
		Vulnerable:    summary.VulnerableAssets,
		Expired:       summary.ExpiredAssets,
		SecurityScore: score,
		Label:         labelFor(score),
	}
}

// Recommendations emits one advisory per triggered rule per asset, in
// rule declaration order within an asset and inventory iteration order
// across assets.
func (s *Scorer) Recommendations(inv *inventory.Inventory) []string {
	var recs []string
	for _, a := range inv.Assets() {
		if s.matcher.AlgorithmStrength(a.Algorithm) < 4.0 {
			recs = append(recs, fmt.Sprintf("replace %s with a stronger algorithm like AES-256-GCM", a.Algorithm))
		}
		if a.Type == models.AssetTypeKey && a.RotationSchedule == "" {
			recs = append(recs, fmt.Sprintf("define key rotation schedule for %s", a.ID))
		}
		if a.IsCompliant("FIPS 140-2") && !s.matcher.CheckFIPS(a) {
			recs = append(recs, fmt.Sprintf("asset %s claims FIPS 140-2 but uses non-approved algorithm", a.ID))
		}
		if len(a.Dependencies) > 0 {
			recs = append(recs, fmt.Sprintf("review dependencies of %s for vulnerabilities", a.ID))
		}
	}
	return recs
}

// ValidateBOM validates the whole inventory. Hard errors: empty
// inventory, any per-asset validation failure, any CRITICAL or expired
// asset. Weak algorithms, missing rotation schedules and vulnerability
// notices are warnings only.
func (s *Scorer) ValidateBOM(inv *inventory.Inventory) Report {
	if inv.Len() == 0 {
		return Report{Valid: false, Errors: []string{"BOM contains no cryptographic assets"}}
	}

	now := s.now()
	var errs, warnings []string

	assets := inv.Assets()
	for _, a := range assets {
		if ok, findings := s.validator.Validate(a); !ok {
			for _, f := range findings {
				errs = append(errs, fmt.Sprintf("%s: %s", a.ID, f))
			}
		}
	}

	for _, a := range assets {
		if a.Risk(now) == models.RiskCritical {
			errs = append(errs, fmt.Sprintf("CRITICAL: asset %s has critical vulnerabilities", a.ID))
		}
	}
	for _, a := range assets {
		if a.IsExpired(now) {
			errs = append(errs, fmt.Sprintf("CRITICAL: asset %s has expired", a.ID))
		}
	}

	for _, a := range assets {
		if a.VulnerabilityScore > 0 || len(a.KnownCVEs) > 0 {
			detail := fmt.Sprintf("CVSS %g", a.VulnerabilityScore)
			if len(a.KnownCVEs) > 0 {
				detail = strings.Join(a.KnownCVEs, "; ")
			}
			warnings = append(warnings, fmt.Sprintf("asset %s has known vulnerabilities: %s", a.ID, detail))
		}
	}
	for _, a := range assets {
		if s.matcher.AlgorithmStrength(a.Algorithm) < 4.0 {
			warnings = append(warnings, fmt.Sprintf("asset %s uses deprecated algorithm: %s", a.ID, a.Algorithm))
		}
	}
	for _, a := range assets {
		if a.Type == models.AssetTypeKey && a.RotationSchedule == "" {
			warnings = append(warnings, fmt.Sprintf("asset %s: no key rotation schedule defined", a.ID))
		}
	}

	return Report{Valid: len(errs) == 0, Errors: errs, Warnings: warnings}
}
