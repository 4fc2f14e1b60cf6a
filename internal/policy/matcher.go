package policy

import (
	"slices"
	"strings"

	"github.com/dmitrijs2005/cryptobom/internal/models"
)

// Matcher evaluates algorithm names and assets against a rule table set.
// It is stateless apart from the injected tables and safe for concurrent
// reads.
type Matcher struct {
	tables Tables
}

// NewMatcher returns a Matcher over the given tables. Pass
// DefaultTables() for the built-in rules.
func NewMatcher(tables Tables) *Matcher {
	return &Matcher{tables: tables}
}

// matchWeak returns the first weak-table entry whose name is a
// case-insensitive substring of algorithm.
func (m *Matcher) matchWeak(algorithm string) (AlgorithmScore, bool) {
	lower := strings.ToLower(algorithm)
	for _, entry := range m.tables.Weak {
		if strings.Contains(lower, strings.ToLower(entry.Name)) {
			return entry, true
		}
	}
	return AlgorithmScore{}, false
}

// AlgorithmStrength scores an algorithm name on a 0–10 scale. The weak
// table is scanned first and wins on overlap (a name containing both
// "CBC" and "AES" is reported at the CBC score). Names matching neither
// table score UnknownStrength.
func (m *Matcher) AlgorithmStrength(algorithm string) float64 {
	if entry, ok := m.matchWeak(algorithm); ok {
		return entry.Score
	}
	lower := strings.ToLower(algorithm)
	for _, entry := range m.tables.Strong {
		if strings.Contains(lower, strings.ToLower(entry.Name)) {
			return entry.Score
		}
	}
	return UnknownStrength
}

// CheckFIPS reports whether the asset's algorithm contains a
// FIPS-approved primitive. The check ignores the asset's self-declared
// compliance list; it exists to catch false claims.
func (m *Matcher) CheckFIPS(a *models.Asset) bool {
	return containsApproved(a.Algorithm, m.tables.FIPSApproved)
}

// CheckPCI reports whether the asset's algorithm contains a PCI-approved
// primitive, independently of the asset's declared compliance.
func (m *Matcher) CheckPCI(a *models.Asset) bool {
	return containsApproved(a.Algorithm, m.tables.PCIApproved)
}

func containsApproved(algorithm string, approved []string) bool {
	lower := strings.ToLower(algorithm)
	for _, name := range approved {
		if strings.Contains(lower, strings.ToLower(name)) {
			return true
		}
	}
	return false
}

// AutoDetectStatus derives a lifecycle status from the algorithm name
// alone: vulnerable for broken weak algorithms (MD5, RC4, ...),
// deprecated for the remaining weak ones (SHA-1, TLS 1.0/1.1, CBC),
// active otherwise. Used for probe-supplied assets that arrive without a
// declared status.
func (m *Matcher) AutoDetectStatus(algorithm string) models.AssetStatus {
	entry, ok := m.matchWeak(algorithm)
	if !ok {
		return models.StatusActive
	}
	if entry.Score < 4.0 && slices.Contains(m.tables.Broken, entry.Name) {
		return models.StatusVulnerable
	}
	return models.StatusDeprecated
}
