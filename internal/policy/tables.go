// Package policy holds the algorithm-strength and compliance tables and
// the matcher that evaluates assets against them. Tables are plain data
// injected at construction so deployments (and tests) can substitute
// their own rulings.
package policy

// AlgorithmScore pairs an algorithm (or cipher-mode, or protocol) name
// fragment with its strength score. Matching is case-insensitive
// substring matching, in slice order, so earlier entries win on overlap.
type AlgorithmScore struct {
	Name  string  `toml:"name"`
	Score float64 `toml:"score"`
}

// Tables is the immutable rule data driving strength scoring, status
// auto-detection and the FIPS/PCI compliance checks.
type Tables struct {
	// Weak is scanned first; any hit here wins over the strong table.
	Weak []AlgorithmScore `toml:"weak"`
	// Strong is scanned when no weak entry matches.
	Strong []AlgorithmScore `toml:"strong"`
	// Broken names the weak entries considered outright broken (assets
	// matching them auto-detect as vulnerable rather than deprecated).
	Broken []string `toml:"broken"`
	// FIPSApproved and PCIApproved drive the claim-independent
	// compliance checks.
	FIPSApproved []string `toml:"fips_approved"`
	PCIApproved  []string `toml:"pci_approved"`
}

// UnknownStrength is returned for algorithms matching neither table:
// medium-unknown, not assumed safe.
const UnknownStrength = 5.0

// DefaultTables returns the built-in rule set.
func DefaultTables() Tables {
	return Tables{
		Weak: []AlgorithmScore{
			{Name: "DES", Score: 0.0},
			{Name: "MD5", Score: 0.0},
			{Name: "SHA-1", Score: 0.0},
			{Name: "RC4", Score: 0.0},
			{Name: "ECB", Score: 0.0},
			{Name: "CBC", Score: 4.0}, // padding-oracle prone
			{Name: "TLS 1.0", Score: 0.0},
			{Name: "TLS 1.1", Score: 0.0},
			{Name: "SSL", Score: 0.0},
		},
		Strong: []AlgorithmScore{
			{Name: "AES", Score: 10.0},
			{Name: "ChaCha20", Score: 9.0},
			{Name: "RSA-2048", Score: 8.0},
			{Name: "RSA-4096", Score: 9.5},
			{Name: "ECDSA", Score: 9.0},
			{Name: "SHA-256", Score: 10.0},
			{Name: "SHA-3", Score: 10.0},
			{Name: "GCM", Score: 10.0},
			{Name: "TLS 1.2", Score: 8.0},
			{Name: "TLS 1.3", Score: 10.0},
		},
		Broken:       []string{"MD5", "RC4", "DES", "SSL", "ECB"},
		FIPSApproved: []string{"AES", "RSA", "ECDSA", "SHA-256", "SHA-384", "SHA-512", "GCM"},
		PCIApproved:  []string{"AES", "3DES", "TLS 1.2", "TLS 1.3"},
	}
}
