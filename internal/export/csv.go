package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/cryptobom/internal/inventory"
)

// csvHeader is the fixed column set of the CSV export.
var csvHeader = []string{
	"ID", "Name", "Type", "Algorithm", "KeyLength", "Purpose",
	"Status", "RiskLevel", "VulnerabilityScore", "CVEs", "Compliance",
}

// WriteCSV writes one row per asset. Multi-valued columns (CVEs,
// Compliance) are joined with semicolons.
func WriteCSV(w io.Writer, inv *inventory.Inventory) error {
	now := time.Now()
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("export csv header: %w", err)
	}
	for _, a := range inv.Assets() {
		row := []string{
			a.ID,
			a.Name,
			string(a.Type),
			a.Algorithm,
			strconv.Itoa(a.KeyLengthBits),
			string(a.Purpose),
			string(a.Status),
			string(a.Risk(now)),
			strconv.FormatFloat(a.VulnerabilityScore, 'g', -1, 64),
			strings.Join(a.KnownCVEs, ";"),
			strings.Join(a.Compliance, ";"),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("export csv row %s: %w", a.ID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export csv: %w", err)
	}
	return nil
}
