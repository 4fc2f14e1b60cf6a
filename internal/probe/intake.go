// Package probe defines the contract with the external TLS probe: the
// candidate payload it supplies per detected TLS/certificate fact and
// the intake path that admits candidates into an inventory.
package probe

import (
	"context"

	"github.com/dmitrijs2005/cryptobom/internal/inventory"
	"github.com/dmitrijs2005/cryptobom/internal/logging"
	"github.com/dmitrijs2005/cryptobom/internal/models"
	"github.com/dmitrijs2005/cryptobom/internal/policy"
)

// Candidate is one asset payload supplied by the probe. Status is
// optional: when empty, intake auto-detects it from the algorithm name.
type Candidate struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	AssetType      models.AssetType   `json:"assetType"`
	Algorithm      string             `json:"algorithm"`
	KeyLengthBits  int                `json:"keyLengthBits"`
	ExpirationDate string             `json:"expirationDate"`
	Status         models.AssetStatus `json:"status,omitempty"`
}

// Intake admits probe candidates into one inventory, running status
// auto-detection before the add unless the caller set an explicit
// status.
type Intake struct {
	inv     *inventory.Inventory
	matcher *policy.Matcher
	logger  logging.Logger
}

// NewIntake returns an Intake feeding the given inventory.
func NewIntake(inv *inventory.Inventory, matcher *policy.Matcher, logger logging.Logger) *Intake {
	return &Intake{inv: inv, matcher: matcher, logger: logger}
}

// Admit converts the candidate into an asset and adds it. Validation
// and duplicate-id errors come back from the inventory unchanged.
func (in *Intake) Admit(ctx context.Context, c Candidate, user string) error {
	status := c.Status
	if status == "" {
		status = in.matcher.AutoDetectStatus(c.Algorithm)
		in.logger.Debug(ctx, "status auto-detected",
			"asset", c.ID, "algorithm", c.Algorithm, "detected", string(status),
			"keyLengthBits", c.KeyLengthBits, "expires", c.ExpirationDate)
	}

	asset := &models.Asset{
		ID:             c.ID,
		Name:           c.Name,
		Type:           c.AssetType,
		Algorithm:      c.Algorithm,
		KeyLengthBits:  c.KeyLengthBits,
		ExpirationDate: c.ExpirationDate,
		Status:         status,
	}
	if err := in.inv.Add(asset, user); err != nil {
		return err
	}

	in.logger.Info(ctx, "probe candidate admitted",
		"asset", c.ID, "algorithm", c.Algorithm, "status", string(status))
	return nil
}
