package probe

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/cryptobom/internal/common"
	"github.com/dmitrijs2005/cryptobom/internal/inventory"
	"github.com/dmitrijs2005/cryptobom/internal/logging"
	"github.com/dmitrijs2005/cryptobom/internal/models"
	"github.com/dmitrijs2005/cryptobom/internal/policy"
	"github.com/dmitrijs2005/cryptobom/internal/validation"
)

func testIntake(t *testing.T) (*Intake, *inventory.Inventory) {
	t.Helper()
	inv := inventory.New("testproj", "", validation.NewAssetValidator())
	matcher := policy.NewMatcher(policy.DefaultTables())
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewIntake(inv, matcher, logger), inv
}

func TestAdmitAutoDetectsStatus(t *testing.T) {
	in, inv := testIntake(t)
	ctx := context.Background()

	tests := []struct {
		id        string
		algorithm string
		want      models.AssetStatus
	}{
		{"TLS13-1", "TLS 1.3", models.StatusActive},
		{"TLS10-1", "TLS 1.0", models.StatusDeprecated},
		{"RC4-1", "RC4", models.StatusVulnerable},
	}

	for _, tt := range tests {
		err := in.Admit(ctx, Candidate{
			ID:        tt.id,
			Name:      tt.id + " probe finding",
			AssetType: models.AssetTypeCipherSuite,
			Algorithm: tt.algorithm,
		}, "probe")
		require.NoError(t, err)

		got, ok := inv.Get(tt.id)
		require.True(t, ok)
		assert.Equal(t, tt.want, got.Status, tt.algorithm)
	}
}

func TestAdmitKeepsExplicitStatus(t *testing.T) {
	in, inv := testIntake(t)

	err := in.Admit(context.Background(), Candidate{
		ID:        "MD5-1",
		Name:      "planned MD5 replacement",
		AssetType: models.AssetTypeAlgorithm,
		Algorithm: "MD5",
		Status:    models.StatusPlanned,
	}, "probe")
	require.NoError(t, err)

	got, _ := inv.Get("MD5-1")
	assert.Equal(t, models.StatusPlanned, got.Status, "explicit status wins over auto-detection")
}

func TestAdmitCertificateWithExpiry(t *testing.T) {
	in, inv := testIntake(t)

	err := in.Admit(context.Background(), Candidate{
		ID:             "CERT-1",
		Name:           "example.com leaf",
		AssetType:      models.AssetTypeCertificate,
		Algorithm:      "ECDSA P-256",
		KeyLengthBits:  256,
		ExpirationDate: "2030-01-01",
	}, "probe")
	require.NoError(t, err)

	got, _ := inv.Get("CERT-1")
	assert.Equal(t, models.StatusActive, got.Status)
	assert.Equal(t, "2030-01-01", got.ExpirationDate)
}

func TestAdmitRejectsInvalidCandidate(t *testing.T) {
	in, inv := testIntake(t)

	err := in.Admit(context.Background(), Candidate{
		ID:        "cert-1", // lowercase id fails validation
		Name:      "bad candidate",
		AssetType: models.AssetTypeCertificate,
		Algorithm: "ECDSA P-256",
	}, "probe")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrValidation))
	assert.Equal(t, 0, inv.Len())
}

func TestAdmitRejectsDuplicate(t *testing.T) {
	in, _ := testIntake(t)
	ctx := context.Background()

	c := Candidate{
		ID:        "CERT-1",
		Name:      "example.com leaf",
		AssetType: models.AssetTypeCertificate,
		Algorithm: "ECDSA P-256",
	}
	require.NoError(t, in.Admit(ctx, c, "probe"))

	err := in.Admit(ctx, c, "probe")
	assert.True(t, errors.Is(err, common.ErrDuplicateID))
}
