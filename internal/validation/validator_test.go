package validation

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/cryptobom/internal/common"
	"github.com/dmitrijs2005/cryptobom/internal/models"
)

func fixedClock() func() time.Time {
	return func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
}

func validAsset() *models.Asset {
	return &models.Asset{
		ID:        "AES-1",
		Name:      "AES data encryption",
		Type:      models.AssetTypeAlgorithm,
		Algorithm: "AES-256-GCM",
		Status:    models.StatusActive,
		Purpose:   models.PurposeEncryption,
	}
}

func TestValidateOK(t *testing.T) {
	v := NewAssetValidatorAt(fixedClock())

	ok, findings := v.Validate(validAsset())
	require.True(t, ok)
	assert.Empty(t, findings)
}

func TestValidateSingleFieldFailures(t *testing.T) {
	v := NewAssetValidatorAt(fixedClock())

	tests := []struct {
		name   string
		mutate func(*models.Asset)
		want   string
	}{
		{"empty id", func(a *models.Asset) { a.ID = "" }, "asset ID must be a non-empty string"},
		{"lowercase id", func(a *models.Asset) { a.ID = "aes-1" }, "asset ID must contain only uppercase letters, numbers, hyphens, underscores"},
		{"short name", func(a *models.Asset) { a.Name = "ab" }, "asset name must be at least 3 characters long"},
		{"bad type", func(a *models.Asset) { a.Type = "protocol" }, "asset type must be one of: algorithm, key, certificate, library, cipher_suite"},
		{"missing algorithm", func(a *models.Asset) { a.Algorithm = "" }, "algorithm must be specified"},
		{"bad status", func(a *models.Asset) { a.Status = "retired" }, "status must be one of: active, deprecated, vulnerable, expired, planned"},
		{"expired", func(a *models.Asset) { a.ExpirationDate = "2024-01-01" }, "asset has expired"},
		{"bad purpose", func(a *models.Asset) { a.Purpose = "obfuscation" }, "purpose must be one of: encryption, hashing, signing, key_exchange, authentication"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := validAsset()
			tt.mutate(a)

			ok, findings := v.Validate(a)
			require.False(t, ok)
			require.Len(t, findings, 1, "exactly one finding per broken field")
			assert.Equal(t, tt.want, findings[0])
		})
	}
}

func TestValidateKeyLength(t *testing.T) {
	v := NewAssetValidatorAt(fixedClock())

	t.Run("key type requires a length", func(t *testing.T) {
		a := validAsset()
		a.Type = models.AssetTypeKey
		a.KeyLengthBits = 0

		ok, findings := v.Validate(a)
		require.False(t, ok)
		assert.Contains(t, findings, "key length must be specified for cryptographic keys")
	})

	t.Run("short keys are an error", func(t *testing.T) {
		a := validAsset()
		a.Type = models.AssetTypeKey
		a.KeyLengthBits = 64

		ok, findings := v.Validate(a)
		require.False(t, ok)
		assert.Contains(t, findings, "key length should be at least 128 bits")
	})

	t.Run("key purpose triggers the check too", func(t *testing.T) {
		a := validAsset()
		a.Purpose = models.PurposeKeyExchange
		a.KeyLengthBits = 0

		ok, findings := v.Validate(a)
		require.False(t, ok)
		assert.Contains(t, findings, "key length must be specified for cryptographic keys")
	})

	t.Run("128 bits is enough", func(t *testing.T) {
		a := validAsset()
		a.Type = models.AssetTypeKey
		a.KeyLengthBits = 128

		ok, _ := v.Validate(a)
		assert.True(t, ok)
	})
}

func TestValidateReportsAllFailures(t *testing.T) {
	v := NewAssetValidatorAt(fixedClock())

	a := &models.Asset{ID: "bad id", Name: "x", Type: "thing", Status: "gone"}
	ok, findings := v.Validate(a)
	require.False(t, ok)
	assert.Len(t, findings, 5, "id, name, type, algorithm and status all reported")
}

func TestValidateDoesNotMutate(t *testing.T) {
	v := NewAssetValidatorAt(fixedClock())

	a := validAsset()
	before := a.Clone()
	_, _ = v.Validate(a)
	assert.True(t, a.Equal(before))
}

func TestValidateBatch(t *testing.T) {
	v := NewAssetValidatorAt(fixedClock())

	good := validAsset()
	bad := validAsset()
	bad.ID = "RSA-1"
	bad.Algorithm = ""

	ok, findings := v.ValidateBatch([]*models.Asset{good, bad})
	require.False(t, ok)
	require.Len(t, findings, 1)
	assert.Equal(t, "RSA-1: algorithm must be specified", findings[0])

	ok, findings = v.ValidateBatch([]*models.Asset{good})
	assert.True(t, ok)
	assert.Empty(t, findings)
}

func TestErrorWrapsSentinel(t *testing.T) {
	err := &Error{Findings: []string{"asset has expired"}}
	assert.True(t, errors.Is(err, common.ErrValidation))
	assert.Contains(t, err.Error(), "asset has expired")
}
