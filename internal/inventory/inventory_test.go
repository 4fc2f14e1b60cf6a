package inventory

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/cryptobom/internal/common"
	"github.com/dmitrijs2005/cryptobom/internal/models"
	"github.com/dmitrijs2005/cryptobom/internal/validation"
)

func testInventory(t *testing.T) *Inventory {
	t.Helper()
	return New("testproj", "test inventory", validation.NewAssetValidator())
}

func aesAsset() *models.Asset {
	return &models.Asset{
		ID:                 "AES-1",
		Name:               "AES data encryption",
		Type:               models.AssetTypeAlgorithm,
		Algorithm:          "AES-256-GCM",
		Status:             models.StatusActive,
		VulnerabilityScore: 0,
	}
}

func md5Asset() *models.Asset {
	return &models.Asset{
		ID:                 "MD5-1",
		Name:               "legacy MD5 checksums",
		Type:               models.AssetTypeAlgorithm,
		Algorithm:          "MD5",
		Status:             models.StatusVulnerable,
		VulnerabilityScore: 9.8,
	}
}

func TestAdd(t *testing.T) {
	inv := testInventory(t)

	require.NoError(t, inv.Add(aesAsset(), "alice"))
	require.Equal(t, 1, inv.Len())

	got, ok := inv.Get("AES-1")
	require.True(t, ok)
	assert.Equal(t, "AES data encryption", got.Name)

	log := inv.AuditLog()
	require.Len(t, log, 1)
	assert.Equal(t, models.AuditAdded, log[0].Action)
	assert.Equal(t, "AES-1", log[0].AssetID)
	assert.Equal(t, "alice", log[0].User)
	assert.NotEmpty(t, log[0].ID)
	require.NotNil(t, log[0].NewValue)
	assert.Nil(t, log[0].OldValue)
}

func TestAddDuplicateID(t *testing.T) {
	inv := testInventory(t)
	require.NoError(t, inv.Add(aesAsset(), ""))

	err := inv.Add(aesAsset(), "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrDuplicateID))
	assert.Len(t, inv.AuditLog(), 1, "failed add is not audited")
}

func TestAddInvalidAsset(t *testing.T) {
	inv := testInventory(t)

	bad := aesAsset()
	bad.ID = "aes-1"
	bad.Algorithm = ""

	err := inv.Add(bad, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrValidation))

	var verr *validation.Error
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Findings, 2, "all failing checks surface")
	assert.Equal(t, 0, inv.Len())
}

func TestAddDefaultsUser(t *testing.T) {
	inv := testInventory(t)
	require.NoError(t, inv.Add(aesAsset(), ""))
	assert.Equal(t, common.DefaultUser, inv.AuditLog()[0].User)
}

func TestSetDefaultUser(t *testing.T) {
	inv := testInventory(t)
	inv.SetDefaultUser("scanner")

	require.NoError(t, inv.Add(aesAsset(), ""))
	require.NoError(t, inv.Remove("AES-1", "alice"))

	log := inv.AuditLog()
	assert.Equal(t, "scanner", log[0].User)
	assert.Equal(t, "alice", log[1].User, "explicit user wins over the default")

	inv.SetDefaultUser("")
	require.NoError(t, inv.Add(aesAsset(), ""))
	assert.Equal(t, common.DefaultUser, inv.AuditLog()[2].User)
}

func TestAddStoresCopy(t *testing.T) {
	inv := testInventory(t)

	a := aesAsset()
	require.NoError(t, inv.Add(a, ""))
	a.Name = "mutated by caller"

	got, _ := inv.Get("AES-1")
	assert.Equal(t, "AES data encryption", got.Name)
}

func TestRemove(t *testing.T) {
	inv := testInventory(t)
	require.NoError(t, inv.Add(aesAsset(), ""))

	require.NoError(t, inv.Remove("AES-1", "bob"))
	assert.Equal(t, 0, inv.Len())

	log := inv.AuditLog()
	require.Len(t, log, 2)
	assert.Equal(t, models.AuditRemoved, log[1].Action)
	require.NotNil(t, log[1].OldValue)
	assert.Equal(t, "AES-1", log[1].OldValue.ID)

	// id is free again
	require.NoError(t, inv.Add(aesAsset(), ""))
}

func TestRemoveNotFound(t *testing.T) {
	inv := testInventory(t)
	err := inv.Remove("GHOST", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestAddThenRemoveGrowsAuditMonotonically(t *testing.T) {
	inv := testInventory(t)
	before := inv.Len()

	require.NoError(t, inv.Add(aesAsset(), ""))
	require.NoError(t, inv.Remove("AES-1", ""))

	assert.Equal(t, before, inv.Len())
	assert.Len(t, inv.AuditLog(), 2, "audit entries are never deleted")
}

func TestUpdatePartial(t *testing.T) {
	inv := testInventory(t)
	require.NoError(t, inv.Add(aesAsset(), ""))

	score := 5.5
	status := models.StatusDeprecated
	err := inv.Update("AES-1", "carol", AssetPatch{
		VulnerabilityScore: &score,
		Status:             &status,
	})
	require.NoError(t, err)

	got, _ := inv.Get("AES-1")
	assert.Equal(t, 5.5, got.VulnerabilityScore)
	assert.Equal(t, models.StatusDeprecated, got.Status)
	assert.Equal(t, "AES data encryption", got.Name, "unpatched fields keep prior value")

	log := inv.AuditLog()
	require.Len(t, log, 2)
	entry := log[1]
	assert.Equal(t, models.AuditUpdated, entry.Action)
	require.NotNil(t, entry.OldValue)
	require.NotNil(t, entry.NewValue)
	assert.Equal(t, models.StatusActive, entry.OldValue.Status)
	assert.Equal(t, models.StatusDeprecated, entry.NewValue.Status)
}

func TestUpdateNotFound(t *testing.T) {
	inv := testInventory(t)
	err := inv.Update("GHOST", "", AssetPatch{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestUpdateClampsScore(t *testing.T) {
	inv := testInventory(t)
	require.NoError(t, inv.Add(aesAsset(), ""))

	score := 42.0
	require.NoError(t, inv.Update("AES-1", "", AssetPatch{VulnerabilityScore: &score}))

	got, _ := inv.Get("AES-1")
	assert.Equal(t, 10.0, got.VulnerabilityScore)
}

func TestUpdateStampsLastModified(t *testing.T) {
	inv := testInventory(t)
	require.NoError(t, inv.Add(aesAsset(), ""))

	later := time.Now().Add(time.Hour)
	inv.now = func() time.Time { return later }

	require.NoError(t, inv.Update("AES-1", "", AssetPatch{}))
	assert.Equal(t, later, inv.LastModifiedAt())
}

func TestQueries(t *testing.T) {
	inv := testInventory(t)
	require.NoError(t, inv.Add(aesAsset(), ""))
	require.NoError(t, inv.Add(md5Asset(), ""))
	require.NoError(t, inv.Add(&models.Asset{
		ID:        "RSA-KEY-1",
		Name:      "signing key",
		Type:      models.AssetTypeKey,
		Algorithm: "RSA-2048",
		// >128 bits but with a known CVE
		KeyLengthBits: 2048,
		Status:        models.StatusActive,
		KnownCVEs:     []string{"CVE-2024-0001"},
	}, ""))

	assert.Len(t, inv.ByType(models.AssetTypeAlgorithm), 2)
	assert.Len(t, inv.ByType(models.AssetTypeKey), 1)

	critical := inv.Critical()
	require.Len(t, critical, 1)
	assert.Equal(t, "MD5-1", critical[0].ID)

	vulnerable := inv.Vulnerable()
	require.Len(t, vulnerable, 2)
	assert.Equal(t, "MD5-1", vulnerable[0].ID)
	assert.Equal(t, "RSA-KEY-1", vulnerable[1].ID)

	assert.Empty(t, inv.Expired())
	assert.Len(t, inv.ByRisk(models.RiskLow), 2)
}

func TestAssetsInsertionOrder(t *testing.T) {
	inv := testInventory(t)
	require.NoError(t, inv.Add(md5Asset(), ""))
	require.NoError(t, inv.Add(aesAsset(), ""))

	assets := inv.Assets()
	require.Len(t, assets, 2)
	assert.Equal(t, "MD5-1", assets[0].ID)
	assert.Equal(t, "AES-1", assets[1].ID)
}

func TestSummary(t *testing.T) {
	inv := testInventory(t)
	require.NoError(t, inv.Add(aesAsset(), ""))
	require.NoError(t, inv.Add(md5Asset(), ""))

	s := inv.Summary()
	assert.Equal(t, "testproj", s.ProjectName)
	assert.Equal(t, 2, s.TotalAssets)
	assert.Equal(t, 2, s.AssetTypes[models.AssetTypeAlgorithm])
	assert.Equal(t, 1, s.CriticalRisk)
	assert.Equal(t, 1, s.VulnerableAssets)
	assert.Equal(t, 0, s.ExpiredAssets)
	assert.Equal(t, "1.0.0", s.Version)
}

func TestComplianceStatusFor(t *testing.T) {
	inv := testInventory(t)

	a := aesAsset()
	a.Compliance = []string{"FIPS 140-2"}
	require.NoError(t, inv.Add(a, ""))
	require.NoError(t, inv.Add(md5Asset(), ""))

	status := inv.ComplianceStatusFor("FIPS 140-2")
	assert.Equal(t, 2, status.TotalAssets)
	assert.Equal(t, 1, status.Compliant)
	assert.Equal(t, 1, status.NonCompliant)
	assert.Equal(t, 50.0, status.Percentage)
	assert.Equal(t, []string{"MD5-1"}, status.NonCompliantIDs)
}

func TestRecentAudit(t *testing.T) {
	inv := testInventory(t)
	require.NoError(t, inv.Add(aesAsset(), ""))
	require.NoError(t, inv.Add(md5Asset(), ""))
	require.NoError(t, inv.Remove("MD5-1", ""))

	recent := inv.RecentAudit(2)
	require.Len(t, recent, 2)
	assert.Equal(t, models.AuditAdded, recent[0].Action)
	assert.Equal(t, models.AuditRemoved, recent[1].Action)

	assert.Len(t, inv.RecentAudit(10), 3)
	assert.Empty(t, inv.RecentAudit(0))
}

func TestAuditEntriesImmutableOnceAppended(t *testing.T) {
	inv := testInventory(t)
	require.NoError(t, inv.Add(aesAsset(), ""))
	require.NoError(t, inv.Remove("AES-1", ""))

	leaked := inv.AuditLog()
	leaked[0].NewValue.Name = "tampered"
	leaked[1].OldValue.Name = "tampered"

	log := inv.AuditLog()
	assert.Equal(t, "AES data encryption", log[0].NewValue.Name)
	assert.Equal(t, "AES data encryption", log[1].OldValue.Name)

	recent := inv.RecentAudit(1)
	recent[0].OldValue.Name = "tampered again"
	assert.Equal(t, "AES data encryption", inv.RecentAudit(1)[0].OldValue.Name)
}

func TestRestoreFrom(t *testing.T) {
	inv := testInventory(t)
	require.NoError(t, inv.Add(aesAsset(), ""))
	require.NoError(t, inv.Add(md5Asset(), ""))
	auditBefore := len(inv.AuditLog())

	inv.RestoreFrom([]*models.Asset{aesAsset()}, "20250601_120000", "dave")

	assert.Equal(t, 1, inv.Len())
	_, ok := inv.Get("MD5-1")
	assert.False(t, ok)

	log := inv.AuditLog()
	require.Len(t, log, auditBefore+1)
	last := log[len(log)-1]
	assert.Equal(t, models.AuditRestored, last.Action)
	assert.Equal(t, "20250601_120000", last.AssetID)
	assert.Equal(t, "dave", last.User)
}

func TestAdopt(t *testing.T) {
	inv := testInventory(t)
	require.NoError(t, inv.Add(aesAsset(), ""))

	replacement := aesAsset()
	replacement.Name = "AES replacement"
	inv.Adopt([]*models.Asset{replacement, md5Asset()})

	assert.Equal(t, 2, inv.Len())
	got, _ := inv.Get("AES-1")
	assert.Equal(t, "AES replacement", got.Name)
	assert.Len(t, inv.AuditLog(), 1, "adopt does not audit")

	assets := inv.Assets()
	assert.Equal(t, "AES-1", assets[0].ID)
	assert.Equal(t, "MD5-1", assets[1].ID)
}
