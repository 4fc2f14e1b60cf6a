package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/cryptobom/internal/config"
	"github.com/dmitrijs2005/cryptobom/internal/models"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.ProjectName = "testproj"
	cfg.SnapshotDir = filepath.Join(t.TempDir(), "snapshots")
	return cfg
}

func TestNewApp(t *testing.T) {
	a, err := NewApp(testConfig(t))
	require.NoError(t, err)

	require.NotNil(t, a.Inventory())
	require.NotNil(t, a.Store())
	require.NotNil(t, a.Scorer())
	require.NotNil(t, a.Intake())
	assert.Equal(t, "testproj", a.Inventory().ProjectName())
}

func TestNewAppUnknownBackend(t *testing.T) {
	cfg := testConfig(t)
	cfg.SnapshotBackend = "ftp"

	_, err := NewApp(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown snapshot backend")
}

func TestNewAppAppliesDefaultUser(t *testing.T) {
	cfg := testConfig(t)
	cfg.DefaultUser = "scanner"

	a, err := NewApp(cfg)
	require.NoError(t, err)

	require.NoError(t, a.Inventory().Add(&models.Asset{
		ID:        "AES-1",
		Name:      "AES data encryption",
		Type:      models.AssetTypeAlgorithm,
		Algorithm: "AES-256-GCM",
		Status:    models.StatusActive,
	}, ""))
	assert.Equal(t, "scanner", a.Inventory().AuditLog()[0].User)
}

func TestRunPrunesToConfiguredKeepCount(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	cfg.SnapshotKeep = 1

	a, err := NewApp(cfg)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := a.Store().Create(ctx, "", "")
		require.NoError(t, err)
	}
	require.Len(t, a.Store().History(), 3)

	a.Run(ctx)
	assert.Len(t, a.Store().History(), 1)
}

func TestEndToEndSnapshotCycle(t *testing.T) {
	ctx := context.Background()
	a, err := NewApp(testConfig(t))
	require.NoError(t, err)

	inv := a.Inventory()
	require.NoError(t, inv.Add(&models.Asset{
		ID:        "AES-1",
		Name:      "AES data encryption",
		Type:      models.AssetTypeAlgorithm,
		Algorithm: "AES-256-GCM",
		Status:    models.StatusActive,
	}, "alice"))

	versionID, err := a.Store().Create(ctx, "baseline", "alice")
	require.NoError(t, err)

	require.NoError(t, inv.Remove("AES-1", "alice"))
	require.NoError(t, a.Store().Restore(ctx, versionID, "alice"))
	assert.Equal(t, 1, inv.Len())

	p := a.Scorer().SecurityPosture(inv)
	assert.Equal(t, 100.0, p.SecurityScore)
}
