// Package app wires the engine together: configuration, logging,
// policy tables, the live inventory and the snapshot store.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/cryptobom/internal/config"
	"github.com/dmitrijs2005/cryptobom/internal/inventory"
	"github.com/dmitrijs2005/cryptobom/internal/logging"
	"github.com/dmitrijs2005/cryptobom/internal/policy"
	"github.com/dmitrijs2005/cryptobom/internal/posture"
	"github.com/dmitrijs2005/cryptobom/internal/probe"
	"github.com/dmitrijs2005/cryptobom/internal/validation"
	"github.com/dmitrijs2005/cryptobom/internal/versions"
)

type App struct {
	config    *config.Config
	logger    logging.Logger
	inventory *inventory.Inventory
	store     *versions.Store
	scorer    *posture.Scorer
	intake    *probe.Intake
}

func NewApp(cfg *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	tables := policy.DefaultTables()
	if cfg.PolicyFile != "" {
		loaded, err := policy.LoadTables(cfg.PolicyFile)
		if err != nil {
			return nil, fmt.Errorf("policy init error: %w", err)
		}
		tables = loaded
	}
	matcher := policy.NewMatcher(tables)
	validator := validation.NewAssetValidator()

	inv := inventory.New(cfg.ProjectName, cfg.Description, validator)
	inv.SetDefaultUser(cfg.DefaultUser)

	repo, err := newRepository(cfg)
	if err != nil {
		return nil, fmt.Errorf("snapshot repository init error: %w", err)
	}
	store := versions.NewStore(inv, repo, logger)

	return &App{
		config:    cfg,
		logger:    logger,
		inventory: inv,
		store:     store,
		scorer:    posture.NewScorer(matcher, validator),
		intake:    probe.NewIntake(inv, matcher, logger),
	}, nil
}

func newRepository(cfg *config.Config) (versions.Repository, error) {
	switch cfg.SnapshotBackend {
	case "s3":
		return versions.NewS3Repository(context.Background(), versions.S3Config{
			RootUser:     cfg.S3RootUser,
			RootPassword: cfg.S3RootPassword,
			Bucket:       cfg.S3Bucket,
			Region:       cfg.S3Region,
			BaseEndpoint: cfg.S3BaseEndpoint,
		})
	case "file":
		return versions.NewFileRepository(cfg.SnapshotDir)
	default:
		return nil, fmt.Errorf("unknown snapshot backend %q", cfg.SnapshotBackend)
	}
}

// Inventory returns the live inventory.
func (app *App) Inventory() *inventory.Inventory { return app.inventory }

// Store returns the snapshot store over the live inventory.
func (app *App) Store() *versions.Store { return app.store }

// Scorer returns the posture scorer.
func (app *App) Scorer() *posture.Scorer { return app.scorer }

// Intake returns the probe intake for the live inventory.
func (app *App) Intake() *probe.Intake { return app.intake }

// Run logs the current posture and BOM validation verdict, then prunes
// snapshots beyond the configured keep count.
func (app *App) Run(ctx context.Context) {
	app.logger.Info(ctx, "starting engine", "project", app.config.ProjectName)

	p := app.scorer.SecurityPosture(app.inventory)
	app.logger.Info(ctx, "security posture",
		"score", p.SecurityScore, "label", string(p.Label),
		"assets", p.TotalAssets, "critical", p.Critical)

	report := app.scorer.ValidateBOM(app.inventory)
	if !report.Valid {
		for _, e := range report.Errors {
			app.logger.Error(ctx, "bom validation error", "error", e)
		}
	}
	for _, w := range report.Warnings {
		app.logger.Warn(ctx, "bom validation warning", "warning", w)
	}

	if _, err := app.store.Prune(ctx, app.config.SnapshotKeep); err != nil {
		app.logger.Error(ctx, "snapshot prune failed", "error", err)
	}
}
