// Package app wires application services to their infrastructure adapters.
package app

import (
	"context"
	"time"

	"github.com/tastemaker/taste/internal/domain"
	"github.com/tastemaker/taste/internal/infrastructure/ai"
	"github.com/tastemaker/taste/internal/infrastructure/checker"
	"github.com/tastemaker/taste/internal/infrastructure/config"
	"github.com/tastemaker/taste/internal/infrastructure/github"
	"github.com/tastemaker/taste/internal/infrastructure/ledger"
	"github.com/tastemaker/taste/internal/infrastructure/rules"
	"github.com/tastemaker/taste/internal/pkg/logger"
	"github.com/tastemaker/taste/internal/ports"
	"github.com/tastemaker/taste/internal/services"
)

// Container holds the dependency graph.
type Container struct {
	Config         domain.Config
	Logger         ports.Logger
	Repository     *rules.Repository
	Ledger         *ledger.SQLiteStore
	CheckService   *services.CheckService
	CatalogService *services.CatalogService
}

// BuildContainer constructs everything except the generation invoker, which
// needs the model credential and is built per learn invocation (see
// BuildLearnService).
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	cfgLoader := config.NewFileLoader("")
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.NewStd(verbose)
	repo := rules.NewRepository(cfg.RulesRoot, domain.CategoryPrefixes())
	ledgerStore := ledger.NewSQLiteStore("")

	checkService := &services.CheckService{
		Checker: checker.NewEngine(repo),
		Logger:  log,
	}

	catalogService := &services.CatalogService{Repository: repo}

	return &Container{
		Config:         cfg,
		Logger:         log,
		Repository:     repo,
		Ledger:         ledgerStore,
		CheckService:   checkService,
		CatalogService: catalogService,
	}, nil
}

// BuildLearnService assembles the learn pipeline. The model credential is a
// precondition here, so a missing key fails before any network call.
func (c *Container) BuildLearnService() (*services.LearnService, error) {
	timeout := time.Duration(c.Config.Preferences.TimeoutSeconds) * time.Second

	analyzer, err := ai.NewAnalyzer(c.Config.Model, timeout, c.Logger)
	if err != nil {
		return nil, err
	}

	return &services.LearnService{
		Fetcher:    github.NewClient(c.Config.GitHub, timeout),
		Generator:  analyzer,
		Repository: c.Repository,
		Ledger:     c.Ledger,
		Logger:     c.Logger,
	}, nil
}
