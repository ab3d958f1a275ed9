package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/facadeworks/facade-workbench/internal/logging"
)

const (
	DefaultFigureSpec  = "@every 10s"
	DefaultCatalogSpec = "@every 30m"

	jobTimeout = 30 * time.Second
)

// Monitor runs the periodic background jobs of the workbench.
type Monitor struct {
	cron *cron.Cron
	wb   *Workbench
}

func NewMonitor(wb *Workbench) *Monitor {
	return &Monitor{
		cron: cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		wb:   wb,
	}
}

// Start registers the figure and catalog refresh jobs and starts the
// scheduler. An empty spec disables that job.
func (m *Monitor) Start(figureSpec, catalogSpec string) error {
	if figureSpec != "" {
		if _, err := m.cron.AddFunc(figureSpec, m.refreshFigures); err != nil {
			return fmt.Errorf("figure refresh schedule %q: %w", figureSpec, err)
		}
	}
	if catalogSpec != "" {
		if _, err := m.cron.AddFunc(catalogSpec, m.refreshCatalog); err != nil {
			return fmt.Errorf("catalog refresh schedule %q: %w", catalogSpec, err)
		}
	}
	m.cron.Start()
	logging.FromContext(context.Background()).Info("monitor started",
		"figure_spec", figureSpec, "catalog_spec", catalogSpec)
	return nil
}

// Stop halts the scheduler and waits for running jobs to finish.
func (m *Monitor) Stop() {
	<-m.cron.Stop().Done()
}

func (m *Monitor) refreshFigures() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()
	m.wb.RefreshFigures(ctx)
}

func (m *Monitor) refreshCatalog() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()
	if err := m.wb.RefreshCatalog(ctx); err != nil {
		logging.NewLogger(ctx).LogError("refresh_catalog", err)
	}
}
