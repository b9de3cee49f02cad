package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/dustin-aeria/muster-sub008/internal/metrics"
	"github.com/dustin-aeria/muster-sub008/internal/server"
	"github.com/dustin-aeria/muster-sub008/internal/store"
	"github.com/dustin-aeria/muster-sub008/pkg/assessment"
	"github.com/dustin-aeria/muster-sub008/pkg/memo"
	"github.com/dustin-aeria/muster-sub008/pkg/sora"
	"github.com/dustin-aeria/muster-sub008/pkg/tables"
	"github.com/dustin-aeria/muster-sub008/pkg/validation"
)

// loadAndValidate loads a project directory or file and runs schema
// validation.
func loadAndValidate(path string) (*assessment.Project, *validation.Report, error) {
	var (
		p   *assessment.Project
		err error
	)
	if fi, statErr := os.Stat(path); statErr == nil && fi.IsDir() {
		p, err = assessment.LoadProject(path)
	} else {
		p, err = assessment.Load(path)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("loading project: %w", err)
	}
	return p, validation.ValidateSchema(p), nil
}

func (a *app) runValidate(w io.Writer, path string) error {
	p, _, err := loadAndValidate(path)
	if err != nil {
		return err
	}
	report := validation.ValidateProject(p)
	printValidationReport(w, report)
	if !report.Valid {
		return errInvalid
	}
	return nil
}

func (a *app) runAssess(w io.Writer, path string, asJSON bool) error {
	p, schemaReport, err := loadAndValidate(path)
	if err != nil {
		return err
	}
	if !schemaReport.Valid {
		printValidationReport(w, schemaReport)
		return errInvalid
	}

	sum, err := sora.Aggregate(p.Sites)
	if err != nil {
		return err
	}
	a.log.Debug("project assessed", "project_id", p.ID, "sail", sum.SAIL.String(), "sites", len(sum.Sites))

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(sum)
	}
	printSummary(w, p, sum)
	return nil
}

// evaluateSite loads the project and evaluates the named site.
func evaluateSite(path, siteID string) (sora.SiteResult, error) {
	p, schemaReport, err := loadAndValidate(path)
	if err != nil {
		return sora.SiteResult{}, err
	}
	if !schemaReport.Valid {
		return sora.SiteResult{}, fmt.Errorf("project has schema errors; run validate")
	}
	site := p.SiteByID(siteID)
	if site == nil {
		return sora.SiteResult{}, fmt.Errorf("site %q not found in project %s", siteID, p.ID)
	}
	return sora.Evaluate(*site), nil
}

func (a *app) runOSO(w io.Writer, path, siteID string) error {
	res, err := evaluateSite(path, siteID)
	if err != nil {
		return err
	}
	if res.OSO == nil {
		return siteNotResolved(res)
	}
	printOSOReport(w, res.SiteID, res.OSO)
	return nil
}

func (a *app) runContainment(w io.Writer, path, siteID string) error {
	res, err := evaluateSite(path, siteID)
	if err != nil {
		return err
	}
	if res.Containment == nil {
		return siteNotResolved(res)
	}
	printContainmentReport(w, res.SiteID, res.Containment)
	return nil
}

func siteNotResolved(res sora.SiteResult) error {
	if err := res.Err(); err != nil {
		return fmt.Errorf("site %s is %s: %w", res.SiteID, res.Status, err)
	}
	return fmt.Errorf("site %s is %s; missing %v", res.SiteID, res.Status, res.Missing)
}

func runTables(w io.Writer, asJSON bool) error {
	catalog := tables.BuildCatalog()
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(catalog)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(catalog); err != nil {
		return err
	}
	return enc.Close()
}

// runServe starts the API and blocks until SIGINT/SIGTERM. A non-empty seed
// path is loaded into the store before listening.
func (a *app) runServe(ctx context.Context, seed string) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(store.Config{
		Path:     a.cfg.Store.Path,
		InMemory: a.cfg.Store.InMemory,
		Logger:   a.log,
	})
	if err != nil {
		return err
	}
	defer st.Close()

	if seed != "" {
		p, schemaReport, err := loadAndValidate(seed)
		if err != nil {
			return err
		}
		if !schemaReport.Valid {
			return fmt.Errorf("seed project has schema errors: %s", schemaReport.Summary)
		}
		if err := st.PutProject(ctx, p); err != nil {
			return err
		}
		a.log.Info("store seeded", "project_id", p.ID, "sites", len(p.Sites))
	}

	col, err := metrics.New(prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}
	cache := memo.New(memo.WithMaxEntries(a.cfg.Cache.MaxEntries), memo.WithObserver(col))
	srv := server.New(st, cache, col, a.log)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Start(a.cfg.Addr())
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		a.log.Info("server shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
