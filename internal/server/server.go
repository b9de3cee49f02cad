// Package server exposes the SORA engine and the project store over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dustin-aeria/muster-sub008/internal/logging"
	"github.com/dustin-aeria/muster-sub008/internal/metrics"
	"github.com/dustin-aeria/muster-sub008/internal/store"
	"github.com/dustin-aeria/muster-sub008/pkg/assessment"
	"github.com/dustin-aeria/muster-sub008/pkg/memo"
	"github.com/dustin-aeria/muster-sub008/pkg/sora"
	"github.com/dustin-aeria/muster-sub008/pkg/tables"
	"github.com/dustin-aeria/muster-sub008/pkg/validation"
)

// Server is the assessment API.
type Server struct {
	store   store.Store
	cache   *memo.Cache
	metrics *metrics.Collector
	log     *logging.Logger
	router  *gin.Engine
	http    *http.Server
}

// New wires the routes. metrics may be nil.
func New(st store.Store, cache *memo.Cache, col *metrics.Collector, log *logging.Logger) *Server {
	if log == nil {
		log = logging.Nop()
	}
	s := &Server{store: st, cache: cache, metrics: col, log: log}

	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger(), col.Middleware(), errorHandler())

	api := r.Group("/api")
	api.GET("/tables", s.handleTables)
	api.POST("/evaluate", s.handleEvaluate)

	projects := api.Group("/projects")
	projects.GET("", s.handleListProjects)
	projects.GET("/:id", s.handleGetProject)
	projects.PUT("/:id", s.handlePutProject)
	projects.DELETE("/:id", s.handleDeleteProject)
	projects.GET("/:id/summary", s.handleSummary)
	projects.GET("/:id/validation", s.handleValidation)
	projects.PUT("/:id/sites/:site", s.handlePutSite)
	projects.GET("/:id/sites/:site/suggestions", s.handleSuggestions)
	projects.POST("/:id/sites/:site/suggestions", s.handleApplySuggestions)

	r.GET("/metrics", gin.WrapH(col.Handler()))

	s.router = r
	s.http = &http.Server{Handler: r, ReadHeaderTimeout: 10 * time.Second}
	return s
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

// Start listens on addr until Shutdown is called. A server that was shut
// down before Start returns nil immediately.
func (s *Server) Start(addr string) error {
	s.http.Addr = addr
	s.log.Info("server starting", "addr", addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for active ones until ctx
// is done.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		kv := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		}
		if len(c.Errors) > 0 {
			kv = append(kv, "error", c.Errors.Last().Error())
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			s.log.Error("request failed", kv...)
			return
		}
		s.log.Debug("request", kv...)
	}
}

func (s *Server) handleTables(c *gin.Context) {
	c.JSON(http.StatusOK, tables.BuildCatalog())
}

// handleEvaluate evaluates a posted project without storing it.
func (s *Server) handleEvaluate(c *gin.Context) {
	var p assessment.Project
	if err := c.ShouldBindJSON(&p); err != nil {
		_ = c.Error(&bindError{err: err})
		return
	}
	if p.ID == "" {
		p.ID = "adhoc"
	}
	if err := p.Validate(); err != nil {
		_ = c.Error(err)
		return
	}
	sum, err := s.cache.Aggregate(p.Sites)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

func (s *Server) handleListProjects(c *gin.Context) {
	ids, err := s.store.ListProjects(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"projects": ids})
}

func (s *Server) handleGetProject(c *gin.Context) {
	p, err := s.store.GetProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) handlePutProject(c *gin.Context) {
	var p assessment.Project
	if err := c.ShouldBindJSON(&p); err != nil {
		_ = c.Error(&bindError{err: err})
		return
	}
	id := c.Param("id")
	if p.ID == "" {
		p.ID = id
	}
	if p.ID != id {
		_ = c.Error(&bindError{err: fmt.Errorf("body id %q does not match path id %q", p.ID, id)})
		return
	}
	if err := p.Validate(); err != nil {
		_ = c.Error(err)
		return
	}
	if err := s.store.PutProject(c.Request.Context(), &p); err != nil {
		_ = c.Error(err)
		return
	}
	s.log.Info("project saved", "project_id", p.ID, "sites", len(p.Sites))
	c.JSON(http.StatusOK, &p)
}

func (s *Server) handleDeleteProject(c *gin.Context) {
	if err := s.store.DeleteProject(c.Request.Context(), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// handleSummary aggregates the stored project and writes the derived
// summary back to the store.
func (s *Server) handleSummary(c *gin.Context) {
	ctx := c.Request.Context()
	p, err := s.store.GetProject(ctx, c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	sum, err := s.cache.Aggregate(p.Sites)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if err := s.store.SaveSummary(ctx, p.ID, sum); err != nil {
		_ = c.Error(err)
		return
	}
	s.metrics.ObserveSummary(p.ID, sum)
	c.JSON(http.StatusOK, sum)
}

func (s *Server) handleValidation(c *gin.Context) {
	p, err := s.store.GetProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, validation.ValidateProject(p))
}

type siteResponse struct {
	Site   assessment.SiteAssessment `json:"site"`
	Result sora.SiteResult           `json:"result"`
}

func (s *Server) handlePutSite(c *gin.Context) {
	var site assessment.SiteAssessment
	if err := c.ShouldBindJSON(&site); err != nil {
		_ = c.Error(&bindError{err: err})
		return
	}
	site.ID = c.Param("site")
	if err := site.Validate(); err != nil {
		_ = c.Error(err)
		return
	}
	p, err := s.store.GetProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	// Values written through this route are user edits; auto-sync keeps out.
	site.MarkUserEdits(p.SiteByID(site.ID))
	stored, err := s.store.PutSite(c.Request.Context(), p.ID, site)
	if err != nil {
		_ = c.Error(err)
		return
	}
	res, err := s.cache.Evaluate(stored)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, siteResponse{Site: stored, Result: res})
}

func (s *Server) handleSuggestions(c *gin.Context) {
	site, in, err := s.suggestionInputs(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	suggestions, err := sora.Suggest(*site, in)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if suggestions == nil {
		suggestions = []sora.Suggestion{}
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

// handleApplySuggestions accepts every applicable suggestion and stores the
// site. User-set fields are kept.
func (s *Server) handleApplySuggestions(c *gin.Context) {
	site, in, err := s.suggestionInputs(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	suggestions, err := sora.Suggest(*site, in)
	if err != nil {
		_ = c.Error(err)
		return
	}
	updated := sora.ApplySuggestions(*site, suggestions)
	stored, err := s.store.PutSite(c.Request.Context(), c.Param("id"), updated)
	if err != nil {
		_ = c.Error(err)
		return
	}
	res, err := s.cache.Evaluate(stored)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, siteResponse{Site: stored, Result: res})
}

// suggestionInputs loads the site and reads the survey population and
// aircraft envelope from the query. Without dimension and speed the linked
// aircraft on the record is used.
func (s *Server) suggestionInputs(c *gin.Context) (*assessment.SiteAssessment, sora.SuggestionInputs, error) {
	var in sora.SuggestionInputs
	p, err := s.store.GetProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		return nil, in, err
	}
	site := p.SiteByID(c.Param("site"))
	if site == nil {
		return nil, in, fmt.Errorf("site %s/%s: %w", p.ID, c.Param("site"), store.ErrNotFound)
	}

	in.SurveyPopulation = c.Query("population")
	in.Aircraft = site.Aircraft
	dim, speed := c.Query("dimension"), c.Query("speed")
	if dim != "" || speed != "" {
		d, err := strconv.ParseFloat(dim, 64)
		if err != nil {
			return nil, in, &bindError{err: fmt.Errorf("dimension: %w", err)}
		}
		v, err := strconv.ParseFloat(speed, 64)
		if err != nil {
			return nil, in, &bindError{err: fmt.Errorf("speed: %w", err)}
		}
		in.Aircraft = &assessment.AircraftProfile{MaxDimensionM: d, MaxSpeedMS: v}
	}
	return site, in, nil
}
