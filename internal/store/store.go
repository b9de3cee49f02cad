// Package store persists projects, their site assessments and the derived
// summaries in BadgerDB. Records are JSON; the engine never touches the
// store directly.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/dustin-aeria/muster-sub008/internal/logging"
	"github.com/dustin-aeria/muster-sub008/pkg/assessment"
	"github.com/dustin-aeria/muster-sub008/pkg/sora"
)

// ErrNotFound is returned when a project or site does not exist.
var ErrNotFound = errors.New("not found")

// Store is the persistence collaborator used by the API server.
type Store interface {
	PutProject(ctx context.Context, p *assessment.Project) error
	GetProject(ctx context.Context, id string) (*assessment.Project, error)
	ListProjects(ctx context.Context) ([]string, error)
	DeleteProject(ctx context.Context, id string) error
	PutSite(ctx context.Context, projectID string, site assessment.SiteAssessment) (assessment.SiteAssessment, error)
	SaveSummary(ctx context.Context, projectID string, sum sora.ProjectSummary) error
	GetSummary(ctx context.Context, projectID string) (*sora.ProjectSummary, error)
	Close() error
}

type Config struct {
	// Path is the badger directory. Ignored when InMemory is true.
	Path     string
	InMemory bool
	// SyncWrites fsyncs every commit.
	SyncWrites bool
	// Logger receives badger's own log output. Nil disables it.
	Logger *logging.Logger
}

const (
	projectPrefix = "project/"
	summaryPrefix = "summary/"
)

var mapping = map[error]error{badger.ErrKeyNotFound: ErrNotFound}

func wrapErr(err error) error {
	for k, v := range mapping {
		if errors.Is(err, k) {
			return v
		}
	}
	return err
}

// Badger implements Store.
type Badger struct {
	db  *badger.DB
	log *logging.Logger
	now func() time.Time
}

var _ Store = (*Badger)(nil)

// Open opens or creates the database described by cfg.
func Open(cfg Config) (*Badger, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("path is required for persistent store")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, fmt.Errorf("create store directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites).WithNumVersionsToKeep(1)

	log := cfg.Logger
	if log != nil {
		opts = opts.WithLogger(log.Badger())
	} else {
		opts = opts.WithLogger(nil)
		log = logging.Nop()
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger store: %w", err)
	}
	log.Info("store opened", "path", cfg.Path, "in_memory", cfg.InMemory)
	return &Badger{db: db, log: log, now: func() time.Time { return time.Now().UTC() }}, nil
}

// OpenInMemory opens a throwaway store, for tests and the evaluate-only
// server mode.
func OpenInMemory() (*Badger, error) {
	return Open(Config{InMemory: true})
}

func (s *Badger) Close() error {
	return s.db.Close()
}

func (s *Badger) update(ctx context.Context, fn func(txn *badger.Txn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(fn)
}

func (s *Badger) view(ctx context.Context, fn func(txn *badger.Txn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.View(fn)
}

func getJSON(txn *badger.Txn, key string, v any) error {
	item, err := txn.Get([]byte(key))
	if err != nil {
		return wrapErr(err)
	}
	return item.Value(func(val []byte) error {
		if err := json.Unmarshal(val, v); err != nil {
			return fmt.Errorf("decoding %s: %w", key, err)
		}
		return nil
	})
}

func setJSON(txn *badger.Txn, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	return txn.Set([]byte(key), data)
}

// PutProject replaces the whole project record. Sites without an UpdatedAt
// are stamped with the current time.
func (s *Badger) PutProject(ctx context.Context, p *assessment.Project) error {
	if p.ID == "" {
		return errors.New("project id is required")
	}
	now := s.now()
	rec := *p
	rec.Sites = make([]assessment.SiteAssessment, len(p.Sites))
	for i := range p.Sites {
		rec.Sites[i] = p.Sites[i].Clone()
		if rec.Sites[i].UpdatedAt.IsZero() {
			rec.Sites[i].UpdatedAt = now
		}
	}
	err := s.update(ctx, func(txn *badger.Txn) error {
		return setJSON(txn, projectPrefix+p.ID, &rec)
	})
	if err != nil {
		return fmt.Errorf("put project %s: %w", p.ID, err)
	}
	s.log.Debug("project stored", "project_id", p.ID, "sites", len(rec.Sites))
	return nil
}

func (s *Badger) GetProject(ctx context.Context, id string) (*assessment.Project, error) {
	var p assessment.Project
	err := s.view(ctx, func(txn *badger.Txn) error {
		return getJSON(txn, projectPrefix+id, &p)
	})
	if err != nil {
		return nil, fmt.Errorf("get project %s: %w", id, err)
	}
	return &p, nil
}

// ListProjects returns project IDs in lexical order.
func (s *Badger) ListProjects(ctx context.Context) ([]string, error) {
	var ids []string
	err := s.view(ctx, func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(projectPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			ids = append(ids, strings.TrimPrefix(string(it.Item().Key()), projectPrefix))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	sort.Strings(ids)
	return ids, nil
}

// DeleteProject removes a project and its stored summary.
func (s *Badger) DeleteProject(ctx context.Context, id string) error {
	err := s.update(ctx, func(txn *badger.Txn) error {
		if _, err := txn.Get([]byte(projectPrefix + id)); err != nil {
			return wrapErr(err)
		}
		if err := txn.Delete([]byte(projectPrefix + id)); err != nil {
			return err
		}
		return txn.Delete([]byte(summaryPrefix + id))
	})
	if err != nil {
		return fmt.Errorf("delete project %s: %w", id, err)
	}
	return nil
}

// PutSite inserts or replaces one site within a project and returns the
// stored record. The project must exist.
func (s *Badger) PutSite(ctx context.Context, projectID string, site assessment.SiteAssessment) (assessment.SiteAssessment, error) {
	if site.ID == "" {
		return assessment.SiteAssessment{}, errors.New("site id is required")
	}
	stored := site.Clone()
	stored.UpdatedAt = s.now()

	err := s.update(ctx, func(txn *badger.Txn) error {
		var p assessment.Project
		if err := getJSON(txn, projectPrefix+projectID, &p); err != nil {
			return err
		}
		if existing := p.SiteByID(site.ID); existing != nil {
			*existing = stored
		} else {
			p.Sites = append(p.Sites, stored)
		}
		return setJSON(txn, projectPrefix+projectID, &p)
	})
	if err != nil {
		return assessment.SiteAssessment{}, fmt.Errorf("put site %s/%s: %w", projectID, site.ID, err)
	}
	s.log.Debug("site stored", "project_id", projectID, "site_id", site.ID)
	return stored, nil
}

// SaveSummary writes back the derived project summary. It is a cache of
// engine output and never consulted by the engine.
func (s *Badger) SaveSummary(ctx context.Context, projectID string, sum sora.ProjectSummary) error {
	err := s.update(ctx, func(txn *badger.Txn) error {
		return setJSON(txn, summaryPrefix+projectID, &sum)
	})
	if err != nil {
		return fmt.Errorf("save summary %s: %w", projectID, err)
	}
	return nil
}

func (s *Badger) GetSummary(ctx context.Context, projectID string) (*sora.ProjectSummary, error) {
	var sum sora.ProjectSummary
	err := s.view(ctx, func(txn *badger.Txn) error {
		return getJSON(txn, summaryPrefix+projectID, &sum)
	})
	if err != nil {
		return nil, fmt.Errorf("get summary %s: %w", projectID, err)
	}
	return &sum, nil
}
