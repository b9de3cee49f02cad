package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dustin-aeria/muster-sub008/pkg/assessment"
	"github.com/dustin-aeria/muster-sub008/pkg/sora"
	"github.com/dustin-aeria/muster-sub008/pkg/tables"
)

func openTest(t *testing.T) *Badger {
	t.Helper()
	s, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }
	return s
}

func project() *assessment.Project {
	return &assessment.Project{
		ID:   "prj-1",
		Name: "Harbour",
		Sites: []assessment.SiteAssessment{
			{ID: "s1", Population: "suburban", UAClass: "3m_35ms", InitialARC: "c",
				Mitigations: map[string]assessment.MitigationConfig{"M1A": {Enabled: true, Robustness: "low"}}},
		},
	}
}

func TestPutGetProject(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)

	require.NoError(t, s.PutProject(ctx, project()))
	got, err := s.GetProject(ctx, "prj-1")
	require.NoError(t, err)

	assert.Equal(t, "Harbour", got.Name)
	require.Len(t, got.Sites, 1)
	assert.Equal(t, "suburban", got.Sites[0].Population)
	assert.True(t, got.Sites[0].Mitigations["M1A"].Enabled)
	assert.Equal(t, s.now(), got.Sites[0].UpdatedAt)
}

func TestPutProjectDoesNotAliasInput(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)
	p := project()
	require.NoError(t, s.PutProject(ctx, p))
	assert.True(t, p.Sites[0].UpdatedAt.IsZero(), "input must not be stamped")
}

func TestGetProjectNotFound(t *testing.T) {
	s := openTest(t)
	_, err := s.GetProject(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPutSiteUpsert(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)
	require.NoError(t, s.PutProject(ctx, project()))

	updated := assessment.SiteAssessment{ID: "s1", Population: "urban", UAClass: "3m_35ms", InitialARC: "c"}
	stored, err := s.PutSite(ctx, "prj-1", updated)
	require.NoError(t, err)
	assert.Equal(t, s.now(), stored.UpdatedAt)

	_, err = s.PutSite(ctx, "prj-1", assessment.SiteAssessment{ID: "s2", Population: "remote"})
	require.NoError(t, err)

	got, err := s.GetProject(ctx, "prj-1")
	require.NoError(t, err)
	require.Len(t, got.Sites, 2)
	assert.Equal(t, "urban", got.SiteByID("s1").Population)
	assert.Equal(t, "remote", got.SiteByID("s2").Population)
}

func TestPutSiteUnknownProject(t *testing.T) {
	s := openTest(t)
	_, err := s.PutSite(context.Background(), "nope", assessment.SiteAssessment{ID: "s1"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.PutSite(context.Background(), "nope", assessment.SiteAssessment{})
	assert.Error(t, err)
}

func TestListAndDelete(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)
	for _, id := range []string{"b", "a", "c"} {
		require.NoError(t, s.PutProject(ctx, &assessment.Project{ID: id}))
	}
	ids, err := s.ListProjects(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, ids)

	require.NoError(t, s.SaveSummary(ctx, "b", sora.ProjectSummary{}))
	require.NoError(t, s.DeleteProject(ctx, "b"))
	_, err = s.GetSummary(ctx, "b")
	assert.ErrorIs(t, err, ErrNotFound)

	ids, err = s.ListProjects(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, ids)

	assert.ErrorIs(t, s.DeleteProject(ctx, "b"), ErrNotFound)
}

func TestSummaryRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)
	p := project()

	sum, err := sora.Aggregate(p.Sites)
	require.NoError(t, err)
	require.NoError(t, s.SaveSummary(ctx, p.ID, sum))

	got, err := s.GetSummary(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, tables.SAILIV, got.SAIL)
	assert.Equal(t, sum.GoverningSites, got.GoverningSites)
	require.Len(t, got.Sites, 1)
	assert.Equal(t, sum.Sites[0].FinalGRC, got.Sites[0].FinalGRC)
	assert.Equal(t, tables.ARCc, got.Sites[0].ResidualARC)
}

func TestCancelledContext(t *testing.T) {
	s := openTest(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.PutProject(ctx, project()), context.Canceled)
	_, err := s.GetProject(ctx, "prj-1")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open(Config{})
	assert.Error(t, err)
}

func TestOpenOnDisk(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(Config{Path: dir})
	require.NoError(t, err)
	require.NoError(t, s.PutProject(context.Background(), &assessment.Project{ID: "p"}))
	require.NoError(t, s.Close())

	s, err = Open(Config{Path: dir})
	require.NoError(t, err)
	defer s.Close()
	_, err = s.GetProject(context.Background(), "p")
	assert.NoError(t, err)
}
