package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facadeworks/facade-workbench/internal/workbench/domain"
	"github.com/facadeworks/facade-workbench/internal/workbench/preview"
	"github.com/facadeworks/facade-workbench/internal/workbench/repository"
)

func newStore(t *testing.T) *repository.SessionRepository {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return repository.NewSessionRepository(client)
}

type memArchive struct {
	revs []repository.Revision
}

func (m *memArchive) Save(_ context.Context, sessionID, projectName, doc string) (*repository.Revision, error) {
	rev := repository.Revision{ID: int64(len(m.revs) + 1), SessionID: sessionID, ProjectName: projectName, Document: doc, CreatedAt: time.Now()}
	m.revs = append(m.revs, rev)
	return &rev, nil
}

func (m *memArchive) List(_ context.Context, sessionID string, limit int) ([]repository.Revision, error) {
	var out []repository.Revision
	for i := len(m.revs) - 1; i >= 0 && len(out) < limit; i-- {
		if m.revs[i].SessionID == sessionID {
			out = append(out, m.revs[i])
		}
	}
	return out, nil
}

func (m *memArchive) Get(_ context.Context, sessionID string, id int64) (*repository.Revision, error) {
	for _, r := range m.revs {
		if r.ID == id && r.SessionID == sessionID {
			return &r, nil
		}
	}
	return nil, domain.ErrRevisionNotFound
}

func TestWorkbench_RestoresSessionFromSnapshot(t *testing.T) {
	store := newStore(t)
	f := newFixture(t, store)
	s, v := f.session(t)
	ctx := context.Background()

	require.NoError(t, s.SetField(ctx, v.ProjectInfo.ID, "project_name", "Tower A"))
	want, err := s.Export(ctx)
	require.NoError(t, err)
	f.wb.Shutdown()

	snap, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), snap.Version)

	restored, err := f.wb.Session(ctx, s.ID)
	require.NoError(t, err)
	assert.NotSame(t, s, restored)
	got, err := restored.Export(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	rv, err := restored.View(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), rv.Version)

	require.NoError(t, f.wb.CloseSession(ctx, s.ID))
	_, err = f.wb.Session(ctx, s.ID)
	assert.True(t, errors.Is(err, domain.ErrSessionNotFound))
}

func TestWorkbench_UnknownSessionWithoutStore(t *testing.T) {
	f := newFixture(t, nil)
	_, err := f.wb.Session(context.Background(), "missing")
	assert.True(t, errors.Is(err, domain.ErrSessionNotFound))
	assert.True(t, errors.Is(f.wb.CloseSession(context.Background(), "missing"), domain.ErrSessionNotFound))
}

func TestWorkbench_OpenDocument(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, _, err := f.wb.OpenDocument(ctx, "{not json")
	assert.True(t, errors.Is(err, domain.ErrDocumentParse))
	assert.Empty(t, f.wb.Sessions())

	s, report, err := f.wb.OpenDocument(ctx, "project_info:\n  project_name: Depot\n  colour: red\n")
	require.NoError(t, err)
	assert.Len(t, report.Warnings, 1)
	v, err := s.View(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Depot", fieldValue(v.ProjectInfo, "project_name"))
}

func TestWorkbench_Revisions(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	s, v := f.session(t)
	_, err := f.wb.SaveRevision(ctx, s.ID)
	assert.True(t, errors.Is(err, ErrArchiveDisabled))

	f.wb.archive = &memArchive{}
	require.NoError(t, s.SetField(ctx, v.ProjectInfo.ID, "project_name", "Rev One"))
	rev, err := f.wb.SaveRevision(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rev One", rev.ProjectName)

	require.NoError(t, s.SetField(ctx, v.ProjectInfo.ID, "project_name", "Rev Two"))
	revs, err := f.wb.Revisions(ctx, s.ID, 10)
	require.NoError(t, err)
	require.Len(t, revs, 1)

	_, err = f.wb.RestoreRevision(ctx, s.ID, rev.ID)
	require.NoError(t, err)
	v, err = s.View(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Rev One", fieldValue(v.ProjectInfo, "project_name"))

	_, err = f.wb.RestoreRevision(ctx, s.ID, 99)
	assert.True(t, errors.Is(err, domain.ErrRevisionNotFound))
}

func TestWorkbench_RefreshFigures(t *testing.T) {
	f := newFixture(t, nil)
	f.collab.figures = []preview.Figure{
		{Name: "cat_glass_1", Category: "Categories", Exists: false},
		{Name: "extra", Category: "Other", Exists: true},
		{Name: "gust", Category: "Wind", Exists: true},
		{Name: "M-125", Category: "Profiles", Exists: true},
	}
	s, _ := f.session(t)
	ctx := context.Background()

	f.wb.RefreshFigures(ctx)
	v, err := s.View(ctx)
	require.NoError(t, err)
	require.NotNil(t, v.Figures)

	r := v.Figures
	assert.Equal(t, 3, r.Found)
	assert.Equal(t, 1, r.Missing)
	var order []string
	for _, g := range r.Groups {
		order = append(order, g.Category)
	}
	assert.Equal(t, []string{"Wind", "Profiles", "Categories", "Other"}, order)
	assert.Equal(t, []string{"cat_glass_1"}, r.Groups[2].Names)
	assert.Equal(t, "3 of 4 figures ready, 1 missing", r.Status)
}

func TestFigureReport_Summary(t *testing.T) {
	var none *FigureReport
	assert.Equal(t, "Figures not checked", none.Summary())
	assert.Equal(t, "No figures required", summarizeFigures(nil, time.Time{}).Summary())
	assert.Equal(t, "All 1 figures ready", summarizeFigures([]preview.Figure{{Name: "a", Exists: true}}, time.Time{}).Summary())
}

func TestReportFilename(t *testing.T) {
	tests := []struct {
		name    string
		project string
		summary bool
		want    string
	}{
		{"plain", "Tower", false, "Tower_report.pdf"},
		{"spaces collapse", "Tower  A\tEast", false, "Tower_A_East_report.pdf"},
		{"summary", "Tower A", true, "Tower_A_summary.pdf"},
		{"no name", "  ", false, "report.pdf"},
		{"no name summary", "", true, "summary.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReportFilename(tt.project, tt.summary))
		})
	}
}

func TestSession_GenerateReport(t *testing.T) {
	f := newFixture(t, nil)
	f.collab.report = []byte("%PDF-1.7")
	s, v := f.session(t)
	ctx := context.Background()
	require.NoError(t, s.SetField(ctx, v.ProjectInfo.ID, "project_name", "Tower A"))

	r, err := s.GenerateReport(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, "Tower_A_summary.pdf", r.Filename)
	assert.Equal(t, "application/pdf", r.ContentType)
	assert.Equal(t, []byte("%PDF-1.7"), r.Data)

	html, err := s.PreviewSummary(ctx)
	require.NoError(t, err)
	assert.Contains(t, html, "Summary")
}

func TestMonitor_RejectsBadSchedule(t *testing.T) {
	f := newFixture(t, nil)
	m := NewMonitor(f.wb)
	assert.Error(t, m.Start("every now and then", ""))
}
