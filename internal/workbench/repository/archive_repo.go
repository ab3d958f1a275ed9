package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/facadeworks/facade-workbench/internal/workbench/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Revision is one archived export of a project.
type Revision struct {
	ID          int64     `json:"id"`
	SessionID   string    `json:"session_id"`
	ProjectName string    `json:"project_name"`
	Document    string    `json:"document,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ArchiveRepository stores project revisions in Postgres.
type ArchiveRepository struct {
	db *pgxpool.Pool
}

func NewArchiveRepository(db *pgxpool.Pool) *ArchiveRepository {
	return &ArchiveRepository{db: db}
}

// EnsureSchema creates the revisions table when it does not exist.
func (r *ArchiveRepository) EnsureSchema(ctx context.Context) error {
	const q = `
create table if not exists facade_project_revisions (
    id           bigserial primary key,
    session_id   text not null,
    project_name text not null default '',
    document     text not null,
    created_at   timestamptz not null default now()
);
create index if not exists facade_project_revisions_session_idx
    on facade_project_revisions (session_id, created_at desc);
`
	if _, err := r.db.Exec(ctx, q); err != nil {
		return fmt.Errorf("ensure revisions table: %w", err)
	}
	return nil
}

// Save archives a document and returns the stored revision.
func (r *ArchiveRepository) Save(ctx context.Context, sessionID, projectName, document string) (*Revision, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session id required")
	}
	const q = `
insert into facade_project_revisions (session_id, project_name, document)
values ($1, $2, $3)
returning id, session_id, project_name, created_at;
`
	var rev Revision
	err := r.db.QueryRow(ctx, q, sessionID, projectName, document).
		Scan(&rev.ID, &rev.SessionID, &rev.ProjectName, &rev.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert revision: %w", err)
	}
	rev.Document = document
	return &rev, nil
}

// List returns a session's revisions, newest first, without documents.
func (r *ArchiveRepository) List(ctx context.Context, sessionID string, limit int) ([]Revision, error) {
	if limit <= 0 {
		limit = 50
	}
	const q = `
select id, session_id, project_name, created_at
from facade_project_revisions
where session_id = $1
order by created_at desc, id desc
limit $2;
`
	rows, err := r.db.Query(ctx, q, sessionID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Revision, 0, 16)
	for rows.Next() {
		var rev Revision
		if err := rows.Scan(&rev.ID, &rev.SessionID, &rev.ProjectName, &rev.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rev)
	}
	return out, rows.Err()
}

// Get loads one revision with its document.
func (r *ArchiveRepository) Get(ctx context.Context, sessionID string, id int64) (*Revision, error) {
	const q = `
select id, session_id, project_name, document, created_at
from facade_project_revisions
where session_id = $1 and id = $2;
`
	var rev Revision
	err := r.db.QueryRow(ctx, q, sessionID, id).
		Scan(&rev.ID, &rev.SessionID, &rev.ProjectName, &rev.Document, &rev.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrRevisionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get revision: %w", err)
	}
	return &rev, nil
}
