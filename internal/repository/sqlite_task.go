package repository

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/alexanderramin/timelog/internal/db"
	"github.com/alexanderramin/timelog/internal/domain"
)

// SQLiteTaskRepo implements TaskRepo using a SQLite database. Reads join the
// owning project so callers can render "CODE — Name" without a second query.
type SQLiteTaskRepo struct {
	db db.DBTX
}

func NewSQLiteTaskRepo(conn db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: conn}
}

func taskSelect() sq.SelectBuilder {
	return sq.Select(
		"t.id", "t.name", "t.project_id", "t.active", "t.created_at", "t.updated_at",
		"p.id", "p.name", "p.code", "p.active", "p.created_at", "p.updated_at",
	).
		From("tasks t").
		Join("projects p ON p.id = t.project_id")
}

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	now := nowUTC()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (name, project_id, active, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		t.Name,
		t.ProjectID,
		boolToInt(t.Active),
		t.CreatedAt.Format(time.RFC3339),
		t.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return wrapWriteErr("inserting task", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading task id: %w", err)
	}
	t.ID = id
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	query, args, err := taskSelect().Where(sq.Eq{"t.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("building task query: %w", err)
	}
	return scanTask(r.db.QueryRowContext(ctx, query, args...))
}

func (r *SQLiteTaskRepo) List(ctx context.Context, activeOnly bool) ([]*domain.Task, error) {
	b := taskSelect()
	if activeOnly {
		b = b.Where(sq.Eq{"t.active": 1})
	}
	return r.query(ctx, b.OrderBy("t.name", "t.id"))
}

func (r *SQLiteTaskRepo) ListByProject(ctx context.Context, projectID int64) ([]*domain.Task, error) {
	return r.query(ctx, taskSelect().Where(sq.Eq{"t.project_id": projectID}).OrderBy("t.name", "t.id"))
}

func (r *SQLiteTaskRepo) query(ctx context.Context, b sq.SelectBuilder) ([]*domain.Task, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building task query: %w", err)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *SQLiteTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	t.UpdatedAt = nowUTC()
	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET name = ?, project_id = ?, active = ?, updated_at = ? WHERE id = ?`,
		t.Name,
		t.ProjectID,
		boolToInt(t.Active),
		t.UpdatedAt.Format(time.RFC3339),
		t.ID,
	)
	if err != nil {
		return wrapWriteErr("updating task", err)
	}
	return checkAffected(res, "task")
}

func (r *SQLiteTaskRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return checkAffected(res, "task")
}

func (r *SQLiteTaskRepo) NameTaken(ctx context.Context, projectID int64, name string, excludeID int64) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tasks WHERE project_id = ? AND name = ? AND id != ?`,
		projectID, name, excludeID,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking task name: %w", err)
	}
	return n > 0, nil
}

func (r *SQLiteTaskRepo) CountByProject(ctx context.Context, projectID int64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks WHERE project_id = ?`, projectID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting tasks: %w", err)
	}
	return n, nil
}

func scanTask(s rowScanner) (*domain.Task, error) {
	var (
		t                  domain.Task
		p                  domain.Project
		tActive, pActive   int
		tCreated, tUpdated string
		pCreated, pUpdated string
	)
	err := s.Scan(
		&t.ID, &t.Name, &t.ProjectID, &tActive, &tCreated, &tUpdated,
		&p.ID, &p.Name, &p.Code, &pActive, &pCreated, &pUpdated,
	)
	if err != nil {
		return nil, scanErr("task", err)
	}
	t.Active = intToBool(tActive)
	p.Active = intToBool(pActive)
	if t.CreatedAt, t.UpdatedAt, err = parseTimestamps(tCreated, tUpdated); err != nil {
		return nil, err
	}
	if p.CreatedAt, p.UpdatedAt, err = parseTimestamps(pCreated, pUpdated); err != nil {
		return nil, err
	}
	t.Project = &p
	return &t, nil
}
