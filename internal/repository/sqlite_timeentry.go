package repository

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/alexanderramin/timelog/internal/db"
	"github.com/alexanderramin/timelog/internal/domain"
)

// SQLiteTimeEntryRepo implements TimeEntryRepo using a SQLite database.
// Dates are stored as YYYY-MM-DD text so range filters compare lexically.
type SQLiteTimeEntryRepo struct {
	db db.DBTX
}

func NewSQLiteTimeEntryRepo(conn db.DBTX) *SQLiteTimeEntryRepo {
	return &SQLiteTimeEntryRepo{db: conn}
}

func entrySelect() sq.SelectBuilder {
	return sq.Select(
		"e.id", "e.entry_date", "e.hours", "e.description", "e.task_id", "e.created_at", "e.updated_at",
		"t.id", "t.name", "t.project_id", "t.active", "t.created_at", "t.updated_at",
		"p.id", "p.name", "p.code", "p.active", "p.created_at", "p.updated_at",
	).
		From("time_entries e").
		Join("tasks t ON t.id = e.task_id").
		Join("projects p ON p.id = t.project_id")
}

func (r *SQLiteTimeEntryRepo) Create(ctx context.Context, e *domain.TimeEntry) error {
	now := nowUTC()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	e.UpdatedAt = now
	e.Date = domain.NormalizeDate(e.Date)

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO time_entries (entry_date, hours, description, task_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		formatDate(e.Date),
		e.Hours,
		e.Description,
		e.TaskID,
		e.CreatedAt.Format(time.RFC3339),
		e.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return wrapWriteErr("inserting time entry", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading time entry id: %w", err)
	}
	e.ID = id
	return nil
}

func (r *SQLiteTimeEntryRepo) GetByID(ctx context.Context, id int64) (*domain.TimeEntry, error) {
	query, args, err := entrySelect().Where(sq.Eq{"e.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("building time entry query: %w", err)
	}
	return scanTimeEntry(r.db.QueryRowContext(ctx, query, args...))
}

func (r *SQLiteTimeEntryRepo) List(ctx context.Context, f EntryFilter) ([]*domain.TimeEntry, error) {
	b := entrySelect()
	if f.From != nil {
		b = b.Where(sq.GtOrEq{"e.entry_date": formatDate(*f.From)})
	}
	if f.To != nil {
		b = b.Where(sq.LtOrEq{"e.entry_date": formatDate(*f.To)})
	}
	if f.TaskID != 0 {
		b = b.Where(sq.Eq{"e.task_id": f.TaskID})
	}
	if f.ProjectID != 0 {
		b = b.Where(sq.Eq{"t.project_id": f.ProjectID})
	}

	query, args, err := b.OrderBy("e.entry_date DESC", "e.id DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("building time entry query: %w", err)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing time entries: %w", err)
	}
	defer rows.Close()

	var entries []*domain.TimeEntry
	for rows.Next() {
		e, err := scanTimeEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *SQLiteTimeEntryRepo) Update(ctx context.Context, e *domain.TimeEntry) error {
	e.UpdatedAt = nowUTC()
	e.Date = domain.NormalizeDate(e.Date)
	res, err := r.db.ExecContext(ctx,
		`UPDATE time_entries SET entry_date = ?, hours = ?, description = ?, task_id = ?, updated_at = ?
		WHERE id = ?`,
		formatDate(e.Date),
		e.Hours,
		e.Description,
		e.TaskID,
		e.UpdatedAt.Format(time.RFC3339),
		e.ID,
	)
	if err != nil {
		return wrapWriteErr("updating time entry", err)
	}
	return checkAffected(res, "time entry")
}

func (r *SQLiteTimeEntryRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM time_entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting time entry: %w", err)
	}
	return checkAffected(res, "time entry")
}

// SumOnDate rounds each entry to hundredths before adding so the total is
// exact for any mix of two-decimal inputs.
func (r *SQLiteTimeEntryRepo) SumOnDate(ctx context.Context, day time.Time) (domain.CentiHours, error) {
	var total int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(CAST(ROUND(hours * 100) AS INTEGER)), 0) FROM time_entries WHERE entry_date = ?`,
		formatDate(day),
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("summing hours: %w", err)
	}
	return domain.CentiHours(total), nil
}

func (r *SQLiteTimeEntryRepo) CountByTask(ctx context.Context, taskID int64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM time_entries WHERE task_id = ?`, taskID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting time entries: %w", err)
	}
	return n, nil
}

func scanTimeEntry(s rowScanner) (*domain.TimeEntry, error) {
	var (
		e                  domain.TimeEntry
		t                  domain.Task
		p                  domain.Project
		date               string
		tActive, pActive   int
		eCreated, eUpdated string
		tCreated, tUpdated string
		pCreated, pUpdated string
	)
	err := s.Scan(
		&e.ID, &date, &e.Hours, &e.Description, &e.TaskID, &eCreated, &eUpdated,
		&t.ID, &t.Name, &t.ProjectID, &tActive, &tCreated, &tUpdated,
		&p.ID, &p.Name, &p.Code, &pActive, &pCreated, &pUpdated,
	)
	if err != nil {
		return nil, scanErr("time entry", err)
	}
	if e.Date, err = domain.ParseDate(date); err != nil {
		return nil, fmt.Errorf("parsing entry_date: %w", err)
	}
	if e.CreatedAt, e.UpdatedAt, err = parseTimestamps(eCreated, eUpdated); err != nil {
		return nil, err
	}
	if t.CreatedAt, t.UpdatedAt, err = parseTimestamps(tCreated, tUpdated); err != nil {
		return nil, err
	}
	if p.CreatedAt, p.UpdatedAt, err = parseTimestamps(pCreated, pUpdated); err != nil {
		return nil, err
	}
	t.Active = intToBool(tActive)
	p.Active = intToBool(pActive)
	t.Project = &p
	e.Task = &t
	return &e, nil
}
