package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/timelog/internal/db"
	"github.com/alexanderramin/timelog/internal/domain"
)

// SQLiteProjectRepo implements ProjectRepo using a SQLite database.
type SQLiteProjectRepo struct {
	db db.DBTX
}

// NewSQLiteProjectRepo creates a new SQLiteProjectRepo.
func NewSQLiteProjectRepo(conn db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: conn}
}

const projectColumns = `id, name, code, active, created_at, updated_at`

func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	now := nowUTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO projects (name, code, active, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		p.Name,
		p.Code,
		boolToInt(p.Active),
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return wrapWriteErr("inserting project", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading project id: %w", err)
	}
	p.ID = id
	return nil
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	return scanProject(row)
}

// GetByCode matches the code exactly; codes are case-sensitive.
func (r *SQLiteProjectRepo) GetByCode(ctx context.Context, code string) (*domain.Project, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE code = ?`, code)
	return scanProject(row)
}

func (r *SQLiteProjectRepo) List(ctx context.Context) ([]*domain.Project, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (r *SQLiteProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	p.UpdatedAt = nowUTC()
	res, err := r.db.ExecContext(ctx,
		`UPDATE projects SET name = ?, code = ?, active = ?, updated_at = ? WHERE id = ?`,
		p.Name,
		p.Code,
		boolToInt(p.Active),
		p.UpdatedAt.Format(time.RFC3339),
		p.ID,
	)
	if err != nil {
		return wrapWriteErr("updating project", err)
	}
	return checkAffected(res, "project")
}

func (r *SQLiteProjectRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	return checkAffected(res, "project")
}

func (r *SQLiteProjectRepo) CodeTaken(ctx context.Context, code string, excludeID int64) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM projects WHERE code = ? AND id != ?`, code, excludeID,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking project code: %w", err)
	}
	return n > 0, nil
}

func scanProject(s rowScanner) (*domain.Project, error) {
	var (
		p                    domain.Project
		active               int
		createdAt, updatedAt string
	)
	if err := s.Scan(&p.ID, &p.Name, &p.Code, &active, &createdAt, &updatedAt); err != nil {
		return nil, scanErr("project", err)
	}
	p.Active = intToBool(active)

	var err error
	p.CreatedAt, p.UpdatedAt, err = parseTimestamps(createdAt, updatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
