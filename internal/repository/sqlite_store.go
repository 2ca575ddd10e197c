package repository

import (
	"context"
	"database/sql"

	"github.com/alexanderramin/timelog/internal/db"
)

// SQLiteStore hands out repositories bound either to the pool or, inside
// WithinTx, to the active transaction.
type SQLiteStore struct {
	conn db.DBTX
	uow  db.UnitOfWork
}

// NewSQLiteStore builds a Store over database. The pool is capped at one
// connection, so callbacks must use the tx Store they are given; touching
// the outer Store from inside WithinTx blocks.
func NewSQLiteStore(database *sql.DB) *SQLiteStore {
	return &SQLiteStore{conn: database, uow: db.NewSQLiteUnitOfWork(database)}
}

// NewSQLiteStoreWithUoW lets tests inject a unit of work that fails on demand.
func NewSQLiteStoreWithUoW(database *sql.DB, uow db.UnitOfWork) *SQLiteStore {
	return &SQLiteStore{conn: database, uow: uow}
}

func (s *SQLiteStore) Projects() ProjectRepo      { return NewSQLiteProjectRepo(s.conn) }
func (s *SQLiteStore) Tasks() TaskRepo            { return NewSQLiteTaskRepo(s.conn) }
func (s *SQLiteStore) TimeEntries() TimeEntryRepo { return NewSQLiteTimeEntryRepo(s.conn) }

func (s *SQLiteStore) WithinTx(ctx context.Context, fn func(ctx context.Context, tx Store) error) error {
	if s.uow == nil {
		// Already scoped to a transaction; nest by joining it.
		return fn(ctx, s)
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &SQLiteStore{conn: tx})
	})
}

var _ Store = (*SQLiteStore)(nil)
