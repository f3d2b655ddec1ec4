package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver
)

const (
	defaultMaxOpenConnections = 25
	defaultMaxIdleConnections = 5
	defaultMaxConnLifetime    = time.Hour
	defaultMaxConnIdleTime    = 5 * time.Minute
)

// SQLXAdapter implements DB for sqlx.DB.
type SQLXAdapter struct {
	db *sqlx.DB
}

// NewSQLXAdapter wraps an existing sqlx.DB.
func NewSQLXAdapter(db *sqlx.DB) *SQLXAdapter {
	return &SQLXAdapter{db: db}
}

func openSQLX(_ context.Context, dsn string) (*SQLXAdapter, error) {
	db, err := sqlx.Open(DriverPostgres, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(defaultMaxOpenConnections)
	db.SetMaxIdleConns(defaultMaxIdleConnections)
	db.SetConnMaxLifetime(defaultMaxConnLifetime)
	db.SetConnMaxIdleTime(defaultMaxConnIdleTime)

	return NewSQLXAdapter(db), nil
}

func (s *SQLXAdapter) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	return sqlxQuery(ctx, s.db, query, args...)
}

func (s *SQLXAdapter) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	return sqlxExec(ctx, s.db, query, args...)
}

func (s *SQLXAdapter) WithTx(ctx context.Context, fn func(q Querier) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(sqlxTx{tx: tx}); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLXAdapter) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLXAdapter) Close() error {
	return s.db.Close()
}

// sqlxConn is satisfied by both *sqlx.DB and *sqlx.Tx.
type sqlxConn interface {
	QueryxContext(ctx context.Context, query string, args ...any) (*sqlx.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func sqlxQuery(ctx context.Context, conn sqlxConn, query string, args ...any) (Rows, error) {
	rows, err := conn.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return stdRows{rows: rows}, nil
}

func sqlxExec(ctx context.Context, conn sqlxConn, query string, args ...any) (int64, error) {
	res, err := conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type sqlxTx struct {
	tx *sqlx.Tx
}

func (t sqlxTx) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	return sqlxQuery(ctx, t.tx, query, args...)
}

func (t sqlxTx) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	return sqlxExec(ctx, t.tx, query, args...)
}

// stdRows wraps sqlx.Rows to implement the Rows interface.
type stdRows struct {
	rows *sqlx.Rows
}

func (r stdRows) Next() bool             { return r.rows.Next() }
func (r stdRows) Scan(dest ...any) error { return r.rows.Scan(dest...) }
func (r stdRows) Err() error             { return r.rows.Err() }
func (r stdRows) Close()                 { _ = r.rows.Close() }
