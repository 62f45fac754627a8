package database

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"productconsole/logger"
)

// SQLExecutor is the subset of *sql.DB the catalog store needs. sqlmock
// connections satisfy it as well.
type SQLExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// SlowQueryThreshold 이 시간을 넘는 쿼리는 경고 로그를 남깁니다.
var SlowQueryThreshold = 250 * time.Millisecond

// timedExecutor logs statements that run longer than SlowQueryThreshold.
// Statements inside a transaction are not timed individually.
type timedExecutor struct {
	*sql.DB
}

// NewSQLExecutor returns db as an SQLExecutor with slow-query logging.
func NewSQLExecutor(db *sql.DB) SQLExecutor {
	return timedExecutor{DB: db}
}

func (e timedExecutor) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	defer observeQuery(time.Now(), query)
	return e.DB.ExecContext(ctx, query, args...)
}

func (e timedExecutor) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	defer observeQuery(time.Now(), query)
	return e.DB.QueryContext(ctx, query, args...)
}

func (e timedExecutor) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	defer observeQuery(time.Now(), query)
	return e.DB.QueryRowContext(ctx, query, args...)
}

func observeQuery(start time.Time, query string) {
	elapsed := time.Since(start)
	if elapsed < SlowQueryThreshold {
		return
	}
	logger.WithFields(map[string]interface{}{
		"elapsed": elapsed.String(),
		"query":   strings.Join(strings.Fields(query), " "),
	}).Warn("Slow query")
}
