// Package pgframe is a thin convenience layer over database/sql and
// the PostgreSQL driver: open a connection, run SELECT queries
// returning row tuples or a frame, run mutating statements with
// immediate commit semantics, and bulk-insert row sets through a paged
// multi-row VALUES statement. Everything below the statement surface —
// transport, authentication, SQL parsing, transactions — belongs to
// the driver.
package pgframe

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/sirupsen/logrus"

	"github.com/hwangq/pgframe/internal/core"
	"github.com/hwangq/pgframe/pkg/config"
	"github.com/hwangq/pgframe/pkg/frame"
)

// All requests every remaining row from a read.
const All = -1

// insertPageSize caps how many rows one multi-row VALUES statement
// carries; larger inputs are split into consecutive pages.
const insertPageSize = 1000

var (
	// ErrInvalidRowCount reports a read row count that is neither All
	// nor a positive integer. It is returned before any statement is
	// submitted.
	ErrInvalidRowCount = errors.New("row count must be All or a positive integer")

	// ErrEmptyInsert reports a bulk insert with no rows to insert.
	ErrEmptyInsert = errors.New("bulk insert requires at least one row")
)

// DB owns one driver connection and the execution handle used to run
// statements on it. A DB is single-owner and not safe for concurrent
// use; callers must release it exactly once via Close.
type DB struct {
	cfg    config.Config
	db     *sql.DB
	conn   *sql.Conn
	logger logrus.FieldLogger

	logQueries     bool
	logCredentials bool
}

// Option configures a DB at construction.
type Option func(*DB)

// WithLogger replaces the default logrus standard logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(d *DB) { d.logger = logger }
}

// WithQueryLog echoes every statement at debug level before submission.
func WithQueryLog() Option {
	return func(d *DB) { d.logQueries = true }
}

// WithCredentialLogging includes the plaintext password in the
// connection summary logged at open time. The password is redacted by
// default.
func WithCredentialLogging() Option {
	return func(d *DB) { d.logCredentials = true }
}

// Open validates cfg, opens the driver connection and reserves the
// execution handle. Opening fails if any required setting is missing.
func Open(cfg config.Config, opts ...Option) (*DB, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	sqlDB, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return Wrap(sqlDB, cfg, opts...)
}

// Wrap builds a DB around an already-opened sql.DB. It reserves a
// dedicated connection and pings it.
func Wrap(sqlDB *sql.DB, cfg config.Config, opts ...Option) (*DB, error) {
	d := &DB{cfg: cfg, db: sqlDB, logger: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(d)
	}

	conn, err := sqlDB.Conn(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to reserve connection: %w", err)
	}
	if err := conn.PingContext(context.Background()); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	d.conn = conn

	password := "********"
	if d.logCredentials {
		password = cfg.Password
	}
	d.logger.WithFields(logrus.Fields{
		"host":     cfg.Host,
		"dbname":   cfg.DBName,
		"user":     cfg.User,
		"password": password,
		"port":     cfg.Port,
	}).Info("database connection established")
	return d, nil
}

// Close releases the execution handle, then the connection, in that
// order. The DB must not be used afterwards.
func (d *DB) Close() error {
	if err := d.conn.Close(); err != nil {
		return fmt.Errorf("failed to release connection: %w", err)
	}
	if err := d.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	d.logger.Info("connection is closed")
	return nil
}

// Select runs a read-only query and returns up to n row tuples along
// with the ordered column names. Pass All for every row. A count that
// is neither All nor positive fails with ErrInvalidRowCount before the
// statement is submitted.
func (d *DB) Select(ctx context.Context, query string, n int) ([][]interface{}, []string, error) {
	if n != All && n < 1 {
		return nil, nil, fmt.Errorf("%w: got %d", ErrInvalidRowCount, n)
	}
	start := time.Now()
	rows, columns, err := d.query(ctx, query, n)
	if err != nil {
		return nil, nil, err
	}
	d.logElapsed("select", start)
	return rows, columns, nil
}

// SelectOne runs a read-only query and returns exactly the next row.
// It returns sql.ErrNoRows when the result is empty.
func (d *DB) SelectOne(ctx context.Context, query string) ([]interface{}, []string, error) {
	start := time.Now()
	rows, columns, err := d.query(ctx, query, 1)
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, sql.ErrNoRows
	}
	d.logElapsed("select", start)
	return rows[0], columns, nil
}

// SelectFrame runs a read-only query and returns the result as a
// frame. The count semantics match Select.
func (d *DB) SelectFrame(ctx context.Context, query string, n int) (*frame.Frame, error) {
	if n != All && n < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidRowCount, n)
	}
	start := time.Now()
	rows, columns, err := d.query(ctx, query, n)
	if err != nil {
		return nil, err
	}
	f, err := frame.New(columns, rows)
	if err != nil {
		return nil, err
	}
	d.logElapsed("select", start)
	return f, nil
}

// Exec runs a mutating statement (INSERT, UPDATE, DELETE, DDL) with
// optional positional values bound through the driver's placeholder
// mechanism. The statement is committed as soon as it completes; no
// rollback is issued on failure.
func (d *DB) Exec(ctx context.Context, query string, args ...interface{}) error {
	start := time.Now()
	query = core.EnsureTerminator(query)
	d.logQuery(query, args)
	if _, err := d.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("exec failed: %w", err)
	}
	d.logElapsed("exec", start)
	return nil
}

// InsertRows bulk-inserts the given value tuples. The statement must
// carry a single %s values placeholder, which is expanded into
// multi-row groups of driver placeholders and submitted in pages of
// 1000 rows. Every row must have the same width.
func (d *DB) InsertRows(ctx context.Context, query string, rows [][]interface{}) error {
	if len(rows) == 0 {
		return ErrEmptyInsert
	}
	width := len(rows[0])
	for i, row := range rows {
		if len(row) != width {
			return fmt.Errorf("row %d has %d values, want %d", i, len(row), width)
		}
	}

	start := time.Now()
	query = core.EnsureTerminator(query)
	for offset := 0; offset < len(rows); offset += insertPageSize {
		end := offset + insertPageSize
		if end > len(rows) {
			end = len(rows)
		}
		page := rows[offset:end]

		stmt, err := core.ExpandValues(query, len(page), width)
		if err != nil {
			return err
		}
		args := make([]interface{}, 0, len(page)*width)
		for _, row := range page {
			args = append(args, row...)
		}
		d.logQuery(stmt, nil)
		if _, err := d.conn.ExecContext(ctx, stmt, args...); err != nil {
			return fmt.Errorf("bulk insert failed: %w", err)
		}
	}
	d.logElapsed("insert", start)
	return nil
}

// InsertFrame bulk-inserts a frame's rows, taking each row's values in
// column order.
func (d *DB) InsertFrame(ctx context.Context, query string, f *frame.Frame) error {
	return d.InsertRows(ctx, query, f.Rows())
}

func (d *DB) query(ctx context.Context, query string, n int) ([][]interface{}, []string, error) {
	query = core.EnsureTerminator(query)
	d.logQuery(query, nil)
	rows, err := d.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()
	return core.Collect(rows, n)
}

func (d *DB) logQuery(query string, args []interface{}) {
	if !d.logQueries {
		return
	}
	if len(args) > 0 {
		d.logger.Debugf("QUERY: %s %v", query, args)
		return
	}
	d.logger.Debugf("QUERY: %s", query)
}

func (d *DB) logElapsed(op string, start time.Time) {
	d.logger.WithField("op", op).Infof("process time: %.5f s", time.Since(start).Seconds())
}
