package database

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/tutorpad/internal/infrastructure/config"
	"github.com/eslsoft/tutorpad/pkg/textutil"
)

// DriverName is the database/sql driver registered with the text helpers below.
const DriverName = "sqlite3_tutorpad"

var registerOnce sync.Once

func registerDriver() {
	registerOnce.Do(func() {
		sql.Register(DriverName, &sqlite3.SQLiteDriver{
			ConnectHook: func(conn *sqlite3.SQLiteConn) error {
				if err := conn.RegisterFunc("fold_contains", textutil.ContainsFold, true); err != nil {
					return fmt.Errorf("register fold_contains: %w", err)
				}
				if err := conn.RegisterFunc("has_prefix", textutil.HasPrefix, true); err != nil {
					return fmt.Errorf("register has_prefix: %w", err)
				}
				return nil
			},
		})
	})
}

// DB wraps the sql handle and logs statements when store.log_sql is enabled.
type DB struct {
	*sql.DB
	logger logrus.FieldLogger
	logSQL bool
}

// NewSQLite opens the session database, creates the schema and returns a cleanup func.
func NewSQLite(cfg *config.Config, logger *logrus.Logger) (*DB, func(), error) {
	return OpenSQLite(context.Background(), cfg.Store.DSN, cfg.Store.LogSQL, logger)
}

// OpenSQLite is NewSQLite with explicit arguments.
func OpenSQLite(ctx context.Context, dsn string, logSQL bool, logger logrus.FieldLogger) (*DB, func(), error) {
	registerDriver()

	rawDB, err := sql.Open(DriverName, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// A shared in-memory database lives as long as one connection stays open.
	rawDB.SetMaxOpenConns(1)
	rawDB.SetMaxIdleConns(1)
	rawDB.SetConnMaxLifetime(0)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rawDB.PingContext(pingCtx); err != nil {
		rawDB.Close()
		return nil, nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	db := &DB{DB: rawDB, logger: logger, logSQL: logSQL}
	if err := db.migrate(pingCtx); err != nil {
		rawDB.Close()
		return nil, nil, err
	}

	return db, func() {
		_ = rawDB.Close()
	}, nil
}

func (db *DB) migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply sqlite schema: %w", err)
		}
	}
	return nil
}

func (db *DB) trace(query string, args []any) {
	if db.logSQL && db.logger != nil {
		db.logger.WithField("args", args).Debug(query)
	}
}

func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	db.trace(query, args)
	return db.DB.ExecContext(ctx, query, args...)
}

func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	db.trace(query, args)
	return db.DB.QueryContext(ctx, query, args...)
}

func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	db.trace(query, args)
	return db.DB.QueryRowContext(ctx, query, args...)
}
