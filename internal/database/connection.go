package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/sweetdelights/backend/internal/config"
)

type DB struct {
	*sql.DB
}

// NewConnection opens the pool and verifies it with a ping. The DSN is
// normalized so TIMESTAMP columns scan into time.Time, in UTC.
func NewConnection(cfg *config.DBConfig) (*DB, error) {
	db, err := sql.Open("mysql", normalizeDSN(cfg.DSN))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{db}, nil
}

// HealthCheck performs a simple health check on the database
func (db *DB) HealthCheck() error {
	return db.Ping()
}

// normalizeDSN appends parseTime=true and loc=UTC unless the DSN already
// sets them. Without parseTime the driver hands TIMESTAMP columns back as
// []byte and every purchased_at scan fails.
func normalizeDSN(dsn string) string {
	extra := ""
	if !strings.Contains(dsn, "parseTime=") {
		extra = "parseTime=true"
	}
	if !strings.Contains(dsn, "loc=") {
		if extra != "" {
			extra += "&"
		}
		extra += "loc=UTC"
	}
	if extra == "" {
		return dsn
	}

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + extra
}
