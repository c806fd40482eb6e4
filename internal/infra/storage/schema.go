package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/juice-reservations/pkg/dbmetrics"
)

// Dialect диалект SQL-бэкенда
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS presences (
		id         BIGSERIAL PRIMARY KEY,
		location   TEXT NOT NULL,
		date       VARCHAR(10) NOT NULL,
		start_time VARCHAR(5) NOT NULL,
		end_time   VARCHAR(5) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS slots (
		id          BIGSERIAL PRIMARY KEY,
		presence_id BIGINT NOT NULL REFERENCES presences(id) ON DELETE CASCADE,
		start_at    TIMESTAMPTZ NOT NULL,
		UNIQUE (presence_id, start_at)
	)`,
	`CREATE TABLE IF NOT EXISTS reservations (
		id         BIGSERIAL PRIMARY KEY,
		slot_id    BIGINT NOT NULL REFERENCES slots(id) ON DELETE CASCADE,
		first_name TEXT NOT NULL,
		last_name  TEXT NOT NULL,
		phone      TEXT NOT NULL,
		quantity   INTEGER NOT NULL CHECK (quantity >= 1),
		comment    TEXT,
		token      TEXT NOT NULL UNIQUE,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_slots_start_at ON slots (start_at)`,
	`CREATE INDEX IF NOT EXISTS idx_reservations_slot_id ON reservations (slot_id)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS presences (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		location   TEXT NOT NULL,
		date       TEXT NOT NULL,
		start_time TEXT NOT NULL,
		end_time   TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS slots (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		presence_id INTEGER NOT NULL REFERENCES presences(id) ON DELETE CASCADE,
		start_at    DATETIME NOT NULL,
		UNIQUE (presence_id, start_at)
	)`,
	`CREATE TABLE IF NOT EXISTS reservations (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		slot_id    INTEGER NOT NULL REFERENCES slots(id) ON DELETE CASCADE,
		first_name TEXT NOT NULL,
		last_name  TEXT NOT NULL,
		phone      TEXT NOT NULL,
		quantity   INTEGER NOT NULL CHECK (quantity >= 1),
		comment    TEXT,
		token      TEXT NOT NULL UNIQUE,
		created_at DATETIME NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_slots_start_at ON slots (start_at)`,
	`CREATE INDEX IF NOT EXISTS idx_reservations_slot_id ON reservations (slot_id)`,
}

// Migrate создает схему, если её нет. Выполняется один раз при старте под привилегированной учетной записью.
func Migrate(ctx context.Context, db dbmetrics.DBExecutor, dialect Dialect) error {
	statements := sqliteSchema
	if dialect == DialectPostgres {
		statements = postgresSchema
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%w: %v", ErrMigrate, err)
		}
	}
	return nil
}

// DBTime нормализует момент для записи и сравнения в БД: UTC, с точностью до секунды (вверх)
// SQLite хранит DATETIME как текст, поэтому у всех значений должен быть одинаковый формат
func DBTime(t time.Time) time.Time {
	t = t.UTC()
	if truncated := t.Truncate(time.Second); !truncated.Equal(t) {
		return truncated.Add(time.Second)
	}
	return t
}
