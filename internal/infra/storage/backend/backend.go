package backend

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"github.com/mattn/go-sqlite3"

	"github.com/m04kA/juice-reservations/internal/config"
	"github.com/m04kA/juice-reservations/internal/infra/storage"
	"github.com/m04kA/juice-reservations/internal/infra/storage/memory"
	"github.com/m04kA/juice-reservations/internal/infra/storage/presence"
	"github.com/m04kA/juice-reservations/internal/infra/storage/reservation"
	"github.com/m04kA/juice-reservations/pkg/dbmetrics"
	"github.com/m04kA/juice-reservations/pkg/metrics"
	"github.com/m04kA/juice-reservations/pkg/sqlbuilder"
	"github.com/m04kA/juice-reservations/pkg/txmanager"
)

// Kind вид бэкенда. Определяется один раз при старте.
type Kind string

const (
	KindPostgres     Kind = "postgres"
	KindSQLite       Kind = "sqlite"
	KindMemory       Kind = "memory"
	KindUnconfigured Kind = "unconfigured"
)

// sqliteDriver драйвер go-sqlite3, каждое соединение которого знает sqlbuilder.SQLiteLowerFunc
const sqliteDriver = "sqlite3_unicode"

func init() {
	sql.Register(sqliteDriver, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc(sqlbuilder.SQLiteLowerFunc, strings.ToLower, true)
		},
	})
}

// ErrOpen ошибка подключения к хранилищу
var ErrOpen = errors.New("backend: failed to open storage")

// Backend выбранное хранилище: репозитории, менеджер транзакций и ресурсы для закрытия
type Backend struct {
	kind         Kind
	writable     bool
	presences    PresenceRepository
	reservations ReservationRepository
	tx           TxManager
	pools        []*dbmetrics.DB
	stop         chan struct{}
}

// Kind вид бэкенда
func (b *Backend) Kind() Kind { return b.kind }

// Writable есть ли права на запись
func (b *Backend) Writable() bool { return b.writable }

func (b *Backend) Presences() PresenceRepository { return b.presences }

func (b *Backend) Reservations() ReservationRepository { return b.reservations }

func (b *Backend) TxManager() TxManager { return b.tx }

// Ping проверяет доступность всех пулов
func (b *Backend) Ping(ctx context.Context) error {
	for _, p := range b.pools {
		if err := p.PingContext(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Close останавливает сбор метрик и закрывает пулы
func (b *Backend) Close() error {
	if b.stop != nil {
		close(b.stop)
		b.stop = nil
	}

	var errs []error
	for _, p := range b.pools {
		if err := p.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	b.pools = nil
	return errors.Join(errs...)
}

// Open создает бэкенд по конфигурации. m может быть nil.
func Open(ctx context.Context, cfg config.DatabaseConfig, m *metrics.Metrics, log Logger) (*Backend, error) {
	switch cfg.Backend {
	case config.BackendPostgres:
		return openPostgres(ctx, cfg, m, log)
	case config.BackendSQLite:
		return OpenSQLite(ctx, cfg.SQLitePath, cfg.Migrate, m)
	case config.BackendMemory:
		log.Warn("Using in-memory storage: data is lost on restart")
		return NewMemory(memory.NewStore()), nil
	default:
		log.Warn("No storage backend configured: reads return empty results, writes are rejected")
		return NewUnconfigured(), nil
	}
}

// NewMemory бэкенд поверх явно переданного хранилища в памяти
func NewMemory(store *memory.Store) *Backend {
	return &Backend{
		kind:         KindMemory,
		writable:     true,
		presences:    store.Presences(),
		reservations: store.Reservations(),
		tx:           store,
	}
}

// NewUnconfigured бэкенд без хранилища
func NewUnconfigured() *Backend {
	return &Backend{
		kind:         KindUnconfigured,
		presences:    unconfiguredPresences{},
		reservations: unconfiguredReservations{},
		tx:           txmanager.Noop{},
	}
}

// OpenSQLite встроенная БД в файле. ":memory:" держит одно соединение, иначе каждое соединение получит свою БД.
func OpenSQLite(ctx context.Context, path string, migrate bool, m *metrics.Metrics) (*Backend, error) {
	dsn := "file::memory:?_foreign_keys=on"
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("%w: create sqlite directory: %v", ErrOpen, err)
			}
		}
		dsn = "file:" + path + "?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000"
	}

	db, err := sql.Open(sqliteDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: sqlite: %v", ErrOpen, err)
	}
	// SQLite допускает одного писателя, а одно соединение исключает SQLITE_BUSY
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: sqlite ping: %v", ErrOpen, err)
	}

	b := &Backend{kind: KindSQLite, writable: true, stop: make(chan struct{})}
	pool := dbmetrics.WrapWithDefault(db, "sqlite", m, b.stop)
	b.pools = []*dbmetrics.DB{pool}

	if migrate {
		if err := storage.Migrate(ctx, pool, storage.DialectSQLite); err != nil {
			b.Close()
			return nil, err
		}
	}

	b.presences = presence.NewRepository(pool, pool, sqlbuilder.SQLite)
	b.reservations = reservation.NewRepository(pool, pool, sqlbuilder.SQLite)
	b.tx = txmanager.NewTransactionManager(pool)

	return b, nil
}

func openPostgres(ctx context.Context, cfg config.DatabaseConfig, m *metrics.Metrics, log Logger) (*Backend, error) {
	b := &Backend{kind: KindPostgres, stop: make(chan struct{})}

	open := func(name, dsn string) (*dbmetrics.DB, error) {
		db, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, fmt.Errorf("%w: postgres %s: %v", ErrOpen, name, err)
		}
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)

		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("%w: postgres %s ping: %v", ErrOpen, name, err)
		}
		pool := dbmetrics.WrapWithDefault(db, name, m, b.stop)
		b.pools = append(b.pools, pool)
		return pool, nil
	}

	var reader, writer *dbmetrics.DB
	var err error

	if cfg.HasWriter() {
		if writer, err = open("writer", cfg.WriterDSN()); err != nil {
			b.Close()
			return nil, err
		}
		b.writable = true
	}
	if cfg.HasReader() {
		if reader, err = open("reader", cfg.ReaderDSN()); err != nil {
			b.Close()
			return nil, err
		}
	} else {
		reader = writer
	}
	log.Info("Connected to postgres (host=%s, port=%d, db=%s, reader=%t, writer=%t)",
		cfg.Host, cfg.Port, cfg.DBName, cfg.HasReader(), cfg.HasWriter())

	if writer != nil && cfg.Migrate {
		if err := storage.Migrate(ctx, writer, storage.DialectPostgres); err != nil {
			b.Close()
			return nil, err
		}
	}

	if writer == nil {
		log.Warn("No postgres writer credential: writes are rejected")
		b.presences = readOnlyPresences{presence.NewRepository(reader, reader, sqlbuilder.Postgres)}
		b.reservations = readOnlyReservations{reservation.NewRepository(reader, reader, sqlbuilder.Postgres)}
		b.tx = txmanager.Noop{}
		return b, nil
	}

	b.presences = presence.NewRepository(reader, writer, sqlbuilder.Postgres)
	b.reservations = reservation.NewRepository(reader, writer, sqlbuilder.Postgres)
	b.tx = txmanager.NewTransactionManager(writer)

	return b, nil
}
