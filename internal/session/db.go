package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/amoylab/sessiongate/internal/common/cnst"
	"github.com/amoylab/sessiongate/internal/common/config"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DatabaseType represents the type of database
type DatabaseType string

const (
	PostgreSQL DatabaseType = "postgres"
	MySQL      DatabaseType = "mysql"
	SQLite     DatabaseType = "sqlite"

	defaultTable = "sessions"
)

// ErrInvalidDatabaseType is returned for a database type without a dialector
var ErrInvalidDatabaseType = errors.New("invalid database type")

const (
	columnKey       = "session_key"
	columnValue     = "session_value"
	columnExpiresAt = "expires_at"
)

// Record is a session row owned by the login service. The expires_at column
// is optional; NULL means the session never expires.
type Record struct {
	Key       string     `gorm:"column:session_key;primaryKey;size:512"`
	Value     string     `gorm:"column:session_value;type:text"`
	ExpiresAt *time.Time `gorm:"column:expires_at;index"`
}

// DBStore reads session records from a SQL table it never writes to
type DBStore struct {
	logger    *zap.Logger
	db        *gorm.DB
	table     string
	hasExpiry bool
	now       func() time.Time
}

var _ Store = (*DBStore)(nil)

// NewDBStore opens the database and checks the session table exists
func NewDBStore(lg *zap.Logger, cfg *config.DatabaseConfig) (*DBStore, error) {
	lg = lg.Named("session.store.db")
	if cfg.DSN == "" {
		return nil, cnst.ErrMissingDSN
	}

	var dialector gorm.Dialector
	switch DatabaseType(cfg.Type) {
	case PostgreSQL:
		dialector = postgres.Open(cfg.DSN)
	case MySQL:
		dialector = mysql.Open(cfg.DSN)
	case SQLite:
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidDatabaseType, cfg.Type)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	table := cfg.Table
	if table == "" {
		table = defaultTable
	}
	m := db.Migrator()
	if !m.HasTable(table) {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
		return nil, fmt.Errorf("%w: %s", ErrMissingTable, table)
	}
	hasExpiry := m.HasColumn(table, columnExpiresAt)

	lg.Info("Session table found",
		zap.String("type", cfg.Type),
		zap.String("table", table),
		zap.Bool("expiry_column", hasExpiry),
	)
	return &DBStore{
		logger:    lg,
		db:        db,
		table:     table,
		hasExpiry: hasExpiry,
		now:       time.Now,
	}, nil
}

// Get implements Store.Get
func (s *DBStore) Get(ctx context.Context, key string) (string, error) {
	q := s.db.WithContext(ctx).Table(s.table).
		Select(columnValue).
		Where(columnKey+" = ?", key)
	if s.hasExpiry {
		q = q.Where(columnExpiresAt+" IS NULL OR "+columnExpiresAt+" > ?", s.now())
	}

	var rec Record
	err := q.Take(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrSessionNotFound
		}
		return "", err
	}
	return rec.Value, nil
}

// Ping implements Store.Ping
func (s *DBStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close implements Store.Close
func (s *DBStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
