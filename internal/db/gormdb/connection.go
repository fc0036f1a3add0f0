package gormdb

import (
	"context"
	"fmt"
	"time"

	"github.com/oggyb/textsms-relay/internal/db"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GormDB adapts a *gorm.DB to the db.DB port.
type GormDB struct {
	conn *gorm.DB
}

// New opens a Postgres connection for the audit log. Audit writes are small
// and infrequent, so the pool is kept modest.
func New(dsn string) (*GormDB, error) {
	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(5)
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return &GormDB{conn: conn}, nil
}

func (g *GormDB) Conn() any {
	return g.conn
}

// Ping checks the database is reachable.
func (g *GormDB) Ping(ctx context.Context) error {
	sqlDB, err := g.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the connection pool.
func (g *GormDB) Close() error {
	sqlDB, err := g.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// verify it satisfies db.DB
var _ db.DB = (*GormDB)(nil)
