package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"caviste_server/config"

	"github.com/MonkyMars/gecho"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
)

// DB wraps the bun database handle with health and lifecycle helpers
type DB struct {
	*bun.DB
}

var instance *DB

// Connect opens the configured database through the pgx stdlib driver and wraps it in bun
func Connect() (*DB, error) {
	logger := config.GetLogger()
	dbCfg := config.GetConfig().Database

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		dbCfg.User, dbCfg.Password, dbCfg.Host, dbCfg.Port, dbCfg.Name, dbCfg.SSLMode)

	db, err := Open(dsn, logger)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.DB.DB.SetMaxOpenConns(dbCfg.MaxConns)
	db.DB.DB.SetMaxIdleConns(dbCfg.MinConns)
	db.DB.DB.SetConnMaxLifetime(dbCfg.MaxLifetime)
	db.DB.DB.SetConnMaxIdleTime(dbCfg.MaxIdleTime)

	logger.Info("Connected to database successfully", gecho.Field("host", dbCfg.Host), gecho.Field("database", dbCfg.Name))

	return db, nil
}

// Open connects to dsn and pings it, retrying transient failures
func Open(dsn string, logger *gecho.Logger) (*DB, error) {
	connCfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid database configuration: %w", err)
	}
	connCfg.ConnectTimeout = 5 * time.Second

	sqldb := stdlib.OpenDB(*connCfg)

	db := bun.NewDB(sqldb, pgdialect.New())
	db.AddQueryHook(&connectionHealthHook{logger: logger, slowThreshold: time.Second})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := WithRetry(ctx, func() error { return db.PingContext(ctx) }); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{db}, nil
}

// Initialize sets up the global database instance and makes sure the schema exists
func Initialize() error {
	db, err := Connect()
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := CreateSchema(ctx, db.DB); err != nil {
		_ = db.Close()
		return err
	}

	instance = db
	return nil
}

// GetInstance returns the global database instance
func GetInstance() *DB {
	if instance == nil {
		config.GetLogger().Fatal("Database instance is not initialized. Call Initialize() first.")
	}
	return instance
}

// CloseInstance closes the global database instance
func CloseInstance() error {
	if instance != nil {
		return instance.Close()
	}
	return nil
}

// Health pings the database with a short timeout
func (db *DB) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return db.PingContext(ctx)
}

// GetStats returns connection pool statistics for monitoring
func (db *DB) GetStats() sql.DBStats {
	return db.DB.DB.Stats()
}

// connectionHealthHook implements bun.QueryHook to surface slow and failing queries
type connectionHealthHook struct {
	logger        *gecho.Logger
	slowThreshold time.Duration
}

func (h *connectionHealthHook) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

func (h *connectionHealthHook) AfterQuery(_ context.Context, event *bun.QueryEvent) {
	duration := time.Since(event.StartTime)
	if duration > h.slowThreshold {
		h.logger.Warn("Slow database query detected",
			gecho.Field("query", event.Query),
			gecho.Field("duration", duration),
		)
	}

	if event.Err != nil && !errors.Is(event.Err, sql.ErrNoRows) && isRetryableError(event.Err) {
		h.logger.Error("Database connection error",
			gecho.Field("error", event.Err),
			gecho.Field("query", event.Query),
		)
	}
}
