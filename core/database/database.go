package database

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/sethvargo/go-retry"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect establishes a connection to the configured database, retrying with
// exponential backoff up to cfg.ConnectAttempts times.
func Connect(ctx context.Context, cfg Config) (*gorm.DB, error) {
	attempts := cfg.ConnectAttempts
	if attempts < 1 {
		attempts = 1
	}
	base := cfg.RetryBackoff
	if base <= 0 {
		base = time.Second
	}
	backoff := retry.WithMaxRetries(uint64(attempts-1), retry.NewExponential(base))

	var db *gorm.DB
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		conn, err := open(ctx, cfg)
		if err != nil {
			return retry.RetryableError(err)
		}
		db = conn
		return nil
	})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// Dialector returns the GORM dialector for the configured driver.
func Dialector(cfg Config) (gorm.Dialector, error) {
	timeout := timeoutSeconds(cfg)

	switch cfg.Driver {
	case DriverMySQL, "":
		// Special characters in the password must be URL encoded for the mysql DSN.
		userInfo := url.UserPassword(cfg.User, cfg.Password).String()
		dsn := fmt.Sprintf("%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC&timeout=%ds&readTimeout=%ds&writeTimeout=%ds",
			userInfo, cfg.Host, cfg.Port, cfg.Name, timeout, timeout, timeout)
		return mysql.Open(dsn), nil
	case DriverPostgres:
		u := url.URL{
			Scheme: "postgres",
			User:   url.UserPassword(cfg.User, cfg.Password),
			Host:   fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Path:   "/" + cfg.Name,
		}
		q := u.Query()
		q.Set("sslmode", cfg.SSLMode)
		q.Set("connect_timeout", fmt.Sprint(timeout))
		u.RawQuery = q.Encode()
		return postgres.Open(u.String()), nil
	case DriverSQLite:
		return sqlite.Open(cfg.Name), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func open(ctx context.Context, cfg Config) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	// GORM logging is silenced; failures surface through the application logger.
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if cfg.Driver == DriverSQLite {
		// A single connection keeps in-memory databases shared between queries.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	pingCtx, cancel := context.WithTimeout(ctx, time.Duration(timeoutSeconds(cfg))*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// Close closes the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func timeoutSeconds(cfg Config) int {
	if cfg.TimeoutSeconds <= 0 {
		return 30
	}
	return cfg.TimeoutSeconds
}
