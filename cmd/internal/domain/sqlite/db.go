package sqlite

import (
	"context"
	"embed"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/gommon/log"
	"github.com/pressly/goose/v3"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

//go:embed migrations/*.sql
var migrations embed.FS

const migrationsDir = "migrations"

type Options struct {
	Path            string
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	LogQueries      bool
}

// Init opens the database file. Foreign keys are switched on so deleting a
// note or tag also drops its association rows.
func Init(opts Options) (*gorm.DB, error) {
	dsn := opts.Path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

	cfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
	if opts.LogQueries {
		cfg.Logger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(sqlite.Open(dsn), cfg)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", opts.Path, err)
	}

	maxOpen := opts.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 1
	}
	lifetime := opts.ConnMaxLifetime
	if lifetime <= 0 {
		lifetime = time.Hour
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxOpen)
	sqlDB.SetConnMaxLifetime(lifetime)

	return db, nil
}

// Migrate applies the embedded changelog. Direction is one of up, down
// or status.
func Migrate(ctx context.Context, db *gorm.DB, direction string) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	goose.SetBaseFS(migrations)
	goose.SetLogger(gooseLogger{})
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}

	switch direction {
	case "", "up":
		err = goose.UpContext(ctx, sqlDB, migrationsDir)
	case "down":
		err = goose.DownContext(ctx, sqlDB, migrationsDir)
	case "status":
		err = goose.StatusContext(ctx, sqlDB, migrationsDir)
	default:
		return fmt.Errorf("unknown migration direction %q", direction)
	}
	if err != nil {
		return fmt.Errorf("migrate %s: %w", direction, err)
	}
	return nil
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// gooseLogger routes migration output through the application logger.
type gooseLogger struct{}

func (gooseLogger) Fatalf(format string, v ...any) { log.Fatalf(format, v...) }
func (gooseLogger) Printf(format string, v ...any) { log.Infof(format, v...) }
