package db

import (
	"fmt"

	sqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Options selects and parameterizes the backing database.
type Options struct {
	Driver   string // "sqlite" or "mysql"
	Path     string // sqlite file path (or ":memory:")
	Host     string
	Port     int
	Name     string
	User     string
	Password string
}

// DSN builds the MySQL DSN from connection options.
func DSN(opts Options) string {
	cfg := sqldriver.NewConfig()
	cfg.User = opts.User
	cfg.Passwd = opts.Password
	cfg.Net = "tcp"
	cfg.Addr = fmt.Sprintf("%s:%d", opts.Host, opts.Port)
	cfg.DBName = opts.Name
	cfg.ParseTime = true
	return cfg.FormatDSN()
}

// Connect opens a GORM connection per the given options.
func Connect(opts Options) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	switch opts.Driver {
	case "", "sqlite":
		path := opts.Path
		if path == "" {
			path = "impulse.db"
		}
		db, err := gorm.Open(sqlite.Open(path), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("db: open sqlite %s: %w", path, err)
		}
		return db, nil
	case "mysql":
		db, err := gorm.Open(mysql.Open(DSN(opts)), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("db: connect to %s:%d/%s: %w", opts.Host, opts.Port, opts.Name, err)
		}
		return db, nil
	default:
		return nil, fmt.Errorf("db: unknown driver %q", opts.Driver)
	}
}
