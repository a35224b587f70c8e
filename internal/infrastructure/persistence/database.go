package persistence

import (
	"fmt"
	"time"

	"github.com/chickenviken/backend/internal/domain/catalog"
	"github.com/chickenviken/backend/internal/domain/identity"
	"github.com/chickenviken/backend/internal/domain/ordering"
	"github.com/chickenviken/backend/internal/domain/settings"
	"github.com/chickenviken/backend/internal/infrastructure/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database wraps one namespace's connection
type Database struct {
	DB *gorm.DB
}

// Namespaces holds the two database handles. The admin side owns products,
// admin accounts and settings; the user side owns customers and orders.
// Keeping them on separate connections is what enforces the split.
type Namespaces struct {
	Admin *Database
	User  *Database
}

// NewDatabase creates a new database connection with the given configuration
func NewDatabase(cfg *config.DatabaseConfig) (*Database, error) {
	return newDatabaseWithLogLevel(cfg, logger.Silent)
}

func newDatabaseWithLogLevel(cfg *config.DatabaseConfig, logLevel logger.LogLevel) (*Database, error) {
	dsn := cfg.DSN()
	gormLogger := logger.Default.LogMode(logLevel)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Database{DB: db}, nil
}

// NewNamespaces opens both namespace databases
func NewNamespaces(cfg *config.Config) (*Namespaces, error) {
	admin, err := NewDatabase(&cfg.DatabaseAdmin)
	if err != nil {
		return nil, fmt.Errorf("admin namespace: %w", err)
	}
	user, err := NewDatabase(&cfg.DatabaseUser)
	if err != nil {
		admin.Close()
		return nil, fmt.Errorf("user namespace: %w", err)
	}
	return &Namespaces{Admin: admin, User: user}, nil
}

// Migrate runs schema migrations on both namespaces
func (n *Namespaces) Migrate() error {
	if err := MigrateAdmin(n.Admin.DB); err != nil {
		return fmt.Errorf("admin namespace migration: %w", err)
	}
	if err := MigrateUser(n.User.DB); err != nil {
		return fmt.Errorf("user namespace migration: %w", err)
	}
	return nil
}

// Close closes both namespace connections
func (n *Namespaces) Close() error {
	userErr := n.User.Close()
	if err := n.Admin.Close(); err != nil {
		return err
	}
	return userErr
}

// MigrateAdmin creates the admin-namespace tables
func MigrateAdmin(db *gorm.DB) error {
	return db.AutoMigrate(
		&identity.Admin{},
		&catalog.Product{},
		&settings.StoreSettings{},
	)
}

// MigrateUser creates the user-namespace tables
func MigrateUser(db *gorm.DB) error {
	return db.AutoMigrate(
		&identity.Customer{},
		&ordering.Order{},
		&ordering.OrderItem{},
	)
}

// Close closes the database connection
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// Ping checks if the database connection is alive
func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Ping()
}
