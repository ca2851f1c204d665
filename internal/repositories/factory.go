package repositories

import (
	"fmt"

	"tokoadmin/internal/config"
	"tokoadmin/internal/models"
	"tokoadmin/pkg/crudclient"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store bundles the repositories selected by configuration.
type Store struct {
	Driver     string
	Products   ProductRepository
	Categories CategoryRepository
	Users      UserRepository
	DB         *gorm.DB
}

// Open builds the catalog and member repositories for cfg.CatalogDriver.
// Members live in the same database for the GORM drivers and in memory
// otherwise.
func Open(cfg config.Config) (*Store, error) {
	switch cfg.CatalogDriver {
	case config.DriverMemory:
		return &Store{
			Driver:     cfg.CatalogDriver,
			Products:   NewMockProductRepository(),
			Categories: NewMockCategoryRepository(),
			Users:      NewMockUserRepository(),
		}, nil

	case config.DriverRemote:
		client, err := crudclient.New(crudclient.Config{
			BaseURL:   cfg.CatalogURL,
			APIKey:    cfg.CatalogAPIKey,
			Namespace: cfg.CatalogNamespace,
			Timeout:   cfg.CatalogTimeout,
		})
		if err != nil {
			return nil, err
		}
		return &Store{
			Driver:     cfg.CatalogDriver,
			Products:   NewRemoteProductRepository(client),
			Categories: NewRemoteCategoryRepository(client),
			Users:      NewMockUserRepository(),
		}, nil

	case config.DriverPostgres, config.DriverSQLite:
		db, err := OpenDatabase(cfg.CatalogDriver, cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		return &Store{
			Driver:     cfg.CatalogDriver,
			Products:   NewGORMProductRepository(db),
			Categories: NewGORMCategoryRepository(db),
			Users:      NewGORMUserRepository(db),
			DB:         db,
		}, nil

	default:
		return nil, fmt.Errorf("unknown catalog driver: %s", cfg.CatalogDriver)
	}
}

// OpenDatabase connects GORM with the named driver and migrates the schema.
func OpenDatabase(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case config.DriverPostgres:
		dialector = postgres.Open(dsn)
	case config.DriverSQLite:
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.Category{}, &models.User{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return db, nil
}

// Close releases the database connection, if any.
func (s *Store) Close() error {
	if s.DB == nil {
		return nil
	}
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
