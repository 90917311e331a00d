package database

import (
	"fmt"

	"ruha/config"
	"ruha/logger"
	"ruha/models"
	"ruha/models/athenaeum"
	"ruha/models/cosmos"
	"ruha/models/grimoire"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DbInstance struct holds the database connection instance
type DbInstance struct {
	Db *gorm.DB
}

// Database is the global database instance
var Database DbInstance

// ConnectDb opens the configured store, runs migrations and saves the handle globally.
func ConnectDb() {
	cfg := config.AppConfig

	db, err := Open(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to connect to database", "driver", cfg.DBDriver, "error", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Log.Fatal("Failed to get database instance", "error", err)
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(0)

	if err := Migrate(db); err != nil {
		logger.Log.Fatal("Migration failed", "error", err)
	}

	Database = DbInstance{Db: db}
}

// Open builds a gorm handle for cfg.DBDriver.
func Open(cfg *config.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Warn)}

	switch cfg.DBDriver {
	case "postgres", "":
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
		)
		return gorm.Open(postgres.Open(dsn), gormCfg)
	case "mysql":
		dsn := fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName,
		)
		return gorm.Open(mysql.Open(dsn), gormCfg)
	case "sqlite":
		return OpenSqlite(cfg.DBName + ".db")
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}

// OpenSqlite opens a sqlite store. Tests pass an in-memory DSN.
func OpenSqlite(dsn string) (*gorm.DB, error) {
	return gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
}

// Migrate creates or updates every table the service owns.
func Migrate(db *gorm.DB) error {
	logger.Log.Info("Running migrations")

	err := db.AutoMigrate(
		&models.User{},
		&models.LoginTracking{},
		&athenaeum.Course{},
		&athenaeum.Lesson{},
		&athenaeum.LessonCompletion{},
		&athenaeum.Enrollment{},
		&athenaeum.JournalEntry{},
		&athenaeum.Badge{},
		&athenaeum.UserBadge{},
		&athenaeum.Certificate{},
		&grimoire.Grimoire{},
		&grimoire.Entry{},
		&cosmos.Deity{},
		&cosmos.SacredEvent{},
		&cosmos.YearlyConfiguration{},
	)
	if err != nil {
		return err
	}

	logger.Log.Info("Migrations completed")
	return nil
}
