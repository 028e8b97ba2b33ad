package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hotel-marketplace/models"
	"hotel-marketplace/utils"
)

var DB *gorm.DB

func mysqlDSNFromURL(raw string) (string, string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode())
	return dsn, dbName, nil
}

func databaseURL() string {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}
	return raw
}

func resolveMySQLDSN() (string, error) {
	if raw := databaseURL(); raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			dsn, _, err := mysqlDSNFromURL(raw)
			return dsn, err
		}
		return raw, nil
	}

	user := utils.EnvOrDefault("DB_USER", "root")
	pass := utils.EnvOrDefault("DB_PASS", "")
	host := utils.EnvOrDefault("DB_HOST", "127.0.0.1")
	port := utils.EnvOrDefault("DB_PORT", "3306")
	dbName := utils.EnvOrDefault("DB_NAME", "hotel_marketplace")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
}

// postgres accepts both URLs and key=value DSNs as they are
func resolvePostgresDSN() string {
	if raw := databaseURL(); raw != "" {
		return raw
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		utils.EnvOrDefault("DB_HOST", "127.0.0.1"),
		utils.EnvOrDefault("DB_PORT", "5432"),
		utils.EnvOrDefault("DB_USER", "postgres"),
		utils.EnvOrDefault("DB_PASS", ""),
		utils.EnvOrDefault("DB_NAME", "hotel_marketplace"),
	)
}

// Dialector picks the gorm driver from DB_DRIVER (mysql by default).
func Dialector() (gorm.Dialector, error) {
	switch driver := strings.ToLower(utils.EnvOrDefault("DB_DRIVER", "mysql")); driver {
	case "mysql":
		dsn, err := resolveMySQLDSN()
		if err != nil {
			return nil, err
		}
		return mysql.Open(dsn), nil
	case "postgres", "postgresql":
		return postgres.Open(resolvePostgresDSN()), nil
	case "sqlite", "sqlite3":
		return sqlite.Open(utils.EnvOrDefault("SQLITE_PATH", "hotel_marketplace.db")), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (want mysql, postgres or sqlite)", driver)
	}
}

func logLevel(raw string) logger.LogLevel {
	switch strings.ToLower(raw) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

// Migrate creates or updates every table, parents first.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Admin{},
		&models.User{},
		&models.Hotel{},
		&models.RoomType{},
		&models.Booking{},
		&models.LoginLog{},
	)
}

func ConnectDatabase() error {
	dialector, err := Dialector()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logLevel(utils.EnvOrDefault("DB_LOG_LEVEL", "warn")),
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}
	if dialector.Name() == "sqlite" {
		// sqlite serialises writers; one connection avoids "database is locked"
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.SetMaxOpenConns(1)
		}
	}

	if err := Migrate(db); err != nil {
		return err
	}
	DB = db
	return nil
}
