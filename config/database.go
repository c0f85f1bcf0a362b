package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// ConnectDatabase opens the MySQL pool from the DB_* environment. The DSN can
// also be supplied whole through DSN, which wins when set.
func ConnectDatabase() (*gorm.DB, error) {
	dsn := os.Getenv("DSN")
	if dsn == "" {
		dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4",
			envOr("DB_USER", "kpi_user"),
			envOr("DB_PASSWORD", "kpi_pass"),
			envOr("DB_HOST", "127.0.0.1"),
			envOr("DB_PORT", "3306"),
			envOr("DB_NAME", "kpi_db"),
		)
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: gormLog(),
		NamingStrategy: schema.NamingStrategy{
			SingularTable: true,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if sqlDB, derr := db.DB(); derr == nil && sqlDB != nil {
		sqlDB.SetMaxOpenConns(intFromEnv("DB_MAX_OPEN_CONNS", 20))
		sqlDB.SetMaxIdleConns(intFromEnv("DB_MAX_IDLE_CONNS", 10))
		sqlDB.SetConnMaxLifetime(time.Duration(intFromEnv("DB_CONN_MAX_LIFETIME_SECONDS", 300)) * time.Second)
	}

	return db, nil
}

func gormLog() logger.Interface {
	return logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			Colorful:      false,
			LogLevel:      logger.Error,
			SlowThreshold: time.Second,
		},
	)
}

func intFromEnv(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
