package db

import (
	"fmt"
	"strings"
	"time"

	"github.com/planora/inquiry-backend/internal/config"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// BuildDSN assembles the MySQL DSN. DB_HOST may already carry a tcp()/unix()
// wrapper; a Cloud SQL instance name takes precedence when set.
func BuildDSN(cfg *config.Config) string {
	addr := cfg.DBHost
	switch {
	case cfg.InstanceConnectionName != "":
		addr = fmt.Sprintf("unix(/cloudsql/%s)", cfg.InstanceConnectionName)
	case strings.HasPrefix(addr, "tcp(") || strings.HasPrefix(addr, "unix("):
		// already wrapped
	case strings.HasPrefix(addr, "/"):
		addr = fmt.Sprintf("unix(%s)", addr)
	default:
		addr = fmt.Sprintf("tcp(%s:%s)", addr, cfg.DBPort)
	}
	return fmt.Sprintf("%s:%s@%s/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.DBUser, cfg.DBPassword, addr, cfg.DBName)
}

func Connect(cfg *config.Config) (*gorm.DB, error) {
	gdb, err := gorm.Open(mysql.Open(BuildDSN(cfg)), &gorm.Config{
		PrepareStmt: true,
		Logger:      logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(10)

	return gdb, nil
}
