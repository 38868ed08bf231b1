package configs

import (
	"fmt"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	maxRetries = 10
	retryDelay = 5 * time.Second
)

func dialector(env ENV) (gorm.Dialector, string, error) {
	switch env.DBDriver {
	case "mysql", "":
		dsn := fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			env.DBUser,
			env.DBPassword,
			env.DBHost,
			env.DBPort,
			env.DBName,
		)
		return mysql.Open(dsn), fmt.Sprintf("mysql://%s@%s:%s/%s", env.DBUser, env.DBHost, env.DBPort, env.DBName), nil
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			env.DBHost, env.DBPort, env.DBUser, env.DBPassword, env.DBName)
		return postgres.Open(dsn), fmt.Sprintf("postgres://%s@%s:%s/%s", env.DBUser, env.DBHost, env.DBPort, env.DBName), nil
	case "sqlite":
		return sqlite.Open(env.DBName), "sqlite://" + env.DBName, nil
	}
	return nil, "", fmt.Errorf("unsupported DB_DRIVER %q", env.DBDriver)
}

func gormConfig(env ENV) *gorm.Config {
	level := logger.Warn
	if !env.IsProduction() {
		level = logger.Info
	}
	return &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true,
	}
}

func OpenConnection(env ENV) (*gorm.DB, error) {

	dial, target, err := dialector(env)
	if err != nil {
		return nil, err
	}

	for i := 0; i < maxRetries; i++ {
		log.Printf("Attempting to connect to database (Attempt %d/%d) at %s", i+1, maxRetries, target)
		db, err := gorm.Open(dial, gormConfig(env))
		if err == nil {

			sqlDB, pingErr := db.DB()
			if pingErr == nil {
				pingErr = sqlDB.Ping()
				if pingErr == nil {
					log.Println("✅ Database connection successful!")
					return db, nil
				}
			}

			log.Printf("❌ Failed to ping database: %v. Retrying in %v...", pingErr, retryDelay)
		} else {
			log.Printf("❌ Failed to open GORM connection: %v. Retrying in %v...", err, retryDelay)
		}

		time.Sleep(retryDelay)
	}

	return nil, fmt.Errorf("failed to connect to the database after %d retries (%s)", maxRetries, target)
}
