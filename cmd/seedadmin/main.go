// Command seedadmin creates the first admin account, or resets its password
// when the username already exists.
//
//	go run ./cmd/seedadmin -username admin -password 'rahasia123' -name 'Pemilik Toko'
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload" // Autoload .env file.
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/simplepos/pos-api/internal/config"
	"github.com/simplepos/pos-api/internal/db"
	"github.com/simplepos/pos-api/internal/domain"
	"github.com/simplepos/pos-api/internal/logger"
	"github.com/simplepos/pos-api/internal/pkg/idgen"
	"github.com/simplepos/pos-api/internal/repository/dao"
)

func main() {
	configPath := flag.String("config", "./cmd/app/config.yml", "path to config.yml")
	username := flag.String("username", envOr("SEED_ADMIN_USERNAME", "admin"), "admin username")
	password := flag.String("password", os.Getenv("SEED_ADMIN_PASSWORD"), "admin password")
	name := flag.String("name", envOr("SEED_ADMIN_NAME", "Administrator"), "display name")
	flag.Parse()

	if err := run(*configPath, *username, *password, *name); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath, username, password, name string) error {
	if len(username) < 3 {
		return fmt.Errorf("username must be at least 3 characters")
	}
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters (set -password or SEED_ADMIN_PASSWORD)")
	}

	conf, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config.Load -> %w", err)
	}
	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("logger.Init -> %w", err)
	}

	var postgresDB *gorm.DB
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		postgresDB, err = db.OpenPostgresWithURL(dbURL)
	} else {
		postgresDB, err = db.OpenPostgres(conf.Postgres)
	}
	if err != nil {
		return fmt.Errorf("db.OpenPostgres -> %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("bcrypt.GenerateFromPassword -> %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err = dao.NewEmployeeDAO(postgresDB).Upsert(ctx, dao.Employee{
		ID:       idgen.LoadGenerator(conf.API.Timezone).EmployeeID(),
		Name:     name,
		Username: username,
		Password: string(hash),
		Role:     string(domain.RoleAdmin),
	})
	if err != nil {
		return fmt.Errorf("employeeDAO.Upsert -> %w", err)
	}

	zap.L().Info("admin account ready", zap.String("username", username))

	return nil
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return fallback
}
