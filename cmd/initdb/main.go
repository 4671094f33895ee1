// Command initdb creates (or with -reset, recreates) the schema and seeds the
// default administrator from ADMIN_EMAIL, ADMIN_PASSWORD and ADMIN_FULLNAME.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	repo "loan-ledger/internal/adapter/repository/mysql"
	"loan-ledger/internal/config"
	"loan-ledger/internal/infrastructure/db"
	"loan-ledger/internal/infrastructure/logger"
	"loan-ledger/internal/infrastructure/security"
	userUC "loan-ledger/internal/usecase/user"
)

func main() {
	reset := flag.Bool("reset", false, "drop every table before migrating (destroys all data)")
	seed := flag.Bool("seed-admin", true, "create or promote the default admin account")
	flag.Parse()

	if err := run(*reset, *seed); err != nil {
		fmt.Fprintln(os.Stderr, "initdb:", err)
		os.Exit(1)
	}
}

func run(reset, seed bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.ValidateStore(); err != nil {
		return err
	}
	log, err := logger.New(cfg.LogLevel, cfg.Development())
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	gdb, err := db.Open(cfg)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if reset {
		log.Warn("dropping all tables", zap.String("db_driver", cfg.DBDriver))
		err = db.Reset(gdb)
	} else {
		err = db.Migrate(gdb)
	}
	if err != nil {
		return fmt.Errorf("schema: %w", err)
	}
	log.Info("schema ready", zap.Bool("reset", reset))

	if !seed {
		return nil
	}
	if cfg.AdminPassword == "" {
		return errors.New("ADMIN_PASSWORD is required to seed the admin account")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	users := userUC.NewUsecase(repo.NewUserRepository(gdb), security.NewBcryptHasher(0), nil, log)
	admin, err := users.SeedAdmin(ctx, userUC.CreateAdminInput{
		FullName: cfg.AdminFullName,
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
	})
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	log.Info("admin ready", zap.Uint64("user_id", admin.ID), zap.String("email", admin.Email))
	return nil
}
