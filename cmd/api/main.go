package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	httpadp "loan-ledger/internal/adapter/http"
	"loan-ledger/internal/adapter/middleware"
	repo "loan-ledger/internal/adapter/repository/mysql"
	"loan-ledger/internal/config"
	"loan-ledger/internal/infrastructure/cache"
	"loan-ledger/internal/infrastructure/db"
	"loan-ledger/internal/infrastructure/logger"
	"loan-ledger/internal/infrastructure/security"
	approvalUC "loan-ledger/internal/usecase/approval"
	"loan-ledger/internal/usecase/dashboard"
	loanUC "loan-ledger/internal/usecase/loan"
	paymentUC "loan-ledger/internal/usecase/payment"
	postUC "loan-ledger/internal/usecase/post"
	userUC "loan-ledger/internal/usecase/user"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
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
	if err := db.Migrate(gdb); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	var idempotency echo.MiddlewareFunc
	if cfg.RedisAddr != "" {
		rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			return err
		}
		defer rdb.Close()
		idempotency = middleware.Idempotency(rdb, cfg.IdempotencyTTL(), log.Named("idempotency"))
	} else {
		log.Warn("REDIS_ADDR not set, borrower POSTs are not idempotent")
	}

	users := repo.NewUserRepository(gdb)
	loans := repo.NewLoanRepository(gdb)
	payments := repo.NewPaymentRepository(gdb)
	posts := repo.NewPostRepository(gdb)
	approvals := repo.NewApprovalRepository(gdb)
	tx := repo.NewGormUoW(gdb)

	tokens := security.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	userSvc := userUC.NewUsecase(users, security.NewBcryptHasher(0), tokens, log.Named("user"))

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(
		echomw.Recover(),
		echomw.RequestID(),
		middleware.RequestLogger(log.Named("http")),
		middleware.Session(tokens),
	)
	httpadp.RegisterRoutes(e, httpadp.Handlers{
		Root:      httpadp.NewHandler(dashboard.NewUsecase(users, loans, payments, posts)),
		Auth:      httpadp.NewAuthHandler(userSvc),
		Loans:     httpadp.NewLoanHandler(loanUC.NewUsecase(loans, log.Named("loan"))),
		Payments:  httpadp.NewPaymentHandler(paymentUC.NewUsecase(payments, tx, log.Named("payment"))),
		Posts:     httpadp.NewPostHandler(postUC.NewUsecase(posts, log.Named("post"))),
		Approvals: httpadp.NewApprovalHandler(approvalUC.NewUsecase(approvals, tx, log.Named("approval")), userSvc),
	}, idempotency)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.AppPort
		log.Info("listening", zap.String("addr", addr), zap.String("db_driver", cfg.DBDriver))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
