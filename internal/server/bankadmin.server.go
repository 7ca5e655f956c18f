package server

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"bank-admin-service/internal/authz"
	"bank-admin-service/internal/cache"
	"bank-admin-service/internal/config"
	hrest "bank-admin-service/internal/handler/rest"
	"bank-admin-service/internal/middleware"
	publisher "bank-admin-service/internal/pub"
	"bank-admin-service/internal/repository"
	"bank-admin-service/internal/router"
	"bank-admin-service/internal/usecase"
)

type Server struct {
	httpServer *http.Server
	db         *pgxpool.Pool
	rdb        *redis.Client
	logger     *zap.Logger
}

func New(cfg config.AppConfig, logger *zap.Logger) (*Server, error) {
	db, err := config.ConnectDB(logger)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
	})

	accountRepo := repository.NewAccountRepo(db)
	userRepo := repository.NewUserRepo(db)
	transactionRepo := repository.NewTransactionRepo(db)
	ledgerRepo := repository.NewLedgerRepo(db, accountRepo)
	statementRepo := repository.NewStatementRepo(db)
	analyticsRepo := repository.NewAnalyticsRepo(db)
	adminRepo := repository.NewAdminRepo(db)

	events := publisher.NewLedgerEventPublisher(rdb, logger)
	policy := authz.NewRolePolicy()
	store := cache.New(rdb)

	authUC := usecase.NewAuthUsecase(adminRepo, rdb, events, cfg.SessionTTL, logger)
	accountUC := usecase.NewAccountUsecase(accountRepo, userRepo, transactionRepo, policy, logger)
	userUC := usecase.NewUserUsecase(userRepo, policy)
	ledgerUC := usecase.NewLedgerUsecase(ledgerRepo, policy, store, events, logger)
	statementUC := usecase.NewStatementUsecase(statementRepo, accountRepo, policy, store)
	analyticsUC := usecase.NewAnalyticsUsecase(analyticsRepo, policy, store)

	seedCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := authUC.SeedInitialAdmin(seedCtx, cfg.SeedAdminUsername, cfg.SeedAdminPassword, cfg.SeedAdminFullName); err != nil {
		logger.Warn("admin seeding failed", zap.Error(err))
	}

	auth := middleware.NewAuthMiddleware(authUC, logger)

	r := router.New(
		auth,
		hrest.NewAuthHandler(authUC),
		hrest.NewAccountHandler(accountUC),
		hrest.NewUserHandler(userUC),
		hrest.NewLedgerHandler(ledgerUC),
		hrest.NewStatementHandler(statementUC),
		hrest.NewAnalyticsHandler(analyticsUC),
	)

	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      r,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  30 * time.Second,
		},
		db:     db,
		rdb:    rdb,
		logger: logger,
	}, nil
}

func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	defer s.db.Close()
	defer func() {
		if err := s.rdb.Close(); err != nil {
			s.logger.Warn("redis close failed", zap.Error(err))
		}
	}()
	return s.httpServer.Shutdown(ctx)
}
