package app

import (
	"net/http"

	"chama-ledger-go/internal/config"
	"chama-ledger-go/internal/db"
	memberdomain "chama-ledger-go/internal/domain/member"
	monthdomain "chama-ledger-go/internal/domain/month"
	paymentdomain "chama-ledger-go/internal/domain/payment"
	"chama-ledger-go/internal/repository/inmemory"
	memberrepo "chama-ledger-go/internal/repository/postgres/member"
	monthrepo "chama-ledger-go/internal/repository/postgres/month"
	paymentrepo "chama-ledger-go/internal/repository/postgres/payment"
	"chama-ledger-go/internal/transport/httpserver"
	"chama-ledger-go/internal/transport/httpserver/handler"
	"chama-ledger-go/pkg/logger"
	"gorm.io/gorm"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	log.Info("app: initializing database")
	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return nil, err
	}

	log.Info("app: applying migrations")
	if err := db.Migrate(dbConn); err != nil {
		return nil, err
	}

	members := memberdomain.NewService(memberrepo.NewPostgres(dbConn))
	months := monthdomain.NewService(monthrepo.NewPostgres(dbConn))
	payments := paymentdomain.NewService(
		paymentrepo.NewPostgres(dbConn),
		members,
		months,
		inmemory.NewInMemoryOptionsCache(),
		cfg.EntryOptionsTTL,
	)

	log.Info("app: initializing router")
	handlers := handler.New(members, months, payments, log)
	router := httpserver.NewRouter(cfg, handlers)

	log.Info("app: initializing http server")
	srv := httpserver.New(cfg, router)

	return &App{
		cfg:        cfg,
		httpServer: srv,
		db:         dbConn,
	}, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
