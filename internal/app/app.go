package app

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/x67digital/raffle/internal/cache"
	"github.com/x67digital/raffle/internal/config"
	"github.com/x67digital/raffle/internal/handlers"
	"github.com/x67digital/raffle/internal/notify"
	"github.com/x67digital/raffle/internal/pg"
	"github.com/x67digital/raffle/internal/repo"
	"github.com/x67digital/raffle/internal/service"
	"github.com/x67digital/raffle/pkg/auth"
	"github.com/x67digital/raffle/pkg/clients"
	"github.com/x67digital/raffle/pkg/logger"
)

const listingCacheTTL = 30 * time.Second

type ApplicationI interface {
	Start(ctx context.Context) error
	Wait(ctx context.Context, cancel context.CancelFunc) error
}

type Application struct {
	cfg  *config.Config
	api  *handlers.Handlers
	srv  *service.Services
	repo *repo.Repositories

	publisher *notify.AMQPPublisher
	consumer  *notify.Consumer

	errCh chan error
	wg    sync.WaitGroup
	ready bool
}

func New() *Application {
	return &Application{
		errCh: make(chan error),
	}
}

func (a *Application) Start(ctx context.Context) error {
	cfg := config.New()

	err := logger.InitLogger(cfg)
	if err != nil {
		return fmt.Errorf("can't init logger: %w", err)
	}

	pool, err := getPgxpool(ctx, cfg)
	if err != nil {
		zap.L().Error("build pgx pool failed: ", zap.Error(err))
		return fmt.Errorf("can't build pgx pool: %w", err)
	}
	if err := pg.RunMigrations(pool); err != nil {
		zap.L().Error("migrations failed: ", zap.Error(err))
		return fmt.Errorf("can't run migrations: %w", err)
	}
	txManager := pg.NewTXManager(pool)

	auth.SetSecret(cfg.JWTSecret)

	conn := pg.New(pool)
	a.cfg = cfg
	a.repo = repo.New(conn, txManager)

	listingCache := cache.New(cfg.RedisAddr, listingCacheTTL)
	notifier, err := a.buildNotifier(cfg)
	if err != nil {
		return err
	}

	a.srv = service.New(a.repo, txManager, listingCache, notifier)
	a.api = handlers.New(a.srv)

	if err = a.startHTTPServer(ctx); err != nil {
		return fmt.Errorf("can't start http server: %w", err)
	}

	a.startConsumer(ctx)

	a.ready = true
	zap.L().Info("all systems started successfully")
	return nil
}

// buildNotifier wires the AMQP publisher and the consumer that delivers
// emails. Without a broker URL both sides degrade to logging.
func (a *Application) buildNotifier(cfg *config.Config) (service.Notifier, error) {
	if cfg.AMQPURL == "" {
		zap.L().Info("no AMQP broker configured, notifications disabled")
		return notify.NopPublisher{}, nil
	}

	publisher, err := notify.NewAMQPPublisher(cfg.AMQPURL)
	if err != nil {
		zap.L().Error("broker connect failed: ", zap.Error(err))
		return nil, fmt.Errorf("can't connect to broker: %w", err)
	}
	a.publisher = publisher

	var mailer notify.Mailer
	if cfg.EmailAPIKey != "" {
		mailer = notify.NewAPIMailer(cfg.EmailAPIURL, cfg.EmailAPIKey, cfg.SenderEmail, clients.NewHTTPClient())
	} else {
		zap.L().Info("no email API key configured, emails are logged only")
		mailer = notify.LogMailer{}
	}
	a.consumer = notify.NewConsumer(cfg.AMQPURL, mailer)

	return publisher, nil
}

func getPgxpool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	cfgpool, err := pgxpool.ParseConfig(cfg.Database)
	if err != nil {
		return nil, err
	}
	dbpool, err := pgxpool.NewWithConfig(ctx, cfgpool)
	if err != nil {
		return nil, err
	}
	if err = dbpool.Ping(ctx); err != nil {
		return nil, err
	}
	return dbpool, nil
}

func (a *Application) startHTTPServer(ctx context.Context) error {
	router := chi.NewRouter()
	a.api.InitRoutes(router)
	server := http.Server{
		Addr:    a.cfg.Address,
		Handler: router,
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-ctx.Done()

		sCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(sCtx)
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		zap.L().Info("starting http server on port", zap.String("port", a.cfg.Address))
		if err := server.ListenAndServe(); err != nil {
			a.errCh <- fmt.Errorf("http server exited with error: %w", err)
		}
	}()

	return nil
}

func (a *Application) startConsumer(ctx context.Context) {
	if a.consumer == nil {
		return
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.consumer.Start(ctx)
	}()
}

func (a *Application) Wait(ctx context.Context, cancel context.CancelFunc) error {
	var appErr error

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()

		for err := range a.errCh {
			cancel()
			zap.L().Error(err.Error())
			appErr = err
		}
	}()

	<-ctx.Done()
	a.wg.Wait()
	if a.publisher != nil {
		a.publisher.Close()
	}
	close(a.errCh)
	wg.Wait()

	return appErr
}
