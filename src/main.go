package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/api"
	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/config"
	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/db"
	sqldb "github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/db/sql"
	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/events"
	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/events/amqp"
	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/events/kafka"
	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/handlers"
	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/ledger"
	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	level, _ := logrus.ParseLevel(cfg.LogLevel)
	log.SetLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.RunMigrations {
		if err := db.RunMigrations(cfg.DatabaseURL); err != nil {
			log.WithError(err).Fatal("migrations failed")
		}
		log.Info("migrations applied")
	}

	// Connect to database
	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("DB connection failed")
	}
	defer pool.Close()

	publisher, err := newPublisher(cfg)
	if err != nil {
		log.WithError(err).WithField("backend", cfg.EventsBackend).Fatal("events publisher setup failed")
	}
	defer publisher.Close()

	users, err := db.NewUserCache(cfg.UserCacheTTL, func(ctx context.Context, id int64) (*models.User, error) {
		return sqldb.GetUserByID(ctx, pool, id)
	})
	if err != nil {
		log.WithError(err).Fatal("user cache setup failed")
	}
	defer users.Close()

	// Router
	router := api.NewRouter(api.Deps{
		Pool:           pool,
		Ledger:         ledger.New(sqldb.NewLedgerStore(pool), publisher, log),
		Users:          users,
		Tokens:         handlers.TokenConfig{Secret: cfg.JWTSecret, TTL: cfg.JWTTTL},
		AllowedOrigins: cfg.AllowedOrigins,
		ReadOnly:       cfg.ReadOnly,
		Log:            log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.WithFields(logrus.Fields{"port": cfg.Port, "events_backend": cfg.EventsBackend}).Info("API server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.WithError(err).Error("server stopped with error")
		os.Exit(1)
	}
}

func newPublisher(cfg *config.Config) (events.Publisher, error) {
	switch cfg.EventsBackend {
	case "kafka":
		return kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic), nil
	case "amqp":
		return amqp.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
	default:
		return events.Noop{}, nil
	}
}
