package cli

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"turfbook/internal/booking"
	"turfbook/internal/config"
	"turfbook/internal/db"
	"turfbook/internal/email"
	"turfbook/internal/events"
	"turfbook/internal/logger"
	"turfbook/internal/realtime"
	"turfbook/internal/server"
	"turfbook/internal/turf"
	"turfbook/internal/user"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

func NewServeCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP and WebSocket server",
		Long: `Run migrations, then serve the REST API, the /ws endpoint and the
background workers (email queue, slot fan-out, payment events).

Redis and RabbitMQ are optional. Leave REDIS_ADDR or RABBIT_URL empty to
run without them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts.Config)
		},
	}
}

func runServe(parent context.Context, cfg *config.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("starting turfbook", "port", cfg.Port)
	if cfg.UsesDefaultSecret() {
		logger.Warn("JWT_SECRET is the development default, set it in production")
	}

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := db.RunMigrations(database, cfg.MigrationsPath); err != nil {
		return err
	}

	checks := map[string]server.Pinger{
		"postgres": server.PingFunc(database.PingContext),
	}

	var (
		mailer booking.Mailer
		fanout realtime.Fanout
	)
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.WithError(err).Warn("redis not reachable yet", "addr", cfg.RedisAddr)
		}
		checks["redis"] = server.PingFunc(func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})

		emailSvc := email.New(rdb, email.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			User:     cfg.SMTPUser,
			Pass:     cfg.SMTPPass,
			From:     cfg.EmailFrom,
			FromName: cfg.EmailFromName,
		})
		go emailSvc.Start(ctx)
		go watchQueue(ctx, emailSvc)
		mailer = emailSvc

		fanout = realtime.NewRedisFanout(rdb, cfg.RealtimeChannel)
	} else {
		logger.Warn("REDIS_ADDR empty: emails disabled, slot updates stay in-process")
	}

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.RabbitURL != "" {
		p, err := events.NewPublisher(cfg.RabbitURL, cfg.RabbitExchange)
		if err != nil {
			logger.WithError(err).Warn("event publisher disabled")
		} else {
			defer p.Close()
			publisher = p
		}
	}

	turfSvc := turf.NewService(turf.NewRepository(database))
	hub := realtime.NewHub(turfSvc, fanout)
	go hub.Run(ctx)

	bookingSvc := booking.NewService(booking.NewRepository(database), turfSvc, hub, mailer, publisher)
	userSvc := user.NewService(user.NewRepository(database), cfg.JWTSecret, cfg.SessionTTL)

	if cfg.RabbitURL != "" {
		consumer := events.NewConsumer(events.ConsumerConfig{
			URL:      cfg.RabbitURL,
			Exchange: cfg.RabbitExchange,
			Queue:    cfg.RabbitQueue,
		}, booking.PaymentRecorder(bookingSvc))
		if err := consumer.Connect(); err != nil {
			logger.WithError(err).Warn("payment consumer disabled")
		} else {
			defer consumer.Close()
			go func() {
				if err := consumer.Run(ctx); err != nil {
					logger.WithError(err).Error("payment consumer stopped")
				}
			}()
		}
	}

	srv := server.New(cfg, server.Handlers{
		User:     user.NewHandler(userSvc, cfg.SessionTTL, cfg.CookieSecure),
		Turf:     turf.NewHandler(turfSvc, hub),
		Booking:  booking.NewHandler(bookingSvc),
		Realtime: realtime.NewHandler(hub, bookingSvc, cfg.AllowedOrigins),
		Checks:   checks,
	})

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			logger.WithError(err).Error("http server failed")
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	hub.Shutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
		logger.WithError(err).Error("http shutdown incomplete")
		return err
	}
	logger.Info("server stopped")
	return nil
}

func watchQueue(ctx context.Context, svc *email.Service) {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			svc.QueueLength(ctx)
		}
	}
}
