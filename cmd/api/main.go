package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"marketplace-api/internal/bus"
	"marketplace-api/internal/config"
	"marketplace-api/internal/db"
	"marketplace-api/internal/httpserver"
	"marketplace-api/internal/mailer"
	"marketplace-api/internal/metrics"
	"marketplace-api/internal/notifier"
	"marketplace-api/internal/payment"
	cartrepo "marketplace-api/internal/repository/cart"
	collectionrepo "marketplace-api/internal/repository/collection"
	notificationrepo "marketplace-api/internal/repository/notification"
	orderrepo "marketplace-api/internal/repository/order"
	productrepo "marketplace-api/internal/repository/product"
	tokenstore "marketplace-api/internal/repository/token"
	userrepo "marketplace-api/internal/repository/user"
	cartsvc "marketplace-api/internal/service/cart"
	collectionsvc "marketplace-api/internal/service/collection"
	notificationsvc "marketplace-api/internal/service/notification"
	ordersvc "marketplace-api/internal/service/order"
	paymentsvc "marketplace-api/internal/service/payment"
	productsvc "marketplace-api/internal/service/product"
	usersvc "marketplace-api/internal/service/user"
	"marketplace-api/internal/worker"
	"marketplace-api/pkg/logger"

	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Options{Service: "api"}).Error("load config", "error", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{Service: "api", Level: cfg.LogLevel})

	ctx := context.Background()
	gdb, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		log.Error("connect db", "error", err)
		os.Exit(1)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	defer rdb.Close()

	m := metrics.Default()
	eventBus := bus.New(log, m)

	userRepo := userrepo.NewGorm(gdb)
	productRepo := productrepo.NewGorm(gdb)
	collectionRepo := collectionrepo.NewGorm(gdb)
	cartRepo := cartrepo.NewGorm(gdb)
	orderRepo := orderrepo.NewGorm(gdb)
	notificationRepo := notificationrepo.NewGorm(gdb)
	tokens := tokenstore.NewRedis(rdb)

	mail := mailer.NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom)
	notifier.New(userRepo, notificationRepo, mail).Register(eventBus)

	gateway := payment.NewSimulated(payment.Mode(cfg.PaymentMode))

	userService := usersvc.New(userRepo, tokens, eventBus, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	productService := productsvc.New(productRepo, eventBus)
	collectionService := collectionsvc.New(collectionRepo, productRepo)
	cartService := cartsvc.New(cartRepo, productRepo)
	orderService := ordersvc.New(orderRepo, cartRepo)
	paymentService := paymentsvc.New(orderRepo, gateway, cfg.Currency)
	notificationService := notificationsvc.New(notificationRepo)

	scheduler := worker.NewScheduler(log)
	expirySweeper := worker.NewExpirySweeper(productRepo, eventBus, log, m)
	passwordSweeper := worker.NewPasswordSweeper(userRepo, mail, log, m, cfg.PasswordMaxAge)
	if err := scheduler.Add(cfg.ExpirySweepSpec, "expiry", expirySweeper); err != nil {
		log.Error("schedule expiry sweep", "error", err)
		os.Exit(1)
	}
	if err := scheduler.Add(cfg.PasswordSweepSpec, "password", passwordSweeper); err != nil {
		log.Error("schedule password sweep", "error", err)
		os.Exit(1)
	}
	scheduler.Start()

	srv := httpserver.New(cfg.HTTPAddr, httpserver.Deps{
		Logger:        log,
		DB:            gdb,
		Users:         userService,
		Products:      productService,
		Collections:   collectionService,
		Carts:         cartService,
		Orders:        orderService,
		Payments:      paymentService,
		Notifications: notificationService,
		Bus:           eventBus,
	})

	serverErr := make(chan error, 1)
	go func() {
		log.Info("starting http server", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		log.Info("shutting down", "signal", sig.String())
	case err := <-serverErr:
		log.Error("server error", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
	scheduler.Stop()
	eventBus.Drain()
	log.Info("server stopped")
}
