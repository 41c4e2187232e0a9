package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"intersify/internal/app"
	"intersify/internal/config"
	"intersify/internal/database"
	apphttp "intersify/internal/http"
	"intersify/internal/http/handlers"
	httpmw "intersify/internal/http/middleware"
	"intersify/internal/mail"
	"intersify/internal/notify"
	"intersify/internal/observability"
	"intersify/internal/realtime"
	"intersify/internal/repository/postgres"
	"intersify/internal/security"
	"intersify/internal/storage"
)

func main() {
	cfg := config.Load()
	logger := observability.NewLogger()

	db := database.NewPostgres(database.PostgresConfig{
		DSN:             cfg.PostgresDSN,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxIdle:     cfg.DBConnMaxIdle,
		ConnMaxLifetime: cfg.DBConnMaxLife,
	})
	defer db.Close()

	redisClient := database.NewRedis(cfg.RedisAddr, cfg.RedisPassword)
	if redisClient != nil {
		defer redisClient.Close()
	}

	userRepo := postgres.NewUserRepository(db)
	postingRepo := postgres.NewPostingRepository(db)
	applicationRepo := postgres.NewApplicationRepository(db)
	certificateRepo := postgres.NewCertificateRepository(db)

	hub := realtime.NewHub(observability.Component(logger, "realtime"))
	emailSender := mail.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
	dispatcher := notify.NewDispatcher(emailSender, hub, cfg.NotifyTimeout, observability.Component(logger, "notify"))

	lifecycleService := app.NewLifecycleService(applicationRepo, postingRepo, userRepo, dispatcher, observability.Component(logger, "lifecycle"))
	certificateService := app.NewCertificateService(certificateRepo, applicationRepo, postingRepo, userRepo, storage.NewLocalStore(cfg.CertificateDir))

	var limiter httpmw.Limiter
	if redisLimiter := httpmw.NewRedisLimiter(redisClient, "ratelimit"); redisLimiter != nil {
		limiter = redisLimiter
	} else {
		limiter = httpmw.NewMemoryLimiter()
	}

	jwtProvider := security.NewJWTProvider(cfg.JWTSecret)
	router := apphttp.NewRouter(apphttp.RouterDependencies{
		ApplicationHandler: handlers.NewApplicationHandler(lifecycleService, limiter),
		CertificateHandler: handlers.NewCertificateHandler(certificateService),
		WSHandler:          handlers.NewWSHandler(hub),
		AuthMiddleware:     httpmw.NewAuthMiddleware(jwtProvider),
		Logger:             observability.Component(logger, "http"),
		RequestTimeout:     cfg.RequestTimeout,
	})

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", server.Addr).Msg("API started")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal(err)
	}
	dispatcher.Wait()
}
