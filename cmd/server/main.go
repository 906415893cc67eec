package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	adminauth "seventytwo/internal/admin/auth"
	adminhandler "seventytwo/internal/admin/handler"
	"seventytwo/internal/document/blob"
	documenthandler "seventytwo/internal/document/handler"
	documentservice "seventytwo/internal/document/service"
	httpapi "seventytwo/internal/http"
	"seventytwo/internal/notification"
	"seventytwo/internal/platform/config"
	"seventytwo/internal/platform/httpserver"
	"seventytwo/internal/platform/logger"
	"seventytwo/internal/platform/metrics"
	"seventytwo/internal/platform/postgres"
	"seventytwo/internal/platform/ratelimit"
	"seventytwo/internal/platform/redis"
	"seventytwo/internal/receipt"
	registrationservice "seventytwo/internal/registration/service"
	documentstore "seventytwo/internal/registration/store/document"
	registrationstore "seventytwo/internal/registration/store/registration"
	wizardhandler "seventytwo/internal/wizard/handler"
	wizardservice "seventytwo/internal/wizard/service"
	wizardstore "seventytwo/internal/wizard/store"
	"seventytwo/pkg/platform/audit"
	auditstore "seventytwo/pkg/platform/audit/store"
	auditworker "seventytwo/pkg/platform/audit/worker"
)

// main wires dependencies by configuration: empty Postgres, Redis, or blob
// settings select in-memory implementations so the portal runs with zero
// infrastructure in development.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	// Persistence.
	var (
		registrations registrationstore.Store
		documents     documentservice.DocumentStore
	)
	if cfg.PostgresURL != "" {
		if err := postgres.Migrate(cfg.PostgresURL); err != nil {
			log.Error("migrations failed", "error", err)
			os.Exit(1)
		}
		pool, err := postgres.Connect(ctx, cfg.PostgresURL)
		if err != nil {
			log.Error("postgres connection failed", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		registrations = registrationstore.NewPostgres(pool)
		documents = documentstore.NewPostgres(pool)
	} else {
		log.Info("no postgres configured, using in-memory stores")
		registrations = registrationstore.NewInMemory()
		documents = documentstore.NewInMemory()
	}
	cached := registrationstore.NewCached(registrations, cfg.LookupCacheTTL)

	var (
		drafts   wizardstore.DraftStore
		receipts receipt.Store
		checks   []httpapi.HealthChecker
	)
	if cfg.RedisURL != "" {
		client, err := redis.New(cfg.RedisURL)
		if err != nil {
			log.Error("redis connection failed", "error", err)
			os.Exit(1)
		}
		defer client.Close()
		drafts = wizardstore.NewRedis(client.Client, cfg.DraftTTL)
		receipts = receipt.NewRedis(client.Client, cfg.ReceiptTTL)
		checks = append(checks, client)
	} else {
		log.Info("no redis configured, using in-memory draft and receipt stores")
		drafts = wizardstore.NewInMemory()
		receipts = receipt.NewInMemory()
	}

	var blobs blob.Store
	if cfg.BlobEndpoint != "" {
		minioStore, err := blob.NewMinio(ctx, blob.MinioConfig{
			Endpoint:  cfg.BlobEndpoint,
			AccessKey: cfg.BlobAccessKey,
			SecretKey: cfg.BlobSecretKey,
			Bucket:    cfg.BlobBucket,
			UseSSL:    cfg.BlobUseSSL,
		})
		if err != nil {
			log.Error("blob storage connection failed", "error", err)
			os.Exit(1)
		}
		blobs = minioStore
	} else {
		log.Info("no blob storage configured, using in-memory store")
		blobs = blob.NewMemory()
	}

	// Audit trail: services emit onto a channel, a worker persists.
	auditInbox := make(chan audit.Event, 256)
	emitter := audit.NewEmitter(auditInbox)
	worker := auditworker.NewWorker(auditstore.NewMemory(), auditInbox)
	go func() {
		if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("audit worker stopped", "error", err)
		}
	}()

	// Email: without EmailJS credentials, sends are recorded in memory so
	// the decision flow still works in development.
	var sender notification.Sender
	if cfg.EmailServiceID != "" {
		sender = notification.NewEmailJS(cfg.EmailBaseURL, cfg.EmailServiceID, cfg.EmailTemplateID, cfg.EmailPublicKey)
	} else {
		log.Info("no email service configured, recording emails in memory")
		sender = notification.NewRecorder()
	}
	notifier := notification.New(sender, cfg.PortalBaseURL, log, m, emitter)

	// Services.
	regService := registrationservice.New(cached, documents, notifier, log, m, emitter)
	wizService := wizardservice.New(drafts, regService, log, m)
	docService := documentservice.New(cached, documents, blobs, receipts, log, m, emitter)

	// Admin auth. Without a configured hash the password equals the
	// username, acceptable only in development.
	passwordHash := cfg.AdminPasswordHash
	if passwordHash == "" {
		var err error
		passwordHash, err = adminauth.HashPassword(cfg.AdminUsername)
		if err != nil {
			log.Error("failed to hash development admin password", "error", err)
			os.Exit(1)
		}
		log.Warn("no admin password hash configured, using development credentials")
	}
	authenticator := adminauth.New(cfg.AdminUsername, passwordHash, cfg.AdminJWTSigningKey, 12*time.Hour)

	router := httpapi.NewRouter(httpapi.Deps{
		Wizard:      wizardhandler.New(wizService, log),
		Documents:   documenthandler.New(docService, log),
		Admin:       adminhandler.New(regService, authenticator, log),
		AdminAuth:   authenticator,
		Checks:      checks,
		RateLimiter: ratelimit.NewSlidingWindow(),
		RateLimit:   cfg.RateLimit,
		RateWindow:  cfg.RateWindow,
		Logger:      log,
	})

	srv := httpserver.New(cfg.Addr, router)
	log.Info("starting registration portal", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
