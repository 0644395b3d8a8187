package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/jurrebakker123/refurbish-totaal-website-project-sub000/internal/config"
	"github.com/jurrebakker123/refurbish-totaal-website-project-sub000/internal/filestore"
	"github.com/jurrebakker123/refurbish-totaal-website-project-sub000/internal/handlers"
	"github.com/jurrebakker123/refurbish-totaal-website-project-sub000/internal/notify"
	"github.com/jurrebakker123/refurbish-totaal-website-project-sub000/internal/observability"
	"github.com/jurrebakker123/refurbish-totaal-website-project-sub000/internal/pricing"
	"github.com/jurrebakker123/refurbish-totaal-website-project-sub000/internal/store"
	"github.com/jurrebakker123/refurbish-totaal-website-project-sub000/internal/submission"
	"github.com/jurrebakker123/refurbish-totaal-website-project-sub000/internal/wizard"
)

type App struct {
	Env     *handlers.Env
	handler http.Handler
	logger  *zap.Logger

	db       *sql.DB
	redis    *redis.Client
	sessions *wizard.MemoryStore
	sweep    time.Duration
}

// New connects to the backing services and wires the configurator.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &App{logger: logger, sweep: cfg.Session.SweepInterval}

	// 1. PostgreSQL, schema and the built-in pricing tables
	db, err := store.Open(ctx, cfg.Database.DSN, store.PoolConfig{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		return nil, err
	}
	a.db = db
	logger.Info("DB connected")

	if err := ensureSchema(ctx, db); err != nil {
		a.Close()
		return nil, fmt.Errorf("ensureSchema: %w", err)
	}
	pg := store.New(db)
	if cfg.Database.SeedPricing {
		if err := seedPricing(ctx, pg, logger); err != nil {
			a.Close()
			return nil, err
		}
	}

	metrics, err := observability.NewMetrics(nil)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("metrics: %w", err)
	}

	// 2. session store
	sessions, err := a.sessionStore(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	// 3. attachments
	files, err := fileStore(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	// 4. submission pipeline: persist, then notify
	adapter := submission.NewAdapter(pg, notifier(cfg, pg, logger), files, submission.Options{
		Timeout:             cfg.Submission.Timeout,
		NotificationTimeout: cfg.Submission.NotificationTimeout,
		Channels:            channels(cfg.Submission.Channels),
	}, logger, metrics)

	loader := pricing.NewLoader(pg, cfg.Pricing.FetchTimeout, logger, metrics)
	svc := wizard.NewService(sessions, loader, adapter, logger, metrics)

	a.Env = &handlers.Env{
		Wizard:            svc,
		Pricing:           pg,
		Leads:             pg,
		Logger:            logger,
		AdminUser:         cfg.Admin.User,
		AdminPasswordHash: cfg.Admin.PasswordHash,
		MaxUploadBytes:    cfg.Submission.MaxUploadMB << 20,
		SubmitLimiter:     handlers.NewIPLimiter(cfg.Submission.RatePerMinute, cfg.Submission.Burst),
	}

	uploads := ""
	if cfg.Storage.Driver == config.StorageLocal {
		uploads = cfg.Storage.Dir
	}
	a.handler = newHandler(a.Env, routeOptions{
		CORSOrigins:  cfg.Server.CORSOrigins,
		UploadDir:    uploads,
		UploadPrefix: cfg.Storage.PublicPrefix,
		Tracing:      cfg.OTel.Enabled,
		ServiceName:  cfg.OTel.ServiceName,
	}, logger)

	return a, nil
}

func (a *App) sessionStore(ctx context.Context, cfg *config.Config) (wizard.Store, error) {
	if cfg.Session.Store != config.SessionStoreRedis {
		a.sessions = wizard.NewMemoryStore(cfg.Session.TTL)
		return a.sessions, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	a.redis = client
	a.logger.Info("Redis connected", zap.String("addr", cfg.Redis.Addr))
	return wizard.NewRedisStore(client, cfg.Session.TTL), nil
}

func fileStore(ctx context.Context, cfg *config.Config) (submission.FileStore, error) {
	if cfg.Storage.Driver != config.StorageMinIO {
		return filestore.NewLocal(cfg.Storage.Dir, cfg.Storage.PublicPrefix), nil
	}
	m, err := filestore.NewMinIO(filestore.MinIOConfig{
		Endpoint:  cfg.MinIO.Endpoint,
		AccessKey: cfg.MinIO.AccessKey,
		SecretKey: cfg.MinIO.SecretKey,
		Bucket:    cfg.MinIO.Bucket,
		UseSSL:    cfg.MinIO.UseSSL,
		PublicURL: cfg.MinIO.PublicURL,
	})
	if err != nil {
		return nil, err
	}
	if err := m.EnsureBucket(ctx); err != nil {
		return nil, err
	}
	return m, nil
}

// notifier sends admin notifications to Telegram when a bot is configured.
// Customer confirmations are only logged.
func notifier(cfg *config.Config, leads notify.LeadLookup, logger *zap.Logger) submission.Notifier {
	var admin submission.Notifier = notify.NewLog(logger)
	if cfg.Telegram.Enabled() {
		admin = notify.NewTelegram(notify.TelegramConfig{
			BotToken: cfg.Telegram.BotToken,
			ChatID:   cfg.Telegram.ChatID,
			APIBase:  cfg.Telegram.APIBase,
		}, leads, logger)
	} else {
		logger.Warn("telegram not configured, lead notifications are only logged")
	}
	return notify.Router{
		submission.ChannelAdmin:    admin,
		submission.ChannelCustomer: notify.NewLog(logger),
	}
}

func channels(names []string) []submission.Channel {
	out := make([]submission.Channel, 0, len(names))
	for _, n := range names {
		out = append(out, submission.Channel(n))
	}
	return out
}

func (a *App) Router() http.Handler {
	return a.handler
}

// Run performs background housekeeping until ctx is done.
func (a *App) Run(ctx context.Context) {
	if a.sessions == nil {
		return
	}
	interval := a.sweep
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	a.sessions.Run(ctx, interval)
}

// Close releases the database and Redis connections.
func (a *App) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("close redis", zap.Error(err))
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("close db", zap.Error(err))
		}
	}
}
