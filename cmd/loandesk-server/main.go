// cmd/loandesk-server/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"loandesk/internal/ai"
	"loandesk/internal/auth"
	"loandesk/internal/common/config"
	"loandesk/internal/common/database"
	"loandesk/internal/common/logger"
	"loandesk/internal/common/observability"
	"loandesk/internal/loan"
	"loandesk/internal/notify"
	"loandesk/internal/search"
	"loandesk/internal/server"
	"loandesk/internal/widgets"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting loandesk server...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("loandesk-server")
	defer obs.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Init Elasticsearch (optional) ---
	var esClient *database.ElasticsearchClient
	if cfg.Database.Elasticsearch.Enabled() {
		err = retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return esClient.Ping()
		}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

		if err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}
		zapLog.Info("Elasticsearch connected successfully")
	} else {
		zapLog.Info("Elasticsearch not configured, consultation archive disabled")
	}

	// --- Wire components ---
	sessions := loan.NewSessions(loan.NewPostgresSnapshotStore(pg), cfg.Loan, log)
	widgetStore := widgets.NewStore(redis, log)
	aiClient := ai.NewClient(cfg.APIs, log)
	admin := auth.NewAdmin(cfg.Admin, redis, log)
	archive := search.NewArchive(esClient, log)

	handlers := server.NewHandlers(sessions, widgetStore, aiClient, admin, archive, log)

	// --- Schedule reminders (optional) ---
	if cfg.Notifications.Email.Enabled || cfg.Notifications.SMS.Enabled {
		reminder, err := notify.NewReminder(ctx, cfg.Notifications, widgetStore, log)
		if err != nil {
			zapLog.Fatal("reminder init failed", zap.Error(err))
		}

		go func() {
			ticker := time.NewTicker(24 * time.Hour)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					sent, err := reminder.DispatchDue(ctx)
					if err != nil {
						zapLog.Error("reminder sweep failed", zap.Error(err))
						continue
					}
					zapLog.Info("reminder sweep done", zap.Int("sent", sent))
				}
			}
		}()
		zapLog.Info("Schedule reminder dispatcher started")
	}

	// --- HTTP server ---
	srvCfg := server.Config{
		Server:   cfg.Server,
		Handlers: handlers,
		Health: map[string]server.HealthChecker{
			"postgres": pg.Ping,
			"redis":    redis.Ping,
		},
		Log: log,
	}

	if err := server.Run(ctx, srvCfg); err != nil {
		zapLog.Fatal("http server failed", zap.Error(err))
	}

	zapLog.Info("Server stopped gracefully")
}
