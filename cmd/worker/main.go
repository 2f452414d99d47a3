package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/mahmut0ff/HandshakeMeBackend/internal/config"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/database"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/mailer"
	queueAdapter "github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/queue/adapter"
	qport "github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/queue/port"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/logger"
	chattask "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/chat/application/task"
	moderationtask "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/moderation/application/task"
	notificationtask "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/notifications/application/task"
	projecttask "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/projects/application/task"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Debugf(".env not loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf("config: %v", err)
		return
	}
	logger.InitLogger(logger.ParseLevel(cfg.LogLevel))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		logger.Errorf("database: %v", err)
		return
	}
	defer pool.Close()

	queueClient, err := queueAdapter.NewAsynqClient(cfg.RedisURL)
	if err != nil {
		logger.Errorf("queue client: %v", err)
		return
	}
	defer queueClient.Close()

	srv, err := queueAdapter.NewAsynqServer(cfg.RedisURL, cfg.Worker.Concurrency, cfg.Worker.Queues)
	if err != nil {
		logger.Errorf("queue server: %v", err)
		return
	}

	mail := mailer.New(cfg.SMTP)

	notificationtask.RegisterDeliverNotificationTask(srv, pool, mail, cfg.SMTP.SiteName, cfg.FrontendURL)
	notificationtask.RegisterDigestTask(srv, pool, mail, cfg.SMTP.SiteName, cfg.FrontendURL)
	notificationtask.RegisterCleanupTask(srv, pool)
	moderationtask.RegisterScanContentTask(srv, pool)
	chattask.RegisterSendMessageTask(srv, pool, queueClient)
	projecttask.RegisterOverdueMilestonesTask(srv, pool, queueClient)

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	beat := newBeat(rootCtx, pool, queueClient)
	beat.Start()
	defer beat.Stop()

	logger.Infof("worker running with queues %q", cfg.Worker.Queues)
	if err := srv.Run(rootCtx); err != nil {
		logger.Errorf("worker: %v", err)
	}
}

// newBeat wires the recurring jobs. Schedules mirror the crontab the Django
// deployment ran through celery beat.
func newBeat(ctx context.Context, pool *pgxpool.Pool, q qport.Client) *cron.Cron {
	c := cron.New()

	// Daily unread digest at 08:00.
	_, _ = c.AddFunc("0 8 * * *", func() {
		if err := notificationtask.FanOutDigests(ctx, pool, q); err != nil {
			logger.Errorf("beat: digest fan-out: %v", err)
		}
	})

	// Nightly cleanup of old read notifications.
	_, _ = c.AddFunc("30 3 * * *", func() {
		enqueueBeatTask(ctx, q, notificationtask.CleanupTaskType)
	})

	// Daily overdue milestone sweep.
	_, _ = c.AddFunc("0 7 * * *", func() {
		enqueueBeatTask(ctx, q, projecttask.OverdueMilestonesTaskType)
	})

	return c
}

func enqueueBeatTask(ctx context.Context, q qport.Client, taskType string) {
	opts := qport.EnqueueOption{Queue: "low", MaxRetry: 2, UniqueTTL: time.Hour}
	if _, err := q.Enqueue(ctx, qport.Task{Type: taskType, Payload: nil}, opts); err != nil {
		logger.Errorf("beat: enqueue %s: %v", taskType, err)
	}
}
