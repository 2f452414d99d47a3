package task

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	qport "github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/queue/port"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/logger"
	moderation "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/moderation/application/domain"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/moderation/application/usecase"
	repoAdapter "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/moderation/persistence/repository/adapter"
)

// ScanContentTaskType is the queue task name for the automated content scan.
const ScanContentTaskType = "moderation:scan"

type ScanContentTaskPayload struct {
	ContentKind string `json:"contentKind"`
	ContentID   string `json:"contentId"`
}

// EnqueueScan queues a content scan. Failures are logged and swallowed:
// moderation lag must never fail the write that produced the content.
func EnqueueScan(ctx context.Context, q qport.Client, kind, contentID string) {
	if q == nil {
		return
	}
	b, err := json.Marshal(ScanContentTaskPayload{ContentKind: kind, ContentID: contentID})
	if err != nil {
		logger.Errorf("moderation enqueue: encode payload: %v", err)
		return
	}
	opts := qport.EnqueueOption{Queue: "moderation", MaxRetry: 5}
	if _, err := q.Enqueue(ctx, qport.Task{Type: ScanContentTaskType, Payload: b}, opts); err != nil {
		logger.Errorf("moderation enqueue for %s %s: %v", kind, contentID, err)
	}
}

// RegisterScanContentTask binds the scan handler to the worker server.
func RegisterScanContentTask(srv qport.Server, pool *pgxpool.Pool) {
	srv.Register(ScanContentTaskType, func(ctx context.Context, t qport.Task) error {
		var p ScanContentTaskPayload
		if err := json.Unmarshal(t.Payload, &p); err != nil {
			return err
		}

		repo := repoAdapter.NewPgModerationRepository(pool)
		uc := usecase.NewScanContentUseCase(repo)

		ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()

		_, err := uc.Execute(ctx, p.ContentKind, p.ContentID)
		if errors.Is(err, moderation.ErrNotFound) || errors.Is(err, moderation.ErrUnknownContentKind) {
			// Content vanished or the payload is unroutable; retrying cannot help.
			logger.Warningf("moderation scan skipped %s %s: %v", p.ContentKind, p.ContentID, err)
			return nil
		}
		return err
	})
}
