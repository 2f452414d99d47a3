package port

import (
	"context"
	"time"
)

// Task is one background job message. Type names follow the
// "<feature>:<verb>" convention used across the codebase, e.g.
// "notification:deliver" or "moderation:scan". Payload encoding belongs to
// the task packages that own each type; this port stays serialization-free.
type Task struct {
	Type    string
	Payload []byte
}

// Handler processes a Task. Return a non-nil error to signal retry per adapter policy.
// Handlers must be idempotent: deliveries, scans and digests can all run twice.
type Handler func(ctx context.Context, task Task) error

// EnqueueOption controls enqueue behavior. Adapters map supported fields to the
// underlying backend as best-effort; unsupported fields may be ignored.
// Zero values mean "unspecified".
type EnqueueOption struct {
	Queue     string        // logical queue name ("critical", "default", "low", per-feature names)
	ProcessIn time.Duration // delay before processing
	ProcessAt time.Time     // absolute schedule time (takes precedence over ProcessIn if set)
	MaxRetry  int           // max retries for the task
	UniqueTTL time.Duration // enforce uniqueness within TTL window (if supported)
	Retention time.Duration // keep result metadata for this duration (if supported)
	Deadline  time.Time     // hard deadline for processing (if supported)
}

// Client enqueues tasks for background processing. The API process holds one
// Client; feature task packages wrap it with typed Enqueue helpers.
type Client interface {
	Enqueue(ctx context.Context, t Task, opts ...EnqueueOption) (id string, err error)
	Close() error
}

// Server runs background workers that handle tasks. The worker binary
// registers every feature's handlers on one Server before Run.
// Implementations should block in Run until Stop is called or the context is canceled.
type Server interface {
	Register(taskType string, h Handler)
	Run(ctx context.Context) error
	Stop(ctx context.Context) error
}
