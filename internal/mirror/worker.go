package mirror

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"

	"pipeline_backend/platform/config"
	"pipeline_backend/platform/logger"
)

// Worker consumes mirror tasks and applies them to Postgres.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	repo   *Repository
	log    *logger.Logger
}

func NewWorker(cfg config.MirrorConfig, pool *pgxpool.Pool, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL)
	if err != nil {
		return nil, err
	}

	queue := cfg.GetMirrorQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetMirrorConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		repo:   NewRepository(pool),
		log:    log,
	}

	mux.HandleFunc(TaskLeadSnapshot, w.handleLeadSnapshot)
	mux.HandleFunc(TaskLeadPurge, w.handleLeadPurge)
	mux.HandleFunc(TaskProfileSync, w.handleProfileSync)

	return w, nil
}

func (w *Worker) handleLeadSnapshot(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseLeadSnapshotPayload(task)
	if err != nil {
		return err
	}
	return w.repo.InsertLeadSnapshot(ctx, payload.LeadID, payload.Operation, payload.Snapshot)
}

func (w *Worker) handleLeadPurge(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseLeadPurgePayload(task)
	if err != nil {
		return err
	}
	return w.repo.PurgeLead(ctx, payload.LeadID)
}

func (w *Worker) handleProfileSync(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseProfileSyncPayload(task)
	if err != nil {
		return err
	}
	return w.repo.UpsertProfile(ctx, payload.UserID, payload.Name, payload.Role)
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("mirror worker stopped", "error", err)
	}
}
