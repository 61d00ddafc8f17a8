package translog

import (
	"context"
	"log/slog"
)

// Worker consumes entries from a channel, persists them and then publishes
// them. A failing entry is logged and skipped so one bad write never stops
// the log.
type Worker struct {
	store     Store
	inbox     <-chan Entry
	publisher Publisher
	logger    *slog.Logger
}

func NewWorker(store Store, inbox <-chan Entry, publisher Publisher, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{store: store, inbox: inbox, publisher: publisher, logger: logger}
}

// Run blocks until ctx is done, then drains whatever is already queued.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.drain(context.WithoutCancel(ctx))
			return ctx.Err()
		case e := <-w.inbox:
			w.handle(ctx, e)
		}
	}
}

func (w *Worker) drain(ctx context.Context) {
	for {
		select {
		case e := <-w.inbox:
			w.handle(ctx, e)
		default:
			return
		}
	}
}

func (w *Worker) handle(ctx context.Context, e Entry) {
	if err := w.store.Append(ctx, &e); err != nil {
		w.logger.ErrorContext(ctx, "failed to log transaction",
			"service", e.Service,
			"endpoint", e.Endpoint,
			"error", err,
		)
		return
	}
	if w.publisher == nil {
		return
	}
	if err := w.publisher.Publish(ctx, e); err != nil {
		w.logger.WarnContext(ctx, "failed to publish transaction log", "id", e.ID, "error", err)
	}
}
