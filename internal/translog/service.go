package translog

import (
	"context"
	"errors"
	"log/slog"
	"time"

	dErrors "integrationhub/pkg/domain-errors"
	"integrationhub/pkg/platform/sentinel"
)

// DefaultQueueSize bounds the entries waiting for the worker.
const DefaultQueueSize = 1024

// Service captures transaction entries. Record is fire-and-forget and feeds
// the Worker; Log writes synchronously for callers that need the stored row.
type Service struct {
	store     Store
	publisher Publisher
	inbox     chan Entry
	logger    *slog.Logger
	now       func() time.Time
}

type Option func(*Service)

func WithPublisher(p Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

func WithQueueSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.inbox = make(chan Entry, n)
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store:  store,
		inbox:  make(chan Entry, DefaultQueueSize),
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Worker returns the background consumer for entries passed to Record.
func (s *Service) Worker() *Worker {
	return NewWorker(s.store, s.inbox, s.publisher, s.logger)
}

// Record queues an entry without blocking. When the queue is full the entry
// is dropped and a warning logged; a response is never held up by the log.
func (s *Service) Record(ctx context.Context, e Entry) {
	s.normalize(&e)
	select {
	case s.inbox <- e:
	default:
		s.logger.WarnContext(ctx, "transaction log queue full, entry dropped",
			"service", e.Service,
			"endpoint", e.Endpoint,
			"status", e.Status,
		)
	}
}

// Log validates and stores an entry synchronously, then publishes it.
func (s *Service) Log(ctx context.Context, e Entry) (*Entry, error) {
	if e.Status != "" && !e.Status.Valid() {
		return nil, dErrors.New(dErrors.CodeValidation, "status must be one of success error pending")
	}
	s.normalize(&e)
	if err := s.store.Append(ctx, &e); err != nil {
		s.logger.ErrorContext(ctx, "failed to log transaction", "error", err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to log transaction")
	}
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, e); err != nil {
			s.logger.WarnContext(ctx, "failed to publish transaction log", "id", e.ID, "error", err)
		}
	}
	s.logger.DebugContext(ctx, "transaction logged", "id", e.ID)
	return &e, nil
}

// List returns up to ListLimit entries, newest first.
func (s *Service) List(ctx context.Context, f Filter) ([]Entry, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, dErrors.New(dErrors.CodeValidation, "status must be one of success error pending")
	}
	entries, err := s.store.List(ctx, f)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list transactions")
	}
	return entries, nil
}

// Get returns one entry or a not-found error.
func (s *Service) Get(ctx context.Context, id int64) (*Entry, error) {
	e, err := s.store.Get(ctx, id)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.New(dErrors.CodeNotFound, "Transaction not found")
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load transaction")
	}
	return e, nil
}

func (s *Service) normalize(e *Entry) {
	if e.AuthType == "" {
		e.AuthType = DefaultAuthType
	}
	if e.CallerID == "" {
		e.CallerID = "unknown"
	}
	if e.Status == "" {
		e.Status = StatusPending
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now()
	}
}
