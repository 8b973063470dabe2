package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Directory,AuditPublisher

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"peopledesk/internal/audit"
	"peopledesk/internal/buddy/metrics"
	"peopledesk/internal/buddy/models"
	dirmodels "peopledesk/internal/directory/models"
	"peopledesk/internal/platform/middleware"
)

// PairStore owns the set of active buddy↔buddee relationships.
type PairStore interface {
	Create(ctx context.Context, pairs []*models.Pair) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*models.Pair, error)
	FindByBuddyIDs(ctx context.Context, buddyIDs []int64) ([]*models.Pair, error)
	FindByBuddeeID(ctx context.Context, buddeeID int64) (*models.Pair, error)
	Exists(ctx context.Context, buddyID, buddeeID int64) (bool, error)
}

// TouchpointStore owns check-in records and their soft-delete lifecycle.
type TouchpointStore interface {
	Create(ctx context.Context, tp *models.Touchpoint) error
	UpdateDraft(ctx context.Context, id int64, patch models.DraftPatch, submit bool, now time.Time) (*models.Touchpoint, error)
	ListForPair(ctx context.Context, buddyID, buddeeID int64) ([]*models.Touchpoint, error)
	ListVisibleForBuddee(ctx context.Context, buddeeID int64) ([]*models.Touchpoint, error)
	ListAllForPair(ctx context.Context, buddyID, buddeeID int64) ([]*models.Touchpoint, error)
	SetDeletedForPair(ctx context.Context, buddyID, buddeeID int64, deleted bool) error
}

// Directory is the user directory collaborator owned by the HR platform.
type Directory interface {
	Resolve(ctx context.Context, id int64) (*dirmodels.Profile, error)
	ListBuddies(ctx context.Context) ([]dirmodels.Profile, error)
}

// AuditPublisher records pairing lifecycle events.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Stores bundles the two peer stores so transactional callbacks receive
// tx-bound instances of both.
type Stores struct {
	Pairs       PairStore
	Touchpoints TouchpointStore
}

// TxRunner executes fn atomically: every store call inside fn commits or
// rolls back as one unit. Pair/touchpoint consistency depends on it.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(stores Stores) error) error
}

// Service is the pairing coordinator: it owns pair and touchpoint
// orchestration, the only multi-entity transactional logic in the backend.
type Service struct {
	stores    Stores
	tx        TxRunner
	directory Directory
	logger    *slog.Logger
	auditor   AuditPublisher
	metrics   *metrics.Metrics
	tracer    trace.Tracer
	clock     func() time.Time
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditor = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithClock overrides the time source for tests.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// New constructs the Service.
func New(stores Stores, tx TxRunner, directory Directory, opts ...Option) *Service {
	s := &Service{
		stores:    stores,
		tx:        tx,
		directory: directory,
		tracer:    otel.Tracer("peopledesk/buddy"),
		clock:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) logAudit(ctx context.Context, action string, buddyID, buddeeID int64) {
	requestID := middleware.GetRequestID(ctx)
	meta := middleware.GetRequestMeta(ctx)
	if s.logger != nil {
		s.logger.InfoContext(ctx, action,
			"event", action,
			"log_type", "audit",
			"buddy_id", buddyID,
			"buddee_id", buddeeID,
			"request_id", requestID,
		)
	}
	if s.auditor == nil {
		return
	}
	_ = s.auditor.Emit(ctx, audit.Event{
		Action:    action,
		ActorID:   middleware.GetUserID(ctx),
		BuddyID:   buddyID,
		BuddeeID:  buddeeID,
		RequestID: requestID,
		ClientIP:  meta.ClientIP,
		Device:    meta.Device,
	})
}
