package buddy

import (
	"log/slog"

	"peopledesk/internal/buddy/handler"
	"peopledesk/internal/buddy/service"
	"peopledesk/internal/platform/metrics"
	"peopledesk/internal/platform/middleware"
)

// Service exposes pairing and touchpoint orchestration.
type Service = service.Service

// AdminHandler wires HTTP endpoints to the admin pairing routes.
type AdminHandler = handler.AdminHandler

// BuddyHandler wires HTTP endpoints to the buddy-facing routes.
type BuddyHandler = handler.BuddyHandler

// NewService constructs the pairing coordinator with required dependencies.
func NewService(stores service.Stores, tx service.TxRunner, directory service.Directory, opts ...service.Option) *Service {
	return service.New(stores, tx, directory, opts...)
}

// NewAdminHandler constructs an HTTP handler for the HR-admin routes.
func NewAdminHandler(s *Service, logger *slog.Logger, m *metrics.Metrics, adminTokenHash string) *AdminHandler {
	return handler.NewAdmin(s, logger, m, adminTokenHash)
}

// NewBuddyHandler constructs an HTTP handler for the authenticated buddy
// and buddee routes.
func NewBuddyHandler(s *Service, logger *slog.Logger, m *metrics.Metrics, jwtValidator middleware.JWTValidator) *BuddyHandler {
	return handler.NewBuddy(s, logger, m, jwtValidator)
}
