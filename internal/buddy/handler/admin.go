package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"peopledesk/internal/buddy/models"
	"peopledesk/internal/platform/metrics"
	"peopledesk/internal/platform/middleware"
	"peopledesk/internal/transport/http/shared"
	dErrors "peopledesk/pkg/domain-errors"
	"peopledesk/pkg/pagination"
)

// AdminHandler serves the HR-admin pairing endpoints.
type AdminHandler struct {
	logger         *slog.Logger
	service        Service
	metrics        *metrics.Metrics
	adminTokenHash string
}

// NewAdmin creates the admin pairing handler.
func NewAdmin(service Service, logger *slog.Logger, m *metrics.Metrics, adminTokenHash string) *AdminHandler {
	return &AdminHandler{
		logger:         logger,
		service:        service,
		metrics:        m,
		adminTokenHash: adminTokenHash,
	}
}

// Register registers the admin pairing routes with the chi router.
func (h *AdminHandler) Register(r chi.Router) {
	adminRouter := chi.NewRouter()
	adminRouter.Use(middleware.Recovery(h.logger))
	adminRouter.Use(middleware.RequestID)
	adminRouter.Use(middleware.Logger(h.logger))
	adminRouter.Use(middleware.Timeout(30 * time.Second))
	adminRouter.Use(middleware.ContentTypeJSON)
	adminRouter.Use(middleware.LatencyMiddleware(h.metrics))
	adminRouter.Use(middleware.Metadata)
	adminRouter.Use(middleware.RequireAdminToken(h.adminTokenHash, h.logger))
	adminRouter.Get("/buddies/pairs", h.handleRoster)
	adminRouter.Post("/buddies/pairs", h.handleCreatePairs)
	adminRouter.Delete("/buddies/pairs/{id}", h.handleDeletePair)
	adminRouter.Get("/buddies/pairs/{id}/touch-points", h.handlePairHistory)

	r.Mount("/admin", adminRouter)
}

// handleRoster returns the paginated buddy roster with latest notes.
func (h *AdminHandler) handleRoster(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	rows, meta, err := h.service.BuddyRoster(ctx, pagination.FromRequest(r))
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to build buddy roster",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, PaginatedResponse[models.RosterEntry]{Data: rows, Meta: meta})
}

// handleCreatePairs assigns a batch of buddees to one buddy.
func (h *AdminHandler) handleCreatePairs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	var req models.CreatePairsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid create pairs request",
			"request_id", requestID,
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	pairs, err := h.service.CreateBuddyPairs(ctx, req)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInternal) {
			h.logger.ErrorContext(ctx, "failed to create buddy pairs",
				"request_id", requestID,
				"error", err.Error(),
			)
		}
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, pairs)
}

// handleDeletePair removes a pair and soft-deletes its history.
func (h *AdminHandler) handleDeletePair(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := parseID(r, "id")
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	if err := h.service.DeleteBuddyPair(ctx, id); err != nil {
		if dErrors.HasCode(err, dErrors.CodeInternal) {
			h.logger.ErrorContext(ctx, "failed to delete buddy pair",
				"request_id", middleware.GetRequestID(ctx),
				"pair_id", id,
				"error", err.Error(),
			)
		}
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handlePairHistory returns the full touchpoint history for a pair,
// soft-deleted rows included.
func (h *AdminHandler) handlePairHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := parseID(r, "id")
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	tps, meta, err := h.service.PairTouchpointHistory(ctx, id, pagination.FromRequest(r))
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInternal) {
			h.logger.ErrorContext(ctx, "failed to load pair history",
				"request_id", middleware.GetRequestID(ctx),
				"pair_id", id,
				"error", err.Error(),
			)
		}
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, PaginatedResponse[*models.Touchpoint]{Data: tps, Meta: meta})
}

func parseID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, dErrors.New(dErrors.CodeBadRequest, "invalid "+name)
	}
	return id, nil
}
