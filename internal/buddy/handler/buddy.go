package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"peopledesk/internal/buddy/models"
	"peopledesk/internal/platform/metrics"
	"peopledesk/internal/platform/middleware"
	"peopledesk/internal/transport/http/shared"
	dErrors "peopledesk/pkg/domain-errors"
)

// BuddyHandler serves the authenticated buddy and buddee endpoints. The
// acting buddy is always the authenticated user; payload buddy ids are
// ignored so nobody can write notes on someone else's behalf.
type BuddyHandler struct {
	logger       *slog.Logger
	service      Service
	metrics      *metrics.Metrics
	jwtValidator middleware.JWTValidator
}

// NewBuddy creates the buddy-facing handler.
func NewBuddy(service Service, logger *slog.Logger, m *metrics.Metrics, jwtValidator middleware.JWTValidator) *BuddyHandler {
	return &BuddyHandler{
		logger:       logger,
		service:      service,
		metrics:      m,
		jwtValidator: jwtValidator,
	}
}

// Register registers the buddy routes with the chi router.
func (h *BuddyHandler) Register(r chi.Router) {
	buddyRouter := chi.NewRouter()
	buddyRouter.Use(middleware.Recovery(h.logger))
	buddyRouter.Use(middleware.RequestID)
	buddyRouter.Use(middleware.Logger(h.logger))
	buddyRouter.Use(middleware.Timeout(30 * time.Second))
	buddyRouter.Use(middleware.ContentTypeJSON)
	buddyRouter.Use(middleware.LatencyMiddleware(h.metrics))
	buddyRouter.Use(middleware.Metadata)
	buddyRouter.Use(middleware.RequireAuth(h.jwtValidator, h.logger))
	buddyRouter.Post("/touch-points", h.handleCreateTouchpoint)
	buddyRouter.Post("/touch-points/draft", h.handleCreateDraft)
	buddyRouter.Put("/touch-points/draft/{id}", h.handleUpdateDraft)
	buddyRouter.Put("/touch-points/{id}", h.handleSubmitDraft)
	buddyRouter.Get("/my-touch-points", h.handleMyTouchpoints)
	buddyRouter.Get("/my-buddees/{buddeeId}/touch-points", h.handlePairTouchpoints)

	r.Mount("/buddies", buddyRouter)
}

// handleCreateTouchpoint records a submitted note for one of the buddy's
// buddees.
func (h *BuddyHandler) handleCreateTouchpoint(w http.ResponseWriter, r *http.Request) {
	h.createTouchpoint(w, r, h.service.CreateTouchpoint)
}

// handleCreateDraft records a draft note, invisible to the buddee until
// submitted.
func (h *BuddyHandler) handleCreateDraft(w http.ResponseWriter, r *http.Request) {
	h.createTouchpoint(w, r, h.service.CreateDraftTouchpoint)
}

func (h *BuddyHandler) createTouchpoint(w http.ResponseWriter, r *http.Request, create func(ctx context.Context, req models.TouchpointRequest) (*models.Touchpoint, error)) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	var req models.TouchpointRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid touchpoint request",
			"request_id", requestID,
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	req.BuddyID = middleware.GetUserID(ctx)

	tp, err := create(ctx, req)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInternal) {
			h.logger.ErrorContext(ctx, "failed to create touchpoint",
				"request_id", requestID,
				"error", err.Error(),
			)
		}
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, tp)
}

// handleUpdateDraft patches a draft without submitting it.
func (h *BuddyHandler) handleUpdateDraft(w http.ResponseWriter, r *http.Request) {
	h.patchDraft(w, r, h.service.UpdateDraftTouchpoint)
}

// handleSubmitDraft applies a final patch and discloses the note.
func (h *BuddyHandler) handleSubmitDraft(w http.ResponseWriter, r *http.Request) {
	h.patchDraft(w, r, h.service.SubmitDraftTouchpoint)
}

func (h *BuddyHandler) patchDraft(w http.ResponseWriter, r *http.Request, apply func(ctx context.Context, id int64, patch models.DraftPatch) (*models.Touchpoint, error)) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	id, err := parseID(r, "id")
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	var patch models.DraftPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.logger.WarnContext(ctx, "invalid draft patch",
			"request_id", requestID,
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	tp, err := apply(ctx, id, patch)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInternal) {
			h.logger.ErrorContext(ctx, "failed to update draft",
				"request_id", requestID,
				"touchpoint_id", id,
				"error", err.Error(),
			)
		}
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, tp)
}

// handleMyTouchpoints returns the authenticated buddee's visible feed.
func (h *BuddyHandler) handleMyTouchpoints(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	feed, err := h.service.BuddeeFeed(ctx, middleware.GetUserID(ctx))
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInternal) {
			h.logger.ErrorContext(ctx, "failed to load buddee feed",
				"request_id", middleware.GetRequestID(ctx),
				"error", err.Error(),
			)
		}
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, feed)
}

// handlePairTouchpoints returns the authenticated buddy's history with one
// buddee, drafts included.
func (h *BuddyHandler) handlePairTouchpoints(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	buddeeID, err := parseID(r, "buddeeId")
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	feed, err := h.service.BuddyPairView(ctx, middleware.GetUserID(ctx), buddeeID)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInternal) {
			h.logger.ErrorContext(ctx, "failed to load pair touchpoints",
				"request_id", middleware.GetRequestID(ctx),
				"buddee_id", buddeeID,
				"error", err.Error(),
			)
		}
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, feed)
}
