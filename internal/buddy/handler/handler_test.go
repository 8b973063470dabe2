package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"peopledesk/internal/auth"
	"peopledesk/internal/buddy/models"
	buddyservice "peopledesk/internal/buddy/service"
	pairstore "peopledesk/internal/buddy/store/pair"
	touchpointstore "peopledesk/internal/buddy/store/touchpoint"
	dirmodels "peopledesk/internal/directory/models"
	dirservice "peopledesk/internal/directory/service"
	dirstore "peopledesk/internal/directory/store"
	"peopledesk/internal/platform/metrics"
	"peopledesk/pkg/pagination"
)

const (
	adminToken = "secret-token"
	signingKey = "test-signing-key"
)

// Prometheus collectors register globally, so the test binary shares one set.
var testMetrics = metrics.New()

func newRouter(t *testing.T) (*chi.Mux, *auth.TokenService) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	dir := dirstore.NewInMemory()
	dir.Put(dirmodels.Profile{ID: 1, FirstName: "Ada", LastName: "Byron", Email: "ada@example.com", IsBuddy: true})
	dir.Put(dirmodels.Profile{ID: 2, FirstName: "Zed", LastName: "Ward", Email: "zed@example.com", IsBuddy: true})
	dir.Put(dirmodels.Profile{ID: 4, FirstName: "New", LastName: "Hire", Email: "new@example.com"})
	dir.Put(dirmodels.Profile{ID: 5, FirstName: "Other", LastName: "Hire", Email: "other@example.com"})

	stores := buddyservice.Stores{
		Pairs:       pairstore.NewInMemory(),
		Touchpoints: touchpointstore.NewInMemory(),
	}
	svc := buddyservice.New(stores, buddyservice.NewMemoryTxRunner(stores), dirservice.New(dir),
		buddyservice.WithLogger(logger),
	)

	hash, err := bcrypt.GenerateFromPassword([]byte(adminToken), bcrypt.MinCost)
	require.NoError(t, err)
	tokens := auth.NewTokenService(signingKey)

	router := chi.NewRouter()
	NewAdmin(svc, logger, testMetrics, string(hash)).Register(router)
	NewBuddy(svc, logger, testMetrics, tokens).Register(router)
	return router, tokens
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any, decorate func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if decorate != nil {
		decorate(req)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func asAdmin(req *http.Request) {
	req.Header.Set("X-Admin-Token", adminToken)
}

func asUser(t *testing.T, tokens *auth.TokenService, userID int64) func(*http.Request) {
	t.Helper()
	token, err := tokens.IssueToken(userID, "test-session")
	require.NoError(t, err)
	return func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func TestAdminTokenRequired(t *testing.T) {
	router, _ := newRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/admin/buddies/pairs", nil, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAuthRequired(t *testing.T) {
	router, _ := newRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/buddies/my-touch-points", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPairLifecycle(t *testing.T) {
	router, _ := newRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/admin/buddies/pairs",
		models.CreatePairsRequest{BuddyID: 1, BuddeeIDs: []int64{4}}, asAdmin)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created []models.Pair
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	require.Len(t, created, 1)
	require.NotZero(t, created[0].ID)

	// Same tuple again conflicts.
	rec = doJSON(t, router, http.MethodPost, "/admin/buddies/pairs",
		models.CreatePairsRequest{BuddyID: 1, BuddeeIDs: []int64{4}}, asAdmin)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Buddee already belongs to buddy 1.
	rec = doJSON(t, router, http.MethodPost, "/admin/buddies/pairs",
		models.CreatePairsRequest{BuddyID: 2, BuddeeIDs: []int64{4}}, asAdmin)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/admin/buddies/pairs",
		models.CreatePairsRequest{BuddyID: 1, BuddeeIDs: []int64{1}}, asAdmin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/admin/buddies/pairs",
		models.CreatePairsRequest{BuddyID: 99, BuddeeIDs: []int64{5}}, asAdmin)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/admin/buddies/pairs/1", nil, asAdmin)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/admin/buddies/pairs/1", nil, asAdmin)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTouchpointFlow(t *testing.T) {
	router, tokens := newRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/admin/buddies/pairs",
		models.CreatePairsRequest{BuddyID: 1, BuddeeIDs: []int64{4}}, asAdmin)
	require.Equal(t, http.StatusCreated, rec.Code)

	asBuddy := asUser(t, tokens, 1)
	asBuddee := asUser(t, tokens, 4)

	rec = doJSON(t, router, http.MethodPost, "/buddies/touch-points/draft",
		map[string]any{"buddeeId": 4, "note": "rough notes", "visible": true}, asBuddy)
	require.Equal(t, http.StatusCreated, rec.Code)

	var draft models.Touchpoint
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&draft))
	assert.Equal(t, models.StatusDraft, draft.Status)

	// The buddee sees only the placeholder while the note is a draft.
	rec = doJSON(t, router, http.MethodGet, "/buddies/my-touch-points", nil, asBuddee)
	require.Equal(t, http.StatusOK, rec.Code)
	var feed []models.FeedEntry
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&feed))
	require.Len(t, feed, 1)
	assert.Nil(t, feed[0].ID)

	rec = doJSON(t, router, http.MethodPut, "/buddies/touch-points/draft/1",
		map[string]any{"note": "polished notes", "visible": true}, asBuddy)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPut, "/buddies/touch-points/1",
		map[string]any{"visible": true}, asBuddy)
	require.Equal(t, http.StatusOK, rec.Code)
	var submitted models.Touchpoint
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&submitted))
	assert.Equal(t, models.StatusSubmitted, submitted.Status)
	assert.Equal(t, "polished notes", submitted.Note)

	rec = doJSON(t, router, http.MethodGet, "/buddies/my-touch-points", nil, asBuddee)
	require.Equal(t, http.StatusOK, rec.Code)
	feed = nil
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&feed))
	require.Len(t, feed, 1)
	assert.Equal(t, "polished notes", feed[0].Note)

	// Editing after submission reads as not found.
	rec = doJSON(t, router, http.MethodPut, "/buddies/touch-points/draft/1",
		map[string]any{"visible": false}, asBuddy)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Buddy 2 has no pair with buddee 5.
	rec = doJSON(t, router, http.MethodPost, "/buddies/touch-points",
		map[string]any{"buddeeId": 5, "note": "hello", "visible": true}, asUser(t, tokens, 2))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRosterPagination(t *testing.T) {
	router, _ := newRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/admin/buddies/pairs",
		models.CreatePairsRequest{BuddyID: 1, BuddeeIDs: []int64{4, 5}}, asAdmin)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/admin/buddies/pairs?page=2&per_page=1", nil, asAdmin)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []models.RosterEntry `json:"data"`
		Meta pagination.PageMeta  `json:"meta"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 2, resp.Meta.Page)
	assert.Equal(t, 3, resp.Meta.Total)
	require.Len(t, resp.Data, 1)
	require.NotNil(t, resp.Data[0].Buddee)
	assert.Equal(t, int64(5), resp.Data[0].Buddee.ID)
}
