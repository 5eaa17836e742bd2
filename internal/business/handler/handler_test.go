package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/business/service"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/config"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/models"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/tokens"
	"github.com/businessgurujee/businessgurujee/backend/go-services/pkg/middleware"
)

const secret = "handler-test-secret-0123456789abcdef"

type categories struct{}

func (categories) ResolveID(ctx context.Context, idOrSlug string) (string, error) {
	if idOrSlug == "cat-1" || idOrSlug == "sweets" {
		return "cat-1", nil
	}
	return "", models.NotFound("category")
}

type unlimited struct{}

func (unlimited) BusinessLimit(ctx context.Context, vendorID string) (int, error) { return 0, nil }

func init() { gin.SetMode(gin.TestMode) }

func setup(t *testing.T) *gin.Engine {
	t.Helper()
	svc := service.NewMemoryService(categories{}, unlimited{}, nil)
	h := New(svc)

	r := gin.New()
	api := r.Group("/api/v1")
	auth := middleware.AuthMiddleware(tokens.NewHMACVerifier(secret), nil)
	vendor := api.Group("/vendor", auth)
	admin := api.Group("/admin", auth, middleware.RequireRole(models.RoleAdmin))
	h.Register(api, vendor, admin)
	return r
}

func bearer(t *testing.T, id, role string) string {
	t.Helper()
	cfg := &config.Config{}
	cfg.JWT.Secret = secret
	tok, err := tokens.GenerateAccessToken(cfg, &models.Vendor{ID: id, Role: role}, time.Minute)
	require.NoError(t, err)
	return "Bearer " + tok
}

type envelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Pagination struct {
		Total int64 `json:"total"`
	} `json:"pagination"`
}

func do(t *testing.T, r *gin.Engine, method, path, auth, body string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

const createBody = `{"name":"Sharma Sweets","categoryId":"sweets","contact":{"phone":"9876543210"},"address":{"city":"Jaipur"},"latitude":26.91,"longitude":75.78}`

func TestBusinessHandler_CRUD(t *testing.T) {
	r := setup(t)
	vendor := bearer(t, "vendor-1", models.RoleVendor)
	admin := bearer(t, "admin-1", models.RoleAdmin)

	// create
	code, env := do(t, r, http.MethodPost, "/api/v1/vendor/businesses", vendor, createBody)
	require.Equal(t, http.StatusCreated, code, env.Message)
	var created struct {
		ID     string `json:"id"`
		Slug   string `json:"slug"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.Equal(t, "sharma-sweets", created.Slug)
	require.Equal(t, "pending", created.Status)

	// pending: invisible publicly, visible to the owner
	code, _ = do(t, r, http.MethodGet, "/api/v1/businesses/"+created.ID, "", "")
	require.Equal(t, http.StatusNotFound, code)
	code, _ = do(t, r, http.MethodGet, "/api/v1/vendor/businesses/"+created.ID, vendor, "")
	require.Equal(t, http.StatusOK, code)

	// approve
	code, _ = do(t, r, http.MethodPatch, "/api/v1/admin/businesses/"+created.ID+"/status", vendor, `{"status":"approved"}`)
	require.Equal(t, http.StatusForbidden, code)
	code, _ = do(t, r, http.MethodPatch, "/api/v1/admin/businesses/"+created.ID+"/status", admin, `{"status":"approved"}`)
	require.Equal(t, http.StatusOK, code)

	code, env = do(t, r, http.MethodGet, "/api/v1/businesses?city=jaipur", "", "")
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, int64(1), env.Pagination.Total)

	code, _ = do(t, r, http.MethodGet, "/api/v1/businesses/slug/sharma-sweets", "", "")
	require.Equal(t, http.StatusOK, code)

	code, env = do(t, r, http.MethodGet, "/api/v1/businesses/nearby?lat=26.91&lng=75.78&radius=5", "", "")
	require.Equal(t, http.StatusOK, code)
	var near []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &near))
	require.Len(t, near, 1)
	require.Contains(t, near[0], "distanceKm")

	// toggle twice
	_, env = do(t, r, http.MethodPatch, "/api/v1/vendor/businesses/"+created.ID+"/toggle-active", vendor, "")
	require.JSONEq(t, `{"id":"`+created.ID+`","isActive":false}`, string(env.Data))
	_, env = do(t, r, http.MethodPatch, "/api/v1/vendor/businesses/"+created.ID+"/toggle-active", vendor, "")
	require.JSONEq(t, `{"id":"`+created.ID+`","isActive":true}`, string(env.Data))

	// someone else's listing
	other := bearer(t, "vendor-2", models.RoleVendor)
	code, _ = do(t, r, http.MethodDelete, "/api/v1/vendor/businesses/"+created.ID, other, "")
	require.Equal(t, http.StatusForbidden, code)

	// delete
	code, _ = do(t, r, http.MethodDelete, "/api/v1/vendor/businesses/"+created.ID, vendor, "")
	require.Equal(t, http.StatusOK, code)
	_, env = do(t, r, http.MethodGet, "/api/v1/businesses", "", "")
	require.Zero(t, env.Pagination.Total)
}

func TestBusinessHandler_Validation(t *testing.T) {
	r := setup(t)
	vendor := bearer(t, "vendor-1", models.RoleVendor)

	code, env := do(t, r, http.MethodPost, "/api/v1/vendor/businesses", vendor, `{"name":"No Phone","categoryId":"sweets","address":{"city":"Pune"}}`)
	require.Equal(t, http.StatusBadRequest, code)
	require.False(t, env.Success)
	require.Contains(t, env.Message, "contact.phone")

	code, _ = do(t, r, http.MethodPost, "/api/v1/vendor/businesses", vendor, `{bad json`)
	require.Equal(t, http.StatusBadRequest, code)

	code, _ = do(t, r, http.MethodPost, "/api/v1/vendor/businesses", "", createBody)
	require.Equal(t, http.StatusUnauthorized, code)

	code, _ = do(t, r, http.MethodGet, "/api/v1/businesses/nearby?lat=abc", "", "")
	require.Equal(t, http.StatusBadRequest, code)

	_, env = do(t, r, http.MethodGet, "/api/v1/vendor/businesses", vendor, "")
	require.Zero(t, env.Pagination.Total)
}
