package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/ads"
	bizhandler "github.com/businessgurujee/businessgurujee/backend/go-services/internal/business/handler"
	bizsvc "github.com/businessgurujee/businessgurujee/backend/go-services/internal/business/service"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/categories"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/config"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/hero"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/inquiries"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/mailer"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/models"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/reviews"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/sessions"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/sitemap"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/storage"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/subscriptions"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/tokens"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/vendors"
	"github.com/businessgurujee/businessgurujee/backend/go-services/pkg/middleware"
)

const testSecret = "handlers-test-secret-0123456789abcdef"

type harness struct {
	t          *testing.T
	cfg        *config.Config
	engine     *gin.Engine
	redis      *mr.Miniredis
	mail       *mailer.LogSender
	media      *storage.MemoryStorage
	vendors    *vendors.Service
	sessions   *sessions.Service
	businesses *bizsvc.Service
	categories *categories.Service
	reviews    *reviews.Service
	inquiries  *inquiries.Service
	plans      *subscriptions.Service
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	srv := mr.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cfg := &config.Config{}
	cfg.JWT.Secret = testSecret
	cfg.JWT.AccessTokenTTL = 15 * time.Minute
	cfg.JWT.RefreshTokenTTL = time.Hour
	cfg.Site = config.SiteConfig{BaseURL: "https://gurujee.test", Name: "Business Gurujee"}

	h := &harness{t: t, cfg: cfg, redis: srv, mail: &mailer.LogSender{}}
	m, err := mailer.New(h.mail, cfg.Site)
	require.NoError(t, err)

	h.vendors = vendors.NewService(vendors.NewMemoryRepository())
	h.sessions = sessions.NewService(sessions.NewRedisRepository(rdb, "session:"))
	h.categories = categories.NewService(categories.NewMemoryRepository())
	h.plans = subscriptions.NewMemoryService(1)
	h.businesses = bizsvc.NewMemoryService(h.categories, h.plans, nil)
	h.categories.SetBusinessCounter(h.businesses)
	h.reviews = reviews.NewService(reviews.NewMemoryRepository(), h.businesses, nil)
	h.inquiries = inquiries.NewService(inquiries.NewMemoryRepository(), h.businesses, m, nil)
	h.media = storage.NewMemoryStorage("http://media.test")
	blacklist := sessions.NewBlacklist(rdb)

	r := gin.New()
	auth := middleware.AuthMiddleware(tokens.NewHMACVerifier(testSecret), blacklist)
	root := r.Group("/")
	api := r.Group("/api/v1")
	authed := api.Group("", auth)
	vendor := api.Group("/vendor", auth)
	admin := api.Group("/admin", auth, middleware.RequireRole(models.RoleAdmin))

	ah := NewAuthHandler(cfg, h.vendors, h.sessions, blacklist).WithWelcome(m)
	ah.Register(root)
	ah.RegisterMe(authed)
	bizhandler.New(h.businesses).Register(api, vendor, admin)
	NewCategoryHandler(h.categories).Register(api, admin)
	NewReviewHandler(h.reviews).Register(api, api, admin)
	NewInquiryHandler(h.inquiries).Register(api, vendor, admin)
	NewAdHandler(ads.NewService(ads.NewMemoryRepository())).Register(api, admin)
	NewHeroHandler(hero.NewService(hero.NewMemoryRepository())).Register(api, admin)
	NewPlanHandler(h.plans).Register(api, vendor, admin)
	NewUploadHandler(storage.NewImages(h.media, config.UploadsConfig{MaxBytes: 1 << 10})).Register(authed, admin)
	NewAdminHandler(h.vendors, h.sessions, h.businesses, h.categories, h.reviews, h.inquiries, h.plans).Register(admin)
	RegisterSitemap(r, sitemap.NewBuilder(cfg.Site.BaseURL, h.categories, h.businesses))
	h.engine = r
	return h
}

// do sends a JSON request; token may be empty.
func (h *harness) do(method, path, body, token string) *httptest.ResponseRecorder {
	h.t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.engine.ServeHTTP(w, req)
	return w
}

func (h *harness) token(v *models.Vendor) string {
	h.t.Helper()
	tok, err := tokens.GenerateAccessToken(h.cfg, v, time.Minute)
	require.NoError(h.t, err)
	return tok
}

func (h *harness) vendor(email string) (*models.Vendor, string) {
	h.t.Helper()
	v, err := h.vendors.Register(context.Background(), vendors.RegisterInput{Name: "Vendor", Email: email, Password: "password123"})
	require.NoError(h.t, err)
	return v, h.token(v)
}

func (h *harness) admin() (*models.Vendor, string) {
	h.t.Helper()
	ctx := context.Background()
	_, err := h.vendors.EnsureAdmin(ctx, "Admin", "admin@gurujee.test", "password123")
	require.NoError(h.t, err)
	v, err := h.vendors.Authenticate(ctx, "admin@gurujee.test", "password123")
	require.NoError(h.t, err)
	return v, h.token(v)
}

type envelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Pagination *struct {
		Page  int   `json:"page"`
		Limit int   `json:"limit"`
		Total int64 `json:"total"`
		Pages int   `json:"pages"`
	} `json:"pagination"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data), string(env.Data))
	}
	return env
}
