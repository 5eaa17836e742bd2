package app

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/businessgurujee/businessgurujee/backend/go-services/handlers"
	bizhandler "github.com/businessgurujee/businessgurujee/backend/go-services/internal/business/handler"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/models"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/tokens"
	"github.com/businessgurujee/businessgurujee/backend/go-services/pkg/middleware"
)

// Public forms and sign-in get a tighter limit than the rest of the API.
const (
	submitRPS   = 0.2
	submitBurst = 5
)

func (a *App) newRouter() *gin.Engine {
	if a.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(cors.New(a.corsConfig()))
	r.Use(middleware.RequestMetrics(), middleware.RequestLogger(), gin.Recovery())
	if rl := a.cfg.RateLimit; rl.Enabled {
		r.Use(a.limiter("api", rl.RPS, rl.Burst))
	}

	r.GET("/health", func(c *gin.Context) { c.String(http.StatusOK, "healthy") })
	r.GET("/ready", a.ready)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	handlers.RegisterSwagger(r)
	handlers.RegisterSitemap(r, a.svc.Sitemap)

	s := a.svc
	auth := middleware.AuthMiddleware(tokens.NewHMACVerifier(a.cfg.JWT.Secret), s.Blacklist)
	api := r.Group("/api/v1")
	submit := api.Group("", a.limiter("submit", submitRPS, submitBurst))
	authed := api.Group("", auth)
	vendor := api.Group("/vendor", auth)
	admin := api.Group("/admin", auth, middleware.RequireRole(models.RoleAdmin))

	ah := handlers.NewAuthHandler(a.cfg, s.Vendors, s.Sessions, s.Blacklist).WithWelcome(s.Mailer)
	if a.provider != nil {
		ah = ah.WithProvider(a.provider)
	}
	ah.Register(r.Group("/", a.limiter("auth", submitRPS, submitBurst)))
	ah.RegisterMe(authed)

	bizhandler.New(s.Businesses).Register(api, vendor, admin)
	handlers.NewCategoryHandler(s.Categories).Register(api, admin)
	handlers.NewReviewHandler(s.Reviews).Register(api, submit, admin)
	handlers.NewInquiryHandler(s.Inquiries).Register(submit, vendor, admin)
	handlers.NewAdHandler(s.Ads).Register(api, admin)
	handlers.NewHeroHandler(s.Hero).Register(api, admin)
	handlers.NewPlanHandler(s.Subscriptions).Register(api, vendor, admin)
	handlers.NewUploadHandler(s.Images).Register(authed, admin)
	handlers.NewAdminHandler(s.Vendors, s.Sessions, s.Businesses, s.Categories, s.Reviews, s.Inquiries, s.Subscriptions).Register(admin)
	return r
}

// corsConfig opens the API to any origin outside production.
func (a *App) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length", "Retry-After"},
		MaxAge:        12 * time.Hour,
	}
	if a.cfg.IsProduction() && a.cfg.Site.BaseURL != "" {
		cfg.AllowOrigins = []string{a.cfg.Site.BaseURL}
	} else {
		cfg.AllowAllOrigins = true
	}
	return cfg
}

// limiter shares counters through Redis when asked to and Redis is up.
func (a *App) limiter(name string, rps float64, burst int) gin.HandlerFunc {
	rl := a.cfg.RateLimit
	if rl.UseRedis && a.deps.Redis != nil {
		return middleware.RedisRateLimitMiddleware(a.deps.Redis, name, rps, burst, time.Duration(rl.WindowSeconds)*time.Second)
	}
	return middleware.RateLimitMiddleware(rps, burst)
}

// ready reports 200 only when every configured backend answers.
func (a *App) ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	deps := map[string]string{}
	ok := true
	check := func(name string, err error) {
		if err != nil {
			deps[name] = err.Error()
			ok = false
			return
		}
		deps[name] = "ok"
	}
	if a.deps.Mongo != nil {
		check("mongodb", a.deps.Mongo.Ping(ctx, nil))
	} else {
		deps["mongodb"] = "memory"
	}
	if a.deps.Redis != nil {
		check("redis", a.deps.Redis.Ping(ctx).Err())
	} else {
		deps["redis"] = "disabled"
	}
	check("storage", a.deps.Store.Ping(ctx))

	body := gin.H{"deps": deps, "uptime": time.Since(a.started).Round(time.Second).String(), "version": Version}
	if !ok {
		body["status"] = "not_ready"
		c.JSON(http.StatusServiceUnavailable, body)
		return
	}
	body["status"] = "ready"
	c.JSON(http.StatusOK, body)
}
