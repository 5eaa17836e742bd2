// Package app wires configuration, backing services and HTTP routes.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/ads"
	bizrepo "github.com/businessgurujee/businessgurujee/backend/go-services/internal/business/repository"
	bizsvc "github.com/businessgurujee/businessgurujee/backend/go-services/internal/business/service"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/categories"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/config"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/database"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/events"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/hero"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/inquiries"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/mailer"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/oidc"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/reviews"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/sessions"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/sitemap"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/storage"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/subscriptions"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/vendors"
	"github.com/businessgurujee/businessgurujee/backend/go-services/pkg/logger"
	"github.com/businessgurujee/businessgurujee/backend/go-services/pkg/middleware"
)

// Version is stamped at build time with -ldflags "-X ...app.Version=...".
var Version = "dev"

const mongoAttempts = 5

// Deps are the external clients. A nil field means the in-process fallback is used.
type Deps struct {
	Mongo *mongo.Client
	DB    *mongo.Database
	Redis *redis.Client
	Store storage.ObjectStore
	// Events is never nil; events.Noop stands in without NATS.
	Events events.Publisher
}

// Connect opens every configured backend. Mongo is mandatory once MONGODB_URI
// is set; Redis, MinIO and NATS degrade to their fallbacks with a warning.
func Connect(ctx context.Context, cfg *config.Config) (*Deps, error) {
	d := &Deps{Events: events.Noop{}}

	if cfg.MongoDB.URI != "" {
		client, err := database.ConnectWithRetry(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, mongoAttempts)
		if err != nil {
			return nil, err
		}
		d.Mongo = client
		d.DB = client.Database(cfg.MongoDB.Database)
		ictx, cancel := context.WithTimeout(ctx, 30*time.Second)
		err = database.EnsureIndexes(ictx, d.DB)
		cancel()
		if err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		logger.Infof("connected to MongoDB database %s", cfg.MongoDB.Database)
	}

	if addr := cfg.Redis.Addr(); addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := rdb.Ping(pctx).Err()
		cancel()
		if err != nil {
			logger.Warnf("redis %s unreachable, sessions and rate limits stay in process: %v", addr, err)
			_ = rdb.Close()
		} else {
			d.Redis = rdb
			logger.Infof("connected to Redis %s", addr)
		}
	}

	if cfg.MinIO.Endpoint != "" {
		s, err := storage.NewMinIOStorage(ctx, cfg.MinIO)
		if err != nil {
			logger.Warnf("minio unavailable, uploads kept in memory: %v", err)
		} else {
			d.Store = s
		}
	}
	if d.Store == nil {
		d.Store = storage.NewMemoryStorage(cfg.Site.BaseURL + "/media")
	}

	if cfg.NATS.URL != "" {
		p, err := events.NewNATSPublisher(cfg.NATS.URL, cfg.NATS.SubjectPrefix)
		if err != nil {
			logger.Warnf("nats unavailable, events dropped: %v", err)
		} else {
			d.Events = p
		}
	}
	return d, nil
}

// Close releases the clients opened by Connect.
func (d *Deps) Close(ctx context.Context) {
	if d.Events != nil {
		d.Events.Close()
	}
	if d.Redis != nil {
		_ = d.Redis.Close()
	}
	if d.Mongo != nil {
		if err := d.Mongo.Disconnect(ctx); err != nil {
			logger.Warnf("mongo disconnect: %v", err)
		}
	}
}

// Services is the domain layer shared by the HTTP server and the admin CLI.
type Services struct {
	Vendors       *vendors.Service
	Sessions      *sessions.Service
	Blacklist     *sessions.Blacklist
	Categories    *categories.Service
	Subscriptions *subscriptions.Service
	Businesses    *bizsvc.Service
	Reviews       *reviews.Service
	Inquiries     *inquiries.Service
	Ads           *ads.Service
	Hero          *hero.Service
	Images        *storage.Images
	Mailer        *mailer.Mailer
	Sitemap       *sitemap.Builder
}

// NewServices picks Mongo repositories when d.DB is set and memory ones otherwise.
func NewServices(cfg *config.Config, d *Deps) (*Services, error) {
	m, err := mailer.New(mailer.NewSender(cfg.Mail), cfg.Site)
	if err != nil {
		return nil, fmt.Errorf("mailer: %w", err)
	}
	s := &Services{
		Blacklist: sessions.NewBlacklist(d.Redis),
		Images:    storage.NewImages(d.Store, cfg.Uploads),
		Mailer:    m,
	}

	var (
		vendorRepo   vendors.Repository
		sessionRepo  sessions.Repository
		categoryRepo categories.Repository
		plans        subscriptions.PlanRepository
		subs         subscriptions.SubscriptionRepository
		businessRepo bizrepo.Repository
		reviewRepo   reviews.Repository
		inquiryRepo  inquiries.Repository
		adRepo       ads.Repository
		heroRepo     hero.Repository
	)
	if db := d.DB; db != nil {
		vendorRepo = vendors.NewMongoRepository(db.Collection(database.CollectionVendors))
		sessionRepo = sessions.NewMongoRepository(db.Collection(database.CollectionSessions))
		categoryRepo = categories.NewMongoRepository(db.Collection(database.CollectionCategories))
		plans = subscriptions.NewMongoPlans(db.Collection(database.CollectionPlans))
		subs = subscriptions.NewMongoSubscriptions(db.Collection(database.CollectionSubscriptions))
		businessRepo = bizrepo.NewMongoRepo(db.Collection(database.CollectionBusinesses))
		reviewRepo = reviews.NewMongoRepository(db.Collection(database.CollectionReviews))
		inquiryRepo = inquiries.NewMongoRepository(db.Collection(database.CollectionInquiries))
		adRepo = ads.NewMongoRepository(db.Collection(database.CollectionAds))
		heroRepo = hero.NewMongoRepository(db.Collection(database.CollectionHeroBanners))
	} else {
		logger.Warnf("running on in-memory repositories; data is lost on restart")
		vendorRepo = vendors.NewMemoryRepository()
		sessionRepo = sessions.NewMemoryRepository()
		categoryRepo = categories.NewMemoryRepository()
		plans = subscriptions.NewMemoryPlans()
		subs = subscriptions.NewMemorySubscriptions()
		businessRepo = bizrepo.NewMemoryRepo()
		reviewRepo = reviews.NewMemoryRepository()
		inquiryRepo = inquiries.NewMemoryRepository()
		adRepo = ads.NewMemoryRepository()
		heroRepo = hero.NewMemoryRepository()
	}
	if d.Redis != nil {
		sessionRepo = sessions.NewRedisRepository(d.Redis, "session:")
	}

	s.Vendors = vendors.NewService(vendorRepo)
	s.Sessions = sessions.NewService(sessionRepo)
	s.Categories = categories.NewService(categoryRepo)
	s.Subscriptions = subscriptions.NewService(plans, subs, cfg.Listing.FreeBusinessLimit)
	s.Businesses = bizsvc.NewService(businessRepo, s.Categories, s.Subscriptions, d.Events)
	s.Categories.SetBusinessCounter(s.Businesses)
	s.Reviews = reviews.NewService(reviewRepo, s.Businesses, d.Events)
	s.Inquiries = inquiries.NewService(inquiryRepo, s.Businesses, m, d.Events)
	s.Ads = ads.NewService(adRepo)
	s.Hero = hero.NewService(heroRepo)
	s.Sitemap = sitemap.NewBuilder(cfg.Site.BaseURL, s.Categories, s.Businesses)
	return s, nil
}

// App is the HTTP API process.
type App struct {
	cfg      *config.Config
	deps     *Deps
	svc      *Services
	provider middleware.Verifier
	router   *gin.Engine
	started  time.Time
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	d, err := Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewWithDeps(ctx, cfg, d)
}

// NewWithDeps builds the API over already opened clients.
func NewWithDeps(ctx context.Context, cfg *config.Config, d *Deps) (*App, error) {
	svc, err := NewServices(cfg, d)
	if err != nil {
		d.Close(context.Background())
		return nil, err
	}
	a := &App{cfg: cfg, deps: d, svc: svc, started: time.Now()}

	if cfg.OIDC.Issuer != "" && cfg.OIDC.ClientID != "" {
		ver, err := oidc.NewVerifier(ctx, cfg.OIDC.Issuer, cfg.OIDC.ClientID)
		if err != nil {
			logger.Warnf("OIDC sign-in disabled: %v", err)
		} else {
			a.provider = ver
		}
	}

	a.router = a.newRouter()
	return a, nil
}

func (a *App) Router() *gin.Engine { return a.router }
func (a *App) Services() *Services { return a.svc }

func (a *App) Close(ctx context.Context) error {
	a.deps.Close(ctx)
	return nil
}
