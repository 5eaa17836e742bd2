package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/business"
	bizsvc "github.com/businessgurujee/businessgurujee/backend/go-services/internal/business/service"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/categories"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/inquiries"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/reviews"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/sessions"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/subscriptions"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/vendors"
	"github.com/businessgurujee/businessgurujee/backend/go-services/pkg/logger"
	"github.com/businessgurujee/businessgurujee/backend/go-services/pkg/response"
)

// Dashboard holds the admin landing counts.
type Dashboard struct {
	Vendors             int64 `json:"vendors"`
	Businesses          int64 `json:"businesses"`
	PendingBusinesses   int64 `json:"pendingBusinesses"`
	ApprovedBusinesses  int64 `json:"approvedBusinesses"`
	Categories          int64 `json:"categories"`
	Reviews             int64 `json:"reviews"`
	NewInquiries        int64 `json:"newInquiries"`
	ActiveSubscriptions int64 `json:"activeSubscriptions"`
}

type AdminHandler struct {
	vendors    *vendors.Service
	sessions   *sessions.Service
	businesses *bizsvc.Service
	categories *categories.Service
	reviews    *reviews.Service
	inquiries  *inquiries.Service
	plans      *subscriptions.Service
}

func NewAdminHandler(
	v *vendors.Service,
	s *sessions.Service,
	b *bizsvc.Service,
	c *categories.Service,
	r *reviews.Service,
	i *inquiries.Service,
	p *subscriptions.Service,
) *AdminHandler {
	return &AdminHandler{vendors: v, sessions: s, businesses: b, categories: c, reviews: r, inquiries: i, plans: p}
}

func (h *AdminHandler) Register(admin *gin.RouterGroup) {
	admin.GET("/dashboard", h.dashboard)
	admin.GET("/vendors", h.listVendors)
	admin.PATCH("/vendors/:id/toggle-active", h.toggleVendor)
}

// Stats runs every count concurrently; the first failure cancels the rest.
func (h *AdminHandler) Stats(ctx context.Context) (Dashboard, error) {
	var d Dashboard
	g, ctx := errgroup.WithContext(ctx)
	count := func(dst *int64, fn func(context.Context) (int64, error)) {
		g.Go(func() error {
			n, err := fn(ctx)
			*dst = n
			return err
		})
	}
	byStatus := func(status string) func(context.Context) (int64, error) {
		return func(ctx context.Context) (int64, error) {
			return h.businesses.Count(ctx, business.Filter{Status: status})
		}
	}
	count(&d.Vendors, h.vendors.Count)
	count(&d.Businesses, byStatus(""))
	count(&d.PendingBusinesses, byStatus(business.StatusPending))
	count(&d.ApprovedBusinesses, byStatus(business.StatusApproved))
	count(&d.Categories, h.categories.Count)
	count(&d.Reviews, h.reviews.Count)
	count(&d.NewInquiries, func(ctx context.Context) (int64, error) {
		return h.inquiries.Count(ctx, inquiries.Filter{Status: inquiries.StatusNew})
	})
	count(&d.ActiveSubscriptions, h.plans.CountActive)
	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}
	return d, nil
}

func (h *AdminHandler) dashboard(c *gin.Context) {
	d, err := h.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, d)
}

func (h *AdminHandler) listVendors(c *gin.Context) {
	out, err := h.vendors.List(c.Request.Context(), pageOf(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paged(c, out)
}

// toggleVendor flips the account flag; disabling drops the vendor's refresh sessions.
func (h *AdminHandler) toggleVendor(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	active, err := h.vendors.ToggleActive(ctx, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !active {
		if err := h.sessions.RevokeVendor(ctx, id); err != nil {
			logger.Warnf("revoke sessions of vendor %s: %v", id, err)
		}
	}
	response.OK(c, gin.H{"isActive": active})
}
