package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/business"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/business/service"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/models"
	"github.com/businessgurujee/businessgurujee/backend/go-services/pkg/middleware"
	"github.com/businessgurujee/businessgurujee/backend/go-services/pkg/response"
)

type Handler struct {
	svc *service.Service
}

func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Register mounts the public routes on pub, owner routes on vendor (authenticated)
// and moderation routes on admin (admin role).
func (h *Handler) Register(pub, vendor, admin *gin.RouterGroup) {
	pub.GET("/businesses", h.listPublic)
	pub.GET("/businesses/nearby", h.nearby)
	pub.GET("/businesses/slug/:slug", h.getBySlug)
	pub.GET("/businesses/:id", h.getPublic)

	vendor.GET("/businesses", h.listMine)
	vendor.GET("/businesses/:id", h.getMine)
	vendor.POST("/businesses", h.create)
	vendor.PUT("/businesses/:id", h.update)
	vendor.DELETE("/businesses/:id", h.delete)
	vendor.PATCH("/businesses/:id/toggle-active", h.toggleActive)

	admin.GET("/businesses", h.listAll)
	admin.PATCH("/businesses/:id/status", h.setStatus)
	admin.PATCH("/businesses/:id/featured", h.setFeatured)
}

type listQuery struct {
	Category string `form:"category"`
	City     string `form:"city"`
	Q        string `form:"q"`
	Featured *bool  `form:"featured"`
	Status   string `form:"status"`
	Vendor   string `form:"vendorId"`
	Active   *bool  `form:"active"`
}

func (q listQuery) filter() business.Filter {
	return business.Filter{
		CategoryID: q.Category,
		City:       q.City,
		Query:      q.Q,
		Featured:   q.Featured,
		Status:     q.Status,
		VendorID:   q.Vendor,
		Active:     q.Active,
	}
}

func bindList(c *gin.Context) (business.Filter, models.PageRequest, bool) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "invalid query: "+err.Error())
		return business.Filter{}, models.PageRequest{}, false
	}
	return q.filter(), models.ParsePage(c.Query("page"), c.Query("limit")), true
}

func actor(c *gin.Context) models.Actor {
	a, _ := middleware.ActorFrom(c)
	return a
}

func (h *Handler) listPublic(c *gin.Context) {
	f, page, ok := bindList(c)
	if !ok {
		return
	}
	out, err := h.svc.ListPublic(c.Request.Context(), f, page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paged(c, out)
}

func (h *Handler) listMine(c *gin.Context) {
	f, page, ok := bindList(c)
	if !ok {
		return
	}
	out, err := h.svc.ListForActor(c.Request.Context(), actor(c), f, page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paged(c, out)
}

func (h *Handler) listAll(c *gin.Context) {
	f, page, ok := bindList(c)
	if !ok {
		return
	}
	out, err := h.svc.List(c.Request.Context(), f, page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paged(c, out)
}

type nearbyQuery struct {
	Lat      *float64 `form:"lat" binding:"required"`
	Lng      *float64 `form:"lng" binding:"required"`
	Radius   float64  `form:"radius"`
	Limit    int      `form:"limit"`
	Category string   `form:"category"`
}

func (h *Handler) nearby(c *gin.Context) {
	var q nearbyQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "lat and lng are required numbers")
		return
	}
	out, err := h.svc.Nearby(c.Request.Context(), business.NearbyQuery{
		Lat:        *q.Lat,
		Lng:        *q.Lng,
		RadiusKm:   q.Radius,
		Limit:      q.Limit,
		CategoryID: q.Category,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, out)
}

func (h *Handler) getPublic(c *gin.Context) {
	b, err := h.svc.GetPublic(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, b)
}

func (h *Handler) getBySlug(c *gin.Context) {
	b, err := h.svc.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, b)
}

func (h *Handler) getMine(c *gin.Context) {
	b, err := h.svc.GetOwned(c.Request.Context(), actor(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, b)
}

func (h *Handler) create(c *gin.Context) {
	var in business.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	b, err := h.svc.Create(c.Request.Context(), actor(c), in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, b)
}

func (h *Handler) update(c *gin.Context) {
	var p business.Patch
	if err := c.ShouldBindJSON(&p); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	b, err := h.svc.Update(c.Request.Context(), actor(c), c.Param("id"), p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, b)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), actor(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "business deleted")
}

func (h *Handler) toggleActive(c *gin.Context) {
	active, err := h.svc.ToggleActive(c.Request.Context(), actor(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"id": c.Param("id"), "isActive": active})
}

func (h *Handler) setStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "status is required")
		return
	}
	if err := h.svc.SetStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"id": c.Param("id"), "status": req.Status})
}

func (h *Handler) setFeatured(c *gin.Context) {
	var req struct {
		Featured *bool `json:"isFeatured" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "isFeatured is required")
		return
	}
	if err := h.svc.SetFeatured(c.Request.Context(), c.Param("id"), *req.Featured); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"id": c.Param("id"), "isFeatured": *req.Featured})
}
