package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/hero"
	"github.com/businessgurujee/businessgurujee/backend/go-services/pkg/response"
)

type HeroHandler struct {
	svc *hero.Service
}

func NewHeroHandler(svc *hero.Service) *HeroHandler {
	return &HeroHandler{svc: svc}
}

func (h *HeroHandler) Register(pub, admin *gin.RouterGroup) {
	pub.GET("/hero", h.listActive)

	admin.GET("/hero", h.listAll)
	admin.POST("/hero", h.create)
	admin.PUT("/hero/reorder", h.reorder)
	admin.PUT("/hero/:id", h.update)
	admin.DELETE("/hero/:id", h.delete)
	admin.PATCH("/hero/:id/toggle-active", h.toggle)
}

func (h *HeroHandler) listActive(c *gin.Context) {
	out, err := h.svc.ListActive(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, out)
}

func (h *HeroHandler) listAll(c *gin.Context) {
	out, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, out)
}

func (h *HeroHandler) create(c *gin.Context) {
	var in hero.Input
	if !bindJSON(c, &in) {
		return
	}
	b, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, b)
}

func (h *HeroHandler) update(c *gin.Context) {
	var p hero.Patch
	if !bindJSON(c, &p) {
		return
	}
	b, err := h.svc.Update(c.Request.Context(), c.Param("id"), p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, b)
}

type reorderRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

func (h *HeroHandler) reorder(c *gin.Context) {
	var req reorderRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.svc.Reorder(c.Request.Context(), req.IDs); err != nil {
		response.Error(c, err)
		return
	}
	h.listAll(c)
}

func (h *HeroHandler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "banner deleted")
}

func (h *HeroHandler) toggle(c *gin.Context) {
	v, err := h.svc.ToggleActive(c.Request.Context(), c.Param("id"))
	toggled(c, "isActive", v, err)
}
