package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/categories"
	"github.com/businessgurujee/businessgurujee/backend/go-services/pkg/response"
)

type CategoryHandler struct {
	svc *categories.Service
}

func NewCategoryHandler(svc *categories.Service) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

func (h *CategoryHandler) Register(pub, admin *gin.RouterGroup) {
	pub.GET("/categories", h.listPublic)
	pub.GET("/categories/:slug", h.getBySlug)

	admin.GET("/categories", h.listAll)
	admin.POST("/categories", h.create)
	admin.PUT("/categories/:id", h.update)
	admin.DELETE("/categories/:id", h.delete)
	admin.PATCH("/categories/:id/toggle-active", h.toggle)
}

func (h *CategoryHandler) listPublic(c *gin.Context) {
	out, err := h.svc.List(c.Request.Context(), false)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, out)
}

func (h *CategoryHandler) listAll(c *gin.Context) {
	out, err := h.svc.List(c.Request.Context(), true)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, out)
}

func (h *CategoryHandler) getBySlug(c *gin.Context) {
	cat, err := h.svc.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, cat)
}

func (h *CategoryHandler) create(c *gin.Context) {
	var in categories.Input
	if !bindJSON(c, &in) {
		return
	}
	cat, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, cat)
}

func (h *CategoryHandler) update(c *gin.Context) {
	var p categories.Patch
	if !bindJSON(c, &p) {
		return
	}
	cat, err := h.svc.Update(c.Request.Context(), c.Param("id"), p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, cat)
}

func (h *CategoryHandler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "category deleted")
}

func (h *CategoryHandler) toggle(c *gin.Context) {
	v, err := h.svc.ToggleActive(c.Request.Context(), c.Param("id"))
	toggled(c, "isActive", v, err)
}
