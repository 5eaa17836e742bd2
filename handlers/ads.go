package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/ads"
	"github.com/businessgurujee/businessgurujee/backend/go-services/pkg/response"
)

type AdHandler struct {
	svc *ads.Service
}

func NewAdHandler(svc *ads.Service) *AdHandler {
	return &AdHandler{svc: svc}
}

func (h *AdHandler) Register(pub, admin *gin.RouterGroup) {
	pub.GET("/ads", h.listActive)
	pub.GET("/ads/:id/click", h.click)

	admin.GET("/ads", h.list)
	admin.POST("/ads", h.create)
	admin.PUT("/ads/:id", h.update)
	admin.DELETE("/ads/:id", h.delete)
	admin.PATCH("/ads/:id/toggle-active", h.toggle)
}

func (h *AdHandler) listActive(c *gin.Context) {
	out, err := h.svc.ListActive(c.Request.Context(), c.Query("placement"), c.Query("category"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, out)
}

// click counts the click and redirects to the advertiser.
func (h *AdHandler) click(c *gin.Context) {
	link, err := h.svc.RecordClick(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Redirect(http.StatusFound, link)
}

func (h *AdHandler) list(c *gin.Context) {
	out, err := h.svc.List(c.Request.Context(), pageOf(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paged(c, out)
}

func (h *AdHandler) create(c *gin.Context) {
	var in ads.Input
	if !bindJSON(c, &in) {
		return
	}
	a, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, a)
}

func (h *AdHandler) update(c *gin.Context) {
	var p ads.Patch
	if !bindJSON(c, &p) {
		return
	}
	a, err := h.svc.Update(c.Request.Context(), c.Param("id"), p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, a)
}

func (h *AdHandler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "ad deleted")
}

func (h *AdHandler) toggle(c *gin.Context) {
	v, err := h.svc.ToggleActive(c.Request.Context(), c.Param("id"))
	toggled(c, "isActive", v, err)
}
