package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/reviews"
	"github.com/businessgurujee/businessgurujee/backend/go-services/pkg/response"
)

type ReviewHandler struct {
	svc *reviews.Service
}

func NewReviewHandler(svc *reviews.Service) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

// Register mounts review submission on submit so callers can rate limit it.
func (h *ReviewHandler) Register(pub, submit, admin *gin.RouterGroup) {
	pub.GET("/businesses/:id/reviews", h.listForBusiness)
	submit.POST("/reviews", h.create)

	admin.GET("/reviews", h.listAll)
	admin.PATCH("/reviews/:id/toggle-visible", h.toggle)
	admin.DELETE("/reviews/:id", h.delete)
}

func (h *ReviewHandler) create(c *gin.Context) {
	var in reviews.Input
	if !bindJSON(c, &in) {
		return
	}
	r, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, r)
}

func (h *ReviewHandler) listForBusiness(c *gin.Context) {
	out, err := h.svc.ListByBusiness(c.Request.Context(), c.Param("id"), pageOf(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paged(c, out)
}

type reviewQuery struct {
	BusinessID string `form:"businessId"`
	Visible    *bool  `form:"visible"`
}

func (h *ReviewHandler) listAll(c *gin.Context) {
	var q reviewQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "invalid query: "+err.Error())
		return
	}
	out, err := h.svc.ListAll(c.Request.Context(), reviews.Filter{BusinessID: q.BusinessID, Visible: q.Visible}, pageOf(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paged(c, out)
}

func (h *ReviewHandler) toggle(c *gin.Context) {
	v, err := h.svc.ToggleVisible(c.Request.Context(), c.Param("id"))
	toggled(c, "isVisible", v, err)
}

func (h *ReviewHandler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "review deleted")
}
