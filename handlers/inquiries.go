package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/inquiries"
	"github.com/businessgurujee/businessgurujee/backend/go-services/pkg/response"
)

type InquiryHandler struct {
	svc *inquiries.Service
}

func NewInquiryHandler(svc *inquiries.Service) *InquiryHandler {
	return &InquiryHandler{svc: svc}
}

// Register mounts the public form on submit (rate limited by the caller),
// owner routes on vendor and the full listing on admin.
func (h *InquiryHandler) Register(submit, vendor, admin *gin.RouterGroup) {
	submit.POST("/inquiries", h.create)

	vendor.GET("/inquiries", h.list)
	vendor.PATCH("/inquiries/:id/status", h.setStatus)
	vendor.DELETE("/inquiries/:id", h.delete)

	admin.GET("/inquiries", h.list)
}

func (h *InquiryHandler) create(c *gin.Context) {
	var in inquiries.Input
	if !bindJSON(c, &in) {
		return
	}
	i, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, i)
}

type inquiryQuery struct {
	BusinessID string `form:"businessId"`
	Status     string `form:"status"`
}

func (h *InquiryHandler) list(c *gin.Context) {
	var q inquiryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "invalid query: "+err.Error())
		return
	}
	f := inquiries.Filter{BusinessID: q.BusinessID, Status: q.Status}
	out, err := h.svc.ListForActor(c.Request.Context(), actorOf(c), f, pageOf(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paged(c, out)
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *InquiryHandler) setStatus(c *gin.Context) {
	var req statusRequest
	if !bindJSON(c, &req) {
		return
	}
	i, err := h.svc.UpdateStatus(c.Request.Context(), actorOf(c), c.Param("id"), req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, i)
}

func (h *InquiryHandler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), actorOf(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "inquiry deleted")
}
