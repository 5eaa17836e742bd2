package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/subscriptions"
	"github.com/businessgurujee/businessgurujee/backend/go-services/pkg/response"
)

type PlanHandler struct {
	svc *subscriptions.Service
}

func NewPlanHandler(svc *subscriptions.Service) *PlanHandler {
	return &PlanHandler{svc: svc}
}

func (h *PlanHandler) Register(pub, vendor, admin *gin.RouterGroup) {
	pub.GET("/plans", h.listPublic)

	vendor.GET("/subscription", h.current)
	vendor.GET("/subscriptions", h.history)
	vendor.POST("/subscription", h.subscribe)
	vendor.DELETE("/subscription", h.cancel)

	admin.GET("/plans", h.listAll)
	admin.POST("/plans", h.create)
	admin.PUT("/plans/:id", h.update)
	admin.DELETE("/plans/:id", h.delete)
	admin.PATCH("/plans/:id/toggle-active", h.toggle)
}

func (h *PlanHandler) listPublic(c *gin.Context) {
	out, err := h.svc.ListPlans(c.Request.Context(), false)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, out)
}

func (h *PlanHandler) listAll(c *gin.Context) {
	out, err := h.svc.ListPlans(c.Request.Context(), true)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, out)
}

func (h *PlanHandler) create(c *gin.Context) {
	var in subscriptions.PlanInput
	if !bindJSON(c, &in) {
		return
	}
	p, err := h.svc.CreatePlan(c.Request.Context(), in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, p)
}

func (h *PlanHandler) update(c *gin.Context) {
	var in subscriptions.PlanPatch
	if !bindJSON(c, &in) {
		return
	}
	p, err := h.svc.UpdatePlan(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, p)
}

func (h *PlanHandler) delete(c *gin.Context) {
	if err := h.svc.DeletePlan(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "plan deleted")
}

func (h *PlanHandler) toggle(c *gin.Context) {
	v, err := h.svc.TogglePlan(c.Request.Context(), c.Param("id"))
	toggled(c, "isActive", v, err)
}

// current returns the running subscription and the listing limit it grants.
func (h *PlanHandler) current(c *gin.Context) {
	ctx := c.Request.Context()
	id := actorOf(c).ID
	sub, err := h.svc.Active(ctx, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	limit, err := h.svc.BusinessLimit(ctx, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"subscription": sub, "businessLimit": limit})
}

func (h *PlanHandler) history(c *gin.Context) {
	out, err := h.svc.History(c.Request.Context(), actorOf(c).ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, out)
}

type subscribeRequest struct {
	PlanID     string `json:"planId" binding:"required"`
	PaymentRef string `json:"paymentRef"`
}

func (h *PlanHandler) subscribe(c *gin.Context) {
	var req subscribeRequest
	if !bindJSON(c, &req) {
		return
	}
	sub, err := h.svc.Subscribe(c.Request.Context(), actorOf(c).ID, req.PlanID, req.PaymentRef)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, sub)
}

func (h *PlanHandler) cancel(c *gin.Context) {
	if err := h.svc.Cancel(c.Request.Context(), actorOf(c).ID); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "subscription cancelled")
}
