package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/config"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/mailer"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/models"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/oidc"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/sessions"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/tokens"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/vendors"
	"github.com/businessgurujee/businessgurujee/backend/go-services/pkg/logger"
	"github.com/businessgurujee/businessgurujee/backend/go-services/pkg/middleware"
	"github.com/businessgurujee/businessgurujee/backend/go-services/pkg/response"
)

// Welcomer sends the sign-up mail; failures never fail registration.
type Welcomer interface {
	Welcome(ctx context.Context, to string, d mailer.WelcomeData) error
}

// AuthHandler holds dependencies
type AuthHandler struct {
	cfg         *config.Config
	vendorsSvc  *vendors.Service
	sessionsSvc *sessions.Service
	blacklist   *sessions.Blacklist
	provider    middleware.Verifier
	welcome     Welcomer
}

func NewAuthHandler(cfg *config.Config, v *vendors.Service, s *sessions.Service, bl *sessions.Blacklist) *AuthHandler {
	return &AuthHandler{cfg: cfg, vendorsSvc: v, sessionsSvc: s, blacklist: bl}
}

// WithProvider enables POST /auth/oidc using ver to check provider ID tokens.
func (h *AuthHandler) WithProvider(ver middleware.Verifier) *AuthHandler {
	h.provider = ver
	return h
}

func (h *AuthHandler) WithWelcome(w Welcomer) *AuthHandler {
	h.welcome = w
	return h
}

// Register routes under /auth
func (h *AuthHandler) Register(rg *gin.RouterGroup) {
	a := rg.Group("/auth")
	a.POST("/register", h.SignUp)
	a.POST("/login", h.Login)
	a.POST("/refresh", h.Refresh)
	a.POST("/logout", h.Logout)
	a.POST("/oidc", h.ProviderLogin)
}

// RegisterMe mounts GET /me on an authenticated group.
func (h *AuthHandler) RegisterMe(authed *gin.RouterGroup) {
	authed.GET("/me", h.Me)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type providerRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

// issue creates a refresh session and an access token for v.
func (h *AuthHandler) issue(c *gin.Context, status int, v *models.Vendor) {
	ctx := c.Request.Context()
	refresh, err := h.sessionsSvc.CreateSession(ctx, v.ID, c.Request.UserAgent(), h.cfg.JWT.RefreshTokenTTL)
	if err != nil {
		response.Error(c, err)
		return
	}
	access, err := tokens.GenerateAccessToken(h.cfg, v, h.cfg.JWT.AccessTokenTTL)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(status, gin.H{"success": true, "data": gin.H{
		"accessToken":  access,
		"refreshToken": refresh,
		"expiresIn":    int(h.cfg.JWT.AccessTokenTTL.Seconds()),
		"vendor":       v,
	}})
}

func (h *AuthHandler) SignUp(c *gin.Context) {
	var req vendors.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	v, err := h.vendorsSvc.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	logger.Infof("vendor registered id=%s", v.ID)
	if h.welcome != nil {
		if err := h.welcome.Welcome(c.Request.Context(), v.Email, mailer.WelcomeData{Name: v.Name}); err != nil {
			logger.Warnf("welcome mail to vendor %s: %v", v.ID, err)
		}
	}
	h.issue(c, http.StatusCreated, v)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "email and password are required")
		return
	}
	v, err := h.vendorsSvc.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, models.ErrUnauthorized) {
			response.Fail(c, http.StatusUnauthorized, "invalid email or password")
			return
		}
		response.Error(c, err)
		return
	}
	h.issue(c, http.StatusOK, v)
}

// ProviderLogin exchanges a verified provider ID token for our own tokens.
func (h *AuthHandler) ProviderLogin(c *gin.Context) {
	if h.provider == nil {
		response.Fail(c, http.StatusNotImplemented, "sign-in provider is not configured")
		return
	}
	var req providerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "idToken is required")
		return
	}
	claims, err := oidc.Claims(c.Request.Context(), h.provider, req.IDToken)
	if err != nil {
		logger.Debugf("provider token rejected: %v", err)
		response.Fail(c, http.StatusUnauthorized, "invalid id token")
		return
	}
	v, err := h.vendorsSvc.UpsertFromClaims(c.Request.Context(), claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.issue(c, http.StatusOK, v)
}

// Refresh accepts a refresh token and returns a new access token
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "refreshToken is required")
		return
	}
	ctx := c.Request.Context()
	sess, err := h.sessionsSvc.ValidateRefresh(ctx, req.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}
	if sess == nil {
		response.Fail(c, http.StatusUnauthorized, "invalid refresh token")
		return
	}
	v, err := h.vendorsSvc.Get(ctx, sess.VendorID)
	if err != nil {
		if models.IsNotFound(err) {
			_ = h.sessionsSvc.DeleteRefresh(ctx, req.RefreshToken)
			response.Fail(c, http.StatusUnauthorized, "invalid refresh token")
			return
		}
		response.Error(c, err)
		return
	}
	if !v.IsActive {
		_ = h.sessionsSvc.RevokeVendor(ctx, v.ID)
		response.Fail(c, http.StatusForbidden, "account is disabled")
		return
	}
	access, err := tokens.GenerateAccessToken(h.cfg, v, h.cfg.JWT.AccessTokenTTL)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"accessToken": access, "expiresIn": int(h.cfg.JWT.AccessTokenTTL.Seconds())})
}

// Logout invalidates the refresh token and blacklists the presented access token
// until it would have expired.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "refreshToken is required")
		return
	}
	ctx := c.Request.Context()
	if at, ok := bearerToken(c); ok {
		if err := h.blacklist.Add(ctx, at, tokens.ExpiresIn(at)); err != nil {
			logger.Errorf("blacklist access token: %v", err)
			response.Fail(c, http.StatusServiceUnavailable, "failed to revoke access token")
			return
		}
	}
	if err := h.sessionsSvc.DeleteRefresh(ctx, req.RefreshToken); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "logged out")
}

// Me returns the caller's account.
func (h *AuthHandler) Me(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, "not authenticated")
		return
	}
	v, err := h.vendorsSvc.Get(c.Request.Context(), actor.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, v)
}
