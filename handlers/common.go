package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/models"
	"github.com/businessgurujee/businessgurujee/backend/go-services/pkg/middleware"
	"github.com/businessgurujee/businessgurujee/backend/go-services/pkg/response"
)

func bearerToken(c *gin.Context) (string, bool) {
	if at := middleware.AccessToken(c); at != "" {
		return at, true
	}
	raw, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	raw = strings.TrimSpace(raw)
	return raw, ok && raw != ""
}

func actorOf(c *gin.Context) models.Actor {
	a, _ := middleware.ActorFrom(c)
	return a
}

func pageOf(c *gin.Context) models.PageRequest {
	return models.ParsePage(c.Query("page"), c.Query("limit"))
}

// bindJSON binds the body into v, writing a 400 on failure.
func bindJSON(c *gin.Context, v interface{}) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return false
	}
	return true
}

// toggled writes {"success":true,"data":{"<field>":value}}.
func toggled(c *gin.Context, field string, value bool, err error) {
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{field: value})
}
