package handlers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/sitemap"
	"github.com/businessgurujee/businessgurujee/backend/go-services/pkg/response"
)

// RegisterSitemap serves GET /sitemap.xml built on each request.
func RegisterSitemap(r gin.IRoutes, b *sitemap.Builder) {
	r.GET("/sitemap.xml", func(c *gin.Context) {
		set, err := b.Build(c.Request.Context())
		if err != nil {
			response.Error(c, err)
			return
		}
		var buf bytes.Buffer
		if err := sitemap.Write(&buf, set); err != nil {
			response.Error(c, err)
			return
		}
		c.Header("Cache-Control", "public, max-age=3600")
		c.Data(http.StatusOK, "application/xml; charset=utf-8", buf.Bytes())
	})
}
