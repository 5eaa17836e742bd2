package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger serves a Swagger UI page and the OpenAPI document it loads.
func RegisterSwagger(r gin.IRoutes) {
	r.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})
	r.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>Business Gurujee API</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({ url: '/swagger/doc.json', dom_id: '#swagger-ui' })
    </script>
  </body>
</html>`

const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "Business Gurujee API", "version": "v1" },
  "components": {
    "securitySchemes": { "bearer": { "type": "http", "scheme": "bearer", "bearerFormat": "JWT" } }
  },
  "paths": {
    "/auth/register": { "post": { "summary": "Create a vendor account", "responses": { "201": { "description": "tokens and vendor" }, "409": { "description": "email taken" } } } },
    "/auth/login": { "post": { "summary": "Log in with email and password", "responses": { "200": { "description": "tokens and vendor" }, "401": { "description": "invalid credentials" } } } },
    "/auth/refresh": { "post": { "summary": "Exchange a refresh token for an access token", "responses": { "200": { "description": "new access token" }, "401": { "description": "invalid refresh token" } } } },
    "/auth/logout": { "post": { "summary": "Drop the refresh session and revoke the access token", "responses": { "200": { "description": "logged out" } } } },
    "/auth/oidc": { "post": { "summary": "Sign in with a provider ID token", "responses": { "200": { "description": "tokens and vendor" }, "501": { "description": "no provider configured" } } } },
    "/api/v1/me": { "get": { "summary": "Current account", "security": [{ "bearer": [] }], "responses": { "200": { "description": "vendor" } } } },
    "/api/v1/businesses": { "get": { "summary": "Search approved listings (category, city, q, featured, page, limit)", "responses": { "200": { "description": "page of businesses" } } } },
    "/api/v1/businesses/nearby": { "get": { "summary": "Listings near lat/lng within radius km", "responses": { "200": { "description": "businesses ordered by distance" } } } },
    "/api/v1/businesses/{id}": { "get": { "summary": "Listing by id", "responses": { "200": { "description": "business" }, "404": { "description": "not found" } } } },
    "/api/v1/businesses/slug/{slug}": { "get": { "summary": "Listing by slug", "responses": { "200": { "description": "business" } } } },
    "/api/v1/businesses/{id}/reviews": { "get": { "summary": "Visible reviews, newest first", "responses": { "200": { "description": "page of reviews" } } } },
    "/api/v1/categories": { "get": { "summary": "Active categories", "responses": { "200": { "description": "categories" } } } },
    "/api/v1/categories/{slug}": { "get": { "summary": "Category by slug", "responses": { "200": { "description": "category" } } } },
    "/api/v1/hero": { "get": { "summary": "Active carousel banners", "responses": { "200": { "description": "banners" } } } },
    "/api/v1/ads": { "get": { "summary": "Live ads for a placement", "responses": { "200": { "description": "ads" } } } },
    "/api/v1/ads/{id}/click": { "get": { "summary": "Count a click and redirect", "responses": { "302": { "description": "redirect to advertiser" } } } },
    "/api/v1/plans": { "get": { "summary": "Available plans", "responses": { "200": { "description": "plans" } } } },
    "/api/v1/reviews": { "post": { "summary": "Submit a review", "responses": { "201": { "description": "review" }, "429": { "description": "rate limited" } } } },
    "/api/v1/inquiries": { "post": { "summary": "Send an inquiry to a business", "responses": { "201": { "description": "inquiry" }, "429": { "description": "rate limited" } } } },
    "/api/v1/uploads": { "post": { "summary": "Upload an image (multipart field image, optional folder)", "security": [{ "bearer": [] }], "responses": { "201": { "description": "url and key" } } } },
    "/api/v1/vendor/businesses": {
      "get": { "summary": "Own listings", "security": [{ "bearer": [] }], "responses": { "200": { "description": "page of businesses" } } },
      "post": { "summary": "Create a listing", "security": [{ "bearer": [] }], "responses": { "201": { "description": "business" }, "402": { "description": "plan limit reached" } } }
    },
    "/api/v1/vendor/inquiries": { "get": { "summary": "Inquiries on own listings", "security": [{ "bearer": [] }], "responses": { "200": { "description": "page of inquiries" } } } },
    "/api/v1/vendor/subscription": {
      "get": { "summary": "Current subscription and listing limit", "security": [{ "bearer": [] }], "responses": { "200": { "description": "subscription" } } },
      "post": { "summary": "Subscribe to a plan", "security": [{ "bearer": [] }], "responses": { "201": { "description": "subscription" } } }
    },
    "/api/v1/admin/dashboard": { "get": { "summary": "Admin counts", "security": [{ "bearer": [] }], "responses": { "200": { "description": "dashboard" } } } },
    "/api/v1/admin/businesses/{id}/status": { "patch": { "summary": "Approve or reject a listing", "security": [{ "bearer": [] }], "responses": { "200": { "description": "updated" } } } },
    "/sitemap.xml": { "get": { "summary": "Sitemap of public pages", "responses": { "200": { "description": "urlset" } } } },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "text exposition" } } } }
  }
}`
