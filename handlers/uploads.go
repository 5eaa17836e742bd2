package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/storage"
	"github.com/businessgurujee/businessgurujee/backend/go-services/pkg/metrics"
	"github.com/businessgurujee/businessgurujee/backend/go-services/pkg/response"
)

type UploadHandler struct {
	images *storage.Images
}

func NewUploadHandler(images *storage.Images) *UploadHandler {
	return &UploadHandler{images: images}
}

func (h *UploadHandler) Register(authed, admin *gin.RouterGroup) {
	authed.POST("/uploads", h.upload)
	admin.DELETE("/uploads", h.delete)
}

// upload stores the multipart field "image" under the optional "folder".
func (h *UploadHandler) upload(c *gin.Context) {
	fh, err := c.FormFile("image")
	if err != nil {
		response.BadRequest(c, "multipart field \"image\" is required")
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.BadRequest(c, "cannot read upload")
		return
	}
	defer f.Close()

	stored, err := h.images.Save(c.Request.Context(), c.PostForm("folder"), f, fh.Size)
	if err != nil {
		response.Error(c, err)
		return
	}
	folder, _, _ := strings.Cut(stored.Key, "/")
	metrics.UploadBytes.WithLabelValues(folder).Add(float64(stored.Size))
	response.Created(c, stored)
}

func (h *UploadHandler) delete(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		response.Fail(c, http.StatusBadRequest, "key is required")
		return
	}
	if err := h.images.Delete(c.Request.Context(), key); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "image deleted")
}
