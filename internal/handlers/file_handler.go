package handlers

import (
	"io"
	"mime"
	"net/http"
	"path/filepath"

	"jobhub_backend/internal/storage"
	"jobhub_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// FileHandler streams stored profile images.
type FileHandler struct {
	*BaseHandler
	files storage.Storage
}

func NewFileHandler(base *BaseHandler, files storage.Storage) *FileHandler {
	return &FileHandler{
		BaseHandler: base,
		files:       files,
	}
}

func (h *FileHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/files/:name", h.Get)
}

func (h *FileHandler) Get(c *gin.Context) {
	name := filepath.Base(c.Param("name"))

	exists, err := h.files.Exists(c.Request.Context(), name)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	if !exists {
		apperrors.HandleError(c, apperrors.NotFound("file", "file not found"))
		return
	}

	reader, err := h.files.Get(c.Request.Context(), name)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	defer reader.Close()

	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, reader)
}
