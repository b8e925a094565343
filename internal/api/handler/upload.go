package handler

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"complainthub/backend/internal/config"
)

// UploadImage stores a complaint image under a random name and returns the
// URL to put in the complaint's imageUrl field.
func (h *Handler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please select a valid image file."})
		return
	}
	if !strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please select a valid image file."})
		return
	}
	if file.Size > config.MaxImageBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image file size must be less than 5MB."})
		return
	}

	name := uuid.NewString() + filepath.Ext(file.Filename)
	if err := c.SaveUploadedFile(file, filepath.Join(h.Cfg.UploadDir, name)); err != nil {
		h.log.Error("save upload", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image. Please try again."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"imageUrl": "/uploads/" + name})
}
