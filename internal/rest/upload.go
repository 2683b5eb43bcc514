package rest

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/seemaakh/bitefinder/domain"
)

const MaxUploadSize = 10 << 20 // 10 MB

var mediaTypeByExt = map[string]string{
	".jpg":  domain.MediaTypePhoto,
	".jpeg": domain.MediaTypePhoto,
	".png":  domain.MediaTypePhoto,
	".gif":  domain.MediaTypePhoto,
	".webp": domain.MediaTypePhoto,
	".mp4":  domain.MediaTypeVideo,
	".mov":  domain.MediaTypeVideo,
	".webm": domain.MediaTypeVideo,
}

type uploadHandler struct {
	dir string
}

func NewUploadHandler(dir string) *uploadHandler {
	return &uploadHandler{
		dir: dir,
	}
}

// Upload stores a photo/video attachment under a randomized name and
// returns the public path plus the detected media type.
func (h *uploadHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide a file"})
		return
	}
	if file.Size > MaxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File exceeds the 10MB limit"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	mediaType, ok := mediaTypeByExt[ext]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported file type"})
		return
	}

	name := uuid.NewString() + ext
	dst := filepath.Join(h.dir, name)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"url":        "/uploads/" + name,
		"media_type": mediaType,
	})
}
