package server

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// uploadImage stores a catalog image on local disk under a generated name
// and returns the public URL the sweet's image_url field should point at.
func (s *Server) uploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		respondError(c, http.StatusBadRequest, "No image file provided")
		return
	}

	maxSize := s.cfg.Uploads.MaxSizeMB * 1024 * 1024
	if file.Size > maxSize {
		respondError(c, http.StatusBadRequest,
			fmt.Sprintf("Image too large: limit is %dMB", s.cfg.Uploads.MaxSizeMB))
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExtensions[ext] {
		respondError(c, http.StatusBadRequest, "Only image files are allowed")
		return
	}

	filename := fmt.Sprintf("image-%s%s", uuid.NewString(), ext)
	dest := filepath.Join(s.cfg.Uploads.Dir, filename)
	if err := c.SaveUploadedFile(file, dest); err != nil {
		s.log.WithError(err).Error("failed to save uploaded image")
		respondError(c, http.StatusInternalServerError, "Failed to store image")
		return
	}

	respondOK(c, gin.H{
		"filename":      filename,
		"original_name": file.Filename,
		"size":          file.Size,
		"url":           s.cfg.Uploads.PublicPath + "/" + filename,
	}, "Image uploaded successfully")
}

// deleteImage removes an uploaded catalog image. Only a bare generated
// filename with an allowed extension is accepted, so the handler cannot
// reach outside the uploads directory.
func (s *Server) deleteImage(c *gin.Context) {
	filename := c.Param("filename")
	if filename != filepath.Base(filename) || !allowedImageExtensions[strings.ToLower(filepath.Ext(filename))] {
		respondError(c, http.StatusBadRequest, "Invalid image filename")
		return
	}

	if err := os.Remove(filepath.Join(s.cfg.Uploads.Dir, filename)); err != nil {
		if os.IsNotExist(err) {
			respondError(c, http.StatusNotFound, "Image not found")
			return
		}
		s.log.WithError(err).Error("failed to delete image")
		respondError(c, http.StatusInternalServerError, "Failed to delete image")
		return
	}

	respondOK(c, nil, "Image deleted successfully")
}
