package server

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/sweetdelights/backend/internal/config"
	"github.com/sweetdelights/backend/internal/logging"
)

func deleteImageContext(t *testing.T, uploadsDir, filename string) (*Server, *gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	srv := &Server{
		cfg: &config.Config{Uploads: config.UploadsConfig{Dir: uploadsDir}},
		log: logging.GetLogger(),
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "filename", Value: filename}}
	return srv, c, w
}

func TestDeleteImage_RemovesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "image-abc.jpg")
	if err := os.WriteFile(path, []byte("img"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	srv, c, w := deleteImageContext(t, dir, "image-abc.jpg")
	srv.deleteImage(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", w.Code)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("file still exists after delete")
	}
}

func TestDeleteImage_MissingFile(t *testing.T) {
	srv, c, w := deleteImageContext(t, t.TempDir(), "image-gone.png")
	srv.deleteImage(c)

	if w.Code != http.StatusNotFound {
		t.Errorf("status %d, want 404", w.Code)
	}
}

func TestDeleteImage_RejectsBadFilenames(t *testing.T) {
	for _, filename := range []string{"notes.txt", "../secret.jpg", "a/b.png", ""} {
		srv, c, w := deleteImageContext(t, t.TempDir(), filename)
		srv.deleteImage(c)

		if w.Code != http.StatusBadRequest {
			t.Errorf("filename %q: status %d, want 400", filename, w.Code)
		}
	}
}
