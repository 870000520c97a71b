package handlers

import (
	"bytes"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/vanbenpham/forunime-backend/logger"
	"github.com/vanbenpham/forunime-backend/models"
	"github.com/vanbenpham/forunime-backend/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nfnt/resize"
)

const thumbnailWidth = 320

type UploadResponse struct {
	URL      string `json:"url"`
	ThumbURL string `json:"thumb_url"`
}

// PhotoUpload stores the posted image and a JPEG thumbnail and returns
// public URLs for both. Only formats Go can decode are accepted.
func PhotoUpload(c *gin.Context, user *models.User) {
	fileHeader, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: "missing photo"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		abortWithError(c, err)
		return
	}
	defer file.Close()
	buf := bytes.Buffer{}
	if _, err = io.Copy(&buf, file); err != nil {
		abortWithError(c, err)
		return
	}
	img, _, err := image.Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: "unsupported image format"})
		return
	}
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if ext == "" {
		ext = ".jpg"
	}
	name := uuid.NewString()
	photoPath := "photos/" + name + ext
	if _, err = storage.Default.Save(photoPath, bytes.NewReader(buf.Bytes())); err != nil {
		abortWithError(c, err)
		return
	}
	thumb := resize.Resize(thumbnailWidth, 0, img, resize.Lanczos3)
	thumbBuf := bytes.Buffer{}
	if err = jpeg.Encode(&thumbBuf, thumb, &jpeg.Options{Quality: 85}); err != nil {
		abortWithError(c, err)
		return
	}
	thumbPath := "thumbs/" + name + ".jpg"
	if _, err = storage.Default.Save(thumbPath, bytes.NewReader(thumbBuf.Bytes())); err != nil {
		abortWithError(c, err)
		return
	}
	logger.Debugf("user %d uploaded photo %s (%d bytes)", user.ID, photoPath, buf.Len())
	c.JSON(http.StatusCreated, UploadResponse{
		URL:      storage.Default.URL(photoPath),
		ThumbURL: storage.Default.URL(thumbPath),
	})
}
