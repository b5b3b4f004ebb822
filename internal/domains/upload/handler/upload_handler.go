package handler

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/blcktgr73/StudyBlog/internal/config"
	"github.com/blcktgr73/StudyBlog/internal/infrastructure/storage"
	"github.com/blcktgr73/StudyBlog/internal/shared/response"
	"github.com/blcktgr73/StudyBlog/pkg/logger"
)

// allowedImageTypes maps accepted content types to their canonical
// file extension.
var allowedImageTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
	"image/gif":  "gif",
}

type UploadHandler struct {
	storage storage.ObjectStorage
	cfg     config.UploadConfig
}

// NewUploadHandler - constructor
func NewUploadHandler(st storage.ObjectStorage, cfg config.UploadConfig) *UploadHandler {
	return &UploadHandler{storage: st, cfg: cfg}
}

// Upload handles POST /upload. The file arrives as multipart form data
// under the "file" field; an optional "path" field picks the key prefix.
func (h *UploadHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.BadRequest(c, "No file provided")
		return
	}
	defer file.Close()

	if header.Size > h.cfg.MaxSizeBytes {
		response.BadRequest(c, fmt.Sprintf("File size exceeds %d bytes", h.cfg.MaxSizeBytes))
		return
	}

	contentType := detectContentType(file, header)
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		response.BadRequest(c, "File type not allowed. Allowed types: JPEG, PNG, WebP, GIF")
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, h.cfg.MaxSizeBytes+1))
	if err != nil {
		logger.Error("failed to read upload", err)
		response.InternalServerError(c, "Internal server error")
		return
	}
	if int64(len(data)) > h.cfg.MaxSizeBytes {
		response.BadRequest(c, fmt.Sprintf("File size exceeds %d bytes", h.cfg.MaxSizeBytes))
		return
	}

	prefix := sanitizePrefix(c.PostForm("path"))
	key := fmt.Sprintf("%s/%d_%s.%s", prefix, time.Now().UnixMilli(), randomToken(), ext)

	url, err := h.storage.Upload(c.Request.Context(), key, data, contentType)
	if err != nil {
		logger.Error("failed to store upload", err)
		response.InternalServerError(c, "Upload failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"path": key,
			"url":  url,
		},
	})
}

// detectContentType sniffs the first 512 bytes and falls back to the
// declared header when sniffing is inconclusive.
func detectContentType(file multipart.File, header *multipart.FileHeader) string {
	buf := make([]byte, 512)
	n, _ := file.Read(buf)
	_, _ = file.Seek(0, io.SeekStart)

	sniffed := http.DetectContentType(buf[:n])
	if _, ok := allowedImageTypes[sniffed]; ok {
		return sniffed
	}
	return header.Header.Get("Content-Type")
}

// sanitizePrefix keeps keys flat and traversal-free.
func sanitizePrefix(p string) string {
	p = strings.Trim(p, "/")
	if p == "" || strings.Contains(p, "..") {
		return "posts"
	}
	return p
}

func randomToken() string {
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}
