package handler

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"simple-board/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UploadHandler stores uploaded files under a configured directory with
// random names and hands back the public URL.
type UploadHandler struct {
	Dir         string
	MaxFileSize int64
	MaxFiles    int
}

func NewUploadHandler(dir string, maxFileSize int64, maxFiles int) *UploadHandler {
	if maxFileSize <= 0 {
		maxFileSize = 10 * 1024 * 1024
	}
	if maxFiles <= 0 {
		maxFiles = 10
	}
	return &UploadHandler{Dir: dir, MaxFileSize: maxFileSize, MaxFiles: maxFiles}
}

var (
	imageExts = map[string]bool{"jpg": true, "jpeg": true, "png": true, "gif": true, "webp": true, "bmp": true, "svg": true}
	videoExts = map[string]bool{"mp4": true, "avi": true, "mov": true, "wmv": true, "flv": true, "webm": true, "mkv": true}
	audioExts = map[string]bool{"mp3": true, "wav": true, "flac": true, "aac": true, "ogg": true, "m4a": true}
)

// fileType buckets a filename into image/video/audio/file by extension.
func fileType(filename string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	switch {
	case imageExts[ext]:
		return "image"
	case videoExts[ext]:
		return "video"
	case audioExts[ext]:
		return "audio"
	default:
		return "file"
	}
}

func (h *UploadHandler) save(c *gin.Context, file *multipart.FileHeader) (util.Response, error) {
	if err := os.MkdirAll(h.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	// random name to avoid collisions, original extension kept
	ext := filepath.Ext(file.Filename)
	name := uuid.NewString() + strings.ToLower(ext)
	dst := filepath.Join(h.Dir, name)

	if err := c.SaveUploadedFile(file, dst); err != nil {
		return nil, fmt.Errorf("save file: %w", err)
	}

	mimeType := file.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	return util.Response{
		"url":       "/uploads/" + name,
		"filename":  file.Filename,
		"size":      file.Size,
		"type":      fileType(file.Filename),
		"mime_type": mimeType,
	}, nil
}

// Upload handles a single file.
func (h *UploadHandler) Upload(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "file is required")
		return
	}
	if file.Size > h.MaxFileSize {
		util.Error(c, http.StatusRequestEntityTooLarge, util.CodeInvalidParam, "file too large")
		return
	}

	result, err := h.save(c, file)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "file upload failed")
		return
	}
	util.Success(c, result)
}

// UploadMultiple handles up to MaxFiles files in one request. Individual
// failures are reported per file without failing the batch.
func (h *UploadHandler) UploadMultiple(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid multipart form")
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "no files provided")
		return
	}
	if len(files) > h.MaxFiles {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "too many files")
		return
	}

	results := make([]util.Response, 0, len(files))
	for _, file := range files {
		if file.Size > h.MaxFileSize {
			results = append(results, util.Response{"error": "file too large: " + file.Filename})
			continue
		}
		result, err := h.save(c, file)
		if err != nil {
			results = append(results, util.Response{"error": "failed to upload " + file.Filename})
			continue
		}
		results = append(results, result)
	}

	util.Success(c, util.Response{"files": results})
}
