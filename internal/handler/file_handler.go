package handler

import (
	"context"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/internship-admin/internal/dto"
	"github.com/noah-isme/internship-admin/internal/models"
	"github.com/noah-isme/internship-admin/internal/service"
	appErrors "github.com/noah-isme/internship-admin/pkg/errors"
	"github.com/noah-isme/internship-admin/pkg/response"
)

type fileService interface {
	Open(ctx context.Context, kind models.FileKind, recordID int64) (*dto.ObjectHandle, error)
	Download(ctx context.Context, studentID int64) (*dto.ObjectHandle, error)
	Resolve(token string) (*service.ServedObject, error)
	Release(id string) bool
}

// FileHandler hands out attachment links and serves the objects behind them.
type FileHandler struct {
	files fileService
}

// NewFileHandler constructs a FileHandler.
func NewFileHandler(files fileService) *FileHandler {
	return &FileHandler{files: files}
}

// OpenCV godoc
// @Summary Open a student's CV
// @Description Returns a single-use link serving the CV inline
// @Tags Files
// @Produce json
// @Param id path int true "Student ID"
// @Success 201 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/{id}/cv/open [get]
func (h *FileHandler) OpenCV(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	h.respond(c, func(ctx context.Context) (*dto.ObjectHandle, error) {
		return h.files.Open(ctx, models.FileCV, id)
	})
}

// DownloadCV godoc
// @Summary Download a student's CV
// @Description Returns a single-use link serving the CV as an attachment
// @Tags Files
// @Produce json
// @Param id path int true "Student ID"
// @Success 201 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/{id}/cv/download [get]
func (h *FileHandler) DownloadCV(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	h.respond(c, func(ctx context.Context) (*dto.ObjectHandle, error) {
		return h.files.Download(ctx, id)
	})
}

// InternshipFile godoc
// @Summary Open an internship attachment
// @Tags Files
// @Produce json
// @Param id path int true "Internship ID"
// @Param kind path string true "evidences, survey1, survey2 or survey3"
// @Success 201 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /internships/{id}/files/{kind} [get]
func (h *FileHandler) InternshipFile(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	kind, err := models.ParseFileKind(c.Param("kind"))
	if err != nil || kind == models.FileCV {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "unknown file kind"))
		return
	}
	h.respond(c, func(ctx context.Context) (*dto.ObjectHandle, error) {
		return h.files.Open(ctx, kind, id)
	})
}

func (h *FileHandler) respond(c *gin.Context, fetch func(ctx context.Context) (*dto.ObjectHandle, error)) {
	handle, err := fetch(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, handle)
}

// ServeObject godoc
// @Summary Serve a spooled object
// @Description The link works once; the object is released after it is served
// @Tags Files
// @Produce octet-stream
// @Param token path string true "Signed object token"
// @Success 200 {file} file
// @Failure 410 {object} response.Envelope
// @Router /objects/{token} [get]
func (h *FileHandler) ServeObject(c *gin.Context) {
	obj, err := h.files.Resolve(c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer obj.Close() //nolint:errcheck

	disposition := mime.FormatMediaType(string(obj.Handle.Disposition), map[string]string{"filename": obj.Handle.Filename})
	if disposition == "" {
		disposition = string(obj.Handle.Disposition)
	}
	c.Header("Cache-Control", "no-store")
	c.DataFromReader(http.StatusOK, obj.Handle.Size, obj.Handle.ContentType, obj, map[string]string{
		"Content-Disposition": disposition,
	})
}

// ReleaseObject godoc
// @Summary Revoke an object link before it is used
// @Tags Files
// @Param id path string true "Object ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /objects/{id} [delete]
func (h *FileHandler) ReleaseObject(c *gin.Context) {
	if !h.files.Release(c.Param("id")) {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "object not found"))
		return
	}
	response.NoContent(c)
}
