package photos

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"photomemory-backend/internal/shared/server/middleware"
	"photomemory-backend/internal/shared/server/respond"
	"photomemory-backend/internal/shared/telemetry"
)

const maxUploadSize = 15 << 20 // 15MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches photo routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/photos", h.upload)
	rg.GET("/photos", h.list)
	rg.GET("/photos/:id", h.get)
	rg.DELETE("/photos/:id", h.remove)
}

func (h *Handler) upload(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	form, err := c.MultipartForm()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "multipart form is required", nil)
		return
	}

	// Accept both the plural field and the single-file convention.
	fileHeaders := form.File["files"]
	fileHeaders = append(fileHeaders, form.File["file"]...)
	if len(fileHeaders) == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "at least one file is required", nil)
		return
	}

	created := make([]gin.H, 0, len(fileHeaders))
	for _, fileHeader := range fileHeaders {
		photo, err := h.uploadOne(c, userID, fileHeader)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
			case errors.Is(err, ErrNotAnImage):
				respond.Error(c, http.StatusBadRequest, "validation_error", fileHeader.Filename+" is not an image", nil)
			default:
				respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to upload photo", nil)
			}
			return
		}
		created = append(created, toResponse(photo, nil))
	}

	respond.JSON(c, http.StatusCreated, created)
}

func (h *Handler) uploadOne(c *gin.Context, userID string, fileHeader *multipart.FileHeader) (Photo, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return Photo{}, ErrInvalidInput
	}
	defer file.Close()

	return h.Svc.Upload(c.Request.Context(), userID, fileHeader.Filename, file)
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	photoID := c.Param("id")

	photo, err := h.Svc.Get(c.Request.Context(), photoID, userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "photo not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch photo", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, toResponse(photo, h.summaryFor(c, photo.ID)))
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	limit := 50
	offset := 0

	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit < 0 {
		limit = 0
	}
	if limit > 100 {
		limit = 100
	}

	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = 0
	}

	photos, err := h.Svc.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list photos", nil)
		return
	}

	resp := make([]gin.H, 0, len(photos))
	for _, photo := range photos {
		resp = append(resp, toResponse(photo, h.summaryFor(c, photo.ID)))
	}

	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) remove(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	photoID := c.Param("id")

	if err := h.Svc.Delete(c.Request.Context(), photoID, userID); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "photo not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete photo", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{"message": "photo deleted"})
}

// summaryFor fetches the analysis summary for a photo, logging and
// dropping lookup failures so listings still render.
func (h *Handler) summaryFor(c *gin.Context, photoID string) *AnalysisSummary {
	summary, ok, err := h.Svc.Summary(c.Request.Context(), photoID)
	if err != nil {
		telemetry.Warn("photos.summary_lookup_failed", map[string]any{
			"photo_id": photoID,
			"error":    err.Error(),
		})
		return nil
	}
	if !ok {
		return nil
	}
	return &summary
}

func toResponse(photo Photo, summary *AnalysisSummary) gin.H {
	resp := gin.H{
		"id":               photo.ID,
		"filename":         photo.Filename,
		"originalFilename": photo.OriginalFilename,
		"storageUrl":       photo.StorageURL,
		"fileSize":         photo.FileSize,
		"mimeType":         photo.MimeType,
		"createdAt":        photo.CreatedAt,
	}
	if summary != nil {
		resp["analysis"] = summary
	}
	return resp
}
