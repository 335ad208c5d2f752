package analyses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"photomemory-backend/internal/imagefetch"
	"photomemory-backend/internal/photos"
	"photomemory-backend/internal/shared/server/middleware"
	"photomemory-backend/internal/shared/server/respond"
	"photomemory-backend/internal/vision"
)

const maxBatchSize = 20

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/photos/:id/analyze", h.analyze)
	rg.POST("/photos/analyze-batch", h.analyzeBatch)
	rg.GET("/photos/:id/analysis", h.get)
}

type analyzeRequest struct {
	Context string `json:"context"`
}

func (h *Handler) analyze(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	photoID := c.Param("id")

	var req analyzeRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
			return
		}
	}

	c.Set("photoId", photoID)

	view, err := h.Svc.AnalyzeOne(c.Request.Context(), photoID, userID, req.Context)
	if err != nil {
		h.respondAnalyzeError(c, err)
		return
	}

	c.Set("analysisId", view.ID)
	respond.JSON(c, http.StatusOK, view)
}

type analyzeBatchRequest struct {
	PhotoIDs []string `json:"photoIds"`
	Context  string   `json:"context"`
}

func (h *Handler) analyzeBatch(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req analyzeBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if len(req.PhotoIDs) == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "photoIds is required", nil)
		return
	}
	if len(req.PhotoIDs) > maxBatchSize {
		respond.Error(c, http.StatusBadRequest, "validation_error", "too many photos in one batch", nil)
		return
	}

	result, err := h.Svc.AnalyzeBatch(c.Request.Context(), req.PhotoIDs, userID, req.Context)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to run batch analysis", nil)
		return
	}

	respond.JSON(c, http.StatusOK, result)
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	photoID := c.Param("id")

	view, err := h.Svc.GetByPhotoID(c.Request.Context(), photoID, userID)
	if err != nil {
		switch {
		case errors.Is(err, photos.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "photo not found", nil)
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "analysis not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch analysis", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, view)
}

func (h *Handler) respondAnalyzeError(c *gin.Context, err error) {
	var fetchErr *imagefetch.FetchError
	var modelErr *vision.ModelError

	switch {
	case errors.Is(err, photos.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "photo not found", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", "photo id is required", nil)
	case errors.As(err, &fetchErr):
		respond.Error(c, http.StatusBadGateway, "fetch_error", "failed to fetch photo from storage", nil)
	case errors.As(err, &modelErr):
		respond.Error(c, http.StatusBadGateway, "model_error", "vision model request failed", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to analyze photo", nil)
	}
}
