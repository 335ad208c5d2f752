package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"photomemory-backend/internal/analyses"
	googleauth "photomemory-backend/internal/auth"
	"photomemory-backend/internal/photos"
	"photomemory-backend/internal/shared/config"
	"photomemory-backend/internal/shared/metrics"
	"photomemory-backend/internal/shared/server/middleware"
	"photomemory-backend/internal/shared/server/respond"
	"photomemory-backend/internal/users"
)

// RouterDeps carries the handlers the router registers.
type RouterDeps struct {
	Config          config.Config
	PhotosHandler   *photos.Handler
	AnalysesHandler *analyses.Handler
	UsersHandler    *users.Handler
	GoogleAuth      *googleauth.GoogleService
	// LocalUploadsDir enables static serving of uploaded photos when the
	// local object store is in use. Empty disables it.
	LocalUploadsDir string
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	if deps.LocalUploadsDir != "" {
		r.Static("/uploads", deps.LocalUploadsDir)
	}

	api := r.Group("/api/v1")
	api.Use(middleware.Auth())

	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	api.GET("/metrics", metrics.Handler())

	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	if deps.UsersHandler != nil {
		deps.UsersHandler.RegisterRoutes(api)
	}
	if deps.PhotosHandler != nil {
		deps.PhotosHandler.RegisterRoutes(api)
	}
	if deps.AnalysesHandler != nil {
		deps.AnalysesHandler.RegisterRoutes(api)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
