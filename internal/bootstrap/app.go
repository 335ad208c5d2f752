package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"photomemory-backend/internal/analyses"
	googleauth "photomemory-backend/internal/auth"
	"photomemory-backend/internal/imagefetch"
	"photomemory-backend/internal/photos"
	"photomemory-backend/internal/shared/config"
	"photomemory-backend/internal/shared/server"
	"photomemory-backend/internal/shared/storage/db"
	"photomemory-backend/internal/shared/storage/object"
	localstore "photomemory-backend/internal/shared/storage/object/local"
	miniostore "photomemory-backend/internal/shared/storage/object/minio"
	"photomemory-backend/internal/users"
	"photomemory-backend/internal/vision"
	openaivision "photomemory-backend/internal/vision/openai"
)

var errDatabaseURLRequired = errors.New("DATABASE_URL is required")

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore

	PhotosRepo   photos.Repo
	AnalysesRepo analyses.Repo
	UsersRepo    users.Repo

	PhotosService   *photos.Service
	AnalysesService *analyses.Service
	UsersService    *users.Service

	PhotosHandler   *photos.Handler
	AnalysesHandler *analyses.Handler
	UsersHandler    *users.Handler
	GoogleAuth      *googleauth.GoogleService
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
	}

	if err := buildServices(app); err != nil {
		return nil, err
	}

	uploadsDir := ""
	if local, ok := store.(*localstore.Store); ok {
		uploadsDir = local.BaseDir()
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          app.Config,
		PhotosHandler:   app.PhotosHandler,
		AnalysesHandler: app.AnalysesHandler,
		UsersHandler:    app.UsersHandler,
		GoogleAuth:      app.GoogleAuth,
		LocalUploadsDir: uploadsDir,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, errDatabaseURLRequired
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: migrations failed; using in-memory repositories: %v", err)
			sqlDB.Close()
			return nil, nil
		}
		return nil, err
	}

	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "minio":
		return miniostore.New(ctx,
			cfg.MinioEndpoint,
			cfg.MinioRegion,
			cfg.MinioBucket,
			cfg.MinioAccessKey,
			cfg.MinioSecretKey,
			cfg.MinioUseSSL,
		)
	default:
		return localstore.New(cfg.LocalStoreDir, cfg.BaseURL), nil
	}
}

func buildServices(app *App) error {
	var photoRepo photos.Repo
	var analysisRepo analyses.Repo
	var userRepo users.Repo

	if app.DB != nil {
		photoRepo = &photos.PGRepo{DB: app.DB}
		analysisRepo = &analyses.PGRepo{DB: app.DB}
		userRepo = &users.PGRepo{DB: app.DB}
	} else {
		photoRepo = photos.NewMemoryRepo()
		analysisRepo = analyses.NewMemoryRepo()
		userRepo = users.NewMemoryRepo()
	}

	visionClient := vision.Client(vision.PlaceholderClient{})
	if strings.TrimSpace(app.Config.OpenAIAPIKey) != "" {
		client, err := openaivision.NewClient(app.Config.OpenAIAPIKey, app.Config.VisionModel)
		if err != nil {
			return err
		}
		visionClient = client
	}

	photoSvc := &photos.Service{
		Store:    app.Store,
		Repo:     photoRepo,
		Analyses: analyses.Gateway{Repo: analysisRepo},
	}

	analysisSvc := &analyses.Service{
		Repo:    analysisRepo,
		Photos:  photoRepo,
		Fetcher: imagefetch.NewHTTPFetcher(),
		Vision:  visionClient,
	}

	userSvc := users.NewService(userRepo)
	googleAuthSvc := googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSec,
		app.Config.GoogleRedirect,
		app.Config.UIRedirectURL,
		userSvc,
	)

	app.PhotosRepo = photoRepo
	app.AnalysesRepo = analysisRepo
	app.UsersRepo = userRepo
	app.PhotosService = photoSvc
	app.AnalysesService = analysisSvc
	app.UsersService = userSvc
	app.PhotosHandler = photos.NewHandler(photoSvc)
	app.AnalysesHandler = analyses.NewHandler(analysisSvc)
	app.UsersHandler = users.NewHandler(userSvc)
	app.GoogleAuth = googleAuthSvc

	return nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
