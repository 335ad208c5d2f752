package config

import (
	"log"
	"os"
	"strings"
)

// Config holds application configuration.
type Config struct {
	Port            string
	BaseURL         string
	CORSAllowOrigin []string
	ObjectStoreType string
	LocalStoreDir   string
	MinioEndpoint   string
	MinioRegion     string
	MinioBucket     string
	MinioAccessKey  string
	MinioSecretKey  string
	MinioUseSSL     bool
	OpenAIAPIKey    string
	VisionModel     string
	DatabaseURL     string
	Env             string
	GoogleClientID  string
	GoogleClientSec string
	GoogleRedirect  string
	UIRedirectURL   string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" {
		log.Printf("DATABASE_URL is required in production")
	}

	return Config{
		Port:            getEnv("PORT", "8080"),
		BaseURL:         strings.TrimRight(getEnv("BASE_URL", "http://localhost:8080"), "/"),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		ObjectStoreType: normalizeStoreType(getEnv("OBJECT_STORE", "local")),
		LocalStoreDir:   getEnv("LOCAL_STORE_DIR", "./uploads"),
		MinioEndpoint:   getEnv("MINIO_ENDPOINT", ""),
		MinioRegion:     getEnv("MINIO_REGION", ""),
		MinioBucket:     getEnv("MINIO_BUCKET", "photos"),
		MinioAccessKey:  getEnv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey:  getEnv("MINIO_SECRET_KEY", ""),
		MinioUseSSL:     getEnv("MINIO_USE_SSL", "false") == "true",
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		VisionModel:     getEnv("VISION_MODEL", "gpt-4o"),
		DatabaseURL:     dbURL,
		Env:             env,
		GoogleClientID:  getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSec: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirect:  getEnv("GOOGLE_REDIRECT_URL", ""),
		UIRedirectURL:   getEnv("UI_REDIRECT_URL", "http://localhost:5173"),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "minio", "s3":
		return "minio"
	default:
		return "local"
	}
}
