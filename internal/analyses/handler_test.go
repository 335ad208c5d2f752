package analyses

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"photomemory-backend/internal/imagefetch"
	"photomemory-backend/internal/photos"
)

func newTestRouter(t *testing.T, svc *Service) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userId", "user-1")
		c.Next()
	})
	api := r.Group("/api/v1")
	NewHandler(svc).RegisterRoutes(api)
	return r
}

func seedHandlerPhoto(t *testing.T, repo photos.Repo) photos.Photo {
	t.Helper()
	photo := photos.Photo{
		ID:         "photo-1",
		UserID:     "user-1",
		Filename:   "u/abc.jpg",
		StorageURL: "http://localhost:8080/uploads/u/abc.jpg",
		CreatedAt:  time.Now().UTC(),
	}
	if err := repo.Create(context.Background(), photo); err != nil {
		t.Fatalf("seed photo: %v", err)
	}
	return photo
}

func TestAnalyzeEndpoint(t *testing.T) {
	photoRepo := photos.NewMemoryRepo()
	photo := seedHandlerPhoto(t, photoRepo)

	svc := &Service{
		Repo:    NewMemoryRepo(),
		Photos:  photoRepo,
		Fetcher: &fakeFetcher{data: []byte("jpeg")},
		Vision:  &fakeVision{response: "## Location\nParis\n## Historical & Cultural Context\nOld city"},
	}
	router := newTestRouter(t, svc)

	body := bytes.NewBufferString(`{"context":"honeymoon"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/photos/"+photo.ID+"/analyze", body)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.Code, resp.Body.String())
	}

	var view View
	if err := json.NewDecoder(resp.Body).Decode(&view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if view.LocationInfo != "Paris" || view.HistoricalContext != "Old city" {
		t.Fatalf("unexpected view: %+v", view)
	}
	if view.UserContext != "honeymoon" {
		t.Fatalf("context = %q", view.UserContext)
	}
}

func TestAnalyzeEndpointUnknownPhoto(t *testing.T) {
	svc := &Service{
		Repo:    NewMemoryRepo(),
		Photos:  photos.NewMemoryRepo(),
		Fetcher: &fakeFetcher{data: []byte("jpeg")},
		Vision:  &fakeVision{response: "x"},
	}
	router := newTestRouter(t, svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/photos/missing/analyze", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.Code)
	}
}

func TestAnalyzeEndpointFetchFailure(t *testing.T) {
	photoRepo := photos.NewMemoryRepo()
	photo := seedHandlerPhoto(t, photoRepo)

	svc := &Service{
		Repo:    NewMemoryRepo(),
		Photos:  photoRepo,
		Fetcher: &fakeFetcher{err: &imagefetch.FetchError{URL: "http://x", Err: errors.New("unreachable")}},
		Vision:  &fakeVision{response: "x"},
	}
	router := newTestRouter(t, svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/photos/"+photo.ID+"/analyze", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", resp.Code)
	}
}

func TestAnalyzeBatchEndpoint(t *testing.T) {
	photoRepo := photos.NewMemoryRepo()
	photo := seedHandlerPhoto(t, photoRepo)

	svc := &Service{
		Repo:    NewMemoryRepo(),
		Photos:  photoRepo,
		Fetcher: &fakeFetcher{data: []byte("jpeg")},
		Vision:  &fakeVision{response: "## Location\nParis"},
	}
	router := newTestRouter(t, svc)

	body := bytes.NewBufferString(`{"photoIds":["` + photo.ID + `","missing"],"context":"trip"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/photos/analyze-batch", body)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.Code, resp.Body.String())
	}

	var result BatchResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.Total != 2 || result.Succeeded != 1 || result.Failed != 1 {
		t.Fatalf("counts = %d/%d/%d", result.Total, result.Succeeded, result.Failed)
	}
}

func TestAnalyzeBatchEndpointValidation(t *testing.T) {
	svc := &Service{
		Repo:    NewMemoryRepo(),
		Photos:  photos.NewMemoryRepo(),
		Fetcher: &fakeFetcher{data: []byte("jpeg")},
		Vision:  &fakeVision{response: "x"},
	}
	router := newTestRouter(t, svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/photos/analyze-batch", bytes.NewBufferString(`{"photoIds":[]}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.Code)
	}
}
