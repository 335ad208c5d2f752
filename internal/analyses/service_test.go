package analyses

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"photomemory-backend/internal/imagefetch"
	"photomemory-backend/internal/photos"
	"photomemory-backend/internal/vision"
)

type fakeFetcher struct {
	data  []byte
	err   error
	calls atomic.Int64
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) ([]byte, string, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, "", f.err
	}
	return f.data, imagefetch.MediaTypeForURL(url), nil
}

type fakeVision struct {
	response string
	err      error
	calls    atomic.Int64
}

func (f *fakeVision) Describe(ctx context.Context, img vision.Image, prompt string) (string, error) {
	f.calls.Add(1)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func newTestService(t *testing.T, visionClient vision.Client, fetcher imagefetch.Fetcher) (*Service, photos.Photo) {
	t.Helper()

	photoRepo := photos.NewMemoryRepo()
	photo := photos.Photo{
		ID:               "photo-1",
		UserID:           "user-1",
		Filename:         "u/abc_eiffel.jpg",
		OriginalFilename: "eiffel.jpg",
		StorageURL:       "http://localhost:8080/uploads/u/abc_eiffel.jpg",
		MimeType:         "image/jpeg",
		CreatedAt:        time.Now().UTC(),
	}
	if err := photoRepo.Create(context.Background(), photo); err != nil {
		t.Fatalf("seed photo: %v", err)
	}

	svc := &Service{
		Repo:    NewMemoryRepo(),
		Photos:  photoRepo,
		Fetcher: fetcher,
		Vision:  visionClient,
	}
	return svc, photo
}

func TestAnalyzeOnePersistsSections(t *testing.T) {
	visionClient := &fakeVision{response: "## Location\nParis, France\n## Historical & Cultural Context\nThe tower opened in 1889."}
	fetcher := &fakeFetcher{data: []byte("jpegbytes")}
	svc, photo := newTestService(t, visionClient, fetcher)

	view, err := svc.AnalyzeOne(context.Background(), photo.ID, photo.UserID, "  taken in spring  ")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if view.LocationInfo != "Paris, France" {
		t.Errorf("location = %q", view.LocationInfo)
	}
	if view.HistoricalContext != "The tower opened in 1889." {
		t.Errorf("historical = %q", view.HistoricalContext)
	}
	if view.UserContext != "taken in spring" {
		t.Errorf("context not normalized: %q", view.UserContext)
	}
	if view.FullResponse != visionClient.response {
		t.Errorf("full response not preserved")
	}

	stored, err := svc.Repo.GetByPhotoID(context.Background(), photo.ID)
	if err != nil {
		t.Fatalf("stored analysis missing: %v", err)
	}
	if stored.ID != view.ID {
		t.Errorf("stored id %q != view id %q", stored.ID, view.ID)
	}
}

func TestAnalyzeOneIdempotentForSameContext(t *testing.T) {
	visionClient := &fakeVision{response: "## Location\nParis"}
	fetcher := &fakeFetcher{data: []byte("jpegbytes")}
	svc, photo := newTestService(t, visionClient, fetcher)

	first, err := svc.AnalyzeOne(context.Background(), photo.ID, photo.UserID, "context A")
	if err != nil {
		t.Fatalf("first analyze: %v", err)
	}
	second, err := svc.AnalyzeOne(context.Background(), photo.ID, photo.UserID, "  context A ")
	if err != nil {
		t.Fatalf("second analyze: %v", err)
	}

	if got := visionClient.calls.Load(); got != 1 {
		t.Errorf("model calls = %d, want 1", got)
	}
	if second.ID != first.ID {
		t.Errorf("analysis id changed on reuse: %q vs %q", second.ID, first.ID)
	}
}

func TestAnalyzeOneReanalyzesOnNewContext(t *testing.T) {
	visionClient := &fakeVision{response: "## Location\nParis"}
	fetcher := &fakeFetcher{data: []byte("jpegbytes")}
	svc, photo := newTestService(t, visionClient, fetcher)

	first, err := svc.AnalyzeOne(context.Background(), photo.ID, photo.UserID, "context A")
	if err != nil {
		t.Fatalf("first analyze: %v", err)
	}

	visionClient.response = "## Location\nRome"
	second, err := svc.AnalyzeOne(context.Background(), photo.ID, photo.UserID, "context B")
	if err != nil {
		t.Fatalf("second analyze: %v", err)
	}

	if got := visionClient.calls.Load(); got != 2 {
		t.Errorf("model calls = %d, want 2", got)
	}
	if second.ID != first.ID {
		t.Errorf("overwrite must keep the analysis id: %q vs %q", second.ID, first.ID)
	}
	if second.LocationInfo != "Rome" {
		t.Errorf("location = %q, want Rome", second.LocationInfo)
	}

	stored, err := svc.Repo.GetByPhotoID(context.Background(), photo.ID)
	if err != nil {
		t.Fatalf("stored analysis missing: %v", err)
	}
	if stored.UserContext != "context B" {
		t.Errorf("stored context = %q", stored.UserContext)
	}
}

func TestAnalyzeOneRemovedContextTriggersReanalysis(t *testing.T) {
	visionClient := &fakeVision{response: "## Location\nParis"}
	svc, photo := newTestService(t, visionClient, &fakeFetcher{data: []byte("jpegbytes")})

	if _, err := svc.AnalyzeOne(context.Background(), photo.ID, photo.UserID, "context A"); err != nil {
		t.Fatalf("first analyze: %v", err)
	}
	second, err := svc.AnalyzeOne(context.Background(), photo.ID, photo.UserID, "")
	if err != nil {
		t.Fatalf("second analyze: %v", err)
	}

	if got := visionClient.calls.Load(); got != 2 {
		t.Errorf("model calls = %d, want 2 (removing context is a change)", got)
	}
	if second.UserContext != "" {
		t.Errorf("stored context = %q, want empty", second.UserContext)
	}
}

func TestAnalyzeOneUnknownPhoto(t *testing.T) {
	svc, photo := newTestService(t, &fakeVision{response: "x"}, &fakeFetcher{data: []byte("x")})

	_, err := svc.AnalyzeOne(context.Background(), "missing", photo.UserID, "")
	if !errors.Is(err, photos.ErrNotFound) {
		t.Fatalf("want photos.ErrNotFound, got %v", err)
	}
}

func TestAnalyzeOneFetchFailureLeavesNothingPersisted(t *testing.T) {
	fetchErr := &imagefetch.FetchError{URL: "http://x", Err: errors.New("boom")}
	svc, photo := newTestService(t, &fakeVision{response: "x"}, &fakeFetcher{err: fetchErr})

	_, err := svc.AnalyzeOne(context.Background(), photo.ID, photo.UserID, "")
	var ferr *imagefetch.FetchError
	if !errors.As(err, &ferr) {
		t.Fatalf("want FetchError, got %v", err)
	}
	if _, err := svc.Repo.GetByPhotoID(context.Background(), photo.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("analysis must not be persisted on fetch failure, got %v", err)
	}
}

func TestAnalyzeOneModelFailureLeavesNothingPersisted(t *testing.T) {
	modelErr := &vision.ModelError{Provider: "openai", Err: errors.New("rate limited")}
	svc, photo := newTestService(t, &fakeVision{err: modelErr}, &fakeFetcher{data: []byte("x")})

	_, err := svc.AnalyzeOne(context.Background(), photo.ID, photo.UserID, "")
	var merr *vision.ModelError
	if !errors.As(err, &merr) {
		t.Fatalf("want ModelError, got %v", err)
	}
	if _, err := svc.Repo.GetByPhotoID(context.Background(), photo.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("analysis must not be persisted on model failure, got %v", err)
	}
}

func TestAnalyzeBatchExhaustiveAndOrdered(t *testing.T) {
	visionClient := &fakeVision{response: "## Location\nParis"}
	fetcher := &fakeFetcher{data: []byte("jpegbytes")}
	svc, photo := newTestService(t, visionClient, fetcher)

	other := photos.Photo{
		ID:         "photo-2",
		UserID:     photo.UserID,
		Filename:   "u/def_beach.png",
		StorageURL: "http://localhost:8080/uploads/u/def_beach.png",
		CreatedAt:  time.Now().UTC(),
	}
	if err := svc.Photos.Create(context.Background(), other); err != nil {
		t.Fatalf("seed photo: %v", err)
	}

	ids := []string{photo.ID, "missing", other.ID}
	result, err := svc.AnalyzeBatch(context.Background(), ids, photo.UserID, "trip")
	if err != nil {
		t.Fatalf("batch: %v", err)
	}

	if result.Total != 3 || result.Succeeded != 2 || result.Failed != 1 {
		t.Fatalf("counts = %d/%d/%d", result.Total, result.Succeeded, result.Failed)
	}
	if len(result.Results) != 3 {
		t.Fatalf("results len = %d", len(result.Results))
	}
	for i, id := range ids {
		if result.Results[i].PhotoID != id {
			t.Errorf("result[%d] photo = %q, want %q", i, result.Results[i].PhotoID, id)
		}
	}
	if result.Results[1].Success || result.Results[1].Error == "" {
		t.Errorf("middle item should carry failure: %+v", result.Results[1])
	}
	if !result.Results[0].Success || result.Results[0].Analysis == nil {
		t.Errorf("first item should succeed: %+v", result.Results[0])
	}
}

func TestAnalyzeBatchEmptyInput(t *testing.T) {
	svc, photo := newTestService(t, &fakeVision{response: "x"}, &fakeFetcher{data: []byte("x")})

	if _, err := svc.AnalyzeBatch(context.Background(), nil, photo.UserID, ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("want ErrInvalidInput, got %v", err)
	}
}
