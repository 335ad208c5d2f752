package imagefetch

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetchReturnsBodyAndMediaType(t *testing.T) {
	payload := []byte("png-bytes")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write(payload)
	}))
	t.Cleanup(srv.Close)

	f := NewHTTPFetcher()
	data, mediaType, err := f.Fetch(context.Background(), srv.URL+"/photo.png")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if !bytes.Equal(data, payload) {
		t.Fatal("body mismatch")
	}
	if mediaType != "image/png" {
		t.Fatalf("media type = %q", mediaType)
	}
}

func TestFetchNonSuccessStatusIsFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	f := NewHTTPFetcher()
	_, _, err := f.Fetch(context.Background(), srv.URL+"/photo.jpg")
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FetchError, got %T: %v", err, err)
	}
}

func TestFetchUnreachableHostIsFetchError(t *testing.T) {
	f := NewHTTPFetcher()
	_, _, err := f.Fetch(context.Background(), "http://127.0.0.1:1/photo.jpg")
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FetchError, got %T: %v", err, err)
	}
}

func TestMediaTypeForURL(t *testing.T) {
	cases := map[string]string{
		"http://x/a.PNG":               "image/png",
		"http://x/a.webp":              "image/webp",
		"http://x/a.gif":               "image/gif",
		"http://x/a.jpg":               "image/jpeg",
		"http://x/a.jpeg":              "image/jpeg",
		"http://x/no-extension":        "image/jpeg",
		"http://x/trick.png.unknown":   "image/jpeg",
		"https://cdn.example/a.b.WEBP": "image/webp",
	}
	for url, want := range cases {
		if got := MediaTypeForURL(url); got != want {
			t.Errorf("MediaTypeForURL(%q) = %q, want %q", url, got, want)
		}
	}
}
