package openai

import (
	"strings"
	"testing"

	"photomemory-backend/internal/vision"
)

func TestNewClientRequiresKeyAndModel(t *testing.T) {
	if _, err := NewClient("", "gpt-4o"); err == nil {
		t.Fatal("expected error for missing api key")
	}
	if _, err := NewClient("sk-test", ""); err == nil {
		t.Fatal("expected error for missing model")
	}
	if _, err := NewClient("sk-test", "gpt-4o"); err != nil {
		t.Fatalf("NewClient: %v", err)
	}
}

func TestDataURLEncodesMediaType(t *testing.T) {
	url := dataURL(vision.Image{Data: []byte{1, 2, 3}, MediaType: "image/png"})
	if !strings.HasPrefix(url, "data:image/png;base64,") {
		t.Fatalf("url = %q", url)
	}
}

func TestDataURLDefaultsToJPEG(t *testing.T) {
	url := dataURL(vision.Image{Data: []byte{1}})
	if !strings.HasPrefix(url, "data:image/jpeg;base64,") {
		t.Fatalf("url = %q", url)
	}
}
