package util

import "testing"

func TestHashUserKeyStable(t *testing.T) {
	a := HashUserKey("google:1234")
	b := HashUserKey("google:1234")
	if a != b {
		t.Fatalf("expected stable hash, got %q and %q", a, b)
	}
	if len(a) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(a))
	}
}

func TestHashUserKeyDistinct(t *testing.T) {
	if HashUserKey("user-a") == HashUserKey("user-b") {
		t.Fatal("expected distinct hashes for distinct users")
	}
}

func TestSanitizeFileName(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"beach.jpg", "beach.jpg", false},
		{" eiffel tower.png ", "eiffel tower.png", false},
		{"a/b.webp", "a_b.webp", false},
		{"..secret", "", true},
		{"   ", "", true},
	}
	for _, tc := range cases {
		got, err := SanitizeFileName(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("SanitizeFileName(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("SanitizeFileName(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("SanitizeFileName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
