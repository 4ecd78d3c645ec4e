package paintdry

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, G: 190, B: 170, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestProcessImageScalesDown(t *testing.T) {
	now := time.Date(2014, 12, 21, 12, 22, 0, 0, time.UTC)
	img, data, err := processImage(bytes.NewReader(testPNG(t, 2400, 1000)), "My Wall.png", now)
	if err != nil {
		t.Fatalf("processImage: %v", err)
	}
	if img.Width != maxImageWidth || img.Height != 500 {
		t.Errorf("size = %dx%d, want %dx500", img.Width, img.Height, maxImageWidth)
	}
	if img.Filename != "my-wall.jpg" {
		t.Errorf("Filename = %q", img.Filename)
	}
	if img.Size != len(data) {
		t.Errorf("Size = %d, want %d", img.Size, len(data))
	}
	if img.UploadedAt != "2014-12-21T12:22:00Z" {
		t.Errorf("UploadedAt = %q", img.UploadedAt)
	}
}

func TestProcessImageKeepsSmallImages(t *testing.T) {
	img, _, err := processImage(bytes.NewReader(testPNG(t, 300, 200)), "???.png", time.Now())
	if err != nil {
		t.Fatalf("processImage: %v", err)
	}
	if img.Width != 300 || img.Height != 200 {
		t.Errorf("size = %dx%d, want 300x200", img.Width, img.Height)
	}
	if img.Filename != "image.jpg" {
		t.Errorf("Filename = %q, want image.jpg", img.Filename)
	}
}

func TestProcessImageRejectsGarbage(t *testing.T) {
	if _, _, err := processImage(bytes.NewReader([]byte("not an image")), "x.png", time.Now()); err == nil {
		t.Fatal("expected a decode error")
	}
}

func TestUniqueFilename(t *testing.T) {
	a := &App{Store: setupTestStore(t)}
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "wall.jpg"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := a.Store.SaveImage(Image{Filename: "wall-2.jpg", UploadedAt: "2014-12-21T00:00:00Z"}); err != nil {
		t.Fatal(err)
	}

	img := Image{Filename: "wall.jpg"}
	if err := a.uniqueFilename(dir, &img); err != nil {
		t.Fatalf("uniqueFilename: %v", err)
	}
	if img.Filename != "wall-3.jpg" {
		t.Errorf("Filename = %q, want wall-3.jpg", img.Filename)
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"My Wall", "my-wall"},
		{"  Eggshell -- White!  ", "eggshell-white"},
		{"???", ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.input); got != tt.expected {
			t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base     string
		segments []string
		expected string
	}{
		{"http://example.com", nil, "http://example.com"},
		{"http://example.com", []string{"posts", "abc123"}, "http://example.com/posts/abc123/"},
		{"http://example.com/blog", []string{"posts", "x"}, "http://example.com/blog/posts/x/"},
	}
	for _, tt := range tests {
		if got := BuildURL(tt.base, tt.segments...); got != tt.expected {
			t.Errorf("BuildURL(%q, %v) = %q, want %q", tt.base, tt.segments, got, tt.expected)
		}
	}
	if got := AbsoluteURL("http://example.com", "/public/uploads/a.jpg"); got != "http://example.com/public/uploads/a.jpg" {
		t.Errorf("AbsoluteURL = %q", got)
	}
	if got := AbsoluteURL("http://example.com", "https://cdn.example.org/a.jpg"); got != "https://cdn.example.org/a.jpg" {
		t.Errorf("AbsoluteURL kept = %q", got)
	}
}
