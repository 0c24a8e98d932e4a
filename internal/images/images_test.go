package images

import (
	"bytes"
	"errors"
	"image"
	"image/jpeg"
	"image/png"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/acampos/folio/internal/apperror"
)

// encodePNG renders a solid image of the given size as PNG bytes.
func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encoding test png: %v", err)
	}
	return buf.Bytes()
}

func encodeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h)), nil); err != nil {
		t.Fatalf("encoding test jpeg: %v", err)
	}
	return buf.Bytes()
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(t.TempDir(), 5*1024*1024)
}

func assertBadRequest(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperror.AppError, got %T: %v", err, err)
	}
	if appErr.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", appErr.Code)
	}
}

func TestSave_StoresValidPNG(t *testing.T) {
	store := newTestStore(t)
	root := store.root

	webPath, err := store.Save("photo.png", encodePNG(t, 100, 60))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(webPath, "/uploads/projects/") {
		t.Errorf("expected web path under /uploads/projects/, got %q", webPath)
	}
	if !strings.HasSuffix(webPath, ".png") {
		t.Errorf("expected .png suffix, got %q", webPath)
	}

	name := strings.TrimPrefix(webPath, "/uploads/projects/")
	data, err := os.ReadFile(filepath.Join(root, "projects", name))
	if err != nil {
		t.Fatalf("reading stored file: %v", err)
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decoding stored file: %v", err)
	}
	if format != "png" {
		t.Errorf("expected stored format png, got %s", format)
	}
	if img.Bounds().Dx() != 100 || img.Bounds().Dy() != 60 {
		t.Errorf("expected in-bounds image to keep its size, got %v", img.Bounds())
	}
}

func TestSave_ResizesOversizedImages(t *testing.T) {
	store := newTestStore(t)

	// 2400x800 exceeds the width cap; expect a scale to 1200x400.
	webPath, err := store.Save("wide.jpg", encodeJPEG(t, 2400, 800))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	name := strings.TrimPrefix(webPath, "/uploads/projects/")
	data, err := os.ReadFile(filepath.Join(store.root, "projects", name))
	if err != nil {
		t.Fatalf("reading stored file: %v", err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decoding stored file: %v", err)
	}
	if img.Bounds().Dx() != 1200 || img.Bounds().Dy() != 400 {
		t.Errorf("expected 1200x400, got %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestSave_RejectsOversizedUpload(t *testing.T) {
	store := NewStore(t.TempDir(), 10) // 10-byte cap
	_, err := store.Save("photo.png", encodePNG(t, 10, 10))
	assertBadRequest(t, err)
}

func TestSave_RejectsEmptyUpload(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Save("photo.png", nil)
	assertBadRequest(t, err)
}

func TestSave_RejectsUnsupportedExtension(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Save("script.svg", encodePNG(t, 10, 10))
	assertBadRequest(t, err)
}

func TestSave_RejectsMismatchedMagicBytes(t *testing.T) {
	store := newTestStore(t)
	// PNG bytes behind a .jpg name.
	_, err := store.Save("photo.jpg", encodePNG(t, 10, 10))
	assertBadRequest(t, err)
}

func TestSave_RejectsUndecodableContent(t *testing.T) {
	store := newTestStore(t)
	// Correct PNG magic bytes, garbage after.
	data := append([]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, []byte("garbage")...)
	_, err := store.Save("photo.png", data)
	assertBadRequest(t, err)
}

func TestDelete_RemovesStoredImage(t *testing.T) {
	store := newTestStore(t)

	webPath, err := store.Save("photo.png", encodePNG(t, 10, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	name := strings.TrimPrefix(webPath, "/uploads/projects/")
	fullPath := filepath.Join(store.root, "projects", name)

	store.Delete(webPath)
	if _, err := os.Stat(fullPath); !os.IsNotExist(err) {
		t.Error("expected the stored file to be removed")
	}

	// Deleting again is a quiet no-op.
	store.Delete(webPath)
}

func TestDelete_RefusesPathsOutsideProjects(t *testing.T) {
	store := newTestStore(t)

	// Plant a file outside the projects directory; traversal attempts must
	// not reach it.
	victim := filepath.Join(store.root, "victim.txt")
	if err := os.WriteFile(victim, []byte("keep"), 0644); err != nil {
		t.Fatalf("writing victim file: %v", err)
	}

	store.Delete("/uploads/projects/../victim.txt")
	store.Delete("/etc/passwd")
	store.Delete("/uploads/projects/")

	if _, err := os.Stat(victim); err != nil {
		t.Errorf("expected the file outside projects/ to survive: %v", err)
	}
}
