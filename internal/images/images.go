// Package images validates, normalizes, and stores uploaded project images.
// Every upload is decoded and re-encoded: nothing a client sent byte-for-byte
// ever lands in the uploads directory.
package images

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	// Register the WebP decoder; WebP uploads are re-encoded as JPEG.
	_ "golang.org/x/image/webp"

	"github.com/google/uuid"
	"golang.org/x/image/draw"

	"github.com/acampos/folio/internal/apperror"
)

// Maximum stored dimensions. Larger uploads are scaled down to fit while
// keeping aspect ratio.
const (
	maxWidth  = 1200
	maxHeight = 800
)

// projectsDir is the subdirectory under the uploads root for project images.
const projectsDir = "projects"

// allowedExtensions maps accepted upload extensions to whether they keep
// their format after re-encoding. WebP maps to false: it is decoded but
// stored as JPEG.
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": false,
}

// Store validates and persists project images on local disk.
type Store struct {
	root    string
	maxSize int64
}

// NewStore creates an image store rooted at the uploads directory.
func NewStore(root string, maxSize int64) *Store {
	return &Store{root: root, maxSize: maxSize}
}

// Save validates data as an image, resizes it to fit the dimension caps, and
// writes it under uploads/projects/ with a random filename. It returns the
// web path ("/uploads/projects/<name>") for storage on the project row.
func (s *Store) Save(originalName string, data []byte) (string, error) {
	if int64(len(data)) > s.maxSize {
		return "", apperror.NewBadRequest(fmt.Sprintf("file too large; maximum size is %d MB", s.maxSize/(1024*1024)))
	}
	if len(data) == 0 {
		return "", apperror.NewBadRequest("empty upload")
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", apperror.NewBadRequest("unsupported file type: " + ext)
	}

	if !magicBytesMatch(data, ext) {
		return "", apperror.NewBadRequest("file content does not match its extension")
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", apperror.NewBadRequest("file is not a decodable image")
	}

	img := fit(src)

	// WebP has no stdlib encoder; store it as JPEG.
	if !allowedExtensions[ext] {
		ext = ".jpg"
	}

	dir := filepath.Join(s.root, projectsDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", apperror.NewInternal(fmt.Errorf("creating uploads directory: %w", err))
	}

	filename := uuid.NewString() + ext
	fullPath := filepath.Join(dir, filename)

	f, err := os.Create(fullPath)
	if err != nil {
		return "", apperror.NewInternal(fmt.Errorf("creating image file: %w", err))
	}
	defer f.Close()

	switch ext {
	case ".png":
		err = png.Encode(f, img)
	case ".gif":
		err = gif.Encode(f, img, nil)
	default:
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: 85})
	}
	if err != nil {
		os.Remove(fullPath)
		return "", apperror.NewInternal(fmt.Errorf("encoding image: %w", err))
	}

	slog.Info("project image stored",
		slog.String("file", filename),
		slog.Int("bytes", len(data)),
	)
	return "/uploads/" + projectsDir + "/" + filename, nil
}

// Delete removes a previously stored image given its web path. Paths outside
// the projects directory are refused; a missing file is not an error.
func (s *Store) Delete(webPath string) {
	name := strings.TrimPrefix(webPath, "/uploads/"+projectsDir+"/")
	if name == webPath || name == "" || strings.Contains(name, "/") || strings.Contains(name, "..") {
		return
	}
	if err := os.Remove(filepath.Join(s.root, projectsDir, name)); err != nil && !os.IsNotExist(err) {
		slog.Warn("deleting project image failed", "path", webPath, "error", err)
	}
}

// fit scales src down to fit within maxWidth x maxHeight using Catmull-Rom
// interpolation. Images already within bounds are returned unchanged.
func fit(src image.Image) image.Image {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxWidth && h <= maxHeight {
		return src
	}

	// Scale by the tighter constraint, keeping aspect ratio.
	scaleW := float64(maxWidth) / float64(w)
	scaleH := float64(maxHeight) / float64(h)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}

	newW := int(float64(w) * scale)
	newH := int(float64(h) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
	return dst
}

// magicBytesMatch checks the file content's leading bytes against the
// declared extension. Prevents renaming arbitrary files into images.
func magicBytesMatch(data []byte, ext string) bool {
	switch ext {
	case ".jpg", ".jpeg":
		return len(data) >= 3 && data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF
	case ".png":
		return len(data) >= 8 &&
			data[0] == 0x89 && data[1] == 0x50 && data[2] == 0x4E && data[3] == 0x47 &&
			data[4] == 0x0D && data[5] == 0x0A && data[6] == 0x1A && data[7] == 0x0A
	case ".gif":
		return len(data) >= 6 && string(data[:3]) == "GIF"
	case ".webp":
		return len(data) >= 12 && string(data[:4]) == "RIFF" && string(data[8:12]) == "WEBP"
	default:
		return false
	}
}
