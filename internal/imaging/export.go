package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// ErrExportAborted is returned when no filename was chosen. It is not a
// failure; callers end the export silently.
var ErrExportAborted = errors.New("export aborted")

// DefaultExportName is the filename suggested to the user.
const DefaultExportName = "stamp.png"

// EncodedImage is an image serialized for inline transport.
type EncodedImage struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// EncodePNGBase64 encodes img as PNG and wraps it in base64.
func EncodePNGBase64(img image.Image) (*EncodedImage, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return &EncodedImage{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// Export writes img as a PNG named filename inside dir and returns the full
// path written. A filename without extension gets ".png"; any other
// extension is replaced, since stamps rely on transparency.
//
// An empty filename returns ErrExportAborted and writes nothing.
func Export(img image.Image, dir, filename string) (string, error) {
	filename = strings.TrimSpace(filename)
	if filename == "" {
		return "", ErrExportAborted
	}
	if img == nil {
		return "", fmt.Errorf("nothing to export")
	}

	base := filepath.Base(filename)
	if ext := filepath.Ext(base); !strings.EqualFold(ext, ".png") {
		base = strings.TrimSuffix(base, ext) + ".png"
	}
	if filepath.IsAbs(filename) {
		dir = filepath.Dir(filename)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	path := filepath.Join(dir, base)
	if err := imaging.Save(img, path); err != nil {
		return "", fmt.Errorf("failed to save stamp: %w", err)
	}
	return path, nil
}
