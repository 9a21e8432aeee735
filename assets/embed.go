package assets

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

//go:embed *.png *.json
var assetsFS embed.FS

// ErrAssetLoad is returned when a declared asset cannot be read or decoded.
var ErrAssetLoad = errors.New("assets: load failed")

// LoadFile loads an embedded asset by assets-relative path.
func LoadFile(path string) ([]byte, error) {
	clean := cleanAssetPath(path)
	if clean == "" {
		return nil, fmt.Errorf("%w: empty asset path", ErrAssetLoad)
	}
	b, err := assetsFS.ReadFile(clean)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrAssetLoad, clean, err)
	}
	return b, nil
}

// DecodeImage reads and decodes an embedded image without uploading it.
func DecodeImage(path string) (image.Image, error) {
	b, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", ErrAssetLoad, path, err)
	}
	return img, nil
}

// LoadImage loads an embedded asset by assets-relative path.
func LoadImage(path string) (*ebiten.Image, error) {
	img, err := DecodeImage(path)
	if err != nil {
		return nil, err
	}
	return ebiten.NewImageFromImage(img), nil
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		s := filepath.ToSlash(path)
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	s := filepath.ToSlash(path)
	s = strings.TrimPrefix(s, "./")
	if after, ok := strings.CutPrefix(s, "assets/"); ok {
		return after
	}
	return s
}

// ImageSize reports the pixel size of an embedded image from its header.
func ImageSize(path string) (int, int, error) {
	b, err := LoadFile(path)
	if err != nil {
		return 0, 0, err
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(b))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: decode config %s: %w", ErrAssetLoad, path, err)
	}
	return cfg.Width, cfg.Height, nil
}
