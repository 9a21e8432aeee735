package render

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/spaceship/assets"
)

func TestCacheLoadsOnce(t *testing.T) {
	calls := map[string]int{}
	c := NewCache(func(path string) (*ebiten.Image, error) {
		calls[path]++
		if path == "broken.png" {
			return nil, assets.ErrAssetLoad
		}
		return nil, nil
	})

	for i := 0; i < 3; i++ {
		if _, err := c.Image("scifi_objects.png"); err != nil {
			t.Fatalf("load: %v", err)
		}
	}
	if calls["scifi_objects.png"] != 1 {
		t.Fatalf("expected a single load, got %d", calls["scifi_objects.png"])
	}

	for i := 0; i < 2; i++ {
		if _, err := c.Image("broken.png"); !errors.Is(err, assets.ErrAssetLoad) {
			t.Fatalf("expected ErrAssetLoad, got %v", err)
		}
	}
	if calls["broken.png"] != 2 {
		t.Fatalf("failed loads must be retried, got %d calls", calls["broken.png"])
	}
	if c.Len() != 1 {
		t.Fatalf("expected 1 cached image, got %d", c.Len())
	}

	if _, err := c.Image(""); !errors.Is(err, assets.ErrAssetLoad) {
		t.Fatalf("empty path: expected ErrAssetLoad, got %v", err)
	}
}
