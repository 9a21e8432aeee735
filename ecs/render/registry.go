package render

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/spaceship/assets"
)

// Loader turns an asset path into a GPU image.
type Loader func(path string) (*ebiten.Image, error)

// Cache loads each image once and hands the same *ebiten.Image to every
// entity that references it, so tiles and sprite frames share one texture.
type Cache struct {
	load   Loader
	images map[string]*ebiten.Image
}

func NewCache(load Loader) *Cache {
	if load == nil {
		load = assets.LoadImage
	}
	return &Cache{load: load, images: make(map[string]*ebiten.Image)}
}

// Image returns the cached image for path, loading it on first use. Failed
// loads are not cached.
func (c *Cache) Image(path string) (*ebiten.Image, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty image path", assets.ErrAssetLoad)
	}
	if img, ok := c.images[path]; ok {
		return img, nil
	}
	img, err := c.load(path)
	if err != nil {
		return nil, err
	}
	c.images[path] = img
	return img, nil
}

// Len returns the number of cached images.
func (c *Cache) Len() int {
	return len(c.images)
}
