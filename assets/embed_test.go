package assets

import (
	"errors"
	"testing"
)

func TestCleanAssetPath(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"scifi_objects.png", "scifi_objects.png"},
		{"./assets/scifi_objects.png", "scifi_objects.png"},
		{"assets/space_map_48.json", "space_map_48.json"},
		{"/home/dev/spaceship/assets/astronaut_spritesheet.png", "astronaut_spritesheet.png"},
		{"/tmp/elsewhere/tiles.png", "tiles.png"},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			if got := cleanAssetPath(c.in); got != c.want {
				t.Fatalf("cleanAssetPath(%q) = %q, want %q", c.in, got, c.want)
			}
		})
	}
}

func TestDecodeImage(t *testing.T) {
	cases := []struct {
		path  string
		w, h  int
		fails bool
	}{
		{path: "astronaut_spritesheet.png", w: 508, h: 764},
		{path: "scifi_space_rpg_tiles.png", w: 384, h: 384},
		{path: "./assets/scifi_objects.png", w: 192, h: 192},
		{path: "missing.png", fails: true},
		{path: "space_map_48.json", fails: true},
	}
	for _, c := range cases {
		t.Run(c.path, func(t *testing.T) {
			img, err := DecodeImage(c.path)
			if c.fails {
				if !errors.Is(err, ErrAssetLoad) {
					t.Fatalf("expected ErrAssetLoad, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			b := img.Bounds()
			if b.Dx() != c.w || b.Dy() != c.h {
				t.Fatalf("size = %dx%d, want %dx%d", b.Dx(), b.Dy(), c.w, c.h)
			}
		})
	}
}

func TestImageSize(t *testing.T) {
	w, h, err := ImageSize("astronaut_spritesheet.png")
	if err != nil {
		t.Fatalf("size: %v", err)
	}
	if w != 508 || h != 764 {
		t.Fatalf("size = %dx%d, want 508x764", w, h)
	}
	if _, _, err := ImageSize("space_map_48.json"); !errors.Is(err, ErrAssetLoad) {
		t.Fatalf("expected ErrAssetLoad, got %v", err)
	}
}
