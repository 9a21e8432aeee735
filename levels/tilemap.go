package levels

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"

	"github.com/milk9111/spaceship/assets"
)

// ErrConfiguration is returned when setup references a layer, tileset or tile
// property the tilemap does not define, or when the tilemap is internally
// inconsistent.
var ErrConfiguration = errors.New("levels: configuration error")

// Tiled stores flip/rotation flags in the top bits of every layer GID.
const (
	flippedHorizontally uint32 = 0x80000000
	flippedVertically   uint32 = 0x40000000
	flippedDiagonally   uint32 = 0x20000000
	rotatedHexagonal    uint32 = 0x10000000

	gidMask = ^(flippedHorizontally | flippedVertically | flippedDiagonally | rotatedHexagonal)
)

// Map is the subset of the Tiled JSON map format the scene understands:
// a finite orthogonal map with embedded tilesets.
type Map struct {
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	TileWidth   int       `json:"tilewidth"`
	TileHeight  int       `json:"tileheight"`
	Orientation string    `json:"orientation"`
	Infinite    bool      `json:"infinite"`
	Layers      []Layer   `json:"layers"`
	Tilesets    []Tileset `json:"tilesets"`
}

type Layer struct {
	ID      int      `json:"id"`
	Name    string   `json:"name"`
	Type    string   `json:"type"`
	Width   int      `json:"width"`
	Height  int      `json:"height"`
	Data    []uint32 `json:"data,omitempty"`
	Visible bool     `json:"visible"`
	Opacity float64  `json:"opacity"`
	OffsetX float64  `json:"offsetx,omitempty"`
	OffsetY float64  `json:"offsety,omitempty"`
}

type Tileset struct {
	FirstGID    int    `json:"firstgid"`
	Source      string `json:"source,omitempty"`
	Name        string `json:"name"`
	TileWidth   int    `json:"tilewidth"`
	TileHeight  int    `json:"tileheight"`
	TileCount   int    `json:"tilecount"`
	Columns     int    `json:"columns"`
	Image       string `json:"image"`
	ImageWidth  int    `json:"imagewidth"`
	ImageHeight int    `json:"imageheight"`
	Margin      int    `json:"margin"`
	Spacing     int    `json:"spacing"`
	Tiles       []Tile `json:"tiles,omitempty"`
}

// Tile holds the authored data of one tileset tile. ID is tileset-local.
type Tile struct {
	ID         int        `json:"id"`
	Type       string     `json:"type,omitempty"`
	Properties []Property `json:"properties,omitempty"`
}

type Property struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value any    `json:"value"`
}

// GID strips the Tiled flip flags from a raw layer value.
func GID(raw uint32) uint32 {
	return raw & gidMask
}

// LoadMap reads and parses an embedded tilemap.
func LoadMap(name string) (*Map, error) {
	data, err := assets.LoadFile(name)
	if err != nil {
		return nil, fmt.Errorf("load map %q: %w", name, err)
	}
	m, err := ParseMap(data)
	if err != nil {
		return nil, fmt.Errorf("load map %q: %w", name, err)
	}
	return m, nil
}

// ParseMap decodes Tiled JSON. Decode failures wrap assets.ErrAssetLoad;
// structural problems wrap ErrConfiguration.
func ParseMap(data []byte) (*Map, error) {
	var m Map
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: unmarshal tilemap: %w", assets.ErrAssetLoad, err)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Map) validate() error {
	if m.Infinite {
		return fmt.Errorf("%w: infinite maps are not supported", ErrConfiguration)
	}
	if m.Orientation != "" && m.Orientation != "orthogonal" {
		return fmt.Errorf("%w: unsupported orientation %q", ErrConfiguration, m.Orientation)
	}
	if m.Width <= 0 || m.Height <= 0 || m.TileWidth <= 0 || m.TileHeight <= 0 {
		return fmt.Errorf("%w: invalid map size %dx%d tiles of %dx%d", ErrConfiguration, m.Width, m.Height, m.TileWidth, m.TileHeight)
	}
	for i := range m.Layers {
		ly := &m.Layers[i]
		if ly.Type != "tilelayer" {
			continue
		}
		if len(ly.Data) != m.Width*m.Height {
			return fmt.Errorf("%w: layer %q has %d tiles, want %d", ErrConfiguration, ly.Name, len(ly.Data), m.Width*m.Height)
		}
	}
	for i := range m.Tilesets {
		ts := &m.Tilesets[i]
		if ts.Source != "" {
			return fmt.Errorf("%w: tileset %q is external (%s); embed it in the map", ErrConfiguration, ts.Name, ts.Source)
		}
		if ts.TileWidth <= 0 || ts.TileHeight <= 0 {
			return fmt.Errorf("%w: tileset %q has no tile size", ErrConfiguration, ts.Name)
		}
	}
	return nil
}

// WidthInPixels returns the world width covered by the map grid.
func (m *Map) WidthInPixels() int {
	return m.Width * m.TileWidth
}

// HeightInPixels returns the world height covered by the map grid.
func (m *Map) HeightInPixels() int {
	return m.Height * m.TileHeight
}

// Layer returns the tile layer with the given name.
func (m *Map) Layer(name string) (*Layer, error) {
	for i := range m.Layers {
		if m.Layers[i].Name == name && m.Layers[i].Type == "tilelayer" {
			return &m.Layers[i], nil
		}
	}
	return nil, fmt.Errorf("%w: tile layer %q not found", ErrConfiguration, name)
}

// Tileset returns the tileset with the given name.
func (m *Map) Tileset(name string) (*Tileset, error) {
	for i := range m.Tilesets {
		if m.Tilesets[i].Name == name {
			return &m.Tilesets[i], nil
		}
	}
	return nil, fmt.Errorf("%w: tileset %q not found", ErrConfiguration, name)
}

// At returns the GID at grid cell (x, y) of a layer belonging to m, with flip
// flags removed. Cells outside the grid are empty.
func (ly *Layer) At(m *Map, x, y int) uint32 {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return 0
	}
	return GID(ly.Data[y*m.Width+x])
}

func (ts *Tileset) columns() int {
	if ts.Columns > 0 {
		return ts.Columns
	}
	usable := ts.ImageWidth - 2*ts.Margin + ts.Spacing
	step := ts.TileWidth + ts.Spacing
	if step <= 0 {
		return 0
	}
	return usable / step
}

func (ts *Tileset) count() int {
	if ts.TileCount > 0 {
		return ts.TileCount
	}
	cols := ts.columns()
	step := ts.TileHeight + ts.Spacing
	if cols <= 0 || step <= 0 {
		return 0
	}
	rows := (ts.ImageHeight - 2*ts.Margin + ts.Spacing) / step
	return cols * rows
}

// Contains reports whether gid (flags already stripped) belongs to ts.
func (ts *Tileset) Contains(gid uint32) bool {
	if gid == 0 {
		return false
	}
	local := int(gid) - ts.FirstGID
	return local >= 0 && local < ts.count()
}

// LocalID converts a GID of this tileset into its tileset-local index.
func (ts *Tileset) LocalID(gid uint32) int {
	return int(gid) - ts.FirstGID
}

// TileRect returns the source rectangle of gid inside the tileset image.
func (ts *Tileset) TileRect(gid uint32) (image.Rectangle, bool) {
	if !ts.Contains(gid) {
		return image.Rectangle{}, false
	}
	cols := ts.columns()
	if cols <= 0 {
		return image.Rectangle{}, false
	}
	local := ts.LocalID(gid)
	x := ts.Margin + (local%cols)*(ts.TileWidth+ts.Spacing)
	y := ts.Margin + (local/cols)*(ts.TileHeight+ts.Spacing)
	return image.Rect(x, y, x+ts.TileWidth, y+ts.TileHeight), true
}

// HasProperty reports whether any tile of ts declares the named property.
func (ts *Tileset) HasProperty(name string) bool {
	for _, tile := range ts.Tiles {
		for _, p := range tile.Properties {
			if p.Name == name {
				return true
			}
		}
	}
	return false
}

// BoolProperty returns the named boolean property of a tileset-local tile.
// Tiles without the property read as false.
func (ts *Tileset) BoolProperty(localID int, name string) bool {
	for _, tile := range ts.Tiles {
		if tile.ID != localID {
			continue
		}
		for _, p := range tile.Properties {
			if p.Name != name {
				continue
			}
			switch v := p.Value.(type) {
			case bool:
				return v
			case string:
				return v == "true"
			}
			return false
		}
	}
	return false
}
