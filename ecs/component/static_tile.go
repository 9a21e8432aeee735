package component

// StaticTile marks a tile instantiated from a tilemap layer. Tiles never move
// or change after the level loads.
type StaticTile struct {
	Layer string
	// Collides is true when the tile's authored collision property is set
	// and its layer collides by that property.
	Collides bool
}

var StaticTileComponent = NewComponent[StaticTile]()

// TileCollider marks a static body merged from the collidable tiles of one
// layer.
type TileCollider struct {
	Layer string
}

var TileColliderComponent = NewComponent[TileCollider]()
