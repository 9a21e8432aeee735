package component

// Collider lists the tile layers whose colliders block this entity. Each
// entry is one registered collision relationship.
type Collider struct {
	Layers []string
}

var ColliderComponent = NewComponent[Collider]()
