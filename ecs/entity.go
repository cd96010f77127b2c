package ecs

import "fmt"

// Entity is a handle: the low 32 bits are the slot id, the high 32 bits the
// generation of that slot. A destroyed entity's handle never matches the
// slot's next occupant.
type Entity uint64

type entityID uint32
type generation uint32

const entityIDBits = 32

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<entityIDBits | uint64(id))
}

func (e Entity) id() entityID {
	return entityID(uint32(e))
}

func (e Entity) generation() generation {
	return generation(uint32(uint64(e) >> entityIDBits))
}

func (e Entity) String() string {
	if g := e.generation(); g > 0 {
		return fmt.Sprintf("%d.%d", e.id(), g)
	}
	return fmt.Sprintf("%d", e.id())
}

// Valid reports whether e could name an entity. The zero Entity never does.
func (e Entity) Valid() bool {
	return e.id() != 0
}
