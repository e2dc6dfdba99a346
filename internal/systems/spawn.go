package systems

import "github.com/Seven-Network/GameServer/internal/domain"

// SpawnAllocator hands out spawn points round-robin for one room.
type SpawnAllocator struct {
	spawns []domain.SpawnPoint
	cursor int
}

func NewSpawnAllocator(mapName string) *SpawnAllocator {
	return &SpawnAllocator{spawns: Spawns(mapName)}
}

// Next returns the spawn under the cursor and advances it, wrapping at the end.
func (a *SpawnAllocator) Next() domain.SpawnPoint {
	sp := a.spawns[a.cursor]
	a.cursor = (a.cursor + 1) % len(a.spawns)
	return sp
}

// SetMap switches to another map's spawn list and rewinds the cursor.
func (a *SpawnAllocator) SetMap(mapName string) {
	a.spawns = Spawns(mapName)
	a.cursor = 0
}

// Cursor is the index Next will return.
func (a *SpawnAllocator) Cursor() int { return a.cursor }
