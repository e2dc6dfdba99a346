package systems

import (
	"math/rand"

	"github.com/Seven-Network/GameServer/internal/domain"
	"github.com/Seven-Network/GameServer/pkg/logger"
	"github.com/Seven-Network/GameServer/pkg/utils"

	"github.com/sirupsen/logrus"
)

// DefaultMap is played when nothing else is requested.
const DefaultMap = "Sierra"

// fallbackSpawn is used for maps without a spawn list.
var fallbackSpawn = domain.SpawnPoint{Position: domain.Vec3{X: 0, Y: 10, Z: 0}}

func spawn(x, y, z, ry float64) domain.SpawnPoint {
	return domain.SpawnPoint{
		Position: domain.Vec3{X: x, Y: y, Z: z},
		Rotation: domain.Vec3{Y: ry},
	}
}

// mapSpawns is the fixed map set. Order inside each list is the spawn order.
var mapSpawns = map[string][]domain.SpawnPoint{
	"Sierra": {
		spawn(0, 10, 0, 0),
		spawn(24.5, 6, -18, 90),
		spawn(-22, 6, 15.5, 270),
		spawn(12, 8, 30, 180),
		spawn(-14, 8, -28, 0),
		spawn(35, 4, 6, 90),
	},
	"Xibalba": {
		spawn(0, 12, -40, 0),
		spawn(18, 12, 22, 180),
		spawn(-30, 9, 4, 90),
		spawn(28, 9, -6, 270),
		spawn(-8, 15, 36, 180),
	},
	"Mistle": {
		spawn(-45, 3, 0, 90),
		spawn(45, 3, 0, 270),
		spawn(0, 3, 45, 180),
		spawn(0, 3, -45, 0),
		spawn(20, 7, 20, 225),
		spawn(-20, 7, -20, 45),
	},
	"Tundra": {
		spawn(10, 5, 10, 45),
		spawn(-10, 5, -10, 225),
		spawn(30, 2, -25, 300),
		spawn(-30, 2, 25, 120),
	},
}

// mapOrder fixes iteration order for random picks.
var mapOrder = []string{"Sierra", "Xibalba", "Mistle", "Tundra"}

// Maps returns the playable map names.
func Maps() []string {
	out := make([]string, len(mapOrder))
	copy(out, mapOrder)
	return out
}

// IsMap reports whether name is in the map set.
func IsMap(name string) bool {
	_, ok := mapSpawns[name]
	return ok
}

// Spawns returns the ordered spawn list of a map.
func Spawns(name string) []domain.SpawnPoint {
	spawns, ok := mapSpawns[name]
	if !ok || len(spawns) == 0 {
		logger.Log.WithFields(logrus.Fields{
			"component": "maps",
			"map":       name,
		}).Warn("No spawn list for map, using fallback spawn")
		return []domain.SpawnPoint{fallbackSpawn}
	}
	return spawns
}

// NextMap picks a random map different from current.
func NextMap(rng *rand.Rand, current string) string {
	return utils.PickExcept(rng, mapOrder, current)
}
