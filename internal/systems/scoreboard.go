package systems

import (
	"sort"

	"github.com/Seven-Network/GameServer/pkg/api"
)

// SortBoard orders entries by score descending. Equal scores keep join order.
func SortBoard(entries []api.BoardEntry) []api.BoardEntry {
	out := make([]api.BoardEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// FinishBoard is the sorted end-of-match board with the top entry flagged as winner.
func FinishBoard(entries []api.BoardEntry) []api.FinishEntry {
	sorted := SortBoard(entries)
	out := make([]api.FinishEntry, len(sorted))
	for i, e := range sorted {
		out[i] = api.FinishEntry{BoardEntry: e}
	}
	if len(out) > 0 {
		out[0].Won = 1
	}
	return out
}
