package systems

import (
	"testing"

	"github.com/Seven-Network/GameServer/pkg/api"
)

func TestSortBoard_StableDescending(t *testing.T) {
	in := []api.BoardEntry{
		{PlayerID: 1, Score: 10},
		{PlayerID: 2, Score: 30},
		{PlayerID: 3, Score: 10},
		{PlayerID: 4, Score: 0},
		{PlayerID: 5, Score: 30},
	}

	got := SortBoard(in)
	wantIDs := []int{2, 5, 1, 3, 4}
	for i, id := range wantIDs {
		if got[i].PlayerID != id {
			t.Fatalf("position %d = player %d, want %d (board %+v)", i, got[i].PlayerID, id, got)
		}
	}
	if in[0].PlayerID != 1 {
		t.Error("SortBoard mutated its input")
	}
}

func TestFinishBoard(t *testing.T) {
	got := FinishBoard([]api.BoardEntry{
		{PlayerID: 1, Score: 5},
		{PlayerID: 2, Score: 25},
		{PlayerID: 3, Score: 25},
	})
	if got[0].PlayerID != 2 || got[0].Won != 1 {
		t.Errorf("winner = %+v", got[0])
	}
	for _, e := range got[1:] {
		if e.Won != 0 {
			t.Errorf("non-winner flagged: %+v", e)
		}
	}

	if len(FinishBoard(nil)) != 0 {
		t.Error("empty board should stay empty")
	}
}
