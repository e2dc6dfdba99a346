package server

import (
	"net/http"

	"github.com/Seven-Network/GameServer/internal/engine"
	"github.com/Seven-Network/GameServer/pkg/api"
)

// DebugHandler exposes live room state.
type DebugHandler struct {
	Registry *engine.Registry
}

func NewDebugHandler(reg *engine.Registry) *DebugHandler {
	return &DebugHandler{Registry: reg}
}

// RegisterRoutes registers the debug endpoints.
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /debug/rooms", enableCORS(h.handleListRooms))
	mux.HandleFunc("GET /debug/rooms/{roomID}", enableCORS(h.handleRoom))
}

// /debug/rooms - every live room with its scoreboard
func (h *DebugHandler) handleListRooms(w http.ResponseWriter, r *http.Request) {
	rooms := h.Registry.List()
	if rooms == nil {
		rooms = []api.RoomSummary{}
	}
	writeJSON(w, rooms)
}

// /debug/rooms/{roomID} - one room including its pending timers
func (h *DebugHandler) handleRoom(w http.ResponseWriter, r *http.Request) {
	room, ok := h.Registry.Get(r.PathValue("roomID"))
	if !ok {
		http.Error(w, "Room not found", http.StatusNotFound)
		return
	}
	writeJSON(w, room.Info())
}
