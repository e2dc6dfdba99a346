package engine

import (
	"errors"
	"sort"

	"github.com/Seven-Network/GameServer/pkg/api"
	"github.com/Seven-Network/GameServer/pkg/logger"

	"github.com/sasha-s/go-deadlock"
	"github.com/sirupsen/logrus"
)

var (
	ErrRoomExists    = errors.New("Game server with that ID already exists")
	ErrRoomNotFound  = errors.New("room not found")
	ErrInvalidRoomID = errors.New("room id is required")
)

// Registry is the process-wide set of rooms keyed by id.
type Registry struct {
	mu    deadlock.RWMutex
	rooms map[string]*Room
	cfg   Config
}

func NewRegistry(cfg Config) *Registry {
	return &Registry{
		rooms: make(map[string]*Room),
		cfg:   cfg.withDefaults(),
	}
}

// Create installs and starts a new room. Ids are unique for as long as the room lives.
func (g *Registry) Create(id string, private bool) (*Room, error) {
	if id == "" {
		return nil, ErrInvalidRoomID
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.rooms[id]; exists {
		return nil, ErrRoomExists
	}

	room := newRoom(id, private, g.cfg, g.remove)
	g.rooms[id] = room
	go room.Run()

	logger.Log.WithFields(logrus.Fields{
		"room_id": id,
		"private": private,
	}).Info("Room created")
	return room, nil
}

// Get returns a live room.
func (g *Registry) Get(id string) (*Room, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	room, ok := g.rooms[id]
	return room, ok
}

// Destroy stops a room and waits for its loop to exit.
func (g *Registry) Destroy(id string) error {
	g.mu.Lock()
	room, ok := g.rooms[id]
	delete(g.rooms, id)
	g.mu.Unlock()

	if !ok {
		return ErrRoomNotFound
	}
	room.Stop()
	return nil
}

// remove is called by a room from its own goroutine when it tears itself down.
func (g *Registry) remove(room *Room) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.rooms[room.ID] == room {
		delete(g.rooms, room.ID)
	}
}

// List returns a snapshot of every room ordered by id.
func (g *Registry) List() []api.RoomSummary {
	g.mu.RLock()
	rooms := make([]*Room, 0, len(g.rooms))
	for _, room := range g.rooms {
		rooms = append(rooms, room)
	}
	g.mu.RUnlock()

	out := make([]api.RoomSummary, 0, len(rooms))
	for _, room := range rooms {
		out = append(out, room.Info())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len is the number of live rooms.
func (g *Registry) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.rooms)
}

// Shutdown stops every room.
func (g *Registry) Shutdown() {
	g.mu.Lock()
	rooms := g.rooms
	g.rooms = make(map[string]*Room)
	g.mu.Unlock()

	for _, room := range rooms {
		room.Stop()
	}
}
