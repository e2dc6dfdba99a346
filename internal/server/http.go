package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/Seven-Network/GameServer/internal/engine"
	"github.com/Seven-Network/GameServer/internal/version"
	"github.com/Seven-Network/GameServer/pkg/api"
	"github.com/Seven-Network/GameServer/pkg/logger"
	"github.com/Seven-Network/GameServer/pkg/utils"

	"github.com/sirupsen/logrus"
)

const welcomeText = "Welcome to the Seven Network invite server ✨"

type Server struct {
	Registry       *engine.Registry
	Port           string
	ServerLinkPass string

	httpServer *http.Server
}

func New(registry *engine.Registry, port, serverLinkPass string) *Server {
	return &Server{
		Registry:       registry,
		Port:           port,
		ServerLinkPass: serverLinkPass,
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", enableCORS(s.handleWelcome))
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/ws/{roomID}", s.handleWS)
	mux.HandleFunc("GET /create-game/{id}/{pass}", enableCORS(s.handleCreateGame))
	mux.HandleFunc("POST /get-room/{roomID}", enableCORS(s.handleGetRoom))
	mux.HandleFunc("OPTIONS /get-room/{roomID}", enableCORS(handlePreflight))
	mux.HandleFunc("GET /health", enableCORS(s.handleHealth))
	mux.HandleFunc("GET /version", enableCORS(s.handleVersion))

	NewDebugHandler(s.Registry).RegisterRoutes(mux)

	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	return mux
}

// Run starts the HTTP server and blocks until it stops.
func (s *Server) Run() error {
	s.httpServer = &http.Server{
		Addr:              ":" + s.Port,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Log.Infof("Seven Network game server running on :%s", s.Port)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections. Open websockets are closed by the rooms.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")

		next(w, r)
	}
}

func handlePreflight(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func roomIDFrom(r *http.Request) string {
	if id := r.PathValue("roomID"); id != "" {
		return id
	}
	return r.URL.Query().Get("room")
}

// handleWS upgrades a connection into an existing room.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	roomID := roomIDFrom(r)
	room, ok := s.Registry.Get(roomID)
	if !ok {
		logger.Log.WithField("room_id", roomID).Info("Upgrade for unknown room, dropping connection")
		dropConnection(w)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.WithError(err).Error("Upgrade error")
		return
	}

	client, err := NewClient(room, conn, utils.NewConnID())
	if err != nil {
		logger.Log.WithError(err).WithField("room_id", roomID).Info("Room closed during upgrade")
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// dropConnection closes the raw TCP connection without an HTTP response.
func dropConnection(w http.ResponseWriter) {
	hj, ok := w.(http.Hijacker)
	if !ok {
		http.Error(w, "room not found", http.StatusNotFound)
		return
	}
	conn, _, err := hj.Hijack()
	if err != nil {
		logger.Log.WithError(err).Debug("hijack failed")
		return
	}
	conn.Close()
}

func (s *Server) handleWelcome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(welcomeText))
}

// handleCreateGame creates a private room on behalf of the invite server.
func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if r.PathValue("pass") != s.ServerLinkPass {
		logger.Log.WithField("room_id", id).Warn("create-game with wrong server link password")
		http.Error(w, "Incorrect server link password", http.StatusForbidden)
		return
	}

	if _, err := s.Registry.Create(id, true); err != nil {
		logger.Log.WithFields(logrus.Fields{
			"room_id": id,
			"error":   err,
		}).Warn("create-game failed")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("Created game server"))
}

func (s *Server) handleGetRoom(w http.ResponseWriter, r *http.Request) {
	room, ok := s.Registry.Get(r.PathValue("roomID"))
	if !ok {
		writeJSON(w, api.RoomResponse{Success: true, Message: "Could not find room"})
		return
	}

	desc := room.Descriptor(r.Host)
	writeJSON(w, api.RoomResponse{
		Success: true,
		Options: []string{},
		Result:  &desc,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, version.Info())
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Log.WithError(err).Debug("write json response failed")
	}
}
