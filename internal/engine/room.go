package engine

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/Seven-Network/GameServer/internal/domain"
	"github.com/Seven-Network/GameServer/internal/infrastructure/accounts"
	"github.com/Seven-Network/GameServer/internal/network"
	"github.com/Seven-Network/GameServer/internal/protocol"
	"github.com/Seven-Network/GameServer/internal/systems"
	"github.com/Seven-Network/GameServer/pkg/api"
	"github.com/Seven-Network/GameServer/pkg/logger"
	"github.com/Seven-Network/GameServer/pkg/utils"

	"github.com/sirupsen/logrus"
)

var ErrRoomClosed = errors.New("room is closed")

const inboxSize = 256

// --- inbox commands ---

// Connect asks the room to admit a new connection.
type Connect struct {
	ConnID string
	Reply  chan ConnectResult
}

// ConnectResult is the room's answer to Connect.
type ConnectResult struct {
	SessionID int
	Out       <-chan []byte
}

// Inbound carries one decoded client frame.
type Inbound struct {
	SessionID int
	Msg       protocol.Message
}

// Disconnect reports that a connection is gone.
type Disconnect struct {
	SessionID int
}

// authResult is the continuation of an asynchronous verification.
type authResult struct {
	SessionID int
	ConnID    string
	Payload   api.AuthPayload
	Account   accounts.Account
	Err       error
}

// Room is one match. All state below the channels is owned by the Run goroutine.
type Room struct {
	ID      string
	Private bool

	cfg       Config
	clock     Clock
	rng       *rand.Rand
	hub       *network.Broadcaster
	onDestroy func(*Room)

	inbox    chan any
	quit     chan struct{}
	done     chan struct{}
	stopOnce sync.Once

	ctx    context.Context
	cancel context.CancelFunc

	sessions []*Session
	byID     map[int]*Session
	nextID   int

	mapName    string
	mode       string
	mapLocked  bool
	matchClock int
	matchID    string
	phase      domain.Phase
	spawns     *systems.SpawnAllocator
	scheduler  *Scheduler
	restart    *TimerHandle
	clockOn    bool
	idleSince  time.Time
	lastUpdate time.Time

	infoMu sync.RWMutex
	info   api.RoomSummary

	log *logrus.Entry
}

func newRoom(id string, private bool, cfg Config, onDestroy func(*Room)) *Room {
	cfg = cfg.withDefaults()
	now := cfg.Clock.Now()
	ctx, cancel := context.WithCancel(context.Background())

	r := &Room{
		ID:         id,
		Private:    private,
		cfg:        cfg,
		clock:      cfg.Clock,
		rng:        rand.New(rand.NewSource(cfg.Seed)),
		hub:        network.NewBroadcaster(id),
		onDestroy:  onDestroy,
		inbox:      make(chan any, inboxSize),
		quit:       make(chan struct{}),
		done:       make(chan struct{}),
		ctx:        ctx,
		cancel:     cancel,
		byID:       make(map[int]*Session),
		mapName:    cfg.DefaultMap,
		mode:       cfg.Mode,
		matchClock: cfg.matchSeconds(),
		matchID:    utils.NewMatchID(now),
		phase:      domain.PhaseActive,
		spawns:     systems.NewSpawnAllocator(cfg.DefaultMap),
		scheduler:  NewScheduler(),
		idleSince:  now,
		lastUpdate: now,
		log: logger.Log.WithFields(logrus.Fields{
			"component": "room",
			"room_id":   id,
		}),
	}
	r.publishInfo()
	return r
}

// Run is the room loop. It returns once the room is destroyed or stopped.
func (r *Room) Run() {
	defer close(r.done)
	r.log.WithField("match_id", r.matchID).Info("Room loop started")

	updates := time.NewTicker(r.cfg.UpdateInterval)
	defer updates.Stop()

	// nil until the first player joins
	var matchTicker *time.Ticker
	var matchC <-chan time.Time
	defer func() {
		if matchTicker != nil {
			matchTicker.Stop()
		}
	}()

	for r.phase != domain.PhaseDestroyed {
		if r.clockOn && matchTicker == nil {
			matchTicker = time.NewTicker(time.Second)
			matchC = matchTicker.C
		}

		select {
		case msg := <-r.inbox:
			r.handle(msg)
		case <-matchC:
			r.clockTick()
		case <-updates.C:
			r.update(r.clock.Now())
		case <-r.quit:
			if frame := r.encode(protocol.OutKick, kickServerClosed); frame != nil {
				r.hub.Broadcast(frame)
			}
			r.destroy("stopped")
		}
		r.publishInfo()
	}
	r.log.Info("Room loop finished")
}

// Stop destroys the room from outside and waits for the loop to exit.
func (r *Room) Stop() {
	r.stopOnce.Do(func() { close(r.quit) })
	<-r.done
}

// Done is closed once the room loop has exited.
func (r *Room) Done() <-chan struct{} {
	return r.done
}

// post delivers a command unless the room is gone.
func (r *Room) post(msg any) error {
	select {
	case r.inbox <- msg:
		return nil
	case <-r.done:
		return ErrRoomClosed
	}
}

// Connect admits a connection and returns its session id and outbound frames.
func (r *Room) Connect(connID string) (int, <-chan []byte, error) {
	reply := make(chan ConnectResult, 1)
	if err := r.post(Connect{ConnID: connID, Reply: reply}); err != nil {
		return 0, nil, err
	}
	select {
	case res := <-reply:
		return res.SessionID, res.Out, nil
	case <-r.done:
		return 0, nil, ErrRoomClosed
	}
}

// Deliver hands a decoded frame to the room.
func (r *Room) Deliver(sessionID int, msg protocol.Message) error {
	return r.post(Inbound{SessionID: sessionID, Msg: msg})
}

// Leave reports a closed connection.
func (r *Room) Leave(sessionID int) error {
	return r.post(Disconnect{SessionID: sessionID})
}

func (r *Room) handle(msg any) {
	switch m := msg.(type) {
	case Connect:
		m.Reply <- r.connect(m.ConnID)
	case Inbound:
		r.dispatch(m.SessionID, m.Msg)
	case Disconnect:
		if s, ok := r.byID[m.SessionID]; ok {
			r.removeSession(s, "disconnected")
		}
	case authResult:
		r.finishAuth(m)
	default:
		r.log.Warnf("Unknown room command %T", msg)
	}
}

func (r *Room) connect(connID string) ConnectResult {
	now := r.clock.Now()
	r.nextID++
	s := newSession(r.nextID, connID, now, r.log)

	out := r.hub.Register(s.ID)
	r.sessions = append(r.sessions, s)
	r.byID[s.ID] = s
	r.idleSince = time.Time{}

	s.log.Info("Connection accepted")
	r.send(s, protocol.OutAuth, true)
	return ConnectResult{SessionID: s.ID, Out: out}
}

// removeSession drops a session and tells everyone else.
func (r *Room) removeSession(s *Session, reason string) {
	if _, ok := r.byID[s.ID]; !ok {
		return
	}
	s.cancelTimers()
	s.State = domain.Closed
	delete(r.byID, s.ID)
	for i, other := range r.sessions {
		if other == s {
			r.sessions = append(r.sessions[:i], r.sessions[i+1:]...)
			break
		}
	}
	r.hub.Unregister(s.ID)

	if len(r.sessions) == 0 {
		r.idleSince = r.clock.Now()
	}

	s.log.WithField("reason", reason).Info("Session removed")
	r.broadcast(protocol.OutLeft, s.ID)
	r.broadcastBoard()
}

// kick sends the reason and closes the session.
func (r *Room) kick(s *Session, reason string) {
	s.log.WithField("reason", reason).Info("Kicking session")
	r.send(s, protocol.OutKick, reason)
	r.removeSession(s, "kicked")
}

// --- lookup ---

// players returns authenticated sessions in join order.
func (r *Room) players() []*Session {
	out := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		if s.authenticated() {
			out = append(out, s)
		}
	}
	return out
}

func (r *Room) player(id int) *Session {
	s, ok := r.byID[id]
	if !ok || !s.authenticated() {
		return nil
	}
	return s
}

func (r *Room) playerCountExcept(skip *Session) int {
	n := 0
	for _, s := range r.sessions {
		if s != skip && s.authenticated() {
			n++
		}
	}
	return n
}

// --- outbound ---

func (r *Room) encode(tag string, args ...any) []byte {
	frame, err := protocol.Encode(tag, args...)
	if err != nil {
		r.log.WithError(err).WithField("tag", tag).Error("Failed to encode frame")
		return nil
	}
	return frame
}

func (r *Room) send(s *Session, tag string, args ...any) {
	if frame := r.encode(tag, args...); frame != nil {
		r.hub.SendTo(s.ID, frame)
	}
}

// broadcast sends to every authenticated session.
func (r *Room) broadcast(tag string, args ...any) {
	r.broadcastExcept(nil, tag, args...)
}

// broadcastExcept sends to every authenticated session but skip.
func (r *Room) broadcastExcept(skip *Session, tag string, args ...any) {
	frame := r.encode(tag, args...)
	if frame == nil {
		return
	}
	ids := make([]int, 0, len(r.sessions))
	for _, s := range r.sessions {
		if s != skip && s.authenticated() {
			ids = append(ids, s.ID)
		}
	}
	r.hub.Multicast(ids, frame)
}

func (r *Room) boardEntries() []api.BoardEntry {
	players := r.players()
	entries := make([]api.BoardEntry, len(players))
	for i, s := range players {
		entries[i] = s.boardEntry()
	}
	return entries
}

func (r *Room) broadcastBoard() {
	r.broadcast(protocol.OutBoard, systems.SortBoard(r.boardEntries()))
}

// --- info ---

// Info returns a snapshot safe to read from any goroutine.
func (r *Room) Info() api.RoomSummary {
	r.infoMu.RLock()
	defer r.infoMu.RUnlock()
	return r.info
}

func (r *Room) publishInfo() {
	info := api.RoomSummary{
		ID:        r.ID,
		Map:       r.mapName,
		Mode:      r.mode,
		Phase:     r.phase.String(),
		MatchID:   r.matchID,
		Private:   r.Private,
		Players:   r.playerCountExcept(nil),
		Sessions:  len(r.sessions),
		Remaining: r.matchClock,
		Board:     systems.SortBoard(r.boardEntries()),
		Timers:    r.scheduler.DebugDump(),
	}
	r.infoMu.Lock()
	r.info = info
	r.infoMu.Unlock()
}

// Descriptor is the invite-server view of the room.
func (r *Room) Descriptor(server string) api.RoomDescriptor {
	info := r.Info()
	private := 0
	if info.Private {
		private = 1
	}
	return api.RoomDescriptor{
		ConnectedPlayers: info.Players,
		Country:          "NA",
		ForInvite:        1,
		Hash:             r.ID,
		IP:               server,
		IsPrivate:        private,
		Map:              info.Map,
		MaxPlayer:        r.cfg.MaxPlayers,
		Server:           server,
		ServerCode:       "1.0.0",
	}
}
