package network

import (
	"sync"

	"github.com/Seven-Network/GameServer/pkg/logger"

	"github.com/sirupsen/logrus"
)

// SendBuffer is the per-subscriber outbound queue length.
const SendBuffer = 256

// Broadcaster fans encoded frames out to the sessions of one room.
type Broadcaster struct {
	mu sync.RWMutex
	// session id -> outbound frame channel
	subscribers map[int]chan []byte
	roomID      string
}

func NewBroadcaster(roomID string) *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[int]chan []byte),
		roomID:      roomID,
	}
}

// Register creates the outbound channel for a session, replacing any old one.
func (b *Broadcaster) Register(id int) <-chan []byte {
	b.mu.Lock()
	defer b.mu.Unlock()

	if old, ok := b.subscribers[id]; ok {
		close(old)
	}

	ch := make(chan []byte, SendBuffer)
	b.subscribers[id] = ch
	return ch
}

// Unregister closes and forgets a session's channel. Frames already queued are still delivered.
func (b *Broadcaster) Unregister(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subscribers[id]; ok {
		close(ch)
		delete(b.subscribers, id)
	}
}

// SendTo queues a frame for one session. A full queue drops the frame.
func (b *Broadcaster) SendTo(id int, frame []byte) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if ch, ok := b.subscribers[id]; ok {
		b.offer(id, ch, frame)
	}
}

// Multicast queues a frame for each listed session.
func (b *Broadcaster) Multicast(ids []int, frame []byte) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, id := range ids {
		if ch, ok := b.subscribers[id]; ok {
			b.offer(id, ch, frame)
		}
	}
}

// Broadcast queues a frame for every subscriber.
func (b *Broadcaster) Broadcast(frame []byte) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for id, ch := range b.subscribers {
		b.offer(id, ch, frame)
	}
}

func (b *Broadcaster) offer(id int, ch chan []byte, frame []byte) {
	select {
	case ch <- frame:
	default:
		logger.Log.WithFields(logrus.Fields{
			"room_id":    b.roomID,
			"session_id": id,
		}).Debug("Outbound queue full, dropping frame")
	}
}

// HasSubscriber reports whether a session still has an open channel.
func (b *Broadcaster) HasSubscriber(id int) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.subscribers[id]
	return ok
}

// SubscriberCount returns the number of open channels.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// CloseAll closes every channel. Used when the room goes away.
func (b *Broadcaster) CloseAll() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id, ch := range b.subscribers {
		close(ch)
		delete(b.subscribers, id)
	}
}
