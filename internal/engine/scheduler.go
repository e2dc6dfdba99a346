package engine

import (
	"container/heap"
	"time"
)

// Scheduler holds a room's delayed callbacks. It is owned by the room
// goroutine and is not safe for concurrent use.
type Scheduler struct {
	queue timerQueue
	seq   uint64
}

func NewScheduler() *Scheduler {
	return &Scheduler{queue: make(timerQueue, 0)}
}

// TimerHandle cancels one scheduled callback. The zero handle and nil are inert.
type TimerHandle struct {
	s    *Scheduler
	item *timerItem
}

// After schedules fn to run once the clock passed to RunDue reaches now+d.
func (s *Scheduler) After(now time.Time, d time.Duration, label string, fn func()) *TimerHandle {
	s.seq++
	item := &timerItem{
		At:    now.Add(d),
		Seq:   s.seq,
		Label: label,
		Fn:    fn,
	}
	heap.Push(&s.queue, item)
	return &TimerHandle{s: s, item: item}
}

// Cancel removes the callback if it has not fired. Returns true if it was pending.
func (h *TimerHandle) Cancel() bool {
	if h == nil || h.item == nil || h.item.Index < 0 {
		return false
	}
	heap.Remove(&h.s.queue, h.item.Index)
	return true
}

// Pending reports whether the callback is still waiting to fire.
func (h *TimerHandle) Pending() bool {
	return h != nil && h.item != nil && h.item.Index >= 0
}

// RunDue fires, in deadline order, every callback due at or before now.
// Callbacks may schedule or cancel other timers.
func (s *Scheduler) RunDue(now time.Time) int {
	fired := 0
	for s.queue.Len() > 0 {
		next := s.queue[0]
		if next.At.After(now) {
			break
		}
		heap.Pop(&s.queue)
		next.Fn()
		fired++
	}
	return fired
}

// Clear drops every pending callback.
func (s *Scheduler) Clear() {
	for _, item := range s.queue {
		item.Index = -1
	}
	s.queue = s.queue[:0]
}

func (s *Scheduler) Len() int {
	return s.queue.Len()
}

// DebugDump returns a snapshot of pending timers.
func (s *Scheduler) DebugDump() []map[string]interface{} {
	result := make([]map[string]interface{}, 0)

	for _, item := range s.queue {
		result = append(result, map[string]interface{}{
			"label": item.Label,
			"at":    item.At,
			"index": item.Index,
		})
	}
	return result
}
