package engine

import (
	"container/heap"
	"testing"
	"time"
)

func TestTimerQueue(t *testing.T) {
	pq := make(timerQueue, 0)
	heap.Init(&pq)

	base := time.Unix(0, 0)
	heap.Push(&pq, &timerItem{At: base.Add(10 * time.Second), Seq: 1, Label: "a"})
	heap.Push(&pq, &timerItem{At: base.Add(5 * time.Second), Seq: 2, Label: "b"})
	heap.Push(&pq, &timerItem{At: base.Add(10 * time.Second), Seq: 3, Label: "c"})

	if pq.Len() != 3 {
		t.Errorf("Expected length 3, got %d", pq.Len())
	}

	want := []string{"b", "a", "c"}
	for _, label := range want {
		item := heap.Pop(&pq).(*timerItem)
		if item.Label != label {
			t.Errorf("Expected %s, got %s", label, item.Label)
		}
		if item.Index != -1 {
			t.Errorf("popped item keeps index %d", item.Index)
		}
	}
}

func TestScheduler_RunDueOrderAndCancel(t *testing.T) {
	s := NewScheduler()
	now := time.Unix(0, 0)
	var fired []string

	s.After(now, 3*time.Second, "late", func() { fired = append(fired, "late") })
	early := s.After(now, time.Second, "early", func() { fired = append(fired, "early") })
	cancelled := s.After(now, 2*time.Second, "cancelled", func() { fired = append(fired, "cancelled") })

	if !cancelled.Cancel() {
		t.Fatal("Cancel on pending timer returned false")
	}
	if cancelled.Cancel() {
		t.Error("second Cancel returned true")
	}

	if n := s.RunDue(now.Add(999 * time.Millisecond)); n != 0 {
		t.Fatalf("fired %d timers early", n)
	}
	if n := s.RunDue(now.Add(5 * time.Second)); n != 2 {
		t.Fatalf("fired %d, want 2", n)
	}
	if len(fired) != 2 || fired[0] != "early" || fired[1] != "late" {
		t.Errorf("fired = %v", fired)
	}
	if early.Pending() || early.Cancel() {
		t.Error("fired timer still cancellable")
	}

	var nilHandle *TimerHandle
	if nilHandle.Cancel() {
		t.Error("nil handle Cancel returned true")
	}
}

func TestScheduler_CallbackSchedulesMore(t *testing.T) {
	s := NewScheduler()
	now := time.Unix(0, 0)
	count := 0

	s.After(now, time.Second, "first", func() {
		count++
		s.After(now.Add(time.Second), 0, "chained", func() { count++ })
	})

	s.RunDue(now.Add(time.Second))
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}

	s.After(now, time.Second, "dropped", func() { count++ })
	s.Clear()
	s.RunDue(now.Add(time.Hour))
	if count != 2 || s.Len() != 0 {
		t.Errorf("Clear left timers: count=%d len=%d", count, s.Len())
	}
}
