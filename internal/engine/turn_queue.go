package engine

import "time"

// timerItem is one pending callback in the scheduler heap.
type timerItem struct {
	At    time.Time
	Seq   uint64 // insertion order, breaks ties between equal deadlines
	Label string
	Fn    func()
	Index int // heap index, -1 once removed
}

// timerQueue implements heap.Interface as a min-heap on (At, Seq).
type timerQueue []*timerItem

func (pq timerQueue) Len() int { return len(pq) }

func (pq timerQueue) Less(i, j int) bool {
	if pq[i].At.Equal(pq[j].At) {
		return pq[i].Seq < pq[j].Seq
	}
	return pq[i].At.Before(pq[j].At)
}

func (pq timerQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].Index = i
	pq[j].Index = j
}

func (pq *timerQueue) Push(x interface{}) {
	n := len(*pq)
	item := x.(*timerItem)
	item.Index = n
	*pq = append(*pq, item)
}

func (pq *timerQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.Index = -1
	*pq = old[0 : n-1]
	return item
}
