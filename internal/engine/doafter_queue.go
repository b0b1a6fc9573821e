package engine

import (
	"container/heap"

	"station-core/internal/engine/handlers"
)

// DoAfterItem обертка для элемента очереди отложенных действий
type DoAfterItem struct {
	Value    handlers.DoAfter
	Priority int    // Тик завершения. Чем меньше, тем раньше.
	Index    int    // Индекс в куче (нужен для update)
	seq      uint64 // Порядок постановки, для равных тиков
}

// DoAfterQueue реализует heap.Interface и хранит DoAfterItems
type DoAfterQueue []*DoAfterItem

func (pq DoAfterQueue) Len() int { return len(pq) }

func (pq DoAfterQueue) Less(i, j int) bool {
	if pq[i].Priority != pq[j].Priority {
		return pq[i].Priority < pq[j].Priority
	}
	return pq[i].seq < pq[j].seq
}

func (pq DoAfterQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].Index = i
	pq[j].Index = j
}

func (pq *DoAfterQueue) Push(x interface{}) {
	n := len(*pq)
	item := x.(*DoAfterItem)
	item.Index = n
	*pq = append(*pq, item)
}

func (pq *DoAfterQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil  // избегаем утечки памяти
	item.Index = -1 // для безопасности
	*pq = old[0 : n-1]
	return item
}

// Update изменяет тик завершения элемента в очереди
func (pq *DoAfterQueue) Update(item *DoAfterItem, priority int) {
	item.Priority = priority
	heap.Fix(pq, item.Index)
}

// Peek возвращает ближайшее действие, не вынимая его.
func (pq DoAfterQueue) Peek() *DoAfterItem {
	if len(pq) == 0 {
		return nil
	}
	return pq[0]
}
