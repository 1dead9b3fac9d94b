package alg

type Index interface {
	Index(int) (int, bool)
}

type Queue interface {
	Index
	Clear()
	Enqueue(int)
	Dequeue() (int, bool)
	Peek() (int, bool)
	Size() int
}

type QueueSlice struct {
	slice []int
}

var _ Queue = &QueueSlice{}

func (q *QueueSlice) Clear() {
	q.slice = q.slice[0:0]
}

func (q *QueueSlice) Enqueue(val int) {
	q.slice = append(q.slice, val)
}

func (q *QueueSlice) Dequeue() (int, bool) {
	if q.Size() == 0 {
		return 0, false
	}
	retval := q.slice[0]
	q.slice = q.slice[1:]
	return retval, true
}

func (q *QueueSlice) Index(index int) (int, bool) {
	if index < 0 || index >= q.Size() {
		return 0, false
	}
	return q.slice[index], true
}

func (q *QueueSlice) Peek() (int, bool) {
	result, exists := q.Index(0)
	return result, exists
}

func (q *QueueSlice) Size() int {
	return len(q.slice)
}

func NewQueueSlice(size int) *QueueSlice {
	return &QueueSlice{make([]int, 0, size)}
}
