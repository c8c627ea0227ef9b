// https://github.com/indigo-web/utils/blob/master/pool/objectpool.go

package pool

import "sync"

// ObjectPool is a bounded, generic free list. New is called when the list is
// empty; Reset, if set, runs on every object handed back before it is queued.
type ObjectPool[T any] struct {
	queue []T
	New   func() T
	Reset func(T)
	mutex sync.Mutex
}

func NewObjectPool[T any](queueSize int) *ObjectPool[T] {
	return &ObjectPool[T]{
		queue: make([]T, 0, queueSize),
	}
}

func (o *ObjectPool[T]) Acquire() (obj T) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	if len(o.queue) != 0 {
		obj = o.queue[len(o.queue)-1]
		o.queue = o.queue[:len(o.queue)-1]
		return obj
	}

	if o.New != nil {
		return o.New()
	}

	return obj
}

func (o *ObjectPool[T]) Release(obj T) {
	if o.Reset != nil {
		o.Reset(obj)
	}

	o.mutex.Lock()
	defer o.mutex.Unlock()

	if len(o.queue) == cap(o.queue) {
		return
	}

	o.queue = append(o.queue, obj)
}
