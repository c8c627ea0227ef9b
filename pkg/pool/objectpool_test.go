package pool

import (
	"bytes"
	"testing"
)

func TestObjectPool(t *testing.T) {
	created := 0
	p := NewObjectPool[*bytes.Buffer](1)
	p.New = func() *bytes.Buffer {
		created++
		return new(bytes.Buffer)
	}
	p.Reset = func(b *bytes.Buffer) { b.Reset() }

	first := p.Acquire()
	first.WriteString("payload")
	p.Release(first)

	if len(p.queue) != 1 {
		t.Fatalf("queued %d, want 1", len(p.queue))
	}

	again := p.Acquire()
	if again != first {
		t.Error("Acquire() did not reuse the released object")
	}
	if again.Len() != 0 {
		t.Errorf("reused buffer holds %q, want reset", again.String())
	}

	second := p.Acquire()
	p.Release(again)
	p.Release(second)

	if len(p.queue) != 1 {
		t.Errorf("queued %d, want the queue capped at 1", len(p.queue))
	}
	if created != 2 {
		t.Errorf("New called %d times, want 2", created)
	}
}

func TestObjectPool_NoNew(t *testing.T) {
	p := NewObjectPool[*bytes.Buffer](2)

	if got := p.Acquire(); got != nil {
		t.Errorf("Acquire() = %v, want zero value", got)
	}
}
