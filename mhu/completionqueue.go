package mhu

import "sync/atomic"

// A CompletionQueue decouples a completion consumer from interrupt
// context. Notify performs a bounded, non-blocking hand-off; a worker
// goroutine invokes the consumer's function in ordinary context. If the
// queue is full the completion is dropped and counted, keeping the
// interrupt path wait-free.
type CompletionQueue struct {
	messages chan *Message
	done     chan struct{}
	drops    atomic.Uint64
}

// NewCompletionQueue creates a queue holding up to capacity completions
// and starts the worker that feeds them to f.
func NewCompletionQueue(capacity int, f CompletionFunc) *CompletionQueue {
	q := &CompletionQueue{
		messages: make(chan *Message, capacity),
		done:     make(chan struct{}),
	}

	go func() {
		defer close(q.done)

		for msg := range q.messages {
			f(msg)
		}
	}()

	return q
}

// Notify hands a completed message to the worker. Safe to install as a
// channel's CompletionFunc.
func (q *CompletionQueue) Notify(msg *Message) {
	select {
	case q.messages <- msg:
	default:
		q.drops.Add(1)
	}
}

// Drops returns the number of completions dropped on overflow.
func (q *CompletionQueue) Drops() uint64 {
	return q.drops.Load()
}

// Close drains the queue and stops the worker. Stop the channels feeding
// the queue first.
func (q *CompletionQueue) Close() {
	close(q.messages)
	<-q.done
}
