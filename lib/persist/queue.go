// Copyright 2026 The Sheetshark Authors
// SPDX-License-Identifier: Apache-2.0

package persist

// unbounded is a FIFO queue with channel endpoints and no capacity
// limit. Pushes never block beyond the handoff to the pump goroutine,
// which is always ready; this is what keeps the UI loop from ever
// waiting on the database side.
//
// Close stops intake. Items already queued are still delivered, then
// Out is closed. Push after Close panics, like sending on a closed
// channel; each queue has a single producer that coordinates this.
type unbounded[T any] struct {
	in  chan T
	out chan T
}

func newUnbounded[T any]() *unbounded[T] {
	q := &unbounded[T]{
		in:  make(chan T),
		out: make(chan T),
	}
	go q.pump()
	return q
}

// pump shuttles items from in to out through a grow-only buffer. It
// exits when in is closed and the buffer is drained.
func (q *unbounded[T]) pump() {
	var buffer []T
	in := q.in
	for in != nil || len(buffer) > 0 {
		out := q.out
		var head T
		if len(buffer) > 0 {
			head = buffer[0]
		} else {
			out = nil
		}

		select {
		case item, ok := <-in:
			if !ok {
				in = nil
				continue
			}
			buffer = append(buffer, item)
		case out <- head:
			buffer = buffer[1:]
		}
	}
	close(q.out)
}

// Push enqueues one item.
func (q *unbounded[T]) Push(item T) { q.in <- item }

// Out returns the delivery channel. It is closed after Close once the
// queue is drained.
func (q *unbounded[T]) Out() <-chan T { return q.out }

// Close stops intake. Already queued items are still delivered.
func (q *unbounded[T]) Close() { close(q.in) }
