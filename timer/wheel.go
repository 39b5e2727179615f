/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package timer provides the two external-collaborator primitives spec'd
// as out-of-scope infrastructure: a timer wheel (register/reschedule/
// deregister on a min-heap) and a one-shot job scheduler. A node attaches
// one wheel per dispatcher (control plane, data plane, per spec section
// 5) but the type itself has no notion of "node" or "dispatcher".
package timer

import (
	"container/heap"
	"sync"
	"time"
)

// Callback is invoked when a timer event fires. arg is whatever was
// passed to RegisterEvent.
type Callback func(arg interface{})

type timerEntry struct {
	handle   uint64
	deadline time.Time
	repeat   time.Duration
	cbk      Callback
	arg      interface{}
	index    int
	canceled bool
}

type timerHeap []*timerEntry

func (h timerHeap) Len() int            { return len(h) }
func (h timerHeap) Less(i, j int) bool  { return h[i].deadline.Before(h[j].deadline) }
func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *timerHeap) Push(x interface{}) {
	e := x.(*timerEntry)
	e.index = len(*h)
	*h = append(*h, e)
}

func (h *timerHeap) Pop() interface{} {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*h = old[:n-1]
	return e
}

// Wheel is a single-goroutine timer engine backed by a min-heap ordered
// by deadline. Two independent Wheel instances stand in for the
// control-plane and data-plane wheels named in spec section 5.
type Wheel struct {
	mtx     sync.Mutex
	heap    timerHeap
	byID    map[uint64]*timerEntry
	next    uint64
	wake    chan struct{}
	closed  chan struct{}
	closeOn sync.Once
}

// NewWheel starts a timer wheel. Call Close to stop its goroutine.
func NewWheel() *Wheel {
	w := &Wheel{
		byID:   make(map[uint64]*timerEntry),
		wake:   make(chan struct{}, 1),
		closed: make(chan struct{}),
	}

	go w.run()

	return w
}

// RegisterEvent arms cbk(arg) to fire once after timeoutMS milliseconds;
// if repeatMS is non-zero, it rearms itself every repeatMS milliseconds
// thereafter. It returns a handle usable with Deregister, Reschedule,
// GetRemaining and GetAndSetAppData.
func (w *Wheel) RegisterEvent(cbk Callback, arg interface{}, timeoutMS uint64, repeatMS uint64) uint64 {
	w.mtx.Lock()
	defer w.mtx.Unlock()

	w.next++
	id := w.next

	e := &timerEntry{
		handle:   id,
		deadline: time.Now().Add(time.Duration(timeoutMS) * time.Millisecond),
		repeat:   time.Duration(repeatMS) * time.Millisecond,
		cbk:      cbk,
		arg:      arg,
	}

	heap.Push(&w.heap, e)
	w.byID[id] = e
	w.poke()

	return id
}

// Deregister cancels a timer. Idempotent: deregistering an unknown or
// already-canceled handle is a no-op, matching spec section 5's
// cancellation semantics.
func (w *Wheel) Deregister(handle uint64) {
	w.mtx.Lock()
	defer w.mtx.Unlock()

	e, ok := w.byID[handle]
	if !ok {
		return
	}

	e.canceled = true
	delete(w.byID, handle)
}

// Reschedule rearms an existing timer to fire after timeoutMS
// milliseconds from now, replacing its prior deadline. It is a no-op on
// an unknown handle.
func (w *Wheel) Reschedule(handle uint64, timeoutMS uint64) {
	w.mtx.Lock()
	defer w.mtx.Unlock()

	e, ok := w.byID[handle]
	if !ok || e.canceled {
		return
	}

	e.deadline = time.Now().Add(time.Duration(timeoutMS) * time.Millisecond)
	heap.Fix(&w.heap, e.index)
	w.poke()
}

// GetRemaining returns the time left before the timer fires, or 0 if the
// handle is unknown or already due.
func (w *Wheel) GetRemaining(handle uint64) time.Duration {
	w.mtx.Lock()
	defer w.mtx.Unlock()

	e, ok := w.byID[handle]
	if !ok || e.canceled {
		return 0
	}

	if d := time.Until(e.deadline); d > 0 {
		return d
	}

	return 0
}

// GetAndSetAppData swaps the app-data argument handed to the callback,
// returning the previous value. Used to update what a pending timer will
// see without canceling and recreating it (e.g. the flood timer's
// self-LSP reference, per spec section 4.3).
func (w *Wheel) GetAndSetAppData(handle uint64, newArg interface{}) (old interface{}) {
	w.mtx.Lock()
	defer w.mtx.Unlock()

	e, ok := w.byID[handle]
	if !ok {
		return nil
	}

	old = e.arg
	e.arg = newArg

	return old
}

func (w *Wheel) poke() {
	select {
	case w.wake <- struct{}{}:
	default:
	}
}

func (w *Wheel) run() {
	timer := time.NewTimer(time.Hour)
	defer timer.Stop()

	for {
		w.mtx.Lock()
		var wait time.Duration = time.Hour
		if len(w.heap) > 0 {
			wait = time.Until(w.heap[0].deadline)
			if wait < 0 {
				wait = 0
			}
		}
		w.mtx.Unlock()

		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(wait)

		select {
		case <-w.closed:
			return
		case <-w.wake:
			continue
		case <-timer.C:
			w.fireDue()
		}
	}
}

func (w *Wheel) fireDue() {
	now := time.Now()

	for {
		w.mtx.Lock()
		if len(w.heap) == 0 || w.heap[0].deadline.After(now) {
			w.mtx.Unlock()
			return
		}

		e := heap.Pop(&w.heap).(*timerEntry)
		if e.canceled {
			w.mtx.Unlock()
			continue
		}

		delete(w.byID, e.handle)

		if e.repeat > 0 {
			e.deadline = now.Add(e.repeat)
			heap.Push(&w.heap, e)
			w.byID[e.handle] = e
		}

		cbk := e.cbk
		arg := e.arg
		w.mtx.Unlock()

		cbk(arg)
	}
}

// Close stops the wheel's goroutine. Pending timers never fire after
// Close returns.
func (w *Wheel) Close() {
	w.closeOn.Do(func() {
		close(w.closed)
	})
}
