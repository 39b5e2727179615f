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

// Package trap is the layer-2 Ethernet trap/dispatch facility that a node
// uses to deliver frames to protocols registered above it. Modelled on
// the original simulator's `isis_pkt_trap_rule`: a predicate decides
// whether a frame is of interest, a handler consumes it.
package trap

import (
	"sync"

	"github.com/nabbar/isis-lab/graph"
)

// Notification carries one trapped Ethernet frame up to a registered
// handler.
type Notification struct {
	Node    *graph.Node
	IIF     *graph.Interface
	Pkt     []byte
	Size    uint32
	HdrCode uint16
}

// Predicate decides whether a frame should be delivered to the
// associated Handler.
type Predicate func(pkt []byte, size uint32) bool

// Handler consumes a trapped frame.
type Handler func(notif Notification)

type registration struct {
	id   uint64
	pred Predicate
	hdlr Handler
}

// Table is a per-node registry of predicate/handler pairs. NewTable
// returns an empty one; traps are added with RegisterL2Trap.
type Table struct {
	mtx  sync.RWMutex
	next uint64
	regs []registration
}

// NewTable returns an empty trap table.
func NewTable() *Table {
	return &Table{}
}

// RegisterL2Trap installs a predicate/handler pair and returns a handle
// usable with DeregisterL2Trap.
func (t *Table) RegisterL2Trap(predicate Predicate, handler Handler) uint64 {
	t.mtx.Lock()
	defer t.mtx.Unlock()

	t.next++
	id := t.next

	t.regs = append(t.regs, registration{id: id, pred: predicate, hdlr: handler})

	return id
}

// DeregisterL2Trap removes a previously registered predicate/handler
// pair. It is a no-op if the handle is unknown.
func (t *Table) DeregisterL2Trap(handle uint64) {
	t.mtx.Lock()
	defer t.mtx.Unlock()

	for i, r := range t.regs {
		if r.id == handle {
			t.regs = append(t.regs[:i], t.regs[i+1:]...)
			return
		}
	}
}

// Dispatch runs every registered predicate against the frame and
// invokes the handler of the first match. Multiple traps matching the
// same frame is not supported — the original's predicate (Ethernet
// type) is exclusive by construction.
func (t *Table) Dispatch(node *graph.Node, iif *graph.Interface, pkt []byte, size uint32, hdrCode uint16) {
	t.mtx.RLock()
	regs := make([]registration, len(t.regs))
	copy(regs, t.regs)
	t.mtx.RUnlock()

	for _, r := range regs {
		if r.pred(pkt, size) {
			r.hdlr(Notification{Node: node, IIF: iif, Pkt: pkt, Size: size, HdrCode: hdrCode})
			return
		}
	}
}
