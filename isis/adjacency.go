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

package isis

import (
	"net"
	"time"

	"github.com/nabbar/isis-lab/graph"
)

// AdjState is the three-state machine of spec section 3/4.2.
type AdjState uint8

const (
	AdjDown AdjState = iota
	AdjInit
	AdjUp
)

func (s AdjState) String() string {
	switch s {
	case AdjDown:
		return "Down"
	case AdjInit:
		return "Init"
	case AdjUp:
		return "Up"
	default:
		return "Unknown"
	}
}

// Adjacency is the protocol relationship with one remote neighbour seen
// on an interface, per spec section 3. Owned by exactly one
// ifaceState; CP-owned like everything else.
type Adjacency struct {
	PeerRouterID uint32
	PeerIfIP     net.IP
	PeerHostname string
	LastHello    time.Time
	HoldTime     time.Duration
	Metric       uint32

	State AdjState

	holdHandle uint64
}

// findOrCreateAdjacency looks an adjacency up by peer router-id on the
// interface; at most one is kept per interface (point-to-point), so
// this never needs a peer-interface-index key the way a broadcast
// segment would.
func (i *Instance) findOrCreateAdjacency(st *ifaceState, peerRouterID uint32) (*Adjacency, bool) {
	if st.adjacency != nil && st.adjacency.PeerRouterID == peerRouterID {
		return st.adjacency, false
	}

	adj := &Adjacency{PeerRouterID: peerRouterID, State: AdjDown}
	st.adjacency = adj

	return adj, true
}

// transitionUp moves an adjacency to Up: schedules LSP generation and
// bumps the adjacency-up counter, per spec section 4.2.
func (i *Instance) transitionUp(adj *Adjacency) {
	if adj.State == AdjUp {
		return
	}

	adj.State = AdjUp
	i.adjacencyUpCount++
	i.metrics.setAdjacencyUp(i.adjacencyUpCount)
	i.scheduleLSPGeneration(EventAdjStateChanged)
}

// transitionDown moves an adjacency to Down from any state: decrements
// the adjacency-up counter if it was Up, cancels its hold timer, and
// schedules LSP generation.
func (i *Instance) transitionDown(adj *Adjacency, reason string) {
	if adj.State == AdjUp {
		i.adjacencyUpCount--
		i.metrics.setAdjacencyUp(i.adjacencyUpCount)
	}

	if adj.State == AdjDown {
		// still cancel the timer and schedule: disable_interface calls
		// this unconditionally.
	}

	adj.State = AdjDown

	if adj.holdHandle != 0 {
		i.cpWheel.Deregister(adj.holdHandle)
		adj.holdHandle = 0
	}

	i.scheduleLSPGeneration(EventAdjStateChanged)
}

// transitionInit moves a Down adjacency to Init on first valid hello.
func (i *Instance) transitionInit(adj *Adjacency) {
	if adj.State == AdjDown {
		adj.State = AdjInit
	}
}

// armHoldTimer (re)arms the adjacency's hold timer for holdTime,
// rearming on every valid hello per spec section 4.2. The wheel's
// own goroutine fires the callback; it immediately re-posts onto the
// CP dispatcher so the actual state transition still runs as the sole
// CP owner (spec section 5).
func (i *Instance) armHoldTimer(iface *graph.Interface, adj *Adjacency, holdTime time.Duration) {
	ms := uint64(holdTime / time.Millisecond)

	if adj.holdHandle != 0 {
		i.cpWheel.Reschedule(adj.holdHandle, ms)
		return
	}

	adj.holdHandle = i.cpWheel.RegisterEvent(
		func(arg interface{}) {
			i.postCP(func() { i.holdTimerExpiredCP(arg.(*graph.Interface)) })
		},
		iface,
		ms,
		0,
	)
}

// holdTimerExpiredCP runs on the CP dispatcher when an adjacency's hold
// timer fires without a refreshing hello.
func (i *Instance) holdTimerExpiredCP(iface *graph.Interface) {
	st, ok := i.ifaces[iface]
	if !ok || st.adjacency == nil {
		return
	}

	st.adjacency.holdHandle = 0
	i.transitionDown(st.adjacency, "hold timer expired")
}
