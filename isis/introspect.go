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
	"github.com/nabbar/isis-lab/graph"
	"github.com/nabbar/isis-lab/tlv"
)

// AdjacencyUpCount returns the node's current count of Up adjacencies,
// the counter named in spec section 3.
func (i *Instance) AdjacencyUpCount() int {
	var n int
	i.postCPWait(func() { n = i.adjacencyUpCount })
	return n
}

// LSPDBSize returns the number of entries currently installed in the
// LSP database.
func (i *Instance) LSPDBSize() int {
	var n int
	i.postCPWait(func() { n = i.lspDB.Len() })
	return n
}

// LSPDBEntry returns the sequence number stored for routerID, if any.
func (i *Instance) LSPDBEntry(routerID uint32) (seqNo uint32, ok bool) {
	i.postCPWait(func() {
		pkt, found := i.lspDB.Get(routerID)
		if found {
			seqNo, ok = pkt.SeqNo, true
		}
	})
	return seqNo, ok
}

// InjectLSP is a test-support entry point into install_lsp (spec section
// 4.4): it mimics onFrameDP's ref-count contract directly, without
// needing a live peer to source the frame — take a reference, install
// (or drop) synchronously on the CP dispatcher, release that reference
// exactly as the receive path does, and hand back the packet so a test
// can still inspect RefCount() afterward.
func (i *Instance) InjectLSP(routerID, seqNo uint32, flags uint8, payload []byte) *LSP {
	pkt := NewLSP(routerID, seqNo, flags, payload)
	i.postCPWait(func() {
		i.installLSP(nil, pkt)
		pkt.Release()
	})
	return pkt
}

// SelfSeqNo returns the node's current self-LSP sequence number, or 0 if
// no self-LSP has been built yet.
func (i *Instance) SelfSeqNo() uint32 {
	var n uint32
	i.postCPWait(func() {
		if i.selfLSP != nil {
			n = i.selfLSP.SeqNo
		}
	})
	return n
}

// SelfLSPNeighbourCount reports how many IS-reach TLVs the current
// self-LSP carries, i.e. the number of Up adjacencies it advertises.
func (i *Instance) SelfLSPNeighbourCount() int {
	var n int
	i.postCPWait(func() {
		if i.selfLSP == nil {
			return
		}
		tlv.Iterate(i.selfLSP.Payload, func(t tlv.TLV) bool {
			if t.Type == TLVISReach {
				n++
			}
			return true
		})
	})
	return n
}

// SelfLSPIsOverload reports whether the current self-LSP carries the
// OVERLOAD flag. False if no self-LSP has been built yet.
func (i *Instance) SelfLSPIsOverload() bool {
	var v bool
	i.postCPWait(func() {
		if i.selfLSP != nil {
			v = i.selfLSP.IsOverload()
		}
	})
	return v
}

// SelfLSPIsPurge reports whether the current self-LSP carries the PURGE
// flag. False if no self-LSP has been built yet.
func (i *Instance) SelfLSPIsPurge() bool {
	var v bool
	i.postCPWait(func() {
		if i.selfLSP != nil {
			v = i.selfLSP.IsPurge()
		}
	})
	return v
}

// SelfLSPHasOnDemand reports whether the current self-LSP carries the
// on-demand marker TLV.
func (i *Instance) SelfLSPHasOnDemand() bool {
	var v bool
	i.postCPWait(func() {
		if i.selfLSP != nil {
			v = i.selfLSP.HasOnDemandTLV()
		}
	})
	return v
}

// IsOverloadOn reports whether the node's overload flag is currently set.
func (i *Instance) IsOverloadOn() bool {
	var on bool
	i.postCPWait(func() { on = i.overload.on })
	return on
}

// IsOverloadTimerArmed reports whether an overload timeout timer is
// currently running.
func (i *Instance) IsOverloadTimerArmed() bool {
	var armed bool
	i.postCPWait(func() { armed = i.overload.armed })
	return armed
}

// IsOnDemandFlooding reports the node's current flooding mode.
func (i *Instance) IsOnDemandFlooding() bool {
	var on bool
	i.postCPWait(func() { on = i.cfg.OnDemandFlooding })
	return on
}

// IsShuttingDown reports whether the shutdown coordinator is in its
// pending-work window.
func (i *Instance) IsShuttingDown() bool {
	var v bool
	i.postCPWait(func() { v = i.shuttingDown })
	return v
}

// IsShutDown reports whether final teardown has completed.
func (i *Instance) IsShutDown() bool {
	var v bool
	i.postCPWait(func() { v = i.shutDown })
	return v
}

// EventCount returns the number of times the given event kind has been
// observed, per spec section 3's per-event counters.
func (i *Instance) EventCount(kind EventKind) uint64 {
	var n uint64
	i.postCPWait(func() { n = i.eventCounters[kind] })
	return n
}

// LSPFloodCount returns the node's lsp_flood_count counter.
func (i *Instance) LSPFloodCount() uint64 {
	var n uint64
	i.postCPWait(func() { n = i.lspFloodCount })
	return n
}

// RouterID computes the 32-bit router-id a node's loopback address maps
// to — the same conversion install_lsp and generate_lsp use internally,
// exported so callers and tests can key LSPDBEntry without reaching into
// package internals.
func RouterID(n *graph.Node) uint32 {
	return ipToUint32(graph.NodeLoopbackAddress(n))
}
