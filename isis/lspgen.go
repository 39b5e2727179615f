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

// scheduleLSPGeneration implements `schedule_lsp_generation` from spec
// section 4.3: the edge-coalesced, one-shot scheduling pattern named as
// canonical in section 9 — a pending-task handle plus a bitset of
// reasons, never a queue of events. Must run on the CP dispatcher.
func (i *Instance) scheduleLSPGeneration(reason EventKind) {
	i.eventCounters[reason]++
	i.metrics.observeEvent(reason)

	if i.miscFlags.Test(uint(miscLSPGenDisabled)) {
		return
	}

	if i.shuttingDown {
		i.eventControlFlags.Set(flagShutdownPending)
	}

	i.eventControlFlags.Set(uint(reason))

	if i.lspGenPending {
		return
	}

	i.lspGenPending = true
	i.lspGenTask = i.jobs.CreateJob(nil, func(interface{}) {
		i.postCP(func() { i.generateLSP() })
	})
}

// generateLSP implements `generate_lsp` from spec section 4.3.
func (i *Instance) generateLSP() {
	i.lspGenPending = false

	purge := i.shuttingDown

	var payload []byte

	if !purge {
		payload = i.buildSelfPayload()
	}

	if len(payload)+11 > maxPktSize {
		return
	}

	seq := i.seqNo.Load() + 1
	i.seqNo.Store(seq)

	var flags uint8
	if purge {
		flags |= flagPurge
	}
	if i.overload.on {
		flags |= flagOverload
	}

	routerID := ipToUint32(graph.NodeLoopbackAddress(i.node))

	pkt := NewLSP(routerID, seq, flags, payload)
	pkt.floodEligible = true

	if i.selfLSP != nil {
		i.selfLSP.floodEligible = false
		i.selfLSP.Release()
	}
	i.selfLSP = pkt

	i.eventControlFlags.Clear(uint(EventAdminActionDBClear))

	if i.floodTimerArmed {
		i.cpWheel.GetAndSetAppData(i.floodTimer, pkt)
	}

	if purge {
		i.miscFlags.Set(uint(miscLSPGenDisabled))
	}

	i.installLSP(nil, pkt)
}

// buildSelfPayload composes the hostname, neighbour and on-demand TLVs
// for a non-purge self-LSP.
func (i *Instance) buildSelfPayload() []byte {
	var buf []byte

	buf, _ = tlv.InsertTLV(buf, TLVHostname, []byte(graph.NodeName(i.node)))

	for _, st := range i.ifaces {
		if st.adjacency == nil || st.adjacency.State != AdjUp {
			continue
		}

		nbr := encodeNeighbourTLV(st.iface, st.adjacency)
		buf, _ = tlv.InsertTLV(buf, TLVISReach, nbr)
	}

	onDemand := i.reconciliationOn || i.eventControlFlags.Test(uint(EventAdminActionDBClear))
	if onDemand {
		buf, _ = tlv.InsertTLV(buf, TLVOnDemand, []byte{1})
	}

	return buf
}

// encodeNeighbourTLV packs peer router-id, local IF IP, peer IF IP and
// metric into one IS-reach TLV value.
func encodeNeighbourTLV(iface *graph.Interface, adj *Adjacency) []byte {
	localIP := graph.InterfaceIP(iface)

	out := make([]byte, 4)
	out[0] = byte(adj.PeerRouterID >> 24)
	out[1] = byte(adj.PeerRouterID >> 16)
	out[2] = byte(adj.PeerRouterID >> 8)
	out[3] = byte(adj.PeerRouterID)

	out = append(out, []byte(localIP.String())...)
	out = append(out, 0)
	out = append(out, []byte(adj.PeerIfIP.String())...)
	out = append(out, 0)

	metricBuf := make([]byte, 4)
	metricBuf[0] = byte(adj.Metric >> 24)
	metricBuf[1] = byte(adj.Metric >> 16)
	metricBuf[2] = byte(adj.Metric >> 8)
	metricBuf[3] = byte(adj.Metric)
	out = append(out, metricBuf...)

	return out
}
