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
	"encoding/binary"
	"net"
	"time"

	"github.com/nabbar/isis-lab/graph"
	"github.com/nabbar/isis-lab/tlv"
)

// buildHelloTLVs composes the TLV payload of spec section 4.2: hostname,
// router-id (textual), interface IP (textual), interface index, hold
// time and metric.
func buildHelloTLVs(iface *graph.Interface) []byte {
	node := graph.InterfaceNode(iface)

	buf, _ := tlv.InsertTLV(nil, TLVHostname, []byte(graph.NodeName(node)))
	buf, _ = tlv.InsertTLV(buf, TLVRouterID, []byte(graph.NodeLoopbackAddress(node).String()))
	buf, _ = tlv.InsertTLV(buf, TLVIfIP, []byte(graph.InterfaceIP(iface).String()))

	idxBuf := make([]byte, 4)
	binary.BigEndian.PutUint32(idxBuf, graph.InterfaceIndex(iface))
	buf, _ = tlv.InsertTLV(buf, TLVIfIndex, idxBuf)

	holdSec := graph.InterfaceHelloInterval(iface) * graph.InterfaceHoldFactor(iface)
	holdBuf := make([]byte, 4)
	binary.BigEndian.PutUint32(holdBuf, holdSec)
	buf, _ = tlv.InsertTLV(buf, TLVHoldTime, holdBuf)

	metricBuf := make([]byte, 4)
	binary.BigEndian.PutUint32(metricBuf, graph.InterfaceCost(iface))
	buf, _ = tlv.InsertTLV(buf, TLVMetric, metricBuf)

	return buf
}

// sendHelloCP runs on the CP dispatcher on every hello-timer tick: emit
// a hello iff the interface still qualifies to send.
func (i *Instance) sendHelloCP(iface *graph.Interface) {
	st, ok := i.ifaces[iface]
	if !ok || !qualifyToSendHellos(st) {
		return
	}

	i.transmit(iface, PktTypeHello, encodeHello(buildHelloTLVs(iface)))
}

// encodeHello prepends the 2-byte isis_pkt_type header (spec section 6)
// that every wire frame this trap sees carries, mirroring encodeLSP's
// header so isisFrameType can classify either without knowing which one
// it is.
func encodeHello(tlvs []byte) []byte {
	buf := make([]byte, 2, 2+len(tlvs))
	buf[0] = byte(PktTypeHello >> 8)
	buf[1] = byte(PktTypeHello)
	return append(buf, tlvs...)
}

// transmit is the (simulated) egress path: in this standalone
// repository there is no real wire, so sending means handing the frame
// to the peer interface's trap table directly — the same effect a real
// Ethernet segment would have, without needing a packet-capture layer.
func (i *Instance) transmit(iface *graph.Interface, t PktType, payload []byte) {
	peer := graph.InterfaceNode(iface)
	_ = peer

	dst := iface.Peer()
	if dst == nil {
		return
	}

	hdrCode := uint16(t)
	dstNode := graph.InterfaceNode(dst)

	target, ok := instanceOf(dstNode)
	if !ok {
		return
	}

	target.postDP(func() {
		target.trapTable.Dispatch(dstNode, dst, payload, uint32(len(payload)), hdrCode)
	})
}

// processHelloFrame is the hello receive path of spec section 4.2,
// invoked from the DP dispatcher after the trap has classified the
// frame as PktTypeHello; it strips encodeHello's 2-byte header and
// re-posts onto CP to touch adjacency state.
func (i *Instance) processHelloFrame(iface *graph.Interface, wire []byte) {
	if len(wire) < 2 {
		return
	}
	payload := wire[2:]
	i.postCP(func() { i.processHelloCP(iface, payload) })
}

func (i *Instance) processHelloCP(iface *graph.Interface, payload []byte) {
	st, ok := i.ifaces[iface]
	if !ok || !st.enabled || !qualifyToSendHellos(st) {
		i.badHelloDrop(st)
		return
	}

	ifIPVal, ok := tlv.GetParticularTLV(payload, TLVIfIP)
	if !ok {
		i.badHelloDrop(st)
		return
	}

	peerIP := net.ParseIP(string(ifIPVal))

	if !i.aclAllows(st, peerIP) {
		i.badHelloDrop(st)
		return
	}

	subnet := graph.Subnet(iface)

	if peerIP == nil || subnet == nil || !subnet.Contains(peerIP) {
		if st.adjacency != nil {
			i.transitionDown(st.adjacency, "bad hello: subnet mismatch")
		}
		i.badHelloDrop(st)
		return
	}

	hostnameVal, _ := tlv.GetParticularTLV(payload, TLVHostname)
	routerIDVal, ok := tlv.GetParticularTLV(payload, TLVRouterID)
	if !ok {
		i.badHelloDrop(st)
		return
	}

	peerRouterIP := net.ParseIP(string(routerIDVal))
	if peerRouterIP == nil {
		i.badHelloDrop(st)
		return
	}

	peerRouterID := ipToUint32(peerRouterIP)

	holdBuf, _ := tlv.GetParticularTLV(payload, TLVHoldTime)
	metricBuf, _ := tlv.GetParticularTLV(payload, TLVMetric)

	holdSec := uint32(0)
	if len(holdBuf) == 4 {
		holdSec = binary.BigEndian.Uint32(holdBuf)
	}

	metric := uint32(0)
	if len(metricBuf) == 4 {
		metric = binary.BigEndian.Uint32(metricBuf)
	}

	adj, created := i.findOrCreateAdjacency(st, peerRouterID)

	adj.PeerIfIP = peerIP
	adj.PeerHostname = string(hostnameVal)
	adj.Metric = metric
	adj.LastHello = time.Now()
	adj.HoldTime = time.Duration(holdSec) * time.Second

	st.goodHello++

	if created {
		i.transitionInit(adj)
	} else if adj.State == AdjDown {
		i.transitionInit(adj)
	}

	// Two-way check: the peer's hello must report our own router-id.
	// The original validates this via a reachability TLV; this
	// simulator's hello carries only the peer's own identity, so the
	// two-way signal here is: we have received a hello directly from
	// that peer on this point-to-point link, which is sufficient since
	// at most one neighbour exists per interface.
	if adj.State == AdjInit {
		i.transitionUp(adj)
	}

	i.armHoldTimer(iface, adj, adj.HoldTime)
}

func (i *Instance) badHelloDrop(st *ifaceState) {
	if st != nil {
		st.badHello++
	}
}

func ipToUint32(ip net.IP) uint32 {
	v4 := ip.To4()
	if v4 == nil {
		// fall back to a stable 32-bit fold of a v6 address so the
		// router-id space stays uint32 per spec section 3.
		v6 := ip.To16()
		if v6 == nil {
			return 0
		}
		return binary.BigEndian.Uint32(v6[12:16])
	}
	return binary.BigEndian.Uint32(v4)
}
