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
	"sync/atomic"

	"github.com/nabbar/isis-lab/tlv"
)

// PktType distinguishes the two wire packet types this simulator knows,
// per spec section 6's wire-format table.
type PktType uint16

const (
	PktTypeHello PktType = iota + 1
	PktTypeLSP
)

// isisFrameType is the L2 trap predicate Init registers: isis_pkt_trap_rule
// (original_source/Layer5/isis/isis_pkt.c:12-21) checks the outer
// Ethernet header's type field against ISIS_ETH_PKT_TYPE. This simulator
// has no outer Ethernet header (spec section 1 excludes bit-exact wire
// compatibility), so the leading 2-byte isis_pkt_type field that both
// encodeLSP and encodeHello write stands in for that check.
func isisFrameType(pkt []byte, size uint32) bool {
	if len(pkt) < 2 {
		return false
	}
	switch PktType(uint16(pkt[0])<<8 | uint16(pkt[1])) {
	case PktTypeHello, PktTypeLSP:
		return true
	default:
		return false
	}
}

const (
	flagOverload uint8 = 1 << 0
	flagPurge    uint8 = 1 << 1
)

// TLV types used on the wire, per spec section 6.
const (
	TLVHostname tlv.Type = iota + 1
	TLVRouterID
	TLVIfIP
	TLVIfIndex
	TLVHoldTime
	TLVMetric
	TLVISReach
	TLVOnDemand
)

// maxPktSize bounds a generated LSP's Ethernet+header+TLV size. Large
// enough for a few dozen neighbour TLVs; generate_lsp aborts rather
// than silently truncating if this is exceeded.
const maxPktSize = 4096

// LSP is a reference-counted, shared-ownership LSP packet: owned by the
// DB (while installed), the node's self-LSP slot, in-flight flood jobs
// and timer callbacks, per spec section 3 and section 5's shared
// resource policy.
type LSP struct {
	RouterID uint32
	SeqNo    uint32
	Flags    uint8
	Payload  []byte // raw TLV stream

	refCount     int32
	installed    bool
	floodEligible bool
	expiryHandle uint64
	hasExpiry    bool
}

// NewLSP allocates an LSP with ref-count 1, owned by the caller.
func NewLSP(routerID, seqNo uint32, flags uint8, payload []byte) *LSP {
	return &LSP{RouterID: routerID, SeqNo: seqNo, Flags: flags, Payload: payload, refCount: 1}
}

// IsOverload reports whether the OVERLOAD bit is set.
func (p *LSP) IsOverload() bool { return p.Flags&flagOverload != 0 }

// IsPurge reports whether the PURGE bit is set.
func (p *LSP) IsPurge() bool { return p.Flags&flagPurge != 0 }

// Ref takes one reference on the packet. Every handoff (DB install,
// flood job enqueue, timer registration) must call this.
func (p *LSP) Ref() *LSP {
	atomic.AddInt32(&p.refCount, 1)
	return p
}

// Release drops one reference. It panics if the packet is still
// installed in the DB when its count would reach zero — that would
// violate spec section 5's "must not be installed_in_db" invariant;
// callers are expected to uninstall before releasing the DB's own
// reference.
func (p *LSP) Release() {
	n := atomic.AddInt32(&p.refCount, -1)
	if n < 0 {
		assertf(false, "lsp %08x refcount underflow", p.RouterID)
	}
	if n == 0 {
		assertf(!p.installed, "lsp %08x freed while still installed in db", p.RouterID)
	}
}

// RefCount returns the current reference count, for tests and
// diagnostics.
func (p *LSP) RefCount() int32 {
	return atomic.LoadInt32(&p.refCount)
}

// HostnameTLV returns the hostname carried by the packet, if any.
func (p *LSP) HostnameTLV() (string, bool) {
	v, ok := tlv.GetParticularTLV(p.Payload, TLVHostname)
	if !ok {
		return "", false
	}
	return string(v), true
}

// HasOnDemandTLV reports whether the packet carries the on-demand
// marker TLV.
func (p *LSP) HasOnDemandTLV() bool {
	_, ok := tlv.GetParticularTLV(p.Payload, TLVOnDemand)
	return ok
}

// encodeLSP serialises the LSP header (spec section 6's wire-format
// table) followed by the TLV payload, for handoff to transmit.
func encodeLSP(p *LSP) []byte {
	buf := make([]byte, 11, 11+len(p.Payload))

	buf[0] = byte(PktTypeLSP >> 8)
	buf[1] = byte(PktTypeLSP)
	buf[2] = p.Flags
	buf[3] = byte(p.RouterID >> 24)
	buf[4] = byte(p.RouterID >> 16)
	buf[5] = byte(p.RouterID >> 8)
	buf[6] = byte(p.RouterID)
	buf[7] = byte(p.SeqNo >> 24)
	buf[8] = byte(p.SeqNo >> 16)
	buf[9] = byte(p.SeqNo >> 8)
	buf[10] = byte(p.SeqNo)

	return append(buf, p.Payload...)
}

// decodeLSP parses a wire frame produced by encodeLSP. It returns nil
// on a short or malformed buffer rather than an error — spec section 7
// treats a malformed frame the same as any other trap-boundary failure:
// swallowed, no error propagation.
func decodeLSP(buf []byte) *LSP {
	if len(buf) < 11 {
		return nil
	}

	flags := buf[2]
	routerID := uint32(buf[3])<<24 | uint32(buf[4])<<16 | uint32(buf[5])<<8 | uint32(buf[6])
	seqNo := uint32(buf[7])<<24 | uint32(buf[8])<<16 | uint32(buf[9])<<8 | uint32(buf[10])

	payload := make([]byte, len(buf)-11)
	copy(payload, buf[11:])

	return NewLSP(routerID, seqNo, flags, payload)
}
