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

import "github.com/nabbar/isis-lab/graph"

// installLSP implements `install_lsp` from spec section 4.4. Must run
// on the CP dispatcher. iif is nil for self-originated packets. installLSP
// itself never takes or drops the caller's own reference on pkt — only
// the replace branch takes one, for the DB's copy — mirroring
// isis_pkt.c:112-120, where isis_ref_isis_pkt/isis_deref_isis_pkt bracket
// the call to isis_install_lsp in the caller, not inside it. Callers that
// hold a reference on entry (onFrameDP's receive path, generateLSP's
// self-LSP slot) are responsible for releasing it once this returns.
func (i *Instance) installLSP(iif *graph.Interface, pkt *LSP) {
	stored, exists := i.lspDB.Get(pkt.RouterID)

	switch {
	case !exists || pkt.SeqNo > stored.SeqNo:
		i.replaceAndFlood(iif, pkt, stored, exists)

	case pkt.SeqNo == stored.SeqNo:
		// no-op: the DB retains its current copy. The caller's own
		// reference on pkt is unaffected here; it releases it.

	default:
		// strictly less: drop the incoming packet. The caller's own
		// reference on pkt is unaffected here; it releases it, which
		// brings a rejected stale packet's ref-count to zero (S6). Per
		// the open question in spec section 9, this implementation
		// does not reply with the newer stored copy — treated as a
		// non-goal, matching S6.
	}
}

func (i *Instance) replaceAndFlood(iif *graph.Interface, pkt *LSP, stored *LSP, hadPrevious bool) {
	if hadPrevious {
		i.uninstall(stored)
	}

	pkt.Ref()
	pkt.installed = true
	i.lspDB.Set(pkt.RouterID, pkt)

	if !i.cfg.OnDemandFlooding {
		i.armExpiry(pkt)
	}

	i.floodOutOfIIF(iif, pkt)
	i.lspFloodCount++
	i.metrics.incLSPFlood()

	selfRouterID := ipToUint32(graph.NodeLoopbackAddress(i.node))

	if pkt.IsPurge() && pkt.RouterID != selfRouterID {
		i.uninstallAndRemove(pkt)
	}

	if pkt.IsPurge() && pkt.RouterID == selfRouterID {
		i.onPendingWorkDone(pendingLSPPurge)
		i.onPendingWorkDone(pendingDelRoutes)
	}

	i.scheduleSPF()
}

// uninstall clears the installed flag and drops the DB's own reference,
// without removing the map entry (the caller is about to overwrite it).
func (i *Instance) uninstall(pkt *LSP) {
	pkt.installed = false
	i.stopExpiry(pkt)
	pkt.Release()
}

// uninstallAndRemove evicts a purge target entirely from the DB, per
// spec section 4.4's "remove the entry instead (after a single
// propagation round)".
func (i *Instance) uninstallAndRemove(pkt *LSP) {
	if _, ok := i.lspDB.Get(pkt.RouterID); ok {
		i.lspDB.Delete(pkt.RouterID)
	}
	i.uninstall(pkt)
}

// armExpiry arms pkt's per-entry expiry timer for lsp_lifetime_interval.
func (i *Instance) armExpiry(pkt *LSP) {
	ms := uint64(i.cfg.LifetimeInterval.Milliseconds())

	pkt.expiryHandle = i.cpWheel.RegisterEvent(
		func(arg interface{}) {
			i.postCP(func() { i.expireLSP(arg.(*LSP)) })
		},
		pkt,
		ms,
		0,
	)
	pkt.hasExpiry = true
}

func (i *Instance) stopExpiry(pkt *LSP) {
	if pkt.hasExpiry {
		i.cpWheel.Deregister(pkt.expiryHandle)
		pkt.hasExpiry = false
	}
}

// expireLSP runs on the CP dispatcher when a DB entry's expiry timer
// fires: remove it from the DB and release the DB's reference.
func (i *Instance) expireLSP(pkt *LSP) {
	stored, ok := i.lspDB.Get(pkt.RouterID)
	if !ok || stored != pkt {
		return
	}

	i.lspDB.Delete(pkt.RouterID)
	pkt.hasExpiry = false
	i.uninstall(pkt)
}

// floodOutOfIIF forwards pkt out of every protocol-enabled interface
// except iif, taking a reference per flood target and releasing it when
// the (simulated, synchronous) send completes. Interfaces whose
// adjacency is not Up, and iif itself, are excluded.
func (i *Instance) floodOutOfIIF(iif *graph.Interface, pkt *LSP) {
	wire := encodeLSP(pkt)

	for iface, st := range i.ifaces {
		if iface == iif {
			continue
		}
		if st.adjacency == nil || st.adjacency.State != AdjUp {
			continue
		}

		pkt.Ref()
		i.transmit(iface, PktTypeLSP, wire)
		pkt.Release()
	}
}
