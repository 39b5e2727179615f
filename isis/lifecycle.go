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
	"github.com/nabbar/isis-lab/trap"
)

// Init installs protocol state on the instance's node, per spec section
// 4.1: registers the L2 trap (predicate: Ethernet type = ISIS), starts
// the periodic flood timer, increments admin_config_changed, and
// schedules an LSP generation with that reason. No-op if already
// enabled. NewInstance must have been called first; Init is what makes
// the instance live.
func (i *Instance) Init() {
	i.postCPWait(func() {
		if i.enabled {
			return
		}

		i.enabled = true
		i.node.Slot = i

		i.trapHandle = i.trapTable.RegisterL2Trap(
			isisFrameType,
			func(notif trap.Notification) { i.postDP(func() { i.onFrameDP(notif) }) },
		)

		i.startFloodTimer()

		i.eventCounters[EventAdminConfigChanged]++
		i.metrics.observeEvent(EventAdminConfigChanged)

		i.scheduleLSPGeneration(EventAdminConfigChanged)
	})
}

// instanceOf retrieves the Instance attached to a node's Slot, if the
// protocol is enabled there.
func instanceOf(node *graph.Node) (*Instance, bool) {
	i, ok := node.Slot.(*Instance)
	return i, ok
}

// onFrameDP classifies a trapped frame on the data-plane dispatcher and
// routes it to the appropriate CP-bound handler. The DP never mutates
// protocol state directly, per spec section 5.
func (i *Instance) onFrameDP(notif trap.Notification) {
	switch PktType(notif.HdrCode) {
	case PktTypeHello:
		i.processHelloFrame(notif.IIF, notif.Pkt)
	case PktTypeLSP:
		pkt := decodeLSP(notif.Pkt)
		if pkt == nil {
			return
		}
		i.postCP(func() {
			st := i.ifaces[notif.IIF]
			if !i.aclAllows(st, graph.InterfaceIP(notif.IIF.Peer())) {
				pkt.Release()
				return
			}
			if st != nil {
				st.goodLSP++
			}
			// decodeLSP handed us ref-count 1, the receive path's own
			// reference (isis_pkt.c:112-120 takes it with
			// isis_ref_isis_pkt before isis_install_lsp and drops it
			// with isis_deref_isis_pkt unconditionally afterwards).
			// installLSP takes its own reference when it keeps the
			// packet, so this one is always released once it returns.
			i.installLSP(notif.IIF, pkt)
			pkt.Release()
		})
	}
}

// Deinit tears protocol state down: deregisters the trap and invokes
// shutdown, per spec section 4.1. No-op if not enabled.
func (i *Instance) Deinit() {
	var enabled bool
	i.postCPWait(func() {
		if !i.enabled {
			return
		}
		enabled = true
		i.trapTable.DeregisterL2Trap(i.trapHandle)
	})

	if enabled {
		i.Shutdown()
	}
}
