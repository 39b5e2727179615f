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
	"github.com/nabbar/isis-lab/acl"
	"github.com/nabbar/isis-lab/graph"
)

// ifaceState is the per-interface protocol state of spec section 3:
// created on protocol enable for that interface, destroyed on disable.
type ifaceState struct {
	iface   *graph.Interface
	enabled bool

	goodHello uint64
	badHello  uint64
	goodLSP   uint64

	adjacency *Adjacency

	helloTimer uint64

	inboundACL *acl.Group
}

// EnableInterface installs per-interface protocol state, the way
// `enable_interface` does in spec section 4.1. It is idempotent.
func (i *Instance) EnableInterface(iface *graph.Interface) {
	i.postCPWait(func() {
		if _, ok := i.ifaces[iface]; ok {
			return
		}

		st := &ifaceState{iface: iface, enabled: true}
		i.ifaces[iface] = st

		st.helloTimer = i.cpWheel.RegisterEvent(
			func(arg interface{}) {
				i.postCP(func() { i.sendHelloCP(arg.(*graph.Interface)) })
			},
			iface,
			uint64(graph.InterfaceHelloInterval(iface))*1000,
			uint64(graph.InterfaceHelloInterval(iface))*1000,
		)
	})
}

// DisableInterface removes per-interface protocol state: transitions
// its adjacency through Down and cancels its timers, then schedules LSP
// generation with reason adj_state_changed, per spec section 4.1.
func (i *Instance) DisableInterface(iface *graph.Interface) {
	i.postCPWait(func() {
		st, ok := i.ifaces[iface]
		if !ok {
			return
		}

		i.cpWheel.Deregister(st.helloTimer)

		if st.adjacency != nil {
			i.transitionDown(st.adjacency, "interface disabled")
		}

		delete(i.ifaces, iface)

		i.scheduleLSPGeneration(EventAdjStateChanged)
	})
}

// SetInboundACL attaches an object group that gates hello/LSP reception
// on the interface: frames whose source fails the group test are
// dropped as bad_hello/bad LSP before any protocol processing (the
// supplemental isis/acl.go feature, grounded in object_group.c).
func (i *Instance) SetInboundACL(iface *graph.Interface, group *acl.Group) {
	i.postCPWait(func() {
		if st, ok := i.ifaces[iface]; ok {
			st.inboundACL = group
		}
	})
}

// qualifyToSendHellos mirrors isis_interface_qualify_to_send_hellos: an
// interface must be protocol-enabled and have an IP address.
func qualifyToSendHellos(st *ifaceState) bool {
	if st == nil || !st.enabled {
		return false
	}
	return graph.InterfaceIP(st.iface) != nil
}
