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

// Package graph models the simulated network fabric: nodes, point-to-point
// interfaces and the links that join them. It is deliberately small — the
// routing protocol in package isis only ever needs the handful of
// accessors described below, not a general-purpose graph library.
package graph

import (
	"fmt"
	"net"
	"sync"

	"github.com/google/uuid"
)

// Interface is one end of a point-to-point link attached to a Node.
type Interface struct {
	mtx sync.RWMutex

	id   uuid.UUID
	name string
	mac  net.HardwareAddr
	ip   net.IP
	mask net.IPMask
	cost uint32

	helloInterval uint32
	holdFactor    uint32

	node *Node
	peer *Interface
	link *Link
}

// Link connects exactly two interfaces. Point-to-point only: this
// simulator never models a shared broadcast segment with more than two
// attachment points.
type Link struct {
	id uuid.UUID
	a  *Interface
	b  *Interface
}

// Node is one simulated router: a name, a loopback (router-id) address and
// a set of interfaces.
type Node struct {
	mtx sync.RWMutex

	id        uuid.UUID
	name      string
	loopback  net.IP
	ifaces    []*Interface
	ifaceByID map[string]*Interface

	// Slot holds whatever a protocol instance (package isis) wants to
	// attach to this node. The graph package never looks inside it.
	Slot interface{}
}

// NewNode creates a node with the given name and loopback/router-id
// address.
func NewNode(name string, loopback net.IP) *Node {
	return &Node{
		id:        uuid.New(),
		name:      name,
		loopback:  loopback,
		ifaceByID: make(map[string]*Interface),
	}
}

// AddInterface attaches a new interface to the node.
func (n *Node) AddInterface(name string, mac net.HardwareAddr, ip net.IP, mask net.IPMask, cost uint32, helloInterval, holdFactor uint32) *Interface {
	n.mtx.Lock()
	defer n.mtx.Unlock()

	i := &Interface{
		id:            uuid.New(),
		name:          name,
		mac:           mac,
		ip:            ip,
		mask:          mask,
		cost:          cost,
		helloInterval: helloInterval,
		holdFactor:    holdFactor,
		node:          n,
	}

	n.ifaces = append(n.ifaces, i)
	n.ifaceByID[i.id.String()] = i

	return i
}

// Connect joins two interfaces (belonging to different nodes, normally)
// with a point-to-point link, and returns it.
func Connect(a, b *Interface) *Link {
	l := &Link{id: uuid.New(), a: a, b: b}

	a.mtx.Lock()
	a.peer = b
	a.link = l
	a.mtx.Unlock()

	b.mtx.Lock()
	b.peer = a
	b.link = l
	b.mtx.Unlock()

	return l
}

// Peer returns the interface at the other end of this interface's link,
// or nil if unconnected.
func (i *Interface) Peer() *Interface {
	i.mtx.RLock()
	defer i.mtx.RUnlock()
	return i.peer
}

// Disconnect tears the link down from both sides, leaving both
// interfaces unconnected.
func Disconnect(i *Interface) {
	if i == nil {
		return
	}

	i.mtx.Lock()
	peer := i.peer
	i.peer = nil
	i.link = nil
	i.mtx.Unlock()

	if peer == nil {
		return
	}

	peer.mtx.Lock()
	peer.peer = nil
	peer.link = nil
	peer.mtx.Unlock()
}

// NodeName returns the node's configured name.
func NodeName(n *Node) string {
	n.mtx.RLock()
	defer n.mtx.RUnlock()
	return n.name
}

// NodeLoopbackAddress returns the node's router-id (loopback) address.
func NodeLoopbackAddress(n *Node) net.IP {
	n.mtx.RLock()
	defer n.mtx.RUnlock()
	return n.loopback
}

// IterateNodeInterfaces calls fn for every interface on the node, in
// attachment order, stopping early if fn returns false.
func IterateNodeInterfaces(n *Node, fn func(*Interface) bool) {
	n.mtx.RLock()
	ifaces := make([]*Interface, len(n.ifaces))
	copy(ifaces, n.ifaces)
	n.mtx.RUnlock()

	for _, i := range ifaces {
		if !fn(i) {
			return
		}
	}
}

// InterfaceName returns the interface's name.
func InterfaceName(i *Interface) string {
	i.mtx.RLock()
	defer i.mtx.RUnlock()
	return i.name
}

// InterfaceMAC returns the interface's MAC address.
func InterfaceMAC(i *Interface) net.HardwareAddr {
	i.mtx.RLock()
	defer i.mtx.RUnlock()
	return i.mac
}

// InterfaceIP returns the interface's IP address.
func InterfaceIP(i *Interface) net.IP {
	i.mtx.RLock()
	defer i.mtx.RUnlock()
	return i.ip
}

// InterfaceMask returns the interface's subnet mask.
func InterfaceMask(i *Interface) net.IPMask {
	i.mtx.RLock()
	defer i.mtx.RUnlock()
	return i.mask
}

// InterfaceIndex returns a stable per-node numeric index for the
// interface, derived from its position in the node's interface set.
func InterfaceIndex(i *Interface) uint32 {
	i.mtx.RLock()
	n := i.node
	id := i.id
	i.mtx.RUnlock()

	if n == nil {
		return 0
	}

	n.mtx.RLock()
	defer n.mtx.RUnlock()

	for idx, candidate := range n.ifaces {
		if candidate.id == id {
			return uint32(idx + 1)
		}
	}

	return 0
}

// InterfaceCost returns the interface's routing metric.
func InterfaceCost(i *Interface) uint32 {
	i.mtx.RLock()
	defer i.mtx.RUnlock()
	return i.cost
}

// InterfaceHelloInterval returns the interface's configured hello
// interval, in seconds.
func InterfaceHelloInterval(i *Interface) uint32 {
	i.mtx.RLock()
	defer i.mtx.RUnlock()
	return i.helloInterval
}

// InterfaceHoldFactor returns the interface's configured hold factor
// (the multiplier applied to the hello interval to obtain the
// advertised hold time).
func InterfaceHoldFactor(i *Interface) uint32 {
	i.mtx.RLock()
	defer i.mtx.RUnlock()
	return i.holdFactor
}

// InterfaceNode returns the node that owns the interface.
func InterfaceNode(i *Interface) *Node {
	i.mtx.RLock()
	defer i.mtx.RUnlock()
	return i.node
}

// Subnet returns the interface's configured subnet (its IP masked by its
// mask), or nil if either is unset.
func Subnet(i *Interface) *net.IPNet {
	i.mtx.RLock()
	defer i.mtx.RUnlock()

	if i.ip == nil || i.mask == nil {
		return nil
	}

	return &net.IPNet{IP: i.ip.Mask(i.mask), Mask: i.mask}
}

// String implements fmt.Stringer for debug output.
func (i *Interface) String() string {
	return fmt.Sprintf("%s/%s", InterfaceNode(i).name, i.name)
}
