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

// Package acl implements the firewall/object-group auxiliary
// infrastructure named in spec section 1: named groups of network
// addresses, optionally nested, tested for membership before a frame is
// handed to the protocol above. Grounded in the object-group hash-table
// model of the original simulator's object_network subsystem, recast
// here as a plain map keyed by group name (no separate hash function
// needed in Go).
package acl

import (
	"net"
	"sync"
)

// Type distinguishes the three object-group flavours the original
// firewall subsystem supports.
type Type uint8

const (
	// TypeHost matches a single address.
	TypeHost Type = iota
	// TypeNetwork matches a CIDR block.
	TypeNetwork
	// TypeNested matches if any child group matches.
	TypeNested
)

// Group is one named object group.
type Group struct {
	mtx sync.RWMutex

	name     string
	gtype    Type
	refCount int

	host    net.IP
	network *net.IPNet
	nested  []*Group
}

// NewHostGroup creates a group matching exactly one address.
func NewHostGroup(name string, host net.IP) *Group {
	return &Group{name: name, gtype: TypeHost, host: host}
}

// NewNetworkGroup creates a group matching a CIDR block.
func NewNetworkGroup(name string, network *net.IPNet) *Group {
	return &Group{name: name, gtype: TypeNetwork, network: network}
}

// NewNestedGroup creates a group that matches if any of children
// matches. Mirrors object_group_bind's parent/child linkage, without the
// original's explicit cycle-detection id — Bind below checks for cycles
// directly before linking.
func NewNestedGroup(name string, children ...*Group) *Group {
	return &Group{name: name, gtype: TypeNested, nested: children}
}

// Name returns the group's name.
func (g *Group) Name() string {
	return g.name
}

// Bind appends child to a nested group. It refuses to create a cycle.
func (g *Group) Bind(child *Group) bool {
	if g.gtype != TypeNested {
		return false
	}

	if child == g || child.contains(g, make(map[*Group]bool)) {
		return false
	}

	g.mtx.Lock()
	defer g.mtx.Unlock()

	g.nested = append(g.nested, child)
	child.mtx.Lock()
	child.refCount++
	child.mtx.Unlock()

	return true
}

// contains is Bind's cycle-detection helper: it reports whether probe is
// reachable from g by following nested children.
func (g *Group) contains(probe *Group, seen map[*Group]bool) bool {
	if g == probe {
		return true
	}

	if seen[g] {
		return false
	}
	seen[g] = true

	g.mtx.RLock()
	defer g.mtx.RUnlock()

	if g.gtype != TypeNested {
		return false
	}

	for _, c := range g.nested {
		if c.contains(probe, seen) {
			return true
		}
	}

	return false
}

// Match reports whether ip is matched by this group.
func (g *Group) Match(ip net.IP) bool {
	g.mtx.RLock()
	defer g.mtx.RUnlock()

	switch g.gtype {
	case TypeHost:
		return g.host.Equal(ip)
	case TypeNetwork:
		return g.network != nil && g.network.Contains(ip)
	case TypeNested:
		for _, c := range g.nested {
			if c.Match(ip) {
				return true
			}
		}
		return false
	}

	return false
}

// RefCount returns the group's current reference count (how many
// parents/consumers are holding it).
func (g *Group) RefCount() int {
	g.mtx.RLock()
	defer g.mtx.RUnlock()
	return g.refCount
}

// Table is a named registry of object groups, the Go stand-in for the
// original's per-node hashtable_t of object groups.
type Table struct {
	mtx    sync.RWMutex
	groups map[string]*Group
}

// NewTable returns an empty object-group table.
func NewTable() *Table {
	return &Table{groups: make(map[string]*Group)}
}

// Insert adds a group to the table. It fails (returns false) if a group
// of that name already exists.
func (t *Table) Insert(g *Group) bool {
	t.mtx.Lock()
	defer t.mtx.Unlock()

	if _, exists := t.groups[g.name]; exists {
		return false
	}

	t.groups[g.name] = g

	return true
}

// Lookup returns the group registered under name, if any.
func (t *Table) Lookup(name string) (*Group, bool) {
	t.mtx.RLock()
	defer t.mtx.RUnlock()

	g, ok := t.groups[name]

	return g, ok
}

// Remove deletes the named group from the table.
func (t *Table) Remove(name string) {
	t.mtx.Lock()
	defer t.mtx.Unlock()

	delete(t.groups, name)
}
