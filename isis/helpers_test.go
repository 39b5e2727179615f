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

package isis_test

import (
	"fmt"
	"net"

	"github.com/nabbar/isis-lab/graph"
	"github.com/nabbar/isis-lab/isis"
)

// testConfig is the config every scenario test builds instances with:
// the default config with a short flood interval, so periodic re-floods
// fall within a gomega Eventually budget. The one-second hello interval
// that keeps real-time waits in the single-digit seconds is set per
// interface in newPair.
func testConfig() isis.Config {
	cfg := isis.DefaultConfig()
	cfg.FloodInterval = 2 * 1_000_000_000 // 2s, expressed in ns to avoid importing time here
	return cfg
}

// pair is a two-node point-to-point network: a back-to-back link on a
// /30 subnet, both ends protocol-enabled with a one-second hello
// interval, matching the S1/S2 scenarios of spec section 8.
type pair struct {
	nodeA, nodeB *graph.Node
	ifA, ifB     *graph.Interface
	instA, instB *isis.Instance
}

func newPair(nameA, nameB string, loA, loB byte) *pair {
	nodeA := graph.NewNode(nameA, net.IPv4(10, 0, 0, loA))
	nodeB := graph.NewNode(nameB, net.IPv4(10, 0, 0, loB))

	mask := net.CIDRMask(30, 32)

	macA := net.HardwareAddr{0x02, 0x00, 0x00, 0x00, 0x00, loA}
	macB := net.HardwareAddr{0x02, 0x00, 0x00, 0x00, 0x00, loB}

	ifA := nodeA.AddInterface(fmt.Sprintf("eth-%s", nameB), macA, net.IPv4(192, 168, loA, 1), mask, 10, 1, 3)
	ifB := nodeB.AddInterface(fmt.Sprintf("eth-%s", nameA), macB, net.IPv4(192, 168, loA, 2), mask, 10, 1, 3)

	graph.Connect(ifA, ifB)

	instA := isis.NewInstance(nodeA, testConfig(), nil, nil)
	instB := isis.NewInstance(nodeB, testConfig(), nil, nil)

	return &pair{nodeA: nodeA, nodeB: nodeB, ifA: ifA, ifB: ifB, instA: instA, instB: instB}
}

// up enables both instances and both ends of the link, the sequence
// `enable_protocol` then `enable_interface` follows in spec section 6.
func (p *pair) up() {
	p.instA.Init()
	p.instB.Init()
	p.instA.EnableInterface(p.ifA)
	p.instB.EnableInterface(p.ifB)
}

// teardown calls Shutdown on both ends so no background goroutine or
// timer outlives a single It block.
func (p *pair) teardown() {
	p.instA.Shutdown()
	p.instB.Shutdown()
}
