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

// Package isis is the core of the repository: the per-node link-state
// routing protocol instance, its adjacency state machine, LSP
// generation/installation/flooding pipeline, overload and
// reconciliation controllers, and its gated shutdown coordinator.
//
// All protocol state for a node is owned exclusively by that node's
// control-plane dispatcher goroutine (runCP, in this file); every
// exported method that touches state posts a closure onto it and, where
// it needs a result, blocks until that closure has run — the same pattern
// the teacher's cluster package uses to turn an async command into a
// synchronous call (see sync.go).
package isis

import (
	"sync"
	"time"

	"github.com/bits-and-blooms/bitset"
	"github.com/tidwall/btree"

	"github.com/nabbar/isis-lab/acl"
	"github.com/nabbar/isis-lab/atomic"
	"github.com/nabbar/isis-lab/graph"
	"github.com/nabbar/isis-lab/logging"
	"github.com/nabbar/isis-lab/timer"
	"github.com/nabbar/isis-lab/trap"
)

// Config holds the node-level knobs named across spec sections 3-4. Per
// spec section 6, hello interval and hold factor are properties of each
// interface (graph.InterfaceHelloInterval/InterfaceHoldFactor), not of
// the node, so they live on graph.Interface rather than here. cli/ binds
// these to viper flags; callers embedding the package directly can build
// one by hand.
type Config struct {
	FloodInterval     time.Duration
	LifetimeInterval  time.Duration
	OnDemandFlooding  bool
	ReconciliationWin time.Duration
}

// DefaultConfig returns the values the original simulator's defaults
// imply: generous flood, lifetime and reconciliation windows.
func DefaultConfig() Config {
	return Config{
		FloodInterval:     60 * time.Second,
		LifetimeInterval:  300 * time.Second,
		OnDemandFlooding:  false,
		ReconciliationWin: 30 * time.Second,
	}
}

// Instance is the per-node protocol state described by spec section 3.
// It is attached to a graph.Node's Slot field while the protocol is
// administratively enabled, and is nil-able: a disabled node holds none
// (spec section 3's "a node has protocol state iff administratively
// enabled").
type Instance struct {
	node *graph.Node
	cfg  Config
	log  logging.Logger

	cpWheel *timer.Wheel
	dpWheel *timer.Wheel
	jobs    *timer.Scheduler

	cpCh   chan func()
	dpCh   chan func()
	stopCh chan struct{}
	wg     sync.WaitGroup

	trapTable  *trap.Table
	trapHandle uint64

	aclGroups *acl.Table

	// --- fields below are CP-owned: only ever read or written from
	// inside a closure executing on cpCh. ---

	seqNo atomic.Value[uint32]

	lspDB *btree.Map[uint32, *LSP]

	selfLSP *LSP

	eventCounters [int(eventMax)]uint64

	lspGenTask   uint64
	lspGenPending bool

	spfTask uint64

	floodTimer          uint64
	floodTimerArmed     bool
	reconciliationTimer uint64
	reconciliationOn    bool

	overload overloadState

	eventControlFlags *bitset.BitSet
	miscFlags         *bitset.BitSet
	shutdownWork      *bitset.BitSet

	enabled      bool
	shuttingDown bool
	shutDown     bool

	adjacencyUpCount int
	lspFloodCount    uint64
	spfRunCount      uint64

	ifaces map[*graph.Interface]*ifaceState

	spfTrigger SPFTrigger

	metrics *metricSet
}

type overloadState struct {
	on      bool
	timeout uint32 // seconds; 0 = none configured
	handle  uint64
	armed   bool
}

// NewInstance builds an Instance for node but does not enable it; call
// Init to do that. log and reg may be nil: a nil log falls back to
// logging.Default(), and a nil reg leaves the metrics unregistered.
func NewInstance(node *graph.Node, cfg Config, log logging.Logger, reg MetricsRegisterer) *Instance {
	if log == nil {
		log = logging.Default()
	}

	i := &Instance{
		node:      node,
		cfg:       cfg,
		log:       log.WithField("node", graph.NodeName(node)),
		cpWheel:   timer.NewWheel(),
		dpWheel:   timer.NewWheel(),
		jobs:      timer.NewScheduler(),
		cpCh:      make(chan func(), 256),
		dpCh:      make(chan func(), 256),
		stopCh:    make(chan struct{}),
		trapTable: trap.NewTable(),
		aclGroups: acl.NewTable(),
		lspDB:     btree.NewMap[uint32, *LSP](32),
		ifaces:    make(map[*graph.Interface]*ifaceState),
		spfTrigger: noopSPF{},
		seqNo:     atomic.NewValue[uint32](),
	}

	i.seqNo.Store(0)

	i.eventControlFlags = bitset.New(uint(eventMax) + 1)
	i.miscFlags = bitset.New(4)
	i.shutdownWork = bitset.New(2)

	i.metrics = newMetricSet(reg, graph.NodeName(node))

	i.wg.Add(2)
	go i.runCP()
	go i.runDP()

	return i
}

// SetSPFTrigger installs the collaborator invoked by schedule_spf /
// cancel_spf_job. By default a no-op stub is installed — the SPF
// algorithm body is out of scope per spec section 1.
func (i *Instance) SetSPFTrigger(t SPFTrigger) {
	i.postCPWait(func() { i.spfTrigger = t })
}

// Node returns the graph node this instance is attached to.
func (i *Instance) Node() *graph.Node {
	return i.node
}

// ACLGroups returns the node's object-group table (spec section 1's
// auxiliary ACL infrastructure, isis/acl.go).
func (i *Instance) ACLGroups() *acl.Table {
	return i.aclGroups
}

func (i *Instance) runCP() {
	defer i.wg.Done()
	for {
		select {
		case <-i.stopCh:
			return
		case fn := <-i.cpCh:
			fn()
		}
	}
}

func (i *Instance) runDP() {
	defer i.wg.Done()
	for {
		select {
		case <-i.stopCh:
			return
		case fn := <-i.dpCh:
			fn()
		}
	}
}

// postCP enqueues fn to run on the control-plane dispatcher. It never
// blocks the caller on the closure's execution.
func (i *Instance) postCP(fn func()) {
	select {
	case i.cpCh <- fn:
	case <-i.stopCh:
	}
}

// postCPWait enqueues fn on the CP dispatcher and blocks until it has
// run, the way the teacher's cluster.sync helpers turn an async command
// into a synchronous call. Once final teardown has stopped the
// dispatchers, fn runs on the caller's goroutine instead, so accessors
// and Shutdown still see the final state.
func (i *Instance) postCPWait(fn func()) {
	done := make(chan struct{})
	i.postCP(func() {
		fn()
		close(done)
	})
	select {
	case <-done:
	case <-i.stopCh:
		// wait for the CP goroutine to exit, then run fn here unless it
		// already ran there
		i.wg.Wait()
		select {
		case <-done:
		default:
			fn()
		}
	}
}

// postDP enqueues fn to run on the data-plane dispatcher (ingress frame
// handling only, per spec section 5 — the DP never touches protocol
// state directly).
func (i *Instance) postDP(fn func()) {
	select {
	case i.dpCh <- fn:
	case <-i.stopCh:
	}
}

// closeDispatchers stops both dispatcher goroutines and the owned
// timer wheels / job scheduler. Called once, at the very end of final
// teardown (shutdown.go).
func (i *Instance) closeDispatchers() {
	close(i.stopCh)
	i.wg.Wait()
	i.cpWheel.Close()
	i.dpWheel.Close()
	i.jobs.Close()
}
