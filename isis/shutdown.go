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
	liberr "github.com/nabbar/isis-lab/errors"
)

// Shutdown implements the coordinator of spec section 4.7: cancel all
// queued tasks and stop all periodic timers, mark shutdown pending,
// initialize the pending-work bitset to ALL_PENDING, and schedule the
// final purge LSP generation. It returns ErrorShuttingDown or
// ErrorAlreadyShut rather than silently no-opping, so callers can
// surface the diagnostic S5 expects.
func (i *Instance) Shutdown() liberr.Error {
	var errOut liberr.Error

	i.postCPWait(func() {
		if i.shutDown {
			errOut = ErrorAlreadyShut.Error()
			return
		}
		if i.shuttingDown {
			errOut = ErrorShuttingDown.Error()
			return
		}

		i.shuttingDown = true
		i.eventControlFlags.Set(flagShutdownPending)
		i.shutdownWork = allPendingWork()

		i.stopFloodTimer()
		i.cancelReconciliation()
		i.cancelOverloadTimer()
		i.jobs.CancelJob(i.lspGenTask)
		i.lspGenPending = false

		for _, st := range i.ifaces {
			i.cpWheel.Deregister(st.helloTimer)
			if st.adjacency != nil {
				i.transitionDown(st.adjacency, "shutdown")
			}
		}

		i.cancelSPF()

		i.scheduleLSPGeneration(EventAdminActionShutdownPending)
	})

	return errOut
}

// onPendingWorkDone clears one shutdown pending-work bit and, if that
// empties the bitset, performs final teardown. Must run on the CP
// dispatcher.
func (i *Instance) onPendingWorkDone(bit pendingWork) {
	if !i.shuttingDown {
		return
	}

	i.shutdownWork.Clear(uint(bit))

	if i.shutdownWork.None() {
		i.finalizeShutdown()
	}
}

// finalizeShutdown releases the self-LSP, clears the LSP database,
// disables every interface's protocol state and stops the CP/DP
// dispatchers. Called exactly once, when the last pending-work bit
// clears.
func (i *Instance) finalizeShutdown() {
	if i.selfLSP != nil {
		i.selfLSP.installed = false
		i.selfLSP.floodEligible = false
		i.selfLSP.Release()
		i.selfLSP = nil
	}

	i.lspDB.Scan(func(_ uint32, pkt *LSP) bool {
		i.stopExpiry(pkt)
		pkt.installed = false
		pkt.Release()
		return true
	})
	i.lspDB.Clear()

	for iface, st := range i.ifaces {
		i.cpWheel.Deregister(st.helloTimer)
		delete(i.ifaces, iface)
	}

	i.eventControlFlags.ClearAll()
	i.shuttingDown = false
	i.shutDown = true
	i.enabled = false
	i.node.Slot = nil

	// finalizeShutdown runs as a closure executing on the CP dispatcher
	// itself; closeDispatchers waits for that goroutine to return, so it
	// must run from outside it.
	go i.closeDispatchers()
}
