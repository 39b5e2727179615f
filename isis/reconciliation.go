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

// enterReconciliation implements spec section 4.6's reconciliation
// controller: a bounded window during which self-LSPs carry the
// on-demand marker TLV. The generator inspects reconciliationOn at
// build time rather than caching the TLV, so re-entering the window
// while already in it just reschedules the expiry.
func (i *Instance) enterReconciliation(reason EventKind) {
	i.reconciliationOn = true

	if i.reconciliationTimer != 0 {
		i.cpWheel.Reschedule(i.reconciliationTimer, uint64(i.cfg.ReconciliationWin.Milliseconds()))
	} else {
		i.reconciliationTimer = i.cpWheel.RegisterEvent(
			func(arg interface{}) { i.postCP(func() { i.reconciliationExpiredCP() }) },
			nil,
			uint64(i.cfg.ReconciliationWin.Milliseconds()),
			0,
		)
	}

	i.scheduleLSPGeneration(reason)
}

func (i *Instance) cancelReconciliation() {
	if i.reconciliationTimer == 0 {
		return
	}
	i.cpWheel.Deregister(i.reconciliationTimer)
	i.reconciliationTimer = 0
	i.reconciliationOn = false
}

// reconciliationExpiredCP leaves the reconciliation window and
// schedules one more LSP generation so the on-demand marker is dropped
// from the next self-LSP.
func (i *Instance) reconciliationExpiredCP() {
	i.reconciliationTimer = 0
	i.reconciliationOn = false

	i.eventCounters[EventReconciliationExpired]++
	i.metrics.observeEvent(EventReconciliationExpired)
	i.scheduleLSPGeneration(EventReconciliationExpired)
}

// ClearDatabase implements the admin db-clear action: evicts every LSP
// DB entry and enters reconciliation, per spec section 4.6's "entered
// on specific triggers (e.g. database clear)".
func (i *Instance) ClearDatabase() {
	i.postCPWait(func() {
		i.lspDB.Scan(func(_ uint32, pkt *LSP) bool {
			i.stopExpiry(pkt)
			pkt.installed = false
			pkt.Release()
			return true
		})
		i.lspDB.Clear()

		i.eventControlFlags.Set(uint(EventAdminActionDBClear))
		i.eventCounters[EventAdminActionDBClear]++
		i.metrics.observeEvent(EventAdminActionDBClear)

		i.enterReconciliation(EventReconciliationTriggered)
		i.scheduleSPF()
	})
}
