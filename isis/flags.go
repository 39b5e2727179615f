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

import "github.com/bits-and-blooms/bitset"

// Event-control flags: one bit per EventKind, OR'd in by
// schedule_lsp_generation and consumed (partially cleared) when
// generate_lsp runs. Bit position equals the EventKind's numeric value,
// so setting a reason is a single Set(uint(reason)) call.
//
// One extra bit, not an EventKind, records that shutdown was requested.
const flagShutdownPending uint = uint(eventMax)

// miscFlag indexes the small "misc flags" bitset from spec section 3.
type miscFlag uint

const (
	// miscLSPGenDisabled is set once the final purge LSP has been
	// dispatched during shutdown, so no further generation is
	// scheduled.
	miscLSPGenDisabled miscFlag = iota
)

// pendingWork indexes the shutdown-pending-work bitset.
type pendingWork uint

const (
	pendingLSPPurge pendingWork = iota
	pendingDelRoutes
)

// allPendingWork returns a bitset with every pending-work bit set, i.e.
// ALL_PENDING from spec section 3.
func allPendingWork() *bitset.BitSet {
	b := bitset.New(2)
	b.Set(uint(pendingLSPPurge))
	b.Set(uint(pendingDelRoutes))
	return b
}
