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
	"fmt"
	"sort"
	"strings"

	"github.com/nabbar/isis-lab/graph"
)

// ShowProtocolState implements show_protocol_state: enabled flag,
// counters, overload status with remaining timer if any, and
// per-interface state.
func (i *Instance) ShowProtocolState() string {
	var sb strings.Builder

	i.postCPWait(func() {
		fmt.Fprintf(&sb, "node: %s\n", graph.NodeName(i.node))
		fmt.Fprintf(&sb, "enabled: %v  shutting_down: %v  shut_down: %v\n", i.enabled, i.shuttingDown, i.shutDown)
		fmt.Fprintf(&sb, "adjacencies_up: %d  lsp_flood_count: %d  spf_run_count: %d\n", i.adjacencyUpCount, i.lspFloodCount, i.spfRunCount)
		fmt.Fprintf(&sb, "lsp_db_entries: %d  on_demand_flooding: %v  reconciliation_active: %v\n", i.lspDB.Len(), i.cfg.OnDemandFlooding, i.reconciliationOn)

		if i.overload.on {
			if i.overload.armed {
				fmt.Fprintf(&sb, "overload: on  remaining: %s\n", i.cpWheel.GetRemaining(i.overload.handle))
			} else {
				fmt.Fprintf(&sb, "overload: on (sticky)\n")
			}
		} else {
			fmt.Fprintf(&sb, "overload: off\n")
		}

		names := make([]string, 0, len(i.ifaces))
		byName := make(map[string]*ifaceState, len(i.ifaces))
		for iface, st := range i.ifaces {
			n := graph.InterfaceName(iface)
			names = append(names, n)
			byName[n] = st
		}
		sort.Strings(names)

		for _, n := range names {
			st := byName[n]
			state := "Down"
			if st.adjacency != nil {
				state = st.adjacency.State.String()
			}
			fmt.Fprintf(&sb, "  if %s: adj=%s good_hello=%d bad_hello=%d good_lsp=%d\n",
				n, state, st.goodHello, st.badHello, st.goodLSP)
		}
	})

	return sb.String()
}

// ShowEventCounters implements show_event_counters: all event counters
// indexed by event name.
func (i *Instance) ShowEventCounters() string {
	var sb strings.Builder

	i.postCPWait(func() {
		for _, k := range allEventKinds() {
			fmt.Fprintf(&sb, "%-32s %d\n", k.String(), i.eventCounters[k])
		}
	})

	return sb.String()
}
