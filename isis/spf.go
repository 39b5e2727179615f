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

import "github.com/nabbar/isis-lab/graph"

// SPFTrigger is the out-of-scope SPF algorithm's contract, per spec
// section 1 ("only its trigger and its dependency on the LSP DB are in
// scope") and section 6's `schedule_spf`/`cancel_spf_job`. A caller
// embedding this package supplies a real implementation via
// SetSPFTrigger; by default a no-op stub is installed so the protocol
// runs standalone.
type SPFTrigger interface {
	// Schedule is invoked whenever the LSP DB changes in a way that
	// would affect the shortest-path tree: a fresh install, a purge,
	// or an overload-bit flip.
	Schedule(node string)
	// Cancel is invoked during shutdown, mirroring cancel_spf_job.
	Cancel(node string)
}

type noopSPF struct{}

func (noopSPF) Schedule(string) {}
func (noopSPF) Cancel(string)   {}

// scheduleSPF runs on the CP dispatcher: it bumps spf_run_count and
// hands off to the installed trigger. The LSP DB mutation that
// triggers this call has already happened by the time it runs.
func (i *Instance) scheduleSPF() {
	i.spfRunCount++
	i.metrics.incSPFRun()
	i.spfTrigger.Schedule(graph.NodeName(i.node))
}

// cancelSPF mirrors cancel_spf_job, invoked from the shutdown
// coordinator.
func (i *Instance) cancelSPF() {
	i.spfTrigger.Cancel(graph.NodeName(i.node))
}
