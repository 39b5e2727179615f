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

// startFloodTimer arms the periodic self-LSP re-flood timer, per spec
// section 4.5. A no-op when on-demand flooding is configured: in that
// mode neither the periodic sweep nor the per-entry expiry timers run.
func (i *Instance) startFloodTimer() {
	if i.cfg.OnDemandFlooding || i.floodTimerArmed {
		return
	}

	ms := uint64(i.cfg.FloodInterval.Milliseconds())

	i.floodTimer = i.cpWheel.RegisterEvent(
		func(arg interface{}) {
			i.postCP(func() { i.floodTimerFiredCP(arg) })
		},
		i.selfLSP,
		ms,
		ms,
	)
	i.floodTimerArmed = true
}

func (i *Instance) stopFloodTimer() {
	if !i.floodTimerArmed {
		return
	}
	i.cpWheel.Deregister(i.floodTimer)
	i.floodTimerArmed = false
}

// floodTimerFiredCP re-sends the current self-LSP out of every Up
// interface, carried as the timer's app-data so it always reflects the
// latest generation (see generateLSP's GetAndSetAppData call).
func (i *Instance) floodTimerFiredCP(arg interface{}) {
	pkt, _ := arg.(*LSP)
	if pkt == nil {
		pkt = i.selfLSP
	}
	if pkt == nil {
		return
	}

	i.floodOutOfIIF(nil, pkt)
	i.lspFloodCount++
	i.metrics.incLSPFlood()
}

// SetOnDemandFlooding implements spec section 4.5's periodic/on-demand
// mode switch: turning it on stops the periodic timer and every DB
// entry's expiry timer; turning it off restarts the periodic timer and
// arms an expiry timer on every entry that lacks one.
func (i *Instance) SetOnDemandFlooding(on bool) {
	i.postCPWait(func() {
		if i.cfg.OnDemandFlooding == on {
			return
		}

		i.cfg.OnDemandFlooding = on

		if on {
			i.stopFloodTimer()
			i.lspDB.Scan(func(_ uint32, pkt *LSP) bool {
				i.stopExpiry(pkt)
				return true
			})
		} else {
			i.startFloodTimer()
			i.lspDB.Scan(func(_ uint32, pkt *LSP) bool {
				if !pkt.hasExpiry {
					i.armExpiry(pkt)
				}
				return true
			})
		}

		i.eventCounters[EventAdminConfigChanged]++
		i.metrics.observeEvent(EventAdminConfigChanged)
		i.scheduleLSPGeneration(EventAdminConfigChanged)
	})
}
