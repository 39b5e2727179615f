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

// OverloadMode selects which of the two set_overload/unset_overload
// command modes of spec section 4.6 is being invoked.
type OverloadMode uint8

const (
	// OverloadSticky toggles the overload flag only, never touching the
	// overload timer.
	OverloadSticky OverloadMode = iota
	// OverloadTimeout starts, reschedules or stops the overload timer
	// depending on its current state and the value passed.
	OverloadTimeout
)

// SetOverload implements set_overload. timeoutSec is only consulted in
// OverloadTimeout mode.
func (i *Instance) SetOverload(mode OverloadMode, timeoutSec uint32) {
	i.postCPWait(func() {
		switch mode {
		case OverloadSticky:
			i.toggleOverloadFlag(true)
		case OverloadTimeout:
			i.applyOverloadTimeout(timeoutSec)
		}
	})
}

// UnsetOverload implements unset_overload, the mirror command.
func (i *Instance) UnsetOverload(mode OverloadMode, timeoutSec uint32) {
	i.postCPWait(func() {
		switch mode {
		case OverloadSticky:
			i.toggleOverloadFlag(false)
		case OverloadTimeout:
			i.applyOverloadTimeout(timeoutSec)
		}
	})
}

func (i *Instance) toggleOverloadFlag(on bool) {
	if i.overload.on == on {
		return
	}
	i.overload.on = on
	i.eventCounters[EventDeviceOverloadConfigChanged]++
	i.metrics.observeEvent(EventDeviceOverloadConfigChanged)
	i.scheduleLSPGeneration(EventDeviceOverloadConfigChanged)
}

// applyOverloadTimeout implements the full case table of spec section
// 4.6's OVERLOAD_TIMEOUT mode.
func (i *Instance) applyOverloadTimeout(value uint32) {
	switch {
	case !i.overload.armed && value == 0:
		// no-op

	case !i.overload.armed && value > 0:
		i.armOverloadTimer(value)
		i.toggleOverloadFlag(true)

	case i.overload.armed && value == 0:
		i.cancelOverloadTimer()

	case i.overload.armed && value == i.overload.timeout:
		// no-op

	case i.overload.armed && value != i.overload.timeout:
		i.overload.timeout = value
		i.cpWheel.Reschedule(i.overload.handle, uint64(value)*1000)
	}
}

func (i *Instance) armOverloadTimer(seconds uint32) {
	i.overload.timeout = seconds
	i.overload.handle = i.cpWheel.RegisterEvent(
		func(arg interface{}) { i.postCP(func() { i.overloadTimerExpiredCP() }) },
		nil,
		uint64(seconds)*1000,
		0,
	)
	i.overload.armed = true
}

func (i *Instance) cancelOverloadTimer() {
	if !i.overload.armed {
		return
	}
	i.cpWheel.Deregister(i.overload.handle)
	i.overload.armed = false
	i.overload.handle = 0
	i.overload.timeout = 0
}

// overloadTimerExpiredCP runs on expiry: clears the flag, nulls the
// timer reference, schedules LSP generation and bumps the counter.
func (i *Instance) overloadTimerExpiredCP() {
	i.overload.armed = false
	i.overload.handle = 0
	i.overload.timeout = 0
	i.overload.on = false

	i.eventCounters[EventOverloadTimeout]++
	i.metrics.observeEvent(EventOverloadTimeout)
	i.scheduleLSPGeneration(EventOverloadTimeout)
}
