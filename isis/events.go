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

// EventKind is the closed enumeration of spec section 3: used both as a
// scheduling reason (the bit OR'd into event-control-flags) and as a
// statistics index.
type EventKind uint8

const (
	EventNone EventKind = iota
	EventAdjStateChanged
	EventNbrMetricChanged
	EventAdminConfigChanged
	EventAdminActionDBClear
	EventAdminActionShutdownPending
	EventDeviceOverloadConfigChanged
	EventOverloadTimeout
	EventReconciliationTriggered
	EventReconciliationExpired
	EventPeriodicFlood
	eventMax
)

// String names an event kind the way show_event_counters needs to print
// it.
func (e EventKind) String() string {
	switch e {
	case EventNone:
		return "none"
	case EventAdjStateChanged:
		return "adj_state_changed"
	case EventNbrMetricChanged:
		return "nbr_metric_changed"
	case EventAdminConfigChanged:
		return "admin_config_changed"
	case EventAdminActionDBClear:
		return "admin_action_db_clear"
	case EventAdminActionShutdownPending:
		return "admin_action_shutdown_pending"
	case EventDeviceOverloadConfigChanged:
		return "device_overload_config_changed"
	case EventOverloadTimeout:
		return "overload_timeout"
	case EventReconciliationTriggered:
		return "reconciliation_triggered"
	case EventReconciliationExpired:
		return "reconciliation_expired"
	case EventPeriodicFlood:
		return "periodic_flood"
	default:
		return "max"
	}
}

// allEventKinds lists every countable kind, in declaration order, for
// show_event_counters and metrics registration.
func allEventKinds() []EventKind {
	kinds := make([]EventKind, 0, int(eventMax)-1)
	for k := EventAdjStateChanged; k < eventMax; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}
