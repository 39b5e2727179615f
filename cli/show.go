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

package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// newShowCmd implements spec section 6's "Upward" show_protocol_state
// and show_event_counters commands.
func newShowCmd(reg Registry, v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show protocol state or event counters for a node",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "protocol-state",
			Short: "Print enabled flag, counters, overload status and per-interface state",
			RunE: func(cc *cobra.Command, args []string) error {
				inst, err := resolveNode(reg, v)
				if err != nil {
					printErr(err)
					return nil
				}
				fmt.Print(inst.ShowProtocolState())
				return nil
			},
		},
		&cobra.Command{
			Use:   "event-counters",
			Short: "Print every event counter indexed by event name",
			RunE: func(cc *cobra.Command, args []string) error {
				inst, err := resolveNode(reg, v)
				if err != nil {
					printErr(err)
					return nil
				}
				fmt.Print(inst.ShowEventCounters())
				return nil
			},
		},
	)

	return cmd
}

func printOK(msg string) {
	fmt.Println(color.GreenString(msg))
}
