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
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nabbar/isis-lab/isis"
)

// newSetCmd implements the `set` side of spec section 6's upward
// interface: on-demand-flooding's mode switch and set_overload's two
// command modes.
func newSetCmd(reg Registry, v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Enable on-demand flooding or set overload on a node",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "on-demand-flooding [on|off]",
			Short: "Switch between periodic and on-demand flooding, per spec section 4.5",
			Args:  cobra.ExactArgs(1),
			RunE: func(cc *cobra.Command, args []string) error {
				inst, err := resolveNode(reg, v)
				if err != nil {
					printErr(err)
					return nil
				}
				inst.SetOnDemandFlooding(args[0] == "on")
				printOK("ok")
				return nil
			},
		},
		newOverloadCmd(reg, v, true),
	)

	return cmd
}

// newOverloadCmd is shared between `set overload` and `unset overload`;
// set=true selects SetOverload, set=false selects UnsetOverload, per
// spec section 4.6.
func newOverloadCmd(reg Registry, v *viper.Viper, set bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "overload [timeout <seconds>]",
		Short: "Toggle the sticky overload flag, or arm/disarm its timeout",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cc *cobra.Command, args []string) error {
			inst, err := resolveNode(reg, v)
			if err != nil {
				printErr(err)
				return nil
			}

			mode := isis.OverloadSticky
			var timeout uint32

			if len(args) > 0 && args[0] == "timeout" {
				mode = isis.OverloadTimeout
				if len(args) < 2 {
					printErr(errMissingTimeoutValue)
					return nil
				}
				n, perr := strconv.ParseUint(args[1], 10, 32)
				if perr != nil {
					printErr(perr)
					return nil
				}
				timeout = uint32(n)
			}

			if set {
				inst.SetOverload(mode, timeout)
			} else {
				inst.UnsetOverload(mode, timeout)
			}

			printOK("ok")
			return nil
		},
	}

	return cmd
}
