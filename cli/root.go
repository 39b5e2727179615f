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

// Package cli binds the isis package's upward interface (spec section
// 6) to a cobra command tree; the target node is chosen with the
// persistent --node flag. Flags are also viper-bound so the same values can come from a config file
// or the environment, the way the teacher's cobra/configure.go wires
// its own flag sets.
package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nabbar/isis-lab/isis"
)

// Registry resolves a node name to its running protocol instance, the
// way a real daemon would keep one isis.Instance per graph.Node.
type Registry interface {
	Instance(name string) (*isis.Instance, bool)
	NodeNames() []string
}

// NewRootCommand builds the `isisd` command tree bound to reg.
func NewRootCommand(reg Registry) *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:   "isisd",
		Short: "Inspect and control simulated IS-IS protocol instances",
	}

	root.PersistentFlags().String("node", "", "target node name")
	_ = v.BindPFlag("node", root.PersistentFlags().Lookup("node"))

	root.AddCommand(
		newShowCmd(reg, v),
		newSetCmd(reg, v),
		newUnsetCmd(reg, v),
	)

	return root
}

func resolveNode(reg Registry, v *viper.Viper) (*isis.Instance, error) {
	name := v.GetString("node")
	if name == "" {
		return nil, fmt.Errorf("missing --node")
	}
	inst, ok := reg.Instance(name)
	if !ok {
		return nil, fmt.Errorf("no such node: %s", name)
	}
	return inst, nil
}

func printErr(err error) {
	fmt.Println(color.RedString("error: %s", err.Error()))
}
