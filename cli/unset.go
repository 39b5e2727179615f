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
	"errors"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// errMissingTimeoutValue is printed when `... overload timeout` is given
// without the required seconds argument.
var errMissingTimeoutValue = errors.New("missing timeout value in seconds")

// newUnsetCmd implements the `unset` side of spec section 6: the mirror
// of set_overload, per spec section 4.6.
func newUnsetCmd(reg Registry, v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unset",
		Short: "Clear overload on a node",
	}

	cmd.AddCommand(newOverloadCmd(reg, v, false))

	return cmd
}
