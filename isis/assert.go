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

import "fmt"

// assertEnabled toggles the "assertions-as-invariants" checks named in
// spec section 9. Every assertion in the original C denotes a testable
// invariant; we keep them live rather than compiling them out, since
// this is a simulator, not a production data-plane.
const assertEnabled = true

// assertf panics with a formatted message if cond is false. Used
// exclusively for invariants spec section 8 calls out as properties
// that must hold for every run, never for ordinary error handling —
// ordinary failures return a liberr.Error instead.
func assertf(cond bool, format string, args ...interface{}) {
	if !assertEnabled || cond {
		return
	}
	panic(fmt.Sprintf(format, args...))
}
