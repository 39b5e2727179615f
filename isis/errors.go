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
	liberr "github.com/nabbar/isis-lab/errors"
)

const (
	// ErrorAlreadyEnabled: init on a node that already has protocol state.
	ErrorAlreadyEnabled liberr.CodeError = iota + liberr.MinPkgISIS
	// ErrorNotEnabled: an operation that requires an enabled protocol
	// instance was called on a disabled node (spec section 7,
	// protocol_not_enabled).
	ErrorNotEnabled
	// ErrorBufferTooLarge: generate_lsp's upper-bound size computation
	// exceeded the maximum buffer size (spec section 4.3).
	ErrorBufferTooLarge
	// ErrorShuttingDown: an admin command was rejected because shutdown
	// is already in progress (spec section 4.7, S5's busy diagnostic).
	ErrorShuttingDown
	// ErrorAlreadyShut: shutdown was called on a node that is already
	// fully shut down.
	ErrorAlreadyShut
)

const (
	// ErrorBadHello: a hello frame was dropped (spec section 7,
	// bad_hello); carries a stats increment, never state change.
	ErrorBadHello liberr.CodeError = iota + liberr.MinPkgISISAdjacency
)

func init() {
	if liberr.ExistInMapMessage(ErrorAlreadyEnabled) {
		panic("code error collision with package isis")
	}

	liberr.RegisterIdFctMessage(ErrorAlreadyEnabled, getMessage)
	liberr.RegisterIdFctMessage(ErrorBadHello, getMessage)
}

func getMessage(code liberr.CodeError) string {
	switch code {
	case ErrorAlreadyEnabled:
		return "protocol already enabled on this node"
	case ErrorNotEnabled:
		return "protocol is not enabled on this node"
	case ErrorBufferTooLarge:
		return "lsp generation aborted: buffer exceeds maximum size"
	case ErrorShuttingDown:
		return "protocol shutdown already in progress"
	case ErrorAlreadyShut:
		return "protocol is already shut down"
	case ErrorBadHello:
		return "hello frame dropped"
	}

	return liberr.NullMessage
}
