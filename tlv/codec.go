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

// Package tlv implements the generic type-length-value codec named in
// spec section 6: a stream of `{type:1, len:1, value:len}` records, each
// value at most 255 bytes.
package tlv

import (
	liberr "github.com/nabbar/isis-lab/errors"
)

// Type identifies a TLV's content.
type Type uint8

// TLV is one decoded record.
type TLV struct {
	Type  Type
	Value []byte
}

// InsertTLV appends one TLV record to buf and returns the extended
// slice. It fails if value is longer than 255 bytes (the one-byte
// length field cannot represent it).
func InsertTLV(buf []byte, t Type, value []byte) ([]byte, liberr.Error) {
	if len(value) > 0xff {
		return buf, ErrorValueTooLarge.Error(nil)
	}

	buf = append(buf, byte(t), byte(len(value)))
	buf = append(buf, value...)

	return buf, nil
}

// GetParticularTLV scans buf for the first TLV of type t and returns its
// value. ok is false if no such TLV is present or the stream is
// malformed.
func GetParticularTLV(buf []byte, t Type) (value []byte, ok bool) {
	found := false

	Iterate(buf, func(tlv TLV) bool {
		if tlv.Type == t {
			value = tlv.Value
			found = true
			return false
		}
		return true
	})

	return value, found
}

// Iterate walks every well-formed TLV record in buf in order, calling fn
// for each. It stops early if fn returns false, and silently stops at
// the first malformed record (short buffer, truncated value) rather
// than erroring — the caller controls how strict it wants to be by
// checking the count of TLVs it expected to see.
func Iterate(buf []byte, fn func(TLV) bool) {
	i := 0

	for i+2 <= len(buf) {
		t := Type(buf[i])
		l := int(buf[i+1])

		if i+2+l > len(buf) {
			return
		}

		v := buf[i+2 : i+2+l]

		if !fn(TLV{Type: t, Value: v}) {
			return
		}

		i += 2 + l
	}
}
