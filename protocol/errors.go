/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
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

package protocol

import (
	liberr "github.com/nabbar/rfas/errors"
)

const (
	// ErrTruncated means a length prefix announced more bytes than remained
	// in the datagram.
	ErrTruncated liberr.CodeError = liberr.MinPkgProtocol + iota
	// ErrUnknownOp means the op ordinal did not match any known Op.
	ErrUnknownOp
	// ErrUnknownStatus means the status ordinal did not match any known Status.
	ErrUnknownStatus
)

func init() {
	liberr.RegisterIdFctMessage(ErrTruncated, messages)
}

func messages(code liberr.CodeError) string {
	switch code {
	case ErrTruncated:
		return "malformed datagram: length prefix exceeds remaining bytes"
	case ErrUnknownOp:
		return "malformed datagram: unrecognized operation ordinal"
	case ErrUnknownStatus:
		return "malformed datagram: unrecognized status ordinal"
	default:
		return ""
	}
}
