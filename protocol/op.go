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

// Package protocol implements the wire codec and request/response vocabulary
// of the remote file access protocol: fixed-width, big-endian, length-prefixed
// datagram encoding for Request and Response values, the stable Op and Status
// ordinal tables, and request identifier generation.
package protocol

// Op identifies the operation carried by a Request. Ordinals are part of the
// wire format and must never be renumbered.
type Op uint32

const (
	OpShutdown     Op = 0
	OpRead         Op = 1
	OpWriteInsert  Op = 2
	OpMonitor      Op = 3
	OpWriteDelete  Op = 4
	OpFileInfo     Op = 5
)

// Valid reports whether o is one of the recognized operation ordinals.
func (o Op) Valid() bool {
	switch o {
	case OpShutdown, OpRead, OpWriteInsert, OpMonitor, OpWriteDelete, OpFileInfo:
		return true
	default:
		return false
	}
}

func (o Op) String() string {
	switch o {
	case OpShutdown:
		return "SHUTDOWN"
	case OpRead:
		return "READ"
	case OpWriteInsert:
		return "WRITE_INSERT"
	case OpMonitor:
		return "MONITOR"
	case OpWriteDelete:
		return "WRITE_DELETE"
	case OpFileInfo:
		return "FILE_INFO"
	default:
		return "UNKNOWN"
	}
}
