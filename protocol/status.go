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

// Status identifies the outcome of a Response. Numeric values are part of the
// wire format and must never be renumbered.
type Status uint32

const (
	StatusSuccess          Status = 0
	StatusGeneralError     Status = 1
	StatusInvalidOperation Status = 2
	StatusShutdown         Status = 3

	StatusReadSuccess    Status = 100
	StatusReadError      Status = 101
	StatusReadIncomplete Status = 102

	StatusWriteInsertSuccess Status = 200
	StatusWriteInsertError   Status = 201

	StatusMonitorSuccess Status = 300
	StatusMonitorError   Status = 301

	StatusWriteDeleteSuccess Status = 400
	StatusWriteDeleteError   Status = 401

	StatusFileInfoSuccess Status = 500
	StatusFileInfoError   Status = 501

	// StatusCallback marks a server-initiated monitor callback datagram.
	StatusCallback Status = 600

	// StatusNetworkError is synthesized by the client InvocationStrategy on
	// retry exhaustion; it never appears on the wire from the server.
	StatusNetworkError Status = 700
)

// Valid reports whether s is one of the recognized status values.
func (s Status) Valid() bool {
	switch s {
	case StatusSuccess, StatusGeneralError, StatusInvalidOperation, StatusShutdown,
		StatusReadSuccess, StatusReadError, StatusReadIncomplete,
		StatusWriteInsertSuccess, StatusWriteInsertError,
		StatusMonitorSuccess, StatusMonitorError,
		StatusWriteDeleteSuccess, StatusWriteDeleteError,
		StatusFileInfoSuccess, StatusFileInfoError,
		StatusCallback, StatusNetworkError:
		return true
	default:
		return false
	}
}

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "SUCCESS"
	case StatusGeneralError:
		return "GENERAL_ERROR"
	case StatusInvalidOperation:
		return "INVALID_OPERATION"
	case StatusShutdown:
		return "SHUTDOWN"
	case StatusReadSuccess:
		return "READ_SUCCESS"
	case StatusReadError:
		return "READ_ERROR"
	case StatusReadIncomplete:
		return "READ_INCOMPLETE"
	case StatusWriteInsertSuccess:
		return "WRITE_INSERT_SUCCESS"
	case StatusWriteInsertError:
		return "WRITE_INSERT_ERROR"
	case StatusMonitorSuccess:
		return "MONITOR_SUCCESS"
	case StatusMonitorError:
		return "MONITOR_ERROR"
	case StatusWriteDeleteSuccess:
		return "WRITE_DELETE_SUCCESS"
	case StatusWriteDeleteError:
		return "WRITE_DELETE_ERROR"
	case StatusFileInfoSuccess:
		return "FILE_INFO_SUCCESS"
	case StatusFileInfoError:
		return "FILE_INFO_ERROR"
	case StatusCallback:
		return "CALLBACK"
	case StatusNetworkError:
		return "NETWORK_ERROR"
	default:
		return "UNKNOWN"
	}
}
