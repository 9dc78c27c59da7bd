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

// Request is one logical client invocation. RequestId is stable across every
// retry of the same invocation; it is the key the server's at-most-once
// strategy uses to filter duplicates.
type Request struct {
	RequestId         uint64
	Op                Op
	Path              string
	Length            uint64
	Offset            uint64
	Payload           []byte
	MonitorDurationMs uint64
}

// Response is the result of one Request, or a server-initiated callback when
// Status is StatusCallback.
type Response struct {
	Status               Status
	Payload              []byte
	Message              string
	ServerLastModifiedMs int64
}

// NoMtime is used in place of a server mtime when none applies.
const NoMtime int64 = -1

// NetworkErrorResponse is synthesized by the client InvocationStrategy once
// all retries of an invocation are exhausted without a usable reply.
func NetworkErrorResponse(message string) Response {
	return Response{
		Status:               StatusNetworkError,
		Message:              message,
		ServerLastModifiedMs: NoMtime,
	}
}

// GeneralErrorResponse marks a reply that failed to decode or otherwise
// violates the wire contract.
func GeneralErrorResponse(message string) Response {
	return Response{
		Status:               StatusGeneralError,
		Message:              message,
		ServerLastModifiedMs: NoMtime,
	}
}

// ShutdownResponse is the distinguished reply that terminates a server
// transport's receive loop.
func ShutdownResponse() Response {
	return Response{
		Status:               StatusShutdown,
		Message:              "server shutting down",
		ServerLastModifiedMs: NoMtime,
	}
}
