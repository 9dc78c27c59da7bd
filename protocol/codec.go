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
	"encoding/binary"

	liberr "github.com/nabbar/rfas/errors"
)

// MaxDatagramSize is the transport's single-datagram budget (spec §6: 1024
// byte buffer, one datagram per logical message).
const MaxDatagramSize = 1024

// MarshalRequest encodes r as: requestId(8) op(4) length(8) offset(8)
// monitorDurationMs(8) pathLen(4) path payloadLen(4) payload, all big-endian.
func MarshalRequest(r Request) []byte {
	path := []byte(r.Path)

	buf := make([]byte, 8+4+8+8+8+4+len(path)+4+len(r.Payload))
	i := 0

	binary.BigEndian.PutUint64(buf[i:], r.RequestId)
	i += 8
	binary.BigEndian.PutUint32(buf[i:], uint32(r.Op))
	i += 4
	binary.BigEndian.PutUint64(buf[i:], r.Length)
	i += 8
	binary.BigEndian.PutUint64(buf[i:], r.Offset)
	i += 8
	binary.BigEndian.PutUint64(buf[i:], r.MonitorDurationMs)
	i += 8
	binary.BigEndian.PutUint32(buf[i:], uint32(len(path)))
	i += 4
	i += copy(buf[i:], path)
	binary.BigEndian.PutUint32(buf[i:], uint32(len(r.Payload)))
	i += 4
	copy(buf[i:], r.Payload)

	return buf
}

// UnmarshalRequest decodes a datagram produced by MarshalRequest. It fails
// with ErrTruncated when a length prefix exceeds the remaining bytes, and
// with ErrUnknownOp when the op ordinal is unrecognized.
func UnmarshalRequest(b []byte) (Request, error) {
	var r Request

	v, rest, err := takeUint64(b)
	if err != nil {
		return r, err
	}
	r.RequestId = v

	o, rest, err := takeUint32(rest)
	if err != nil {
		return r, err
	}
	r.Op = Op(o)
	if !r.Op.Valid() {
		return r, ErrUnknownOp.Errorf(o)
	}

	r.Length, rest, err = takeUint64(rest)
	if err != nil {
		return r, err
	}

	r.Offset, rest, err = takeUint64(rest)
	if err != nil {
		return r, err
	}

	r.MonitorDurationMs, rest, err = takeUint64(rest)
	if err != nil {
		return r, err
	}

	var path, payload []byte
	path, rest, err = takeBytes(rest)
	if err != nil {
		return r, err
	}
	r.Path = string(path)

	payload, _, err = takeBytes(rest)
	if err != nil {
		return r, err
	}
	r.Payload = payload

	return r, nil
}

// MarshalResponse encodes s as: statusCode(4) payloadLen(4) payload
// messageLen(4) message serverLastModifiedMs(8), all big-endian.
func MarshalResponse(s Response) []byte {
	msg := []byte(s.Message)

	buf := make([]byte, 4+4+len(s.Payload)+4+len(msg)+8)
	i := 0

	binary.BigEndian.PutUint32(buf[i:], uint32(s.Status))
	i += 4
	binary.BigEndian.PutUint32(buf[i:], uint32(len(s.Payload)))
	i += 4
	i += copy(buf[i:], s.Payload)
	binary.BigEndian.PutUint32(buf[i:], uint32(len(msg)))
	i += 4
	i += copy(buf[i:], msg)
	binary.BigEndian.PutUint64(buf[i:], uint64(s.ServerLastModifiedMs))

	return buf
}

// UnmarshalResponse decodes a datagram produced by MarshalResponse.
func UnmarshalResponse(b []byte) (Response, error) {
	var s Response

	v, rest, err := takeUint32(b)
	if err != nil {
		return s, err
	}
	s.Status = Status(v)
	if !s.Status.Valid() {
		return s, ErrUnknownStatus.Errorf(v)
	}

	var payload, message []byte
	payload, rest, err = takeBytes(rest)
	if err != nil {
		return s, err
	}
	s.Payload = payload

	message, rest, err = takeBytes(rest)
	if err != nil {
		return s, err
	}
	s.Message = string(message)

	mtime, _, err := takeInt64(rest)
	if err != nil {
		return s, err
	}
	s.ServerLastModifiedMs = mtime

	return s, nil
}

func takeUint64(b []byte) (uint64, []byte, error) {
	if len(b) < 8 {
		return 0, nil, ErrTruncated.Error(nil)
	}
	return binary.BigEndian.Uint64(b), b[8:], nil
}

func takeInt64(b []byte) (int64, []byte, error) {
	v, rest, err := takeUint64(b)
	return int64(v), rest, err
}

func takeUint32(b []byte) (uint32, []byte, error) {
	if len(b) < 4 {
		return 0, nil, ErrTruncated.Error(nil)
	}
	return binary.BigEndian.Uint32(b), b[4:], nil
}

// takeBytes reads a uint32 length prefix followed by that many bytes.
func takeBytes(b []byte) ([]byte, []byte, error) {
	n, rest, err := takeUint32(b)
	if err != nil {
		return nil, nil, err
	}
	if uint64(len(rest)) < uint64(n) {
		return nil, nil, ErrTruncated.Error(nil)
	}

	out := make([]byte, n)
	copy(out, rest[:n])
	return out, rest[n:], nil
}
