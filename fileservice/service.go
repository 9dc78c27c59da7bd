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

// Package fileservice implements the stateless file operation handlers
// (read, insert, delete, monitor, info) that sit behind the server's
// InvocationStrategy, operating against a filesystem rooted at a fixed
// absolute directory.
package fileservice

import (
	"io"
	"net"
	"os"
	"sync"

	libatm "github.com/nabbar/rfas/atomic"
	liblog "github.com/nabbar/rfas/logger"
	"github.com/nabbar/rfas/protocol"
)

// Notifier is the MonitorRegistry-facing side of a mutating operation: once a
// WRITE_INSERT or WRITE_DELETE succeeds, Service calls Notify so subscribers
// for that path receive a callback datagram.
type Notifier interface {
	Notify(path string, op protocol.Op, payload []byte, message string, mtimeMs int64)
}

// Registrar is the MONITOR-facing side: Service forwards subscription
// requests to it without itself tracking any subscription state.
type Registrar interface {
	Register(path string, addr net.Addr, durationMs uint64)
}

// Service implements the five file operations named in spec §4.6 against a
// directory tree rooted at root.
type Service struct {
	root string
	lock libatm.MapTyped[string, *sync.Mutex]
	note Notifier
	reg  Registrar
	log  liblog.Logger
}

// New returns a Service rooted at root. notifier and registrar may be nil in
// tests that only exercise READ/FILE_INFO.
func New(root string, notifier Notifier, registrar Registrar, log liblog.Logger) *Service {
	return &Service{
		root: root,
		lock: libatm.NewMapTyped[string, *sync.Mutex](),
		note: notifier,
		reg:  registrar,
		log:  log,
	}
}

// Dispatch routes req to the matching handler. addr is only consulted for
// MONITOR, where it identifies the subscribing client endpoint.
func (s *Service) Dispatch(req protocol.Request, addr net.Addr) protocol.Response {
	switch req.Op {
	case protocol.OpRead:
		return s.Read(req.Path, req.Offset, req.Length)
	case protocol.OpWriteInsert:
		return s.WriteInsert(req.Path, req.Offset, req.Payload)
	case protocol.OpWriteDelete:
		return s.WriteDelete(req.Path, req.Offset, req.Length)
	case protocol.OpMonitor:
		return s.Monitor(req.Path, addr, req.MonitorDurationMs)
	case protocol.OpFileInfo:
		return s.FileInfo(req.Path)
	default:
		return protocol.Response{
			Status:               protocol.StatusInvalidOperation,
			Message:              "unrecognized operation",
			ServerLastModifiedMs: protocol.NoMtime,
		}
	}
}

func (s *Service) pathLock(full string) *sync.Mutex {
	m, _ := s.lock.LoadOrStore(full, &sync.Mutex{})
	return m
}

func mtimeMs(full string) int64 {
	fi, err := os.Stat(full)
	if err != nil {
		return protocol.NoMtime
	}
	return fi.ModTime().UnixMilli()
}

// Read implements spec §4.6 READ.
func (s *Service) Read(path string, offset, length uint64) protocol.Response {
	full, err := resolve(s.root, path)
	if err != nil {
		return errResp(protocol.StatusReadError, err)
	}

	mu := s.pathLock(full)
	mu.Lock()
	defer mu.Unlock()

	f, err := os.Open(full)
	if err != nil {
		return errResp(protocol.StatusReadError, err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return errResp(protocol.StatusReadError, err)
	}

	if offset >= uint64(fi.Size()) {
		return protocol.Response{
			Status:               protocol.StatusReadError,
			Message:              "offset beyond end of file",
			ServerLastModifiedMs: protocol.NoMtime,
		}
	}

	if _, err = f.Seek(int64(offset), io.SeekStart); err != nil {
		return errResp(protocol.StatusReadError, err)
	}

	buf := make([]byte, length)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return errResp(protocol.StatusReadError, err)
	}

	status := protocol.StatusReadSuccess
	if uint64(n) < length {
		status = protocol.StatusReadIncomplete
	}

	return protocol.Response{
		Status:               status,
		Payload:              buf[:n],
		ServerLastModifiedMs: fi.ModTime().UnixMilli(),
	}
}

// WriteInsert implements spec §4.6 WRITE_INSERT: read the suffix at offset
// into memory, seek to offset, write payload, then write the preserved
// suffix back. As spec §9 documents, this is not staged through a temporary
// file — a crash mid-write leaves file state undefined, retained as-is.
func (s *Service) WriteInsert(path string, offset uint64, payload []byte) protocol.Response {
	full, err := resolve(s.root, path)
	if err != nil {
		return errResp(protocol.StatusWriteInsertError, err)
	}

	mu := s.pathLock(full)
	mu.Lock()
	defer mu.Unlock()

	f, err := os.OpenFile(full, os.O_RDWR, 0o644)
	if err != nil {
		return errResp(protocol.StatusWriteInsertError, err)
	}
	defer f.Close()

	if _, err = f.Seek(int64(offset), io.SeekStart); err != nil {
		return errResp(protocol.StatusWriteInsertError, err)
	}

	suffix, err := io.ReadAll(f)
	if err != nil {
		return errResp(protocol.StatusWriteInsertError, err)
	}

	if _, err = f.Seek(int64(offset), io.SeekStart); err != nil {
		return errResp(protocol.StatusWriteInsertError, err)
	}
	if _, err = f.Write(payload); err != nil {
		return errResp(protocol.StatusWriteInsertError, err)
	}
	if _, err = f.Write(suffix); err != nil {
		return errResp(protocol.StatusWriteInsertError, err)
	}

	mt := mtimeMs(full)

	if s.note != nil {
		s.note.Notify(path, protocol.OpWriteInsert, payload, "file update: bytes inserted", mt)
	}

	return protocol.Response{
		Status:               protocol.StatusWriteInsertSuccess,
		ServerLastModifiedMs: mt,
	}
}

// WriteDelete implements spec §4.6 WRITE_DELETE: read the suffix beyond the
// deleted range into memory, truncate to offset, then write the suffix back.
// Non-idempotent; correctness under client retries depends on the server's
// at-most-once InvocationStrategy, not on this handler.
func (s *Service) WriteDelete(path string, offset, length uint64) protocol.Response {
	full, err := resolve(s.root, path)
	if err != nil {
		return errResp(protocol.StatusWriteDeleteError, err)
	}

	mu := s.pathLock(full)
	mu.Lock()
	defer mu.Unlock()

	f, err := os.OpenFile(full, os.O_RDWR, 0o644)
	if err != nil {
		return errResp(protocol.StatusWriteDeleteError, err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return errResp(protocol.StatusWriteDeleteError, err)
	}

	if offset+length > uint64(fi.Size()) {
		return protocol.Response{
			Status:               protocol.StatusWriteDeleteError,
			Message:              "delete range exceeds end of file",
			ServerLastModifiedMs: protocol.NoMtime,
		}
	}

	if _, err = f.Seek(int64(offset+length), io.SeekStart); err != nil {
		return errResp(protocol.StatusWriteDeleteError, err)
	}

	suffix, err := io.ReadAll(f)
	if err != nil {
		return errResp(protocol.StatusWriteDeleteError, err)
	}

	if err = f.Truncate(int64(offset)); err != nil {
		return errResp(protocol.StatusWriteDeleteError, err)
	}
	if _, err = f.Seek(int64(offset), io.SeekStart); err != nil {
		return errResp(protocol.StatusWriteDeleteError, err)
	}
	if _, err = f.Write(suffix); err != nil {
		return errResp(protocol.StatusWriteDeleteError, err)
	}

	mt := mtimeMs(full)

	if s.note != nil {
		// The resolved Open Question (DESIGN.md): WRITE_DELETE callbacks carry
		// a zero-length payload plus a descriptive message, not the shifted
		// suffix, since the suffix was already the pre-delete content.
		s.note.Notify(path, protocol.OpWriteDelete, nil, "file update: bytes deleted", mt)
	}

	return protocol.Response{
		Status:               protocol.StatusWriteDeleteSuccess,
		ServerLastModifiedMs: mt,
	}
}

// Monitor implements spec §4.6 MONITOR: register the subscription and return
// immediately. No acknowledgment of delivered callbacks is required.
func (s *Service) Monitor(path string, addr net.Addr, durationMs uint64) protocol.Response {
	if _, err := resolve(s.root, path); err != nil {
		return errResp(protocol.StatusMonitorError, err)
	}

	if s.reg != nil {
		s.reg.Register(path, addr, durationMs)
	}

	return protocol.Response{
		Status:               protocol.StatusMonitorSuccess,
		ServerLastModifiedMs: protocol.NoMtime,
	}
}

// FileInfo implements spec §4.6 FILE_INFO.
func (s *Service) FileInfo(path string) protocol.Response {
	full, err := resolve(s.root, path)
	if err != nil {
		return errResp(protocol.StatusFileInfoError, err)
	}

	fi, err := os.Stat(full)
	if err != nil {
		return protocol.Response{
			Status:               protocol.StatusFileInfoError,
			Message:              "file does not exist",
			ServerLastModifiedMs: protocol.NoMtime,
		}
	}

	info := newInfo(full, fi)

	return protocol.Response{
		Status:               protocol.StatusFileInfoSuccess,
		Payload:              info.Encode(),
		ServerLastModifiedMs: fi.ModTime().UnixMilli(),
	}
}

func errResp(status protocol.Status, err error) protocol.Response {
	return protocol.Response{
		Status:               status,
		Message:              err.Error(),
		ServerLastModifiedMs: protocol.NoMtime,
	}
}
