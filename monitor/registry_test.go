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

package monitor_test

import (
	"net"
	"sync"
	"time"

	. "github.com/nabbar/rfas/monitor"
	"github.com/nabbar/rfas/protocol"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type sentDatagram struct {
	addr net.Addr
	b    []byte
}

type fakeSender struct {
	mu   sync.Mutex
	sent []sentDatagram
}

func (f *fakeSender) SendTo(addr net.Addr, b []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentDatagram{addr: addr, b: append([]byte(nil), b...)})
	return nil
}

func (f *fakeSender) len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

var addrA = &net.UDPAddr{IP: net.ParseIP("127.0.0.1"), Port: 9001}

var _ = Describe("Registry", func() {
	It("delivers a CALLBACK datagram to a live subscriber", func() {
		send := &fakeSender{}
		r := New(send, nil)

		r.Register("/x", addrA, 10_000)
		r.Notify("/x", protocol.OpWriteInsert, []byte("ab"), "file update: bytes inserted", 123)

		Expect(send.len()).To(Equal(1))

		resp, err := protocol.UnmarshalResponse(send.sent[0].b)
		Expect(err).ToNot(HaveOccurred())
		Expect(resp.Status).To(Equal(protocol.StatusCallback))
		Expect(resp.Payload).To(Equal([]byte("ab")))
	})

	It("does not deliver to a subscription past its expiry", func() {
		send := &fakeSender{}
		r := New(send, nil)

		r.Register("/x", addrA, 1) // 1ms duration
		time.Sleep(5 * time.Millisecond)

		r.Notify("/x", protocol.OpWriteInsert, []byte("ab"), "msg", 1)
		Expect(send.len()).To(Equal(0))
	})

	It("prunes expired subscriptions from Count", func() {
		send := &fakeSender{}
		r := New(send, nil)

		r.Register("/y", addrA, 1)
		time.Sleep(5 * time.Millisecond)

		Expect(r.Count("/y")).To(Equal(0))
	})

	It("tracks multiple live subscribers for the same path", func() {
		send := &fakeSender{}
		r := New(send, nil)

		addrB := &net.UDPAddr{IP: net.ParseIP("127.0.0.1"), Port: 9002}
		r.Register("/z", addrA, 10_000)
		r.Register("/z", addrB, 10_000)

		Expect(r.Count("/z")).To(Equal(2))

		r.Notify("/z", protocol.OpWriteDelete, nil, "file update: bytes deleted", 1)
		Expect(send.len()).To(Equal(2))
	})
})
