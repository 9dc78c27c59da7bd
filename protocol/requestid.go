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
	"hash/fnv"
	"os"
	"strconv"
	"sync/atomic"
	"time"
)

var requestSeq uint64

// hostTerm is a 64-bit FNV-1a hash of the local hostname and process id,
// computed once per process and folded into every generated identifier.
var hostTerm = func() uint64 {
	h := fnv.New64a()
	name, _ := os.Hostname()
	_, _ = h.Write([]byte(name))
	_, _ = h.Write([]byte(strconv.Itoa(os.Getpid())))
	return h.Sum64()
}()

// NewRequestID returns a 64-bit value that is unique with high probability
// across every client sharing this process, by xoring a monotonic nanosecond
// counter with a host identity term. A process-local sequence number is
// folded in as well so two calls within the same nanosecond never collide.
func NewRequestID() uint64 {
	seq := atomic.AddUint64(&requestSeq, 1)
	return (uint64(time.Now().UnixNano()) ^ hostTerm) + seq
}
