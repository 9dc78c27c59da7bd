/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
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
 */

package duration

import (
	"fmt"
	"math"
	"time"
)

// Time converts back to a time.Duration, e.g. for net.Conn.SetReadDeadline.
func (d Duration) Time() time.Duration {
	return time.Duration(d)
}

// String returns a string representation of the duration.
// A duration of at least one day is written as "Nd" followed by the rest in
// time.Duration.String format, the rest being omitted when it is zero
// ("1d", "5d23h15m13s"). A shorter, zero or negative duration is written by
// time.Duration.String alone ("5m0s", "0s", "-30s").
//
// Example:
//
// d, _ := libdur.Parse("1d2h3m4s")
// fmt.Println(d.String()) // Output: 1d2h3m4s
func (d Duration) String() string {
	var (
		s string
		n = d.Days()
		i = d.Time()
	)

	if n > 0 {
		i = i - (time.Duration(n) * 24 * time.Hour)
		s = fmt.Sprintf("%dd", n)
	}

	if n < 1 || i > 0 {
		s = s + i.String()
	}

	return s
}

// Days returns the number of days in the duration.
// The number of days is calculated by dividing the total number of hours
// by 24 and rounding down to the nearest integer.
// If the total number of hours is greater than the maximum value of int64,
// the maximum value of int64 is returned.
func (d Duration) Days() int64 {
	t := math.Floor(d.Time().Hours() / 24)

	if t > math.MaxInt64 {
		return math.MaxInt64
	}

	return int64(t)
}

// Float64 returns the duration's nanosecond count as a float64, for metrics
// collectors that want a gauge value rather than a time.Duration.
func (d Duration) Float64() float64 {
	return float64(d)
}
