/***********************************************************************************************************************
 *
 *   MIT License
 *
 *   Copyright (c) 2022 Nicolas JUHEL
 *
 *   Permission is hereby granted, free of charge, to any person obtaining a copy
 *   of this software and associated documentation files (the "Software"), to deal
 *   in the Software without restriction, including without limitation the rights
 *   to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 *   copies of the Software, and to permit persons to whom the Software is
 *   furnished to do so, subject to the following conditions:
 *
 *   The above copyright notice and this permission notice shall be included in all
 *   copies or substantial portions of the Software.
 *
 *   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 *   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 *   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 *   AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 *   LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 *   OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 *   SOFTWARE.
 *
 *
 **********************************************************************************************************************/

// Package duration is the config-facing timeout/TTL type: config.Client and
// config.Server accept these settings as "5s", "250ms" or "1d12h" strings
// (days notation included) rather than a raw time.Duration, so an operator
// hand-editing a YAML file doesn't have to do the nanosecond arithmetic
// time.ParseDuration expects for anything past an hour.
//
// Example:
//
//	d, _ := duration.Parse("30s")
//	timeout := d.Time() // time.Duration, ready for SetReadDeadline
package duration

import (
	"math"
	"time"
)

type Duration time.Duration

// Parse parses a string representing a duration and returns a Duration
// object. It will return an error if the string is invalid.
//
// The string is anything time.ParseDuration accepts ("300ms", "1.5h",
// "2h45m"), optionally preceded by a whole number of days ("1d12h", or "1d"
// alone). Quotes and spaces are removed before parsing. Every number needs a
// unit except a lone "0", and units are case sensitive.
func Parse(s string) (Duration, error) {
	return parseString(s)
}

// ParseByte parses a byte array representing a duration and returns a Duration
// object. It will return an error if the byte array is invalid.
//
// The byte array holds the same text Parse accepts.
func ParseByte(p []byte) (Duration, error) {
	return parseString(string(p))
}

func Seconds(i int64) Duration {
	return Duration(time.Duration(i) * time.Second)
}

func Minutes(i int64) Duration {
	return Duration(time.Duration(i) * time.Minute)
}

func Hours(i int64) Duration {
	return Duration(time.Duration(i) * time.Hour)
}

// Days returns i*24h as a Duration.
func Days(i int64) Duration {
	return Duration(time.Duration(i) * time.Hour * 24)
}

// ParseDuration wraps a time.Duration as a Duration, with no conversion.
func ParseDuration(d time.Duration) Duration {
	return Duration(d)
}

// ParseFloat64 returns a Duration representing f nanoseconds.
//
// If f is larger than math.MaxInt64, ParseFloat64 returns a Duration
// representing math.MaxInt64 nanoseconds. If f is smaller than -math.MaxInt64,
// ParseFloat64 returns a Duration representing -math.MaxInt64 nanoseconds.
//
// Otherwise, ParseFloat64 returns a Duration representing the closest
// integer to f nanoseconds. The returned Duration is a new Duration and
// does not modify the underlying float64.
func ParseFloat64(f float64) Duration {
	const (
		mx float64 = math.MaxInt64
		mi         = -mx
	)

	if f > mx {
		return Duration(math.MaxInt64)
	} else if f < mi {
		return Duration(-math.MaxInt64)
	} else {
		return Duration(math.Round(f))
	}
}

func ParseUint32(i uint32) Duration {
	if uint64(i) > uint64(math.MaxInt64) {
		return Duration(math.MaxInt64)
	} else {
		return Duration(i)
	}
}
