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

package level

import (
	"math"
	"strings"
)

// Level is a logging severity, ordered from most severe (PanicLevel=0) to
// least severe (DebugLevel=5). NilLevel (6) disables logging entirely and
// cannot be produced by Parse — only by ParseFromInt/ParseFromUint32.
type Level uint8

const (
	PanicLevel Level = iota
	FatalLevel
	ErrorLevel
	WarnLevel
	InfoLevel
	DebugLevel
	NilLevel
)

// ListLevels returns the lowercase full names Parse accepts: ["critical",
// "fatal", "error", "warning", "info", "debug"]. NilLevel is omitted since it
// isn't a configurable choice. config.Logging's "oneof" tag is a separate,
// shorter literal list (debug, info, warning, error).
func ListLevels() []string {
	return []string{
		strings.ToLower(PanicLevel.String()),
		strings.ToLower(FatalLevel.String()),
		strings.ToLower(ErrorLevel.String()),
		strings.ToLower(WarnLevel.String()),
		strings.ToLower(InfoLevel.String()),
		strings.ToLower(DebugLevel.String()),
	}
}

// Parse is case-insensitive and accepts either the full name or the short
// code ("warning" or "warn" both give WarnLevel). Unrecognized input,
// including untrimmed whitespace, falls back to InfoLevel rather than
// erroring — config.LoadClient/LoadServer validate Logging.Level separately.
func Parse(l string) Level {
	switch {
	case strings.EqualFold(PanicLevel.String(), l), strings.EqualFold(PanicLevel.Code(), l):
		return PanicLevel

	case strings.EqualFold(FatalLevel.String(), l), strings.EqualFold(FatalLevel.Code(), l):
		return FatalLevel

	case strings.EqualFold(ErrorLevel.String(), l), strings.EqualFold(ErrorLevel.Code(), l):
		return ErrorLevel

	case strings.EqualFold(WarnLevel.String(), l), strings.EqualFold(WarnLevel.Code(), l):
		return WarnLevel

	case strings.EqualFold(InfoLevel.String(), l), strings.EqualFold(InfoLevel.Code(), l):
		return InfoLevel

	case strings.EqualFold(DebugLevel.String(), l), strings.EqualFold(DebugLevel.Code(), l):
		return DebugLevel
	}

	return InfoLevel
}

// ParseFromInt maps 0-6 to PanicLevel..NilLevel, and anything else to
// InfoLevel. Unlike Parse, this can produce NilLevel.
func ParseFromInt(i int) Level {
	switch i {
	case PanicLevel.Int():
		return PanicLevel
	case FatalLevel.Int():
		return FatalLevel
	case ErrorLevel.Int():
		return ErrorLevel
	case WarnLevel.Int():
		return WarnLevel
	case InfoLevel.Int():
		return InfoLevel
	case DebugLevel.Int():
		return DebugLevel
	case NilLevel.Int():
		return NilLevel
	default:
		return InfoLevel
	}
}

// ParseFromUint32 is ParseFromInt for a uint32 source — logger.GetLevel
// uses it to turn logrus's uint32 level back into a Level.
func ParseFromUint32(i uint32) Level {
	if uint64(i) < uint64(math.MaxInt) {
		return ParseFromInt(int(i))
	} else {
		return ParseFromInt(math.MaxInt)
	}
}
