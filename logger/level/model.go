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

	"github.com/sirupsen/logrus"
)

// Uint8 converts the Level to its underlying uint8 value.
func (l Level) Uint8() uint8 {
	return uint8(l)
}

// Uint32 converts the Level to a uint32 value. Use ParseFromUint32 to
// convert back — logger.GetLevel goes through logrus's uint32 level first.
func (l Level) Uint32() uint32 {
	return uint32(l)
}

// Int converts the Level to an int value. Use ParseFromInt to convert back.
func (l Level) Int() int {
	return int(l)
}

// String returns the full human-readable name ("Warning", "Debug", ...),
// "" for NilLevel and "unknown" otherwise. Parse accepts its own output.
func (l Level) String() string {
	//nolint exhaustive
	switch l {
	case DebugLevel:
		return "Debug"
	case InfoLevel:
		return "Info"
	case WarnLevel:
		return "Warning"
	case ErrorLevel:
		return "Error"
	case FatalLevel:
		return "Fatal"
	case PanicLevel:
		return "Critical"
	case NilLevel:
		return ""
	}

	return "unknown"
}

// Code returns the short form ("Warn", "Err", ...) used for compact log
// prefixes. Parse accepts its own output.
func (l Level) Code() string {
	//nolint exhaustive
	switch l {
	case DebugLevel:
		return "Debug"
	case InfoLevel:
		return "Info"
	case WarnLevel:
		return "Warn"
	case ErrorLevel:
		return "Err"
	case FatalLevel:
		return "Fatal"
	case PanicLevel:
		return "Crit"
	case NilLevel:
		return ""
	}

	return "unknown"
}

// Logrus converts to the logrus.Level the logger package's lgr.SetLevel
// passes straight to its underlying *logrus.Logger. NilLevel and anything
// unrecognized map to math.MaxInt32, which logrus never logs at.
func (l Level) Logrus() logrus.Level {
	switch l {
	case DebugLevel:
		return logrus.DebugLevel
	case InfoLevel:
		return logrus.InfoLevel
	case WarnLevel:
		return logrus.WarnLevel
	case ErrorLevel:
		return logrus.ErrorLevel
	case FatalLevel:
		return logrus.FatalLevel
	case PanicLevel:
		return logrus.PanicLevel
	default:
		return math.MaxInt32
	}
}
