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

// Package logger provides the structured, leveled logging facade used across
// the transport, invocation, fileservice and monitor packages. It wraps
// logrus with the project's Level type and a fixed stderr hook, trading the
// full hook-chain / multi-sink architecture of a general-purpose logging
// library for a single destination suited to a network daemon.
package logger

import (
	loglvl "github.com/nabbar/rfas/logger/level"
)

// Logger is the minimal structured logging surface used throughout this module.
type Logger interface {
	// SetLevel changes the minimal severity level emitted by this logger.
	SetLevel(lvl loglvl.Level)

	// GetLevel returns the minimal severity level emitted by this logger.
	GetLevel() loglvl.Level

	// WithFields returns a derived Logger that always includes the given fields.
	WithFields(fields map[string]interface{}) Logger

	Debug(message string, fields map[string]interface{})
	Info(message string, fields map[string]interface{})
	Warning(message string, fields map[string]interface{})
	Error(message string, fields map[string]interface{})
}
