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

package logger

import (
	"io"
	"os"
	"sync"

	"github.com/mattn/go-colorable"
	"github.com/sirupsen/logrus"

	loglvl "github.com/nabbar/rfas/logger/level"
	logtps "github.com/nabbar/rfas/logger/types"
)

type lgr struct {
	mu  sync.RWMutex
	log *logrus.Logger
	fld logrus.Fields
}

// New returns a Logger writing colorized, leveled entries to stderr.
// w, when non-nil, overrides the default colorable stderr writer (tests use
// this to capture output).
func New(w io.Writer) Logger {
	if w == nil {
		w = colorable.NewColorable(os.Stderr)
	}

	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	})

	return &lgr{
		log: l,
		fld: logrus.Fields{},
	}
}

func (o *lgr) SetLevel(lvl loglvl.Level) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.log.SetLevel(lvl.Logrus())
}

func (o *lgr) GetLevel() loglvl.Level {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return loglvl.ParseFromUint32(uint32(o.log.GetLevel()))
}

func (o *lgr) WithFields(fields map[string]interface{}) Logger {
	o.mu.RLock()
	defer o.mu.RUnlock()

	merged := make(logrus.Fields, len(o.fld)+len(fields))
	for k, v := range o.fld {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}

	return &lgr{
		log: o.log,
		fld: merged,
	}
}

func (o *lgr) entry(fields map[string]interface{}) *logrus.Entry {
	o.mu.RLock()
	defer o.mu.RUnlock()

	merged := make(logrus.Fields, len(o.fld)+len(fields))
	for k, v := range o.fld {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}

	return o.log.WithFields(merged)
}

func (o *lgr) Debug(message string, fields map[string]interface{}) {
	o.entry(fields).Debug(message)
}

func (o *lgr) Info(message string, fields map[string]interface{}) {
	o.entry(fields).Info(message)
}

func (o *lgr) Warning(message string, fields map[string]interface{}) {
	o.entry(fields).Warn(message)
}

func (o *lgr) Error(message string, fields map[string]interface{}) {
	o.entry(fields).WithField(logtps.FieldError, message).Error(message)
}
