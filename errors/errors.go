/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
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

package errors

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// chainedError is the concrete Error every constructor in this package
// returns: a numeric code (one of the per-package ranges in modules.go), a
// message, the call-site frame captured at construction, and zero or more
// parent errors — e.g. a transport ErrDial wrapping the net.OpError that
// triggered it.
type chainedError struct {
	code    uint16
	text    string
	parents []Error
	frame   runtime.Frame
}

func (e *chainedError) sameAs(other *chainedError) bool {
	if e == nil || other == nil {
		return false
	}

	if t1, t2 := e.GetTrace(), other.GetTrace(); (t1 != "") != (t2 != "") {
		return false
	} else if t1 != "" {
		return strings.EqualFold(t1, t2)
	}

	if m1, m2 := e.Error(), other.Error(); (m1 != "") != (m2 != "") {
		return false
	} else if m1 != "" {
		return strings.EqualFold(m1, m2)
	}

	if c1, c2 := e.Code(), other.Code(); (c1 > 0) != (c2 > 0) {
		return false
	} else if c1 > 0 {
		return c1 == c2
	}

	return false
}

func (e *chainedError) Is(err error) bool {
	if err == nil {
		return false
	}

	if other, ok := err.(*chainedError); ok {
		return e.sameAs(other)
	}
	return e.IsError(err)
}

func (e *chainedError) Add(parent ...error) {
	for _, v := range parent {
		if v == nil {
			continue
		}

		switch typed := v.(type) {
		case *chainedError:
			// flatten rather than nest a self-reference
			if e.IsError(typed) {
				for _, grandparent := range typed.parents {
					e.Add(grandparent)
				}
			} else {
				e.parents = append(e.parents, typed)
			}
		case Error:
			e.parents = append(e.parents, typed)
		default:
			e.parents = append(e.parents, &chainedError{code: 0, text: v.Error()})
		}
	}
}

func (e *chainedError) IsCode(code CodeError) bool {
	return e.code == code.Uint16()
}

func (e *chainedError) IsError(err error) bool {
	return strings.EqualFold(e.text, err.Error())
}

func (e *chainedError) HasCode(code CodeError) bool {
	if e.IsCode(code) {
		return true
	}

	for _, p := range e.parents {
		if p.HasCode(code) {
			return true
		}
	}

	return false
}

func (e *chainedError) GetCode() CodeError {
	return CodeError(e.code)
}

func (e *chainedError) GetParentCode() []CodeError {
	res := []CodeError{e.GetCode()}

	for _, p := range e.parents {
		res = append(res, p.GetParentCode()...)
	}

	return unicCodeSlice(res)
}

func (e *chainedError) HasError(err error) bool {
	if e.IsError(err) {
		return true
	}

	for _, p := range e.parents {
		if p.IsError(err) || p.HasError(err) {
			return true
		}
	}

	return false
}

func (e *chainedError) HasParent() bool {
	return len(e.parents) > 0
}

func (e *chainedError) GetParent(withMainError bool) []error {
	res := make([]error, 0)

	if withMainError {
		res = append(res, &chainedError{code: e.code, text: e.text, frame: e.frame})
	}

	for _, p := range e.parents {
		res = append(res, p.GetParent(true)...)
	}

	return res
}

func (e *chainedError) SetParent(parent ...error) {
	e.parents = make([]Error, 0)
	e.Add(parent...)
}

func (e *chainedError) Map(fct FuncMap) bool {
	if !fct(e) {
		return false
	}

	for _, p := range e.parents {
		if !p.Map(fct) {
			return false
		}
	}

	return true
}

func (e *chainedError) ContainsString(s string) bool {
	if strings.Contains(e.text, s) {
		return true
	}

	for _, p := range e.parents {
		if p.ContainsString(s) {
			return true
		}
	}

	return false
}

func (e *chainedError) Code() uint16 {
	return e.code
}

func (e *chainedError) CodeSlice() []uint16 {
	r := []uint16{e.Code()}

	for _, p := range e.parents {
		if p.Code() > 0 {
			r = append(r, p.Code())
		}
	}

	return r
}

func (e *chainedError) Error() string {
	return modeError.error(e)
}

func (e *chainedError) StringError() string {
	return e.text
}

func (e *chainedError) StringErrorSlice() []string {
	r := []string{e.StringError()}

	for _, p := range e.parents {
		r = append(r, p.Error())
	}

	return r
}

func (e *chainedError) GetError() error {
	//nolint goerr113
	return errors.New(e.text)
}

func (e *chainedError) GetErrorSlice() []error {
	r := []error{e.GetError()}

	for _, p := range e.parents {
		if p == nil {
			continue
		}
		r = append(r, p.GetErrorSlice()...)
	}

	return r
}

func (e *chainedError) Unwrap() []error {
	if len(e.parents) < 1 {
		return nil
	}

	r := make([]error, 0, len(e.parents))

	for _, p := range e.parents {
		if p == nil {
			continue
		}
		r = append(r, p)
	}

	return r
}

func (e *chainedError) GetTrace() string {
	if e.frame.File != "" {
		return fmt.Sprintf("%s#%d", filterPath(e.frame.File), e.frame.Line)
	} else if e.frame.Function != "" {
		return fmt.Sprintf("%s#%d", e.frame.Function, e.frame.Line)
	}

	return ""
}

func (e *chainedError) GetTraceSlice() []string {
	r := []string{e.GetTrace()}

	for _, p := range e.parents {
		if t := p.GetTrace(); t != "" {
			r = append(r, t)
		}
	}

	return r
}

func (e *chainedError) CodeError(pattern string) string {
	if pattern == "" {
		pattern = defaultPattern
	}
	return fmt.Sprintf(pattern, e.Code(), e.StringError())
}

func (e *chainedError) CodeErrorSlice(pattern string) []string {
	r := []string{e.CodeError(pattern)}

	for _, p := range e.parents {
		r = append(r, p.CodeError(pattern))
	}

	return r
}

func (e *chainedError) CodeErrorTrace(pattern string) string {
	if pattern == "" {
		pattern = defaultPatternTrace
	}

	return fmt.Sprintf(pattern, e.Code(), e.StringError(), e.GetTrace())
}

func (e *chainedError) CodeErrorTraceSlice(pattern string) []string {
	r := []string{e.CodeErrorTrace(pattern)}

	for _, p := range e.parents {
		r = append(r, p.CodeErrorTrace(pattern))
	}

	return r
}

func (e *chainedError) Return(r Return) {
	e.ReturnError(r.SetError)
	e.ReturnParent(r.AddParent)
}

func (e *chainedError) ReturnError(f ReturnError) {
	if e.frame.File != "" {
		f(int(e.code), e.text, e.frame.File, e.frame.Line)
	} else {
		f(int(e.code), e.text, e.frame.Function, e.frame.Line)
	}
}

func (e *chainedError) ReturnParent(f ReturnError) {
	for _, p := range e.parents {
		p.ReturnError(f)
		p.ReturnParent(f)
	}
}
