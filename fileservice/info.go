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

package fileservice

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Info is the fixed-shape, human-readable record returned by the FILE_INFO
// operation (spec §4.6). It is serialized into Response.Payload as
// newline-separated "key: value" text — the distilled spec names the record's
// fields but leaves the exact wire shape of the payload unspecified; this is
// the resolution.
type Info struct {
	Name       string
	Size       int64
	ModTime    time.Time
	Readable   bool
	Writable   bool
	Executable bool
	Hidden     bool
	AbsPath    string
	ParentDir  string
}

func newInfo(absPath string, fi os.FileInfo) Info {
	mode := fi.Mode()

	return Info{
		Name:       fi.Name(),
		Size:       fi.Size(),
		ModTime:    fi.ModTime(),
		Readable:   mode.Perm()&0o400 != 0,
		Writable:   mode.Perm()&0o200 != 0,
		Executable: mode.Perm()&0o100 != 0,
		Hidden:     strings.HasPrefix(fi.Name(), "."),
		AbsPath:    absPath,
		ParentDir:  filepath.Dir(absPath),
	}
}

// Encode renders i as the newline-separated "key: value" record carried in
// Response.Payload.
func (i Info) Encode() []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "name: %s\n", i.Name)
	fmt.Fprintf(&b, "size: %d\n", i.Size)
	fmt.Fprintf(&b, "modTime: %s\n", i.ModTime.Format(time.RFC3339))
	fmt.Fprintf(&b, "readable: %t\n", i.Readable)
	fmt.Fprintf(&b, "writable: %t\n", i.Writable)
	fmt.Fprintf(&b, "executable: %t\n", i.Executable)
	fmt.Fprintf(&b, "hidden: %t\n", i.Hidden)
	fmt.Fprintf(&b, "absPath: %s\n", i.AbsPath)
	fmt.Fprintf(&b, "parentDir: %s\n", i.ParentDir)

	return []byte(b.String())
}
