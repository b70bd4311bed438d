// Copyright (c) 2026 pavelkvkv
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package reader

import "io"

// BufferedReaderAt caches a single contiguous window of its source so
// that many small neighboring ReadAt calls (e.g. a byte-by-byte sync
// scan) translate into few large reads of the underlying reader.
//
// The window buffer is supplied by the caller, so the type performs no
// allocation of its own after construction.
type BufferedReaderAt struct {
	src io.ReaderAt
	buf []byte

	winOff int64 // source offset of buf[0]
	winLen int   // number of valid bytes in buf
	eofAt  int64 // source size once EOF has been observed, -1 otherwise
}

// NewBufferedReaderAt wraps src with a window cache backed by buf.
// buf must be non-empty; its length sets the window size.
func NewBufferedReaderAt(src io.ReaderAt, buf []byte) *BufferedReaderAt {
	return &BufferedReaderAt{
		src:   src,
		buf:   buf,
		eofAt: -1,
	}
}

// WindowSize returns the size of the cache window.
func (b *BufferedReaderAt) WindowSize() int {
	return len(b.buf)
}

// ReadAt implements io.ReaderAt. Requests larger than the window bypass
// the cache and go straight to the source.
func (b *BufferedReaderAt) ReadAt(p []byte, off int64) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if len(p) > len(b.buf) {
		return b.src.ReadAt(p, off)
	}

	if !b.inWindow(off, len(p)) {
		if err := b.fill(off); err != nil {
			return 0, err
		}
	}

	start := int(off - b.winOff)
	if start >= b.winLen {
		return 0, io.EOF
	}
	n := copy(p, b.buf[start:b.winLen])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (b *BufferedReaderAt) inWindow(off int64, n int) bool {
	if b.winLen == 0 || off < b.winOff {
		return false
	}
	if off+int64(n) <= b.winOff+int64(b.winLen) {
		return true
	}
	// A window ending at the known EOF cannot be extended by refilling.
	return b.eofAt >= 0 && b.winOff+int64(b.winLen) == b.eofAt
}

func (b *BufferedReaderAt) fill(off int64) error {
	n, err := b.src.ReadAt(b.buf, off)
	if err != nil && err != io.EOF {
		b.winLen = 0
		return err
	}
	b.winOff = off
	b.winLen = n
	if err == io.EOF {
		b.eofAt = off + int64(n)
	}
	return nil
}
