package mp3

import (
	"fmt"
	"io"

	"github.com/pavelkvkv/mp3DurationDetector/pkg/reader"
)

// defaultWindowSize is the size of the internally allocated read
// window when the host does not supply a scratch buffer.
const defaultWindowSize = 8 << 10

// minWindowSize is the smallest scratch buffer the engine accepts; a
// window must at least hold a frame header plus the VBR tag region of
// the first frame.
const minWindowSize = 512

// hostReaderAt adapts the host read callback to io.ReaderAt. A short
// read with no error from the host signals end of source and is
// reported as io.EOF.
type hostReaderAt struct {
	fn func(offset uint64, dst []byte) (int, error)
}

func (h hostReaderAt) ReadAt(p []byte, off int64) (int, error) {
	n, err := h.fn(uint64(off), p)
	if err != nil {
		return n, err
	}
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// source is the byte-source adapter: it gives the parser cheap
// random-access reads over the host callback, normalizes short reads,
// and never reads past the declared source size.
type source struct {
	r    *reader.BufferedReaderAt
	size uint64 // total source size, 0 when unknown
}

func newSource(host HostAPI) *source {
	buf := host.Scratch
	if len(buf) < minWindowSize {
		buf = make([]byte, defaultWindowSize)
	}
	return &source{
		r:    reader.NewBufferedReaderAt(hostReaderAt{fn: host.ReadAt}, buf),
		size: host.SourceSize,
	}
}

// read fills dst from the given offset. It returns the number of bytes
// read; n < len(dst) means the source ended. Host failures surface as
// ErrIO.
func (s *source) read(dst []byte, off uint64) (int, error) {
	if s.size > 0 {
		if off >= s.size {
			return 0, nil
		}
		if rem := s.size - off; rem < uint64(len(dst)) {
			dst = dst[:rem]
		}
	}
	n, err := s.r.ReadAt(dst, int64(off))
	if err != nil && err != io.EOF {
		return n, fmt.Errorf("read of %d bytes at offset %d: %v: %w", len(dst), off, err, ErrIO)
	}
	return n, nil
}
