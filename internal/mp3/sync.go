package mp3

import "fmt"

// syncWindowSize bounds how far past the nominal audio start the
// synchronizer searches for a first frame before giving up. Keeps the
// scan finite over corrupt or non-MP3 data.
const syncWindowSize = 64 << 10

// findFirstFrame scans byte-by-byte from start for a frame header. A
// candidate is accepted only if it decodes cleanly and, when the
// stream extends that far, the header at the end of the candidate
// frame decodes as well. The double check rejects false sync patterns
// inside compressed payloads.
//
// end bounds the audio region when the source size is known; 0 means
// unbounded.
func findFirstFrame(s *source, start, end uint64) (uint64, frameHeader, error) {
	limit := start + syncWindowSize
	if end > 0 && end < limit {
		limit = end
	}

	var b [4]byte
	for off := start; off < limit; off++ {
		if end > 0 && off+4 > end {
			break
		}
		n, err := s.read(b[:], off)
		if err != nil {
			return 0, frameHeader{}, err
		}
		if n < 4 {
			// Source ended before the window did.
			break
		}
		if b[0] != 0xFF || b[1]&0xE0 != 0xE0 {
			continue
		}
		h, ok := decodeFrameHeader(b[:])
		if !ok {
			continue
		}
		ok, err = confirmNextFrame(s, off, h, end)
		if err != nil {
			return 0, frameHeader{}, err
		}
		if ok {
			return off, h, nil
		}
	}
	return 0, frameHeader{}, fmt.Errorf("no frame sync within %d bytes of offset %d: %w", syncWindowSize, start, ErrInvalidFormat)
}

// confirmNextFrame checks that the 4 bytes following the candidate
// frame also decode as a frame header. When the stream ends at or
// inside the next header the candidate is accepted on its own: a
// single-frame stream is still a valid stream.
func confirmNextFrame(s *source, off uint64, h frameHeader, end uint64) (bool, error) {
	next := off + uint64(h.length)
	if end > 0 && next+4 > end {
		return true, nil
	}

	var b [4]byte
	n, err := s.read(b[:], next)
	if err != nil {
		return false, err
	}
	if n < 4 {
		return true, nil
	}
	_, ok := decodeFrameHeader(b[:])
	return ok, nil
}
