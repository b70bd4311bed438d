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
package mp3

import (
	"fmt"
	"math"
)

// Caps for the fallback full-stream scan over sources of unknown size.
// Whatever was counted when a cap is hit is used as-is.
const (
	maxFallbackFrames = 2_000_000
	maxFallbackBytes  = 1 << 30
)

// streamStats accumulates the fallback scan.
type streamStats struct {
	frames uint64
	bytes  uint64
}

// scanFrames walks frame to frame from off until the source ends, a
// header stops decoding, or a scan cap is reached.
func scanFrames(s *source, off uint64, a *analysis) (streamStats, error) {
	var st streamStats
	var b [4]byte
	for {
		n, err := s.read(b[:], off)
		if err != nil {
			return streamStats{}, err
		}
		if n < 4 {
			return st, nil
		}
		h, ok := decodeFrameHeader(b[:])
		if !ok {
			a.debugf("frame scan stopped at offset %d: invalid header", off)
			return st, nil
		}
		st.frames++
		st.bytes += uint64(h.length)
		off += uint64(h.length)

		if st.frames >= maxFallbackFrames || st.bytes >= maxFallbackBytes {
			a.warnf("frame scan capped after %d frames (%d bytes)", st.frames, st.bytes)
			return st, nil
		}
	}
}

// durationMsFromFrames converts an exact frame count to milliseconds.
func durationMsFromFrames(frames uint64, h frameHeader) (uint32, error) {
	if frames == 0 || h.sampleRate == 0 {
		return 0, fmt.Errorf("cannot derive duration from %d frames at %d Hz: %w", frames, h.sampleRate, ErrInvalidFormat)
	}
	ms := frames * uint64(samplesPerFrame(h.version, h.layer)) * 1000 / uint64(h.sampleRate)
	if ms > math.MaxUint32 {
		return 0, fmt.Errorf("duration %d ms overflows output field: %w", ms, ErrInternal)
	}
	return uint32(ms), nil
}

// durationMsFromBytes converts a byte count to milliseconds assuming a
// constant bitrate.
func durationMsFromBytes(bytes uint64, bitrate int) (uint32, error) {
	if bitrate <= 0 {
		return 0, fmt.Errorf("cannot derive duration at %d bps: %w", bitrate, ErrInvalidFormat)
	}
	ms := bytes * 8 * 1000 / uint64(bitrate)
	if ms > math.MaxUint32 {
		return 0, fmt.Errorf("duration %d ms overflows output field: %w", ms, ErrInternal)
	}
	return uint32(ms), nil
}

// averageBitrate reports bytes over a known duration as bits per
// second.
func averageBitrate(bytes uint64, durationMs uint32) uint32 {
	if durationMs == 0 {
		return 0
	}
	bps := bytes * 8 * 1000 / uint64(durationMs)
	if bps > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(bps)
}
