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

import "fmt"

// AudioInfo is the output record of an analysis. Callers must ignore
// every field unless Valid is set.
type AudioInfo struct {
	SampleRate    uint32 // Hz
	Channels      uint16
	BitsPerSample uint16 // fixed at 16 for MPEG audio output
	Bitrate       uint32 // bps, nominal for CBR, average for VBR
	DurationMs    uint32
	DataSize      uint64 // audio bytes, tags excluded
	Valid         bool
}

// analysis is the per-run context. It is created at the start of one
// analysis and discarded at its end; nothing in it survives the call.
type analysis struct {
	src *source
	log LogFunc

	audioStart uint64
	audioEnd   uint64 // 0 when the source size is unknown
	frameOff   uint64
	first      frameHeader
	vbr        vbrInfo
}

func (a *analysis) debugf(format string, args ...any) {
	if a.log != nil {
		a.log(LogDebug, fmt.Sprintf(format, args...))
	}
}

func (a *analysis) warnf(format string, args ...any) {
	if a.log != nil {
		a.log(LogWarn, fmt.Sprintf(format, args...))
	}
}

// runAnalysis performs the single forward pass over the source:
// tag skip, frame sync, first-frame decode, VBR tag extraction,
// duration estimation, output assembly.
func runAnalysis(host HostAPI) (AudioInfo, error) {
	a := &analysis{src: newSource(host), log: host.Log}

	start, end, err := audioBounds(a.src)
	if err != nil {
		return AudioInfo{}, err
	}
	a.audioStart, a.audioEnd = start, end
	if end > 0 && start >= end {
		return AudioInfo{}, fmt.Errorf("no audio data between tags (start %d, end %d): %w", start, end, ErrInvalidFormat)
	}
	a.debugf("audio region starts at %d, ends at %d", start, end)

	a.frameOff, a.first, err = findFirstFrame(a.src, start, end)
	if err != nil {
		return AudioInfo{}, err
	}
	a.debugf("first frame at %d: %s %s, %d bps, %d Hz",
		a.frameOff, a.first.version, a.first.layer, a.first.bitrate, a.first.sampleRate)

	a.vbr, err = extractVBRInfo(a.src, a.frameOff, a.first)
	if err != nil {
		return AudioInfo{}, err
	}
	if a.vbr.kind != vbrNone {
		a.debugf("%s tag: %d frames, %d bytes", a.vbr.kind, a.vbr.frames, a.vbr.bytes)
	}

	durationMs, bitrate, dataSize, err := a.estimate()
	if err != nil {
		return AudioInfo{}, err
	}
	return assemble(a.first, durationMs, bitrate, dataSize)
}

// estimate applies the duration policy: exact VBR frame counts first,
// VBR byte counts next, the CBR formula when the stream length is
// known, and a full frame-count scan as the last resort.
func (a *analysis) estimate() (durationMs, bitrate uint32, dataSize uint64, err error) {
	h := a.first

	switch {
	case a.vbr.hasFrames:
		durationMs, err = durationMsFromFrames(uint64(a.vbr.frames), h)
		if err != nil {
			return 0, 0, 0, err
		}
		dataSize = a.vbr.bytes
		if !a.vbr.hasBytes && a.audioEnd > 0 {
			dataSize = a.audioEnd - a.frameOff
		}
		bitrate = uint32(h.bitrate)
		if a.vbr.hasBytes {
			bitrate = averageBitrate(a.vbr.bytes, durationMs)
		}

	case a.vbr.kind != vbrNone && a.vbr.hasBytes:
		// Tag without a frame count: approximate over the nominal
		// bitrate of the first frame.
		durationMs, err = durationMsFromBytes(a.vbr.bytes, h.bitrate)
		if err != nil {
			return 0, 0, 0, err
		}
		dataSize = a.vbr.bytes
		bitrate = uint32(h.bitrate)

	case a.audioEnd > 0:
		dataSize = a.audioEnd - a.frameOff
		durationMs, err = durationMsFromBytes(dataSize, h.bitrate)
		if err != nil {
			return 0, 0, 0, err
		}
		bitrate = uint32(h.bitrate)

	default:
		a.debugf("no VBR tag and unknown source size, scanning all frames")
		var st streamStats
		st, err = scanFrames(a.src, a.frameOff, a)
		if err != nil {
			return 0, 0, 0, err
		}
		durationMs, err = durationMsFromFrames(st.frames, h)
		if err != nil {
			return 0, 0, 0, err
		}
		dataSize = st.bytes
		bitrate = averageBitrate(st.bytes, durationMs)
	}
	return durationMs, bitrate, dataSize, nil
}

// assemble fills the output record. Valid is set only when every
// derived field is non-degenerate.
func assemble(h frameHeader, durationMs, bitrate uint32, dataSize uint64) (AudioInfo, error) {
	info := AudioInfo{
		SampleRate:    uint32(h.sampleRate),
		Channels:      h.mode.channels(),
		BitsPerSample: 16,
		Bitrate:       bitrate,
		DurationMs:    durationMs,
		DataSize:      dataSize,
	}
	if info.DurationMs == 0 || info.SampleRate == 0 || info.Channels < 1 || info.Channels > 2 {
		return AudioInfo{}, fmt.Errorf("degenerate stream parameters (%d ms, %d Hz, %d channels): %w",
			info.DurationMs, info.SampleRate, info.Channels, ErrInvalidFormat)
	}
	info.Valid = true
	return info, nil
}
