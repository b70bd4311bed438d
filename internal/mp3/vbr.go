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

import "encoding/binary"

type vbrKind uint8

const (
	vbrNone vbrKind = iota
	vbrXing
	vbrVBRI
)

func (k vbrKind) String() string {
	switch k {
	case vbrXing:
		return "Xing"
	case vbrVBRI:
		return "VBRI"
	}
	return "none"
}

// Xing flags word bits.
const (
	xingFrames = 1 << iota
	xingBytes
	xingTOC
	xingQuality
)

// The VBRI tag sits at a fixed 32 bytes past the 4-byte frame header.
const vbriOffset = 4 + 32

// vbrInfo is side information extracted from the first audio frame of
// a variable-bitrate stream.
type vbrInfo struct {
	kind      vbrKind
	frames    uint32
	hasFrames bool
	bytes     uint64
	hasBytes  bool
	toc       [100]byte
	hasTOC    bool
}

// extractVBRInfo inspects the payload of the first valid frame for a
// Xing/Info or VBRI tag. A missing or truncated tag is not an error:
// the stream is then treated as CBR.
func extractVBRInfo(s *source, off uint64, h frameHeader) (vbrInfo, error) {
	// Worst case: Xing tag after MPEG-1 stereo side info, with all four
	// optional fields present.
	var buf [4 + 32 + 4 + 4 + 4 + 4 + 100 + 4]byte

	want := h.length
	if want > len(buf) {
		want = len(buf)
	}
	n, err := s.read(buf[:want], off)
	if err != nil {
		return vbrInfo{}, err
	}

	if info, ok := parseXing(buf[:n], h); ok {
		return info, nil
	}
	if info, ok := parseVBRI(buf[:n]); ok {
		return info, nil
	}
	return vbrInfo{kind: vbrNone}, nil
}

func parseXing(frame []byte, h frameHeader) (vbrInfo, bool) {
	so := 0
	if h.layer == layerIII {
		so = sideInfoSize(h.version, h.mode)
	}
	p := 4 + so
	if p+8 > len(frame) {
		return vbrInfo{}, false
	}
	sig := string(frame[p : p+4])
	if sig != "Xing" && sig != "Info" {
		return vbrInfo{}, false
	}

	info := vbrInfo{kind: vbrXing}
	flags := binary.BigEndian.Uint32(frame[p+4 : p+8])
	p += 8

	if flags&xingFrames != 0 {
		if p+4 > len(frame) {
			return info, true
		}
		info.frames = binary.BigEndian.Uint32(frame[p : p+4])
		info.hasFrames = true
		p += 4
	}
	if flags&xingBytes != 0 {
		if p+4 > len(frame) {
			return info, true
		}
		info.bytes = uint64(binary.BigEndian.Uint32(frame[p : p+4]))
		info.hasBytes = true
		p += 4
	}
	if flags&xingTOC != 0 {
		if p+100 > len(frame) {
			return info, true
		}
		copy(info.toc[:], frame[p:p+100])
		info.hasTOC = true
	}
	// The quality indicator, when present, is not used.
	return info, true
}

func parseVBRI(frame []byte) (vbrInfo, bool) {
	// Layout after the "VBRI" signature: version u16, delay u16,
	// quality u16, byte count u32, frame count u32, then the seek
	// table, all big-endian. Only the two counts matter here.
	if vbriOffset+18 > len(frame) {
		return vbrInfo{}, false
	}
	if string(frame[vbriOffset:vbriOffset+4]) != "VBRI" {
		return vbrInfo{}, false
	}
	return vbrInfo{
		kind:      vbrVBRI,
		bytes:     uint64(binary.BigEndian.Uint32(frame[vbriOffset+10 : vbriOffset+14])),
		hasBytes:  true,
		frames:    binary.BigEndian.Uint32(frame[vbriOffset+14 : vbriOffset+18]),
		hasFrames: true,
	}, true
}
