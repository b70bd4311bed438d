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

const (
	id3v2HeaderSize = 10
	id3v2FooterSize = 10
	id3v1TagSize    = 128

	// Footer-present bit in the ID3v2 flags byte.
	id3v2FooterFlag = 0x10
)

// decodeSynchsafe decodes a 4-byte big-endian synchsafe integer: the
// high bit of every byte is masked off.
func decodeSynchsafe(b []byte) uint32 {
	return uint32(b[0]&0x7F)<<21 |
		uint32(b[1]&0x7F)<<14 |
		uint32(b[2]&0x7F)<<7 |
		uint32(b[3]&0x7F)
}

// audioBounds locates the region of the source that can contain audio
// frames, skipping a leading ID3v2 tag and a trailing ID3v1 tag.
// end is 0 when the source size is unknown. The absence of any tag is
// not an error: the bounds then default to the full source.
func audioBounds(s *source) (start, end uint64, err error) {
	var hdr [id3v2HeaderSize]byte
	n, err := s.read(hdr[:], 0)
	if err != nil {
		return 0, 0, err
	}

	if n == id3v2HeaderSize && hdr[0] == 'I' && hdr[1] == 'D' && hdr[2] == '3' {
		start = id3v2HeaderSize + uint64(decodeSynchsafe(hdr[6:10]))
		if hdr[5]&id3v2FooterFlag != 0 {
			start += id3v2FooterSize
		}
	}

	if s.size == 0 {
		return start, 0, nil
	}

	end = s.size
	if s.size >= id3v1TagSize {
		var tag [3]byte
		n, err := s.read(tag[:], s.size-id3v1TagSize)
		if err != nil {
			return 0, 0, err
		}
		if n == len(tag) && tag[0] == 'T' && tag[1] == 'A' && tag[2] == 'G' {
			end = s.size - id3v1TagSize
		}
	}
	return start, end, nil
}
