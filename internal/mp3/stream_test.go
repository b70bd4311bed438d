package mp3

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Builders for synthetic MPEG streams used across the engine tests.

// testFrame builds a full frame for the given header bytes: the 4
// header bytes followed by a zero payload of the derived length.
func testFrame(b1, b2, b3 byte) []byte {
	hdr := []byte{0xFF, b1, b2, b3}
	h, ok := decodeFrameHeader(hdr)
	if !ok {
		panic(fmt.Sprintf("test frame header %x does not decode", hdr))
	}
	frame := make([]byte, h.length)
	copy(frame, hdr)
	return frame
}

// mpeg1L3Frame is an MPEG-1 Layer III stereo frame, 128 kbps, 44100 Hz,
// no padding: 417 bytes.
func mpeg1L3Frame() []byte {
	return testFrame(0xFB, 0x90, 0x00)
}

// mpeg1L3MonoFrame is the mono variant of mpeg1L3Frame.
func mpeg1L3MonoFrame() []byte {
	return testFrame(0xFB, 0x90, 0xC0)
}

// cbrStream concatenates n copies of a frame.
func cbrStream(frame []byte, n int) []byte {
	out := make([]byte, 0, n*len(frame))
	for i := 0; i < n; i++ {
		out = append(out, frame...)
	}
	return out
}

// withXing writes a Xing tag into a copy of frame. Offsets follow the
// MPEG-1 stereo side-information size.
func withXing(frame []byte, flags uint32, frames, bytes uint32) []byte {
	out := append([]byte(nil), frame...)
	p := 4 + 32
	copy(out[p:], "Xing")
	binary.BigEndian.PutUint32(out[p+4:], flags)
	p += 8
	if flags&xingFrames != 0 {
		binary.BigEndian.PutUint32(out[p:], frames)
		p += 4
	}
	if flags&xingBytes != 0 {
		binary.BigEndian.PutUint32(out[p:], bytes)
		p += 4
	}
	if flags&xingTOC != 0 {
		for i := 0; i < 100; i++ {
			out[p+i] = byte(i)
		}
	}
	return out
}

// withVBRI writes a VBRI tag into a copy of frame.
func withVBRI(frame []byte, frames, bytes uint32) []byte {
	out := append([]byte(nil), frame...)
	copy(out[vbriOffset:], "VBRI")
	binary.BigEndian.PutUint16(out[vbriOffset+4:], 1) // version
	binary.BigEndian.PutUint32(out[vbriOffset+10:], bytes)
	binary.BigEndian.PutUint32(out[vbriOffset+14:], frames)
	return out
}

// id3v2Tag builds an ID3v2 header followed by a zero payload of the
// given size.
func id3v2Tag(payloadSize int) []byte {
	tag := make([]byte, id3v2HeaderSize+payloadSize)
	copy(tag, "ID3")
	tag[3] = 4 // v2.4
	tag[6] = byte(payloadSize >> 21 & 0x7F)
	tag[7] = byte(payloadSize >> 14 & 0x7F)
	tag[8] = byte(payloadSize >> 7 & 0x7F)
	tag[9] = byte(payloadSize & 0x7F)
	return tag
}

// id3v1Tag builds a trailing 128-byte ID3v1 tag.
func id3v1Tag() []byte {
	tag := make([]byte, id3v1TagSize)
	copy(tag, "TAG")
	return tag
}

// memHost serves a byte slice through the host read contract. Size 0
// is the unknown-size sentinel, so callers pick it explicitly.
func memHost(data []byte, sizeKnown bool) HostAPI {
	host := HostAPI{
		ReadAt: func(offset uint64, dst []byte) (int, error) {
			if offset >= uint64(len(data)) {
				return 0, nil
			}
			return copy(dst, data[offset:]), nil
		},
	}
	if sizeKnown {
		host.SourceSize = uint64(len(data))
	}
	return host
}

var errReadFailed = errors.New("host read failed")

// failingHost fails every read at or past failAt.
func failingHost(data []byte, failAt uint64) HostAPI {
	base := memHost(data, true)
	return HostAPI{
		ReadAt: func(offset uint64, dst []byte) (int, error) {
			if offset+uint64(len(dst)) > failAt {
				return 0, errReadFailed
			}
			return base.ReadAt(offset, dst)
		},
		SourceSize: base.SourceSize,
	}
}
