package mp3

import "encoding/binary"

// MPEG audio version, decoded from the 2 version bits.
type mpegVersion uint8

const (
	mpeg1 mpegVersion = iota
	mpeg2
	mpeg25
)

func (v mpegVersion) String() string {
	switch v {
	case mpeg1:
		return "MPEG-1"
	case mpeg2:
		return "MPEG-2"
	case mpeg25:
		return "MPEG-2.5"
	}
	return "MPEG-?"
}

// MPEG audio layer, decoded from the 2 layer bits.
type mpegLayer uint8

const (
	layerI mpegLayer = iota
	layerII
	layerIII
)

func (l mpegLayer) String() string {
	switch l {
	case layerI:
		return "Layer I"
	case layerII:
		return "Layer II"
	case layerIII:
		return "Layer III"
	}
	return "Layer ?"
}

// Channel mode, decoded from the 2 channel-mode bits.
type channelMode uint8

const (
	modeStereo channelMode = iota
	modeJointStereo
	modeDualChannel
	modeMono
)

func (m channelMode) channels() uint16 {
	if m == modeMono {
		return 1
	}
	return 2
}

// --- Lookup tables, exact values from the MPEG audio specification ---

// Bitrates in kbps, indexed by the 4 bitrate bits.
// Index 0 is free format, index 15 is forbidden; both are rejected.
var (
	bitrateV1L1 = [16]int{0, 32, 64, 96, 128, 160, 192, 224, 256, 288, 320, 352, 384, 416, 448, 0}
	bitrateV1L2 = [16]int{0, 32, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 384, 0}
	bitrateV1L3 = [16]int{0, 32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 0}
	bitrateV2L1 = [16]int{0, 32, 48, 56, 64, 80, 96, 112, 128, 144, 160, 176, 192, 224, 256, 0}
	bitrateV2L2 = [16]int{0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160, 0}
	bitrateV2L3 = [16]int{0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160, 0}
)

// Sample rates in Hz, indexed by version and the 2 sample-rate bits.
// Index 3 is reserved.
var sampleRates = map[mpegVersion][4]int{
	mpeg1:  {44100, 48000, 32000, 0},
	mpeg2:  {22050, 24000, 16000, 0},
	mpeg25: {11025, 12000, 8000, 0},
}

func bitrateKbps(v mpegVersion, l mpegLayer, idx int) int {
	if v == mpeg1 {
		switch l {
		case layerI:
			return bitrateV1L1[idx]
		case layerII:
			return bitrateV1L2[idx]
		default:
			return bitrateV1L3[idx]
		}
	}
	// MPEG-2 and MPEG-2.5 share the same tables.
	switch l {
	case layerI:
		return bitrateV2L1[idx]
	case layerII:
		return bitrateV2L2[idx]
	default:
		return bitrateV2L3[idx]
	}
}

// samplesPerFrame returns the number of PCM samples encoded by a single
// frame: fixed per (version, layer).
func samplesPerFrame(v mpegVersion, l mpegLayer) int {
	switch l {
	case layerI:
		return 384
	case layerII:
		return 1152
	default:
		if v == mpeg1 {
			return 1152
		}
		return 576
	}
}

// sideInfoSize returns the size in bytes of the Layer III side
// information block following the frame header. The Xing tag begins
// directly after it.
func sideInfoSize(v mpegVersion, m channelMode) int {
	if v == mpeg1 {
		if m == modeMono {
			return 17
		}
		return 32
	}
	if m == modeMono {
		return 9
	}
	return 17
}

// frameHeader is a decoded 4-byte MPEG audio frame header.
type frameHeader struct {
	version    mpegVersion
	layer      mpegLayer
	bitrate    int // bps
	sampleRate int // Hz
	mode       channelMode
	padding    bool
	protected  bool
	length     int // full frame size in bytes, header included
}

// decodeFrameHeader parses 4 bytes as an MPEG audio frame header. It
// rejects reserved version/layer bits, reserved or free-format bitrate
// indices, reserved sample-rate indices, and headers whose derived
// frame length is not larger than the header itself.
func decodeFrameHeader(b []byte) (frameHeader, bool) {
	if len(b) < 4 {
		return frameHeader{}, false
	}
	raw := binary.BigEndian.Uint32(b)

	// The 11 top bits must all be set.
	if raw&0xFFE00000 != 0xFFE00000 {
		return frameHeader{}, false
	}

	var h frameHeader
	switch (raw >> 19) & 0x3 {
	case 3:
		h.version = mpeg1
	case 2:
		h.version = mpeg2
	case 0:
		h.version = mpeg25
	default: // 1 is reserved
		return frameHeader{}, false
	}

	switch (raw >> 17) & 0x3 {
	case 3:
		h.layer = layerI
	case 2:
		h.layer = layerII
	case 1:
		h.layer = layerIII
	default: // 0 is reserved
		return frameHeader{}, false
	}

	h.protected = (raw>>16)&0x1 == 0

	bitrateIdx := int((raw >> 12) & 0xF)
	// Free format (0) cannot be sized without scanning for the next
	// sync word and is treated as unsupported.
	if bitrateIdx == 0 || bitrateIdx == 15 {
		return frameHeader{}, false
	}
	h.bitrate = bitrateKbps(h.version, h.layer, bitrateIdx) * 1000

	sampleRateIdx := int((raw >> 10) & 0x3)
	if sampleRateIdx == 3 {
		return frameHeader{}, false
	}
	h.sampleRate = sampleRates[h.version][sampleRateIdx]

	h.padding = (raw>>9)&0x1 == 1
	h.mode = channelMode((raw >> 6) & 0x3)

	h.length = frameLength(h)
	if h.length <= 4 {
		return frameHeader{}, false
	}
	return h, true
}

// frameLength derives the full frame size in bytes. A Layer I slot is
// 4 bytes, Layer II/III slots are 1 byte. Integer division truncates,
// matching encoder behavior.
func frameLength(h frameHeader) int {
	pad := 0
	if h.padding {
		pad = 1
	}
	if h.layer == layerI {
		return (12*h.bitrate/h.sampleRate + pad) * 4
	}
	spf := samplesPerFrame(h.version, h.layer)
	return spf/8*h.bitrate/h.sampleRate + pad
}
