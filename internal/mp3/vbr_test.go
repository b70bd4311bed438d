package mp3

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func firstHeader(t *testing.T, data []byte) frameHeader {
	t.Helper()
	h, ok := decodeFrameHeader(data)
	require.True(t, ok)
	return h
}

func TestExtractVBRInfo_XingFramesAndBytes(t *testing.T) {
	frame := withXing(mpeg1L3Frame(), xingFrames|xingBytes, 3850, 2_000_000)
	h := firstHeader(t, frame)

	info, err := extractVBRInfo(newSource(memHost(frame, true)), 0, h)
	require.NoError(t, err)

	require.Equal(t, vbrXing, info.kind)
	require.True(t, info.hasFrames)
	require.Equal(t, uint32(3850), info.frames)
	require.True(t, info.hasBytes)
	require.Equal(t, uint64(2_000_000), info.bytes)
	require.False(t, info.hasTOC)
}

func TestExtractVBRInfo_XingWithTOC(t *testing.T) {
	frame := withXing(mpeg1L3Frame(), xingFrames|xingBytes|xingTOC, 100, 50_000)
	h := firstHeader(t, frame)

	info, err := extractVBRInfo(newSource(memHost(frame, true)), 0, h)
	require.NoError(t, err)

	require.True(t, info.hasTOC)
	require.Equal(t, byte(42), info.toc[42])
}

func TestExtractVBRInfo_InfoSignature(t *testing.T) {
	frame := withXing(mpeg1L3Frame(), xingFrames, 77, 0)
	copy(frame[4+32:], "Info")
	h := firstHeader(t, frame)

	info, err := extractVBRInfo(newSource(memHost(frame, true)), 0, h)
	require.NoError(t, err)

	require.Equal(t, vbrXing, info.kind)
	require.Equal(t, uint32(77), info.frames)
	require.False(t, info.hasBytes)
}

func TestExtractVBRInfo_XingMonoOffset(t *testing.T) {
	// MPEG-1 mono side info is 17 bytes, so the tag sits at offset 21.
	frame := mpeg1L3MonoFrame()
	copy(frame[4+17:], "Xing")
	frame[4+17+7] = xingFrames
	frame[4+17+8+3] = 9 // frame count, big-endian
	h := firstHeader(t, frame)

	info, err := extractVBRInfo(newSource(memHost(frame, true)), 0, h)
	require.NoError(t, err)

	require.Equal(t, vbrXing, info.kind)
	require.Equal(t, uint32(9), info.frames)
}

func TestExtractVBRInfo_VBRI(t *testing.T) {
	frame := withVBRI(mpeg1L3Frame(), 4321, 1_234_567)
	h := firstHeader(t, frame)

	info, err := extractVBRInfo(newSource(memHost(frame, true)), 0, h)
	require.NoError(t, err)

	require.Equal(t, vbrVBRI, info.kind)
	require.True(t, info.hasFrames)
	require.Equal(t, uint32(4321), info.frames)
	require.True(t, info.hasBytes)
	require.Equal(t, uint64(1_234_567), info.bytes)
}

func TestExtractVBRInfo_None(t *testing.T) {
	frame := mpeg1L3Frame()
	h := firstHeader(t, frame)

	info, err := extractVBRInfo(newSource(memHost(frame, true)), 0, h)
	require.NoError(t, err)
	require.Equal(t, vbrNone, info.kind)
}

func TestExtractVBRInfo_TruncatedFrame(t *testing.T) {
	// Frame cut short before the tag region: treated as CBR, not an
	// error.
	frame := withXing(mpeg1L3Frame(), xingFrames, 50, 0)[:20]
	h := firstHeader(t, frame)

	info, err := extractVBRInfo(newSource(memHost(frame, true)), 0, h)
	require.NoError(t, err)
	require.Equal(t, vbrNone, info.kind)
}
