package mp3

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAnalyze_CBRKnownSize(t *testing.T) {
	const frames = 38
	data := cbrStream(mpeg1L3Frame(), frames)

	info, err := New().Analyze(memHost(data, true))
	require.NoError(t, err)

	require.True(t, info.Valid)
	require.Equal(t, uint32(44100), info.SampleRate)
	require.Equal(t, uint16(2), info.Channels)
	require.Equal(t, uint16(16), info.BitsPerSample)
	require.Equal(t, uint32(128000), info.Bitrate)
	require.Equal(t, uint64(len(data)), info.DataSize)

	// The CBR byte formula and the exact frame-count formula may
	// differ by up to one frame duration (26 ms at 44100 Hz).
	exact := uint32(frames * 1152 * 1000 / 44100)
	require.InDelta(t, exact, info.DurationMs, 27)
}

func TestAnalyze_SingleFrameAfterID3(t *testing.T) {
	data := append(id3v2Tag(256), mpeg1L3Frame()...)

	info, err := New().Analyze(memHost(data, true))
	require.NoError(t, err)

	require.True(t, info.Valid)
	require.Equal(t, uint32(44100), info.SampleRate)
	require.Equal(t, uint16(2), info.Channels)
	require.Equal(t, uint32(26), info.DurationMs) // 417 bytes at 128 kbps
	require.Equal(t, uint64(417), info.DataSize)
}

func TestAnalyze_TrailingID3v1Excluded(t *testing.T) {
	audio := cbrStream(mpeg1L3Frame(), 10)
	data := append(append([]byte(nil), audio...), id3v1Tag()...)

	info, err := New().Analyze(memHost(data, true))
	require.NoError(t, err)
	require.Equal(t, uint64(len(audio)), info.DataSize)
}

func TestAnalyze_XingDuration(t *testing.T) {
	const declaredFrames = 3850
	first := withXing(mpeg1L3Frame(), xingFrames, declaredFrames, 0)
	data := append(first, cbrStream(mpeg1L3Frame(), 2)...)

	info, err := New().Analyze(memHost(data, true))
	require.NoError(t, err)

	// Duration depends only on the declared frame count, not on the
	// actual byte layout.
	want := uint32(uint64(declaredFrames) * 1152 * 1000 / 44100)
	require.Equal(t, want, info.DurationMs)
	// Without a byte count the nominal first-frame bitrate is kept.
	require.Equal(t, uint32(128000), info.Bitrate)
}

func TestAnalyze_XingAverageBitrate(t *testing.T) {
	const declaredFrames = 3850
	const declaredBytes = 2_000_000
	first := withXing(mpeg1L3Frame(), xingFrames|xingBytes, declaredFrames, declaredBytes)
	data := append(first, cbrStream(mpeg1L3Frame(), 2)...)

	info, err := New().Analyze(memHost(data, true))
	require.NoError(t, err)

	durMs := uint64(declaredFrames) * 1152 * 1000 / 44100
	require.Equal(t, uint32(durMs), info.DurationMs)
	require.Equal(t, uint32(declaredBytes*8*1000/durMs), info.Bitrate)
	require.Equal(t, uint64(declaredBytes), info.DataSize)
}

func TestAnalyze_VBRIDuration(t *testing.T) {
	const declaredFrames = 4321
	first := withVBRI(mpeg1L3Frame(), declaredFrames, 1_234_567)
	data := append(first, cbrStream(mpeg1L3Frame(), 2)...)

	info, err := New().Analyze(memHost(data, true))
	require.NoError(t, err)

	want := uint32(uint64(declaredFrames) * 1152 * 1000 / 44100)
	require.Equal(t, want, info.DurationMs)
	require.Equal(t, uint64(1_234_567), info.DataSize)
}

func TestAnalyze_FallbackScanUnknownSize(t *testing.T) {
	const frames = 5
	data := cbrStream(mpeg1L3Frame(), frames)

	info, err := New().Analyze(memHost(data, false))
	require.NoError(t, err)

	require.True(t, info.Valid)
	require.Equal(t, uint32(frames*1152*1000/44100), info.DurationMs)
	require.Equal(t, uint64(len(data)), info.DataSize)
}

func TestAnalyze_MonoChannelCount(t *testing.T) {
	data := cbrStream(mpeg1L3MonoFrame(), 4)

	info, err := New().Analyze(memHost(data, true))
	require.NoError(t, err)
	require.Equal(t, uint16(1), info.Channels)
}

func TestAnalyze_ZeroLengthSource(t *testing.T) {
	info, err := New().Analyze(memHost(nil, true))
	require.ErrorIs(t, err, ErrInvalidFormat)
	require.Equal(t, ResultInvalidFormat, ResultOf(err))
	require.False(t, info.Valid)
}

func TestAnalyze_TagOnlySource(t *testing.T) {
	info, err := New().Analyze(memHost(id3v2Tag(512), true))
	require.ErrorIs(t, err, ErrInvalidFormat)
	require.False(t, info.Valid)
}

func TestAnalyze_ReadFailureIsIO(t *testing.T) {
	data := cbrStream(mpeg1L3Frame(), 10)

	// Fail at several pipeline stages: tag probe, sync, VBR region.
	for _, failAt := range []uint64{0, 5, 400} {
		info, err := New().Analyze(failingHost(data, failAt))
		require.ErrorIs(t, err, ErrIO, "failAt=%d", failAt)
		require.Equal(t, ResultIO, ResultOf(err), "failAt=%d", failAt)
		require.False(t, info.Valid, "failAt=%d", failAt)
	}
}

func TestAnalyze_Idempotent(t *testing.T) {
	data := append(id3v2Tag(64), cbrStream(mpeg1L3Frame(), 7)...)
	host := memHost(data, true)
	det := New()

	first, err := det.Analyze(host)
	require.NoError(t, err)
	second, err := det.Analyze(host)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestAnalyze_HostScratchBuffer(t *testing.T) {
	data := cbrStream(mpeg1L3Frame(), 6)
	host := memHost(data, true)
	host.Scratch = make([]byte, 4096)

	info, err := New().Analyze(host)
	require.NoError(t, err)
	require.True(t, info.Valid)
}

func TestAnalyze_GarbageNeverHangsOrPanics(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for _, size := range []int{0, 1, 3, 4, 100, 4096, 70_000} {
		data := make([]byte, size)
		rng.Read(data)

		for _, known := range []bool{true, false} {
			info, err := New().Analyze(memHost(data, known))
			if err != nil {
				require.False(t, info.Valid)
				continue
			}
			require.True(t, info.Valid)
		}
	}
}
