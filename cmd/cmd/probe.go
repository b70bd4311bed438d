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
package cmd

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/spf13/cobra"

	"github.com/pavelkvkv/mp3DurationDetector/internal/logger"
	"github.com/pavelkvkv/mp3DurationDetector/internal/mp3"
	fmtutil "github.com/pavelkvkv/mp3DurationDetector/pkg/util/format"
)

func DefineProbeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "probe <file>...",
		Short:        "Analyze MP3 files and report duration, sample rate, channels and bitrate",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE:         RunProbe,
	}

	cmd.Flags().String("log-level", "ERROR", "minimum level of engine diagnostics (DEBUG, INFO, WARN, ERROR)")
	cmd.Flags().Bool("decode", false, "cross-check the reported duration by fully decoding each file")

	return cmd
}

func RunProbe(cmd *cobra.Command, args []string) error {
	levelStr, _ := cmd.Flags().GetString("log-level")
	decode, _ := cmd.Flags().GetBool("decode")

	lg := logger.New(os.Stderr, logger.ParseLevel(levelStr))
	det := mp3.New()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FILE\tDURATION\tSAMPLE RATE\tCHANNELS\tBITRATE\tDATA SIZE")

	var firstErr error
	for _, path := range args {
		info, err := probeFile(det, lg, path)
		if err != nil {
			lg.Errorf("%s: %v", path, err)
			fmt.Fprintf(w, "%s\t(%s)\t\t\t\t\n", path, mp3.ResultOf(err))
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		fmt.Fprintf(w, "%s\t%s\t%d Hz\t%d\t%d kbps\t%s\n",
			path,
			fmtutil.FormatDuration(time.Duration(info.DurationMs)*time.Millisecond),
			info.SampleRate,
			info.Channels,
			info.Bitrate/1000,
			fmtutil.FormatBytes(int64(info.DataSize)),
		)

		if decode {
			crossCheck(path, info)
		}
	}

	if err := w.Flush(); err != nil {
		return err
	}
	return firstErr
}

func probeFile(det mp3.Detector, lg *logger.Logger, path string) (mp3.AudioInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return mp3.AudioInfo{}, err
	}
	defer f.Close()

	finfo, err := f.Stat()
	if err != nil {
		return mp3.AudioInfo{}, err
	}

	host := mp3.HostAPI{
		ReadAt: func(offset uint64, dst []byte) (int, error) {
			n, err := f.ReadAt(dst, int64(offset))
			if err == io.EOF {
				// A short read with no error is how the engine learns
				// the source ended.
				return n, nil
			}
			return n, err
		},
		SourceSize: uint64(finfo.Size()),
		Log: func(level int, msg string) {
			lg.Log(logger.Level(level), msg)
		},
	}
	return det.Analyze(host)
}

// crossCheck decodes the whole file and compares the PCM length with
// the header-derived duration. Purely informational.
func crossCheck(path string, info mp3.AudioInfo) {
	f, err := os.Open(path)
	if err != nil {
		fmt.Printf("[WARN] %s: decode check failed: %v\n", path, err)
		return
	}
	defer f.Close()

	dec, err := gomp3.NewDecoder(f)
	if err != nil {
		fmt.Printf("[WARN] %s: decode check failed: %v\n", path, err)
		return
	}

	// The decoder always emits 16-bit stereo, 4 bytes per sample.
	samples := dec.Length() / 4
	decodedMs := samples * 1000 / int64(dec.SampleRate())

	delta := decodedMs - int64(info.DurationMs)
	if delta < 0 {
		delta = -delta
	}

	fmt.Printf("[INFO] %s: decoded duration %s (header analysis %s)\n",
		path,
		fmtutil.FormatDuration(time.Duration(decodedMs)*time.Millisecond),
		fmtutil.FormatDuration(time.Duration(info.DurationMs)*time.Millisecond),
	)
	if delta > 500 {
		fmt.Printf("[WARN] %s: decoded and estimated durations differ by %d ms\n", path, delta)
	}
}
