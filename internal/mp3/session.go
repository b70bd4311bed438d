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

// Package mp3 determines playback duration, sample rate, channel count
// and bitrate of an MPEG audio elementary stream, given only
// random-access byte reads over an opaque source supplied by a host.
//
// The engine performs a single forward pass: ID3 tag skip, frame
// synchronization, first-frame header decode, Xing/VBRI extraction and
// duration estimation. It never decodes audio. Full decoding stays
// with the caller (see the probe command's cross-check).
package mp3

import "fmt"

// Log levels passed to a host LogFunc.
const (
	LogDebug = iota
	LogInfo
	LogWarn
	LogError
)

// LogFunc receives diagnostic messages from the engine. It is purely
// informational and never affects control flow.
type LogFunc func(level int, msg string)

// HostAPI is the set of capabilities a host supplies for one analysis.
//
// ReadAt is the only required capability. It must support reads at
// arbitrary offsets; returning fewer bytes than requested with a nil
// error signals end of source. Short reads are never retried.
//
// Scratch, when provided, is used for all buffering so the engine
// performs no allocation of its own. It must hold at least 512 bytes
// to be used.
type HostAPI struct {
	// ReadAt fills dst from the given byte offset of the source.
	ReadAt func(offset uint64, dst []byte) (int, error)

	// SourceSize is the total size of the source in bytes, or 0 when
	// unknown.
	SourceSize uint64

	// Log, when non-nil, receives diagnostic messages.
	Log LogFunc

	// Scratch optionally provides the engine's working buffer.
	Scratch []byte
}

// engine is the parsing capability behind a Detector. A Detector
// without one reports ResultNotImplemented, which replaces the
// link-time stub-override idiom of native builds with an explicit
// default.
type engine interface {
	analyze(host HostAPI) (AudioInfo, error)
}

type frameEngine struct{}

func (frameEngine) analyze(host HostAPI) (AudioInfo, error) {
	return runAnalysis(host)
}

// Detector is a stateless handle over the analysis engine. Detectors
// are cheap values: construct as many as needed, share them freely.
type Detector struct {
	eng engine
}

// New returns a Detector wired to the frame-parsing engine.
func New() Detector {
	return Detector{eng: frameEngine{}}
}

// NewSession validates the host capabilities and opens an analysis
// session. The host's ReadAt callback is required.
func (d Detector) NewSession(host HostAPI) (*Session, error) {
	if host.ReadAt == nil {
		return nil, fmt.Errorf("host API has no read callback: %w", ErrInvalidArg)
	}
	return &Session{det: d, host: host}, nil
}

// Analyze is the one-shot convenience: open a session, run it, close
// it.
func (d Detector) Analyze(host HostAPI) (AudioInfo, error) {
	s, err := d.NewSession(host)
	if err != nil {
		return AudioInfo{}, err
	}
	defer s.Close()
	return s.Run()
}

// Session binds a Detector to one host source. Run may be called any
// number of times before Close; each call is an independent analysis
// over the same source. A Session must not be used concurrently.
type Session struct {
	det    Detector
	host   HostAPI
	closed bool
}

// Run performs one full analysis and returns the populated output
// record. On error the record is zero and must not be trusted;
// ResultOf maps the error to its numeric code.
func (s *Session) Run() (AudioInfo, error) {
	if s == nil {
		return AudioInfo{}, fmt.Errorf("nil session: %w", ErrInvalidPtr)
	}
	if s.closed {
		return AudioInfo{}, fmt.Errorf("session already closed: %w", ErrInternal)
	}
	if s.det.eng == nil {
		return AudioInfo{}, fmt.Errorf("detector has no engine: %w", ErrNotImplemented)
	}
	return s.det.eng.analyze(s.host)
}

// Close tears the session down. Closing a session that never ran is
// fine; running a closed session is not. Close is idempotent.
func (s *Session) Close() error {
	if s == nil {
		return fmt.Errorf("nil session: %w", ErrInvalidPtr)
	}
	s.closed = true
	return nil
}
