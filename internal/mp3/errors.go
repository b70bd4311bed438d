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

import "errors"

// Result is the numeric outcome of an analysis. The values are part of
// the host-facing contract and must not be renumbered.
type Result uint8

const (
	ResultOK             Result = 0
	ResultInvalidPtr     Result = 1
	ResultInvalidArg     Result = 2
	ResultOutOfMemory    Result = 3
	ResultIO             Result = 4
	ResultInvalidFormat  Result = 5
	ResultNotImplemented Result = 6
	ResultInternal       Result = 7
	ResultUnknown        Result = 255
)

func (r Result) String() string {
	switch r {
	case ResultOK:
		return "OK"
	case ResultInvalidPtr:
		return "invalid pointer"
	case ResultInvalidArg:
		return "invalid argument"
	case ResultOutOfMemory:
		return "out of memory"
	case ResultIO:
		return "I/O error"
	case ResultInvalidFormat:
		return "invalid MP3 format"
	case ResultNotImplemented:
		return "analyzer engine is not available"
	case ResultInternal:
		return "internal error"
	case ResultUnknown:
		return "unknown error"
	}
	return "unknown error code"
}

// Sentinel errors for the failure classes an analysis can surface.
// Errors returned by this package wrap exactly one of them.
var (
	ErrInvalidPtr     = errors.New("invalid pointer")
	ErrInvalidArg     = errors.New("invalid argument")
	ErrOutOfMemory    = errors.New("out of memory")
	ErrIO             = errors.New("read failed")
	ErrInvalidFormat  = errors.New("invalid MP3 format")
	ErrNotImplemented = errors.New("analyzer engine is not available")
	ErrInternal       = errors.New("internal error")
)

// ResultOf maps an error chain to its Result code. A nil error is OK;
// an error that wraps none of the package sentinels is Unknown.
func ResultOf(err error) Result {
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, ErrInvalidPtr):
		return ResultInvalidPtr
	case errors.Is(err, ErrInvalidArg):
		return ResultInvalidArg
	case errors.Is(err, ErrOutOfMemory):
		return ResultOutOfMemory
	case errors.Is(err, ErrIO):
		return ResultIO
	case errors.Is(err, ErrInvalidFormat):
		return ResultInvalidFormat
	case errors.Is(err, ErrNotImplemented):
		return ResultNotImplemented
	case errors.Is(err, ErrInternal):
		return ResultInternal
	}
	return ResultUnknown
}
