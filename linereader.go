package mdt

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// ErrLineTooLong is returned by Load and LoadReader when an input line
// exceeds the per-line limit.
var ErrLineTooLong = errors.New("mdt: input line exceeds 64KiB")

const maxLineLen = 64 * 1024

// lineReader yields one newline-stripped line per call with a one-line
// pushback buffer, so the block scanner can peek at the next line
// without consuming it.
type lineReader struct {
	br       *bufio.Reader
	pushback string
	buffered bool
	err      error
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{br: bufio.NewReaderSize(r, maxLineLen)}
}

// next returns the next line with its trailing newline (and any
// carriage return) removed. ok is false at end of input or on error.
func (lr *lineReader) next() (line string, ok bool) {
	if lr.buffered {
		lr.buffered = false
		line = lr.pushback
		lr.pushback = ""
		return line, true
	}
	if lr.err != nil {
		return "", false
	}
	return lr.read()
}

// peek returns the next line without consuming it.
func (lr *lineReader) peek() (line string, ok bool) {
	if lr.buffered {
		return lr.pushback, true
	}
	line, ok = lr.read()
	if ok {
		lr.pushback = line
		lr.buffered = true
	}
	return line, ok
}

func (lr *lineReader) read() (string, bool) {
	if lr.err != nil {
		return "", false
	}
	slice, err := lr.br.ReadSlice('\n')
	switch {
	case err == nil:
	case errors.Is(err, bufio.ErrBufferFull):
		lr.err = ErrLineTooLong
		return "", false
	case errors.Is(err, io.EOF):
		lr.err = io.EOF
		if len(slice) == 0 {
			return "", false
		}
	default:
		lr.err = err
		return "", false
	}
	line := string(slice)
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, true
}

// failure reports a non-EOF read error, if one occurred.
func (lr *lineReader) failure() error {
	if lr.err != nil && !errors.Is(lr.err, io.EOF) {
		return lr.err
	}
	return nil
}
