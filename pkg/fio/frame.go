package fio

import (
	"bytes"
	"encoding/json"
	"io"
)

// FrameAssembler collects chunks of fio's stdout and hands back complete
// JSON status reports. fio does not newline-delimit its reports, so a frame
// is recognised once the buffered text starts with '{' and ends with '}'
// and decodes as one or more whole objects.
type FrameAssembler struct {
	buf       []byte
	discarded int
	// skip is set while the rest of an invalid object is being dropped.
	skip *objectSkipper
}

// Feed appends chunk to the buffer and returns the frames it completed, in
// stream order. The returned slices are owned by the caller.
func (a *FrameAssembler) Feed(chunk []byte) [][]byte {
	a.buf = append(a.buf, chunk...)
	if a.skip != nil && !a.resync() {
		return nil
	}
	a.dropNoise()
	if !isCandidateFrame(a.buf) {
		return nil
	}
	return a.drain()
}

// Close ends the stream. Whatever is still buffered can never complete and
// is dropped. It returns the number of bytes dropped.
func (a *FrameAssembler) Close() int {
	n := len(bytes.TrimSpace(a.buf))
	a.discarded += n
	a.buf = nil
	a.skip = nil
	return n
}

// Discarded is the number of non-whitespace bytes dropped so far.
func (a *FrameAssembler) Discarded() int {
	return a.discarded
}

// Buffered is the number of bytes waiting for the rest of a frame.
func (a *FrameAssembler) Buffered() int {
	return len(a.buf)
}

func isCandidateFrame(buf []byte) bool {
	trimmed := bytes.TrimSpace(buf)
	return len(trimmed) >= 2 && trimmed[0] == '{' && trimmed[len(trimmed)-1] == '}'
}

// dropNoise removes everything ahead of the first '{'. fio only ever prints
// objects on stdout, so anything else there is not part of a frame.
func (a *FrameAssembler) dropNoise() {
	trimmed := bytes.TrimLeft(a.buf, " \t\r\n")
	if len(trimmed) == 0 {
		a.buf = a.buf[:0]
		return
	}
	if trimmed[0] == '{' {
		a.buf = trimmed
		return
	}
	idx := bytes.IndexByte(trimmed, '{')
	if idx < 0 {
		a.discarded += len(bytes.TrimSpace(trimmed))
		a.buf = a.buf[:0]
		return
	}
	a.discarded += len(bytes.TrimSpace(trimmed[:idx]))
	a.buf = trimmed[idx:]
}

// drain decodes whole objects off the front of the buffer. A truncated
// object stays buffered for the next Feed; an object with invalid bytes is
// dropped whole, including any objects nested inside it.
func (a *FrameAssembler) drain() [][]byte {
	var frames [][]byte
	for {
		a.dropNoise()
		if len(a.buf) == 0 {
			a.buf = nil
			return frames
		}
		dec := json.NewDecoder(bytes.NewReader(a.buf))
		var frame json.RawMessage
		err := dec.Decode(&frame)
		switch {
		case err == nil:
			frames = append(frames, frame)
			a.buf = a.buf[dec.InputOffset():]
		case err == io.EOF || err == io.ErrUnexpectedEOF:
			return frames
		default:
			a.skip = &objectSkipper{depth: 1}
			a.buf = a.buf[1:]
			a.discarded++
			if !a.resync() {
				return frames
			}
		}
	}
}

// resync drops buffered bytes until the next object starts. It reports
// false when the buffer ran out first; skipping then carries on in the
// next Feed.
func (a *FrameAssembler) resync() bool {
	idx := a.skip.scan(a.buf)
	if idx < 0 {
		a.discarded += len(bytes.TrimSpace(a.buf))
		a.buf = a.buf[:0]
		return false
	}
	a.discarded += len(bytes.TrimSpace(a.buf[:idx]))
	a.buf = a.buf[idx:]
	a.skip = nil
	return true
}

// objectSkipper tracks nesting through the remainder of an invalid object.
// A new object starts at a '{' outside any string at depth 0, or at a '{'
// in the first column, which is where fio starts every report.
type objectSkipper struct {
	depth     int
	inString  bool
	escaped   bool
	lineStart bool
}

// scan returns the offset in b of the '{' that starts the next object, or
// -1 if b holds none.
func (s *objectSkipper) scan(b []byte) int {
	for i, c := range b {
		lineStart := s.lineStart
		s.lineStart = c == '\n'
		if s.inString {
			switch {
			case s.escaped:
				s.escaped = false
			case c == '\\':
				s.escaped = true
			case c == '"' || c == '\n':
				s.inString = false
			}
			continue
		}
		switch c {
		case '"':
			s.inString = true
		case '{':
			if s.depth == 0 || lineStart {
				return i
			}
			s.depth++
		case '}':
			if s.depth > 0 {
				s.depth--
			}
		}
	}
	return -1
}
