package stdfmt

import (
	"io"
)

// sink is the emit capability the formatting algorithm writes through. The
// three strategies differ only in what emit does with the text.
type sink interface {
	emit(s string)
}

// appendSink grows a caller-owned buffer without bound.
type appendSink struct {
	buf []byte
}

func (s *appendSink) emit(str string) { s.buf = append(s.buf, str...) }

// writerSink forwards to an io.Writer and keeps the first write error.
type writerSink struct {
	w   io.Writer
	n   int
	err error
}

func (s *writerSink) emit(str string) {
	if s.err != nil {
		return
	}
	n, err := io.WriteString(s.w, str)
	s.n += n
	s.err = err
}

// boundedSink copies into dst until it is full and keeps counting after.
type boundedSink struct {
	dst  []byte
	n    int
	size int
}

func (s *boundedSink) emit(str string) {
	if s.n < len(s.dst) {
		s.n += copy(s.dst[s.n:], str)
	}
	s.size += len(str)
}

// countSink only counts.
type countSink struct {
	size int
}

func (s *countSink) emit(str string) { s.size += len(str) }
