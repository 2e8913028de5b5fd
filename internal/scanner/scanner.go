package scanner

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"emblem/internal/source"

	"fortio.org/safecast"
)

// Scanner is a forward cursor over one file. It keeps the current
// source.Point up to date, so line and column never need recomputing.
type Scanner struct {
	file  *source.File
	text  string
	pt    source.Point
	limit uint32
}

// New creates a scanner positioned at the first byte of f.
func New(f *source.File) *Scanner {
	limit, err := safecast.Conv[uint32](len(f.Text))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return &Scanner{
		file:  f,
		text:  f.Text,
		pt:    source.StartOf(f.ID),
		limit: limit,
	}
}

// File returns the scanned file.
func (s *Scanner) File() *source.File { return s.file }

// Point returns the current position.
func (s *Scanner) Point() source.Point { return s.pt }

// Off is shorthand for Point().Off.
func (s *Scanner) Off() uint32 { return s.pt.Off }

// EOF проверяет, достигнут ли конец файла
func (s *Scanner) EOF() bool {
	return s.pt.Off >= s.limit
}

// Rest returns the unread text.
func (s *Scanner) Rest() string {
	return s.text[s.pt.Off:]
}

// Peek читает текущий байт, если есть, иначе возвращает 0
func (s *Scanner) Peek() byte {
	if s.EOF() {
		return 0
	}
	return s.text[s.pt.Off]
}

// PeekAt returns the byte n positions ahead, or 0 past the end.
func (s *Scanner) PeekAt(n int) byte {
	i := int(s.pt.Off) + n
	if n < 0 || i >= int(s.limit) {
		return 0
	}
	return s.text[i]
}

// PeekRune decodes the rune at the cursor; size is 0 at EOF.
func (s *Scanner) PeekRune() (r rune, size int) {
	if s.EOF() {
		return utf8.RuneError, 0
	}
	b := s.text[s.pt.Off]
	if b < utf8.RuneSelf {
		return rune(b), 1
	}
	return utf8.DecodeRuneInString(s.text[s.pt.Off:])
}

// HasPrefix reports whether the unread text starts with lit.
func (s *Scanner) HasPrefix(lit string) bool {
	return strings.HasPrefix(s.Rest(), lit)
}

// Eat consumes lit when the unread text starts with it. Nothing moves on
// failure.
func (s *Scanner) Eat(lit string) bool {
	if lit == "" || !s.HasPrefix(lit) {
		return false
	}
	s.advance(len(lit))
	return true
}

// EatByte consumes b if it is the next byte.
func (s *Scanner) EatByte(b byte) bool {
	if s.Peek() != b || s.EOF() {
		return false
	}
	s.advance(1)
	return true
}

// Bump consumes one rune and returns it; it returns 0 at EOF.
func (s *Scanner) Bump() rune {
	r, size := s.PeekRune()
	if size == 0 {
		return 0
	}
	s.advance(size)
	return r
}

// TakeWhile consumes the longest run of runes satisfying pred and returns it.
func (s *Scanner) TakeWhile(pred func(rune) bool) string {
	start := s.pt.Off
	for !s.EOF() {
		r, size := s.PeekRune()
		if !pred(r) {
			break
		}
		s.advance(size)
	}
	return s.text[start:s.pt.Off]
}

// TakeBytesWhile is TakeWhile for ASCII-only predicates.
func (s *Scanner) TakeBytesWhile(pred func(byte) bool) string {
	start := s.pt.Off
	n := 0
	rest := s.Rest()
	for n < len(rest) && pred(rest[n]) {
		n++
	}
	s.advance(n)
	return s.text[start:s.pt.Off]
}

// Mark это метка, что бы быстро получать Span читаемого фрагмента
type Mark struct {
	pt source.Point
}

// Point returns the position stored in the mark.
func (m Mark) Point() source.Point { return m.pt }

// Mark сохраняет текущую позицию курсора
func (s *Scanner) Mark() Mark {
	return Mark{pt: s.pt}
}

// Reset возвращает курсор назад к метке
func (s *Scanner) Reset(m Mark) {
	s.pt = m.pt
}

// SpanFrom получает Span для фрагмента, начиная с метки
func (s *Scanner) SpanFrom(m Mark) source.Span {
	return source.Span{File: s.file.ID, Start: m.pt.Off, End: s.pt.Off}
}

// LocationFrom is SpanFrom with line and column information.
func (s *Scanner) LocationFrom(m Mark) source.Location {
	return source.Location{Start: m.pt, End: s.pt}
}

// TextFrom returns the text consumed since m.
func (s *Scanner) TextFrom(m Mark) string {
	return s.text[m.pt.Off:s.pt.Off]
}

// SpanAhead returns the span of the next n bytes without consuming them.
func (s *Scanner) SpanAhead(n int) source.Span {
	end := min(int(s.pt.Off)+n, int(s.limit))
	return source.Span{File: s.file.ID, Start: s.pt.Off, End: offset(end)}
}

func (s *Scanner) advance(n int) {
	chunk := s.text[s.pt.Off : int(s.pt.Off)+n]
	for i := 0; i < len(chunk); i++ {
		switch c := chunk[i]; {
		case c == '\n':
			s.pt.Line++
			s.pt.Col = 1
		case c&0xC0 != 0x80:
			s.pt.Col++
		}
	}
	s.pt.Off += offset(n)
}

func offset(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("scanner offset overflow: %w", err))
	}
	return v
}
