package engine

import "strings"

// kwPrefix marks keyword names rewritten by preprocessSource.
const kwPrefix = "__kw_"

// preprocessSource rewrites sketch source into something zygomys accepts:
//
//  1. :keyword becomes the string literal "__kw_keyword", so keywords never
//     collide with user variables.
//  2. kebab-case identifiers become snake_case, since zygomys reads a
//     hyphen as subtraction.
//  3. ; line comments become // comments.
//
// String literals are left alone.
func preprocessSource(source string) string {
	s := sourceScanner{src: source}
	s.out.Grow(len(source) + len(source)/4)
	for s.pos < len(s.src) {
		switch c := s.src[s.pos]; {
		case c == '"':
			s.quoted('"', true)
		case c == '`':
			s.quoted('`', false)
		case c == ';':
			s.comment()
		case c == ':' && s.peek(1) == '=':
			s.copy(2)
		case c == ':' && isLetter(s.peek(1)):
			s.keyword()
		case c == '-' && s.pos > 0 && isIdentChar(s.src[s.pos-1]) && isLetter(s.peek(1)):
			s.out.WriteByte('_')
			s.pos++
		default:
			s.copy(1)
		}
	}
	return s.out.String()
}

type sourceScanner struct {
	src string
	pos int
	out strings.Builder
}

// peek returns the byte n positions ahead, or 0 past the end.
func (s *sourceScanner) peek(n int) byte {
	if s.pos+n < len(s.src) {
		return s.src[s.pos+n]
	}
	return 0
}

func (s *sourceScanner) copy(n int) {
	end := min(s.pos+n, len(s.src))
	s.out.WriteString(s.src[s.pos:end])
	s.pos = end
}

// quoted copies a string literal through its closing quote. An unterminated
// literal runs to the end of the source.
func (s *sourceScanner) quoted(quote byte, escapes bool) {
	end := s.pos + 1
	for end < len(s.src) && s.src[end] != quote {
		if escapes && s.src[end] == '\\' {
			end++
		}
		end++
	}
	s.copy(end + 1 - s.pos)
}

// comment turns a run of semicolons into // and copies the rest of the line.
func (s *sourceScanner) comment() {
	s.out.WriteString("//")
	for s.pos < len(s.src) && s.src[s.pos] == ';' {
		s.pos++
	}
	end := strings.IndexByte(s.src[s.pos:], '\n')
	if end < 0 {
		end = len(s.src) - s.pos
	}
	s.copy(end)
}

func (s *sourceScanner) keyword() {
	end := s.pos + 1
	for end < len(s.src) && isKWChar(s.src[end]) {
		end++
	}
	s.out.WriteString(`"` + kwPrefix + s.src[s.pos+1:end] + `"`)
	s.pos = end
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isIdentChar(c) || c == '-'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}
