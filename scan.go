package cutejson

import "strings"

// tokenKind classifies an emitted piece of output so that an emitter can
// decorate it. The scanner itself never looks past the current byte.
type tokenKind int

const (
	tokLiteral tokenKind = iota // Content outside a string literal (numbers, true, false, null, junk).
	tokString                   // Content inside a string literal, including an escaped quote.
	tokQuote                    // A quote that opens or closes a string literal.
	tokColon                    // A structural ':'.
	tokComma                    // A ','.
	tokObject                   // '{' or '}'.
	tokArray                    // A structural '[' or ']'.
	tokSpace                    // Line breaks, indentation and the space after a colon.
)

// emitter receives the scanner's output.
type emitter interface {
	emitByte(kind tokenKind, c byte)
	emitString(kind tokenKind, s string)
}

// builderEmitter appends everything to a strings.Builder, ignoring token kinds.
type builderEmitter struct {
	b *strings.Builder
}

func (e builderEmitter) emitByte(_ tokenKind, c byte)     { e.b.WriteByte(c) }
func (e builderEmitter) emitString(_ tokenKind, s string) { e.b.WriteString(s) }

// scanState is the transient state of one formatting pass.
// inString and suppressWhitespace start opposite and always toggle together.
type scanState struct {
	depth              int // Open '{' and '[' count. Unbalanced input can drive it negative.
	inString           bool
	suppressWhitespace bool

	unit   string // One indentation level.
	indent string // Cached repetitions of unit, grown on demand.
	out    emitter
}

func newScanState(cfg *Config, out emitter) *scanState {
	return &scanState{
		suppressWhitespace: true,
		unit:               cfg.unit(),
		out:                out,
	}
}

// scan walks src byte by byte. Every byte the dispatch cares about is ASCII,
// and UTF-8 continuation bytes never are, so multi-byte runes pass through
// untouched.
func (s *scanState) scan(src string) {
	for i := 0; i < len(src); i++ {
		c := src[i]
		switch c {
		case '\t', ' ', '\n':
			if !s.suppressWhitespace {
				s.out.emitByte(s.contentKind(), c)
			}
		case ':':
			if s.inString {
				s.out.emitByte(tokString, c)
			} else {
				s.out.emitByte(tokColon, c)
				s.out.emitByte(tokSpace, ' ')
			}
		case '"':
			// Only the raw previous byte is consulted; there is no escape
			// resolution, and a quote at offset 0 never toggles.
			if i > 0 && src[i-1] != '\\' {
				s.out.emitByte(tokQuote, c)
				s.inString = !s.inString
				s.suppressWhitespace = !s.suppressWhitespace
			} else {
				s.out.emitByte(s.contentKind(), c)
			}
		case '[':
			if s.inString {
				s.out.emitByte(tokString, c)
			} else {
				s.out.emitByte(tokArray, c)
				s.depth++
				s.newline()
			}
		case '{':
			// Braces are structural even inside a string literal.
			s.out.emitByte(tokObject, c)
			s.depth++
			s.newline()
		case ']':
			if s.inString {
				s.out.emitByte(tokString, c)
			} else {
				s.depth--
				s.newline()
				s.out.emitByte(tokArray, c)
			}
		case '}':
			s.depth--
			s.newline()
			s.out.emitByte(tokObject, c)
		case ',':
			if s.inString {
				s.out.emitByte(tokString, c)
			} else {
				s.out.emitByte(tokComma, c)
				s.newline()
			}
		default:
			s.out.emitByte(s.contentKind(), c)
		}
	}
}

func (s *scanState) contentKind() tokenKind {
	if s.inString {
		return tokString
	}
	return tokLiteral
}

// newline emits "\n" followed by depth indentation units. A negative depth
// renders as no indentation.
func (s *scanState) newline() {
	s.out.emitByte(tokSpace, '\n')
	if s.depth <= 0 || s.unit == "" {
		return
	}
	n := len(s.unit) * s.depth
	if len(s.indent) < n {
		s.indent = strings.Repeat(s.unit, s.depth)
	}
	s.out.emitString(tokSpace, s.indent[:n])
}
