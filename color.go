package cutejson

import (
	"fmt"
	"io"
	"strings"

	"github.com/amterp/color"
)

// SprintfFuncer is an interface wrapper around the `color` package's functionality.
// It returns a function that formats like fmt.Sprintf and wraps the result in
// the escape codes of one color setting. *color.Color implements it, and tests
// or callers can plug in anything else that does.
type SprintfFuncer interface {
	SprintfFunc() func(format string, a ...interface{}) string
}

// colorClass indexes the token classes a ColorFormatter can color.
type colorClass int

const (
	classSpace colorClass = iota
	classComma
	classColon
	classObject
	classArray
	classFieldQuote
	classField
	classStringQuote
	classString
	classTrue
	classFalse
	classNumber
	classNull
	numColorClasses
)

// defaultAttributes holds the attributes behind each Default*Color.
var defaultAttributes = [numColorClasses][]color.Attribute{
	classComma:       {color.Bold},
	classColon:       {color.Bold},
	classObject:      {color.Bold},
	classArray:       {color.Bold},
	classFieldQuote:  {color.FgBlue, color.Bold},
	classField:       {color.FgBlue, color.Bold},
	classStringQuote: {color.FgGreen},
	classString:      {color.FgGreen},
	classNull:        {color.FgBlack, color.Bold},
}

// Default color settings, used by a ColorFormatter whose corresponding field is nil.
var (
	// DefaultSpaceColor colors line breaks, indentation and the space after a colon. Default is no color.
	DefaultSpaceColor = color.New(defaultAttributes[classSpace]...)
	// DefaultCommaColor colors ','. Default is bold.
	DefaultCommaColor = color.New(defaultAttributes[classComma]...)
	// DefaultColonColor colors the key/value ':'. Default is bold.
	DefaultColonColor = color.New(defaultAttributes[classColon]...)
	// DefaultObjectColor colors '{' and '}'. Default is bold.
	DefaultObjectColor = color.New(defaultAttributes[classObject]...)
	// DefaultArrayColor colors '[' and ']'. Default is bold.
	DefaultArrayColor = color.New(defaultAttributes[classArray]...)
	// DefaultFieldQuoteColor colors the quotes around an object key. Default is bold blue.
	DefaultFieldQuoteColor = color.New(defaultAttributes[classFieldQuote]...)
	// DefaultFieldColor colors the text of an object key. Default is bold blue.
	DefaultFieldColor = color.New(defaultAttributes[classField]...)
	// DefaultStringQuoteColor colors the quotes around a string value. Default is green.
	DefaultStringQuoteColor = color.New(defaultAttributes[classStringQuote]...)
	// DefaultStringColor colors the text of a string value. Default is green.
	DefaultStringColor = color.New(defaultAttributes[classString]...)
	// DefaultTrueColor colors the literal true. Default is no color.
	DefaultTrueColor = color.New(defaultAttributes[classTrue]...)
	// DefaultFalseColor colors the literal false. Default is no color.
	DefaultFalseColor = color.New(defaultAttributes[classFalse]...)
	// DefaultNumberColor colors number literals. Default is no color.
	DefaultNumberColor = color.New(defaultAttributes[classNumber]...)
	// DefaultNullColor colors the literal null. Default is bold black (often appears gray).
	DefaultNullColor = color.New(defaultAttributes[classNull]...)
)

// ColorFormatter formats like Format and additionally colorizes every token.
// Removing the escape codes from its output gives exactly what Format returns
// for the same Config.
//
// Because the input is never parsed, token classes are inferred from the scan:
// a string literal directly followed by a colon is treated as a key, bare words
// outside strings are matched against true, false and null, and anything else
// starting with a digit or '-' is a number. Bare words that match nothing are
// written uncolored.
type ColorFormatter struct {
	// Config controls indentation. It is required.
	Config *Config

	// ForceColor makes the default colors ignore NO_COLOR and terminal
	// detection. Colors set explicitly below are used as given.
	ForceColor bool

	// If a color field is nil, the corresponding Default*Color is used.
	SpaceColor       SprintfFuncer
	CommaColor       SprintfFuncer
	ColonColor       SprintfFuncer
	ObjectColor      SprintfFuncer
	ArrayColor       SprintfFuncer
	FieldQuoteColor  SprintfFuncer
	FieldColor       SprintfFuncer
	StringQuoteColor SprintfFuncer
	StringColor      SprintfFuncer
	TrueColor        SprintfFuncer
	FalseColor       SprintfFuncer
	NumberColor      SprintfFuncer
	NullColor        SprintfFuncer
}

// NewColorFormatter returns a ColorFormatter using cfg and the default colors.
func NewColorFormatter(cfg *Config) *ColorFormatter {
	return &ColorFormatter{Config: cfg}
}

// Format writes the colorized form of src to dst. It does not add a trailing
// newline. An empty src writes nothing.
func (f *ColorFormatter) Format(dst io.Writer, src []byte) error {
	if len(src) == 0 {
		return nil
	}
	if err := f.Config.validate(); err != nil {
		return err
	}
	e := newColorEmitter(f.palette(), dst)
	newScanState(f.Config, e).scan(string(src))
	if err := e.finish(); err != nil {
		return fmt.Errorf("cutejson: failed to write colorized output: %w", err)
	}
	return nil
}

// Sprint returns the colorized form of source.
func (f *ColorFormatter) Sprint(source string) (string, error) {
	var b strings.Builder
	if err := f.Format(&b, []byte(source)); err != nil {
		return "", err
	}
	return b.String(), nil
}

// palette resolves every class to the configured color, falling back to the
// defaults.
func (f *ColorFormatter) palette() [numColorClasses]SprintfFuncer {
	p := [numColorClasses]SprintfFuncer{
		f.SpaceColor, f.CommaColor, f.ColonColor, f.ObjectColor, f.ArrayColor,
		f.FieldQuoteColor, f.FieldColor, f.StringQuoteColor, f.StringColor,
		f.TrueColor, f.FalseColor, f.NumberColor, f.NullColor,
	}
	defaults := [numColorClasses]SprintfFuncer{
		DefaultSpaceColor, DefaultCommaColor, DefaultColonColor, DefaultObjectColor, DefaultArrayColor,
		DefaultFieldQuoteColor, DefaultFieldColor, DefaultStringQuoteColor, DefaultStringColor,
		DefaultTrueColor, DefaultFalseColor, DefaultNumberColor, DefaultNullColor,
	}
	for class := range p {
		switch {
		case p[class] != nil:
		case f.ForceColor:
			c := color.New(defaultAttributes[class]...)
			c.EnableColor()
			p[class] = c
		default:
			p[class] = defaults[class]
		}
	}
	return p
}

type sprintfFunc func(format string, a ...interface{}) string

// colorEmitter groups consecutive output of the same kind into runs and
// writes each run through its color. A closed string literal is held back
// until the next token shows whether it was a key.
type colorEmitter struct {
	w   io.Writer
	err error // First write error; later writes are skipped.

	colors [numColorClasses]sprintfFunc

	run     []byte
	runKind tokenKind

	inString bool   // Between an opening and a closing quote.
	str      []byte // Text of the current or held-back string literal.
	held     bool   // A closed string literal is waiting for classification.
}

func newColorEmitter(p [numColorClasses]SprintfFuncer, w io.Writer) *colorEmitter {
	e := &colorEmitter{w: w}
	for class, c := range p {
		e.colors[class] = c.SprintfFunc()
	}
	return e
}

func (e *colorEmitter) emitByte(kind tokenKind, c byte) {
	if buf := e.route(kind); buf != nil {
		*buf = append(*buf, c)
	}
}

func (e *colorEmitter) emitString(kind tokenKind, s string) {
	if buf := e.route(kind); buf != nil {
		*buf = append(*buf, s...)
	}
}

// route updates the string and run state for a token of the given kind and
// returns the buffer its text belongs in, or nil for quotes, which are
// written when their literal is flushed.
func (e *colorEmitter) route(kind tokenKind) *[]byte {
	if e.inString {
		if kind == tokQuote {
			e.inString = false
			e.held = true
			return nil
		}
		// Whatever the scanner emits between quotes, including the braces it
		// treats as structural there, belongs to the literal.
		return &e.str
	}
	if e.held {
		e.writeStringLiteral(kind == tokColon)
	}
	if kind == tokQuote {
		e.flushRun()
		e.inString = true
		e.str = e.str[:0]
		return nil
	}
	if len(e.run) > 0 && kind != e.runKind {
		e.flushRun()
	}
	e.runKind = kind
	return &e.run
}

// finish flushes everything still buffered. An unterminated string literal
// is written as a string value.
func (e *colorEmitter) finish() error {
	if e.inString {
		e.write(classStringQuote, `"`)
		if len(e.str) > 0 {
			e.write(classString, string(e.str))
		}
		e.inString = false
	}
	if e.held {
		e.writeStringLiteral(false)
	}
	e.flushRun()
	return e.err
}

func (e *colorEmitter) writeStringLiteral(key bool) {
	quote, content := classStringQuote, classString
	if key {
		quote, content = classFieldQuote, classField
	}
	e.write(quote, `"`)
	if len(e.str) > 0 {
		e.write(content, string(e.str))
	}
	e.write(quote, `"`)
	e.str = e.str[:0]
	e.held = false
}

func (e *colorEmitter) flushRun() {
	if len(e.run) == 0 {
		return
	}
	text := string(e.run)
	e.run = e.run[:0]
	switch e.runKind {
	case tokSpace:
		e.write(classSpace, text)
	case tokComma:
		e.write(classComma, text)
	case tokColon:
		e.write(classColon, text)
	case tokObject:
		e.write(classObject, text)
	case tokArray:
		e.write(classArray, text)
	case tokLiteral:
		e.writeLiteral(text)
	default:
		e.writeRaw(text)
	}
}

func (e *colorEmitter) writeLiteral(text string) {
	switch {
	case text == "true":
		e.write(classTrue, text)
	case text == "false":
		e.write(classFalse, text)
	case text == "null":
		e.write(classNull, text)
	case text[0] == '-' || (text[0] >= '0' && text[0] <= '9'):
		e.write(classNumber, text)
	default:
		e.writeRaw(text)
	}
}

func (e *colorEmitter) write(class colorClass, text string) {
	e.writeRaw(e.colors[class]("%s", text))
}

func (e *colorEmitter) writeRaw(text string) {
	if e.err != nil {
		return
	}
	_, e.err = io.WriteString(e.w, text)
}
