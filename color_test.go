package cutejson

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"testing"

	"github.com/amterp/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tag wraps its text in <tag>...</tag> so tests can see which color was used.
type tag string

func (t tag) SprintfFunc() func(format string, a ...interface{}) string {
	return func(format string, a ...interface{}) string {
		return "<" + string(t) + ">" + fmt.Sprintf(format, a...) + "</" + string(t) + ">"
	}
}

// plain leaves text untouched.
type plain struct{}

func (plain) SprintfFunc() func(format string, a ...interface{}) string {
	return fmt.Sprintf
}

func taggedFormatter(cfg *Config) *ColorFormatter {
	return &ColorFormatter{
		Config:           cfg,
		SpaceColor:       tag("sp"),
		CommaColor:       tag("cm"),
		ColonColor:       tag("cl"),
		ObjectColor:      tag("ob"),
		ArrayColor:       tag("ar"),
		FieldQuoteColor:  tag("fq"),
		FieldColor:       tag("fd"),
		StringQuoteColor: tag("sq"),
		StringColor:      tag("st"),
		TrueColor:        tag("t"),
		FalseColor:       tag("f"),
		NumberColor:      tag("n"),
		NullColor:        tag("nl"),
	}
}

func plainFormatter(cfg *Config) *ColorFormatter {
	p := plain{}
	return &ColorFormatter{
		Config:     cfg,
		SpaceColor: p, CommaColor: p, ColonColor: p, ObjectColor: p, ArrayColor: p,
		FieldQuoteColor: p, FieldColor: p, StringQuoteColor: p, StringColor: p,
		TrueColor: p, FalseColor: p, NumberColor: p, NullColor: p,
	}
}

func TestColorFormatterTokens(t *testing.T) {
	f := taggedFormatter(mustConfig(t, Spaces, 1))

	got, err := f.Sprint(`{"name":"john"}`)
	require.NoError(t, err)
	assert.Equal(t,
		"<ob>{</ob><sp>\n </sp>"+
			`<fq>"</fq><fd>name</fd><fq>"</fq><cl>:</cl><sp> </sp>`+
			`<sq>"</sq><st>john</st><sq>"</sq>`+
			"<sp>\n</sp><ob>}</ob>",
		got)
}

func TestColorFormatterLiterals(t *testing.T) {
	f := taggedFormatter(mustConfig(t, Spaces, 0))

	got, err := f.Sprint(`[true,false,null,-1.5,x,""]`)
	require.NoError(t, err)
	assert.Equal(t,
		"<ar>[</ar><sp>\n</sp>"+
			"<t>true</t><cm>,</cm><sp>\n</sp>"+
			"<f>false</f><cm>,</cm><sp>\n</sp>"+
			"<nl>null</nl><cm>,</cm><sp>\n</sp>"+
			"<n>-1.5</n><cm>,</cm><sp>\n</sp>"+
			"x<cm>,</cm><sp>\n</sp>"+
			`<sq>"</sq><sq>"</sq>`+
			"<sp>\n</sp><ar>]</ar>",
		got)
}

func TestColorFormatterMultiByteText(t *testing.T) {
	f := taggedFormatter(mustConfig(t, Spaces, 0))

	got, err := f.Sprint(`{"ключ":"é ✓"}`)
	require.NoError(t, err)
	assert.Equal(t,
		"<ob>{</ob><sp>\n</sp>"+
			`<fq>"</fq><fd>ключ</fd><fq>"</fq><cl>:</cl><sp> </sp>`+
			`<sq>"</sq><st>é ✓</st><sq>"</sq>`+
			"<sp>\n</sp><ob>}</ob>",
		got)
}

func TestColorFormatterMatchesFormat(t *testing.T) {
	inputs := append([]string{
		`{"a":"{b}"}`,
		`"a b"`,
		`{"a":"b\\","c":1}`,
		`}}{`,
		`{"open":"never closed`,
		`{"a":"x\"y"`,
		`{"é":["ü",1],"日本":"語"}`,
	}, wellFormed...)

	for _, cfg := range []*Config{DefaultConfig(), mustConfig(t, Tabs, 0)} {
		f := plainFormatter(cfg)
		for _, src := range inputs {
			want, err := Format(src, cfg)
			require.NoError(t, err)
			got, err := f.Sprint(src)
			require.NoError(t, err)
			assert.Equal(t, want, got, "input %q", src)
		}
	}
}

func TestColorFormatterDefaults(t *testing.T) {
	f := NewColorFormatter(DefaultConfig())
	p := f.palette()
	assert.Equal(t, DefaultObjectColor, p[classObject])
	assert.Equal(t, DefaultNullColor, p[classNull])

	f.NullColor = tag("x")
	p = f.palette()
	assert.Equal(t, tag("x"), p[classNull])
	assert.Equal(t, DefaultFieldColor, p[classField])
}

var sgr = regexp.MustCompile("\x1b\\[[0-9;]*m")

func TestColorFormatterForceColor(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	src := `{"name":"jöhn","n":[1,null]}`
	want, err := Format(src, DefaultConfig())
	require.NoError(t, err)

	got, err := NewColorFormatter(DefaultConfig()).Sprint(src)
	require.NoError(t, err)
	assert.Equal(t, want, got, "default colors follow the global switch")

	forced := &ColorFormatter{Config: DefaultConfig(), ForceColor: true}
	got, err = forced.Sprint(src)
	require.NoError(t, err)
	assert.Contains(t, got, "\x1b[")
	assert.Equal(t, want, sgr.ReplaceAllString(got, ""))
	assert.True(t, color.NoColor, "global switch is left alone")

	forced.NullColor = tag("nl")
	got, err = forced.Sprint(src)
	require.NoError(t, err)
	assert.Contains(t, got, "<nl>null</nl>", "explicit colors are used as given")
}

func TestColorFormatterErrors(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&ColorFormatter{}).Format(&buf, nil), "empty input needs no config")
	assert.Zero(t, buf.Len())

	err := (&ColorFormatter{}).Format(&buf, []byte("{}"))
	assert.ErrorIs(t, err, ErrConfiguration)

	err = taggedFormatter(DefaultConfig()).Format(failingWriter{}, []byte(`{"a":1}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, errWriteFailed)
}

var errWriteFailed = errors.New("write failed")

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errWriteFailed }
