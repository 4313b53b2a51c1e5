// Package cutejson pretty-prints JSON-shaped text without parsing it.
//
// The input is scanned once, left to right. Whitespace outside string
// literals is dropped, a line break and indentation follow every opening
// bracket and comma, closing brackets are dedented, and exactly one space is
// written after each key/value colon. Nothing is validated: malformed input
// produces best-effort output rather than an error.
//
//	cfg, err := cutejson.NewBuilder().
//		WithIndentationPolicy(cutejson.Spaces).
//		WithSpaceCount(2).
//		Build()
//	if err != nil {
//		return err
//	}
//	out, err := cutejson.Format(`{"name":"john"}`, cfg)
//
// Formatting holds no shared state, so Format may be called concurrently,
// including with the same *Config.
package cutejson

import "strings"

// Format re-indents source according to cfg.
//
// An empty source is returned as is, whatever cfg is. Otherwise a nil or
// invalid cfg yields a *ConfigurationError.
func Format(source string, cfg *Config) (string, error) {
	if source == "" {
		return "", nil
	}
	if err := cfg.validate(); err != nil {
		return "", err
	}
	var b strings.Builder
	b.Grow(len(source) + len(source)/2)
	newScanState(cfg, builderEmitter{b: &b}).scan(source)
	return b.String(), nil
}

// FormatOptional is Format for a possibly absent source: a nil source is
// returned as nil without looking at cfg.
func FormatOptional(source *string, cfg *Config) (*string, error) {
	if source == nil {
		return nil, nil
	}
	out, err := Format(*source, cfg)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Pretty formats source with DefaultConfig: four spaces per level.
// It panics if formatting fails, which cannot happen with the default configuration.
func Pretty(source string) string {
	out, err := Format(source, DefaultConfig())
	if err != nil {
		panic(err)
	}
	return out
}
