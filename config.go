package cutejson

import (
	"errors"
	"fmt"
	"strings"
)

// ErrConfiguration is matched (via errors.Is) by every *ConfigurationError.
var ErrConfiguration = errors.New("cutejson: invalid configuration")

// ConfigurationError reports misuse of the formatting configuration: a
// negative space count, an unknown indentation policy, or a format call
// without any configuration. It is always a programmer error.
type ConfigurationError struct {
	Field  string // The offending setting, e.g. "spaceCount".
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return "cutejson: " + e.Reason
	}
	return fmt.Sprintf("cutejson: %s: %s", e.Field, e.Reason)
}

// Is reports whether target is ErrConfiguration.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// IndentationPolicy selects the indentation unit written once per nesting level.
type IndentationPolicy int

const (
	// Spaces indents with SpaceCount space characters per level.
	Spaces IndentationPolicy = iota + 1
	// Tabs indents with a single tab character per level. SpaceCount is ignored.
	Tabs
)

// DefaultSpaceCount is the width of one indentation level under Spaces
// when nothing else is configured.
const DefaultSpaceCount = 4

func (p IndentationPolicy) valid() bool {
	return p == Spaces || p == Tabs
}

func (p IndentationPolicy) String() string {
	switch p {
	case Spaces:
		return "spaces"
	case Tabs:
		return "tabs"
	default:
		return fmt.Sprintf("IndentationPolicy(%d)", int(p))
	}
}

// ParseIndentationPolicy accepts "spaces"/"space" and "tabs"/"tab",
// case-insensitively.
func ParseIndentationPolicy(s string) (IndentationPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "spaces", "space":
		return Spaces, nil
	case "tabs", "tab":
		return Tabs, nil
	default:
		return 0, &ConfigurationError{Field: "indentationPolicy", Reason: fmt.Sprintf("unknown policy %q", s)}
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p IndentationPolicy) MarshalText() ([]byte, error) {
	if !p.valid() {
		return nil, &ConfigurationError{Field: "indentationPolicy", Reason: "invalid indentationPolicy provided"}
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, so settings files can
// name the policy directly.
func (p *IndentationPolicy) UnmarshalText(text []byte) error {
	parsed, err := ParseIndentationPolicy(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Config is the immutable formatting configuration. The zero value is not
// usable; obtain one from DefaultConfig, NewConfig or a Builder.
type Config struct {
	policy     IndentationPolicy
	spaceCount int
}

// DefaultConfig returns Spaces with DefaultSpaceCount.
func DefaultConfig() *Config {
	return &Config{policy: Spaces, spaceCount: DefaultSpaceCount}
}

// NewConfig validates its arguments and returns a new Config.
func NewConfig(policy IndentationPolicy, spaceCount int) (*Config, error) {
	if err := checkPolicy(policy); err != nil {
		return nil, err
	}
	if err := checkSpaceCount(spaceCount); err != nil {
		return nil, err
	}
	return &Config{policy: policy, spaceCount: spaceCount}, nil
}

// IndentationPolicy returns the configured policy.
func (c *Config) IndentationPolicy() IndentationPolicy { return c.policy }

// SpaceCount returns the number of spaces per level. It only matters under Spaces.
func (c *Config) SpaceCount() int { return c.spaceCount }

// WithIndentationPolicy returns a copy of c using policy.
func (c *Config) WithIndentationPolicy(policy IndentationPolicy) (*Config, error) {
	if err := checkPolicy(policy); err != nil {
		return nil, err
	}
	g := *c
	g.policy = policy
	return &g, nil
}

// WithSpaceCount returns a copy of c using n spaces per level.
func (c *Config) WithSpaceCount(n int) (*Config, error) {
	if err := checkSpaceCount(n); err != nil {
		return nil, err
	}
	g := *c
	g.spaceCount = n
	return &g, nil
}

// unit is the string written once per nesting level.
func (c *Config) unit() string {
	if c.policy == Tabs {
		return "\t"
	}
	return strings.Repeat(" ", c.spaceCount)
}

func (c *Config) validate() error {
	if c == nil {
		return &ConfigurationError{Reason: "missing or invalid configuration"}
	}
	if err := checkPolicy(c.policy); err != nil {
		return err
	}
	return checkSpaceCount(c.spaceCount)
}

func checkPolicy(p IndentationPolicy) error {
	if !p.valid() {
		return &ConfigurationError{Field: "indentationPolicy", Reason: "invalid indentationPolicy provided"}
	}
	return nil
}

func checkSpaceCount(n int) error {
	if n < 0 {
		return &ConfigurationError{Field: "spaceCount", Reason: fmt.Sprintf("invalid space count provided: %d", n)}
	}
	return nil
}

// Builder assembles a Config with fluent setters. The first invalid setting
// is recorded as soon as its setter runs and is reported by Err and Build;
// setters called after a failure are ignored.
type Builder struct {
	cfg Config
	err error
}

// NewBuilder starts from DefaultConfig.
func NewBuilder() *Builder {
	return &Builder{cfg: *DefaultConfig()}
}

// WithIndentationPolicy sets the indentation policy.
func (b *Builder) WithIndentationPolicy(policy IndentationPolicy) *Builder {
	if b.err != nil {
		return b
	}
	if err := checkPolicy(policy); err != nil {
		b.err = err
		return b
	}
	b.cfg.policy = policy
	return b
}

// WithSpaceCount sets the number of spaces per level for the Spaces policy.
func (b *Builder) WithSpaceCount(n int) *Builder {
	if b.err != nil {
		return b
	}
	if err := checkSpaceCount(n); err != nil {
		b.err = err
		return b
	}
	b.cfg.spaceCount = n
	return b
}

// Err returns the first error recorded by a setter, if any.
func (b *Builder) Err() error {
	return b.err
}

// Build returns a new Config, or the first error recorded by a setter.
// The Builder can keep being used; later changes do not affect configs
// already built.
func (b *Builder) Build() (*Config, error) {
	if b.err != nil {
		return nil, b.err
	}
	cfg := b.cfg
	return &cfg, nil
}
