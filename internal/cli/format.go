package cli

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"strings"

	"github.com/amterp/cutejson"
	"github.com/amterp/cutejson/internal/settings"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

type formatOptions struct {
	spaces     int
	tabs       bool
	write      bool
	configPath string
	color      string
	jobs       int
}

func newFormatCmd(opts Options, rootOpts *rootOptions) *cobra.Command {
	formatOpts := formatOptions{spaces: cutejson.DefaultSpaceCount, color: settings.ColorAuto}
	cmd := &cobra.Command{
		Use:   "format [file...|-]",
		Short: "Format JSON text from files or stdin",
		Long: "Format re-indents JSON-shaped text without validating it. With no file,\n" +
			"or with -, it reads stdin. Each document is printed followed by a newline.",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := rootOpts.logger(opts.Stderr)

			var file *settings.File
			if formatOpts.configPath != "" {
				loaded, err := settings.Load(formatOpts.configPath)
				if err != nil {
					return err
				}
				file = loaded
				logger.Printf("loaded settings from %s", formatOpts.configPath)
			}

			cfg, err := resolveConfig(cmd.Flags(), formatOpts, file)
			if err != nil {
				return err
			}
			mode := resolveColorMode(cmd.Flags(), formatOpts, file)
			if !settings.ValidColor(mode) {
				return fmt.Errorf("--color must be one of %s, %s or %s, got %q",
					settings.ColorAuto, settings.ColorAlways, settings.ColorNever, mode)
			}

			paths, err := normalizePaths(args, formatOpts.write)
			if err != nil {
				return err
			}

			render := plainRenderer(cfg)
			if !formatOpts.write && wantColor(mode, opts) {
				render = (&cutejson.ColorFormatter{Config: cfg, ForceColor: true}).Sprint
			}

			outputs, err := formatPaths(cmd, paths, formatOpts, opts.Stdin, render, logger)
			if err != nil {
				return err
			}
			if formatOpts.write {
				return nil
			}
			for _, out := range outputs {
				if _, err := io.WriteString(opts.Stdout, terminate(out)); err != nil {
					return err
				}
			}
			return nil
		},
	}

	fs := cmd.Flags()
	fs.IntVarP(&formatOpts.spaces, "spaces", "s", cutejson.DefaultSpaceCount, "indent with this many spaces per level")
	fs.BoolVar(&formatOpts.tabs, "tabs", false, "indent with one tab per level")
	fs.BoolVarP(&formatOpts.write, "write", "w", false, "write result back to file")
	fs.StringVarP(&formatOpts.configPath, "config", "c", "", "settings file (.yaml, .yml or .toml)")
	fs.StringVar(&formatOpts.color, "color", settings.ColorAuto, "colorize output (auto|always|never)")
	fs.IntVarP(&formatOpts.jobs, "jobs", "j", 0, "files formatted in parallel (0 means GOMAXPROCS)")
	cmd.MarkFlagsMutuallyExclusive("spaces", "tabs")
	return cmd
}

// resolveConfig layers defaults, the settings file and explicit flags, in
// that order.
func resolveConfig(flags *pflag.FlagSet, o formatOptions, file *settings.File) (*cutejson.Config, error) {
	b := cutejson.NewBuilder()
	if file != nil {
		file.Apply(b)
	}
	if flags.Changed("spaces") {
		b.WithIndentationPolicy(cutejson.Spaces).WithSpaceCount(o.spaces)
	}
	if o.tabs {
		b.WithIndentationPolicy(cutejson.Tabs)
	}
	return b.Build()
}

func resolveColorMode(flags *pflag.FlagSet, o formatOptions, file *settings.File) string {
	if !flags.Changed("color") && file != nil && file.Color != "" {
		return file.Color
	}
	return strings.ToLower(strings.TrimSpace(o.color))
}

func wantColor(mode string, opts Options) bool {
	switch mode {
	case settings.ColorAlways:
		return true
	case settings.ColorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return opts.IsTerminal(opts.Stdout)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func normalizePaths(args []string, write bool) ([]string, error) {
	paths := make([]string, 0, len(args))
	stdin := false
	for _, arg := range args {
		path := strings.TrimSpace(arg)
		if path == "" {
			path = "-"
		}
		if path == "-" {
			if stdin {
				return nil, errors.New("stdin (-) can only be read once")
			}
			stdin = true
		}
		paths = append(paths, path)
	}
	if len(paths) == 0 {
		paths = append(paths, "-")
		stdin = true
	}
	if write && stdin {
		return nil, errors.New("--write requires a file path")
	}
	return paths, nil
}

type renderFunc func(source string) (string, error)

func plainRenderer(cfg *cutejson.Config) renderFunc {
	return func(source string) (string, error) {
		return cutejson.Format(source, cfg)
	}
}

// formatPaths formats every path concurrently and returns the outputs in
// argument order. With --write each file is rewritten as soon as it is done.
func formatPaths(cmd *cobra.Command, paths []string, o formatOptions, stdin io.Reader, render renderFunc, logger *log.Logger) ([]string, error) {
	jobs := o.jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	outputs := make([]string, len(paths))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(min(jobs, len(paths)))

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			src, err := readFormatSource(path, stdin)
			if err != nil {
				return err
			}
			formatted, err := render(string(src))
			if err != nil {
				return fmt.Errorf("format %s: %w", displayName(path), err)
			}
			if o.write {
				return writeFormattedOutput(path, src, terminate(formatted), logger)
			}
			outputs[i] = formatted
			logger.Printf("formatted %s (%d -> %d bytes)", displayName(path), len(src), len(formatted))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outputs, nil
}

func displayName(path string) string {
	if path == "-" {
		return "<stdin>"
	}
	return path
}

// terminate adds the trailing newline the library never emits.
func terminate(formatted string) string {
	if formatted == "" {
		return ""
	}
	return formatted + "\n"
}

func readFormatSource(path string, in io.Reader) ([]byte, error) {
	if path == "-" {
		src, err := io.ReadAll(in)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return src, nil
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file %q: %w", path, err)
	}
	return src, nil
}

func writeFormattedOutput(path string, src []byte, formatted string, logger *log.Logger) error {
	if formatted == string(src) {
		logger.Printf("unchanged %s", path)
		return nil
	}
	mode := os.FileMode(0o644)
	if st, statErr := os.Stat(path); statErr == nil {
		mode = st.Mode().Perm()
	}
	if err := os.WriteFile(path, []byte(formatted), mode); err != nil {
		return fmt.Errorf("write file %q: %w", path, err)
	}
	logger.Printf("rewrote %s", path)
	return nil
}
