package cli

import (
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
)

type BuildInfo struct {
	Version   string
	Commit    string
	BuildDate string
}

type Options struct {
	Stdin     io.Reader
	Stdout    io.Writer
	Stderr    io.Writer
	BuildInfo BuildInfo

	// IsTerminal reports whether w is an interactive terminal. It decides
	// --color=auto; nil means the real check on *os.File writers.
	IsTerminal func(w io.Writer) bool
}

func Run(args []string, opts Options) error {
	resolved := normalizeOptions(opts)
	root := newRootCmd(resolved)
	root.SetArgs(args)
	return root.Execute()
}

func normalizeOptions(opts Options) Options {
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.IsTerminal == nil {
		opts.IsTerminal = isTerminal
	}
	if opts.BuildInfo.Version == "" {
		opts.BuildInfo.Version = "dev"
	}
	return opts
}

type rootOptions struct {
	verbose bool
}

func (o *rootOptions) logger(stderr io.Writer) *log.Logger {
	if !o.verbose {
		return log.New(io.Discard, "", 0)
	}
	return log.New(stderr, "cutejson: ", 0)
}

func newRootCmd(opts Options) *cobra.Command {
	rootOpts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "cutejson",
		Short:         "Pretty-print JSON text without parsing it",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetIn(opts.Stdin)
	cmd.SetOut(opts.Stdout)
	cmd.SetErr(opts.Stderr)
	cmd.PersistentFlags().BoolVarP(&rootOpts.verbose, "verbose", "v", false, "log progress to stderr")
	cmd.AddCommand(
		newFormatCmd(opts, rootOpts),
		newVersionCmd(opts),
	)
	return cmd
}
