package cli

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/l5x/internal/l5x"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string

	// Config and Logger are set before any subcommand runs.
	Config *Config
	Logger *slog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the l5x CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "l5x",
		Short: "Read and edit Logix Designer L5X exports",
		Long: `Read and edit the tag data of Logix Designer L5X exports.

Tag values are read from and written to their decorated data, resolving
user-defined, module-defined and Add-On Instruction types from the
document itself.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", DefaultConfigFile, "config file")

	// Add subcommands
	cmd.AddCommand(NewFormatCommand(opts))
	cmd.AddCommand(NewParseCommand(opts))
	cmd.AddCommand(NewTagsCommand(opts))
	cmd.AddCommand(NewGetCommand(opts))
	cmd.AddCommand(NewSetCommand(opts))
	cmd.AddCommand(NewTypesCommand(opts))
	cmd.AddCommand(NewTypedefCommand(opts))
	cmd.AddCommand(NewIndexCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// setup loads the config file and applies it under the explicit flags.
func (o *RootOptions) setup(cmd *cobra.Command) error {
	flags := cmd.Flags()
	cfg, err := LoadConfig(o.ConfigPath, flags.Changed("config"))
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}
	o.Config = cfg
	if !flags.Changed("format") && cfg.Format != "" {
		o.Format = cfg.Format
	}
	if !flags.Changed("verbose") && cfg.Verbose {
		o.Verbose = true
	}
	if !isValidFormat(o.Format) {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", o.Format, ValidFormats))
	}
	o.Logger = newLogger(cmd.ErrOrStderr(), o.Verbose)
	return nil
}

// newLogger logs warnings and above to w, or everything when verbose.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// logger returns the configured logger, or a silent one when a command
// runs without the root (as in tests).
func (o *RootOptions) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (o *RootOptions) config() *Config {
	if o.Config != nil {
		return o.Config
	}
	return &Config{Store: DefaultStore}
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   o.Verbose,
	}
}

// loadDocument opens an L5X file, reporting failures in the output format.
func (o *RootOptions) loadDocument(f *OutputFormatter, path string) (*l5x.Document, error) {
	doc, err := l5x.Load(path, l5x.WithLogger(o.logger()))
	if err != nil {
		return nil, f.Fail(ExitCommandError, ErrCodeLoadFailed, fmt.Sprintf("failed to load %s", path), err)
	}
	f.VerboseLog("Loaded %s: controller %s, %d types", path, doc.Controller(), doc.Index().Len())
	return doc, nil
}

// saveDocument writes doc to out, or back to path when out is empty.
func saveDocument(f *OutputFormatter, doc *l5x.Document, path, out string) (string, error) {
	if out == "" {
		out = path
	}
	if err := doc.Save(out); err != nil {
		return "", f.Fail(ExitCommandError, ErrCodeWriteFailed, fmt.Sprintf("failed to write %s", out), err)
	}
	return out, nil
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
