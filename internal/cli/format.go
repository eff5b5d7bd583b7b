package cli

import (
	"github.com/spf13/cobra"
)

// FormatOptions holds flags for the format command.
type FormatOptions struct {
	*RootOptions
	Output string
}

// NewFormatCommand creates the format command.
func NewFormatCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FormatOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "format <file.L5X>",
		Short: "Re-indent an L5X document",
		Long: `Parse an L5X document and write it back with two-space indentation.

CDATA sections are preserved. Without --output the document is written
to stdout.

Examples:
  l5x format Line1.L5X
  l5x format Line1.L5X -o Line1.pretty.L5X`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")

	return cmd
}

func runFormat(opts *FormatOptions, path string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	doc, err := opts.loadDocument(f, path)
	if err != nil {
		return err
	}
	if opts.Output == "" {
		if _, err := doc.WriteTo(cmd.OutOrStdout()); err != nil {
			return WrapExitError(ExitCommandError, "failed to write document", err)
		}
		return nil
	}
	out, err := saveDocument(f, doc, path, opts.Output)
	if err != nil {
		return err
	}
	if f.JSON() {
		return f.Success(map[string]string{"output": out})
	}
	return f.Success("Wrote " + out)
}
