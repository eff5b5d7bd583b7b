package cli

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"github.com/spf13/cobra"

	"github.com/roach88/l5x/internal/typedef"
)

// TypedefOptions holds flags for the typedef command.
type TypedefOptions struct {
	*RootOptions
	Install string // L5X document to install the types into
	Output  string // write the installed document here instead of in place
}

// TypedefResult reports compiled and installed types.
type TypedefResult struct {
	Types    []string `json:"types"`
	Replaced []string `json:"replaced,omitempty"`
	Output   string   `json:"output,omitempty"`
	XML      string   `json:"xml,omitempty"`
}

// NewTypedefCommand creates the typedef command.
func NewTypedefCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TypedefOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "typedef [types-dir]",
		Short: "Compile CUE type definitions to L5X DataTypes",
		Long: `Compile the user-defined data types declared in a CUE package into L5X
DataType elements.

	type: Motor: {
		description: "Drive state"
		members: {
			Running: {type: "BOOL"}
			Speeds: {type: "REAL", dimension: 3}
		}
	}

Without --install the DataTypes are printed. With --install they are
added to the document, replacing types of the same name. The directory
defaults to the "types" entry of the config file.

Examples:
  l5x typedef ./types
  l5x typedef ./types --install Line1.L5X -o Line1.types.L5X`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := opts.config().Types
			if len(args) == 1 {
				dir = args[0]
			}
			if dir == "" {
				return NewExitError(ExitCommandError, "no type directory given and none configured")
			}
			return runTypedef(opts, dir, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Install, "install", "", "L5X document to install the types into")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file for --install (default: overwrite)")

	return cmd
}

func runTypedef(opts *TypedefOptions, dir string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	defs, err := typedef.LoadDir(dir)
	if err != nil {
		return f.Fail(ExitFailure, ErrCodeLoadFailed, fmt.Sprintf("failed to compile types in %s", dir), err)
	}
	result := TypedefResult{Types: make([]string, len(defs))}
	for i, def := range defs {
		result.Types[i] = def.Name
		f.VerboseLog("Compiled type: %s (%d members)", def.Name, len(def.Members))
	}

	if opts.Install == "" {
		doc := etree.NewDocument()
		types := doc.CreateElement("DataTypes")
		for _, def := range defs {
			types.AddChild(def.Element())
		}
		doc.Indent(2)
		xml, err := doc.WriteToString()
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to render types", err)
		}
		if f.JSON() {
			result.XML = xml
			return f.Success(result)
		}
		fmt.Fprint(cmd.OutOrStdout(), xml)
		return nil
	}

	doc, err := opts.loadDocument(f, opts.Install)
	if err != nil {
		return err
	}
	if result.Replaced, err = typedef.Install(doc.Root(), defs...); err != nil {
		return f.Fail(ExitCommandError, ErrCodeWriteFailed, "failed to install types", err)
	}
	if result.Output, err = saveDocument(f, doc, opts.Install, opts.Output); err != nil {
		return err
	}

	if f.JSON() {
		return f.Success(result)
	}
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Installed %d type(s) into %s\n", len(result.Types), result.Output)
	if len(result.Replaced) > 0 {
		fmt.Fprintf(w, "Replaced: %s\n", strings.Join(result.Replaced, ", "))
	}
	return nil
}
