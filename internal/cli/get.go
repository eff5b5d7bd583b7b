package cli

import (
	"fmt"

	"github.com/beevik/etree"
	"github.com/spf13/cobra"

	"github.com/roach88/l5x/internal/decorated"
	"github.com/roach88/l5x/internal/l5x"
	"github.com/roach88/l5x/internal/logix"
)

// GetOptions holds flags for the get command.
type GetOptions struct {
	*RootOptions
	XML bool // print the decorated XML of the value
}

// GetResult is the value of one operand.
type GetResult struct {
	Operand  string     `json:"operand"`
	DataType string     `json:"data_type"`
	Leaves   []l5x.Leaf `json:"leaves"`
}

// NewGetCommand creates the get command.
func NewGetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GetOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "get <file.L5X> <operand>",
		Short: "Read a tag or member value",
		Long: `Read the value of an operand such as "Count", "M1.Speeds[1]",
"M1.Status.4" or "Program:MainProgram.Local".

Atomic and string operands print their value; structures and arrays
print one line per leaf member.

Examples:
  l5x get Line1.L5X M1.Run.PRE
  l5x get Line1.L5X M1 --xml`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.XML, "xml", false, "print the value as decorated XML")

	return cmd
}

func runGet(opts *GetOptions, path, operand string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	doc, err := opts.loadDocument(f, path)
	if err != nil {
		return err
	}
	v, err := readOperand(doc, operand)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("cannot read %s", operand), err)
	}

	if opts.XML {
		return writeDecorated(cmd, v)
	}

	result := GetResult{Operand: operand, DataType: v.Name(), Leaves: l5x.Flatten(v)}
	if f.JSON() {
		return f.Success(result)
	}
	w := cmd.OutOrStdout()
	if len(result.Leaves) == 1 && result.Leaves[0].Path == "" {
		fmt.Fprintln(w, result.Leaves[0].Value)
		return nil
	}
	for _, leaf := range result.Leaves {
		fmt.Fprintf(w, "%s = %s\n", logix.JoinPath(operand, leaf.Path), leaf.Value)
	}
	return nil
}

func readOperand(doc *l5x.Document, operand string) (logix.LogixType, error) {
	tag, member, err := doc.Operand(operand)
	if err != nil {
		return nil, err
	}
	return tag.Get(member)
}

func writeDecorated(cmd *cobra.Command, v logix.LogixType) error {
	el, err := decorated.Serialize(v)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to serialize value", err)
	}
	out := etree.NewDocument()
	out.SetRoot(el)
	out.Indent(2)
	if _, err := out.WriteTo(cmd.OutOrStdout()); err != nil {
		return WrapExitError(ExitCommandError, "failed to write value", err)
	}
	return nil
}
