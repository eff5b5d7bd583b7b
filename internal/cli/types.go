package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/l5x/internal/logix"
	"github.com/roach88/l5x/internal/resolve"
)

// TypeInfo describes one type of the document's index.
type TypeInfo struct {
	Name    string       `json:"name"`
	Source  string       `json:"source"`
	Class   string       `json:"class"`
	Members []MemberInfo `json:"members,omitempty"`
}

// MemberInfo describes one member of a type.
type MemberInfo struct {
	Name     string `json:"name"`
	DataType string `json:"data_type"`
}

// NewTypesCommand creates the types command.
func NewTypesCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "types <file.L5X> [type]",
		Short: "List the data types defined by a document",
		Long: `List the user-defined data types, Add-On Instructions and module-defined
types of an L5X document, in the order they are resolved. With a type
name, show that type's members.

Examples:
  l5x types Line1.L5X
  l5x types Line1.L5X Motor`,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 2 {
				name = args[1]
			}
			return runTypes(rootOpts, args[0], name, cmd)
		},
	}
	return cmd
}

func runTypes(opts *RootOptions, path, name string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	doc, err := opts.loadDocument(f, path)
	if err != nil {
		return err
	}
	ix := doc.Index()

	if name != "" {
		def, ok := ix.Definition(name)
		if !ok {
			return f.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("type %s is not defined in %s", name, path), nil)
		}
		info := typeInfo(def)
		for _, m := range def.Prototype.Members() {
			info.Members = append(info.Members, MemberInfo{Name: m.Name, DataType: typeName(m.Type)})
		}
		if f.JSON() {
			return f.Success(info)
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintf(w, "%s (%s, %s)\n", info.Name, info.Source, info.Class)
		for _, m := range info.Members {
			fmt.Fprintf(w, "  %s\t%s\n", m.Name, m.DataType)
		}
		return w.Flush()
	}

	infos := []TypeInfo{}
	for _, n := range ix.Names() {
		def, _ := ix.Definition(n)
		infos = append(infos, typeInfo(def))
	}
	if f.JSON() {
		return f.Success(infos)
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TYPE\tSOURCE\tCLASS")
	for _, info := range infos {
		fmt.Fprintf(w, "%s\t%s\t%s\n", info.Name, info.Source, info.Class)
	}
	return w.Flush()
}

func typeInfo(def resolve.Definition) TypeInfo {
	class := def.Prototype.Class().String()
	if s, ok := def.Prototype.(logix.Structure); ok {
		class = s.DataTypeClass().String()
	}
	return TypeInfo{Name: def.Name, Source: string(def.Source), Class: class}
}

// typeName renders a member type the way Logix declares it: arrays as
// ELEM[dims].
func typeName(t logix.LogixType) string {
	if arr, ok := t.(logix.Array); ok {
		return fmt.Sprintf("%s[%s]", arr.Name(), arr.Dimensions())
	}
	return t.Name()
}
