package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/l5x/internal/l5x"
	"github.com/roach88/l5x/internal/logix"
)

// TagsOptions holds flags for the tags command.
type TagsOptions struct {
	*RootOptions
	Scope    string // filter: "Controller" or a program name
	DataType string // filter: declared data type
}

// TagInfo is one row of the tags listing.
type TagInfo struct {
	Path           string `json:"path"`
	Scope          string `json:"scope"`
	DataType       string `json:"data_type"`
	Dimensions     string `json:"dimensions,omitempty"`
	Radix          string `json:"radix,omitempty"`
	ExternalAccess string `json:"external_access,omitempty"`
	AliasFor       string `json:"alias_for,omitempty"`
	Description    string `json:"description,omitempty"`
}

// NewTagsCommand creates the tags command.
func NewTagsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TagsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "tags <file.L5X>",
		Short: "List controller and program tags",
		Long: `List the tags of an L5X document: controller tags first, then the tags
of each program in document order.

Examples:
  l5x tags Line1.L5X
  l5x tags Line1.L5X --scope MainProgram
  l5x tags Line1.L5X --type TIMER --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTags(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Scope, "scope", "", `only tags of this scope ("Controller" or a program name)`)
	cmd.Flags().StringVar(&opts.DataType, "type", "", "only tags of this data type")

	return cmd
}

func runTags(opts *TagsOptions, path string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	doc, err := opts.loadDocument(f, path)
	if err != nil {
		return err
	}

	infos := []TagInfo{}
	for _, tag := range doc.Tags() {
		if opts.Scope != "" && !strings.EqualFold(tag.Scope, opts.Scope) {
			continue
		}
		if opts.DataType != "" && !strings.EqualFold(tag.DataType, opts.DataType) {
			continue
		}
		infos = append(infos, tagInfo(tag))
	}

	if f.JSON() {
		return f.Success(infos)
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TAG\tTYPE\tRADIX\tACCESS\tDESCRIPTION")
	for _, info := range infos {
		typ := info.DataType
		if info.AliasFor != "" {
			typ = "-> " + info.AliasFor
		} else if info.Dimensions != "" {
			typ += "[" + info.Dimensions + "]"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", info.Path, typ, info.Radix, info.ExternalAccess, info.Description)
	}
	return w.Flush()
}

func tagInfo(tag *l5x.Tag) TagInfo {
	info := TagInfo{
		Path:           tag.Path(),
		Scope:          tag.Scope,
		DataType:       tag.DataType,
		Dimensions:     tag.Dimensions.String(),
		ExternalAccess: tag.ExternalAccess,
		AliasFor:       tag.AliasFor,
		Description:    tag.Description,
	}
	if tag.Radix != logix.RadixNull {
		info.Radix = tag.Radix.String()
	}
	return info
}
