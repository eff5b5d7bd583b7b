package cli

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/l5x/internal/logix"
	"github.com/roach88/l5x/internal/store"
)

// IndexOptions holds flags for the index commands.
type IndexOptions struct {
	*RootOptions
	Database string
}

// NewIndexCommand creates the index command and its subcommands.
func NewIndexCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &IndexOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Index tag values of L5X documents in SQLite",
		Long: `Record the tags and leaf values of L5X documents in a SQLite database
so that exports can be listed, queried and compared over time.

The database defaults to the "store" entry of the config file, then
l5x.db.

Examples:
  l5x index import Line1.L5X
  l5x index list
  l5x index members <import-id> M1
  l5x index diff <from-id> <to-id>`,
	}

	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to SQLite database")

	cmd.AddCommand(&cobra.Command{
		Use:           "import <file.L5X>",
		Short:         "Index a document",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIndexImport(opts, args[0], cmd)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:           "list",
		Short:         "List indexed documents",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIndexList(opts, cmd)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:           "tags [import-id]",
		Short:         "List the tags of an import (default: latest)",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIndexTags(opts, args, cmd)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:           "members <import-id> <tag>",
		Short:         "List the leaf values of an indexed tag",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIndexMembers(opts, args[0], args[1], cmd)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:           "diff <from-id> <to-id>",
		Short:         "Show leaf values that changed between two imports",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIndexDiff(opts, args[0], args[1], cmd)
		},
	})

	return cmd
}

func (o *IndexOptions) open(f *OutputFormatter) (*store.Store, error) {
	path := o.Database
	if path == "" {
		path = o.config().Store
	}
	st, err := store.Open(path, store.WithLogger(o.logger()))
	if err != nil {
		return nil, f.Fail(ExitCommandError, ErrCodeLoadFailed, "failed to open database", err)
	}
	f.VerboseLog("Opened index %s", path)
	return st, nil
}

func runIndexImport(opts *IndexOptions, path string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	doc, err := opts.loadDocument(f, path)
	if err != nil {
		return err
	}
	st, err := opts.open(f)
	if err != nil {
		return err
	}
	defer st.Close()

	imp, err := st.Import(cmd.Context(), doc, path)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeWriteFailed, "failed to index document", err)
	}
	if f.JSON() {
		return f.Success(imp)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Indexed %s as %s: %d tags, %d failed\n", path, imp.ID, imp.Tags, imp.Failures)
	return nil
}

func runIndexList(opts *IndexOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	st, err := opts.open(f)
	if err != nil {
		return err
	}
	defer st.Close()

	imports, err := st.Imports(cmd.Context())
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeGeneric, "failed to list imports", err)
	}
	if f.JSON() {
		return f.Success(imports)
	}
	if len(imports) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No documents indexed.")
		return nil
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SEQ\tID\tCONTROLLER\tTAGS\tFAILED\tIMPORTED\tSOURCE")
	for _, imp := range imports {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%s\t%s\n",
			imp.Seq, imp.ID, imp.Controller, imp.Tags, imp.Failures, imp.ImportedAt.Format(time.RFC3339), imp.Source)
	}
	return w.Flush()
}

func runIndexTags(opts *IndexOptions, args []string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	st, err := opts.open(f)
	if err != nil {
		return err
	}
	defer st.Close()

	id, err := importID(cmd.Context(), st, args)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeNotFound, "no import to list", err)
	}
	tags, err := st.Tags(cmd.Context(), id)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeGeneric, "failed to list tags", err)
	}
	if f.JSON() {
		return f.Success(tags)
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TAG\tTYPE\tSTATUS")
	for _, tag := range tags {
		status := "ok"
		switch {
		case tag.AliasFor != "":
			status = "alias of " + tag.AliasFor
		case tag.LoadError != "":
			status = "failed: " + tag.LoadError
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", tag.Path, tag.DataType, status)
	}
	return w.Flush()
}

func importID(ctx context.Context, st *store.Store, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	latest, err := st.Latest(ctx)
	if err != nil {
		return "", err
	}
	return latest.ID, nil
}

func runIndexMembers(opts *IndexOptions, id, tag string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	st, err := opts.open(f)
	if err != nil {
		return err
	}
	defer st.Close()

	members, err := st.Members(cmd.Context(), id, tag)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeGeneric, "failed to list members", err)
	}
	if len(members) == 0 {
		return f.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("no values for %s in import %s", tag, id), store.ErrNotFound)
	}
	if f.JSON() {
		return f.Success(members)
	}
	w := cmd.OutOrStdout()
	for _, m := range members {
		fmt.Fprintf(w, "%s = %s\n", logix.JoinPath(tag, m.Path), m.Value)
	}
	return nil
}

func runIndexDiff(opts *IndexOptions, from, to string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	st, err := opts.open(f)
	if err != nil {
		return err
	}
	defer st.Close()

	changes, err := st.Diff(cmd.Context(), from, to)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return f.Fail(ExitCommandError, ErrCodeNotFound, "unknown import", err)
		}
		return f.Fail(ExitCommandError, ErrCodeGeneric, "failed to compare imports", err)
	}
	if f.JSON() {
		return f.Success(changes)
	}
	w := cmd.OutOrStdout()
	if len(changes) == 0 {
		fmt.Fprintln(w, "No differences.")
		return nil
	}
	for _, c := range changes {
		fmt.Fprintf(w, "%s: %s -> %s\n", logix.JoinPath(c.Tag, c.Path), orNone(c.Before), orNone(c.After))
	}
	return nil
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
