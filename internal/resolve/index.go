package resolve

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/text/cases"

	"github.com/roach88/l5x/internal/decorated"
	"github.com/roach88/l5x/internal/logix"
)

// Source identifies where a definition was found.
type Source string

const (
	SourceDataType    Source = "DataType"
	SourceModule      Source = "Module"
	SourceInstruction Source = "AddOnInstruction"
)

// Definition is one indexed type.
type Definition struct {
	Name      string
	Source    Source
	Prototype logix.LogixType
}

// Index resolves the types defined by one document.
type Index struct {
	defs   map[string]Definition
	order  []string
	logger *slog.Logger
}

// Option configures an Index.
type Option func(*Index)

// WithLogger sets the logger used for duplicate definitions and misses.
func WithLogger(l *slog.Logger) Option {
	return func(ix *Index) { ix.logger = l }
}

// fold returns the index key for name. A Caser is stateful, so each call
// gets its own.
func fold(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

// NewIndex builds the index for the document rooted at root. Every
// prototype is materialized here; a member type that is cyclic or not
// defined anywhere degrades to logix.Undefined. A nil root yields an empty
// index.
func NewIndex(root *etree.Element, opts ...Option) *Index {
	ix := &Index{defs: make(map[string]Definition)}
	for _, opt := range opts {
		opt(ix)
	}
	if ix.logger == nil {
		ix.logger = slog.Default()
	}
	if root == nil {
		return ix
	}

	b := newBuilder(ix.logger)
	b.collect(root)
	for _, key := range b.order {
		raw := b.raw[key]
		ix.defs[key] = Definition{Name: raw.name, Source: raw.source, Prototype: b.build(key)}
		ix.order = append(ix.order, raw.name)
	}
	ix.logger.Debug("type index built", "types", len(ix.order))
	return ix
}

// Builtin returns a resolver for built-in types only.
func Builtin() decorated.Resolver { return decorated.Builtins }

// Resolve implements decorated.Resolver.
func (ix *Index) Resolve(name string) logix.LogixType {
	if t, ok := logix.Builtin(name); ok {
		return t
	}
	if d, ok := ix.defs[fold(name)]; ok {
		return d.Prototype
	}
	ix.logger.Debug("type resolution miss", "type", name)
	return logix.NewUndefined(name)
}

// Lookup returns the indexed prototype for name, ignoring built-ins.
func (ix *Index) Lookup(name string) (logix.LogixType, bool) {
	d, ok := ix.defs[fold(name)]
	return d.Prototype, ok
}

// Definition returns the indexed definition for name.
func (ix *Index) Definition(name string) (Definition, bool) {
	d, ok := ix.defs[fold(name)]
	return d, ok
}

// Names lists indexed type names in registration order.
func (ix *Index) Names() []string { return slices.Clone(ix.order) }

// Len returns the number of indexed types.
func (ix *Index) Len() int { return len(ix.order) }

var _ decorated.Resolver = (*Index)(nil)
