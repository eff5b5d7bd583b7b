package l5x

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/beevik/etree"

	"github.com/roach88/l5x/internal/logix"
	"github.com/roach88/l5x/internal/resolve"
)

const (
	elemContent     = "RSLogix5000Content"
	elemController  = "Controller"
	elemProgram     = "Program"
	elemTag         = "Tag"
	elemDescription = "Description"

	// ControllerScope is the scope name of controller tags.
	ControllerScope = "Controller"

	programPrefix = "Program:"
)

// Document is a parsed L5X export.
type Document struct {
	doc    *etree.Document
	index  *resolve.Index
	logger *slog.Logger
}

// Option configures a Document.
type Option func(*Document)

// WithLogger sets the logger for the document and its type index.
func WithLogger(l *slog.Logger) Option {
	return func(d *Document) { d.logger = l }
}

// Load reads an L5X file.
func Load(path string, opts ...Option) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	d, err := Parse(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return d, nil
}

// Parse reads an L5X document from r.
func Parse(r io.Reader, opts ...Option) (*Document, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.PreserveCData = true
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("parse xml: %w", err)
	}
	return New(doc, opts...)
}

// New wraps an already parsed document and builds its type index.
func New(doc *etree.Document, opts ...Option) (*Document, error) {
	root := doc.Root()
	if root == nil || root.Tag != elemContent {
		return nil, ErrNotL5X
	}
	d := &Document{doc: doc}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}
	d.index = resolve.NewIndex(root, resolve.WithLogger(d.logger))
	d.logger.Debug("document opened", "controller", d.Controller(), "types", d.index.Len())
	return d, nil
}

// Root returns the RSLogix5000Content element.
func (d *Document) Root() *etree.Element { return d.doc.Root() }

// Index returns the document's type index.
func (d *Document) Index() *resolve.Index { return d.index }

// Controller returns the controller name.
func (d *Document) Controller() string {
	if c := d.controller(); c != nil {
		return c.SelectAttrValue("Name", "")
	}
	return ""
}

func (d *Document) controller() *etree.Element {
	return d.Root().SelectElement(elemController)
}

// Tags lists controller tags followed by each program's tags, in document
// order.
func (d *Document) Tags() []*Tag {
	c := d.controller()
	if c == nil {
		return nil
	}
	var tags []*Tag
	for _, el := range c.FindElements("./Tags/" + elemTag) {
		tags = append(tags, d.newTag(el, ControllerScope))
	}
	for _, p := range c.FindElements("./Programs/" + elemProgram) {
		scope := p.SelectAttrValue("Name", "")
		for _, el := range p.FindElements("./Tags/" + elemTag) {
			tags = append(tags, d.newTag(el, scope))
		}
	}
	return tags
}

// Tag returns the named tag. An empty scope or ControllerScope selects
// controller tags; any other scope names a program. Names compare
// case-insensitively.
func (d *Document) Tag(scope, name string) (*Tag, error) {
	if scope == "" {
		scope = ControllerScope
	}
	for _, t := range d.Tags() {
		if strings.EqualFold(t.Scope, scope) && strings.EqualFold(t.Name, name) {
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrTagNotFound, tagPath(scope, name))
}

// Operand splits a full operand such as "Program:Main.Motor.Speeds[1]" into
// its tag and the member path below it.
func (d *Document) Operand(operand string) (*Tag, string, error) {
	scope := ControllerScope
	rest := operand
	if strings.HasPrefix(strings.ToLower(rest), strings.ToLower(programPrefix)) {
		rest = rest[len(programPrefix):]
		i := strings.IndexByte(rest, '.')
		if i < 0 {
			return nil, "", fmt.Errorf("%w: %s", ErrTagNotFound, operand)
		}
		scope, rest = rest[:i], rest[i+1:]
	}
	name := rest
	if i := strings.IndexAny(rest, ".["); i >= 0 {
		name = rest[:i]
		rest = strings.TrimPrefix(rest[i:], ".")
	} else {
		rest = ""
	}
	t, err := d.Tag(scope, name)
	if err != nil {
		return nil, "", err
	}
	return t, rest, nil
}

// Values reads every non-alias tag. Tags that fail are collected into one
// *LoadError; the values that did load are returned alongside it.
func (d *Document) Values() (map[string]logix.LogixType, error) {
	values := make(map[string]logix.LogixType)
	var failures []TagFailure
	for _, t := range d.Tags() {
		if t.IsAlias() {
			continue
		}
		v, err := t.Value()
		if err != nil {
			failures = append(failures, TagFailure{Path: t.Path(), Err: err})
			continue
		}
		values[t.Path()] = v
	}
	if len(failures) > 0 {
		d.logger.Warn("tags failed to load", "count", len(failures))
		return values, &LoadError{Failures: failures}
	}
	return values, nil
}

// WriteTo writes the document with two-space indentation.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	d.doc.Indent(2)
	return d.doc.WriteTo(w)
}

// Save writes the document to path.
func (d *Document) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	if _, err := d.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("save %s: %w", path, err)
	}
	return f.Close()
}

func tagPath(scope, name string) string {
	if scope == "" || strings.EqualFold(scope, ControllerScope) {
		return name
	}
	return programPrefix + scope + "." + name
}
