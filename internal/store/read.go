package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when an import or tag does not exist.
var ErrNotFound = errors.New("not found")

// TagRecord is an indexed tag.
type TagRecord struct {
	ImportID       string `json:"import_id"`
	Path           string `json:"path"`
	Scope          string `json:"scope"`
	Name           string `json:"name"`
	TagType        string `json:"tag_type"`
	DataType       string `json:"data_type"`
	Dimensions     string `json:"dimensions"`
	Radix          string `json:"radix"`
	ExternalAccess string `json:"external_access"`
	Description    string `json:"description"`
	AliasFor       string `json:"alias_for"`
	LoadError      string `json:"load_error"`
}

// Member is one leaf operand of a tag. Path is relative to the tag and is
// empty for atomic and string tags.
type Member struct {
	Path     string `json:"path"`
	DataType string `json:"data_type"`
	Radix    string `json:"radix"`
	Value    string `json:"value"`
}

// Change is a leaf whose value differs between two imports. Before or After
// is empty when the leaf exists in only one of them.
type Change struct {
	Tag    string `json:"tag"`
	Path   string `json:"path"`
	Before string `json:"before"`
	After  string `json:"after"`
}

// Imports returns all imports ordered by seq.
func (s *Store) Imports(ctx context.Context) ([]Import, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT i.id, i.seq, i.source, i.controller, i.imported_at,
			(SELECT COUNT(*) FROM tags t WHERE t.import_id = i.id),
			(SELECT COUNT(*) FROM tags t WHERE t.import_id = i.id AND t.load_error != '')
		FROM imports i
		ORDER BY i.seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query imports: %w", err)
	}
	defer rows.Close()

	imports := []Import{}
	for rows.Next() {
		var imp Import
		var at string
		if err := rows.Scan(&imp.ID, &imp.Seq, &imp.Source, &imp.Controller, &at, &imp.Tags, &imp.Failures); err != nil {
			return nil, fmt.Errorf("scan import: %w", err)
		}
		if imp.ImportedAt, err = time.Parse(time.RFC3339Nano, at); err != nil {
			return nil, fmt.Errorf("parse imported_at of %s: %w", imp.ID, err)
		}
		imports = append(imports, imp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate imports: %w", err)
	}
	return imports, nil
}

// Latest returns the import with the highest seq.
func (s *Store) Latest(ctx context.Context) (*Import, error) {
	imports, err := s.Imports(ctx)
	if err != nil {
		return nil, err
	}
	if len(imports) == 0 {
		return nil, fmt.Errorf("latest import: %w", ErrNotFound)
	}
	return &imports[len(imports)-1], nil
}

// Tags returns the tags of an import in document order.
func (s *Store) Tags(ctx context.Context, importID string) ([]TagRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT import_id, path, scope, name, tag_type, data_type, dimensions,
			radix, external_access, description, alias_for, load_error
		FROM tags
		WHERE import_id = ?
		ORDER BY ord ASC
	`, importID)
	if err != nil {
		return nil, fmt.Errorf("query tags: %w", err)
	}
	defer rows.Close()

	tags := []TagRecord{}
	for rows.Next() {
		var t TagRecord
		if err := rows.Scan(&t.ImportID, &t.Path, &t.Scope, &t.Name, &t.TagType, &t.DataType,
			&t.Dimensions, &t.Radix, &t.ExternalAccess, &t.Description, &t.AliasFor, &t.LoadError); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tags: %w", err)
	}
	return tags, nil
}

// TagsOfType returns the tags of an import declared with dataType,
// compared case-insensitively.
func (s *Store) TagsOfType(ctx context.Context, importID, dataType string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT path FROM tags
		WHERE import_id = ? AND data_type = ? COLLATE NOCASE
		ORDER BY ord ASC
	`, importID, dataType)
	if err != nil {
		return nil, fmt.Errorf("query tags of type: %w", err)
	}
	defer rows.Close()

	paths := []string{}
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scan tag path: %w", err)
		}
		paths = append(paths, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tag paths: %w", err)
	}
	return paths, nil
}

// Members returns the leaves of one tag in document order.
func (s *Store) Members(ctx context.Context, importID, tagPath string) ([]Member, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT path, data_type, radix, value
		FROM members
		WHERE import_id = ? AND tag_path = ?
		ORDER BY ord ASC
	`, importID, tagPath)
	if err != nil {
		return nil, fmt.Errorf("query members: %w", err)
	}
	defer rows.Close()

	members := []Member{}
	for rows.Next() {
		var m Member
		if err := rows.Scan(&m.Path, &m.DataType, &m.Radix, &m.Value); err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate members: %w", err)
	}
	return members, nil
}

// Snapshot returns the stored leaf values of one tag.
func (s *Store) Snapshot(ctx context.Context, importID, tagPath string) (Snapshot, error) {
	var blob []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT snapshot FROM tags WHERE import_id = ? AND path = ?
	`, importID, tagPath).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, fmt.Errorf("snapshot %s: %w", tagPath, ErrNotFound)
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("query snapshot: %w", err)
	}
	if blob == nil {
		return Snapshot{}, fmt.Errorf("snapshot %s: %w", tagPath, ErrNotFound)
	}
	return decodeSnapshot(blob)
}

// Diff lists the leaves whose values differ between two imports, ordered by
// tag then member path.
func (s *Store) Diff(ctx context.Context, fromID, toID string) ([]Change, error) {
	if fromID == toID {
		return []Change{}, nil
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT tag_path, path, import_id, value
		FROM members
		WHERE import_id IN (?, ?)
		ORDER BY tag_path ASC, path ASC, import_id = ? DESC
	`, fromID, toID, fromID)
	if err != nil {
		return nil, fmt.Errorf("query diff: %w", err)
	}
	defer rows.Close()

	changes := []Change{}
	var cur *Change
	var seen int
	flush := func() {
		if cur != nil && (seen == 1 || cur.Before != cur.After) {
			changes = append(changes, *cur)
		}
	}
	for rows.Next() {
		var tag, path, id, value string
		if err := rows.Scan(&tag, &path, &id, &value); err != nil {
			return nil, fmt.Errorf("scan diff: %w", err)
		}
		if cur == nil || cur.Tag != tag || cur.Path != path {
			flush()
			cur = &Change{Tag: tag, Path: path}
			seen = 0
		}
		seen++
		if id == fromID {
			cur.Before = value
		} else {
			cur.After = value
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate diff: %w", err)
	}
	flush()
	return changes, nil
}
