package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/roach88/l5x/internal/l5x"
	"github.com/roach88/l5x/internal/logix"
)

// Import is one indexed document.
type Import struct {
	ID         string    `json:"id"`
	Seq        int64     `json:"seq"`
	Source     string    `json:"source"`
	Controller string    `json:"controller"`
	ImportedAt time.Time `json:"imported_at"`
	Tags       int       `json:"tags"`
	Failures   int       `json:"failures"`
}

// Import indexes every tag of doc in a single transaction. Tags whose data
// cannot be read are still recorded, with their error in LoadError.
func (s *Store) Import(ctx context.Context, doc *l5x.Document, source string) (*Import, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	imp := &Import{
		ID:         s.ids.NewID(),
		Source:     source,
		Controller: doc.Controller(),
		ImportedAt: s.now().UTC(),
	}
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM imports`).Scan(&imp.Seq); err != nil {
		return nil, fmt.Errorf("next import seq: %w", err)
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO imports (id, seq, source, controller, imported_at)
		VALUES (?, ?, ?, ?, ?)
	`, imp.ID, imp.Seq, imp.Source, imp.Controller, imp.ImportedAt.Format(time.RFC3339Nano))
	if err != nil {
		return nil, fmt.Errorf("write import: %w", err)
	}

	for ord, tag := range doc.Tags() {
		failed, err := writeTag(ctx, tx, imp.ID, ord, tag)
		if err != nil {
			return nil, err
		}
		imp.Tags++
		if failed {
			imp.Failures++
			s.logger.Warn("tag not indexed", "import", imp.ID, "tag", tag.Path())
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}
	s.logger.Info("document indexed",
		"import", imp.ID,
		"controller", imp.Controller,
		"tags", imp.Tags,
		"failures", imp.Failures)
	return imp, nil
}

// writeTag records one tag and its leaves. It reports whether the tag data
// failed to load.
func writeTag(ctx context.Context, tx *sql.Tx, importID string, ord int, tag *l5x.Tag) (bool, error) {
	var (
		members []Member
		blob    []byte
		loadErr string
	)
	if !tag.IsAlias() {
		v, err := tag.Value()
		if err != nil {
			loadErr = err.Error()
		} else {
			for _, l := range l5x.Flatten(v) {
				members = append(members, Member(l))
			}
			snap := Snapshot{DataType: v.Name(), Values: make(map[string]string, len(members))}
			for _, m := range members {
				snap.Values[m.Path] = m.Value
			}
			if blob, err = encodeSnapshot(snap); err != nil {
				return false, fmt.Errorf("write tag %s: %w", tag.Path(), err)
			}
		}
	}

	radix := ""
	if tag.Radix != logix.RadixNull {
		radix = tag.Radix.String()
	}
	_, err := tx.ExecContext(ctx, `
		INSERT INTO tags (import_id, path, ord, scope, name, tag_type, data_type,
			dimensions, radix, external_access, description, alias_for, load_error, snapshot)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(import_id, path) DO NOTHING
	`, importID, tag.Path(), ord, tag.Scope, tag.Name, tag.TagType, tag.DataType,
		tag.Dimensions.String(), radix, tag.ExternalAccess, tag.Description, tag.AliasFor,
		loadErr, blob)
	if err != nil {
		return false, fmt.Errorf("write tag %s: %w", tag.Path(), err)
	}

	for i, m := range members {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO members (import_id, tag_path, path, ord, data_type, radix, value)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(import_id, tag_path, path) DO NOTHING
		`, importID, tag.Path(), m.Path, i, m.DataType, m.Radix, m.Value)
		if err != nil {
			return false, fmt.Errorf("write member %s: %w", logix.JoinPath(tag.Path(), m.Path), err)
		}
	}
	return loadErr != "", nil
}

// DeleteImport removes an import with its tags and members.
func (s *Store) DeleteImport(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM imports WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete import %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("delete import %s: %w", id, ErrNotFound)
	}
	return nil
}
