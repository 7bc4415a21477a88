package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"slate-cli/internal/model"
)

var ErrNotFound = errors.New("not found")

// Store is a handle to one workspace database. Open it once per process and
// Close it when done; interleaving with other processes is safe thanks to
// WAL + busy_timeout.
type Store struct {
	dir       string
	actor     string
	recentCap int
	db        *sql.DB
}

func Open(ctx context.Context, dir string) (*Store, error) {
	db, err := openSQLite(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("open workspace %s: %w", dir, err)
	}
	return &Store{dir: dir, actor: "local", db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) Dir() string { return s.dir }

// SetActor sets the actor recorded on subsequent events.
func (s *Store) SetActor(actor string) {
	actor = strings.TrimSpace(actor)
	if actor != "" {
		s.actor = actor
	}
}

func (s *Store) WorkspaceID(ctx context.Context) (string, error) {
	return ensureMetaValue(ctx, s.db, "workspace_id")
}

// Item is the kind-agnostic view of a note or conversation, used by the
// sidebar, preview, and search.
type Item struct {
	Ref       model.ItemRef `json:"ref"`
	Title     string        `json:"title"`
	Body      string        `json:"body,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

func tableForKind(kind model.Kind) (string, error) {
	switch kind {
	case model.KindNote:
		return "notes", nil
	case model.KindConversation:
		return "conversations", nil
	default:
		return "", fmt.Errorf("unknown item kind %q", kind)
	}
}

func (s *Store) CreateNote(ctx context.Context, title, body string) (model.Note, error) {
	it, err := s.createItem(ctx, model.KindNote, title, body)
	if err != nil {
		return model.Note{}, err
	}
	return model.Note{ID: it.Ref.ID, Title: it.Title, Body: it.Body, CreatedAt: it.CreatedAt, UpdatedAt: it.UpdatedAt}, nil
}

func (s *Store) CreateConversation(ctx context.Context, title, body string) (model.Conversation, error) {
	it, err := s.createItem(ctx, model.KindConversation, title, body)
	if err != nil {
		return model.Conversation{}, err
	}
	return model.Conversation{ID: it.Ref.ID, Title: it.Title, Body: it.Body, CreatedAt: it.CreatedAt, UpdatedAt: it.UpdatedAt}, nil
}

func (s *Store) createItem(ctx context.Context, kind model.Kind, title, body string) (Item, error) {
	table, err := tableForKind(kind)
	if err != nil {
		return Item{}, err
	}
	id, err := newRandomID(idPrefixForKind(kind))
	if err != nil {
		return Item{}, err
	}
	now := time.Now().UTC()
	it := Item{
		Ref:       model.ItemRef{Kind: kind, ID: id},
		Title:     strings.TrimSpace(title),
		Body:      body,
		CreatedAt: now,
		UpdatedAt: now,
	}
	raw, err := json.Marshal(it)
	if err != nil {
		return Item{}, err
	}

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return Item{}, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO `+table+`(id, title, body, created_at_unixms, updated_at_unixms, json) VALUES(?, ?, ?, ?, ?, ?)`,
		id, it.Title, it.Body, now.UnixMilli(), now.UnixMilli(), string(raw),
	); err != nil {
		return Item{}, err
	}
	if err := appendEventTx(ctx, tx, s.actor, string(kind)+".create", id, map[string]any{"title": it.Title}); err != nil {
		return Item{}, err
	}
	if err := tx.Commit(); err != nil {
		return Item{}, err
	}
	return it, nil
}

func (s *Store) GetNote(ctx context.Context, id string) (model.Note, error) {
	it, err := s.GetItem(ctx, model.ItemRef{Kind: model.KindNote, ID: id})
	if err != nil {
		return model.Note{}, err
	}
	return model.Note{ID: it.Ref.ID, Title: it.Title, Body: it.Body, CreatedAt: it.CreatedAt, UpdatedAt: it.UpdatedAt}, nil
}

func (s *Store) GetConversation(ctx context.Context, id string) (model.Conversation, error) {
	it, err := s.GetItem(ctx, model.ItemRef{Kind: model.KindConversation, ID: id})
	if err != nil {
		return model.Conversation{}, err
	}
	return model.Conversation{ID: it.Ref.ID, Title: it.Title, Body: it.Body, CreatedAt: it.CreatedAt, UpdatedAt: it.UpdatedAt}, nil
}

func (s *Store) GetItem(ctx context.Context, ref model.ItemRef) (Item, error) {
	table, err := tableForKind(ref.Kind)
	if err != nil {
		return Item{}, err
	}
	var js string
	err = s.db.QueryRowContext(ctx, `SELECT json FROM `+table+` WHERE id = ?`, strings.TrimSpace(ref.ID)).Scan(&js)
	if errors.Is(err, sql.ErrNoRows) {
		return Item{}, fmt.Errorf("%s %s: %w", ref.Kind, ref.ID, ErrNotFound)
	}
	if err != nil {
		return Item{}, err
	}
	var it Item
	if err := json.Unmarshal([]byte(js), &it); err != nil {
		return Item{}, err
	}
	return it, nil
}

// Exists reports whether ref names a stored note or conversation.
func (s *Store) Exists(ctx context.Context, ref model.ItemRef) (bool, error) {
	table, err := tableForKind(ref.Kind)
	if err != nil {
		return false, err
	}
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM `+table+` WHERE id = ?`, strings.TrimSpace(ref.ID)).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) ListNotes(ctx context.Context) ([]model.Note, error) {
	items, err := s.listItems(ctx, model.KindNote)
	if err != nil {
		return nil, err
	}
	out := make([]model.Note, 0, len(items))
	for _, it := range items {
		out = append(out, model.Note{ID: it.Ref.ID, Title: it.Title, Body: it.Body, CreatedAt: it.CreatedAt, UpdatedAt: it.UpdatedAt})
	}
	return out, nil
}

func (s *Store) ListConversations(ctx context.Context) ([]model.Conversation, error) {
	items, err := s.listItems(ctx, model.KindConversation)
	if err != nil {
		return nil, err
	}
	out := make([]model.Conversation, 0, len(items))
	for _, it := range items {
		out = append(out, model.Conversation{ID: it.Ref.ID, Title: it.Title, Body: it.Body, CreatedAt: it.CreatedAt, UpdatedAt: it.UpdatedAt})
	}
	return out, nil
}

func (s *Store) listItems(ctx context.Context, kind model.Kind) ([]Item, error) {
	table, err := tableForKind(kind)
	if err != nil {
		return nil, err
	}
	items, err := readJSONRows[Item](ctx, s.db, `SELECT json FROM `+table+` ORDER BY updated_at_unixms DESC, id ASC`)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []Item{}
	}
	return items, nil
}

// Rename updates an item's title.
func (s *Store) Rename(ctx context.Context, ref model.ItemRef, title string) error {
	return s.updateItem(ctx, ref, string(ref.Kind)+".rename", func(it *Item) {
		it.Title = strings.TrimSpace(title)
	})
}

// SetBody replaces an item's markdown body.
func (s *Store) SetBody(ctx context.Context, ref model.ItemRef, body string) error {
	return s.updateItem(ctx, ref, string(ref.Kind)+".set_body", func(it *Item) {
		it.Body = body
	})
}

func (s *Store) updateItem(ctx context.Context, ref model.ItemRef, eventType string, mutate func(*Item)) error {
	table, err := tableForKind(ref.Kind)
	if err != nil {
		return err
	}
	it, err := s.GetItem(ctx, ref)
	if err != nil {
		return err
	}
	mutate(&it)
	it.UpdatedAt = time.Now().UTC()
	raw, err := json.Marshal(it)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`UPDATE `+table+` SET title = ?, body = ?, updated_at_unixms = ?, json = ? WHERE id = ?`,
		it.Title, it.Body, it.UpdatedAt.UnixMilli(), string(raw), it.Ref.ID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s %s: %w", ref.Kind, ref.ID, ErrNotFound)
	}
	if err := appendEventTx(ctx, tx, s.actor, eventType, it.Ref.ID, map[string]any{"title": it.Title}); err != nil {
		return err
	}
	return tx.Commit()
}

// Delete removes an item and any sidebar row referencing it.
func (s *Store) Delete(ctx context.Context, ref model.ItemRef) error {
	table, err := tableForKind(ref.Kind)
	if err != nil {
		return err
	}
	id := strings.TrimSpace(ref.ID)

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s %s: %w", ref.Kind, ref.ID, ErrNotFound)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM sidebar WHERE kind = ? AND id = ?`, string(ref.Kind), id); err != nil {
		return err
	}
	if err := appendEventTx(ctx, tx, s.actor, string(ref.Kind)+".delete", id, nil); err != nil {
		return err
	}
	return tx.Commit()
}

// Search returns items whose title or body contains query, case-insensitive,
// most recently updated first.
func (s *Store) Search(ctx context.Context, query string) ([]Item, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []Item{}, nil
	}
	pattern := "%" + q + "%"
	var out []Item
	for _, table := range []string{"notes", "conversations"} {
		items, err := readJSONRows[Item](ctx, s.db,
			`SELECT json FROM `+table+` WHERE LOWER(title) LIKE ? OR LOWER(body) LIKE ? ORDER BY updated_at_unixms DESC, id ASC`,
			pattern, pattern,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, items...)
	}
	if out == nil {
		out = []Item{}
	}
	return out, nil
}

func readJSONRows[T any](ctx context.Context, db *sql.DB, query string, args ...any) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		var js string
		if err := rows.Scan(&js); err != nil {
			return nil, err
		}
		var v T
		if err := json.Unmarshal([]byte(js), &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
