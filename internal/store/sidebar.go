package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"slate-cli/internal/model"
)

const defaultRecentCap = 50

// SidebarRow is one sidebar row with its display title resolved.
type SidebarRow struct {
	Ref   model.ItemRef `json:"ref"`
	Title string        `json:"title"`
}

// SetRecentCap bounds the recent section; TouchRecent evicts the oldest rows
// beyond it. Zero or negative restores the default.
func (s *Store) SetRecentCap(n int) {
	if n <= 0 {
		n = defaultRecentCap
	}
	s.recentCap = n
}

func (s *Store) recentCapOrDefault() int {
	if s.recentCap <= 0 {
		return defaultRecentCap
	}
	return s.recentCap
}

func (s *Store) sectionEntries(ctx context.Context, sec model.Section) ([]model.SidebarEntry, error) {
	if !sec.Valid() {
		return nil, fmt.Errorf("invalid section %q", sec)
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT kind, id, rank FROM sidebar WHERE section = ? ORDER BY rank ASC, kind ASC, id ASC`, string(sec))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.SidebarEntry
	for rows.Next() {
		var kind, id, rank string
		if err := rows.Scan(&kind, &id, &rank); err != nil {
			return nil, err
		}
		out = append(out, model.SidebarEntry{
			Ref:     model.ItemRef{Kind: model.Kind(kind), ID: id},
			Section: sec,
			Rank:    rank,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.SidebarEntry{}
	}
	return out, nil
}

// SectionRows returns a section's rows in display order with titles resolved.
func (s *Store) SectionRows(ctx context.Context, sec model.Section) ([]SidebarRow, error) {
	if !sec.Valid() {
		return nil, fmt.Errorf("invalid section %q", sec)
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.kind, s.id, COALESCE(n.title, c.title, '') AS title
		FROM sidebar s
		LEFT JOIN notes n ON s.kind = 'note' AND n.id = s.id
		LEFT JOIN conversations c ON s.kind = 'conversation' AND c.id = s.id
		WHERE s.section = ?
		ORDER BY s.rank ASC, s.kind ASC, s.id ASC`, string(sec))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SidebarRow
	for rows.Next() {
		var kind, id, title string
		if err := rows.Scan(&kind, &id, &title); err != nil {
			return nil, err
		}
		out = append(out, SidebarRow{Ref: model.ItemRef{Kind: model.Kind(kind), ID: id}, Title: title})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if out == nil {
		out = []SidebarRow{}
	}
	return out, nil
}

// SectionItems returns just the refs of a section in display order.
func (s *Store) SectionItems(ctx context.Context, sec model.Section) ([]model.ItemRef, error) {
	entries, err := s.sectionEntries(ctx, sec)
	if err != nil {
		return nil, err
	}
	out := make([]model.ItemRef, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Ref)
	}
	return out, nil
}

func (s *Store) SectionLength(ctx context.Context, sec model.Section) (int, error) {
	if !sec.Valid() {
		return 0, fmt.Errorf("invalid section %q", sec)
	}
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM sidebar WHERE section = ?`, string(sec)).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// sectionOf reports which section currently holds ref, if any.
func (s *Store) sectionOf(ctx context.Context, ref model.ItemRef) (model.Section, bool, error) {
	var sec string
	err := s.db.QueryRowContext(ctx,
		`SELECT section FROM sidebar WHERE kind = ? AND id = ?`, string(ref.Kind), strings.TrimSpace(ref.ID)).Scan(&sec)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return model.Section(sec), true, nil
}

// Pin places ref at the end of the pinned section. Pinning an already
// pinned item is a no-op; an item in recent is moved out of it.
func (s *Store) Pin(ctx context.Context, ref model.ItemRef) error {
	if ok, err := s.Exists(ctx, ref); err != nil {
		return err
	} else if !ok {
		return fmt.Errorf("%s %s: %w", ref.Kind, ref.ID, ErrNotFound)
	}
	cur, present, err := s.sectionOf(ctx, ref)
	if err != nil {
		return err
	}
	if present && cur == model.SectionPinned {
		return nil
	}

	pinned, err := s.sectionEntries(ctx, model.SectionPinned)
	if err != nil {
		return err
	}
	plan, err := PlanSectionInsert(pinned, ref, len(pinned))
	if err != nil {
		return err
	}
	return s.applySidebarPlan(ctx, ref, model.SectionPinned, plan, "sidebar.pin", map[string]any{
		"kind": ref.Kind, "id": ref.ID,
	})
}

// Unpin moves a pinned item to the front of recent. Unpinning an item that
// is not pinned is a no-op.
func (s *Store) Unpin(ctx context.Context, ref model.ItemRef) error {
	cur, present, err := s.sectionOf(ctx, ref)
	if err != nil {
		return err
	}
	if !present || cur != model.SectionPinned {
		return nil
	}
	recent, err := s.sectionEntries(ctx, model.SectionRecent)
	if err != nil {
		return err
	}
	plan, err := PlanSectionInsert(recent, ref, 0)
	if err != nil {
		return err
	}
	if err := s.applySidebarPlan(ctx, ref, model.SectionRecent, plan, "sidebar.unpin", map[string]any{
		"kind": ref.Kind, "id": ref.ID,
	}); err != nil {
		return err
	}
	return s.evictRecentOverflow(ctx)
}

// TouchRecent records that ref was opened: it moves (or inserts) the item at
// the front of recent. Pinned items stay pinned.
func (s *Store) TouchRecent(ctx context.Context, ref model.ItemRef) error {
	if ok, err := s.Exists(ctx, ref); err != nil {
		return err
	} else if !ok {
		return fmt.Errorf("%s %s: %w", ref.Kind, ref.ID, ErrNotFound)
	}
	cur, present, err := s.sectionOf(ctx, ref)
	if err != nil {
		return err
	}
	if present && cur == model.SectionPinned {
		return nil
	}

	recent, err := s.sectionEntries(ctx, model.SectionRecent)
	if err != nil {
		return err
	}
	var plan ReorderPlan
	if present {
		plan, err = PlanSectionMove(recent, ref, 0)
	} else {
		plan, err = PlanSectionInsert(recent, ref, 0)
	}
	if err != nil {
		return err
	}
	if len(plan.RankByKey) == 0 {
		return nil
	}
	if err := s.applySidebarPlan(ctx, ref, model.SectionRecent, plan, "sidebar.touch", map[string]any{
		"kind": ref.Kind, "id": ref.ID,
	}); err != nil {
		return err
	}
	return s.evictRecentOverflow(ctx)
}

// ReorderWithinSection moves the row at from to rest at index to, both in
// the section's current display order. Out-of-range indexes are an error;
// from == to is a no-op.
func (s *Store) ReorderWithinSection(ctx context.Context, sec model.Section, from, to int) error {
	entries, err := s.sectionEntries(ctx, sec)
	if err != nil {
		return err
	}
	if from < 0 || from >= len(entries) {
		return fmt.Errorf("reorder %s: from index %d out of range [0,%d)", sec, from, len(entries))
	}
	if to < 0 || to >= len(entries) {
		return fmt.Errorf("reorder %s: to index %d out of range [0,%d)", sec, to, len(entries))
	}
	if from == to {
		return nil
	}
	moved := entries[from]
	plan, err := PlanSectionMove(entries, moved.Ref, to)
	if err != nil {
		return err
	}
	if len(plan.RankByKey) == 0 {
		return nil
	}
	return s.applySidebarPlan(ctx, moved.Ref, sec, plan, "sidebar.reorder", map[string]any{
		"section": sec, "from": from, "to": to,
	})
}

// MoveItemBetweenSections removes ref from one section and inserts it into
// the other at localIndex (clamped to the target's insertion range).
func (s *Store) MoveItemBetweenSections(ctx context.Context, ref model.ItemRef, from, to model.Section, localIndex int) error {
	if !from.Valid() || !to.Valid() {
		return fmt.Errorf("invalid sections %q -> %q", from, to)
	}
	if from == to {
		return fmt.Errorf("move requires distinct sections, got %q", from)
	}
	cur, present, err := s.sectionOf(ctx, ref)
	if err != nil {
		return err
	}
	if !present || cur != from {
		return fmt.Errorf("%s %s is not in section %s", ref.Kind, ref.ID, from)
	}

	target, err := s.sectionEntries(ctx, to)
	if err != nil {
		return err
	}
	plan, err := PlanSectionInsert(target, ref, localIndex)
	if err != nil {
		return err
	}
	if err := s.applySidebarPlan(ctx, ref, to, plan, "sidebar.move", map[string]any{
		"kind": ref.Kind, "id": ref.ID, "from": from, "to": to, "index": localIndex,
	}); err != nil {
		return err
	}
	if to == model.SectionRecent {
		return s.evictRecentOverflow(ctx)
	}
	return nil
}

// applySidebarPlan writes the plan's rank updates, upserting ref into sec,
// and records one event, all in a single transaction.
func (s *Store) applySidebarPlan(ctx context.Context, ref model.ItemRef, sec model.Section, plan ReorderPlan, eventType string, payload map[string]any) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	movedKey := refKey(ref)
	for key, rank := range plan.RankByKey {
		kind, id, ok := splitRefKey(key)
		if !ok {
			return fmt.Errorf("malformed plan key %q", key)
		}
		if key == movedKey {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO sidebar(kind, id, section, rank) VALUES(?, ?, ?, ?)
				 ON CONFLICT(kind, id) DO UPDATE SET section = excluded.section, rank = excluded.rank`,
				kind, id, string(sec), rank,
			); err != nil {
				return err
			}
			continue
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE sidebar SET rank = ? WHERE kind = ? AND id = ?`, rank, kind, id,
		); err != nil {
			return err
		}
	}
	if err := appendEventTx(ctx, tx, s.actor, eventType, strings.TrimSpace(ref.ID), payload); err != nil {
		return err
	}
	return tx.Commit()
}

func splitRefKey(key string) (kind, id string, ok bool) {
	i := strings.IndexByte(key, ':')
	if i <= 0 || i+1 >= len(key) {
		return "", "", false
	}
	return key[:i], key[i+1:], true
}

// evictRecentOverflow trims the recent section to the configured cap,
// dropping the rows furthest from the front.
func (s *Store) evictRecentOverflow(ctx context.Context) error {
	limit := s.recentCapOrDefault()
	n, err := s.SectionLength(ctx, model.SectionRecent)
	if err != nil {
		return err
	}
	if n <= limit {
		return nil
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT kind, id FROM sidebar WHERE section = ? ORDER BY rank DESC, kind DESC, id DESC LIMIT ?`,
		string(model.SectionRecent), n-limit)
	if err != nil {
		return err
	}
	type key struct{ kind, id string }
	var victims []key
	for rows.Next() {
		var k key
		if err := rows.Scan(&k.kind, &k.id); err != nil {
			_ = rows.Close()
			return err
		}
		victims = append(victims, k)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return err
	}
	_ = rows.Close()

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	for _, v := range victims {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM sidebar WHERE section = ? AND kind = ? AND id = ?`,
			string(model.SectionRecent), v.kind, v.id,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}
