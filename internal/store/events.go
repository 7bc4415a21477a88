package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"slate-cli/internal/model"
)

// appendEventTx records one event inside the caller's transaction so the
// event and the mutation it describes commit atomically.
func appendEventTx(ctx context.Context, tx *sql.Tx, actor, typ, entityID string, payload any) error {
	actor = strings.TrimSpace(actor)
	typ = strings.TrimSpace(typ)
	entityID = strings.TrimSpace(entityID)
	if actor == "" {
		return errors.New("missing event actor")
	}
	if typ == "" {
		return errors.New("missing event type")
	}
	if entityID == "" {
		return errors.New("missing event entity id")
	}
	pb, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO events(ts_unixms, actor, type, entity_id, payload_json) VALUES(?, ?, ?, ?, ?)`,
		time.Now().UTC().UnixMilli(), actor, typ, entityID, string(pb),
	)
	return err
}

// AppendEvent records a standalone event outside any mutation.
func (s *Store) AppendEvent(ctx context.Context, typ, entityID string, payload any) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	if err := appendEventTx(ctx, tx, s.actor, typ, entityID, payload); err != nil {
		return err
	}
	return tx.Commit()
}

// Events returns the oldest-first event log, all of it when limit <= 0.
func (s *Store) Events(ctx context.Context, limit int) ([]model.Event, error) {
	q := `SELECT seq, ts_unixms, actor, type, entity_id, payload_json FROM events ORDER BY seq ASC`
	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = s.db.QueryContext(ctx, q+` LIMIT ?`, limit)
	} else {
		rows, err = s.db.QueryContext(ctx, q)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

// EventsTail returns the newest n events in chronological order.
func (s *Store) EventsTail(ctx context.Context, n int) ([]model.Event, error) {
	if n <= 0 {
		return s.Events(ctx, 0)
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT seq, ts_unixms, actor, type, entity_id, payload_json FROM events ORDER BY seq DESC LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	evs, err := scanEvents(rows)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(evs)-1; i < j; i, j = i+1, j-1 {
		evs[i], evs[j] = evs[j], evs[i]
	}
	return evs, nil
}

// EventsForEntity returns all events recorded against one entity, oldest first.
func (s *Store) EventsForEntity(ctx context.Context, entityID string, limit int) ([]model.Event, error) {
	entityID = strings.TrimSpace(entityID)
	if entityID == "" {
		return []model.Event{}, nil
	}
	q := `SELECT seq, ts_unixms, actor, type, entity_id, payload_json FROM events WHERE entity_id = ? ORDER BY seq ASC`
	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = s.db.QueryContext(ctx, q+` LIMIT ?`, entityID, limit)
	} else {
		rows, err = s.db.QueryContext(ctx, q, entityID)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

func scanEvents(rows *sql.Rows) ([]model.Event, error) {
	var out []model.Event
	for rows.Next() {
		var seq, tsMs int64
		var actor, typ, entityID, payloadJSON string
		if err := rows.Scan(&seq, &tsMs, &actor, &typ, &entityID, &payloadJSON); err != nil {
			return nil, err
		}
		var payload any
		_ = json.Unmarshal([]byte(payloadJSON), &payload)
		out = append(out, model.Event{
			Seq:      seq,
			TS:       time.UnixMilli(tsMs).UTC(),
			Actor:    actor,
			Type:     typ,
			EntityID: entityID,
			Payload:  payload,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.Event{}
	}
	return out, nil
}
