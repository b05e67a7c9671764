package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/abhisek/mathmate/internal/achievements"
	"github.com/abhisek/mathmate/internal/progress"
)

// storedRecord is the persisted document: the progress record plus the
// derived achievement badges. Achievements are written for round-trip
// completeness but always recomputed from the record on load, so the stored
// copy can never drift from the counters.
type storedRecord struct {
	progress.Record
	Achievements []achievements.Achievement `json:"achievements"`
}

// SaveRecord overwrites the single persisted record row. Last writer wins.
func (s *Store) SaveRecord(ctx context.Context, rec progress.Record) error {
	doc := storedRecord{
		Record:       rec,
		Achievements: achievements.Evaluate(rec),
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO record (id, updated_at, data) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET updated_at = excluded.updated_at, data = excluded.data
	`, time.Now().UTC().Format(time.RFC3339), string(data))
	if err != nil {
		return fmt.Errorf("save record: %w", err)
	}
	return nil
}

// LoadRecord reads the persisted record. A missing row yields the default
// record. A row that fails schema or invariant validation is malformed: it
// is replaced with the default record (with a stderr warning) rather than
// failing the session. Only storage unavailability is returned as an error.
func (s *Store) LoadRecord(ctx context.Context) (progress.Record, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM record WHERE id = 1`).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return progress.Default(), nil
	}
	if err != nil {
		return progress.Default(), fmt.Errorf("load record: %w", err)
	}

	rec, err := s.decodeRecord(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: stored progress record is malformed (%v), resetting\n", err)
		rec = progress.Default()
		if saveErr := s.SaveRecord(ctx, rec); saveErr != nil {
			return rec, saveErr
		}
	}
	return rec, nil
}

func (s *Store) decodeRecord(data string) (progress.Record, error) {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(data))
	if err != nil {
		return progress.Record{}, fmt.Errorf("parse: %w", err)
	}
	if err := s.schema.Validate(doc); err != nil {
		return progress.Record{}, fmt.Errorf("schema: %w", err)
	}

	var stored storedRecord
	if err := json.Unmarshal([]byte(data), &stored); err != nil {
		return progress.Record{}, fmt.Errorf("unmarshal: %w", err)
	}
	if err := stored.Record.Validate(); err != nil {
		return progress.Record{}, fmt.Errorf("invariants: %w", err)
	}
	return stored.Record, nil
}

// Reset wipes the record and the journal, returning the learner to the
// default zeroed state.
func (s *Store) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM record`); err != nil {
		return fmt.Errorf("reset record: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM journal`); err != nil {
		return fmt.Errorf("reset journal: %w", err)
	}
	return nil
}
