package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/abhisek/mathmate/internal/activity"
)

// JournalRecord is one row of the durable activity journal.
type JournalRecord struct {
	Seq   int64
	Entry activity.Entry
}

// QueryOpts filters journal queries.
type QueryOpts struct {
	Limit int           // max results (0 = unlimited)
	Type  activity.Type // filter by type ("" = all)
	From  time.Time     // At >= From
	To    time.Time     // At < To
}

// AppendJournal appends an entry to the journal. The journal is append-only:
// rows are never updated, corrections append compensating entries.
func (s *Store) AppendJournal(ctx context.Context, e activity.Entry) error {
	var score sql.NullInt64
	if e.Score != nil {
		score = sql.NullInt64{Int64: int64(*e.Score), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO journal (id, type, title, subject, score, at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, e.ID, string(e.Type), e.Title, e.Subject, score, e.At.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("append journal: %w", err)
	}
	return nil
}

// QueryJournal returns journal rows newest first.
func (s *Store) QueryJournal(ctx context.Context, opts QueryOpts) ([]JournalRecord, error) {
	q := `SELECT seq, id, type, title, subject, score, at FROM journal WHERE 1=1`
	args := []any{}

	if opts.Type != "" {
		q += ` AND type = ?`
		args = append(args, string(opts.Type))
	}
	if !opts.From.IsZero() {
		q += ` AND at >= ?`
		args = append(args, opts.From.UTC().Format(time.RFC3339Nano))
	}
	if !opts.To.IsZero() {
		q += ` AND at < ?`
		args = append(args, opts.To.UTC().Format(time.RFC3339Nano))
	}
	q += ` ORDER BY seq DESC`
	if opts.Limit > 0 {
		q += ` LIMIT ?`
		args = append(args, opts.Limit)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query journal: %w", err)
	}
	defer rows.Close()

	var out []JournalRecord
	for rows.Next() {
		var (
			rec   JournalRecord
			typ   string
			score sql.NullInt64
			at    string
		)
		if err := rows.Scan(&rec.Seq, &rec.Entry.ID, &typ, &rec.Entry.Title, &rec.Entry.Subject, &score, &at); err != nil {
			return nil, fmt.Errorf("scan journal row: %w", err)
		}
		rec.Entry.Type = activity.Type(typ)
		if score.Valid {
			v := int(score.Int64)
			rec.Entry.Score = &v
		}
		t, err := time.Parse(time.RFC3339Nano, at)
		if err != nil {
			return nil, fmt.Errorf("parse journal timestamp %q: %w", at, err)
		}
		rec.Entry.At = t
		out = append(out, rec)
	}
	return out, rows.Err()
}
