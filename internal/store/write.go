package store

import (
	"context"
	"fmt"
	"time"

	"github.com/dantswain/nushell/internal/value"
)

// Entry is one recorded pipeline evaluation.
type Entry struct {
	// ID is a content-addressed hash of (RunToken, Source, ResultJSON).
	ID string

	// RunToken identifies the CLI invocation that produced the entry.
	RunToken string

	// Name is the pipeline name from the definition, if any.
	Name string

	// Source is the pipeline source text that was evaluated.
	Source string

	// ResultJSON is the evaluation result as canonical JSON.
	ResultJSON string

	// DurationMS is the wall-clock evaluation time in milliseconds.
	DurationMS int64

	// CreatedAt is the recording time in RFC 3339 format, UTC.
	CreatedAt string
}

// NewEntry builds a history entry for an evaluation result. The entry
// ID is derived from the run token, the source, and the canonical JSON
// of the result, so identical evaluations map to the same ID.
func NewEntry(runToken, name, source string, result value.Value, duration time.Duration) (Entry, error) {
	resultJSON, err := value.MarshalCanonical(result)
	if err != nil {
		return Entry{}, fmt.Errorf("marshal result: %w", err)
	}

	id, err := value.HistoryEntryID(runToken, source, result)
	if err != nil {
		return Entry{}, fmt.Errorf("hash entry: %w", err)
	}

	return Entry{
		ID:         id,
		RunToken:   runToken,
		Name:       name,
		Source:     source,
		ResultJSON: string(resultJSON),
		DurationMS: duration.Milliseconds(),
		CreatedAt:  time.Now().UTC().Format(time.RFC3339Nano),
	}, nil
}

// WriteEntry inserts a history entry. Uses ON CONFLICT(id) DO NOTHING
// for idempotency - re-recording the same evaluation is silently
// ignored. Other constraint violations still return errors.
func (s *Store) WriteEntry(ctx context.Context, e Entry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO history
		(id, run_token, name, source, result_json, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		e.ID,
		e.RunToken,
		e.Name,
		e.Source,
		e.ResultJSON,
		e.DurationMS,
		e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("write history entry: %w", err)
	}

	return nil
}
