package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// sequenceCounter hands out the global monotonic sequence stamped on every
// journal event. The mutex serializes within the process; the RETURNING
// clause makes the increment atomic at the database level.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

// newSequenceCounter creates a counter and ensures the tracking table exists.
func newSequenceCounter(db *sql.DB) (*sequenceCounter, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`)
	if err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}

	_, err = db.Exec(`INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`)
	if err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}

	return &sequenceCounter{db: db}, nil
}

// Next atomically returns the next sequence number and increments the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	err := sc.db.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}

// eventRepo implements EventRepo on the events table.
type eventRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
	now func() time.Time
}

// record is one row headed for the events table.
type record struct {
	kind    Kind
	action  string
	subject string
	correct *bool
	payload any
}

func (r *eventRepo) append(ctx context.Context, rec record) error {
	payload, err := json.Marshal(rec.payload)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", rec.kind, err)
	}

	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	var correct any
	if rec.correct != nil {
		correct = boolToInt(*rec.correct)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(eventsTable).
		Columns("sequence", "timestamp", "kind", "action", "subject", "correct", "payload").
		Values(seqNum, r.now().UnixMilli(), string(rec.kind), rec.action, rec.subject, correct, string(payload)).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save %s event: %w", rec.kind, err)
	}
	return nil
}

func (r *eventRepo) AppendConceptEvent(ctx context.Context, data ConceptEventData) error {
	return r.append(ctx, record{kind: KindConcept, action: data.Action, subject: data.Concept, payload: data})
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	return r.append(ctx, record{kind: KindSession, action: data.Action, subject: data.ID, payload: data})
}

func (r *eventRepo) AppendQuizEvent(ctx context.Context, data QuizEventData) error {
	rec := record{kind: KindQuiz, action: data.Action, subject: data.Concept, payload: data}
	if data.Action == QuizGraded {
		correct := data.Correct
		rec.correct = &correct
	}
	return r.append(ctx, rec)
}

func (r *eventRepo) AppendShareEvent(ctx context.Context, data ShareEventData) error {
	return r.append(ctx, record{kind: KindShare, action: data.Action, subject: data.ShareID, payload: data})
}

func (r *eventRepo) QueryEvents(ctx context.Context, opts QueryOpts) ([]Event, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select("sequence", "timestamp", "kind", "action", "subject", "correct", "payload").
		From(entsql.Table(eventsTable))

	if opts.Kind != "" {
		sel.Where(entsql.EQ("kind", string(opts.Kind)))
	}
	if opts.Subject != "" {
		sel.Where(entsql.EQ("subject", opts.Subject))
	}
	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("timestamp", opts.From.UnixMilli()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("timestamp", opts.To.UnixMilli()))
	}
	sel.OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var (
			e       Event
			ts      int64
			kind    string
			correct sql.NullInt64
			payload string
		)
		if err := rows.Scan(&e.Sequence, &ts, &kind, &e.Action, &e.Subject, &correct, &payload); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		e.Timestamp = time.UnixMilli(ts).UTC()
		e.Kind = Kind(kind)
		if correct.Valid {
			c := correct.Int64 == 1
			e.Correct = &c
		}
		e.Payload = json.RawMessage(payload)
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}

func (r *eventRepo) QuizAccuracy(ctx context.Context, concept string) (float64, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("correct").
		From(entsql.Table(eventsTable)).
		Where(entsql.And(
			entsql.EQ("kind", string(KindQuiz)),
			entsql.EQ("subject", concept),
			entsql.NotNull("correct"),
		)).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return 0, fmt.Errorf("query quiz accuracy: %w", err)
	}
	defer rows.Close()

	total, correct := 0, 0
	for rows.Next() {
		var c int64
		if err := rows.Scan(&c); err != nil {
			return 0, fmt.Errorf("scan quiz accuracy: %w", err)
		}
		total++
		if c == 1 {
			correct++
		}
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("iterate quiz accuracy: %w", err)
	}
	if total == 0 {
		return 0, nil
	}
	return float64(correct) / float64(total), nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
