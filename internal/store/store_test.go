package store

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{"events", "global_sequence"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Fatalf("query sqlite_master for %s: %v", table, err)
		}
		if name != table {
			t.Errorf("table name = %q, want %q", name, table)
		}
	}
}

func TestOpenFileCreatesDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "wonder.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	var mode string
	if err := s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
}

func TestReopenKeepsEventsAndIndex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wonder.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.EventRepo().AppendConceptEvent(ctx, ConceptEventData{Action: ConceptAdded, Concept: "Python"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	s.Close()

	// Migration runs again on an existing schema.
	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	var index string
	err = s.DB().QueryRow(
		"SELECT name FROM sqlite_master WHERE type='index' AND name='events_kind_subject'",
	).Scan(&index)
	if err != nil {
		t.Fatalf("events index missing: %v", err)
	}

	repo := s.EventRepo()
	if err := repo.AppendConceptEvent(ctx, ConceptEventData{Action: ConceptAdded, Concept: "FastAPI"}); err != nil {
		t.Fatalf("append after reopen: %v", err)
	}
	events, err := repo.QueryEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 2 || events[0].Sequence != 2 || events[1].Subject != "Python" {
		t.Errorf("events after reopen = %+v, want FastAPI(2) then Python(1)", events)
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Should be monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestAppendAndQueryEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	appends := []func() error{
		func() error {
			return repo.AppendConceptEvent(ctx, ConceptEventData{Action: ConceptAdded, Concept: "Python"})
		},
		func() error {
			return repo.AppendConceptEvent(ctx, ConceptEventData{Action: RelationshipAdded, Concept: "Python", Target: "FastAPI"})
		},
		func() error {
			return repo.AppendSessionEvent(ctx, SessionEventData{Action: SessionCreated, ID: "s1", Name: "Sprint", Concepts: []string{"Python"}})
		},
		func() error {
			return repo.AppendShareEvent(ctx, ShareEventData{Action: SharePublished, ShareID: "sh1", Author: "alpha", Visibility: "public"})
		},
	}
	for i, fn := range appends {
		if err := fn(); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	events, err := repo.QueryEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 4 {
		t.Fatalf("events = %d, want 4", len(events))
	}

	// Newest first.
	for i, want := range []int64{4, 3, 2, 1} {
		if events[i].Sequence != want {
			t.Errorf("events[%d].Sequence = %d, want %d", i, events[i].Sequence, want)
		}
	}
	if events[0].Kind != KindShare || events[0].Subject != "sh1" {
		t.Errorf("events[0] = %s/%s, want share/sh1", events[0].Kind, events[0].Subject)
	}

	var link ConceptEventData
	if err := json.Unmarshal(events[2].Payload, &link); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if link.Target != "FastAPI" {
		t.Errorf("payload target = %q, want FastAPI", link.Target)
	}
	if events[2].Correct != nil {
		t.Error("concept events should not carry a correctness flag")
	}
}

func TestQueryEventsFilters(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, c := range []string{"A", "B", "A", "C"} {
		if err := repo.AppendConceptEvent(ctx, ConceptEventData{Action: ConceptAdded, Concept: c}); err != nil {
			t.Fatalf("append %s: %v", c, err)
		}
	}
	if err := repo.AppendShareEvent(ctx, ShareEventData{Action: SharePublished, ShareID: "x"}); err != nil {
		t.Fatalf("append share: %v", err)
	}

	tests := []struct {
		name string
		opts QueryOpts
		want []int64
	}{
		{"kind", QueryOpts{Kind: KindConcept}, []int64{4, 3, 2, 1}},
		{"subject", QueryOpts{Kind: KindConcept, Subject: "A"}, []int64{3, 1}},
		{"limit", QueryOpts{Limit: 2}, []int64{5, 4}},
		{"after", QueryOpts{After: 3}, []int64{5, 4}},
		{"before", QueryOpts{Before: 3}, []int64{2, 1}},
		{"window", QueryOpts{After: 1, Before: 5}, []int64{4, 3, 2}},
		{"future", QueryOpts{From: time.Now().Add(time.Hour)}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := repo.QueryEvents(ctx, tt.opts)
			if err != nil {
				t.Fatalf("query: %v", err)
			}
			var got []int64
			for _, e := range events {
				got = append(got, e.Sequence)
			}
			if fmt.Sprint(got) != fmt.Sprint(tt.want) {
				t.Errorf("sequences = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestQuizAccuracy(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	acc, err := repo.QuizAccuracy(ctx, "Python")
	if err != nil {
		t.Fatalf("accuracy (empty): %v", err)
	}
	if acc != 0 {
		t.Errorf("accuracy = %v, want 0 with no answers", acc)
	}

	events := []QuizEventData{
		{Action: QuizGenerated, QuestionID: "q1", Concept: "Python", Template: "description"},
		{Action: QuizGraded, QuestionID: "q1", Concept: "Python", Selected: 1, Correct: true},
		{Action: QuizGraded, QuestionID: "q1", Concept: "Python", Selected: 2, Correct: false},
		{Action: QuizGraded, QuestionID: "q2", Concept: "Python", Selected: 0, Correct: true},
		{Action: QuizGraded, QuestionID: "q3", Concept: "FastAPI", Selected: 0, Correct: false},
	}
	for i, e := range events {
		if err := repo.AppendQuizEvent(ctx, e); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	acc, err = repo.QuizAccuracy(ctx, "Python")
	if err != nil {
		t.Fatalf("accuracy: %v", err)
	}
	want := 2.0 / 3.0
	if acc != want {
		t.Errorf("accuracy = %v, want %v", acc, want)
	}

	graded, err := repo.QueryEvents(ctx, QueryOpts{Kind: KindQuiz, Subject: "FastAPI"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(graded) != 1 || graded[0].Correct == nil || *graded[0].Correct {
		t.Errorf("FastAPI graded events = %+v, want one incorrect answer", graded)
	}
}

func TestQuizPayloadKeepsZeroAnswer(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	err := repo.AppendQuizEvent(ctx, QuizEventData{
		Action: QuizGraded, QuestionID: "q1", Concept: "Python", Selected: 0, Correct: false,
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	events, err := repo.QueryEvents(ctx, QueryOpts{Kind: KindQuiz})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}

	var payload map[string]any
	if err := json.Unmarshal(events[0].Payload, &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if v, ok := payload["selected"]; !ok || v != float64(0) {
		t.Errorf("payload selected = %v (present %v), want 0", v, ok)
	}
	if v, ok := payload["correct"]; !ok || v != false {
		t.Errorf("payload correct = %v (present %v), want false", v, ok)
	}
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("default path: %v", err)
	}
	want := filepath.Join(dir, "wonder", "wonder.db")
	if got != want {
		t.Errorf("path = %q, want %q", got, want)
	}
}
