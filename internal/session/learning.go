package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/wonder/internal/keys"
)

// DefaultStatus is the status of a freshly created session.
const DefaultStatus = "active"

// LearningSession tracks a focused learning journey over a subset of the graph.
type LearningSession struct {
	ID             string
	Name           string
	Description    string
	FocusTags      []string
	LinkedConcepts []string
	Status         string
	CurrentFocus   *string
	CreatedAt      time.Time
}

func (s LearningSession) clone() LearningSession {
	s.FocusTags = append([]string(nil), s.FocusTags...)
	s.LinkedConcepts = append([]string(nil), s.LinkedConcepts...)
	if s.CurrentFocus != nil {
		focus := *s.CurrentFocus
		s.CurrentFocus = &focus
	}
	return s
}

// SessionInput holds the fields needed to create a session.
type SessionInput struct {
	Name           string
	Description    string
	FocusTags      []string
	LinkedConcepts []string
}

// SessionUpdate is a partial update. Nil fields are left untouched; a blank
// Status is ignored and a blank CurrentFocus clears the focus.
type SessionUpdate struct {
	Status       *string
	CurrentFocus *string
}

// CreateSession validates the input against the graph and stores a new session.
func (r *Registry) CreateSession(in SessionInput) (LearningSession, error) {
	linked, err := r.concepts.Resolve(in.LinkedConcepts)
	if err != nil {
		return LearningSession{}, fmt.Errorf("session concepts: %w", err)
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return LearningSession{}, ErrEmptyName
	}

	s := LearningSession{
		ID:             uuid.NewString(),
		Name:           name,
		Description:    strings.TrimSpace(in.Description),
		FocusTags:      keys.Tags(in.FocusTags),
		LinkedConcepts: linked,
		Status:         DefaultStatus,
		CreatedAt:      r.now(),
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	r.sessions[s.ID] = &entry[LearningSession]{seq: r.seq, value: s}
	return s.clone(), nil
}

// GetSession returns the session with the given id.
func (r *Registry) GetSession(id string) (LearningSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.sessions[id]
	if !ok {
		return LearningSession{}, fmt.Errorf("%w: %s", ErrUnknownSession, id)
	}
	return e.value.clone(), nil
}

// UpdateSession applies a partial status/focus update.
func (r *Registry) UpdateSession(id string, upd SessionUpdate) (LearningSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.sessions[id]
	if !ok {
		return LearningSession{}, fmt.Errorf("%w: %s", ErrUnknownSession, id)
	}
	if upd.Status != nil {
		if status := strings.TrimSpace(*upd.Status); status != "" {
			e.value.Status = status
		}
	}
	if upd.CurrentFocus != nil {
		if focus := strings.TrimSpace(*upd.CurrentFocus); focus != "" {
			e.value.CurrentFocus = &focus
		} else {
			e.value.CurrentFocus = nil
		}
	}
	return e.value.clone(), nil
}

// ListSessions returns all sessions, most recent first.
func (r *Registry) ListSessions() []LearningSession {
	r.mu.RLock()
	entries := make([]*entry[LearningSession], 0, len(r.sessions))
	for _, e := range r.sessions {
		entries = append(entries, &entry[LearningSession]{seq: e.seq, value: e.value.clone()})
	}
	r.mu.RUnlock()

	return newestFirst(entries, func(s LearningSession) time.Time { return s.CreatedAt })
}
