package app

import (
	"context"

	"github.com/abhisek/wonder/internal/session"
	"github.com/abhisek/wonder/internal/store"
)

// CreateSession validates and stores a new learning session.
func (e *Engine) CreateSession(ctx context.Context, in session.SessionInput) (session.LearningSession, error) {
	s, err := e.sessions.CreateSession(in)
	if err != nil {
		return session.LearningSession{}, err
	}
	e.log.Debug("session created", "id", s.ID, "name", s.Name, "concepts", s.LinkedConcepts)
	e.record("session", func(j store.EventRepo) error {
		return j.AppendSessionEvent(ctx, store.SessionEventData{
			Action:   store.SessionCreated,
			ID:       s.ID,
			Name:     s.Name,
			Status:   s.Status,
			Concepts: s.LinkedConcepts,
		})
	})
	return s, nil
}

// UpdateSession changes a session's status or current focus.
func (e *Engine) UpdateSession(ctx context.Context, id string, upd session.SessionUpdate) (session.LearningSession, error) {
	s, err := e.sessions.UpdateSession(id, upd)
	if err != nil {
		return session.LearningSession{}, err
	}
	e.log.Debug("session updated", "id", s.ID, "status", s.Status)
	e.record("session", func(j store.EventRepo) error {
		return j.AppendSessionEvent(ctx, store.SessionEventData{
			Action: store.SessionUpdated,
			ID:     s.ID,
			Name:   s.Name,
			Status: s.Status,
		})
	})
	return s, nil
}

// Session looks up a learning session by id.
func (e *Engine) Session(id string) (session.LearningSession, error) {
	return e.sessions.GetSession(id)
}

// Sessions lists sessions, newest first.
func (e *Engine) Sessions() []session.LearningSession {
	return e.sessions.ListSessions()
}

// CreateCurriculum validates and stores a new curriculum.
func (e *Engine) CreateCurriculum(ctx context.Context, in session.CurriculumInput) (session.Curriculum, error) {
	c, err := e.sessions.CreateCurriculum(in)
	if err != nil {
		return session.Curriculum{}, err
	}
	e.log.Debug("curriculum created", "id", c.ID, "title", c.Title)
	e.record("curriculum", func(j store.EventRepo) error {
		return j.AppendSessionEvent(ctx, store.SessionEventData{
			Action:   store.CurriculumCreated,
			ID:       c.ID,
			Name:     c.Title,
			Concepts: c.LinkedConcepts,
		})
	})
	return c, nil
}

// Curriculum looks up a curriculum by id.
func (e *Engine) Curriculum(id string) (session.Curriculum, error) {
	return e.sessions.GetCurriculum(id)
}

// Curricula lists curricula, newest first.
func (e *Engine) Curricula() []session.Curriculum {
	return e.sessions.ListCurricula()
}
