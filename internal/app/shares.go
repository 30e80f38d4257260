package app

import (
	"context"

	"github.com/abhisek/wonder/internal/share"
	"github.com/abhisek/wonder/internal/store"
)

// PublishShare validates and stores a new idea share.
func (e *Engine) PublishShare(ctx context.Context, in share.PublishInput) (share.IdeaShare, error) {
	s, err := e.shares.Publish(in)
	if err != nil {
		return share.IdeaShare{}, err
	}
	e.log.Debug("share published", "id", s.ID, "author", s.Author, "visibility", s.Visibility)
	e.record("share", func(j store.EventRepo) error {
		return j.AppendShareEvent(ctx, store.ShareEventData{
			Action:     store.SharePublished,
			ShareID:    s.ID,
			Author:     s.Author,
			Visibility: string(s.Visibility),
			Handles:    s.AuthorizedHandles,
		})
	})
	return s, nil
}

// AuthorizeShare grants more handles access to a connections share.
func (e *Engine) AuthorizeShare(ctx context.Context, id string, handles []string) (share.IdeaShare, error) {
	s, err := e.shares.Authorize(id, handles)
	if err != nil {
		return share.IdeaShare{}, err
	}
	e.log.Debug("share authorized", "id", s.ID, "handles", s.AuthorizedHandles)
	e.record("share", func(j store.EventRepo) error {
		return j.AppendShareEvent(ctx, store.ShareEventData{
			Action:     store.ShareAuthorized,
			ShareID:    s.ID,
			Author:     s.Author,
			Visibility: string(s.Visibility),
			Handles:    s.AuthorizedHandles,
		})
	})
	return s, nil
}

// Share looks up a share by id without a visibility check.
func (e *Engine) Share(id string) (share.IdeaShare, error) {
	return e.shares.Get(id)
}

// Shares lists the shares viewer may see, newest first.
func (e *Engine) Shares(viewer string) []share.IdeaShare {
	return e.shares.List(viewer)
}

// Matches ranks visible shares by tag affinity with viewer.
func (e *Engine) Matches(viewer string, limit int) ([]share.Match, error) {
	return e.shares.Affinity(viewer, limit)
}

// CompareHandles contrasts the tags two authors have shared.
func (e *Engine) CompareHandles(a, b string) share.Comparison {
	return e.shares.CompareHandles(a, b)
}
