// Package service provides application use cases.
package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"engagement-service/internal/domain"
)

// contentTTL bounds how long a cached content detail stays valid.
const contentTTL = time.Minute

// EngagementService mutates the like/save/repost membership of content
// records on behalf of an acting user.
//
// Local state is never hand-patched: every action issues one remote
// mutation and replaces the held record wholesale with the server's
// authoritative response. Nothing changes locally before the server
// confirms, so the UI can never show an engagement the server rejected.
type EngagementService struct {
	api    domain.ContentAPI
	cache  domain.Cache
	store  *recordStore
	logger *zap.Logger
}

// NewEngagementService creates a new EngagementService owning a fresh
// record store. Held working copies share the detail cache's validity
// window, so neither layer serves a record older than contentTTL.
func NewEngagementService(api domain.ContentAPI, cache domain.Cache, logger *zap.Logger) *EngagementService {
	return &EngagementService{
		api:    api,
		cache:  cache,
		store:  newRecordStore(contentTTL),
		logger: logger,
	}
}

// GetContent returns the current record, preferring the held working copy,
// then the cache, then an upstream read.
func (s *EngagementService) GetContent(ctx context.Context, contentID string) (*domain.ContentRecord, error) {
	entry := s.store.entry(contentID)
	if rec := entry.current(); rec != nil {
		return rec, nil
	}

	var cached domain.ContentRecord
	if s.cache.Get(ctx, contentKey(contentID), &cached) {
		entry.setFromRead(&cached)
		return &cached, nil
	}

	record, err := s.api.GetContent(ctx, contentID)
	if err != nil {
		return nil, fmt.Errorf("get content %s: %w", contentID, err)
	}

	entry.setFromRead(record)
	s.cache.Put(ctx, contentKey(contentID), record, contentTTL)

	return record, nil
}

// ToggleLike likes the record when userID is not in the likes set and
// unlikes it otherwise. Returns the updated record.
func (s *EngagementService) ToggleLike(ctx context.Context, contentID, userID string) (*domain.ContentRecord, error) {
	return s.toggle(ctx, contentID, userID, "like",
		func(r *domain.ContentRecord) bool { return r.HasLiked(userID) },
		s.api.Like, s.api.Unlike,
	)
}

// ToggleSave saves the record when userID is not in the saves set and
// unsaves it otherwise. Returns the updated record.
func (s *EngagementService) ToggleSave(ctx context.Context, contentID, userID string) (*domain.ContentRecord, error) {
	updated, err := s.toggle(ctx, contentID, userID, "save",
		func(r *domain.ContentRecord) bool { return r.HasSaved(userID) },
		s.api.Save, s.api.Unsave,
	)
	if err != nil {
		return nil, err
	}

	// Saved items are embedded in the acting user's profile view.
	s.cache.Invalidate(ctx, KeyCurrentProfile)

	return updated, nil
}

type actionFunc func(ctx context.Context, contentID, userID string) (*domain.ContentRecord, error)

func (s *EngagementService) toggle(
	ctx context.Context,
	contentID, userID, kind string,
	isMember func(*domain.ContentRecord) bool,
	add, remove actionFunc,
) (*domain.ContentRecord, error) {
	if userID == "" {
		return nil, domain.ErrAuthenticationRequired
	}

	current, err := s.GetContent(ctx, contentID)
	if err != nil {
		return nil, err
	}

	entry := s.store.entry(contentID)
	stamp := entry.stamp()

	action := add
	removing := isMember(current)
	if removing {
		action = remove
	}

	updated, err := action(ctx, contentID, userID)
	if err != nil {
		// Left un-toggled: no local state changed before confirmation.
		return nil, fmt.Errorf("toggle %s on %s: %w", kind, contentID, err)
	}

	s.applyMutation(ctx, entry, contentID, stamp, updated)

	s.logger.Debug("engagement toggled",
		zap.String("content_id", contentID),
		zap.String("user_id", userID),
		zap.String("kind", kind),
		zap.Bool("removed", removing),
	)

	return updated, nil
}

// Repost issues a repost mutation carrying an optional note. The acting
// user joins the reposts set only via the server's returned record.
func (s *EngagementService) Repost(ctx context.Context, contentID, userID, note string) (*domain.ContentRecord, error) {
	if userID == "" {
		return nil, domain.ErrAuthenticationRequired
	}

	entry := s.store.entry(contentID)
	stamp := entry.stamp()

	updated, err := s.api.Repost(ctx, contentID, userID, note)
	if err != nil {
		return nil, fmt.Errorf("repost %s: %w", contentID, err)
	}

	s.applyMutation(ctx, entry, contentID, stamp, updated)

	return updated, nil
}

// Delete removes the record upstream and from every cached collection.
func (s *EngagementService) Delete(ctx context.Context, contentID, userID string) error {
	if userID == "" {
		return domain.ErrAuthenticationRequired
	}

	if err := s.api.DeleteContent(ctx, contentID, userID); err != nil {
		return fmt.Errorf("delete content %s: %w", contentID, err)
	}

	s.store.forget(contentID)
	s.cache.Invalidate(ctx, contentKey(contentID))
	s.cache.InvalidatePrefix(ctx, feedPrefix)

	return nil
}

// applyMutation installs a mutation response as the held record unless a
// later-stamped response already landed, and evicts every cache key the
// mutation made stale. Eviction happens regardless of the sequencing
// outcome: the remote record changed either way.
func (s *EngagementService) applyMutation(ctx context.Context, entry *recordEntry, contentID string, stamp uint64, updated *domain.ContentRecord) {
	if !entry.apply(stamp, updated) {
		s.logger.Debug("discarding superseded mutation response",
			zap.String("content_id", contentID),
			zap.Uint64("stamp", stamp),
		)
	}

	s.cache.Invalidate(ctx, contentKey(contentID))
	s.cache.InvalidatePrefix(ctx, feedPrefix)
}
