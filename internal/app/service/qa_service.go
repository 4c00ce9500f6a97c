package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"engagement-service/internal/domain"
)

// QAService manages comments-as-answers on Question content: posting,
// voting, and answer acceptance.
//
// The accepted-answer exclusivity rule is arbitrated by the server; this
// service only requests transitions and applies whatever accepted-state
// comes back. It never computes a vote tally locally.
type QAService struct {
	api        domain.ContentAPI
	cache      domain.Cache
	store      *recordStore
	engagement *EngagementService
	logger     *zap.Logger
}

// NewQAService creates a new QAService sharing the engagement service's
// record store, so QA mutations and engagement toggles sequence against
// the same per-record counter.
func NewQAService(api domain.ContentAPI, cache domain.Cache, engagement *EngagementService, logger *zap.Logger) *QAService {
	return &QAService{
		api:        api,
		cache:      cache,
		store:      engagement.store,
		engagement: engagement,
		logger:     logger,
	}
}

// PostComment appends a plain comment to any content kind.
func (q *QAService) PostComment(ctx context.Context, contentID, userID, text string) (*domain.ContentRecord, error) {
	if userID == "" {
		return nil, domain.ErrAuthenticationRequired
	}
	if text == "" {
		return nil, fmt.Errorf("%w: empty comment", domain.ErrValidationRejected)
	}

	entry := q.store.entry(contentID)
	stamp := entry.stamp()

	updated, err := q.api.PostComment(ctx, contentID, userID, text)
	if err != nil {
		return nil, fmt.Errorf("post comment on %s: %w", contentID, err)
	}

	q.applyMutation(ctx, entry, contentID, stamp, updated)

	return updated, nil
}

// PostAnswer appends an answer. Valid only when the record is Question
// content; the comments sequence is replaced from the response.
func (q *QAService) PostAnswer(ctx context.Context, contentID, userID, text string) (*domain.ContentRecord, error) {
	if userID == "" {
		return nil, domain.ErrAuthenticationRequired
	}
	if text == "" {
		return nil, fmt.Errorf("%w: empty answer", domain.ErrValidationRejected)
	}

	current, err := q.engagement.GetContent(ctx, contentID)
	if err != nil {
		return nil, err
	}
	if !current.IsQuestion() {
		return nil, fmt.Errorf("%w: answers are only valid on questions", domain.ErrValidationRejected)
	}

	entry := q.store.entry(contentID)
	stamp := entry.stamp()

	updated, err := q.api.PostAnswer(ctx, contentID, userID, text)
	if err != nil {
		return nil, fmt.Errorf("post answer on %s: %w", contentID, err)
	}

	q.applyMutation(ctx, entry, contentID, stamp, updated)

	return updated, nil
}

// Vote records the acting user's vote on the answer at index. Repeating
// the same direction is still sent; the server treats it as an idempotent
// no-op. A changed direction overwrites the previous vote, moving the
// tally by up to 2. The returned record carries the authoritative tally
// and voted-by list.
func (q *QAService) Vote(ctx context.Context, contentID string, index int, userID string, direction domain.VoteDirection) (*domain.ContentRecord, error) {
	if userID == "" {
		return nil, domain.ErrAuthenticationRequired
	}
	if !direction.Valid() {
		return nil, fmt.Errorf("%w: unknown vote direction %q", domain.ErrValidationRejected, direction)
	}

	current, err := q.engagement.GetContent(ctx, contentID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(current.Comments) || !current.Comments[index].IsAnswer {
		return nil, fmt.Errorf("%w: no answer at index %d", domain.ErrValidationRejected, index)
	}

	if prev, ok := current.Comments[index].VoteBy(userID); ok && prev.Direction == direction {
		q.logger.Debug("repeated same-direction vote, sending anyway",
			zap.String("content_id", contentID),
			zap.Int("index", index),
		)
	}

	entry := q.store.entry(contentID)
	stamp := entry.stamp()

	updated, err := q.api.VoteAnswer(ctx, contentID, index, userID, direction)
	if err != nil {
		return nil, fmt.Errorf("vote on %s[%d]: %w", contentID, index, err)
	}

	q.applyMutation(ctx, entry, contentID, stamp, updated)

	return updated, nil
}

// Accept requests acceptance of the answer at index. Permitted only for
// the question's owner while the question is unsolved; that gate hides
// the control client-side, while the server remains the arbiter of the
// invariant and of acceptance exclusivity.
func (q *QAService) Accept(ctx context.Context, contentID string, index int, userID string) (*domain.ContentRecord, error) {
	if userID == "" {
		return nil, domain.ErrAuthenticationRequired
	}

	current, err := q.engagement.GetContent(ctx, contentID)
	if err != nil {
		return nil, err
	}
	if !domain.CanAccept(current, userID) {
		return nil, fmt.Errorf("%w: acceptance not permitted", domain.ErrValidationRejected)
	}
	if index < 0 || index >= len(current.Comments) || !current.Comments[index].IsAnswer {
		return nil, fmt.Errorf("%w: no answer at index %d", domain.ErrValidationRejected, index)
	}

	entry := q.store.entry(contentID)
	stamp := entry.stamp()

	updated, err := q.api.AcceptAnswer(ctx, contentID, index, userID)
	if err != nil {
		return nil, fmt.Errorf("accept answer %s[%d]: %w", contentID, index, err)
	}

	q.applyMutation(ctx, entry, contentID, stamp, updated)

	q.logger.Info("answer accepted",
		zap.String("content_id", contentID),
		zap.Int("index", index),
	)

	return updated, nil
}

// AnswerOrder returns the display order of a record's answers: accepted
// first, then by descending votes, ties by original position.
func (q *QAService) AnswerOrder(record *domain.ContentRecord) []int {
	return domain.OrderAnswers(record.Comments)
}

func (q *QAService) applyMutation(ctx context.Context, entry *recordEntry, contentID string, stamp uint64, updated *domain.ContentRecord) {
	if !entry.apply(stamp, updated) {
		q.logger.Debug("discarding superseded mutation response",
			zap.String("content_id", contentID),
			zap.Uint64("stamp", stamp),
		)
	}

	q.cache.Invalidate(ctx, contentKey(contentID))
	q.cache.InvalidatePrefix(ctx, feedPrefix)
}
