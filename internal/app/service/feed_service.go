package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"engagement-service/internal/domain"
)

// Cache validity windows for feed-shaped payloads. Feed keys are also
// evicted explicitly by every engagement mutation.
const (
	feedTTL  = time.Minute
	usersTTL = 5 * time.Minute
)

// FeedService is the paginated, filtered read model of the dashboard. It
// composes the content listing and the users sidebar into one page; both
// upstream reads must complete before a page is considered loaded.
type FeedService struct {
	api    domain.ContentAPI
	cache  domain.Cache
	logger *zap.Logger
}

// NewFeedService creates a new FeedService.
func NewFeedService(api domain.ContentAPI, cache domain.Cache, logger *zap.Logger) *FeedService {
	return &FeedService{
		api:    api,
		cache:  cache,
		logger: logger,
	}
}

// Load produces one ordered page of the dashboard. A non-empty query
// switches to search mode: results come from the search endpoint and
// pagination is suppressed, since upstream search is unpaginated.
func (f *FeedService) Load(ctx context.Context, params domain.FeedParams) (*domain.FeedPage, error) {
	params.Validate()

	if params.SearchMode() {
		return f.search(ctx, params)
	}

	var cached domain.FeedPage
	if f.cache.Get(ctx, feedKey(params), &cached) {
		return &cached, nil
	}

	var (
		wg       sync.WaitGroup
		contents *domain.ContentPage
		users    []*domain.UserSummary
		cErr     error
		uErr     error
	)

	kind, _ := params.Filter.Kind()

	wg.Add(2)
	go func() {
		defer wg.Done()
		contents, cErr = f.api.ListContents(ctx, params.Page, params.PageSize, kind)
	}()
	go func() {
		defer wg.Done()
		users, uErr = f.listUsers(ctx)
	}()
	wg.Wait()

	if cErr != nil {
		return nil, fmt.Errorf("load feed page %d: %w", params.Page, cErr)
	}
	if uErr != nil {
		return nil, fmt.Errorf("load feed users: %w", uErr)
	}

	page := &domain.FeedPage{
		Contents:   contents.Contents,
		Users:      users,
		Pagination: domain.NewPagination(contents.Total, params),
		Filter:     params.Filter,
	}

	f.cache.Put(ctx, feedKey(params), page, feedTTL)

	f.logger.Debug("feed page loaded",
		zap.Int("page", params.Page),
		zap.String("filter", string(params.Filter)),
		zap.Int("contents", len(page.Contents)),
		zap.Int("total", contents.Total),
	)

	return page, nil
}

// search loads the unpaginated search view. Users still load alongside,
// and both reads must complete.
func (f *FeedService) search(ctx context.Context, params domain.FeedParams) (*domain.FeedPage, error) {
	var (
		wg       sync.WaitGroup
		contents []*domain.ContentRecord
		users    []*domain.UserSummary
		cErr     error
		uErr     error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		contents, cErr = f.api.SearchContents(ctx, params.Query)
	}()
	go func() {
		defer wg.Done()
		users, uErr = f.listUsers(ctx)
	}()
	wg.Wait()

	if cErr != nil {
		return nil, fmt.Errorf("search %q: %w", params.Query, cErr)
	}
	if uErr != nil {
		return nil, fmt.Errorf("load feed users: %w", uErr)
	}

	return &domain.FeedPage{
		Contents: contents,
		Users:    users,
		Pagination: domain.Pagination{
			Page:       1,
			PageSize:   len(contents),
			TotalItems: len(contents),
			TotalPages: 1,
		},
		Filter:     params.Filter,
		SearchMode: true,
	}, nil
}

func (f *FeedService) listUsers(ctx context.Context) ([]*domain.UserSummary, error) {
	var cached []*domain.UserSummary
	if f.cache.Get(ctx, KeyUsers, &cached) {
		return cached, nil
	}

	users, err := f.api.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	f.cache.Put(ctx, KeyUsers, users, usersTTL)

	return users, nil
}

// Warm pre-loads the first page of the unfiltered feed into the cache.
// Used by the warmup job; failures are logged, not propagated, since
// warming is an optimization.
func (f *FeedService) Warm(ctx context.Context) {
	params := domain.DefaultFeedParams()
	f.cache.Invalidate(ctx, feedKey(params))

	if _, err := f.Load(ctx, params); err != nil {
		f.logger.Warn("feed warmup failed", zap.Error(err))

		return
	}

	f.logger.Debug("feed warmed")
}
