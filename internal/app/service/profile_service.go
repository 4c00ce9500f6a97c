package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"engagement-service/internal/domain"
)

// profileTTL is the validity window for cached CV profile reads.
const profileTTL = 5 * time.Minute

// ProfileService serves CV profile reads through the response cache and
// keeps the cache coherent across profile writes. Profile editing itself
// lives upstream; this service only moves documents and evicts keys.
type ProfileService struct {
	api    domain.ContentAPI
	cache  domain.Cache
	logger *zap.Logger
}

// NewProfileService creates a new ProfileService.
func NewProfileService(api domain.ContentAPI, cache domain.Cache, logger *zap.Logger) *ProfileService {
	return &ProfileService{
		api:    api,
		cache:  cache,
		logger: logger,
	}
}

// Current returns the acting user's own profile, or nil when none exists
// yet: a 404 on this read means "no resource yet", not a failure.
func (p *ProfileService) Current(ctx context.Context, userID string) (*domain.Profile, error) {
	if userID == "" {
		return nil, domain.ErrAuthenticationRequired
	}

	var cached domain.Profile
	if p.cache.Get(ctx, KeyCurrentProfile, &cached) {
		return &cached, nil
	}

	profile, err := p.api.GetProfile(ctx, userID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get current profile: %w", err)
	}

	p.cache.Put(ctx, KeyCurrentProfile, profile, profileTTL)

	return profile, nil
}

// ByID returns a profile by id. Absence propagates as ErrNotFound.
func (p *ProfileService) ByID(ctx context.Context, id string) (*domain.Profile, error) {
	return p.cachedRead(ctx, profileKey(id), func(ctx context.Context) (*domain.Profile, error) {
		return p.api.GetProfileByID(ctx, id)
	})
}

// Public returns the public view of a profile by id.
func (p *ProfileService) Public(ctx context.Context, id string) (*domain.Profile, error) {
	return p.cachedRead(ctx, publicProfileKey(id), func(ctx context.Context) (*domain.Profile, error) {
		return p.api.GetPublicProfile(ctx, id)
	})
}

func (p *ProfileService) cachedRead(ctx context.Context, key string, fetch func(context.Context) (*domain.Profile, error)) (*domain.Profile, error) {
	var cached domain.Profile
	if p.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	profile, err := fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	p.cache.Put(ctx, key, profile, profileTTL)

	return profile, nil
}

// Update replaces the acting user's profile and evicts every cached copy
// the write made stale, so the next read is forced fresh.
func (p *ProfileService) Update(ctx context.Context, userID string, profile *domain.Profile) (*domain.Profile, error) {
	if userID == "" {
		return nil, domain.ErrAuthenticationRequired
	}

	updated, err := p.api.UpdateProfile(ctx, userID, profile)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	p.invalidate(ctx, updated.ID)

	p.logger.Debug("profile updated",
		zap.String("user_id", userID),
		zap.String("profile_id", updated.ID),
	)

	return updated, nil
}

// Delete removes the acting user's profile and evicts its cached copies.
func (p *ProfileService) Delete(ctx context.Context, userID, profileID string) error {
	if userID == "" {
		return domain.ErrAuthenticationRequired
	}

	if err := p.api.DeleteProfile(ctx, userID); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}

	p.invalidate(ctx, profileID)

	return nil
}

func (p *ProfileService) invalidate(ctx context.Context, profileID string) {
	p.cache.Invalidate(ctx, KeyCurrentProfile)
	if profileID != "" {
		p.cache.Invalidate(ctx, profileKey(profileID))
		p.cache.Invalidate(ctx, publicProfileKey(profileID))
	}
}
