// Package dto provides Data Transfer Objects for HTTP requests and responses.
package dto

import "engagement-service/internal/domain"

// FeedRequest represents the query parameters for loading the dashboard feed.
type FeedRequest struct {
	Query    string `query:"q" validate:"max=200"`
	Filter   string `query:"filter" validate:"omitempty,feedfilter"`
	Page     int    `query:"page" validate:"omitempty,min=1"`
	PageSize int    `query:"page_size" validate:"omitempty,min=1,max=50"`
}

// ToFeedParams converts FeedRequest to domain.FeedParams. A non-empty
// query switches the feed into search mode; paging inputs are left to
// FeedParams.Validate to clamp.
func (r *FeedRequest) ToFeedParams() domain.FeedParams {
	params := domain.DefaultFeedParams()

	params.Query = r.Query
	if r.Filter != "" {
		params.Filter = domain.FeedFilter(r.Filter)
	}
	if r.Page > 0 {
		params.Page = r.Page
	}
	if r.PageSize > 0 {
		params.PageSize = r.PageSize
	}

	return params
}

// RepostRequest represents the request body for reposting content.
type RepostRequest struct {
	Note string `json:"note" validate:"max=500"`
}

// CommentRequest represents the request body for posting a comment or
// an answer.
type CommentRequest struct {
	Text string `json:"text" validate:"required,max=5000"`
}

// VoteRequest represents the request body for voting on an answer.
type VoteRequest struct {
	Direction string `json:"direction" validate:"required,votedir"`
}

// ProfileUpdateRequest represents the request body for updating the acting
// user's profile. Fields is passed through opaquely.
type ProfileUpdateRequest struct {
	IsPublic bool           `json:"is_public"`
	Fields   map[string]any `json:"fields"`
}

// ToProfile converts the request into a domain profile for the given
// identity.
func (r *ProfileUpdateRequest) ToProfile(id, userID string) *domain.Profile {
	return &domain.Profile{
		ID:       id,
		UserID:   userID,
		IsPublic: r.IsPublic,
		Fields:   r.Fields,
	}
}
