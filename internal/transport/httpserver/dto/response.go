package dto

import (
	"time"

	"engagement-service/internal/domain"
)

// CommentResponse represents a comment on a content record. Answers
// additionally carry their lifecycle state and the viewer's current vote.
type CommentResponse struct {
	Index     int    `json:"index"`
	UserID    string `json:"user_id"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`

	IsAnswer   bool   `json:"is_answer"`
	Accepted   bool   `json:"accepted,omitempty"`
	State      string `json:"state,omitempty"`
	Votes      int    `json:"votes"`
	ViewerVote string `json:"viewer_vote,omitempty"`
}

// ContentResponse represents a single content record as the UI consumes it:
// resolved card fields, engagement counts, the viewer's own engagement
// flags, and comments with answers in display order.
type ContentResponse struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Owner string `json:"owner"`

	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`

	Likes   int `json:"likes"`
	Saves   int `json:"saves"`
	Reposts int `json:"reposts"`

	Liked    bool `json:"liked"`
	Saved    bool `json:"saved"`
	Reposted bool `json:"reposted"`

	Solved      bool              `json:"solved,omitempty"`
	CanAccept   bool              `json:"can_accept,omitempty"`
	Comments    []CommentResponse `json:"comments,omitempty"`
	AnswerOrder []int             `json:"answer_order,omitempty"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// FromContent converts a domain record to a ContentResponse as seen by
// the given viewer. An empty viewer yields the anonymous view: all
// engagement flags false, no accept control.
func FromContent(r *domain.ContentRecord, viewer string) ContentResponse {
	card := domain.ResolveCard(r)

	resp := ContentResponse{
		ID:          r.ID,
		Type:        string(r.ContentType),
		Owner:       r.UserID,
		Title:       card.Title,
		Description: card.Description,
		Image:       card.Image,
		Likes:       r.LikeCount(),
		Saves:       r.SaveCount(),
		Reposts:     r.RepostCount(),
		Liked:       r.HasLiked(viewer),
		Saved:       r.HasSaved(viewer),
		Reposted:    r.HasReposted(viewer),
		Solved:      r.Solved,
		CanAccept:   domain.CanAccept(r, viewer),
		CreatedAt:   r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   r.UpdatedAt.Format(time.RFC3339),
	}

	for i, c := range r.Comments {
		cr := CommentResponse{
			Index:     i,
			UserID:    c.UserID,
			Text:      c.Text,
			CreatedAt: c.CreatedAt.Format(time.RFC3339),
			IsAnswer:  c.IsAnswer,
			Accepted:  c.AcceptedAnswer,
			Votes:     c.Votes,
		}
		if c.IsAnswer {
			cr.State = string(domain.StateOf(c))
			if v, ok := c.VoteBy(viewer); ok {
				cr.ViewerVote = string(v.Direction)
			}
		}
		resp.Comments = append(resp.Comments, cr)
	}

	if r.IsQuestion() {
		resp.AnswerOrder = domain.OrderAnswers(r.Comments)
	}

	return resp
}

// UserResponse represents a user summary in the feed sidebar.
type UserResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// FeedResponse represents one dashboard feed page.
type FeedResponse struct {
	Contents   []ContentResponse `json:"contents"`
	Users      []UserResponse    `json:"users"`
	Pagination domain.Pagination `json:"pagination"`
	Filter     string            `json:"filter"`
	SearchMode bool              `json:"search_mode"`
}

// FromFeedPage converts a loaded feed page to a FeedResponse as seen by
// the given viewer.
func FromFeedPage(page *domain.FeedPage, viewer string) FeedResponse {
	contents := make([]ContentResponse, len(page.Contents))
	for i, c := range page.Contents {
		contents[i] = FromContent(c, viewer)
	}

	users := make([]UserResponse, len(page.Users))
	for i, u := range page.Users {
		users[i] = UserResponse{ID: u.ID, Name: u.Name, Avatar: u.Avatar}
	}

	return FeedResponse{
		Contents:   contents,
		Users:      users,
		Pagination: page.Pagination,
		Filter:     string(page.Filter),
		SearchMode: page.SearchMode,
	}
}

// ProfileResponse represents a CV profile.
type ProfileResponse struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	IsPublic  bool           `json:"is_public"`
	Fields    map[string]any `json:"fields,omitempty"`
	UpdatedAt string         `json:"updated_at"`
}

// FromProfile converts a domain profile to a ProfileResponse.
func FromProfile(p *domain.Profile) ProfileResponse {
	return ProfileResponse{
		ID:        p.ID,
		UserID:    p.UserID,
		IsPublic:  p.IsPublic,
		Fields:    p.Fields,
		UpdatedAt: p.UpdatedAt.Format(time.RFC3339),
	}
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Code    string      `json:"code,omitempty"`
	Details interface{} `json:"details,omitempty"`
}
