package upstream

import (
	"time"

	"engagement-service/internal/domain"
)

// Wire types for the upstream content/profile API. The upstream speaks
// camelCase JSON and addresses answers by index; everything converts to
// domain entities at this boundary.

type voteJSON struct {
	UserID   string `json:"userId"`
	VoteType string `json:"voteType"` // up | down
}

type commentJSON struct {
	UserID         string     `json:"userId"`
	Text           string     `json:"text"`
	CreatedAt      string     `json:"createdAt"`
	IsAnswer       bool       `json:"isAnswer"`
	AcceptedAnswer bool       `json:"acceptedAnswer"`
	Votes          int        `json:"votes"`
	VotedBy        []voteJSON `json:"votedBy"`
}

type contentJSON struct {
	ID          string         `json:"id"`
	ContentType string         `json:"contentType"`
	UserID      string         `json:"userId"`
	Likes       []string       `json:"likes"`
	Saves       []string       `json:"saves"`
	Reposts     []string       `json:"reposts"`
	Comments    []commentJSON  `json:"comments"`
	Solved      bool           `json:"solved"`
	IsPublic    bool           `json:"isPublic"`
	ExtraFields map[string]any `json:"extraFields"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Image       string         `json:"image"`
	CreatedAt   string         `json:"createdAt"`
	UpdatedAt   string         `json:"updatedAt"`
}

type listResponse struct {
	Contents   []contentJSON `json:"contents"`
	Pagination struct {
		Total int `json:"total"`
		Pages int `json:"pages"`
	} `json:"pagination"`
}

type searchResponse struct {
	Results []contentJSON `json:"results"`
}

type userJSON struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

type usersResponse struct {
	Users []userJSON `json:"users"`
}

type profileJSON struct {
	ID        string         `json:"id"`
	UserID    string         `json:"userId"`
	IsPublic  bool           `json:"isPublic"`
	Fields    map[string]any `json:"fields"`
	UpdatedAt string         `json:"updatedAt"`
}

type repostRequest struct {
	Note string `json:"note,omitempty"`
}

type commentRequest struct {
	Text string `json:"text"`
}

type voteRequest struct {
	Direction string `json:"direction"`
}

// ToDomain converts a wire content record to the domain entity.
func (c *contentJSON) ToDomain() *domain.ContentRecord {
	createdAt, _ := time.Parse(time.RFC3339, c.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339, c.UpdatedAt)

	comments := make([]domain.Comment, len(c.Comments))
	for i, cm := range c.Comments {
		comments[i] = cm.toDomain()
	}

	return &domain.ContentRecord{
		ID:          c.ID,
		ContentType: domain.ContentType(c.ContentType),
		UserID:      c.UserID,
		Likes:       emptyIfNil(c.Likes),
		Saves:       emptyIfNil(c.Saves),
		Reposts:     emptyIfNil(c.Reposts),
		Comments:    comments,
		Solved:      c.Solved,
		IsPublic:    c.IsPublic,
		Extra:       c.ExtraFields,
		Title:       c.Title,
		Description: c.Description,
		Image:       c.Image,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

func (c commentJSON) toDomain() domain.Comment {
	createdAt, _ := time.Parse(time.RFC3339, c.CreatedAt)

	votedBy := make([]domain.VoteEntry, len(c.VotedBy))
	for i, v := range c.VotedBy {
		votedBy[i] = domain.VoteEntry{
			UserID:    v.UserID,
			Direction: domain.VoteDirection(v.VoteType),
		}
	}

	return domain.Comment{
		UserID:         c.UserID,
		Text:           c.Text,
		CreatedAt:      createdAt,
		IsAnswer:       c.IsAnswer,
		AcceptedAnswer: c.AcceptedAnswer,
		Votes:          c.Votes,
		VotedBy:        votedBy,
	}
}

func (u userJSON) toDomain() *domain.UserSummary {
	return &domain.UserSummary{
		ID:     u.ID,
		Name:   u.Name,
		Avatar: u.Avatar,
	}
}

func (p *profileJSON) ToDomain() *domain.Profile {
	updatedAt, _ := time.Parse(time.RFC3339, p.UpdatedAt)

	return &domain.Profile{
		ID:        p.ID,
		UserID:    p.UserID,
		IsPublic:  p.IsPublic,
		Fields:    p.Fields,
		UpdatedAt: updatedAt,
	}
}

func profileToWire(p *domain.Profile) profileJSON {
	return profileJSON{
		ID:       p.ID,
		UserID:   p.UserID,
		IsPublic: p.IsPublic,
		Fields:   p.Fields,
	}
}

// emptyIfNil keeps membership sets non-nil so wholesale replacement never
// turns an empty set into a JSON null downstream.
func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
