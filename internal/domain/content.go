// Package domain contains the core business logic and entities.
// This package has no external dependencies (only stdlib).
package domain

import (
	"time"
)

// ContentType represents the declared kind of a content record.
type ContentType string

const (
	ContentTypePost     ContentType = "post"
	ContentTypeProject  ContentType = "project"
	ContentTypeJob      ContentType = "job"
	ContentTypeEvent    ContentType = "event"
	ContentTypeTutorial ContentType = "tutorial"
	ContentTypeBooks    ContentType = "books"
	ContentTypeQuestion ContentType = "question"
)

// VoteDirection is the direction of an answer vote.
type VoteDirection string

const (
	VoteUp   VoteDirection = "up"
	VoteDown VoteDirection = "down"
)

// Valid reports whether the direction is one of the two known values.
func (d VoteDirection) Valid() bool {
	return d == VoteUp || d == VoteDown
}

// VoteEntry records one user's current vote on a comment. A user has at
// most one entry per comment; changing direction overwrites the entry.
type VoteEntry struct {
	UserID    string        `json:"user_id"`
	Direction VoteDirection `json:"direction"`
}

// Comment is a comment on a content record. For Question content a comment
// may be an answer, and at most one answer per record carries the
// accepted flag.
type Comment struct {
	UserID         string      `json:"user_id"`
	Text           string      `json:"text"`
	CreatedAt      time.Time   `json:"created_at"`
	IsAnswer       bool        `json:"is_answer"`
	AcceptedAnswer bool        `json:"accepted_answer"`
	Votes          int         `json:"votes"` // may be negative
	VotedBy        []VoteEntry `json:"voted_by,omitempty"`
}

// VoteBy returns the user's current vote entry for this comment, if any.
func (c *Comment) VoteBy(userID string) (VoteEntry, bool) {
	for _, v := range c.VotedBy {
		if v.UserID == userID {
			return v, true
		}
	}
	return VoteEntry{}, false
}

// ContentRecord is the unified content entity as returned by the upstream
// content API. Membership sets (likes, saves, reposts) hold each user id at
// most once; they are replaced wholesale from server responses and never
// patched locally.
type ContentRecord struct {
	ID          string         `json:"id"`
	ContentType ContentType    `json:"content_type"`
	UserID      string         `json:"user_id"` // owner
	Likes       []string       `json:"likes"`
	Saves       []string       `json:"saves"`
	Reposts     []string       `json:"reposts"`
	Comments    []Comment      `json:"comments"`
	Solved      bool           `json:"solved"` // Question only
	IsPublic    bool           `json:"is_public"`
	Extra       map[string]any `json:"extra_fields,omitempty"`

	// Flat presentational fields (current shape; legacy records carry
	// these inside Extra instead, see resolver.go).
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsQuestion reports whether the record is Question content.
func (r *ContentRecord) IsQuestion() bool {
	return r.ContentType == ContentTypeQuestion
}

// IsOwner reports whether userID owns the record.
func (r *ContentRecord) IsOwner(userID string) bool {
	return userID != "" && r.UserID == userID
}

// HasLiked reports whether userID is a member of the likes set.
func (r *ContentRecord) HasLiked(userID string) bool {
	return contains(r.Likes, userID)
}

// HasSaved reports whether userID is a member of the saves set.
func (r *ContentRecord) HasSaved(userID string) bool {
	return contains(r.Saves, userID)
}

// HasReposted reports whether userID is a member of the reposts set.
func (r *ContentRecord) HasReposted(userID string) bool {
	return contains(r.Reposts, userID)
}

// LikeCount returns the size of the likes membership set.
func (r *ContentRecord) LikeCount() int { return len(r.Likes) }

// SaveCount returns the size of the saves membership set.
func (r *ContentRecord) SaveCount() int { return len(r.Saves) }

// RepostCount returns the size of the reposts membership set.
func (r *ContentRecord) RepostCount() int { return len(r.Reposts) }

// AcceptedAnswerIndex returns the index of the accepted answer, or -1 when
// no answer is accepted.
func (r *ContentRecord) AcceptedAnswerIndex() int {
	for i := range r.Comments {
		if r.Comments[i].IsAnswer && r.Comments[i].AcceptedAnswer {
			return i
		}
	}
	return -1
}

func contains(set []string, id string) bool {
	for _, v := range set {
		if v == id {
			return true
		}
	}
	return false
}

// UserSummary is the slim user representation the feed composes next to
// content pages.
type UserSummary struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}
