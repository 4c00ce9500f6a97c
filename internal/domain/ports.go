package domain

import (
	"context"
	"time"
)

// ContentAPI defines the client contract against the remote content and
// profile API. The remote side is authoritative for every record; all
// mutations return the updated representation, which callers apply
// wholesale in place of local state.
// Implementation: internal/infra/upstream/client.go
type ContentAPI interface {
	// GetContent retrieves a single content record by id.
	GetContent(ctx context.Context, id string) (*ContentRecord, error)

	// ListContents retrieves one page of content, optionally narrowed to
	// a content kind.
	ListContents(ctx context.Context, page, limit int, kind ContentType) (*ContentPage, error)

	// SearchContents retrieves all contents matching a free-text query.
	// Unpaginated by upstream design.
	SearchContents(ctx context.Context, query string) ([]*ContentRecord, error)

	// ListUsers retrieves the user summaries shown beside the feed.
	ListUsers(ctx context.Context) ([]*UserSummary, error)

	// Like, Unlike, Save, Unsave and Repost issue engagement mutations as
	// userID and return the updated record. Never retried.
	Like(ctx context.Context, contentID, userID string) (*ContentRecord, error)
	Unlike(ctx context.Context, contentID, userID string) (*ContentRecord, error)
	Save(ctx context.Context, contentID, userID string) (*ContentRecord, error)
	Unsave(ctx context.Context, contentID, userID string) (*ContentRecord, error)
	Repost(ctx context.Context, contentID, userID, note string) (*ContentRecord, error)

	// PostComment appends a plain comment and returns the updated record.
	PostComment(ctx context.Context, contentID, userID, text string) (*ContentRecord, error)

	// PostAnswer appends an answer to a Question and returns the updated
	// record.
	PostAnswer(ctx context.Context, contentID, userID, text string) (*ContentRecord, error)

	// VoteAnswer records userID's vote on the answer at index and returns
	// the updated record with the authoritative tally and voted-by list.
	VoteAnswer(ctx context.Context, contentID string, index int, userID string, direction VoteDirection) (*ContentRecord, error)

	// AcceptAnswer requests acceptance of the answer at index. The server
	// arbitrates exclusivity and ownership; the returned record carries
	// whatever accepted-state it decided on.
	AcceptAnswer(ctx context.Context, contentID string, index int, userID string) (*ContentRecord, error)

	// DeleteContent removes a record.
	DeleteContent(ctx context.Context, contentID, userID string) error

	// Profile reads and writes. GetProfile returns ErrNotFound when the
	// acting user has no profile yet.
	GetProfile(ctx context.Context, userID string) (*Profile, error)
	GetProfileByID(ctx context.Context, id string) (*Profile, error)
	GetPublicProfile(ctx context.Context, id string) (*Profile, error)
	UpdateProfile(ctx context.Context, userID string, p *Profile) (*Profile, error)
	DeleteProfile(ctx context.Context, userID string) error
}

// Cache defines the response cache contract: a per-key, time-bounded store
// of previously fetched payloads with explicit invalidation. Entries expire
// exactly one TTL after being stored; staleness is checked on every read,
// never by a background sweep. Writes are best-effort: implementations log
// storage failures instead of surfacing them, since caching is an
// optimization, not a correctness dependency.
// Implementation: internal/infra/redis/cache.go
type Cache interface {
	// Get retrieves the payload under key, unmarshalled into out.
	// Returns false for absent, expired, or corrupt entries; a corrupt
	// entry is evicted as a side effect.
	Get(ctx context.Context, key string, out any) bool

	// Put stores the payload under key with the given TTL.
	Put(ctx context.Context, key string, payload any, ttl time.Duration)

	// Invalidate removes the entry under key.
	Invalidate(ctx context.Context, key string)

	// InvalidatePrefix removes every entry whose key starts with prefix.
	InvalidatePrefix(ctx context.Context, prefix string)

	// InvalidateAll removes every entry.
	InvalidateAll(ctx context.Context)
}

// Profile is a CV profile resource. The gateway treats it as an opaque
// document apart from identity and visibility; profile editing itself is
// out of scope.
type Profile struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	IsPublic  bool           `json:"is_public"`
	Fields    map[string]any `json:"fields,omitempty"`
	UpdatedAt time.Time      `json:"updated_at"`
}
