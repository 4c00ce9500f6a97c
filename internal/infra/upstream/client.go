// Package upstream implements the client for the remote content and
// profile API, the authoritative store for every record this service
// touches.
package upstream

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"engagement-service/internal/domain"
	"engagement-service/pkg/retry"
)

// userHeader carries the acting user's identity to the upstream, which
// enforces ownership and permission checks.
const userHeader = "X-User-ID"

// ClientConfig holds configuration for the upstream client.
type ClientConfig struct {
	BaseURL      string
	Timeout      time.Duration
	ReadAttempts int // bounded immediate retry for timed-out reads
	CB           CBConfig
}

// CBConfig holds circuit breaker configuration for upstream reads.
type CBConfig struct {
	MaxRequests  uint32
	Interval     time.Duration
	Timeout      time.Duration
	FailureRatio float64
}

// Client implements domain.ContentAPI over HTTP.
//
// Reads go through a bounded retry (timeout failures only, no backoff) and
// a circuit breaker. Mutations are issued exactly once: a retried "like"
// could double-toggle, so a timed-out mutation surfaces to the caller
// instead of being silently retried.
type Client struct {
	client       *resty.Client
	cb           *gobreaker.CircuitBreaker[*resty.Response]
	readAttempts int
	logger       *zap.Logger
}

// New creates a new upstream API client.
func New(cfg ClientConfig, logger *zap.Logger) *Client {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout)

	settings := gobreaker.Settings{
		Name:        "upstream-reads",
		MaxRequests: cfg.CB.MaxRequests,
		Interval:    cfg.CB.Interval,
		Timeout:     cfg.CB.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)

			return counts.Requests >= 3 && failureRatio >= cfg.CB.FailureRatio
		},
	}

	attempts := cfg.ReadAttempts
	if attempts < 1 {
		attempts = 1
	}

	return &Client{
		client:       client,
		cb:           gobreaker.NewCircuitBreaker[*resty.Response](settings),
		readAttempts: attempts,
		logger:       logger,
	}
}

// HTTPClient exposes the underlying transport client for test harnesses.
func (c *Client) HTTPClient() *resty.Client {
	return c.client
}

// classify maps a transport error or response status onto the domain error
// taxonomy. Order matters: timeouts first so retry gating sees them, then
// the statuses some callers treat as benign.
func classify(resp *resty.Response, err error) error {
	if err != nil {
		if domain.IsTimeout(err) {
			return fmt.Errorf("%w: %v", domain.ErrTimeout, err)
		}
		return err
	}
	if !resp.IsError() {
		return nil
	}

	switch code := resp.StatusCode(); {
	case code == 401 || code == 403:
		return fmt.Errorf("%w: upstream status %d", domain.ErrAuthenticationRequired, code)
	case code == 404:
		return fmt.Errorf("%w: upstream status %d", domain.ErrNotFound, code)
	case code == 400 || code == 409 || code == 422:
		return fmt.Errorf("%w: upstream status %d", domain.ErrValidationRejected, code)
	case code == 408 || code == 504:
		return fmt.Errorf("%w: upstream status %d", domain.ErrTimeout, code)
	default:
		return fmt.Errorf("upstream returned status %d", code)
	}
}

// getJSON performs one idempotent GET with circuit breaking, bounded
// timeout-only retry, and classification. result must be a pointer.
func (c *Client) getJSON(ctx context.Context, path string, query map[string]string, result any) error {
	_, err := retry.Do(ctx, c.readAttempts, domain.IsTimeout, func(ctx context.Context) (*resty.Response, error) {
		return c.cb.Execute(func() (*resty.Response, error) {
			r, err := c.client.R().
				SetContext(ctx).
				SetQueryParams(query).
				SetResult(result).
				Get(path)
			if cerr := classify(r, err); cerr != nil {
				return nil, cerr
			}

			return r, nil
		})
	})
	if err != nil {
		c.logger.Warn("upstream read failed",
			zap.String("path", path),
			zap.String("breaker", c.cb.State().String()),
			zap.Error(err),
		)

		return fmt.Errorf("GET %s: %w", path, err)
	}

	return nil
}

// mutate performs one non-retried mutation as userID and decodes the
// response into result when non-nil.
func (c *Client) mutate(ctx context.Context, method, path, userID string, body, result any) error {
	req := c.client.R().
		SetContext(ctx).
		SetHeader(userHeader, userID)
	if body != nil {
		req.SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}

	r, err := req.Execute(method, path)
	if cerr := classify(r, err); cerr != nil {
		c.logger.Warn("upstream mutation failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(cerr),
		)

		return fmt.Errorf("%s %s: %w", method, path, cerr)
	}

	return nil
}

// GetContent retrieves a single content record.
func (c *Client) GetContent(ctx context.Context, id string) (*domain.ContentRecord, error) {
	var result contentJSON
	if err := c.getJSON(ctx, "/contents/"+id, nil, &result); err != nil {
		return nil, err
	}

	return result.ToDomain(), nil
}

// ListContents retrieves one page of content, optionally narrowed by kind.
func (c *Client) ListContents(ctx context.Context, page, limit int, kind domain.ContentType) (*domain.ContentPage, error) {
	query := map[string]string{
		"page":  fmt.Sprintf("%d", page),
		"limit": fmt.Sprintf("%d", limit),
	}
	if kind != "" {
		query["contentType"] = string(kind)
	}

	var result listResponse
	if err := c.getJSON(ctx, "/contents", query, &result); err != nil {
		return nil, err
	}

	contents := make([]*domain.ContentRecord, len(result.Contents))
	for i := range result.Contents {
		contents[i] = result.Contents[i].ToDomain()
	}

	return &domain.ContentPage{
		Contents: contents,
		Total:    result.Pagination.Total,
	}, nil
}

// SearchContents retrieves all contents matching query. The upstream
// search endpoint is unpaginated.
func (c *Client) SearchContents(ctx context.Context, query string) ([]*domain.ContentRecord, error) {
	var result searchResponse
	if err := c.getJSON(ctx, "/contents/search", map[string]string{"q": query}, &result); err != nil {
		return nil, err
	}

	contents := make([]*domain.ContentRecord, len(result.Results))
	for i := range result.Results {
		contents[i] = result.Results[i].ToDomain()
	}

	return contents, nil
}

// ListUsers retrieves the user summaries shown beside the feed.
func (c *Client) ListUsers(ctx context.Context) ([]*domain.UserSummary, error) {
	var result usersResponse
	if err := c.getJSON(ctx, "/users", nil, &result); err != nil {
		return nil, err
	}

	users := make([]*domain.UserSummary, len(result.Users))
	for i, u := range result.Users {
		users[i] = u.toDomain()
	}

	return users, nil
}

func (c *Client) action(ctx context.Context, contentID, userID, action string, body any) (*domain.ContentRecord, error) {
	var result contentJSON
	path := fmt.Sprintf("/contents/%s/actions/%s", contentID, action)
	if err := c.mutate(ctx, resty.MethodPost, path, userID, body, &result); err != nil {
		return nil, err
	}

	return result.ToDomain(), nil
}

// Like issues a like mutation and returns the updated record.
func (c *Client) Like(ctx context.Context, contentID, userID string) (*domain.ContentRecord, error) {
	return c.action(ctx, contentID, userID, "like", nil)
}

// Unlike issues an unlike mutation and returns the updated record.
func (c *Client) Unlike(ctx context.Context, contentID, userID string) (*domain.ContentRecord, error) {
	return c.action(ctx, contentID, userID, "unlike", nil)
}

// Save issues a save mutation and returns the updated record.
func (c *Client) Save(ctx context.Context, contentID, userID string) (*domain.ContentRecord, error) {
	return c.action(ctx, contentID, userID, "save", nil)
}

// Unsave issues an unsave mutation and returns the updated record.
func (c *Client) Unsave(ctx context.Context, contentID, userID string) (*domain.ContentRecord, error) {
	return c.action(ctx, contentID, userID, "unsave", nil)
}

// Repost issues a repost mutation with an optional note.
func (c *Client) Repost(ctx context.Context, contentID, userID, note string) (*domain.ContentRecord, error) {
	return c.action(ctx, contentID, userID, "repost", repostRequest{Note: note})
}

// PostComment appends a plain comment and returns the updated record.
func (c *Client) PostComment(ctx context.Context, contentID, userID, text string) (*domain.ContentRecord, error) {
	var result contentJSON
	path := fmt.Sprintf("/contents/%s/comments", contentID)
	if err := c.mutate(ctx, resty.MethodPost, path, userID, commentRequest{Text: text}, &result); err != nil {
		return nil, err
	}

	return result.ToDomain(), nil
}

// PostAnswer appends an answer to a Question and returns the updated
// record.
func (c *Client) PostAnswer(ctx context.Context, contentID, userID, text string) (*domain.ContentRecord, error) {
	var result contentJSON
	path := fmt.Sprintf("/contents/%s/answers", contentID)
	if err := c.mutate(ctx, resty.MethodPost, path, userID, commentRequest{Text: text}, &result); err != nil {
		return nil, err
	}

	return result.ToDomain(), nil
}

// VoteAnswer records userID's vote on the answer at index.
func (c *Client) VoteAnswer(ctx context.Context, contentID string, index int, userID string, direction domain.VoteDirection) (*domain.ContentRecord, error) {
	var result contentJSON
	path := fmt.Sprintf("/contents/%s/answers/%d/vote", contentID, index)
	if err := c.mutate(ctx, resty.MethodPost, path, userID, voteRequest{Direction: string(direction)}, &result); err != nil {
		return nil, err
	}

	return result.ToDomain(), nil
}

// AcceptAnswer requests acceptance of the answer at index.
func (c *Client) AcceptAnswer(ctx context.Context, contentID string, index int, userID string) (*domain.ContentRecord, error) {
	var result contentJSON
	path := fmt.Sprintf("/contents/%s/answers/%d/accept", contentID, index)
	if err := c.mutate(ctx, resty.MethodPost, path, userID, nil, &result); err != nil {
		return nil, err
	}

	return result.ToDomain(), nil
}

// DeleteContent removes a record.
func (c *Client) DeleteContent(ctx context.Context, contentID, userID string) error {
	return c.mutate(ctx, resty.MethodDelete, "/contents/"+contentID, userID, nil, nil)
}

// GetProfile retrieves the acting user's own CV profile.
func (c *Client) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	return c.getProfile(ctx, "/cv-profile", userID)
}

// GetProfileByID retrieves a CV profile by id.
func (c *Client) GetProfileByID(ctx context.Context, id string) (*domain.Profile, error) {
	return c.getProfile(ctx, "/cv-profile/"+id, "")
}

// GetPublicProfile retrieves the public view of a CV profile.
func (c *Client) GetPublicProfile(ctx context.Context, id string) (*domain.Profile, error) {
	return c.getProfile(ctx, "/cv-profile/public/"+id, "")
}

func (c *Client) getProfile(ctx context.Context, path, userID string) (*domain.Profile, error) {
	var result profileJSON
	_, err := retry.Do(ctx, c.readAttempts, domain.IsTimeout, func(ctx context.Context) (*resty.Response, error) {
		return c.cb.Execute(func() (*resty.Response, error) {
			r, err := c.client.R().
				SetContext(ctx).
				SetHeader(userHeader, userID).
				SetResult(&result).
				Get(path)
			if cerr := classify(r, err); cerr != nil {
				return nil, cerr
			}

			return r, nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}

	return result.ToDomain(), nil
}

// UpdateProfile replaces the acting user's CV profile.
func (c *Client) UpdateProfile(ctx context.Context, userID string, p *domain.Profile) (*domain.Profile, error) {
	var result profileJSON
	if err := c.mutate(ctx, resty.MethodPut, "/cv-profile", userID, profileToWire(p), &result); err != nil {
		return nil, err
	}

	return result.ToDomain(), nil
}

// DeleteProfile removes the acting user's CV profile.
func (c *Client) DeleteProfile(ctx context.Context, userID string) error {
	return c.mutate(ctx, resty.MethodDelete, "/cv-profile", userID, nil, nil)
}
