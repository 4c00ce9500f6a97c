package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"engagement-service/internal/domain"
	"engagement-service/internal/infra/redis"
)

// fakeAPI implements domain.ContentAPI with overridable behavior per
// method and a call counter, so tests can assert exactly which upstream
// calls a use case issued.
type fakeAPI struct {
	mu    sync.Mutex
	calls map[string]int

	getContentFn     func(ctx context.Context, id string) (*domain.ContentRecord, error)
	listContentsFn   func(ctx context.Context, page, limit int, kind domain.ContentType) (*domain.ContentPage, error)
	searchContentsFn func(ctx context.Context, query string) ([]*domain.ContentRecord, error)
	listUsersFn      func(ctx context.Context) ([]*domain.UserSummary, error)
	likeFn           func(ctx context.Context, contentID, userID string) (*domain.ContentRecord, error)
	unlikeFn         func(ctx context.Context, contentID, userID string) (*domain.ContentRecord, error)
	saveFn           func(ctx context.Context, contentID, userID string) (*domain.ContentRecord, error)
	unsaveFn         func(ctx context.Context, contentID, userID string) (*domain.ContentRecord, error)
	repostFn         func(ctx context.Context, contentID, userID, note string) (*domain.ContentRecord, error)
	postCommentFn    func(ctx context.Context, contentID, userID, text string) (*domain.ContentRecord, error)
	postAnswerFn     func(ctx context.Context, contentID, userID, text string) (*domain.ContentRecord, error)
	voteAnswerFn     func(ctx context.Context, contentID string, index int, userID string, direction domain.VoteDirection) (*domain.ContentRecord, error)
	acceptAnswerFn   func(ctx context.Context, contentID string, index int, userID string) (*domain.ContentRecord, error)
	deleteContentFn  func(ctx context.Context, contentID, userID string) error
	getProfileFn     func(ctx context.Context, userID string) (*domain.Profile, error)
	getProfileByIDFn func(ctx context.Context, id string) (*domain.Profile, error)
	getPublicFn      func(ctx context.Context, id string) (*domain.Profile, error)
	updateProfileFn  func(ctx context.Context, userID string, p *domain.Profile) (*domain.Profile, error)
	deleteProfileFn  func(ctx context.Context, userID string) error
}

var errFakeUnset = errors.New("fake: method not configured")

func newFakeAPI() *fakeAPI {
	return &fakeAPI{calls: make(map[string]int)}
}

func (f *fakeAPI) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
}

func (f *fakeAPI) callCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeAPI) GetContent(ctx context.Context, id string) (*domain.ContentRecord, error) {
	f.record("GetContent")
	if f.getContentFn == nil {
		return nil, errFakeUnset
	}
	return f.getContentFn(ctx, id)
}

func (f *fakeAPI) ListContents(ctx context.Context, page, limit int, kind domain.ContentType) (*domain.ContentPage, error) {
	f.record("ListContents")
	if f.listContentsFn == nil {
		return nil, errFakeUnset
	}
	return f.listContentsFn(ctx, page, limit, kind)
}

func (f *fakeAPI) SearchContents(ctx context.Context, query string) ([]*domain.ContentRecord, error) {
	f.record("SearchContents")
	if f.searchContentsFn == nil {
		return nil, errFakeUnset
	}
	return f.searchContentsFn(ctx, query)
}

func (f *fakeAPI) ListUsers(ctx context.Context) ([]*domain.UserSummary, error) {
	f.record("ListUsers")
	if f.listUsersFn == nil {
		return nil, errFakeUnset
	}
	return f.listUsersFn(ctx)
}

func (f *fakeAPI) Like(ctx context.Context, contentID, userID string) (*domain.ContentRecord, error) {
	f.record("Like")
	if f.likeFn == nil {
		return nil, errFakeUnset
	}
	return f.likeFn(ctx, contentID, userID)
}

func (f *fakeAPI) Unlike(ctx context.Context, contentID, userID string) (*domain.ContentRecord, error) {
	f.record("Unlike")
	if f.unlikeFn == nil {
		return nil, errFakeUnset
	}
	return f.unlikeFn(ctx, contentID, userID)
}

func (f *fakeAPI) Save(ctx context.Context, contentID, userID string) (*domain.ContentRecord, error) {
	f.record("Save")
	if f.saveFn == nil {
		return nil, errFakeUnset
	}
	return f.saveFn(ctx, contentID, userID)
}

func (f *fakeAPI) Unsave(ctx context.Context, contentID, userID string) (*domain.ContentRecord, error) {
	f.record("Unsave")
	if f.unsaveFn == nil {
		return nil, errFakeUnset
	}
	return f.unsaveFn(ctx, contentID, userID)
}

func (f *fakeAPI) Repost(ctx context.Context, contentID, userID, note string) (*domain.ContentRecord, error) {
	f.record("Repost")
	if f.repostFn == nil {
		return nil, errFakeUnset
	}
	return f.repostFn(ctx, contentID, userID, note)
}

func (f *fakeAPI) PostComment(ctx context.Context, contentID, userID, text string) (*domain.ContentRecord, error) {
	f.record("PostComment")
	if f.postCommentFn == nil {
		return nil, errFakeUnset
	}
	return f.postCommentFn(ctx, contentID, userID, text)
}

func (f *fakeAPI) PostAnswer(ctx context.Context, contentID, userID, text string) (*domain.ContentRecord, error) {
	f.record("PostAnswer")
	if f.postAnswerFn == nil {
		return nil, errFakeUnset
	}
	return f.postAnswerFn(ctx, contentID, userID, text)
}

func (f *fakeAPI) VoteAnswer(ctx context.Context, contentID string, index int, userID string, direction domain.VoteDirection) (*domain.ContentRecord, error) {
	f.record("VoteAnswer")
	if f.voteAnswerFn == nil {
		return nil, errFakeUnset
	}
	return f.voteAnswerFn(ctx, contentID, index, userID, direction)
}

func (f *fakeAPI) AcceptAnswer(ctx context.Context, contentID string, index int, userID string) (*domain.ContentRecord, error) {
	f.record("AcceptAnswer")
	if f.acceptAnswerFn == nil {
		return nil, errFakeUnset
	}
	return f.acceptAnswerFn(ctx, contentID, index, userID)
}

func (f *fakeAPI) DeleteContent(ctx context.Context, contentID, userID string) error {
	f.record("DeleteContent")
	if f.deleteContentFn == nil {
		return errFakeUnset
	}
	return f.deleteContentFn(ctx, contentID, userID)
}

func (f *fakeAPI) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	f.record("GetProfile")
	if f.getProfileFn == nil {
		return nil, errFakeUnset
	}
	return f.getProfileFn(ctx, userID)
}

func (f *fakeAPI) GetProfileByID(ctx context.Context, id string) (*domain.Profile, error) {
	f.record("GetProfileByID")
	if f.getProfileByIDFn == nil {
		return nil, errFakeUnset
	}
	return f.getProfileByIDFn(ctx, id)
}

func (f *fakeAPI) GetPublicProfile(ctx context.Context, id string) (*domain.Profile, error) {
	f.record("GetPublicProfile")
	if f.getPublicFn == nil {
		return nil, errFakeUnset
	}
	return f.getPublicFn(ctx, id)
}

func (f *fakeAPI) UpdateProfile(ctx context.Context, userID string, p *domain.Profile) (*domain.Profile, error) {
	f.record("UpdateProfile")
	if f.updateProfileFn == nil {
		return nil, errFakeUnset
	}
	return f.updateProfileFn(ctx, userID, p)
}

func (f *fakeAPI) DeleteProfile(ctx context.Context, userID string) error {
	f.record("DeleteProfile")
	if f.deleteProfileFn == nil {
		return errFakeUnset
	}
	return f.deleteProfileFn(ctx, userID)
}

// newTestCache builds a real response cache against an in-memory Redis,
// giving every test a fresh isolated instance.
func newTestCache(t *testing.T) domain.Cache {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return redis.NewCache(client, zap.NewNop(), "test")
}
