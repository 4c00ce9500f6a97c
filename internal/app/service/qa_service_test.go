package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"engagement-service/internal/domain"
)

func newQA(t *testing.T, api *fakeAPI) *QAService {
	t.Helper()

	cache := newTestCache(t)
	engagement := NewEngagementService(api, cache, zap.NewNop())

	return NewQAService(api, cache, engagement, zap.NewNop())
}

func questionRecord(id, owner string, comments ...domain.Comment) *domain.ContentRecord {
	return &domain.ContentRecord{
		ID:          id,
		ContentType: domain.ContentTypeQuestion,
		UserID:      owner,
		Likes:       []string{},
		Saves:       []string{},
		Reposts:     []string{},
		Comments:    comments,
	}
}

func TestQA_PostAnswer_Success(t *testing.T) {
	api := newFakeAPI()
	api.getContentFn = func(_ context.Context, id string) (*domain.ContentRecord, error) {
		return questionRecord(id, "owner"), nil
	}
	api.postAnswerFn = func(_ context.Context, id, userID, text string) (*domain.ContentRecord, error) {
		return questionRecord(id, "owner",
			domain.Comment{UserID: userID, Text: text, IsAnswer: true},
		), nil
	}

	svc := newQA(t, api)
	updated, err := svc.PostAnswer(context.Background(), "q1", "u1", "use :wq")

	require.NoError(t, err)
	require.Len(t, updated.Comments, 1)
	assert.True(t, updated.Comments[0].IsAnswer)
	assert.Equal(t, domain.AnswerProposed, domain.StateOf(updated.Comments[0]))
}

func TestQA_PostAnswer_RejectedOnNonQuestion(t *testing.T) {
	api := newFakeAPI()
	api.getContentFn = func(_ context.Context, id string) (*domain.ContentRecord, error) {
		return &domain.ContentRecord{ID: id, ContentType: domain.ContentTypePost}, nil
	}

	svc := newQA(t, api)
	_, err := svc.PostAnswer(context.Background(), "c1", "u1", "answer")

	require.ErrorIs(t, err, domain.ErrValidationRejected)
	assert.Equal(t, 0, api.callCount("PostAnswer"))
}

func TestQA_PostAnswer_Unauthenticated(t *testing.T) {
	svc := newQA(t, newFakeAPI())

	_, err := svc.PostAnswer(context.Background(), "q1", "", "answer")

	require.ErrorIs(t, err, domain.ErrAuthenticationRequired)
}

// The client never computes the tally: the server's returned count and
// voted-by list are ground truth, including a direction change moving the
// tally by two.
func TestQA_Vote_DirectionChangeTakesServerTally(t *testing.T) {
	api := newFakeAPI()
	api.getContentFn = func(_ context.Context, id string) (*domain.ContentRecord, error) {
		return questionRecord(id, "owner", domain.Comment{
			IsAnswer: true,
			Votes:    1,
			VotedBy:  []domain.VoteEntry{{UserID: "u1", Direction: domain.VoteUp}},
		}), nil
	}
	api.voteAnswerFn = func(_ context.Context, id string, index int, userID string, direction domain.VoteDirection) (*domain.ContentRecord, error) {
		require.Equal(t, 0, index)
		require.Equal(t, domain.VoteDown, direction)
		return questionRecord(id, "owner", domain.Comment{
			IsAnswer: true,
			Votes:    -1, // reversal moved the tally by 2
			VotedBy:  []domain.VoteEntry{{UserID: userID, Direction: domain.VoteDown}},
		}), nil
	}

	svc := newQA(t, api)
	updated, err := svc.Vote(context.Background(), "q1", 0, "u1", domain.VoteDown)

	require.NoError(t, err)
	assert.Equal(t, -1, updated.Comments[0].Votes)

	entry, ok := updated.Comments[0].VoteBy("u1")
	require.True(t, ok)
	assert.Equal(t, domain.VoteDown, entry.Direction)
	assert.Len(t, updated.Comments[0].VotedBy, 1, "one entry per user, overwritten not appended")
}

// Repeating the same direction is not locally guarded; the request still
// goes out and the server treats it as a no-op.
func TestQA_Vote_SameDirectionStillSent(t *testing.T) {
	api := newFakeAPI()
	record := questionRecord("q1", "owner", domain.Comment{
		IsAnswer: true,
		Votes:    1,
		VotedBy:  []domain.VoteEntry{{UserID: "u1", Direction: domain.VoteUp}},
	})
	api.getContentFn = func(_ context.Context, _ string) (*domain.ContentRecord, error) {
		return record, nil
	}
	api.voteAnswerFn = func(_ context.Context, _ string, _ int, _ string, _ domain.VoteDirection) (*domain.ContentRecord, error) {
		return record, nil
	}

	svc := newQA(t, api)
	updated, err := svc.Vote(context.Background(), "q1", 0, "u1", domain.VoteUp)

	require.NoError(t, err)
	assert.Equal(t, 1, api.callCount("VoteAnswer"))
	assert.Equal(t, 1, updated.Comments[0].Votes)
}

func TestQA_Vote_Validation(t *testing.T) {
	api := newFakeAPI()
	api.getContentFn = func(_ context.Context, id string) (*domain.ContentRecord, error) {
		return questionRecord(id, "owner",
			domain.Comment{IsAnswer: true},
			domain.Comment{Text: "me too", IsAnswer: false},
		), nil
	}

	svc := newQA(t, api)
	ctx := context.Background()

	_, err := svc.Vote(ctx, "q1", 0, "", domain.VoteUp)
	require.ErrorIs(t, err, domain.ErrAuthenticationRequired)

	_, err = svc.Vote(ctx, "q1", 0, "u1", domain.VoteDirection("sideways"))
	require.ErrorIs(t, err, domain.ErrValidationRejected)

	_, err = svc.Vote(ctx, "q1", 7, "u1", domain.VoteUp)
	require.ErrorIs(t, err, domain.ErrValidationRejected)

	// Plain comments take no votes; only answers do.
	_, err = svc.Vote(ctx, "q1", 1, "u1", domain.VoteUp)
	require.ErrorIs(t, err, domain.ErrValidationRejected)

	assert.Equal(t, 0, api.callCount("VoteAnswer"))
}

// Owner accepts A1 while A2 has more votes; the server flags A1 and marks
// the question solved; display order puts A1 first anyway.
func TestQA_Accept_Scenario(t *testing.T) {
	api := newFakeAPI()
	api.getContentFn = func(_ context.Context, id string) (*domain.ContentRecord, error) {
		return questionRecord(id, "owner",
			domain.Comment{IsAnswer: true, Votes: 0},
			domain.Comment{IsAnswer: true, Votes: 2},
		), nil
	}
	api.acceptAnswerFn = func(_ context.Context, id string, index int, _ string) (*domain.ContentRecord, error) {
		require.Equal(t, 0, index)
		rec := questionRecord(id, "owner",
			domain.Comment{IsAnswer: true, Votes: 0, AcceptedAnswer: true},
			domain.Comment{IsAnswer: true, Votes: 2},
		)
		rec.Solved = true
		return rec, nil
	}

	svc := newQA(t, api)
	updated, err := svc.Accept(context.Background(), "q1", 0, "owner")

	require.NoError(t, err)
	assert.True(t, updated.Solved)
	assert.Equal(t, 0, updated.AcceptedAnswerIndex())
	assert.Equal(t, []int{0, 1}, svc.AnswerOrder(updated), "accepted sorts above higher-voted")
}

func TestQA_Accept_SuppressedClientSide(t *testing.T) {
	tests := []struct {
		name   string
		record *domain.ContentRecord
		userID string
	}{
		{
			name: "non-owner",
			record: questionRecord("q1", "owner",
				domain.Comment{IsAnswer: true},
			),
			userID: "visitor",
		},
		{
			name: "already solved",
			record: func() *domain.ContentRecord {
				r := questionRecord("q1", "owner", domain.Comment{IsAnswer: true, AcceptedAnswer: true})
				r.Solved = true
				return r
			}(),
			userID: "owner",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newFakeAPI()
			api.getContentFn = func(_ context.Context, _ string) (*domain.ContentRecord, error) {
				return tt.record, nil
			}

			svc := newQA(t, api)
			_, err := svc.Accept(context.Background(), "q1", 0, tt.userID)

			require.ErrorIs(t, err, domain.ErrValidationRejected)
			assert.Equal(t, 0, api.callCount("AcceptAnswer"), "control is suppressed, no request issued")
		})
	}
}

// Whatever sequence of accept calls is made, the record the server
// returns holds at most one accepted answer; the client applies it as-is.
func TestQA_Accept_ExclusivityFromServer(t *testing.T) {
	api := newFakeAPI()
	api.getContentFn = func(_ context.Context, id string) (*domain.ContentRecord, error) {
		return questionRecord(id, "owner",
			domain.Comment{IsAnswer: true},
			domain.Comment{IsAnswer: true},
		), nil
	}
	api.acceptAnswerFn = func(_ context.Context, id string, index int, _ string) (*domain.ContentRecord, error) {
		rec := questionRecord(id, "owner",
			domain.Comment{IsAnswer: true},
			domain.Comment{IsAnswer: true},
		)
		rec.Comments[index].AcceptedAnswer = true
		rec.Solved = true
		return rec, nil
	}

	svc := newQA(t, api)
	updated, err := svc.Accept(context.Background(), "q1", 1, "owner")
	require.NoError(t, err)

	accepted := 0
	for _, c := range updated.Comments {
		if c.IsAnswer && c.AcceptedAnswer {
			accepted++
		}
	}
	assert.Equal(t, 1, accepted)

	// A second accept is suppressed locally: the question is now solved.
	_, err = svc.Accept(context.Background(), "q1", 0, "owner")
	require.ErrorIs(t, err, domain.ErrValidationRejected)
	assert.Equal(t, 1, api.callCount("AcceptAnswer"))
}

func TestQA_PostComment_EmptyRejected(t *testing.T) {
	svc := newQA(t, newFakeAPI())

	_, err := svc.PostComment(context.Background(), "c1", "u1", "")

	require.ErrorIs(t, err, domain.ErrValidationRejected)
}
