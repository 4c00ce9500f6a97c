package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"engagement-service/internal/domain"
)

func sampleRecord() *domain.ContentRecord {
	return &domain.ContentRecord{
		ID:          "c1",
		ContentType: domain.ContentTypeJob,
		UserID:      "owner",
		Likes:       []string{"u1", "u2"},
		Saves:       []string{"u1"},
		Extra: map[string]any{
			"jobTitle":    "Backend Engineer",
			"companyLogo": "/logos/acme.png",
		},
		CreatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

// TestFromContent_ViewerFlags checks that engagement flags reflect the
// viewer's membership, not global counts.
func TestFromContent_ViewerFlags(t *testing.T) {
	r := sampleRecord()

	asU1 := FromContent(r, "u1")
	assert.True(t, asU1.Liked)
	assert.True(t, asU1.Saved)
	assert.False(t, asU1.Reposted)
	assert.Equal(t, 2, asU1.Likes)
	assert.Equal(t, 1, asU1.Saves)

	asAnon := FromContent(r, "")
	assert.False(t, asAnon.Liked)
	assert.False(t, asAnon.Saved)
	assert.Equal(t, 2, asAnon.Likes)
}

// TestFromContent_CardResolution checks kind-specific nested fields are
// surfaced as the card.
func TestFromContent_CardResolution(t *testing.T) {
	r := sampleRecord()

	resp := FromContent(r, "")
	assert.Equal(t, "Backend Engineer", resp.Title)
	assert.Equal(t, "/logos/acme.png", resp.Image)
	assert.Equal(t, domain.DefaultDescription, resp.Description)
}

// TestFromContent_QuestionView checks answer state, ordering and the
// accept control.
func TestFromContent_QuestionView(t *testing.T) {
	r := &domain.ContentRecord{
		ID:          "q1",
		ContentType: domain.ContentTypeQuestion,
		UserID:      "asker",
		Comments: []domain.Comment{
			{UserID: "a", Text: "first", IsAnswer: true, Votes: 1,
				VotedBy: []domain.VoteEntry{{UserID: "v1", Direction: domain.VoteUp}}},
			{UserID: "b", Text: "aside", IsAnswer: false},
			{UserID: "c", Text: "second", IsAnswer: true, AcceptedAnswer: true},
		},
		Solved: true,
	}

	resp := FromContent(r, "v1")
	assert.Equal(t, []int{2, 0}, resp.AnswerOrder)
	assert.Equal(t, "accepted", resp.Comments[2].State)
	assert.Equal(t, "voted", resp.Comments[0].State)
	assert.Equal(t, "up", resp.Comments[0].ViewerVote)
	assert.Empty(t, resp.Comments[1].State)
	assert.False(t, resp.CanAccept, "solved question offers no accept control")

	asAsker := FromContent(r, "asker")
	assert.False(t, asAsker.CanAccept)

	r.Solved = false
	r.Comments[2].AcceptedAnswer = false
	asAsker = FromContent(r, "asker")
	assert.True(t, asAsker.CanAccept)
}

// TestFromFeedPage checks feed page conversion carries users and paging.
func TestFromFeedPage(t *testing.T) {
	page := &domain.FeedPage{
		Contents: []*domain.ContentRecord{sampleRecord()},
		Users:    []*domain.UserSummary{{ID: "u1", Name: "Ada"}},
		Pagination: domain.Pagination{
			Page: 2, PageSize: 10, TotalItems: 31, TotalPages: 4,
		},
		Filter: domain.FilterJobs,
	}

	resp := FromFeedPage(page, "u1")
	assert.Len(t, resp.Contents, 1)
	assert.True(t, resp.Contents[0].Liked)
	assert.Equal(t, "Ada", resp.Users[0].Name)
	assert.Equal(t, 4, resp.Pagination.TotalPages)
	assert.Equal(t, "Jobs", resp.Filter)
	assert.False(t, resp.SearchMode)
}
