package domain

import (
	"reflect"
	"testing"
)

func TestStateOf(t *testing.T) {
	tests := []struct {
		name     string
		comment  Comment
		expected AnswerState
	}{
		{
			name:     "plain comment has no state",
			comment:  Comment{Text: "nice post"},
			expected: "",
		},
		{
			name:     "fresh answer is proposed",
			comment:  Comment{IsAnswer: true},
			expected: AnswerProposed,
		},
		{
			name: "answer with a vote is voted",
			comment: Comment{
				IsAnswer: true,
				Votes:    1,
				VotedBy:  []VoteEntry{{UserID: "u1", Direction: VoteUp}},
			},
			expected: AnswerVoted,
		},
		{
			name: "downvoted answer is still voted",
			comment: Comment{
				IsAnswer: true,
				Votes:    -1,
				VotedBy:  []VoteEntry{{UserID: "u1", Direction: VoteDown}},
			},
			expected: AnswerVoted,
		},
		{
			name:     "accepted wins over voted",
			comment:  Comment{IsAnswer: true, AcceptedAnswer: true, Votes: 3},
			expected: AnswerAccepted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StateOf(tt.comment); got != tt.expected {
				t.Errorf("StateOf() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestOrderAnswers(t *testing.T) {
	tests := []struct {
		name     string
		comments []Comment
		expected []int
	}{
		{
			name:     "no answers",
			comments: []Comment{{Text: "hi"}},
			expected: []int{},
		},
		{
			name: "votes descending",
			comments: []Comment{
				{IsAnswer: true, Votes: 1},
				{IsAnswer: true, Votes: 5},
				{IsAnswer: true, Votes: 3},
			},
			expected: []int{1, 2, 0},
		},
		{
			name: "accepted sorts first despite fewer votes",
			comments: []Comment{
				{IsAnswer: true, Votes: 0, AcceptedAnswer: true},
				{IsAnswer: true, Votes: 2},
			},
			expected: []int{0, 1},
		},
		{
			name: "ties keep original order",
			comments: []Comment{
				{IsAnswer: true, Votes: 2},
				{IsAnswer: true, Votes: 2},
				{IsAnswer: true, Votes: 2},
			},
			expected: []int{0, 1, 2},
		},
		{
			name: "plain comments are skipped, indices stay original",
			comments: []Comment{
				{Text: "comment"},
				{IsAnswer: true, Votes: 1},
				{Text: "another"},
				{IsAnswer: true, Votes: 4},
			},
			expected: []int{3, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OrderAnswers(tt.comments)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("OrderAnswers() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCanAccept(t *testing.T) {
	tests := []struct {
		name     string
		record   *ContentRecord
		userID   string
		expected bool
	}{
		{
			name:     "owner of unsolved question",
			record:   &ContentRecord{ContentType: ContentTypeQuestion, UserID: "owner"},
			userID:   "owner",
			expected: true,
		},
		{
			name:     "non-owner",
			record:   &ContentRecord{ContentType: ContentTypeQuestion, UserID: "owner"},
			userID:   "visitor",
			expected: false,
		},
		{
			name:     "already solved",
			record:   &ContentRecord{ContentType: ContentTypeQuestion, UserID: "owner", Solved: true},
			userID:   "owner",
			expected: false,
		},
		{
			name:     "not a question",
			record:   &ContentRecord{ContentType: ContentTypePost, UserID: "owner"},
			userID:   "owner",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanAccept(tt.record, tt.userID); got != tt.expected {
				t.Errorf("CanAccept() = %v, want %v", got, tt.expected)
			}
		})
	}
}
