package domain

import "sort"

// AnswerState is the lifecycle state of a comment-as-answer on a Question.
// An answer moves proposed -> voted once it has at least one vote, and
// accepted is terminal: at most one answer per question holds it.
type AnswerState string

const (
	AnswerProposed AnswerState = "proposed"
	AnswerVoted    AnswerState = "voted"
	AnswerAccepted AnswerState = "accepted"
)

// StateOf derives the answer state of a comment. Non-answer comments have
// no state and return the zero value.
func StateOf(c Comment) AnswerState {
	switch {
	case !c.IsAnswer:
		return ""
	case c.AcceptedAnswer:
		return AnswerAccepted
	case len(c.VotedBy) > 0:
		return AnswerVoted
	default:
		return AnswerProposed
	}
}

// OrderAnswers returns the indices of answer comments in display order:
// the accepted answer first, the rest by descending vote count, ties broken
// by original position. The comments slice itself is not reordered; the
// upstream API addresses answers by index, so positions must stay stable.
func OrderAnswers(comments []Comment) []int {
	idx := make([]int, 0, len(comments))
	for i := range comments {
		if comments[i].IsAnswer {
			idx = append(idx, i)
		}
	}

	sort.SliceStable(idx, func(a, b int) bool {
		ca, cb := comments[idx[a]], comments[idx[b]]
		if ca.AcceptedAnswer != cb.AcceptedAnswer {
			return ca.AcceptedAnswer
		}
		return ca.Votes > cb.Votes
	})

	return idx
}

// CanAccept reports whether userID may request acceptance of an answer on
// the record. This guards the UI control only; the server arbitrates the
// invariant and the client applies whatever accepted-state comes back.
func CanAccept(r *ContentRecord, userID string) bool {
	return r.IsQuestion() && r.IsOwner(userID) && !r.Solved
}
