package domain

import "testing"

func TestModerationStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to ModerationStatus
		want     bool
	}{
		{StatusPending, StatusApproved, true},
		{StatusPending, StatusRejected, true},
		{StatusPending, StatusPending, false},
		{StatusApproved, StatusRejected, false},
		{StatusApproved, StatusPending, false},
		{StatusRejected, StatusApproved, false},
		{StatusRejected, StatusPending, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("%s -> %s: got %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestVoteDirectionDelta(t *testing.T) {
	if VoteUp.Delta() != ReputationUpvote {
		t.Fatalf("upvote delta = %d", VoteUp.Delta())
	}
	if VoteDown.Delta() != ReputationDownvote {
		t.Fatalf("downvote delta = %d", VoteDown.Delta())
	}
}
