package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVoteValue(t *testing.T) {
	tests := []struct {
		name    string
		input   int
		want    VoteValue
		wantErr bool
	}{
		{name: "like", input: 1, want: VoteLike},
		{name: "dislike", input: -1, want: VoteDislike},
		{name: "neutral", input: 0, want: VoteNeutral},
		{name: "too large", input: 2, wantErr: true},
		{name: "too small", input: -2, wantErr: true},
		{name: "way out of range", input: 100, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseVoteValue(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidVote)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCounterDeltas(t *testing.T) {
	tests := []struct {
		name         string
		cur, next    VoteValue
		likes, disls int
	}{
		{"neutral to like", VoteNeutral, VoteLike, 1, 0},
		{"neutral to dislike", VoteNeutral, VoteDislike, 0, 1},
		{"like to dislike", VoteLike, VoteDislike, -1, 1},
		{"dislike to like", VoteDislike, VoteLike, 1, -1},
		{"like retracted", VoteLike, VoteNeutral, -1, 0},
		{"dislike retracted", VoteDislike, VoteNeutral, 0, -1},
		{"like repeated", VoteLike, VoteLike, 0, 0},
		{"dislike repeated", VoteDislike, VoteDislike, 0, 0},
		{"neutral repeated", VoteNeutral, VoteNeutral, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			likes, dislikes := CounterDeltas(tt.cur, tt.next)
			assert.Equal(t, tt.likes, likes, "likes delta")
			assert.Equal(t, tt.disls, dislikes, "dislikes delta")
		})
	}
}

// Any sequence of transitions starting and ending at the same vote
// value must sum to zero net delta.
func TestCounterDeltasRoundTrip(t *testing.T) {
	sequences := [][]VoteValue{
		{VoteNeutral, VoteLike, VoteNeutral},
		{VoteNeutral, VoteLike, VoteDislike, VoteNeutral},
		{VoteNeutral, VoteDislike, VoteLike, VoteDislike, VoteNeutral},
	}

	for _, seq := range sequences {
		totalLikes, totalDislikes := 0, 0
		for i := 1; i < len(seq); i++ {
			l, d := CounterDeltas(seq[i-1], seq[i])
			totalLikes += l
			totalDislikes += d
		}
		assert.Zero(t, totalLikes)
		assert.Zero(t, totalDislikes)
	}
}
