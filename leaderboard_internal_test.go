package heytaco

import (
	"testing"

	"github.com/stevenspiel/heytaco/store"
	"github.com/stretchr/testify/assert"
)

func TestFormatLeaderboard(t *testing.T) {
	entries := []store.ScoreEntry{
		{Item: "U00000100", Score: 12},
		{Item: "coffee", Score: 3},
		{Item: "ThingA", Score: 1},
	}

	rendered := formatLeaderboard(entries, func(item string) string {
		if item == "U00000100" {
			return "Bernard Tremblay"
		}

		return item
	})

	assert.Equal(t, "```"+
		"1    12   Bernard Tremblay\n"+
		"2    3    coffee\n"+
		"3    1    ThingA\n"+
		"```\n", rendered)
}

func TestFormatLeaderboardSingleEntry(t *testing.T) {
	entries := []store.ScoreEntry{{Item: "coffee", Score: 1}}

	rendered := formatLeaderboard(entries, func(item string) string { return item })

	assert.Equal(t, "```1    1    coffee\n```\n", rendered)
}
