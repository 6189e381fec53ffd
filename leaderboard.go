package heytaco

import (
	"bufio"
	"bytes"
	"fmt"
	"text/tabwriter"

	"github.com/stevenspiel/heytaco/config"
	"github.com/stevenspiel/heytaco/store"
)

// handleLeaderboard answers the leaderboard command with the current ranked
// list of items
func (ht *HeyTaco) handleLeaderboard(event *Event) {
	text, err := ht.leaderboardText()
	if err != nil {
		ht.logger.Printf("Error getting leaderboard: %v\n", err)
		text = fmt.Sprintf("Sorry, I couldn't get the leaderboard for you. If you must know, this happened: %v", err)
	}

	if err := ht.sender.SendMessage(text, event.Channel, event.ThreadTS); err != nil {
		ht.logger.Printf("Error sending leaderboard: %v\n", err)
	}
}

// leaderboardText renders the top scores as a ranked monospace table. Items
// shaped like user IDs are resolved to their display name through the
// directory; things keep the casing of their first use
func (ht *HeyTaco) leaderboardText() (text string, err error) {
	limit := ht.config.GetInt(config.LeaderboardLimitKey)

	entries, err := ht.storer.TopScores(limit)
	if err != nil {
		return "", err
	}

	if len(entries) == 0 {
		return "No :taco: has been given yet. Time to start recognizing your teammates!", nil
	}

	var b bytes.Buffer
	b.WriteString(fmt.Sprintf("Here are the top %d :taco: earners:\n", len(entries)))
	b.WriteString(formatLeaderboard(entries, ht.renderItem))

	return b.String(), nil
}

// renderItem renders an item for display. User IDs resolve through the
// directory, anything else is shown untouched
func (ht *HeyTaco) renderItem(item string) (renderedItem string) {
	if IsUser(item) {
		return ResolveUserName(ht.userInfoFinder, item, false)
	}

	return item
}

type itemRenderer func(item string) string

func formatLeaderboard(entries []store.ScoreEntry, render itemRenderer) string {
	var b bytes.Buffer
	b.WriteString("```")
	w := new(tabwriter.Writer)
	bufw := bufio.NewWriter(&b)
	w.Init(bufw, 5, 0, 1, ' ', 0)
	for rank, entry := range entries {
		fmt.Fprintf(w, "%d\t%d\t%s\n", rank+1, entry.Score, render(entry.Item))
	}
	fmt.Fprintf(w, "```\n")

	w.Flush()
	bufw.Flush()
	return b.String()
}
