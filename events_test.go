package heytaco_test

import (
	"fmt"
	"io/ioutil"
	"log"
	"strings"
	"testing"

	"github.com/nlopes/slack"
	"github.com/stevenspiel/heytaco"
	"github.com/stevenspiel/heytaco/config"
	"github.com/stevenspiel/heytaco/store"
	"github.com/stevenspiel/heytaco/store/inmemorydb"
	"github.com/stevenspiel/heytaco/store/mocks"
	"github.com/stevenspiel/heytaco/test/capture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type userInfoFinder struct {
}

func (u userInfoFinder) GetUserInfo(userID string) (user *slack.User, err error) {
	return &slack.User{ID: userID, Name: "btremblay", RealName: "Bernard Tremblay"}, nil
}

func newTestBot(t *testing.T) (ht *heytaco.HeyTaco, storer *inmemorydb.InMemoryDB, sender *capture.SenderCaptor) {
	storer = inmemorydb.New()
	sender = capture.NewSender()

	v := config.NewViperWithDefaults()
	logger := heytaco.NewSLogger(log.New(ioutil.Discard, "", 0), false)

	ht = heytaco.New("HeyTaco", v, storer, sender, userInfoFinder{}, heytaco.OptionLogger(logger))
	return ht, storer, sender
}

func newMessageEvent(text string, user string) *heytaco.Event {
	return &heytaco.Event{Type: "message", Text: text, User: user, Channel: "C00000000"}
}

func TestRejectionOfMalformedEvents(t *testing.T) {
	testCases := []struct {
		name  string
		event *heytaco.Event
	}{
		{"missing type", &heytaco.Event{Text: "<@U00000100> :taco:", User: "U00000200", Channel: "C00000000"}},
		{"unsupported subtype", &heytaco.Event{Type: "message", Subtype: "message_changed", Text: "<@U00000100> :taco:", User: "U00000200", Channel: "C00000000"}},
		{"missing text", &heytaco.Event{Type: "message", User: "U00000200", Channel: "C00000000"}},
		{"whitespace only text", &heytaco.Event{Type: "message", Text: "   \n", User: "U00000200", Channel: "C00000000"}},
		{"bot sender", &heytaco.Event{Type: "message", Text: "<@U00000100> :taco:", User: "U00000200", Channel: "C00000000", BotID: "B00000001"}},
		{"unknown type", &heytaco.Event{Type: "reaction_added", Text: "some text", User: "U00000200", Channel: "C00000000"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ht, storer, sender := newTestBot(t)

			accepted := ht.HandleEvent(tc.event)

			assert.False(t, accepted)
			assert.Equal(t, 0, sender.Count())

			_, found, err := storer.GetScore("U00000100")
			assert.Nil(t, err)
			assert.False(t, found)
		})
	}
}

func TestSingleTacoForAThing(t *testing.T) {
	ht, storer, sender := newTestBot(t)

	accepted := ht.HandleEvent(newMessageEvent("@ThingA:taco:", "U00000200"))
	assert.True(t, accepted)

	score, found, err := storer.GetScore("ThingA")
	assert.Nil(t, err)
	assert.True(t, found)
	assert.Equal(t, 1, score)

	if messages := sender.Messages("C00000000"); assert.Len(t, messages, 1) {
		assert.Contains(t, messages[0], "ThingA")
		assert.NotContains(t, messages[0], "<@ThingA>")
		assert.Contains(t, messages[0], "1 point")
	}
}

func TestRepeatedTacosForAUser(t *testing.T) {
	ht, storer, sender := newTestBot(t)

	for i := 1; i <= 3; i++ {
		accepted := ht.HandleEvent(newMessageEvent("<@U00000100>:taco:", "U00000200"))
		assert.True(t, accepted)

		score, found, err := storer.GetScore("U00000100")
		assert.Nil(t, err)
		assert.True(t, found)
		assert.Equal(t, i, score)
	}

	if messages := sender.Messages("C00000000"); assert.Len(t, messages, 3) {
		assert.Contains(t, messages[2], "<@U00000100>")
		assert.Contains(t, messages[2], "3 points")
	}
}

func TestThingIdentityIsCaseInsensitive(t *testing.T) {
	ht, storer, _ := newTestBot(t)

	ht.HandleEvent(newMessageEvent("@ThingA:taco:", "U00000200"))
	ht.HandleEvent(newMessageEvent("@tHiNgA :taco:", "U00000200"))

	score, found, err := storer.GetScore("THINGA")
	assert.Nil(t, err)
	assert.True(t, found)
	assert.Equal(t, 2, score)

	// The display casing of the first use sticks
	entries, err := storer.TopScores(10)
	assert.Nil(t, err)
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "ThingA", entries[0].Item)
	}
}

func TestSelfTacoIsRefused(t *testing.T) {
	ht, storer, sender := newTestBot(t)

	accepted := ht.HandleEvent(newMessageEvent("<@U00000300>:taco:", "U00000300"))
	assert.True(t, accepted)

	_, found, err := storer.GetScore("U00000300")
	assert.Nil(t, err)
	assert.False(t, found)

	if messages := sender.Messages("C00000000"); assert.Len(t, messages, 1) {
		assert.Contains(t, messages[0], "<@U00000300>")
		assert.NotContains(t, messages[0], "point")
	}
}

func TestMultipleTacosInOneMessage(t *testing.T) {
	ht, storer, sender := newTestBot(t)

	accepted := ht.HandleEvent(newMessageEvent("<@U00000100> :taco: and <@U00000200> :taco:", "U00000300"))
	assert.True(t, accepted)

	for _, user := range []string{"U00000100", "U00000200"} {
		score, found, err := storer.GetScore(user)
		assert.Nil(t, err)
		assert.True(t, found)
		assert.Equal(t, 1, score)
	}

	// One reply per award, in no guaranteed order
	messages := sender.Messages("C00000000")
	assert.Len(t, messages, 2)
	assert.Contains(t, strings.Join(messages, "\n"), "<@U00000100>")
	assert.Contains(t, strings.Join(messages, "\n"), "<@U00000200>")
}

func TestConcurrentTacosToSameItemDontLoseUpdates(t *testing.T) {
	ht, storer, sender := newTestBot(t)

	tacos := strings.Repeat("<@U00000100> :taco: ", 10)
	accepted := ht.HandleEvent(newMessageEvent(tacos, "U00000200"))
	assert.True(t, accepted)

	score, found, err := storer.GetScore("U00000100")
	assert.Nil(t, err)
	assert.True(t, found)
	assert.Equal(t, 10, score)
	assert.Equal(t, 10, sender.Count())
}

func TestStoreFailureIsIsolatedPerFlow(t *testing.T) {
	storer := new(mocks.ScoreStorer)
	storer.On("AddPoint", "U00000100").Return(0, fmt.Errorf("persistence exploded"))
	storer.On("AddPoint", "U00000200").Return(1, nil)

	sender := capture.NewSender()
	v := config.NewViperWithDefaults()
	logger := heytaco.NewSLogger(log.New(ioutil.Discard, "", 0), false)
	ht := heytaco.New("HeyTaco", v, storer, sender, userInfoFinder{}, heytaco.OptionLogger(logger))

	accepted := ht.HandleEvent(newMessageEvent("<@U00000100> :taco: and <@U00000200> :taco:", "U00000300"))

	// The failing flow is logged and swallowed; the sibling still replies
	assert.True(t, accepted)
	if messages := sender.Messages("C00000000"); assert.Len(t, messages, 1) {
		assert.Contains(t, messages[0], "<@U00000200>")
	}

	storer.AssertCalled(t, "AddPoint", "U00000100")
	storer.AssertCalled(t, "AddPoint", "U00000200")
}

func TestSendFailureDoesNotFailDispatch(t *testing.T) {
	ht, storer, sender := newTestBot(t)
	sender.Err = fmt.Errorf("slack is down")

	accepted := ht.HandleEvent(newMessageEvent("<@U00000100> :taco:", "U00000200"))

	assert.True(t, accepted)
	assert.Equal(t, 0, sender.Count())

	// The award still happened, only the notification was lost
	score, _, err := storer.GetScore("U00000100")
	assert.Nil(t, err)
	assert.Equal(t, 1, score)
}

func newAppMentionEvent(text string, user string) *heytaco.Event {
	return &heytaco.Event{Type: "app_mention", Text: text, User: user, Channel: "C00000000"}
}

func TestAppMentionHelp(t *testing.T) {
	ht, storer, sender := newTestBot(t)

	accepted := ht.HandleEvent(newAppMentionEvent("<@U99999999> help", "U00000200"))
	assert.True(t, accepted)

	if messages := sender.Messages("C00000000"); assert.Len(t, messages, 1) {
		assert.Contains(t, messages[0], "here's what I can do")
		assert.Contains(t, messages[0], "leaderboard")
	}

	entries, err := storer.TopScores(10)
	assert.Nil(t, err)
	assert.Empty(t, entries)
}

func TestAppMentionThanks(t *testing.T) {
	testCases := []string{
		"<@U99999999> thanks",
		"<@U99999999> thx",
		"<@U99999999> thankyou",
		"<@U99999999> thank you",
		"<@U99999999> Thank You",
		"<@U99999999> THANKS",
	}

	for _, text := range testCases {
		t.Run(text, func(t *testing.T) {
			ht, storer, sender := newTestBot(t)

			accepted := ht.HandleEvent(newAppMentionEvent(text, "U00000200"))
			assert.True(t, accepted)

			if messages := sender.Messages("C00000000"); assert.Len(t, messages, 1) {
				assert.Contains(t, messages[0], "<@U00000200>")
			}

			entries, err := storer.TopScores(10)
			assert.Nil(t, err)
			assert.Empty(t, entries)
		})
	}
}

func TestAppMentionLeaderboard(t *testing.T) {
	ht, _, sender := newTestBot(t)

	ht.HandleEvent(newMessageEvent("<@U00000100> :taco:", "U00000200"))
	ht.HandleEvent(newMessageEvent("@coffee :taco: @coffee :taco:", "U00000200"))

	accepted := ht.HandleEvent(newAppMentionEvent("<@U99999999> leaderboard", "U00000200"))
	assert.True(t, accepted)

	messages := sender.Messages("C00000000")
	if assert.Len(t, messages, 4) {
		leaderboard := messages[3]
		assert.Contains(t, leaderboard, "top 2")
		assert.Contains(t, leaderboard, "coffee")
		assert.Contains(t, leaderboard, "Bernard Tremblay")
		assert.NotContains(t, leaderboard, "U00000100")
	}
}

func TestAppMentionLeaderboardWhenEmpty(t *testing.T) {
	ht, _, sender := newTestBot(t)

	ht.HandleEvent(newAppMentionEvent("<@U99999999> leaderboard", "U00000200"))

	if messages := sender.Messages("C00000000"); assert.Len(t, messages, 1) {
		assert.Contains(t, messages[0], "No :taco: has been given yet")
	}
}

func TestAppMentionLeaderboardFailure(t *testing.T) {
	storer := new(mocks.ScoreStorer)
	storer.On("TopScores", mock.Anything).Return([]store.ScoreEntry{}, fmt.Errorf("scan failed"))

	sender := capture.NewSender()
	v := config.NewViperWithDefaults()
	logger := heytaco.NewSLogger(log.New(ioutil.Discard, "", 0), false)
	ht := heytaco.New("HeyTaco", v, storer, sender, userInfoFinder{}, heytaco.OptionLogger(logger))

	accepted := ht.HandleEvent(newAppMentionEvent("<@U99999999> leaderboard", "U00000200"))

	assert.True(t, accepted)
	if messages := sender.Messages("C00000000"); assert.Len(t, messages, 1) {
		assert.Contains(t, messages[0], "Sorry, I couldn't get the leaderboard")
	}
}

func TestAppMentionWithUnknownCommand(t *testing.T) {
	ht, _, sender := newTestBot(t)

	accepted := ht.HandleEvent(newAppMentionEvent("<@U99999999> make me a sandwich", "U00000200"))
	assert.True(t, accepted)

	if messages := sender.Messages("C00000000"); assert.Len(t, messages, 1) {
		assert.Contains(t, messages[0], "not quite sure what you're asking me")
	}
}
