package heytaco

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
)

// Supported event types
const (
	messageEventType    = "message"
	appMentionEventType = "app_mention"
)

// Event is the inbound slack event shape the dispatcher consumes. It is
// transient: it only exists for the duration of one dispatch
type Event struct {
	Type     string `json:"type"`
	Subtype  string `json:"subtype,omitempty"`
	Text     string `json:"text"`
	User     string `json:"user"`
	Channel  string `json:"channel"`
	ThreadTS string `json:"thread_ts,omitempty"`
	BotID    string `json:"bot_id,omitempty"`
}

// The commands understood on an app mention, matched after lower-casing and
// whitespace-folding the message text
var appMentionCommands = []string{
	"leaderboard",
	"help",
	"thx",
	"thanks",
	"thankyou",
	"thank you",
}

const fallbackMessage = "Sorry, I'm not quite sure what you're asking me. I'm not very smart - there are only a " +
	"few things I've been trained to do. Send me `help` for more details."

var thankYouMessages = []string{
	"Don't mention it!",
	"You're welcome.",
	"No thank YOU!",
	":taco: for taking the time to say thanks!\n..." +
		"just kidding, I can't :taco: you. But it's the thought that counts, right??",
}

// HandleEvent validates and dispatches one inbound event. The returned value
// is the validation outcome only: false means the event was rejected before
// any handler ran (missing type, unsupported subtype, blank text or a bot
// sender). Once accepted, the event's award flows run to completion with
// each flow catching and logging its own downstream failures, so a true
// outcome never reflects store or send errors
func (ht *HeyTaco) HandleEvent(event *Event) (accepted bool) {
	ht.instrumenter.eventSeen()

	if event.Type == "" {
		ht.logger.Printf("Event data missing\n")
		ht.instrumenter.eventRejected()
		return false
	}

	// Messages with a subtype (edits, bot relays, etc.) are unsupported
	if event.Subtype != "" {
		ht.logger.Printf("Unsupported event subtype: %s\n", event.Subtype)
		ht.instrumenter.eventRejected()
		return false
	}

	if strings.TrimSpace(event.Text) == "" {
		ht.logger.Printf("Event text missing\n")
		ht.instrumenter.eventRejected()
		return false
	}

	// Don't respond to bots (especially THIS bot, which could cause an infinite loop)
	if event.BotID != "" {
		ht.logger.Debugf("Ignoring event from bot [%s]\n", event.BotID)
		ht.instrumenter.eventRejected()
		return false
	}

	switch event.Type {
	case messageEventType:
		ht.handleMessage(event)
	case appMentionEventType:
		ht.handleAppMention(event)
	default:
		ht.logger.Printf("Invalid event received: %s\n", event.Type)
		ht.instrumenter.eventRejected()
		return false
	}

	ht.instrumenter.eventHandled(event.Type)
	return true
}

// handleMessage runs the award pipeline over a regular channel message:
// every extracted item gets its own award flow. Flows are initiated without
// waiting for each other and a flow's failure never aborts its siblings;
// the overall handling completes when all flows have
func (ht *HeyTaco) handleMessage(event *Event) {
	items := ExtractTacoData(event.Text)

	var wg sync.WaitGroup
	for _, item := range items {
		wg.Add(1)

		go func(item string) {
			defer wg.Done()

			if item == event.User {
				ht.handleSelfTaco(item, event)
			} else {
				ht.handleTaco(item, event)
			}
		}(item)
	}

	wg.Wait()
}

// handleSelfTaco handles an attempt by a user to taco themselves: the
// attempt is logged and the user is told it wasn't successful. No score
// mutation occurs
func (ht *HeyTaco) handleSelfTaco(user string, event *Event) {
	ht.logger.Printf("%s tried to taco themselves\n", user)

	message, err := GetRandomMessage(SelfPlus, user)
	if err != nil {
		ht.logger.Printf("Error composing self taco message: %v\n", err)
		return
	}

	if err = ht.sender.SendMessage(message, event.Channel, event.ThreadTS); err != nil {
		ht.logger.Printf("Error handling self taco: %v\n", err)
	}
}

// handleTaco awards a taco to an item and notifies the channel of the new
// score
func (ht *HeyTaco) handleTaco(item string, event *Event) {
	score, err := ht.storer.AddPoint(item)
	if err != nil {
		ht.logger.Printf("Error updating score for [%s]: %v\n", item, err)
		return
	}

	ht.instrumenter.pointAwarded()

	message, err := GetRandomMessage(Plus, item, score)
	if err != nil {
		ht.logger.Printf("Error composing taco message: %v\n", err)
		return
	}

	if err = ht.sender.SendMessage(message, event.Channel, event.ThreadTS); err != nil {
		ht.logger.Printf("Error handling taco: %v\n", err)
	}
}

// handleAppMention looks for a known command in a message addressed directly
// to the bot and hands it off to its responder. An unrecognized command
// yields the fallback message, not an error
func (ht *HeyTaco) handleAppMention(event *Event) {
	command, found := ExtractCommand(normalizeCommandText(event.Text), appMentionCommands)
	if !found {
		if err := ht.sender.SendMessage(fallbackMessage, event.Channel, event.ThreadTS); err != nil {
			ht.logger.Printf("Error sending fallback message: %v\n", err)
		}
		return
	}

	switch command {
	case "leaderboard":
		ht.handleLeaderboard(event)
	case "help":
		ht.sendHelp(event)
	default:
		ht.sayThanks(event)
	}
}

// normalizeCommandText folds case and whitespace once so command matching
// doesn't depend on how the command was typed
func normalizeCommandText(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

// sayThanks sends a random thank-you acknowledgment mentioning the requester
func (ht *HeyTaco) sayThanks(event *Event) {
	message := fmt.Sprintf("<@%s> %s", event.User, thankYouMessages[rand.Intn(len(thankYouMessages))])

	if err := ht.sender.SendMessage(message, event.Channel, event.ThreadTS); err != nil {
		ht.logger.Printf("Error saying thanks: %v\n", err)
	}
}

// sendHelp sends a help message explaining the bot's commands to the
// requesting channel
func (ht *HeyTaco) sendHelp(event *Event) {
	message := "Sure, here's what I can do:\n\n" +
		"• `@someone :taco:`: Adds a taco to @someone\n" +
		fmt.Sprintf("• `@%s leaderboard`: Display the leaderboard\n", ht.name) +
		fmt.Sprintf("• `@%s help`: Display this message\n\n", ht.name) +
		"You'll need to invite me to a channel before I can recognize " +
		":taco: commands in it."

	if err := ht.sender.SendMessage(message, event.Channel, event.ThreadTS); err != nil {
		ht.logger.Printf("Error sending help: %v\n", err)
	}
}
