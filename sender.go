package heytaco

import (
	"github.com/nlopes/slack"
)

// MessageSender is implemented by any value that has the SendMessage method.
// The main purpose is a slight decoupling of the slack web client so that
// the dispatcher and tests don't need a live slack workspace to post to
type MessageSender interface {
	// SendMessage posts a message to the given channel. An empty threadTS
	// posts to the channel itself instead of a thread
	SendMessage(text string, channelID string, threadTS string) (err error)
}

// slackMessageSender is the default implementation of MessageSender backed
// by the slack web API chat.postMessage method
type slackMessageSender struct {
	client *slack.Client
}

// NewSlackMessageSender returns a MessageSender posting through the given
// slack client
func NewSlackMessageSender(client *slack.Client) (sender MessageSender) {
	return &slackMessageSender{client: client}
}

// SendMessage posts a new message via the slack web API
func (s *slackMessageSender) SendMessage(text string, channelID string, threadTS string) (err error) {
	options := []slack.MsgOption{slack.MsgOptionText(text, false), slack.MsgOptionAsUser(true)}
	if threadTS != "" {
		options = append(options, slack.MsgOptionTS(threadTS))
	}

	_, _, err = s.client.PostMessage(channelID, options...)
	return err
}
