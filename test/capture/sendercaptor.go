// Package capture provides test captors implementing the heytaco outbound
// interfaces
package capture

import (
	"sync"
)

// SenderCaptor holds messages sent to it keyed by channel ID. It is safe for
// use by concurrent award flows. A non-nil Err is returned by every send to
// simulate delivery failures
type SenderCaptor struct {
	mutex        sync.Mutex
	SentMessages map[string][]string
	Err          error
}

// NewSender returns a new initialized SenderCaptor instance
func NewSender() (s *SenderCaptor) {
	s = new(SenderCaptor)
	s.SentMessages = make(map[string][]string)

	return s
}

// SendMessage captures the details of a sent message (the message itself and
// the channel it's sent to)
func (s *SenderCaptor) SendMessage(text string, channelID string, threadTS string) (err error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.Err != nil {
		return s.Err
	}

	s.SentMessages[channelID] = append(s.SentMessages[channelID], text)
	return nil
}

// Count returns the total number of captured messages over all channels
func (s *SenderCaptor) Count() (count int) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, msgs := range s.SentMessages {
		count += len(msgs)
	}

	return count
}

// Messages returns a copy of the messages captured for a channel
func (s *SenderCaptor) Messages(channelID string) (messages []string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return append(messages, s.SentMessages[channelID]...)
}
