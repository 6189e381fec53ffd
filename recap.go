package heytaco

import (
	"fmt"

	"github.com/marcsantiago/gocron"
	"github.com/stevenspiel/heytaco/config"
	"github.com/stevenspiel/heytaco/schedule"
)

// RunRecapScheduler schedules the periodic leaderboard recap and blocks
// running it. It is meant to run in a goroutine. When no recap channel is
// configured this returns immediately without scheduling anything
func (ht *HeyTaco) RunRecapScheduler() (err error) {
	channel := ht.config.GetString(config.RecapChannelKey)
	if channel == "" {
		ht.logger.Debugf("No recap channel configured, recap scheduler disabled\n")
		return nil
	}

	timeLoc, err := config.GetTimeLocation(ht.config)
	if err != nil {
		return err
	}

	sd := schedule.Definition{
		Interval: 1,
		Weekday:  ht.config.GetString(config.RecapWeekdayKey),
		AtTime:   ht.config.GetString(config.RecapAtTimeKey),
	}

	gocron.ChangeLoc(timeLoc)
	sc := gocron.NewScheduler()

	j, err := schedule.NewJob(sc, sd)
	if err != nil {
		return err
	}

	ht.logger.Printf("Scheduling leaderboard recap to [%s]: %s\n", channel, sd)
	j.Do(ht.postRecap, channel)

	<-sc.Start()
	return nil
}

// postRecap posts the current leaderboard to the recap channel
func (ht *HeyTaco) postRecap(channel string) {
	text, err := ht.leaderboardText()
	if err != nil {
		ht.logger.Printf("Error getting leaderboard for recap: %v\n", err)
		return
	}

	message := fmt.Sprintf("It's taco recap time!\n%s", text)
	if err := ht.sender.SendMessage(message, channel, ""); err != nil {
		ht.logger.Printf("Error posting recap: %v\n", err)
	}
}
