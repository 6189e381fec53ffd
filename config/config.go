// Package config provides the heytaco configuration keys along with layered
// viper defaults
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

const (
	// TokenKey holds the slack bot user OAuth token
	TokenKey = "token"
	// DebugKey enables debug logging
	DebugKey = "debug"
	// PortKey holds the HTTP listening port for the events endpoint
	PortKey = "port"
	// StoragePathKey holds the directory where the leveldb score database lives
	StoragePathKey = "storagePath"
	// GcloudProjectIDKey selects the google cloud datastore backend when non-empty
	GcloudProjectIDKey = "gcloudProjectID"
	// LeaderboardLimitKey holds how many entries a leaderboard reply includes
	LeaderboardLimitKey = "leaderboardLimit"
	// UserInfoCacheSizeKey holds the number of entries to keep in the user info cache (0 disables caching)
	UserInfoCacheSizeKey = "userInfoCacheSize"
	// TimeLocationKey holds the time zone location used by the recap scheduler
	TimeLocationKey = "timeLocation"
	// RecapChannelKey holds the channel the scheduled leaderboard recap posts to (empty disables the recap)
	RecapChannelKey = "recapChannel"
	// RecapWeekdayKey holds the weekday of the scheduled leaderboard recap
	RecapWeekdayKey = "recapWeekday"
	// RecapAtTimeKey holds the time of day of the scheduled leaderboard recap
	RecapAtTimeKey = "recapAtTime"
)

// Default values applied by NewViperWithDefaults
const (
	defaultPort              = 8080
	defaultStoragePath       = "~/.heytaco"
	defaultLeaderboardLimit  = 10
	defaultUserInfoCacheSize = 0
	defaultTimeLocation      = "Local"
	defaultRecapWeekday      = "Friday"
	defaultRecapAtTime       = "16:00"
)

// NewViperWithDefaults creates a new viper instance with all heytaco
// defaults set
func NewViperWithDefaults() (v *viper.Viper) {
	v = viper.New()
	v.SetDefault(DebugKey, false)
	v.SetDefault(PortKey, defaultPort)
	v.SetDefault(StoragePathKey, defaultStoragePath)
	v.SetDefault(LeaderboardLimitKey, defaultLeaderboardLimit)
	v.SetDefault(UserInfoCacheSizeKey, defaultUserInfoCacheSize)
	v.SetDefault(TimeLocationKey, defaultTimeLocation)
	v.SetDefault(RecapWeekdayKey, defaultRecapWeekday)
	v.SetDefault(RecapAtTimeKey, defaultRecapAtTime)

	return v
}

// LayerConfigWithDefaults layers the heytaco defaults under the provided
// viper instance so that explicitly set values win over defaults
func LayerConfigWithDefaults(v *viper.Viper) (layered *viper.Viper) {
	layered = NewViperWithDefaults()

	for key, value := range v.AllSettings() {
		layered.Set(key, value)
	}

	return layered
}

// GetTimeLocation reads the time location from the configuration and loads
// the time.Location it names
func GetTimeLocation(v *viper.Viper) (timeLoc *time.Location, err error) {
	locationID := v.GetString(TimeLocationKey)

	timeLoc, err = time.LoadLocation(locationID)
	if err != nil {
		return nil, fmt.Errorf("invalid time location [%s]: %v", locationID, err)
	}

	return timeLoc, nil
}
