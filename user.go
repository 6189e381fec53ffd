package heytaco

import (
	"fmt"
	"sync"

	"github.com/hashicorp/golang-lru"
	"github.com/nlopes/slack"
	"github.com/spf13/viper"
)

const (
	// unknownUserName is the fallback display name for user IDs absent from
	// the directory
	unknownUserName = "(unknown)"
)

// UserInfoFinder defines the interface for finding a slack user's info
type UserInfoFinder interface {
	GetUserInfo(userID string) (user *slack.User, err error)
}

// slackUserDirectory implements UserInfoFinder by fetching the full user
// list from the slack web API at most once per process lifetime and serving
// lookups from that snapshot. There is no invalidation; staleness of
// renamed users is an accepted tradeoff
type slackUserDirectory struct {
	client *slack.Client
	logger SLogger

	loadOnce sync.Once
	users    map[string]slack.User
	loadErr  error
}

// NewSlackUserDirectory creates a user directory over the given slack
// client. The user list is loaded lazily on the first lookup
func NewSlackUserDirectory(client *slack.Client, logger SLogger) (finder UserInfoFinder) {
	return &slackUserDirectory{client: client, logger: logger}
}

// GetUserInfo returns the directory entry for a user ID or an error if the
// user isn't part of the workspace
func (d *slackUserDirectory) GetUserInfo(userID string) (user *slack.User, err error) {
	d.loadOnce.Do(d.loadUsers)

	if d.loadErr != nil {
		return nil, d.loadErr
	}

	if u, ok := d.users[userID]; ok {
		return &u, nil
	}

	return nil, fmt.Errorf("no user found in directory for id [%s]", userID)
}

// loadUsers fetches the full user list and indexes it by user ID. Concurrent
// first lookups race to call this but converge on the one snapshot loadOnce
// lets through
func (d *slackUserDirectory) loadUsers() {
	d.logger.Printf("Retrieving user list from slack\n")

	users, err := d.client.GetUsers()
	if err != nil {
		d.loadErr = err
		return
	}

	d.users = make(map[string]slack.User, len(users))
	for _, u := range users {
		d.users[u.ID] = u
	}

	d.logger.Debugf("Loaded [%d] directory entries\n", len(d.users))
}

const (
	userInfoCacheSizeKey           = "userInfoCacheSize" // The number of entries to keep in the user info cache, int value. Defaults to no caching
	userInfoCacheSizeDisabledValue = 0
)

// cachingUserInfoFinder holds a cache and a loading UserInfoFinder to implement the UserInfoFinder loading entries from cache
type cachingUserInfoFinder struct {
	loader           UserInfoFinder
	logger           SLogger
	userProfileCache *lru.ARCCache
}

// NewCachingUserInfoFinder creates a new user info service with caching if enabled via userInfoCacheSize. It requires an
// implementation of the interface that will do the actual loading when not in cache
func NewCachingUserInfoFinder(v *viper.Viper, loader UserInfoFinder, logger SLogger) (uf UserInfoFinder, err error) {
	cuf := new(cachingUserInfoFinder)

	cs := v.GetInt(userInfoCacheSizeKey)

	if cs > userInfoCacheSizeDisabledValue {
		cuf.userProfileCache, err = lru.NewARC(cs)
		if err != nil {
			return nil, err
		}
	}

	cuf.loader = loader
	cuf.logger = logger

	return cuf, nil
}

// GetUserInfo gets the user info from cache or loads it on a miss
func (c *cachingUserInfoFinder) GetUserInfo(userID string) (u *slack.User, err error) {
	if c.userProfileCache == nil {
		c.logger.Debugf("Cache disabled, loading user info for [%s] from the loader instead\n", userID)
		return c.loader.GetUserInfo(userID)
	}

	if userProfile, exists := c.userProfileCache.Get(userID); exists {
		c.logger.Debugf("User info in cache [%s] so using that\n", userID)

		userProfile, ok := userProfile.(slack.User)
		if !ok {
			return nil, fmt.Errorf("error converting cached value for user id [%s]", userID)
		}

		return &userProfile, nil
	}

	c.logger.Debugf("User info for [%s] not found in cache, loading and saving\n", userID)
	u, err = c.loader.GetUserInfo(userID)
	if err != nil {
		return nil, err
	}

	c.userProfileCache.Add(userID, *u)

	return u, nil
}

// ResolveUserName resolves a user ID to the user's real name or, when
// preferUsername is set or no real name exists, the username. Unknown IDs
// resolve to "(unknown)"
func ResolveUserName(finder UserInfoFinder, userID string, preferUsername bool) (name string) {
	u, err := finder.GetUserInfo(userID)
	if err != nil || u == nil {
		return unknownUserName
	}

	if preferUsername || u.RealName == "" {
		return u.Name
	}

	return u.RealName
}
