// The heytaco command runs the HeyTaco bot: it wires the configuration, the
// score store, the slack client and the dispatcher together and serves the
// slack events API endpoint
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/nlopes/slack"
	"github.com/spf13/viper"
	"github.com/stevenspiel/heytaco"
	"github.com/stevenspiel/heytaco/config"
	"github.com/stevenspiel/heytaco/store"
	"github.com/stevenspiel/heytaco/store/datastoredb"
)

const (
	appName     = "HeyTaco"
	storageName = "heytaco"
)

func main() {
	configPath := flag.String("config", "", "path to a configuration file")
	flag.Parse()

	v := viper.New()
	v.SetEnvPrefix(storageName)
	v.AutomaticEnv()

	if *configPath != "" {
		v.SetConfigFile(*configPath)
		if err := v.ReadInConfig(); err != nil {
			log.Fatalf("Error loading configuration file [%s]: %v", *configPath, err)
		}
	}

	v = config.LayerConfigWithDefaults(v)

	logger := heytaco.NewSLogger(log.New(os.Stdout, "heytaco: ", log.Lshortfile|log.LstdFlags), v.GetBool(config.DebugKey))

	token := v.GetString(config.TokenKey)
	if token == "" {
		log.Fatalf("Missing slack token (set the %s configuration key or the HEYTACO_TOKEN environment variable)", config.TokenKey)
	}

	storer, err := newScoreStorer(v)
	if err != nil {
		log.Fatalf("Error opening score store: %v", err)
	}
	defer storer.Close()

	client := slack.New(token)
	sender := heytaco.NewSlackMessageSender(client)

	finder, err := newUserInfoFinder(v, client, logger)
	if err != nil {
		log.Fatalf("Error setting up user directory: %v", err)
	}

	ht := heytaco.New(appName, v, storer, sender, finder, heytaco.OptionLogger(logger))

	go func() {
		if err := ht.RunRecapScheduler(); err != nil {
			logger.Printf("Error running recap scheduler: %v\n", err)
		}
	}()

	addr := fmt.Sprintf(":%d", v.GetInt(config.PortKey))
	logger.Printf("App %s listening on %s\n", appName, addr)

	if err := http.ListenAndServe(addr, ht.NewRouter()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// newScoreStorer opens the configured score store backend: google cloud
// datastore when a gcloud project ID is set, leveldb otherwise
func newScoreStorer(v *viper.Viper) (storer store.ScoreStorer, err error) {
	if projectID := v.GetString(config.GcloudProjectIDKey); projectID != "" {
		return datastoredb.NewDatastoreDB(storageName, projectID)
	}

	return store.NewLevelDB(storageName, v.GetString(config.StoragePathKey))
}

// newUserInfoFinder sets up the user directory: an lru-cached per-user
// loader when a cache size is configured, the process-lifetime bulk
// directory otherwise
func newUserInfoFinder(v *viper.Viper, client *slack.Client, logger heytaco.SLogger) (finder heytaco.UserInfoFinder, err error) {
	if v.GetInt(config.UserInfoCacheSizeKey) > 0 {
		return heytaco.NewCachingUserInfoFinder(v, client, logger)
	}

	return heytaco.NewSlackUserDirectory(client, logger), nil
}
