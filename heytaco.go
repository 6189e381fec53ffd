// Package heytaco provides the core of the HeyTaco slack bot: it interprets
// inbound slack events, awards recognition points ("tacos") to the users and
// things mentioned alongside the trigger emoji, keeps their scores in a
// pluggable score store and replies with randomized congratulatory messages.
// The slack client, the HTTP event endpoint and the storage backends are
// external collaborators injected at construction
package heytaco

import (
	"log"
	"os"

	"github.com/spf13/viper"
	"github.com/stevenspiel/heytaco/config"
	"github.com/stevenspiel/heytaco/store"
	"go.opentelemetry.io/otel/api/global"
	"go.opentelemetry.io/otel/api/metric"
)

// HeyTaco ties the parsing, scoring, composing and sending pieces together
type HeyTaco struct {
	name           string
	config         *viper.Viper
	storer         store.ScoreStorer
	sender         MessageSender
	userInfoFinder UserInfoFinder
	instrumenter   *instrumenter

	logger SLogger
}

// Option defines an option for a HeyTaco instance
type Option func(ht *HeyTaco)

// OptionLogger sets a custom logger instead of the default one writing to
// stdout
func OptionLogger(logger SLogger) Option {
	return func(ht *HeyTaco) {
		ht.logger = logger
	}
}

// OptionMeter sets the meter used for internal instrumentation. The default
// is the global otel meter which is a no-op unless a meter provider is
// registered
func OptionMeter(meter metric.Meter) Option {
	return func(ht *HeyTaco) {
		ht.instrumenter = newInstrumenter(ht.name, meter)
	}
}

// New creates a new HeyTaco bot with the injected collaborators: the
// configuration, the score store, the outbound message sender and the user
// directory
func New(name string, v *viper.Viper, storer store.ScoreStorer, sender MessageSender, userInfoFinder UserInfoFinder, options ...Option) (ht *HeyTaco) {
	ht = &HeyTaco{name: name, config: v, storer: storer, sender: sender, userInfoFinder: userInfoFinder}
	ht.logger = NewSLogger(log.New(os.Stdout, "heytaco: ", log.Lshortfile|log.LstdFlags), v.GetBool(config.DebugKey))
	ht.instrumenter = newInstrumenter(name, global.MeterProvider().Meter(name))

	for _, option := range options {
		option(ht)
	}

	return ht
}
