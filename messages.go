package heytaco

import (
	"fmt"
	"math/rand"
	"strings"
)

// messageSet holds a group of phrasing variants for an operation. Sets keep
// related phrasings together for readability; selection is uniformly random
// over all variants of all sets with no non-repeat state
type messageSet struct {
	set []string
}

// messages maps each operation to its reply phrasing variants. Templates
// contain the {item} and {score} placeholders
var messages = map[Operation][]messageSet{
	Plus: {
		{
			set: []string{
				"Congrats, {item}! You're now at {score}.",
				"{item} just earned a taco and is up to {score}.",
				"Way to go, {item}! That brings you to {score}.",
				"Taco incoming! {item} now has {score}.",
				"Nice one, {item}! Your total is now {score}.",
			},
		},
		{
			set: []string{
				"BOOM! {item} just landed at {score}.",
				":taco: delivery for {item}! The count stands at {score}.",
			},
		},
	},
	SelfPlus: {
		{
			set: []string{
				"Hey now, {item}, you can't :taco: yourself!",
				"Nice try, {item}! Tacos are for giving, not taking.",
				"Sorry, {item}, self-service tacos aren't a thing.",
			},
		},
	},
}

// GetRandomMessage composes a reply for the given operation and item by
// picking one phrasing variant at random. The score is substituted with its
// pluralized unit word and is ignored by operations that don't report one
// (i.e. SelfPlus). An operation outside the registry is a contract violation
// and returns an error that callers must surface
func GetRandomMessage(op Operation, item string, score ...int) (message string, err error) {
	sets, ok := messages[op]
	if !ok {
		return "", fmt.Errorf("invalid operation [%s]", op)
	}

	variants := make([]string, 0)
	for _, s := range sets {
		variants = append(variants, s.set...)
	}

	message = variants[rand.Intn(len(variants))]
	message = strings.Replace(message, "{item}", MaybeLinkItem(item), -1)

	if len(score) > 0 {
		message = strings.Replace(message, "{score}", formatScore(score[0]), -1)
	}

	return message, nil
}

// formatScore renders a score with its unit word, pluralized for every value
// except 1 and -1
func formatScore(score int) string {
	unit := "point"
	if IsPlural(score) {
		unit = "points"
	}

	return fmt.Sprintf("%d %s", score, unit)
}
