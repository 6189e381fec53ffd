package heytaco

import (
	"regexp"
	"strings"
)

// The trigger marker in both of its textual encodings: the emoji short
// code and the raw emoji rune
var triggerRegex = regexp.MustCompile(":taco:|🌮")

// userMentionRegex matches a slack user link construct such as <@U12345678>
var userMentionRegex = regexp.MustCompile("<@([A-Z0-9]+)>")

// thingMentionRegex matches an @thing mention. The character class excludes
// ':' so that "@ThingA:taco:" yields the bare thing name
var thingMentionRegex = regexp.MustCompile(`@([A-Za-z0-9][A-Za-z0-9_'.-]*)`)

// userIDRegex matches the shape of a slack user ID (i.e. U12345678)
var userIDRegex = regexp.MustCompile(`\AU[A-Z0-9]{8}\z`)

// ExtractTacoData extracts the award recipients from raw message text. Every
// occurrence of the trigger marker resolves independently to its nearest
// preceding mention: either a user link (<@U12345678>) anywhere before the
// trigger or an @thing separated from it by whitespace only. Results preserve
// the left-to-right order of the triggers and keep duplicates so that one
// message can award multiple points to the same item
func ExtractTacoData(text string) (items []string) {
	items = make([]string, 0)

	triggers := triggerRegex.FindAllStringIndex(text, -1)
	if triggers == nil {
		return items
	}

	users := userMentionRegex.FindAllStringSubmatchIndex(text, -1)
	things := thingMentionRegex.FindAllStringSubmatchIndex(text, -1)

	for _, trigger := range triggers {
		if item, ok := nearestMention(text, trigger[0], users, things); ok {
			items = append(items, item)
		}
	}

	return items
}

// nearestMention finds the mention closest to (and before) the trigger
// position. Things only qualify when immediately preceding the trigger while
// user links qualify from anywhere earlier in the message, the user being
// explicitly named by the link
func nearestMention(text string, triggerStart int, users [][]int, things [][]int) (item string, ok bool) {
	bestEnd := -1

	for _, m := range users {
		if m[1] <= triggerStart && m[1] > bestEnd {
			bestEnd = m[1]
			item = text[m[2]:m[3]]
		}
	}

	for _, m := range things {
		// Skip the @ inside a user link construct
		if m[0] > 0 && text[m[0]-1] == '<' {
			continue
		}

		if m[1] <= triggerStart && m[1] > bestEnd && strings.TrimSpace(text[m[1]:triggerStart]) == "" {
			bestEnd = m[1]
			item = text[m[2]:m[3]]
		}
	}

	return item, bestEnd >= 0
}

// ExtractCommand scans message text left to right and returns the first of
// the candidate commands found as a whole word (or whole phrase). The match
// is case-sensitive against the candidate set supplied; callers wanting
// case-insensitive behavior normalize the text first
func ExtractCommand(text string, candidates []string) (command string, found bool) {
	first := -1

	for _, c := range candidates {
		if i := indexWholeWord(text, c); i >= 0 && (first < 0 || i < first) {
			first = i
			command = c
		}
	}

	return command, first >= 0
}

// indexWholeWord returns the index of the first whole-word occurrence of word
// in text or -1 if there is none
func indexWholeWord(text string, word string) (index int) {
	for start := 0; start < len(text); {
		i := strings.Index(text[start:], word)
		if i < 0 {
			return -1
		}

		i += start
		end := i + len(word)
		if (i == 0 || !isWordChar(text[i-1])) && (end >= len(text) || !isWordChar(text[end])) {
			return i
		}

		start = i + 1
	}

	return -1
}

func isWordChar(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

// IsUser returns true if the given item has the shape of a slack user ID
func IsUser(item string) bool {
	return userIDRegex.MatchString(item)
}

// IsPlural returns true for every count except exactly 1 and -1
func IsPlural(count int) bool {
	return count != 1 && count != -1
}

// MaybeLinkItem wraps an item in the slack mention syntax if it looks like a
// user ID and returns it untouched otherwise. Arbitrary thing names are
// never linked
func MaybeLinkItem(item string) string {
	if IsUser(item) {
		return "<@" + item + ">"
	}

	return item
}
