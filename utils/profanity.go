package utils

import "strings"

// blocklist holds the disallowed terms. Matching is case-insensitive
// substring matching over the whole text.
var blocklist = []string{
	"arse",
	"asshole",
	"bastard",
	"bitch",
	"bollocks",
	"bullshit",
	"cock",
	"crap",
	"cunt",
	"dick",
	"dumbass",
	"fag",
	"fuck",
	"jackass",
	"jerk",
	"kill yourself",
	"kys",
	"loser",
	"motherfucker",
	"nigga",
	"nigger",
	"piss",
	"prick",
	"pussy",
	"retard",
	"shit",
	"slut",
	"twat",
	"ugly",
	"whore",
}

// ProfanityResult reports whether a text matched the blocklist and
// which terms matched.
type ProfanityResult struct {
	HasProfanity bool
	Matched      []string
}

// ContainsProfanity checks free text against the blocklist.
func ContainsProfanity(text string) ProfanityResult {
	lowered := strings.ToLower(text)

	var matched []string
	for _, term := range blocklist {
		if strings.Contains(lowered, term) {
			matched = append(matched, term)
		}
	}

	return ProfanityResult{
		HasProfanity: len(matched) > 0,
		Matched:      matched,
	}
}
