package rules

import (
	"regexp"
	"strings"

	"tickertag/models"
)

// Matcher is one independent pattern detector. Match either asserts a
// category (fired=true) or abstains; it sees nothing but the event's text
// and minimal structure, so it cannot leak price or impact data.
type Matcher struct {
	Name  string
	Match func(in Input) (Result, bool)
}

// Result is a matcher's asserted classification before the engine fills in
// structural tags and schema metadata.
type Result struct {
	Category  models.CategoryLabel
	Format    models.FormatTag
	Tone      models.ToneTag
	Rationale string
}

var linkOnlyRe = regexp.MustCompile(`^(?:\s*https?://\S+\s*)+$`)

// LinkOnlyMatcher fires when the text is nothing but one or more URLs.
func LinkOnlyMatcher() Matcher {
	return Matcher{
		Name: "link_only",
		Match: func(in Input) (Result, bool) {
			if !linkOnlyRe.MatchString(in.Text) {
				return Result{}, false
			}
			return Result{
				Category:  models.CategoryMedia,
				Format:    models.FormatLinkOnly,
				Tone:      models.ToneNeutral,
				Rationale: "text consists solely of links",
			}, true
		},
	}
}

var updatePhrases = []string{
	"is now live",
	"are now live",
	"now available",
	"we've shipped",
	"we just shipped",
	"has been released",
	"is rolling out",
	"now supports",
}

// ProductUpdateMatcher fires on explicit release/launch phrasing.
func ProductUpdateMatcher() Matcher {
	return Matcher{
		Name: "product_update",
		Match: func(in Input) (Result, bool) {
			lower := strings.ToLower(in.Text)
			for _, phrase := range updatePhrases {
				if strings.Contains(lower, phrase) {
					return Result{
						Category:  models.CategoryUpdate,
						Tone:      models.ToneNeutral,
						Rationale: "explicit release phrasing: " + quoted(phrase),
					}, true
				}
			}
			return Result{}, false
		},
	}
}

var milestoneMarkers = []string{"🎉", "🥳", "we hit", "we crossed", "we passed"}
var milestoneQuantities = []string{"million", "billion", "users", "holders", "downloads", "followers"}

// MilestoneMatcher fires only when a celebratory marker co-occurs with a
// quantity word; a bare party emoji is not enough.
func MilestoneMatcher() Matcher {
	return Matcher{
		Name: "milestone",
		Match: func(in Input) (Result, bool) {
			lower := strings.ToLower(in.Text)
			marked := false
			for _, m := range milestoneMarkers {
				if strings.Contains(lower, m) {
					marked = true
					break
				}
			}
			if !marked {
				return Result{}, false
			}
			for _, q := range milestoneQuantities {
				if strings.Contains(lower, q) {
					return Result{
						Category:  models.CategoryMilestone,
						Tone:      models.ToneCelebratory,
						Rationale: "celebratory marker with a quantity milestone",
					}, true
				}
			}
			return Result{}, false
		},
	}
}

var fudWordRe = regexp.MustCompile(`(?i)\bfud\b`)

// DefenseMatcher fires on explicit FUD-rebuttal wording.
func DefenseMatcher() Matcher {
	return Matcher{
		Name: "defense",
		Match: func(in Input) (Result, bool) {
			if !fudWordRe.MatchString(in.Text) {
				return Result{}, false
			}
			return Result{
				Category:  models.CategoryDefense,
				Tone:      models.ToneDefensive,
				Rationale: "explicit FUD rebuttal wording",
			}, true
		},
	}
}

var partnershipPhrases = []string{
	"partnering with",
	"partnership with",
	"teamed up with",
	"teaming up with",
	"joining forces with",
}

// PartnershipMatcher fires on explicit partnership phrasing.
func PartnershipMatcher() Matcher {
	return Matcher{
		Name: "partnership",
		Match: func(in Input) (Result, bool) {
			lower := strings.ToLower(in.Text)
			for _, phrase := range partnershipPhrases {
				if strings.Contains(lower, phrase) {
					return Result{
						Category:  models.CategoryPartnership,
						Tone:      models.ToneNeutral,
						Rationale: "explicit partnership phrasing: " + quoted(phrase),
					}, true
				}
			}
			return Result{}, false
		},
	}
}

func quoted(s string) string {
	return `"` + s + `"`
}
