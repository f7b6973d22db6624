package logparse

import (
	"strings"

	"github.com/loglens/loglens/internal/model"
)

// Classify maps a user-agent string onto the closed software family set.
// Checks are case-insensitive substring matches and the first match wins, so
// a Chrome UA that also mentions Safari still counts as Chrome. The "-"
// placeholder means the field was absent from the line and classifies as
// Unknown without running the checks.
func Classify(userAgent string) model.SoftwareFamily {
	if userAgent == model.Placeholder {
		return model.FamilyUnknown
	}

	ua := strings.ToLower(userAgent)
	switch {
	case strings.Contains(ua, "chrome"):
		return model.FamilyChrome
	case strings.Contains(ua, "firefox"):
		return model.FamilyFirefox
	case strings.Contains(ua, "safari") && !strings.Contains(ua, "chrome"):
		return model.FamilySafari
	case strings.Contains(ua, "facebook"):
		return model.FamilyFacebookBot
	case strings.Contains(ua, "bot"), strings.Contains(ua, "crawler"):
		return model.FamilyBotOrCrawler
	default:
		return model.FamilyOther
	}
}
