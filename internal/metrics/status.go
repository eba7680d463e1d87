package metrics

import (
	"regexp"
	"strings"

	"github.com/talvik-analytics/shipkpi/internal/domain"
)

// MatchStatus reports whether a row's status text satisfies the rule set.
// A matcher phrase hits on a case-insensitive exact match or as a
// whole-word substring of the status. A configured custom regex is additive
// to the list match, never a replacement; an invalid pattern is ignored and
// the list match stands alone.
func MatchStatus(status string, rules domain.RulesConfig) bool {
	normalizedStatus := strings.ToLower(strings.TrimSpace(status))

	listMatch := false
	for _, matcher := range rules.StatusMatchers {
		normalized := strings.ToLower(strings.TrimSpace(matcher))
		if normalized == "" {
			continue
		}
		if normalizedStatus == normalized {
			listMatch = true
			break
		}
		wordRe, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(normalized) + `\b`)
		if err == nil && wordRe.MatchString(status) {
			listMatch = true
			break
		}
	}

	if rules.StatusRegex != "" {
		if re, err := regexp.Compile("(?i)" + rules.StatusRegex); err == nil {
			return re.MatchString(status) || listMatch
		}
	}
	return listMatch
}
