package responder

import (
	"strings"

	st "shopfront/internal/storagetypes"
)

// Match returns the first rule, in stored order, whose scope covers the
// channel and whose trigger is a case-insensitive substring of text.
// First match wins; overlapping later rules never fire for the same input.
// Returns nil when nothing matches.
func Match(rules []st.AutoresponderRule, text, channelID string) *st.AutoresponderRule {
	lower := strings.ToLower(text)
	for i := range rules {
		r := &rules[i]
		if r.ChannelID != "" && r.ChannelID != channelID {
			continue
		}
		if strings.Contains(lower, strings.ToLower(r.Trigger)) {
			return r
		}
	}
	return nil
}
