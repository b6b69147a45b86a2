package moderation

import (
	"strings"
)

// FlagKeyword is stored on messages that trip the keyword filter.
const FlagKeyword = "keyword"

// keywords flag content by case-insensitive substring match. Placeholder
// set until a real moderation backend is wired in.
var keywords = []string{"hate", "suicide", "spam"}

// Flagged reports whether the text contains any flagged keyword.
func Flagged(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
