package utils

// SummaryLimit is the rune prefix length used for history listing summaries.
const SummaryLimit = 200

// Summarize truncates content to SummaryLimit runes, appending "..." when it
// was actually shortened. Listings return both this and the full content,
// computed from the same stored value.
func Summarize(content string) string {
	runes := []rune(content)
	if len(runes) <= SummaryLimit {
		return content
	}
	return string(runes[:SummaryLimit]) + "..."
}
