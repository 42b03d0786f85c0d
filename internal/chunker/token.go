package chunker

import "strings"

// English text averages about 1.33 model tokens per word.
const tokensPerHundredWords = 133

// EstimateTokens approximates the token count shown in a document summary.
// Any text with at least one word counts as one token or more.
func EstimateTokens(text string) int {
	words := len(strings.Fields(text))
	if words == 0 {
		return 0
	}
	return max(1, words*tokensPerHundredWords/100)
}
