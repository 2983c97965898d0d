package chatbot

// levenshtein returns the edit distance between two strings.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

// similarity normalizes edit distance into [0, 1].
func similarity(a, b string) float64 {
	longest := max(len([]rune(a)), len([]rune(b)))
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein(a, b))/float64(longest)
}

const fuzzyCutoff = 0.6

// closestKeyword returns the best-matching keyword for a word, tolerating
// typos like "spcial" for "special". An empty string means no match above
// the cutoff.
func closestKeyword(word string, keywords []string) string {
	best := ""
	bestScore := fuzzyCutoff
	for _, kw := range keywords {
		if score := similarity(word, kw); score >= bestScore {
			best = kw
			bestScore = score
		}
	}
	return best
}
