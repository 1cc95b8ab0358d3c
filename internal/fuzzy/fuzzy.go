// Package fuzzy suggests likely-intended field names for typos using a
// case-insensitive edit distance.
package fuzzy

import "strings"

// DefaultThreshold is the largest edit distance still considered a match.
const DefaultThreshold = 3

// EditDistance computes the case-insensitive Levenshtein distance between a
// and b: the minimum number of single-character insertions, deletions, or
// substitutions needed to transform one into the other. It keeps a single
// rolling row, so memory is O(len(b)).
func EditDistance(a, b string) int {
	ra := []rune(strings.ToLower(a))
	rb := []rune(strings.ToLower(b))

	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	row := make([]int, len(rb)+1)
	for j := range row {
		row[j] = j
	}

	for i, ca := range ra {
		prev := i // row[0] from the previous iteration
		row[0] = i + 1

		for j, cb := range rb {
			next := row[j+1]
			if ca == cb {
				row[j+1] = prev
			} else {
				row[j+1] = min(prev, next, row[j]) + 1
			}
			prev = next
		}
	}

	return row[len(rb)]
}

// DidYouMean returns the candidate closest to target, or "" when no
// candidate comes within threshold. Each candidate is truncated to the
// length of target before measuring, which biases detection toward suffix
// and typo variants of known names rather than penalizing length
// differences; the result is therefore not a true symmetric edit distance
// between the original strings. Ties go to the first candidate in the
// supplied order.
func DidYouMean(target string, candidates []string, threshold int) string {
	best := ""
	bestDistance := threshold + 1

	width := len([]rune(target))
	for _, candidate := range candidates {
		truncated := candidate
		if runes := []rune(candidate); len(runes) > width {
			truncated = string(runes[:width])
		}

		if d := EditDistance(target, truncated); d < bestDistance {
			best = candidate
			bestDistance = d
		}
	}

	return best
}
