package gitrepo

// histogramDiff computes a line-level edit script using a histogram
// strategy: the least-frequent line common to both sides anchors the split,
// the matched region around it is kept, and the remainders are diffed
// recursively. Low-occurrence lines make stable anchors, which keeps the
// output aligned with how a reader would pair up the two versions.
func histogramDiff(a, b []string) []lineOp {
	var ops []lineOp
	histogram(a, b, &ops)
	return ops
}

func histogram(a, b []string, ops *[]lineOp) {
	// Trim the common prefix and suffix before anchoring.
	prefix := 0
	for prefix < len(a) && prefix < len(b) && a[prefix] == b[prefix] {
		prefix++
	}
	suffix := 0
	for suffix < len(a)-prefix && suffix < len(b)-prefix &&
		a[len(a)-1-suffix] == b[len(b)-1-suffix] {
		suffix++
	}

	for _, line := range a[:prefix] {
		*ops = append(*ops, lineOp{kind: opEqual, text: line})
	}

	mid0, mid1 := a[prefix:len(a)-suffix], b[prefix:len(b)-suffix]
	ai, bi, ok := lowestOccurrenceAnchor(mid0, mid1)
	if !ok {
		for _, line := range mid0 {
			*ops = append(*ops, lineOp{kind: opDelete, text: line})
		}
		for _, line := range mid1 {
			*ops = append(*ops, lineOp{kind: opInsert, text: line})
		}
	} else {
		// Grow the matched region around the anchor.
		lo := 0
		for ai-lo > 0 && bi-lo > 0 && mid0[ai-lo-1] == mid1[bi-lo-1] {
			lo++
		}
		hi := 1
		for ai+hi < len(mid0) && bi+hi < len(mid1) && mid0[ai+hi] == mid1[bi+hi] {
			hi++
		}

		histogram(mid0[:ai-lo], mid1[:bi-lo], ops)
		for _, line := range mid0[ai-lo : ai+hi] {
			*ops = append(*ops, lineOp{kind: opEqual, text: line})
		}
		histogram(mid0[ai+hi:], mid1[bi+hi:], ops)
	}

	for _, line := range a[len(a)-suffix:] {
		*ops = append(*ops, lineOp{kind: opEqual, text: line})
	}
}

// lowestOccurrenceAnchor picks the line shared by both sides with the fewest
// total occurrences and returns the first index of it on each side.
func lowestOccurrenceAnchor(a, b []string) (ai, bi int, ok bool) {
	countA := make(map[string]int, len(a))
	firstA := make(map[string]int, len(a))
	for i, line := range a {
		countA[line]++
		if _, seen := firstA[line]; !seen {
			firstA[line] = i
		}
	}

	countB := make(map[string]int, len(b))
	firstB := make(map[string]int, len(b))
	for i, line := range b {
		countB[line]++
		if _, seen := firstB[line]; !seen {
			firstB[line] = i
		}
	}

	best := -1
	for line, ca := range countA {
		cb, shared := countB[line]
		if !shared {
			continue
		}
		score := ca + cb
		// Ties break toward the earliest line on the old side so the
		// split is deterministic.
		if best == -1 || score < best || (score == best && firstA[line] < ai) {
			best = score
			ai, bi = firstA[line], firstB[line]
		}
	}

	return ai, bi, best != -1
}
