package gitrepo

import (
	"fmt"
	"strings"
)

type lineKind int

const (
	opEqual lineKind = iota
	opDelete
	opInsert
)

// lineOp is one line of a line-level edit script.
type lineOp struct {
	kind lineKind
	text string
}

// hunkContext is the number of unchanged lines shown around each change.
const hunkContext = 3

// renderHunks writes unified-format hunks for an edit script. Changed
// regions separated by at most 2*hunkContext equal lines are merged into a
// single hunk, matching git's grouping.
func renderHunks(b *strings.Builder, ops []lineOp) {
	// aAt[i] and bAt[i] hold the number of old/new lines before ops[i].
	aAt := make([]int, len(ops)+1)
	bAt := make([]int, len(ops)+1)
	for i, op := range ops {
		aAt[i+1], bAt[i+1] = aAt[i], bAt[i]
		if op.kind != opInsert {
			aAt[i+1]++
		}
		if op.kind != opDelete {
			bAt[i+1]++
		}
	}

	i := 0
	for i < len(ops) {
		if ops[i].kind == opEqual {
			i++
			continue
		}

		start := max(i-hunkContext, 0)
		end := i
		j := i + 1
		for j < len(ops) {
			if ops[j].kind != opEqual {
				end = j
				j++
				continue
			}
			run := j
			for run < len(ops) && ops[run].kind == opEqual {
				run++
			}
			if run < len(ops) && run-j <= 2*hunkContext {
				j = run
				continue
			}
			break
		}
		stop := min(end+hunkContext+1, len(ops))

		writeHunk(b, ops[start:stop], aAt, bAt, start, stop)
		i = stop
	}
}

func writeHunk(b *strings.Builder, ops []lineOp, aAt, bAt []int, start, stop int) {
	aCount := aAt[stop] - aAt[start]
	bCount := bAt[stop] - bAt[start]

	// An empty side is reported at the line before the hunk, per the
	// unified format.
	aStart := aAt[start] + 1
	if aCount == 0 {
		aStart = aAt[start]
	}
	bStart := bAt[start] + 1
	if bCount == 0 {
		bStart = bAt[start]
	}

	fmt.Fprintf(b, "@@ -%d,%d +%d,%d @@\n", aStart, aCount, bStart, bCount)
	for _, op := range ops {
		switch op.kind {
		case opDelete:
			b.WriteByte('-')
		case opInsert:
			b.WriteByte('+')
		case opEqual:
			b.WriteByte(' ')
		}
		b.WriteString(op.text)
		b.WriteByte('\n')
	}
}
