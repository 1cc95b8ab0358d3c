package gitrepo

import (
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/sergi/go-diff/diffmatchpatch"
)

func plumbingHash(id string) plumbing.Hash {
	return plumbing.NewHash(id)
}

// Algorithm selects the diff strategy used when rendering a commit's
// changes.
type Algorithm int

const (
	AlgorithmHistogram Algorithm = iota
	AlgorithmMyers
	AlgorithmMyersMinimal
)

func (a Algorithm) String() string {
	switch a {
	case AlgorithmHistogram:
		return "histogram"
	case AlgorithmMyers:
		return "myers"
	case AlgorithmMyersMinimal:
		return "myers-minimal"
	default:
		return fmt.Sprintf("algorithm(%d)", int(a))
	}
}

// ParseAlgorithm converts the CLI spelling of a diff algorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch name {
	case "histogram":
		return AlgorithmHistogram, nil
	case "myers":
		return AlgorithmMyers, nil
	case "myers-minimal":
		return AlgorithmMyersMinimal, nil
	default:
		return 0, fmt.Errorf("unknown diff algorithm %q (expected histogram, myers, or myers-minimal)", name)
	}
}

// DiffWithParent renders the unified diff of a commit against its first
// parent, or against the empty tree for a root commit. An empty string means
// the commit introduced no changes; every algorithm agrees on emptiness.
func (r *Repository) DiffWithParent(commit Commit, algorithm Algorithm) (string, error) {
	obj, err := r.repo.CommitObject(plumbingHash(commit.ID))
	if err != nil {
		return "", fmt.Errorf("failed to load commit %s: %w", commit.ID, err)
	}

	tree, err := obj.Tree()
	if err != nil {
		return "", fmt.Errorf("failed to load tree of %s: %w", commit.ID, err)
	}

	var parentTree *object.Tree
	if obj.NumParents() > 0 {
		parent, err := obj.Parent(0)
		if err != nil {
			return "", fmt.Errorf("failed to load parent of %s: %w", commit.ID, err)
		}
		parentTree, err = parent.Tree()
		if err != nil {
			return "", fmt.Errorf("failed to load parent tree of %s: %w", commit.ID, err)
		}
	}

	changes, err := object.DiffTree(parentTree, tree)
	if err != nil {
		return "", fmt.Errorf("failed to diff trees of %s: %w", commit.ID, err)
	}
	if len(changes) == 0 {
		return "", nil
	}

	switch algorithm {
	case AlgorithmMyers:
		// go-git's native patch pipeline is already a Myers line diff.
		patch, err := changes.Patch()
		if err != nil {
			return "", fmt.Errorf("failed to render patch of %s: %w", commit.ID, err)
		}
		return patch.String(), nil
	default:
		return renderChanges(changes, algorithm)
	}
}

// renderChanges produces unified diff text for the histogram and
// minimal-Myers strategies, which go-git does not implement natively.
func renderChanges(changes object.Changes, algorithm Algorithm) (string, error) {
	var b strings.Builder

	for _, change := range changes {
		from, to, err := change.Files()
		if err != nil {
			return "", fmt.Errorf("failed to resolve changed files: %w", err)
		}

		fromName, toName := change.From.Name, change.To.Name
		header, err := changeHeader(change, from, to)
		if err != nil {
			return "", err
		}
		b.WriteString(header)

		binary, err := eitherBinary(from, to)
		if err != nil {
			return "", err
		}
		if binary {
			fmt.Fprintf(&b, "Binary files %s and %s differ\n", diffPathA(fromName), diffPathB(toName))
			continue
		}

		fromLines, err := fileLines(from)
		if err != nil {
			return "", err
		}
		toLines, err := fileLines(to)
		if err != nil {
			return "", err
		}

		var ops []lineOp
		if algorithm == AlgorithmHistogram {
			ops = histogramDiff(fromLines, toLines)
		} else {
			ops = myersMinimalDiff(fromLines, toLines)
		}
		renderHunks(&b, ops)
	}

	return b.String(), nil
}

func changeHeader(change *object.Change, from, to *object.File) (string, error) {
	fromName, toName := change.From.Name, change.To.Name

	var b strings.Builder
	name := toName
	if name == "" {
		name = fromName
	}
	fmt.Fprintf(&b, "diff --git a/%s b/%s\n", firstNonEmpty(fromName, name), name)

	switch {
	case from == nil && to != nil:
		fmt.Fprintf(&b, "new file mode %o\n", change.To.TreeEntry.Mode)
		fmt.Fprintf(&b, "index %s..%s\n", shortHash(""), shortHash(change.To.TreeEntry.Hash.String()))
		b.WriteString("--- /dev/null\n")
		fmt.Fprintf(&b, "+++ b/%s\n", toName)
	case from != nil && to == nil:
		fmt.Fprintf(&b, "deleted file mode %o\n", change.From.TreeEntry.Mode)
		fmt.Fprintf(&b, "index %s..%s\n", shortHash(change.From.TreeEntry.Hash.String()), shortHash(""))
		fmt.Fprintf(&b, "--- a/%s\n", fromName)
		b.WriteString("+++ /dev/null\n")
	default:
		fmt.Fprintf(&b, "index %s..%s %o\n",
			shortHash(change.From.TreeEntry.Hash.String()),
			shortHash(change.To.TreeEntry.Hash.String()),
			change.To.TreeEntry.Mode)
		fmt.Fprintf(&b, "--- a/%s\n", fromName)
		fmt.Fprintf(&b, "+++ b/%s\n", toName)
	}

	return b.String(), nil
}

func diffPathA(name string) string {
	if name == "" {
		return "/dev/null"
	}
	return "a/" + name
}

func diffPathB(name string) string {
	if name == "" {
		return "/dev/null"
	}
	return "b/" + name
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

const nullHash = "0000000000000000000000000000000000000000"

func shortHash(hash string) string {
	if hash == "" {
		hash = nullHash
	}
	return hash[:7]
}

func eitherBinary(files ...*object.File) (bool, error) {
	for _, f := range files {
		if f == nil {
			continue
		}
		binary, err := f.IsBinary()
		if err != nil {
			return false, fmt.Errorf("failed to inspect blob %s: %w", f.Name, err)
		}
		if binary {
			return true, nil
		}
	}
	return false, nil
}

func fileLines(f *object.File) ([]string, error) {
	if f == nil {
		return nil, nil
	}
	contents, err := f.Contents()
	if err != nil {
		return nil, fmt.Errorf("failed to read blob %s: %w", f.Name, err)
	}
	return splitLines(contents), nil
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}

// myersMinimalDiff runs an exhaustive Myers pass at line granularity. With
// the timeout disabled go-diff never falls back to an early, non-minimal
// split, so the resulting script is minimal.
func myersMinimalDiff(a, b []string) []lineOp {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0

	aText := joinLines(a)
	bText := joinLines(b)
	aChars, bChars, lineArray := dmp.DiffLinesToChars(aText, bText)
	diffs := dmp.DiffMain(aChars, bChars, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var ops []lineOp
	for _, diff := range diffs {
		kind := opEqual
		switch diff.Type {
		case diffmatchpatch.DiffDelete:
			kind = opDelete
		case diffmatchpatch.DiffInsert:
			kind = opInsert
		case diffmatchpatch.DiffEqual:
		}
		for _, line := range splitLines(diff.Text) {
			ops = append(ops, lineOp{kind: kind, text: line})
		}
	}
	return ops
}

func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
