package gitrepo

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

// testRepo builds throwaway repositories commit by commit with strictly
// increasing committer times, so walks ordered by committer time are stable.
type testRepo struct {
	t     *testing.T
	dir   string
	repo  *git.Repository
	tree  *git.Worktree
	clock time.Time
}

func newTestRepo(t *testing.T) *testRepo {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	tree, err := repo.Worktree()
	require.NoError(t, err)

	return &testRepo{
		t:     t,
		dir:   dir,
		repo:  repo,
		tree:  tree,
		clock: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

// commit writes the given files, stages everything, and commits. It returns
// the new commit's hash as a string.
func (r *testRepo) commit(message string, files map[string]string) string {
	r.t.Helper()

	for name, contents := range files {
		path := filepath.Join(r.dir, name)
		require.NoError(r.t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(r.t, os.WriteFile(path, []byte(contents), 0o600))
		_, err := r.tree.Add(name)
		require.NoError(r.t, err)
	}

	r.clock = r.clock.Add(time.Minute)
	signature := &object.Signature{Name: "tester", Email: "tester@example.com", When: r.clock}

	hash, err := r.tree.Commit(message, &git.CommitOptions{
		Author:            signature,
		Committer:         signature,
		AllowEmptyCommits: true,
	})
	require.NoError(r.t, err)

	return hash.String()
}

func (r *testRepo) emptyCommit(message string) string {
	r.t.Helper()
	return r.commit(message, nil)
}

func (r *testRepo) open() *Repository {
	r.t.Helper()

	repo, err := Open(r.dir)
	require.NoError(r.t, err)
	return repo
}
